package auth

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used when a caller passes a cost
// outside bcrypt's supported range. High enough for credentials that gate
// vote casting, low enough to keep login latency reasonable.
const DefaultCost = 12

// HashPassword hashes a plaintext password. Out-of-range costs fall back
// to DefaultCost rather than failing at login time.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
