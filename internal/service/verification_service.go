package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/voting-service/internal/auth"
	"github.com/spec-kit/voting-service/internal/biometric"
	"github.com/spec-kit/voting-service/internal/domain"
	"github.com/spec-kit/voting-service/internal/repository"
	util "github.com/spec-kit/voting-service/pkg/util"
)

// VerifyAttributes carries optional identity cross-check values.
type VerifyAttributes struct {
	Name        string
	DateOfBirth string
}

// VerificationResult is the outcome of a successful identity check.
type VerificationResult struct {
	Voter     *domain.Voter
	Token     string
	ExpiresAt time.Time
	Distance  *float64
}

// VerificationService orchestrates identity lookup, attribute cross-checks
// and biometric matching. Verification never mutates state; it is safe to
// retry on any outcome.
type VerificationService struct {
	voters   repository.VoterRepository
	matcher  *biometric.Matcher
	tokenMgr *auth.TokenManager
}

// NewVerificationService builds the service.
func NewVerificationService(voters repository.VoterRepository, matcher *biometric.Matcher, tokenMgr *auth.TokenManager) *VerificationService {
	return &VerificationService{voters: voters, matcher: matcher, tokenMgr: tokenMgr}
}

// Verify checks a voter's identity by document number, with optional name,
// date-of-birth and biometric cross-checks. Checks run in a fixed order and
// the first failure wins.
func (s *VerificationService) Verify(ctx context.Context, idNumber string, template []float64, attrs VerifyAttributes) (*VerificationResult, error) {
	if strings.TrimSpace(idNumber) == "" {
		return nil, util.NewValidationError("ID number is required", nil)
	}

	voter, err := s.voters.GetByIDNumber(ctx, idNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewVoterNotFound()
		}
		return nil, util.NewStoreError(err)
	}

	if attrs.Name != "" && !strings.EqualFold(attrs.Name, voter.Name) {
		return nil, util.NewAttributeMismatch("name")
	}

	if attrs.DateOfBirth != "" {
		// a record with no stored date of birth can never satisfy a
		// supplied one
		if voter.DateOfBirth == "" ||
			normalizeDate(attrs.DateOfBirth) != normalizeDate(voter.DateOfBirth) {
			return nil, util.NewAttributeMismatch("date of birth")
		}
	}

	result := &VerificationResult{Voter: voter}

	if len(template) > 0 {
		if !voter.HasBiometric() {
			return nil, util.NewNoBiometricOnFile()
		}
		match, err := s.matcher.Match(template, voter.BiometricTemplate)
		if err != nil {
			var mism *biometric.TemplateMismatchError
			if errors.As(err, &mism) {
				return nil, util.NewNoBiometricOnFile()
			}
			return nil, util.NewInternalError(err)
		}
		if !match.IsMatch {
			return nil, util.NewBiometricMismatch(match.Distance)
		}
		result.Distance = &match.Distance
	}

	token, exp, err := s.tokenMgr.GenerateToken(voter.ID, domain.SubjectTypeVoter)
	if err != nil {
		return nil, err
	}
	result.Token = token
	result.ExpiresAt = exp
	return result, nil
}

// normalizeDate reduces a date string to canonical YYYY-MM-DD form. Accepts
// DD/MM/YYYY, DD-MM-YYYY and already-canonical input, with or without a
// trailing time component. Unrecognized shapes pass through trimmed so the
// comparison still fails loudly rather than matching by accident.
func normalizeDate(raw string) string {
	normalized := strings.TrimSpace(strings.SplitN(raw, "T", 2)[0])

	if !strings.ContainsAny(normalized, "/-") {
		return normalized
	}
	parts := strings.FieldsFunc(normalized, func(r rune) bool {
		return r == '/' || r == '-'
	})
	if len(parts) != 3 {
		return normalized
	}

	switch {
	case len(parts[0]) == 4:
		return fmt.Sprintf("%s-%s-%s", parts[0], pad2(parts[1]), pad2(parts[2]))
	case len(parts[2]) == 4:
		return fmt.Sprintf("%s-%s-%s", parts[2], pad2(parts[1]), pad2(parts[0]))
	default:
		return normalized
	}
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
