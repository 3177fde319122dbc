package domain

// SubjectType differentiates voter vs admin tokens.
type SubjectType string

const (
	SubjectTypeVoter SubjectType = "VOTER"
	SubjectTypeAdmin SubjectType = "ADMIN"
)
