package service

import (
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// TokenTypeAccess marks tokens issued on login.
const TokenTypeAccess = "access"

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	Roles []string `json:"roles"`
	Type  string   `json:"type"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed, time-bound identity tokens.
type TokenService interface {
	// IssueToken signs a token for the subject carrying the role claims.
	IssueToken(subject string, roles []string) (string, error)

	// ValidateToken checks signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)
}

// SubjectFromUserID formats a user id as a token subject.
func SubjectFromUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// UserIDFromSubject parses a token subject back into a user id.
func UserIDFromSubject(subject string) (int64, error) {
	id, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid token subject %q", subject)
	}

	return id, nil
}
