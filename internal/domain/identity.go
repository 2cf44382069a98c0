// Package domain contains entity without logic, just meta-data
package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const MaxDisplayNameLen = 36

var (
	ErrNameTooLong = errors.New("display name too long")
	ErrNameEmpty   = errors.New("display name empty")
)

type UserID string

func NewUserID() UserID {
	return UserID(uuid.NewString())
}

// NormalizeName maps a raw display name onto its uniqueness key.
// Two names that normalize equal are the same identity.
func NormalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ValidateDisplayName bounds the name length in runes, so multibyte
// names get the same limit as ASCII ones.
func ValidateDisplayName(name string) error {
	if len(name) == 0 {
		return ErrNameEmpty
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return ErrNameTooLong
	}
	return nil
}

// Identity is a logical user. Its ID is stable across reconnects of the
// same normalized name until the process state is reset.
type Identity struct {
	ID          UserID `json:"id"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar,omitempty"`
	JoinedAt    int64  `json:"joinedAt"`
}
