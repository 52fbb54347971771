// Package auth defines who is signed in and how that is proven: the provider
// contract, the JWT issued to clients and the fiber helpers that read it back.
package auth

import (
	"errors"
	"strings"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// MinPasswordLength matches the sign-up form's rule.
const MinPasswordLength = 6

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already exists")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrMissingFields      = errors.New("email and password are required")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("admin access required")
	ErrTooManyAttempts    = errors.New("too many sign-in attempts, try again later")
)

// Identity is the signed-in principal as reported by a provider.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// RoleFor grants admin to the single configured admin email.
func RoleFor(email, adminEmail string) string {
	if adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(adminEmail)) {
		return RoleAdmin
	}
	return RoleCustomer
}

// ValidateSignUp applies the credential rules shared by every provider.
func ValidateSignUp(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
