package canteen

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/golang-jwt/jwt/v5"
)

// SessionIdentity is the display identity extracted from the provider's
// ID token. It is what PlaceOrder receives as the submitter.
type SessionIdentity struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Validate checks the identity is usable as an order submitter.
func (s SessionIdentity) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.UserID, validation.Required, validation.Length(1, 128)),
		validation.Field(&s.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.Email, is.Email),
	)
}

// String returns a loggable representation without dumping the raw token.
func (s SessionIdentity) String() string {
	return fmt.Sprintf("SessionIdentity{UserID: %s, Name: %s, Email: %s}", s.UserID, s.Name, s.Email)
}

// sessionClaims mirrors the subset of provider claims we surface.
type sessionClaims struct {
	jwt.RegisteredClaims
	UID   string `json:"uid,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// IdentityFromToken extracts display claims from the provider's ID token.
// The provider verified the token before emitting the presence event, so
// only the claims payload is decoded here; no signature check is performed.
func IdentityFromToken(token string) (SessionIdentity, error) {
	claims := &sessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return SessionIdentity{}, fmt.Errorf("%w: %v", ErrUnableToParseToken, err)
	}

	id := claims.UID
	if id == "" {
		id = claims.RegisteredClaims.Subject
	}

	return SessionIdentity{
		UserID: id,
		Name:   claims.Name,
		Email:  claims.Email,
	}, nil
}
