package auth

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// ErrGoogleTokenInvalid is returned when a posted Google ID token
// fails verification
var ErrGoogleTokenInvalid = errors.New("google login failed")

// GoogleProfile is the subset of the ID-token payload the storefront needs
type GoogleProfile struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier verifies Google ID tokens posted by the storefront client
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleProfile, error)
}

// GoogleIDTokenVerifier verifies tokens against Google's public keys
type GoogleIDTokenVerifier struct {
	clientID string
}

// NewGoogleIDTokenVerifier creates a verifier bound to the OAuth client ID
func NewGoogleIDTokenVerifier(clientID string) *GoogleIDTokenVerifier {
	return &GoogleIDTokenVerifier{clientID: clientID}
}

// Verify validates the raw ID token and extracts the profile claims
func (v *GoogleIDTokenVerifier) Verify(ctx context.Context, rawToken string) (*GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, ErrGoogleTokenInvalid
	}

	profile := &GoogleProfile{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		profile.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		profile.Name = name
	}
	if profile.Email == "" {
		return nil, ErrGoogleTokenInvalid
	}
	return profile, nil
}
