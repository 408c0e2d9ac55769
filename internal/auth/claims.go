// Package auth reads identity claims from bearer credentials.
//
// Credentials are issued by an external identity provider. The gateway only
// decodes them; it does not check signatures or expiry, so claims read here
// identify the caller but must not be treated as proof of identity.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/intelvestor/gateway/internal/model"
)

// BearerPrefix is stripped from the Authorization header before decoding.
const BearerPrefix = "Bearer "

// ErrMalformedCredential indicates the credential could not be decoded.
var ErrMalformedCredential = errors.New("malformed credential")

// tokenClaims is the payload shape issued by the identity provider.
type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

var parser = jwt.NewParser()

// ReadClaims decodes the claims section of a bearer credential.
// The "Bearer " prefix is optional. A credential without a subject is
// rejected as malformed since the subject is the user's identity.
func ReadClaims(credential string) (model.IdentityClaims, error) {
	token := strings.TrimSpace(strings.TrimPrefix(credential, BearerPrefix))
	if token == "" {
		return model.IdentityClaims{}, fmt.Errorf("%w: empty token", ErrMalformedCredential)
	}

	var claims tokenClaims
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return model.IdentityClaims{}, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}

	if claims.Subject == "" {
		return model.IdentityClaims{}, fmt.Errorf("%w: missing subject", ErrMalformedCredential)
	}

	return model.IdentityClaims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}
