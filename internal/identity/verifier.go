package identity

import (
	"context"
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	pkgerrors "github.com/admaster-ai/admaster-backend/pkg/errors"
)

type keySource interface {
	Key(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

// Verifier validates bearer tokens against the identity provider's signing
// keys and produces verified claims. Token material is never logged or
// persisted.
type Verifier struct {
	keys              keySource
	issuer            string
	authorizedParties map[string]struct{}
}

// VerifierOptions configures token validation.
type VerifierOptions struct {
	Issuer            string
	AuthorizedParties []string
}

// NewVerifier builds a verifier that trusts keys from the provided source.
func NewVerifier(keys keySource, opts VerifierOptions) (*Verifier, error) {
	if keys == nil {
		return nil, fmt.Errorf("key source required")
	}
	if strings.TrimSpace(opts.Issuer) == "" {
		return nil, fmt.Errorf("issuer required")
	}

	var parties map[string]struct{}
	if len(opts.AuthorizedParties) > 0 {
		parties = make(map[string]struct{}, len(opts.AuthorizedParties))
		for _, p := range opts.AuthorizedParties {
			parties[p] = struct{}{}
		}
	}

	return &Verifier{
		keys:              keys,
		issuer:            opts.Issuer,
		authorizedParties: parties,
	}, nil
}

// Verify validates the raw bearer token and returns the verified claim.
// Credential problems map to unauthorized; inability to obtain signing keys
// (including a context timeout) maps to a dependency failure.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Claim, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing bearer token")
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(
		rawToken,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			kid, _ := token.Header["kid"].(string)
			if kid == "" {
				return nil, fmt.Errorf("token header missing kid")
			}
			return v.keys.Key(ctx, kid)
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil {
			return nil, appErr
		}
		if ctx.Err() != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "credential verification timed out")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid bearer token")
	}

	if len(v.authorizedParties) > 0 && claims.AuthorizedParty != "" {
		if _, ok := v.authorizedParties[claims.AuthorizedParty]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token authorized party not allowed")
		}
	}

	claim := claims.toClaim()
	if strings.TrimSpace(claim.ExternalID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "token subject is empty")
	}
	return &claim, nil
}
