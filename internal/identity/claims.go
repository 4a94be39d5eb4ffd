package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claim is the verified identity extracted from a bearer token.
type Claim struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	ExpiresAt  time.Time
}

// tokenClaims mirrors the provider's access token payload. Profile fields are
// optional; providers differ on first_name/given_name naming so both are read.
type tokenClaims struct {
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	GivenName       string `json:"given_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	FamilyName      string `json:"family_name,omitempty"`
	AuthorizedParty string `json:"azp,omitempty"`
	jwt.RegisteredClaims
}

func (c *tokenClaims) toClaim() Claim {
	firstName := c.FirstName
	if firstName == "" {
		firstName = c.GivenName
	}
	lastName := c.LastName
	if lastName == "" {
		lastName = c.FamilyName
	}

	claim := Claim{
		ExternalID: c.Subject,
		Email:      c.Email,
		FirstName:  firstName,
		LastName:   lastName,
	}
	if c.ExpiresAt != nil {
		claim.ExpiresAt = c.ExpiresAt.Time
	}
	return claim
}
