package wordpress

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Authenticator adds site credentials to an outgoing request. One
// implementation exists per supported auth method: application password,
// plain basic auth, JWT bearer, API key header and OAuth2 client
// credentials.
type Authenticator interface {
	Apply(req *http.Request) error
}

// AppPasswordAuth authenticates with a WordPress application password.
// WordPress displays these with spaces ("xxxx xxxx xxxx ..."); the spaces
// are cosmetic and stripped before use.
type AppPasswordAuth struct {
	Username    string
	AppPassword string
}

func (a AppPasswordAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(a.Username, strings.ReplaceAll(a.AppPassword, " ", ""))
	return nil
}

// BasicAuth authenticates with a regular username and password. Only useful
// on sites running the Basic Auth plugin; application passwords are the
// supported path on stock WordPress.
type BasicAuth struct {
	Username string
	Password string
}

func (a BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(a.Username, a.Password)
	return nil
}

// JWTAuth sends a pre-issued bearer token, as used with the JWT
// Authentication plugin.
type JWTAuth struct {
	Token string
}

// NewJWTAuth checks the token is well-formed and not already expired before
// accepting it. The signature is the site's to verify; we only hold the
// public claims.
func NewJWTAuth(token string) (JWTAuth, error) {
	_, err := jwt.Parse([]byte(token), jwt.WithVerify(false), jwt.WithValidate(true))
	if err != nil {
		return JWTAuth{}, fmt.Errorf("invalid jwt token: %w", err)
	}
	return JWTAuth{Token: token}, nil
}

func (a JWTAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+a.Token)
	return nil
}

// APIKeyAuth sends a static key in a header, for sites fronted by an API
// gateway or the API Key Auth plugin.
type APIKeyAuth struct {
	Key    string
	Header string
}

func (a APIKeyAuth) Apply(req *http.Request) error {
	header := a.Header
	if header == "" {
		header = "X-API-Key"
	}
	req.Header.Set(header, a.Key)
	return nil
}

// OAuth2Auth fetches bearer tokens from a client-credentials token source
// and refreshes them as they expire.
type OAuth2Auth struct {
	src oauth2.TokenSource
}

func NewOAuth2Auth(ctx context.Context, cfg *clientcredentials.Config) OAuth2Auth {
	return OAuth2Auth{src: cfg.TokenSource(ctx)}
}

func (a OAuth2Auth) Apply(req *http.Request) error {
	token, err := a.src.Token()
	if err != nil {
		return fmt.Errorf("fetch oauth2 token: %w", err)
	}
	token.SetAuthHeader(req)
	return nil
}
