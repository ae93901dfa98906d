package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Decision is an authenticator's vote on a request.
type Decision int

const (
	// Abstain means the authenticator does not recognize the credentials.
	Abstain Decision = iota

	// Accept means the credentials are valid. The chain stops.
	Accept

	// Reject means the credentials were recognized but are invalid. The
	// chain stops and the request fails.
	Reject
)

// Result carries one vote.
type Result struct {
	Decision Decision
	Identity *Identity // set when Decision == Accept
	Err      error     // set when Decision == Reject
}

// Identity is an authenticated caller.
type Identity struct {
	// Subject names the caller. Never empty on an accepted request.
	Subject string

	// Method is the authenticator that accepted the request ("apikey", "jwt").
	Method string

	// Scopes lists granted scopes, when the credential carries any.
	Scopes []string
}

// Authenticator votes on a request's credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) Result
}

// Errors reported on rejection.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid bearer token")
)

// Chain evaluates authenticators left to right.
type Chain []Authenticator

// Authenticate returns the first Accept or Reject vote. If every
// authenticator abstains the request is rejected.
func (c Chain) Authenticate(ctx context.Context, r *http.Request) Result {
	for _, a := range c {
		if res := a.Authenticate(ctx, r); res.Decision != Abstain {
			return res
		}
	}
	return Result{Decision: Reject, Err: ErrUnauthenticated}
}

// BearerToken returns the token from an "Authorization: Bearer" header.
// ok is false when the header is absent or uses another scheme.
func BearerToken(r *http.Request) (token string, ok bool) {
	h := r.Header.Get("Authorization")
	scheme, rest, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(rest), true
}
