// Package apikey authenticates bearer tokens against a static key list.
// Keys are held only as SHA-256 digests and compared in constant time.
package apikey

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/auth"
)

// Key is one configured API key.
type Key struct {
	Value   string
	Subject string
}

type entry struct {
	digest  [sha256.Size]byte
	subject string
}

// Authenticator validates bearer tokens against the configured keys.
type Authenticator struct {
	entries []entry
}

// New hashes keys and discards the plaintext. Empty values are skipped.
func New(keys []Key) *Authenticator {
	a := &Authenticator{}
	for _, k := range keys {
		if k.Value == "" {
			continue
		}
		subject := k.Subject
		if subject == "" {
			subject = "apikey"
		}
		a.entries = append(a.entries, entry{digest: sha256.Sum256([]byte(k.Value)), subject: subject})
	}
	return a
}

// Authenticate abstains without a bearer token, accepts a known key, and
// rejects anything else.
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.Result {
	token, ok := auth.BearerToken(r)
	if !ok {
		return auth.Result{Decision: auth.Abstain}
	}
	if token == "" {
		return auth.Result{Decision: auth.Reject, Err: auth.ErrInvalidToken}
	}

	digest := sha256.Sum256([]byte(token))
	match := -1
	// Every entry is compared so timing does not reveal the index.
	for i := range a.entries {
		if subtle.ConstantTimeCompare(digest[:], a.entries[i].digest[:]) == 1 {
			match = i
		}
	}
	if match < 0 {
		return auth.Result{Decision: auth.Reject, Err: auth.ErrInvalidToken}
	}
	return auth.Result{
		Decision: auth.Accept,
		Identity: &auth.Identity{Subject: a.entries[match].subject, Method: "apikey"},
	}
}
