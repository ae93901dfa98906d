package jwt

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/SamuraiBuddha/mcp-portainer-bridge/pkg/auth"
)

const testKID = "k1"

var signingKey = func() *rsa.PrivateKey {
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}
	return k
}()

func jwksServer(t *testing.T, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		pub := signingKey.PublicKey
		_ = json.NewEncoder(w).Encode(map[string]any{
			"keys": []map[string]string{
				{"kty": "EC", "kid": "ignored"},
				{
					"kty": "RSA",
					"kid": testKID,
					"use": "sig",
					"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
					"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func sign(t *testing.T, kid string, claims jwtlib.MapClaims) string {
	t.Helper()
	tok := jwtlib.NewWithClaims(jwtlib.SigningMethodRS256, claims)
	if kid != "" {
		tok.Header["kid"] = kid
	}
	s, err := tok.SignedString(signingKey)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}
	return s
}

func request(token string) *http.Request {
	r := httptest.NewRequest("POST", "/mcp", nil)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func validClaims() jwtlib.MapClaims {
	return jwtlib.MapClaims{
		"sub":   "ops@example.com",
		"iss":   "https://idp.example.com",
		"aud":   "portainer-mcp",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"scope": "docker:read docker:write",
	}
}

func TestAuthenticate(t *testing.T) {
	var fetches atomic.Int32
	srv := jwksServer(t, &fetches)
	a := New(Config{
		Issuer:   "https://idp.example.com",
		Audience: "portainer-mcp",
		JWKSURL:  srv.URL,
	})

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	wrongIss := validClaims()
	wrongIss["iss"] = "https://evil.example.com"
	wrongAud := validClaims()
	wrongAud["aud"] = "someone-else"
	noSub := validClaims()
	delete(noSub, "sub")

	tests := []struct {
		name string
		req  *http.Request
		want auth.Decision
	}{
		{"no header", request(""), auth.Abstain},
		{"valid", request(sign(t, testKID, validClaims())), auth.Accept},
		{"expired", request(sign(t, testKID, expired)), auth.Reject},
		{"wrong issuer", request(sign(t, testKID, wrongIss)), auth.Reject},
		{"wrong audience", request(sign(t, testKID, wrongAud)), auth.Reject},
		{"missing subject", request(sign(t, testKID, noSub)), auth.Reject},
		{"missing kid", request(sign(t, "", validClaims())), auth.Reject},
		{"unknown kid", request(sign(t, "other", validClaims())), auth.Reject},
		{"garbage", request("not.a.jwt"), auth.Reject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := a.Authenticate(context.Background(), tt.req)
			if res.Decision != tt.want {
				t.Fatalf("Decision = %v, want %v (err: %v)", res.Decision, tt.want, res.Err)
			}
			if tt.want == auth.Accept {
				if res.Identity.Subject != "ops@example.com" || res.Identity.Method != "jwt" {
					t.Errorf("unexpected identity %+v", res.Identity)
				}
				if !slices.Equal(res.Identity.Scopes, []string{"docker:read", "docker:write"}) {
					t.Errorf("Scopes = %v", res.Identity.Scopes)
				}
			}
		})
	}
}

func TestKeyCache(t *testing.T) {
	var fetches atomic.Int32
	srv := jwksServer(t, &fetches)
	a := New(Config{JWKSURL: srv.URL, CacheTTL: time.Hour})

	token := sign(t, testKID, validClaims())
	for i := 0; i < 3; i++ {
		if res := a.Authenticate(context.Background(), request(token)); res.Decision != auth.Accept {
			t.Fatalf("call %d: %v", i, res.Err)
		}
	}
	if n := fetches.Load(); n != 1 {
		t.Errorf("expected 1 JWKS fetch, got %d", n)
	}
}

func TestScopesArray(t *testing.T) {
	got := scopes(jwtlib.MapClaims{"scope": []any{"a", 1, "b"}})
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("scopes = %v", got)
	}
	if scopes(jwtlib.MapClaims{}) != nil {
		t.Error("missing claim should yield nil")
	}
}

func TestJWKSUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := New(Config{JWKSURL: srv.URL})
	res := a.Authenticate(context.Background(), request(sign(t, testKID, validClaims())))
	if res.Decision != auth.Reject {
		t.Errorf("Decision = %v, want Reject", res.Decision)
	}
}
