// Package auth authenticates inbound HTTP requests to the MCP transports.
//
// Authenticators vote Accept, Reject or Abstain on a request. A Chain asks
// each in turn and stops at the first non-abstaining vote; a request that
// every authenticator abstains on is rejected. Middleware applies a chain
// to an http.Handler, skipping the bypass paths (health and metrics), and
// stores the accepted Identity in the request context.
//
// The stdio transport has no HTTP layer and is never authenticated.
package auth
