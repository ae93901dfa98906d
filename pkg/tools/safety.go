package tools

import "strings"

// DestructiveMarkers are the substrings that classify an action name as
// destructive. Matching is case-insensitive and positional anywhere in the
// name, so "force-stop" matches while "unpause" does not.
var DestructiveMarkers = []string{"remove", "delete", "stop", "restart", "kill", "prune"}

// RequiresConfirmation reports whether action contains a destructive marker.
func RequiresConfirmation(action string) bool {
	a := strings.ToLower(action)
	for _, m := range DestructiveMarkers {
		if strings.Contains(a, m) {
			return true
		}
	}
	return false
}
