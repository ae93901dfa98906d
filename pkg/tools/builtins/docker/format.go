package docker

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/docker/docker/api/types/container"
)

const (
	shortIDLen = 12
	none       = "none"
	mib        = 1024 * 1024
	gib        = 1024 * 1024 * 1024
)

// shortID returns the first 12 characters of a Docker id, without any
// "sha256:" digest prefix.
func shortID(id string) string {
	id = strings.TrimPrefix(id, "sha256:")
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// containerName returns the first name without Docker's leading slash.
func containerName(names []string) string {
	if len(names) == 0 {
		return "<unnamed>"
	}
	return strings.TrimPrefix(names[0], "/")
}

// portSummary renders published ports as "host:container" and unpublished
// ones as the bare container port. Docker reports one entry per host IP
// family, so duplicates are dropped.
func portSummary(ports []container.Port) string {
	if len(ports) == 0 {
		return none
	}
	out := make([]string, 0, len(ports))
	for _, p := range ports {
		s := strconv.Itoa(int(p.PrivatePort))
		if p.PublicPort != 0 {
			s = strconv.Itoa(int(p.PublicPort)) + ":" + s
		}
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}

func orNone(s string) string {
	if s == "" {
		return none
	}
	return s
}

// lines renders items one per line with the given indent, or "none".
func lines(indent string, items []string) string {
	if len(items) == 0 {
		return " " + none
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString(it)
	}
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func megabytes(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/mib)
}

func gigabytes(bytes int64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/gib)
}

// epochDate renders Unix seconds as a UTC calendar date.
func epochDate(sec int64) string {
	if sec <= 0 {
		return "unknown"
	}
	return time.Unix(sec, 0).UTC().Format(time.DateOnly)
}

// header renders the "Found N <noun>:" line.
func header(n int, noun string) string {
	return fmt.Sprintf("Found %d %s:", n, noun)
}
