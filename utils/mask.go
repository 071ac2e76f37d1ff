package utils

import "strings"

// MaskEmail hides most of an address for logs: "john@example.com" -> "j**n@e******.com".
// Input that is not a single local@domain pair comes back trimmed but unmasked.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return email
	}
	if host, rest, dotted := strings.Cut(domain, "."); dotted {
		domain = keepEnds(host, 1, 0) + "." + rest
	}
	return keepEnds(local, 1, 1) + "@" + domain
}

// keepEnds stars every rune of s but the first head and the last tail. Short
// values lose the tail before the head.
func keepEnds(s string, head, tail int) string {
	r := []rune(s)
	if len(r) <= head {
		return s
	}
	if len(r)-head <= tail {
		tail = 0
	}
	for i := head; i < len(r)-tail; i++ {
		r[i] = '*'
	}
	return string(r)
}
