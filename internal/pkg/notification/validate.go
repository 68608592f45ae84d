package notification

import "strings"

// IsValidEmail applies the simplified recipient check used before a send:
// non-empty local part, exactly one '@', and a domain with a dot that has
// non-empty labels on both sides. Anything stricter belongs to the provider.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}

	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}

	domain := email[at+1:]
	dot := strings.LastIndex(domain, ".")
	if dot <= 0 || dot == len(domain)-1 {
		return false
	}

	return true
}
