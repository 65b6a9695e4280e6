package invite

import (
	"net/mail"
	"strings"
)

// ParseEmail parses the query as a single email address, returning the
// bare address when it is valid
func ParseEmail(query string) (string, bool) {
	addr, err := mail.ParseAddress(strings.TrimSpace(query))
	if err != nil {
		return "", false
	}
	return addr.Address, true
}

// EmailDomain extracts a plausible email domain from the query. A bare
// "@example.com" also counts: a placeholder local part is substituted so
// the address grammar accepts it. Domains without a dot are rejected.
func EmailDomain(query string) string {
	query = strings.TrimSpace(query)
	at := strings.Index(query, "@")
	if at < 0 {
		return ""
	}

	// turn "@example.com" (or "user@example.com") into a parseable address
	candidate := query[:at] + "test@" + query[at+1:]
	addr, err := mail.ParseAddress(candidate)
	if err != nil {
		return ""
	}

	idx := strings.LastIndex(addr.Address, "@")
	if idx < 0 {
		return ""
	}
	emailDomain := strings.ToLower(addr.Address[idx+1:])
	if !strings.Contains(emailDomain, ".") {
		return ""
	}
	return emailDomain
}
