package invite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmail(t *testing.T) {
	t.Parallel()

	email, ok := ParseEmail("someone@example.com")
	assert.True(t, ok)
	assert.Equal(t, "someone@example.com", email)

	email, ok = ParseEmail("  someone@example.com  ")
	assert.True(t, ok, "surrounding whitespace is tolerated")
	assert.Equal(t, "someone@example.com", email)

	_, ok = ParseEmail("not an email")
	assert.False(t, ok)

	_, ok = ParseEmail("")
	assert.False(t, ok)
}

func TestEmailDomain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		query string
		want  string
	}{
		{"someone@example.com", "example.com"},
		{"@example.com", "example.com"}, // bare domain query
		{"Someone@EXAMPLE.COM", "example.com"},
		{"no-at-sign", ""},
		{"someone@", ""},
		{"someone@nodot", ""}, // a domain needs a dot
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, EmailDomain(tc.query), "query %q", tc.query)
	}
}
