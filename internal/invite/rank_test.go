package invite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hubgrip/internal/domain"
)

func TestExactLoginDominatesEverything(t *testing.T) {
	t.Parallel()

	handleMatch := domain.User{ID: 1, Login: "acme", Name: "Someone Else"}
	nameMatch := domain.User{ID: 2, Login: "other", Name: "acme"}

	// name can earn at most 50+10+10+5 = 75; an exact login is 9000
	assert.Greater(t, Rank(handleMatch, "acme"), Rank(nameMatch, "acme"),
		"typing someone's handle must rank them first")
}

func TestRankPoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		user   domain.User
		query  string
		points int
	}{
		{"no match", domain.User{Login: "alice", Name: "Alice"}, "zzz", 0},
		{"login contains", domain.User{Login: "malice", Name: "x"}, "alice", 10},
		{"login prefix", domain.User{Login: "alicecooper", Name: "x"}, "alice", 15},
		// exact login also counts as contains+prefix on the login field
		{"exact login", domain.User{Login: "alice", Name: "x"}, "alice", 9015},
		// exact name: 50, case bonus 10, contains 10, prefix 5
		{"exact name case match", domain.User{Login: "x", Name: "Alice"}, "Alice", 75},
		{"exact name case differs", domain.User{Login: "x", Name: "alice"}, "Alice", 65},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.points, Rank(tc.user, tc.query))
		})
	}
}

func TestRankAllIsStableOnTies(t *testing.T) {
	t.Parallel()

	users := []domain.User{
		{ID: 1, Login: "aaa1"},
		{ID: 2, Login: "aaa2"},
		{ID: 3, Login: "bbb"},
	}
	ranked := RankAll(users, "aaa")
	require.Len(t, ranked, 3)
	assert.Equal(t, 1, ranked[0].ID, "ties keep the server's order")
	assert.Equal(t, 2, ranked[1].ID)
	assert.Equal(t, 3, ranked[2].ID)
}

func TestRankAllDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	users := []domain.User{
		{ID: 1, Login: "zzz"},
		{ID: 2, Login: "match"},
	}
	RankAll(users, "match")
	assert.Equal(t, 1, users[0].ID, "input order must be preserved")
}

func TestExcludeMembers(t *testing.T) {
	t.Parallel()

	users := []domain.User{{ID: 1}, {ID: 2}, {ID: 3}}
	out := ExcludeMembers(users, []int{2})
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 3, out[1].ID)
}
