package invite

import (
	"sort"
	"strings"

	"hubgrip/internal/domain"
)

// Rank scores a candidate against a free-text query. Scores are additive;
// an exact login match dominates everything a name can earn (9000 vs a
// ceiling of 65), so the user someone typed the handle of always wins.
func Rank(candidate domain.User, query string) int {
	lowerQuery := strings.ToLower(query)
	points := 0

	login := candidate.Login
	lowerLogin := strings.ToLower(login)
	name := candidate.Name
	lowerName := strings.ToLower(name)

	if lowerLogin == lowerQuery {
		points += 9000
	}

	if lowerName == lowerQuery {
		points += 50
		if name == query {
			points += 10 // bonus case-sensitive match
		}
	}

	for _, field := range []string{lowerLogin, lowerName} {
		if strings.Contains(field, lowerQuery) {
			points += 10
			if strings.HasPrefix(field, lowerQuery) {
				points += 5
			}
		}
	}

	return points
}

// RankAll orders candidates by descending score. The sort is stable:
// ties keep the server's order.
func RankAll(candidates []domain.User, query string) []domain.User {
	ranked := make([]domain.User, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Rank(ranked[i], query) > Rank(ranked[j], query)
	})
	return ranked
}

// ExcludeMembers drops candidates that are already team members
func ExcludeMembers(candidates []domain.User, memberIDs []int) []domain.User {
	members := make(map[int]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}
	var out []domain.User
	for _, c := range candidates {
		if !members[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
