package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupOrderIsFixed(t *testing.T) {
	t.Parallel()

	raw := makeRaw(1, 1, 1)
	raw.Collections = []Result{{Type: TypeCollection, Key: "collection:1", Title: "Faves"}}
	raw.StarterKits = []Result{{Type: TypeStarterKit, Key: "starterKit:1", Title: "Kit"}}
	raw.TopResults = []Result{raw.Teams[0]}

	groups := GroupResults(raw)
	var ids []string
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []string{"top", "user", "project", "collection"}, ids,
		"top first, then per-type groups in fixed order; the emptied team group is dropped")
}

func TestTopResultsNotRepeatedInTypeGroups(t *testing.T) {
	t.Parallel()

	raw := makeRaw(3, 0, 0)
	raw.TopResults = []Result{raw.Teams[1]}

	groups := GroupResults(raw)
	require.Len(t, groups, 2)

	teamGroup := groups[1]
	require.Equal(t, "team", teamGroup.ID)
	for _, r := range teamGroup.Items {
		assert.NotEqual(t, "team:1", r.Key, "a top result must not show twice")
	}
	assert.Len(t, teamGroup.Items, 2)
}

func TestTypeGroupsCapAtThree(t *testing.T) {
	t.Parallel()

	groups := GroupResults(makeRaw(0, 7, 0))
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Items, MaxResultsPerGroup)
}

func TestTopGroupIsUncapped(t *testing.T) {
	t.Parallel()

	raw := makeRaw(4, 0, 0)
	raw.TopResults = raw.Teams
	raw.StarterKits = []Result{
		{Type: TypeStarterKit, Key: "starterKit:1", Title: "Kit 1"},
		{Type: TypeStarterKit, Key: "starterKit:2", Title: "Kit 2"},
	}

	groups := GroupResults(raw)
	require.Equal(t, "top", groups[0].ID)
	assert.Len(t, groups[0].Items, 6, "starter kits plus every curated top result")
	assert.Equal(t, "starterKit:1", groups[0].Items[0].Key, "starter kits come first")
}

func TestEmptyGroupsAreDropped(t *testing.T) {
	t.Parallel()

	assert.Empty(t, GroupResults(RawResults{}), "nothing in, nothing out")

	groups := GroupResults(makeRaw(0, 0, 2))
	require.Len(t, groups, 1)
	assert.Equal(t, "project", groups[0].ID)
}

func TestFlattenKeepsGroupOrder(t *testing.T) {
	t.Parallel()

	raw := makeRaw(2, 2, 0)
	flat := Flatten(GroupResults(raw))
	require.Len(t, flat, 4)
	assert.Equal(t, TypeTeam, flat[0].Type)
	assert.Equal(t, TypeUser, flat[3].Type)
}
