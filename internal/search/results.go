package search

// ResultType tags one concrete search result variant
type ResultType string

const (
	TypeStarterKit ResultType = "starterKit"
	TypeTeam       ResultType = "team"
	TypeUser       ResultType = "user"
	TypeProject    ResultType = "project"
	TypeCollection ResultType = "collection"
	TypeSeeAll     ResultType = "seeAllResults"
)

// SeeAllKey is the selection key of the virtual trailing "see all results"
// entry. It is a sentinel, not a real result.
const SeeAllKey = "seeAllResults"

// Result is one concrete search result. Key is a type-qualified identity
// shared between the topResults list and the per-type lists, so duplicate
// display can be filtered. URL is the canonical relative link.
type Result struct {
	Type     ResultType
	Key      string
	Title    string
	Subtitle string
	URL      string
}

// Group is a named bucket of results of one entity type
type Group struct {
	ID    string
	Label string
	Items []Result
}

// RawResults is the ungrouped payload from the search provider. Starter
// kits and top results are curated server-side.
type RawResults struct {
	StarterKits []Result
	TopResults  []Result
	Teams       []Result
	Users       []Result
	Projects    []Result
	Collections []Result
}

// MaxResultsPerGroup caps each per-type group. The top group is uncapped;
// the server already curates it.
const MaxResultsPerGroup = 3

var groupOrder = []struct {
	id    string
	label string
}{
	{"top", "Top Results"},
	{"team", "Teams"},
	{"user", "Users"},
	{"project", "Projects"},
	{"collection", "Collections"},
}

// GroupResults partitions raw results into display groups: the synthetic
// top group first, then teams, users, projects, collections. Per-type
// groups exclude anything already shown in top results and cap at
// MaxResultsPerGroup. Groups left with zero items are dropped.
func GroupResults(raw RawResults) []Group {
	inTop := make(map[string]bool, len(raw.TopResults))
	for _, r := range raw.TopResults {
		inTop[r.Key] = true
	}

	perType := map[string][]Result{
		"team":       raw.Teams,
		"user":       raw.Users,
		"project":    raw.Projects,
		"collection": raw.Collections,
	}

	var groups []Group
	for _, g := range groupOrder {
		var items []Result
		if g.id == "top" {
			items = append(items, raw.StarterKits...)
			items = append(items, raw.TopResults...)
		} else {
			for _, r := range perType[g.id] {
				if inTop[r.Key] {
					continue
				}
				items = append(items, r)
				if len(items) == MaxResultsPerGroup {
					break
				}
			}
		}
		if len(items) == 0 {
			continue
		}
		groups = append(groups, Group{ID: g.id, Label: g.label, Items: items})
	}
	return groups
}

// Flatten returns all displayed items in group order
func Flatten(groups []Group) []Result {
	var flat []Result
	for _, g := range groups {
		flat = append(flat, g.Items...)
	}
	return flat
}
