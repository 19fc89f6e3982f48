package content

import (
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterAll is the filter id that keeps every project.
const FilterAll = "all"

// FilterProjects keeps the projects tagged with category. An empty category
// or FilterAll keeps everything.
func FilterProjects(projects []Project, category string) []Project {
	if category == "" || category == FilterAll {
		return projects
	}
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if slices.Contains(p.Categories, category) {
			out = append(out, p)
		}
	}
	return out
}

// SearchProjects ranks projects by a fuzzy match of query against their
// title and tech stack, best match first. Projects that do not match are
// dropped; an empty query returns projects unchanged.
func SearchProjects(projects []Project, query string) []Project {
	query = strings.TrimSpace(query)
	if query == "" {
		return projects
	}

	haystacks := make([]string, len(projects))
	for i, p := range projects {
		haystacks[i] = p.Title + " " + strings.Join(p.Tech, " ")
	}

	ranks := fuzzy.RankFindNormalizedFold(query, haystacks)
	sort.Stable(ranks)

	out := make([]Project, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, projects[r.OriginalIndex])
	}
	return out
}

// QueryProjects applies the category filter and then the search.
func QueryProjects(projects []Project, category, query string) []Project {
	return SearchProjects(FilterProjects(projects, category), query)
}

// HasFilter reports whether id is one of the dictionary's filter buttons.
func (p Projects) HasFilter(id string) bool {
	for _, f := range p.Filters {
		if f.ID == id {
			return true
		}
	}
	return false
}
