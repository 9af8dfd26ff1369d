package store

import (
	"strings"

	"studymeet/api"
)

// Filter derives the visible subset of sessions from the search term and the
// selected tag. A session is visible iff the term is empty or appears
// case-insensitively in its title or description, and the selected tag is
// empty or a member of its tags. The input is never mutated and relative
// order is preserved.
func Filter(sessions []api.Session, searchTerm, selectedTag string) []api.Session {
	term := strings.ToLower(searchTerm)

	visible := make([]api.Session, 0, len(sessions))
	for _, s := range sessions {
		if term != "" &&
			!strings.Contains(strings.ToLower(s.Title), term) &&
			!strings.Contains(strings.ToLower(s.Description), term) {
			continue
		}
		if selectedTag != "" && !containsTag(s.Tags, selectedTag) {
			continue
		}
		visible = append(visible, s)
	}
	return visible
}

// Tags returns the distinct tag universe across all sessions, in order of
// first appearance.
func Tags(sessions []api.Session) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, s := range sessions {
		for _, tag := range s.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
