package utils

import "strings"

// NormalizeTags trims and lowercases every tag, keeping order and
// duplicates. Blank tags are dropped.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// LowercaseTags lowercases every tag and nothing else.
func LowercaseTags(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(t)
	}
	return out
}

// MissingTags returns the tags of candidates not yet in have, each once.
func MissingTags(have, candidates []string) []string {
	seen := make(map[string]struct{}, len(have)+len(candidates))
	for _, t := range have {
		seen[t] = struct{}{}
	}
	var out []string
	for _, t := range candidates {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
