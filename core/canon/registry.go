package canon

import "strings"

// Normalize resolves a free-form book name to its canonical spelling.
// Matching order: exact case-insensitive lookup against canonical names and
// aliases, then a prefix pass where a known key matching the front of the
// input wins (longest key preferred, so "song of songs" beats "song").
// Returns "" when nothing matches; Normalize never errors.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.TrimSuffix(key, ".")
	if key == "" {
		return ""
	}

	if name, ok := aliasTable[key]; ok {
		return name
	}

	best := ""
	bestLen := 0
	for alias, name := range aliasTable {
		if len(alias) > bestLen && strings.HasPrefix(key, alias) {
			best = name
			bestLen = len(alias)
		}
	}
	return best
}

// ExtractBookPrefix pulls the leading book-name substring out of a raw
// citation. It considers a numbered pattern ("1 John", "2Tim") and one- to
// three-word alphabetic prefixes, and keeps the longest candidate that
// normalizes. Multi-word names ("Song of Solomon") must not be shadowed by a
// shorter match, hence longest-wins. Returns "" when no candidate resolves.
func ExtractBookPrefix(reference string) string {
	words := strings.Fields(strings.TrimSpace(reference))
	if len(words) == 0 {
		return ""
	}

	var candidates []string

	// Numbered-book patterns: "1 John" and the fused "1John".
	if isBookNumber(words[0]) && len(words) >= 2 && isAlphaWord(words[1]) {
		candidates = append(candidates, words[0]+" "+words[1])
	}
	if len(words[0]) >= 2 && isBookNumber(words[0][:1]) && isAlphaWord(words[0][1:]) {
		candidates = append(candidates, words[0])
	}

	// Plain word prefixes, longest first. Words carrying digits or
	// punctuation belong to the chapter/verse part, not the book name.
	for n := min(3, len(words)); n >= 1; n-- {
		ok := true
		for _, w := range words[:n] {
			if !isAlphaWord(strings.TrimSuffix(w, ".")) {
				ok = false
				break
			}
		}
		if ok {
			candidates = append(candidates, strings.Join(words[:n], " "))
		}
	}

	best := ""
	for _, c := range candidates {
		if len(c) > len(best) && Normalize(c) != "" {
			best = c
		}
	}
	return best
}

func isBookNumber(s string) bool {
	return s == "1" || s == "2" || s == "3"
}

func isAlphaWord(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
