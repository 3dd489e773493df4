// Package guestmatch decides whether a candidate guest name may join an
// event's confirmation list or is too close to a name already on it.
//
// The heuristic never merges people on its own; it only asks for more
// name detail when the first name collides, raising the bar as the guest
// supplies more words. A single word colliding with an existing first name
// asks for a full name; two words ask for an even fuller name when the
// surnames share their first three characters; three or more words are
// always accepted unless they are an exact duplicate.
package guestmatch

import "strings"

// Outcome classifies a candidate name against the existing list.
type Outcome int

const (
	// Accept means the name may be inserted as-is.
	Accept Outcome = iota
	// Duplicate means the exact trimmed name (case-sensitive) is already
	// confirmed.
	Duplicate
	// NeedFullName means a one-word candidate shares its first name with an
	// existing confirmation and the guest must supply a full name.
	NeedFullName
	// NeedFullerName means a two-word candidate is still too close to an
	// existing confirmation (same first name, surname prefix collision) and
	// the guest must supply additional name detail.
	NeedFullerName
)

// Decision is the matcher verdict. Match holds the existing name cited in a
// NeedFullName or NeedFullerName rejection and is empty otherwise.
type Decision struct {
	Outcome Outcome
	Match   string
}

// Evaluate runs the full decision tree for the single-guest confirmation
// path. The candidate is expected to be trimmed of surrounding whitespace.
func Evaluate(candidate string, existing []string) Decision {
	for _, name := range existing {
		if name == candidate {
			return Decision{Outcome: Duplicate}
		}
	}

	words := strings.Fields(candidate)
	if len(words) == 0 {
		return Decision{Outcome: Accept}
	}
	first := strings.ToLower(words[0])
	candidateLower := strings.ToLower(candidate)

	// Names sharing the candidate's first name but not its full name
	// (both compared case-insensitively).
	var similar []string
	for _, name := range existing {
		existingWords := strings.Fields(name)
		if len(existingWords) == 0 {
			continue
		}
		if strings.ToLower(existingWords[0]) == first && strings.ToLower(strings.TrimSpace(name)) != candidateLower {
			similar = append(similar, name)
		}
	}
	if len(similar) == 0 {
		return Decision{Outcome: Accept}
	}

	switch len(words) {
	case 1:
		return Decision{Outcome: NeedFullName, Match: similar[0]}
	case 2:
		for _, name := range similar {
			existingWords := strings.Fields(name)
			if len(existingWords) < 2 {
				continue
			}
			if prefix3(words[1]) == prefix3(existingWords[1]) {
				return Decision{Outcome: NeedFullerName, Match: name}
			}
		}
	}

	return Decision{Outcome: Accept}
}

// FirstNameMatch is the family path's weaker similarity check: it reports
// the first existing name whose first word equals the candidate's first
// word, case-insensitively. Unlike Evaluate it does not exclude names whose
// full form equals the candidate — exact duplicates are expected to have
// been filtered out before calling it.
func FirstNameMatch(candidate string, existing []string) (string, bool) {
	words := strings.Fields(candidate)
	if len(words) == 0 {
		return "", false
	}
	first := strings.ToLower(words[0])

	for _, name := range existing {
		existingWords := strings.Fields(name)
		if len(existingWords) == 0 {
			continue
		}
		if strings.ToLower(existingWords[0]) == first {
			return name, true
		}
	}
	return "", false
}

// prefix3 returns the first three runes of the word, lowercased. Shorter
// words are returned whole. Comparing surnames by such a short prefix
// flags unrelated surnames that happen to share it ("Santos"/"Santana")
// and misses related ones that diverge earlier. Known limitation of the
// heuristic, kept as-is.
func prefix3(word string) string {
	runes := []rune(strings.ToLower(word))
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return string(runes)
}
