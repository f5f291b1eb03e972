package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"mercator-hq/rowmark/pkg/mark/ast"
)

// maxSuggestDistance is the largest edit distance still worth suggesting.
const maxSuggestDistance = 2

// SuggestTypeName suggests a known type alias for an unrecognized name.
// It returns an empty string when nothing is close enough.
func SuggestTypeName(unknown string) string {
	if match := closestMatch(strings.ToLower(unknown), ast.AllAliases()); match != "" {
		return fmt.Sprintf("Did you mean '%s'?", match)
	}
	return ""
}

// SuggestEnumKey suggests a key of an enum table for a value that matched none.
func SuggestEnumKey(unknown string, table ast.EnumTable) string {
	keys := make([]string, len(table))
	for i, entry := range table {
		keys[i] = entry.Key
	}
	if match := closestMatch(unknown, keys); match != "" {
		return fmt.Sprintf("Did you mean '%s'?", match)
	}
	if len(keys) > 5 {
		return fmt.Sprintf("Valid keys include: %s, ...", strings.Join(keys[:5], ", "))
	}
	if len(keys) > 0 {
		return fmt.Sprintf("Valid keys: %s", strings.Join(keys, ", "))
	}
	return ""
}

// SuggestName suggests the candidate closest to unknown, or returns an
// empty string when nothing is close enough.
func SuggestName(unknown string, candidates []string) string {
	if match := closestMatch(unknown, candidates); match != "" {
		return fmt.Sprintf("Did you mean '%s'?", match)
	}
	return ""
}

// SuggestBracket explains how to fix a mismatched closing bracket.
func SuggestBracket(open, close string) string {
	return fmt.Sprintf("scope opened with '%s' must be closed with '%s'", open, close)
}

// closestMatch ranks candidates that contain the target as a subsequence
// first, then falls back to the smallest edit distance.
func closestMatch(target string, candidates []string) string {
	if target == "" || len(candidates) == 0 {
		return ""
	}

	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}

	best, bestDistance := "", maxSuggestDistance+1
	for _, candidate := range candidates {
		dist := fuzzy.LevenshteinDistance(strings.ToLower(target), strings.ToLower(candidate))
		if dist < bestDistance {
			best, bestDistance = candidate, dist
		}
	}
	return best
}
