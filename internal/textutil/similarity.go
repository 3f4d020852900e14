package textutil

import (
	"sort"
	"strings"
)

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// suggestThreshold is the minimum similarity for a candidate to be suggested.
const suggestThreshold = 0.3

// Suggest returns up to limit candidates that resemble query, best first.
// A candidate whose folded form contains the folded query always qualifies.
// Ties keep the order of candidates.
func Suggest(query string, candidates []string, limit int) []string {
	if limit <= 0 || len(candidates) == 0 {
		return nil
	}
	folded := FoldName(query)
	if folded == "" {
		return nil
	}
	queryPrint := NewFingerprint(query)

	type scored struct {
		name  string
		score float64
	}
	matches := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		score := CosineSimilarity(queryPrint, NewFingerprint(candidate))
		if strings.Contains(FoldName(candidate), folded) && score < 1 {
			score = 1
		}
		if score < suggestThreshold {
			continue
		}
		matches = append(matches, scored{name: candidate, score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}
