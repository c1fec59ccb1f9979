package title

import (
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

var nonAlphanumeric = regexp.MustCompile(`[^\p{L}\p{M}\p{N}]+`)

// Normalize lower cases a title and collapses every run of punctuation or whitespace into a single space.
// The result is safe to compare against other normalized titles and Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	return strings.TrimSpace(nonAlphanumeric.ReplaceAllString(strings.ToLower(s), " "))
}

// Similarity returns the Sørensen–Dice coefficient of the character bigrams of a and b.
// Whitespace is ignored and repeated bigrams are counted each time they occur.
// The score is symmetric, 1 for identical non-empty strings and 0 when either side is too short to have a bigram.
func Similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 0
		}
		return 1
	}

	first := []rune(strings.Join(strings.Fields(a), ""))
	second := []rune(strings.Join(strings.Fields(b), ""))
	if len([]rune(a)) < 2 || len([]rune(b)) < 2 {
		return 0
	}

	if string(first) == string(second) {
		if len(first) == 0 {
			return 0
		}
		return 1
	}

	if len(first) < 2 || len(second) < 2 {
		return 0
	}

	firstBigrams := edlib.Shingle(string(first), 2)
	secondBigrams := edlib.Shingle(string(second), 2)

	intersection := 0
	for bigram, n := range firstBigrams {
		intersection += min(n, secondBigrams[bigram])
	}

	return 2 * float64(intersection) / float64(len(first)+len(second)-2)
}

// BestMatch returns the index and score of the candidate most similar to target.
// The first candidate wins ties. The index is -1 when there are no candidates.
func BestMatch(target string, candidates []string) (int, float64) {
	best, bestScore := -1, -1.0
	for i, c := range candidates {
		score := Similarity(target, c)
		if score > bestScore {
			best, bestScore = i, score
		}
	}

	if best == -1 {
		return -1, 0
	}
	return best, bestScore
}
