package typoutil

// CalculateLevenshteinDistance computes the Levenshtein distance between two strings.
// It represents the minimum number of single-character edits (insertions, deletions, or substitutions)
// required to change one word into the other. Transpositions count as two edits.
// This implementation properly handles Unicode characters by working with runes.
func CalculateLevenshteinDistance(a, b string) int {
	// Convert strings to rune slices to properly handle Unicode
	runesA := []rune(a)
	runesB := []rune(b)

	lenA := len(runesA)
	lenB := len(runesB)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	// matrix[i][j] will be the Levenshtein distance between the first i characters of a
	// and the first j characters of b.
	matrix := make([][]int, lenA+1)
	for i := range matrix {
		matrix[i] = make([]int, lenB+1)
	}

	for i := 0; i <= lenA; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= lenB; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}

			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			matrix[i][j] = min3(deletion, insertion, substitution)
		}
	}

	return matrix[lenA][lenB]
}

// Similarity returns the normalized edit similarity of two strings:
// (maxLen - distance) / maxLen. Equal strings, including two empty ones, score 1.0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := len([]rune(a))
	if lenB := len([]rune(b)); lenB > maxLen {
		maxLen = lenB
	}

	return float64(maxLen-CalculateLevenshteinDistance(a, b)) / float64(maxLen)
}

// min3 is a helper function to find the minimum of three integers
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
