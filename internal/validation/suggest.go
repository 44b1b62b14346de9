package validation

// levenshtein computes the edit distance between two strings. Codes are 4-5
// chars so the quadratic cost is irrelevant; no third-party string-metrics
// dependency is worth pulling in for this.
func levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(b)]
}

// nearestCode returns the candidate with the smallest edit distance to code.
// Ties resolve to the earliest candidate, so callers passing sorted codes get
// deterministic suggestions. Returns false only when candidates is empty.
func nearestCode(code string, candidates []string) (string, bool) {
	best := ""
	bestDist := -1

	for _, candidate := range candidates {
		dist := levenshtein(code, candidate)
		if bestDist < 0 || dist < bestDist {
			best = candidate
			bestDist = dist
		}
	}

	return best, bestDist >= 0
}
