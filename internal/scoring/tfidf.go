package scoring

import "math"

// LexicalSimilarity computes the cosine similarity between two documents in
// a term-frequency/inverse-document-frequency vector space built over the
// two-document corpus. Term frequencies are raw counts, the idf uses the
// smoothed form ln((1+n)/(1+df))+1 and vectors are l2-normalized before the
// dot product.
//
// Degenerate input (both texts empty, or reduced to stop words and
// single-character tokens) yields 0.0; this function never fails.
func LexicalSimilarity(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	countsA := termCounts(tokensA)
	countsB := termCounts(tokensB)

	vocabulary := make(map[string]struct{}, len(countsA)+len(countsB))
	for term := range countsA {
		vocabulary[term] = struct{}{}
	}
	for term := range countsB {
		vocabulary[term] = struct{}{}
	}
	if len(vocabulary) == 0 {
		return 0.0
	}

	const docs = 2.0

	var dot, normA, normB float64
	for term := range vocabulary {
		df := 0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}

		idf := math.Log((1+docs)/(1+float64(df))) + 1

		weightA := float64(countsA[term]) * idf
		weightB := float64(countsB[term]) * idf

		dot += weightA * weightB
		normA += weightA * weightA
		normB += weightB * weightB
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		counts[token]++
	}
	return counts
}
