package scoring

import "strings"

// englishStopWords is the fixed stop word list excluded from the lexical
// vector space.
var englishStopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "could",
		"did", "do", "does", "doing", "down", "during", "each", "few", "for",
		"from", "further", "had", "has", "have", "having", "he", "her",
		"here", "hers", "herself", "him", "himself", "his", "how", "i", "if",
		"in", "into", "is", "it", "its", "itself", "just", "me", "more",
		"most", "my", "myself", "no", "nor", "not", "now", "of", "off", "on",
		"once", "only", "or", "other", "our", "ours", "ourselves", "out",
		"over", "own", "same", "she", "should", "so", "some", "such", "than",
		"that", "the", "their", "theirs", "them", "themselves", "then",
		"there", "these", "they", "this", "those", "through", "to", "too",
		"under", "until", "up", "very", "was", "we", "were", "what", "when",
		"where", "which", "while", "who", "whom", "why", "will", "with",
		"would", "you", "your", "yours", "yourself", "yourselves",
	}
	for _, word := range words {
		englishStopWords[word] = struct{}{}
	}
}

// tokenize splits normalized text into vector-space terms: whitespace
// separated tokens of at least two characters that are not stop words.
func tokenize(text string) []string {
	var tokens []string
	for _, token := range strings.Fields(text) {
		if len(token) < 2 {
			continue
		}
		if _, stop := englishStopWords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
