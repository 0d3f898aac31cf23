// Package match holds the per-candidate match records and the batch-level
// operations over them: deterministic ranking, post-ranking filters and
// keyword aggregation.
package match

import (
	"sort"
	"strings"
)

// Result is the match record for a single resume against the job.
type Result struct {
	Filename       string   `json:"filename"`
	CandidateName  string   `json:"candidate_name"`
	Text           string   `json:"text"`
	NormalizedText string   `json:"normalized_text"`
	Skills         []string `json:"skills"`
	MatchingSkills []string `json:"matching_skills"`
	Score          float64  `json:"similarity_score"`
	// MatchPercentage is floor(Score*100).
	MatchPercentage int `json:"match_percentage"`
	// Rank is 1-based and assigned by Rank; zero before ranking.
	Rank int `json:"rank,omitempty"`
}

// Failure records a resume that could not be processed. Failures never
// abort a batch; they are reported next to the successful results.
type Failure struct {
	Filename string
	Err      error
}

// Results is an ordered batch of match records.
type Results []*Result

func (r Results) Len() int {
	return len(r)
}

// Rank sorts the batch by score descending and assigns 1-based ranks. The
// sort is stable: candidates with equal scores keep their original relative
// order. An empty batch is not an error.
func (r Results) Rank() Results {
	sort.SliceStable(r, func(i, j int) bool {
		return r[i].Score > r[j].Score
	})
	for i, result := range r {
		result.Rank = i + 1
	}
	return r
}

// MinMatch returns the results at or above the given match percentage. It is
// applied after ranking and never alters scores.
func (r Results) MinMatch(percentage int) Results {
	filtered := make(Results, 0, len(r))
	for _, result := range r {
		if result.MatchPercentage >= percentage {
			filtered = append(filtered, result)
		}
	}
	return filtered
}

// Top returns the first n results. A non-positive or oversized n returns the
// batch unchanged.
func (r Results) Top(n int) Results {
	if n <= 0 || n >= len(r) {
		return r
	}
	return r[:n]
}

// Names lists candidate names in batch order.
func (r Results) Names() []string {
	names := make([]string, 0, len(r))
	for _, result := range r {
		names = append(names, result.CandidateName)
	}
	return names
}

// FindByName returns the first result whose candidate name or filename
// matches case-insensitively, or nil.
func (r Results) FindByName(name string) *Result {
	for _, result := range r {
		if strings.EqualFold(result.CandidateName, name) || strings.EqualFold(result.Filename, name) {
			return result
		}
	}
	return nil
}
