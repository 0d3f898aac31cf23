// Package scoring combines lexical similarity and skill overlap into a
// single match score in [0,1].
package scoring

import "strings"

// The two score terms carry fixed weights; they are a design constant, not
// a per-call knob.
const (
	skillWeight   = 0.6
	lexicalWeight = 0.4
)

// Score computes the match score for one job/resume pair. Both texts are
// expected to be normalized already. The score is bounded in [0,1] by
// construction: both terms are ratios in [0,1] and the weights sum to one.
func Score(jobText, resumeText string, jobSkills, resumeSkills []string) float64 {
	return Combine(OverlapRatio(jobSkills, resumeSkills), LexicalSimilarity(jobText, resumeText))
}

// Combine applies the fixed weighting to the two score terms.
func Combine(overlapRatio, lexicalSimilarity float64) float64 {
	return skillWeight*overlapRatio + lexicalWeight*lexicalSimilarity
}

// OverlapRatio is the fraction of job skills present in the resume skill
// set, compared case-insensitively. An empty job skill set yields 0.0.
func OverlapRatio(jobSkills, resumeSkills []string) float64 {
	if len(jobSkills) == 0 {
		return 0.0
	}
	return float64(len(MatchingSkills(jobSkills, resumeSkills))) / float64(len(jobSkills))
}

// MatchingSkills returns the case-insensitive intersection of the two skill
// sets, keeping the job-side casing and order.
func MatchingSkills(jobSkills, resumeSkills []string) []string {
	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		resumeSet[strings.ToLower(skill)] = struct{}{}
	}

	var matching []string
	for _, skill := range jobSkills {
		if _, ok := resumeSet[strings.ToLower(skill)]; ok {
			matching = append(matching, skill)
		}
	}
	return matching
}
