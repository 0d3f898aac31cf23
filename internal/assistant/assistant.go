// Package assistant answers free-form questions about a ranked candidate
// batch. The rule-based responder works offline; the gemini subpackage
// provides an AI-backed implementation with the same interface.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/vmaltsev/resume-ranker/internal/match"
)

// Query carries the ranked context a responder answers over.
type Query struct {
	Question  string
	Results   match.Results
	JobSkills []string
}

// Responder answers a question about the candidates.
type Responder interface {
	Respond(ctx context.Context, q Query) (string, error)
}

type rule struct {
	matches func(question string) bool
	answer  func(q Query) string
}

// RuleBased answers recruiter questions from the match data alone, without
// any external service. Rules are evaluated in order and the first match
// wins; unmatched questions get a capability summary.
type RuleBased struct {
	rules []rule
}

func NewRuleBased() *RuleBased {
	r := &RuleBased{}
	r.rules = []rule{
		{matchesAny("best", "highest", "strongest"), r.bestCandidate},
		{matchesAny("compare"), r.compareTop},
		{matchesAny("missing", "lack", "gap"), r.missingSkills},
		{matchesAny("top"), r.topCandidates},
		{matchesAny("who has", "which candidates", "who knows", "who lists"), r.whoHasSkill},
		{matchesAny("summary", "summarize", "overview"), r.summarize},
	}
	return r
}

func (r *RuleBased) Respond(_ context.Context, q Query) (string, error) {
	if q.Results.Len() == 0 {
		return "No candidates have been analyzed yet.", nil
	}

	question := strings.ToLower(q.Question)
	for _, rule := range r.rules {
		if rule.matches(question) {
			return rule.answer(q), nil
		}
	}

	return "I can answer questions about the top candidates, the best match, " +
		"who has a specific skill, missing skills for a candidate, a comparison " +
		"of the leaders, or an overall summary.", nil
}

func matchesAny(needles ...string) func(string) bool {
	return func(question string) bool {
		for _, needle := range needles {
			if strings.Contains(question, needle) {
				return true
			}
		}
		return false
	}
}

func (r *RuleBased) topCandidates(q Query) string {
	top := q.Results.Top(3)
	var b strings.Builder
	b.WriteString("Top candidates:\n")
	for _, result := range top {
		fmt.Fprintf(&b, "%d. %s (%d%% match), skills: %s\n",
			result.Rank, result.CandidateName, result.MatchPercentage,
			strings.Join(result.MatchingSkills, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *RuleBased) bestCandidate(q Query) string {
	best := q.Results[0]
	return fmt.Sprintf("The best match is %s with a %d%% match. Matching skills: %s.",
		best.CandidateName, best.MatchPercentage, strings.Join(best.MatchingSkills, ", "))
}

func (r *RuleBased) whoHasSkill(q Query) string {
	skill := skillFromQuestion(strings.ToLower(q.Question), q.JobSkills, q.Results)
	if skill == "" {
		return "I could not tell which skill you are asking about. Try naming it directly, for example: who has python?"
	}

	var holders []string
	for _, result := range q.Results {
		for _, s := range result.Skills {
			if strings.EqualFold(s, skill) {
				holders = append(holders, result.CandidateName)
				break
			}
		}
	}
	if len(holders) == 0 {
		return fmt.Sprintf("No candidate lists %s.", skill)
	}
	return fmt.Sprintf("Candidates with %s: %s.", skill, strings.Join(holders, ", "))
}

func (r *RuleBased) missingSkills(q Query) string {
	target := candidateFromQuestion(q.Question, q.Results)
	if target == nil {
		target = q.Results[0]
	}

	var missing []string
	for _, jobSkill := range q.JobSkills {
		found := false
		for _, s := range target.Skills {
			if strings.EqualFold(s, jobSkill) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, jobSkill)
		}
	}
	if len(missing) == 0 {
		return fmt.Sprintf("%s covers every required skill.", target.CandidateName)
	}
	return fmt.Sprintf("%s is missing: %s.", target.CandidateName, strings.Join(missing, ", "))
}

func (r *RuleBased) compareTop(q Query) string {
	if q.Results.Len() < 2 {
		return "There is only one candidate, nothing to compare."
	}
	first, second := q.Results[0], q.Results[1]
	return fmt.Sprintf("%s leads with %d%% against %s at %d%%. %s matches: %s. %s matches: %s.",
		first.CandidateName, first.MatchPercentage,
		second.CandidateName, second.MatchPercentage,
		first.CandidateName, strings.Join(first.MatchingSkills, ", "),
		second.CandidateName, strings.Join(second.MatchingSkills, ", "))
}

func (r *RuleBased) summarize(q Query) string {
	total := 0
	for _, result := range q.Results {
		total += result.MatchPercentage
	}
	avg := total / q.Results.Len()
	best := q.Results[0]
	return fmt.Sprintf("%d candidates were ranked against %d job skills. "+
		"The average match is %d%% and the strongest candidate is %s at %d%%.",
		q.Results.Len(), len(q.JobSkills), avg, best.CandidateName, best.MatchPercentage)
}

// skillFromQuestion looks for a known skill mentioned in the question,
// preferring job skills over candidate skills.
func skillFromQuestion(question string, jobSkills []string, results match.Results) string {
	for _, skill := range jobSkills {
		if strings.Contains(question, strings.ToLower(skill)) {
			return skill
		}
	}
	for _, result := range results {
		for _, skill := range result.Skills {
			if strings.Contains(question, strings.ToLower(skill)) {
				return skill
			}
		}
	}
	return ""
}

// candidateFromQuestion matches a candidate name or filename mentioned in
// the question.
func candidateFromQuestion(question string, results match.Results) *match.Result {
	lowered := strings.ToLower(question)
	for _, result := range results {
		if result.CandidateName != "" && strings.Contains(lowered, strings.ToLower(result.CandidateName)) {
			return result
		}
		if strings.Contains(lowered, strings.ToLower(result.Filename)) {
			return result
		}
	}
	return nil
}
