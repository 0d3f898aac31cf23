package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vmaltsev/resume-ranker/internal/textproc"
)

// JobRequirements holds the categorized requirements extracted from a job
// description. Lists are deduplicated; order is not significant.
type JobRequirements struct {
	RequiredSkills        []string `json:"required_skills"`
	PreferredSkills       []string `json:"preferred_skills"`
	ExperienceYears       []string `json:"experience_years"`
	EducationRequirements []string `json:"education_requirements"`
	Certifications        []string `json:"certifications"`
	JobType               []string `json:"job_type"`
}

var (
	// Three experience phrasings: plain, "minimum of N", "at least N".
	reExperienceYears = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s*)?(?:experience|exp)`),
		regexp.MustCompile(`minimum\s*(?:of\s*)?(\d+)\s*(?:years?|yrs?)`),
		regexp.MustCompile(`at\s*least\s*(\d+)\s*(?:years?|yrs?)`),
	}

	educationKeywords = []struct {
		re    *regexp.Regexp
		label string
	}{
		{regexp.MustCompile(`bachelor['s]*\s*(?:degree)?`), "bachelor's degree"},
		{regexp.MustCompile(`master['s]*\s*(?:degree)?`), "master's degree"},
		{regexp.MustCompile(`phd`), "phd"},
		{regexp.MustCompile(`doctorate`), "doctorate"},
		{regexp.MustCompile(`b\.s\.?`), "b.s."},
		{regexp.MustCompile(`b\.a\.?`), "b.a."},
		{regexp.MustCompile(`m\.s\.?`), "m.s."},
		{regexp.MustCompile(`m\.a\.?`), "m.a."},
		{regexp.MustCompile(`mba`), "mba"},
	}

	reCertifications = []*regexp.Regexp{
		regexp.MustCompile(`(?:aws|azure|google|microsoft|oracle|cisco)\s+certified[^\n.]*`),
		regexp.MustCompile(`certified\s+[a-z\s]+(?:professional|associate|expert)`),
		regexp.MustCompile(`certification\s+in\s+[a-z\s]+`),
	}

	jobTypeKeywords = []string{
		"full-time", "part-time", "contract", "remote", "on-site",
		"hybrid", "freelance", "temporary", "permanent",
	}

	requiredIndicators  = []string{"required", "must have", "essential", "mandatory", "minimum", "should have"}
	preferredIndicators = []string{"preferred", "nice to have", "bonus", "plus", "desired", "would be great"}

	reSentenceSplit = regexp.MustCompile(`[.!?]`)
)

// RequirementClassifier buckets a job description into categorized
// requirements. It is invoked on job descriptions only, never on resumes.
type RequirementClassifier struct {
	skills *SkillExtractor
}

func NewRequirementClassifier(skills *SkillExtractor) *RequirementClassifier {
	return &RequirementClassifier{skills: skills}
}

// Classify extracts requirements from raw job description text.
func (c *RequirementClassifier) Classify(text string) JobRequirements {
	var req JobRequirements
	if strings.TrimSpace(text) == "" {
		return req
	}

	lower := strings.ToLower(text)

	for _, re := range reExperienceYears {
		for _, match := range re.FindAllStringSubmatch(lower, -1) {
			req.ExperienceYears = append(req.ExperienceYears, fmt.Sprintf("%s years", match[1]))
		}
	}

	for _, keyword := range educationKeywords {
		if keyword.re.MatchString(lower) {
			req.EducationRequirements = append(req.EducationRequirements, keyword.label)
		}
	}

	for _, re := range reCertifications {
		for _, match := range re.FindAllString(lower, -1) {
			req.Certifications = append(req.Certifications, strings.TrimSpace(match))
		}
	}

	for _, keyword := range jobTypeKeywords {
		if strings.Contains(lower, keyword) {
			req.JobType = append(req.JobType, keyword)
		}
	}

	// Sentence-level bucketing. Sentences without any indicator default to
	// the required bucket; this mirrors the source system even though it
	// inflates required skills.
	for _, sentence := range reSentenceSplit.Split(text, -1) {
		sentenceLower := strings.ToLower(strings.TrimSpace(sentence))
		if sentenceLower == "" {
			continue
		}

		skills := c.skills.Extract(sentence)
		if len(skills) == 0 {
			continue
		}

		switch {
		case containsAny(sentenceLower, requiredIndicators):
			req.RequiredSkills = append(req.RequiredSkills, skills...)
		case containsAny(sentenceLower, preferredIndicators):
			req.PreferredSkills = append(req.PreferredSkills, skills...)
		default:
			req.RequiredSkills = append(req.RequiredSkills, skills...)
		}
	}

	req.RequiredSkills = textproc.DedupFold(req.RequiredSkills)
	req.PreferredSkills = textproc.DedupFold(req.PreferredSkills)
	req.ExperienceYears = dedupKeepShort(req.ExperienceYears)
	req.EducationRequirements = dedupKeepShort(req.EducationRequirements)
	req.Certifications = dedupKeepShort(req.Certifications)
	req.JobType = dedupKeepShort(req.JobType)

	return req
}

// dedupKeepShort deduplicates without the minimum-length rule that applies
// to skill labels.
func dedupKeepShort(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}
	return out
}
