// Package extract implements the heuristic extractors of the matching core:
// skills from the pattern catalog, contact and identity entities, and job
// requirement classification.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/vmaltsev/resume-ranker/internal/taxonomy"
	"github.com/vmaltsev/resume-ranker/internal/textproc"
)

// supplementaryVocabulary lists general technical terms matched by plain
// containment in addition to the catalog patterns.
var supplementaryVocabulary = []string{
	"c#", "scala", "golang", "rust", "swift", "kotlin", "matlab", "sas", "stata",
	"git", "github", "gitlab", "bitbucket", "jira", "confluence", "slack", "trello",
	"ansible", "puppet", "chef", "vagrant", "nginx", "apache", "elasticsearch", "cassandra",
	"firebase", "dynamodb", "sqlite", "redshift", "snowflake", "tableau", "power bi",
	"excel", "powerpoint", "word", "outlook", "linux", "windows", "macos", "ubuntu",
	"agile", "scrum", "kanban", "waterfall", "lean", "api", "rest", "graphql", "soap",
	"json", "xml", "yaml", "oauth", "jwt", "saml", "microservices", "serverless",
	"big data", "data mining", "data analysis", "data visualization", "nlp", "computer vision",
	"neural networks", "reinforcement learning", "statistics", "analytics", "reporting",
	"hadoop", "spark", "kafka", "airflow", "etl", "data warehouse", "business intelligence",
}

var softSkillsVocabulary = []string{
	"communication", "teamwork", "leadership", "problem solving", "critical thinking",
	"time management", "adaptability", "creativity", "emotional intelligence", "negotiation",
	"conflict resolution", "decision making", "stress management", "flexibility", "patience",
	"empathy", "self-motivation", "reliability", "work ethic", "attention to detail",
	"organization", "interpersonal", "presentation", "mentoring", "coaching", "collaboration",
	"project management", "client management", "stakeholder management", "customer service",
}

// reSkillClean strips characters that are not part of a skill label.
var reSkillClean = regexp.MustCompile(`[^\w\s\+\-\.]`)

// patternMatcher is the per-pattern match strategy. A compiled whole-word
// regexp is preferred; when the pattern does not compile the matcher drops
// to plain substring containment so a malformed catalog entry can never
// abort extraction.
type patternMatcher struct {
	raw string
	re  *regexp.Regexp
}

func newPatternMatcher(pattern string) patternMatcher {
	re, err := regexp.Compile(`(?i)\b` + pattern + `\b`)
	if err != nil {
		return patternMatcher{raw: pattern}
	}
	return patternMatcher{raw: pattern, re: re}
}

// matches returns the skill candidates the pattern finds in the lowercased
// text. The substring strategy reports the pattern text itself with escape
// markers removed.
func (m patternMatcher) matches(text string) []string {
	if m.re == nil {
		needle := strings.ToLower(strings.ReplaceAll(m.raw, `\`, ""))
		if needle != "" && strings.Contains(text, needle) {
			return []string{strings.ReplaceAll(m.raw, `\`, "")}
		}
		return nil
	}

	var found []string
	for _, match := range m.re.FindAllString(text, -1) {
		cleaned := strings.TrimSpace(reSkillClean.ReplaceAllString(match, ""))
		if len(cleaned) > 1 {
			found = append(found, cleaned)
		}
	}
	return found
}

// SkillExtractor maps normalized text to a deduplicated skill list using the
// pattern catalog plus the supplementary vocabularies. It holds compiled
// patterns only; no file or network access happens at call time.
type SkillExtractor struct {
	matchers []patternMatcher
	logger   *zap.Logger
}

// NewSkillExtractor compiles the catalog once. Patterns that fail to compile
// are logged and kept with the substring strategy.
func NewSkillExtractor(catalog *taxonomy.Catalog, logger *zap.Logger) *SkillExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}

	var matchers []patternMatcher
	for _, category := range catalog.Categories {
		for _, pattern := range category.Patterns {
			m := newPatternMatcher(pattern)
			if m.re == nil {
				logger.Debug("skill pattern does not compile, using substring match",
					zap.String("category", category.Name),
					zap.String("pattern", pattern),
				)
			}
			matchers = append(matchers, m)
		}
	}

	return &SkillExtractor{matchers: matchers, logger: logger}
}

// Extract returns the deduplicated skills found in text. Comparison is
// case-insensitive; the first-seen casing is kept and entries of a single
// character are dropped.
func (e *SkillExtractor) Extract(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)
	var candidates []string

	for _, matcher := range e.matchers {
		candidates = append(candidates, matcher.matches(lower)...)
	}

	for _, skill := range supplementaryVocabulary {
		if strings.Contains(lower, skill) {
			candidates = append(candidates, skill)
		}
	}
	for _, skill := range softSkillsVocabulary {
		if strings.Contains(lower, skill) {
			candidates = append(candidates, skill)
		}
	}

	return textproc.DedupFold(candidates)
}

// String describes the extractor for debug logging.
func (e *SkillExtractor) String() string {
	return fmt.Sprintf("skill extractor with %d patterns", len(e.matchers))
}
