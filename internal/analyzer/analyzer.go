// Package analyzer runs the end-to-end matching pipeline: it analyzes the
// job description once, then scores every resume against it.
package analyzer

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vmaltsev/resume-ranker/internal/extract"
	"github.com/vmaltsev/resume-ranker/internal/match"
	"github.com/vmaltsev/resume-ranker/internal/scoring"
	"github.com/vmaltsev/resume-ranker/internal/textproc"
)

// Source supplies the text of a single resume. Text may fail (unreadable
// file, broken encoding); such failures are collected per item and never
// abort the batch.
type Source interface {
	Name() string
	Text() (string, error)
}

// Job is the analyzed job description all resumes are scored against.
type Job struct {
	Text           string                  `json:"text"`
	NormalizedText string                  `json:"normalized_text"`
	Skills         []string                `json:"skills"`
	Entities       []extract.Entity        `json:"entities"`
	Requirements   extract.JobRequirements `json:"requirements"`
}

// Analyzer aggregates the extraction stages shared by job and resume
// analysis.
type Analyzer struct {
	skills     *extract.SkillExtractor
	classifier *extract.RequirementClassifier
	logger     *zap.Logger
}

func New(skills *extract.SkillExtractor, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		skills:     skills,
		classifier: extract.NewRequirementClassifier(skills),
		logger:     logger,
	}
}

// AnalyzeJob normalizes the job description and extracts its skills,
// entities and structured requirements.
func (a *Analyzer) AnalyzeJob(text string) *Job {
	normalized := textproc.Normalize(text)
	job := &Job{
		Text:           text,
		NormalizedText: normalized,
		Skills:         a.skills.Extract(normalized),
		Entities:       extract.Entities(text),
		Requirements:   a.classifier.Classify(text),
	}

	a.logger.Info("job description analyzed",
		zap.Int("skills", len(job.Skills)),
		zap.Int("entities", len(job.Entities)),
		zap.Int("required", len(job.Requirements.RequiredSkills)),
		zap.Int("preferred", len(job.Requirements.PreferredSkills)),
	)

	return job
}

// AnalyzeResume scores a single resume text against the job.
func (a *Analyzer) AnalyzeResume(filename, text string, job *Job) *match.Result {
	normalized := textproc.Normalize(text)
	skills := a.skills.Extract(normalized)
	score := scoring.Score(job.NormalizedText, normalized, job.Skills, skills)

	return &match.Result{
		Filename:        filename,
		CandidateName:   candidateName(filename, text),
		Text:            text,
		NormalizedText:  normalized,
		Skills:          skills,
		MatchingSkills:  scoring.MatchingSkills(job.Skills, skills),
		Score:           score,
		MatchPercentage: int(score * 100),
	}
}

// Run processes the resume batch sequentially. Every source that fails to
// yield text becomes a Failure; the remaining results are ranked before
// being returned.
func (a *Analyzer) Run(sources []Source, job *Job) (match.Results, []match.Failure) {
	results := make(match.Results, 0, len(sources))
	var failures []match.Failure

	for _, src := range sources {
		text, err := src.Text()
		if err != nil {
			a.logger.Warn("resume skipped",
				zap.String("filename", src.Name()),
				zap.Error(err),
			)
			failures = append(failures, match.Failure{Filename: src.Name(), Err: err})
			continue
		}

		result := a.AnalyzeResume(src.Name(), text, job)
		a.logger.Info("resume analyzed",
			zap.String("filename", result.Filename),
			zap.String("candidate", result.CandidateName),
			zap.Int("skills", len(result.Skills)),
			zap.Int("match_percentage", result.MatchPercentage),
		)
		results = append(results, result)
	}

	results.Rank()

	a.logger.Info("batch complete",
		zap.Int("processed", results.Len()),
		zap.Int("failed", len(failures)),
	)

	return results, failures
}

// candidateName prefers a person entity found in the resume header and
// falls back to the filename without its extension.
func candidateName(filename, text string) string {
	if name := extract.PersonName(extract.Entities(text)); name != "" {
		return name
	}
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
