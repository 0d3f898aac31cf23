package analyzer

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/vmaltsev/resume-ranker/internal/extract"
	"github.com/vmaltsev/resume-ranker/internal/taxonomy"
)

type stubSource struct {
	name string
	text string
	err  error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Text() (string, error) { return s.text, s.err }

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	loaded := taxonomy.Load("")
	return New(extract.NewSkillExtractor(loaded.Catalog, zap.NewNop()), zap.NewNop())
}

func TestAnalyzeJob(t *testing.T) {
	a := newTestAnalyzer(t)

	job := a.AnalyzeJob("Senior Engineer. Must have 5+ years of experience with Python and SQL. Bachelor's degree required.")

	if len(job.Skills) == 0 {
		t.Fatal("expected job skills to be extracted")
	}
	if len(job.Requirements.ExperienceYears) == 0 || job.Requirements.ExperienceYears[0] != "5 years" {
		t.Fatalf("expected experience years [5 years], got %v", job.Requirements.ExperienceYears)
	}
	if job.NormalizedText == "" || job.NormalizedText == job.Text {
		t.Fatalf("expected normalized text to differ from raw, got %q", job.NormalizedText)
	}
}

// Skills are extracted from normalized text, so punctuation-bearing
// patterns never see the raw punctuation.
func TestSkillsExtractedFromNormalizedText(t *testing.T) {
	a := newTestAnalyzer(t)
	raw := "Expert in node.js and CI/CD pipelines. Python is a plus."

	job := a.AnalyzeJob(raw)
	for _, skill := range job.Skills {
		if skill == "node.js" || skill == "ci/cd" {
			t.Fatalf("skill %q matched against raw text, skills: %v", skill, job.Skills)
		}
	}
	if !containsFold(job.Skills, "python") {
		t.Fatalf("expected python in job skills, got %v", job.Skills)
	}

	result := a.AnalyzeResume("dev.txt", raw, job)
	for _, skill := range result.Skills {
		if skill == "node.js" || skill == "ci/cd" {
			t.Fatalf("skill %q matched against raw resume text, skills: %v", skill, result.Skills)
		}
	}
}

func containsFold(items []string, needle string) bool {
	for _, item := range items {
		if strings.EqualFold(item, needle) {
			return true
		}
	}
	return false
}

func TestRunPartialFailure(t *testing.T) {
	a := newTestAnalyzer(t)
	job := a.AnalyzeJob("Looking for a developer with python and sql experience.")

	sources := []Source{
		&stubSource{name: "alice.txt", text: "Alice Smith\nExperienced python and sql developer."},
		&stubSource{name: "broken.pdf", err: errors.New("corrupt file")},
		&stubSource{name: "bob.txt", text: "Bob Jones\nJava developer with some python."},
	}

	results, failures := a.Run(sources, job)

	if results.Len() != 2 {
		t.Fatalf("expected 2 results, got %d", results.Len())
	}
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].Filename != "broken.pdf" {
		t.Fatalf("unexpected failed filename %q", failures[0].Filename)
	}

	// Both skills overlap for the first candidate, so it ranks first.
	if results[0].Filename != "alice.txt" || results[0].Rank != 1 {
		t.Fatalf("unexpected top result %+v", results[0])
	}
	if results[1].Rank != 2 {
		t.Fatalf("expected rank 2 for second result, got %d", results[1].Rank)
	}
	if results[0].Score < results[1].Score {
		t.Fatalf("ranking out of order: %f < %f", results[0].Score, results[1].Score)
	}
}

func TestRunAllFailures(t *testing.T) {
	a := newTestAnalyzer(t)
	job := a.AnalyzeJob("python developer")

	results, failures := a.Run([]Source{
		&stubSource{name: "a.pdf", err: errors.New("unreadable")},
		&stubSource{name: "b.pdf", err: errors.New("unreadable")},
	}, job)

	if results.Len() != 0 {
		t.Fatalf("expected no results, got %d", results.Len())
	}
	if len(failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(failures))
	}
}

func TestCandidateNameFallsBackToFilename(t *testing.T) {
	a := newTestAnalyzer(t)
	job := a.AnalyzeJob("python developer")

	results, _ := a.Run([]Source{
		&stubSource{name: "resume_123.txt", text: "python sql aws experience with 10 years in industry"},
	}, job)

	if results.Len() != 1 {
		t.Fatalf("expected 1 result, got %d", results.Len())
	}
	if results[0].CandidateName != "resume_123" {
		t.Fatalf("expected filename stem fallback, got %q", results[0].CandidateName)
	}
}
