package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/vmaltsev/resume-ranker/internal/match"
)

func testQuery(question string) Query {
	return Query{
		Question: question,
		Results: match.Results{
			{
				Rank:            1,
				CandidateName:   "Alice Smith",
				Filename:        "alice.txt",
				Skills:          []string{"Python", "SQL", "AWS"},
				MatchingSkills:  []string{"Python", "SQL"},
				MatchPercentage: 82,
			},
			{
				Rank:            2,
				CandidateName:   "Bob Jones",
				Filename:        "bob.txt",
				Skills:          []string{"Java", "Python"},
				MatchingSkills:  []string{"Python"},
				MatchPercentage: 45,
			},
		},
		JobSkills: []string{"Python", "SQL"},
	}
}

func TestRespondBestCandidate(t *testing.T) {
	r := NewRuleBased()

	answer, err := r.Respond(context.Background(), testQuery("Who is the best candidate?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "Alice Smith") || !strings.Contains(answer, "82%") {
		t.Fatalf("unexpected answer %q", answer)
	}
}

func TestRespondTopCandidates(t *testing.T) {
	r := NewRuleBased()

	answer, err := r.Respond(context.Background(), testQuery("Show the top 3 candidates"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "Alice Smith") || !strings.Contains(answer, "Bob Jones") {
		t.Fatalf("expected both candidates listed, got %q", answer)
	}
}

func TestRespondWhoHasSkill(t *testing.T) {
	r := NewRuleBased()

	answer, err := r.Respond(context.Background(), testQuery("Which candidates list SQL as a skill?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "Alice Smith") {
		t.Fatalf("expected Alice in answer, got %q", answer)
	}
	if strings.Contains(answer, "Bob Jones") {
		t.Fatalf("Bob has no SQL, got %q", answer)
	}
}

func TestRespondMissingSkillsForNamedCandidate(t *testing.T) {
	r := NewRuleBased()

	answer, err := r.Respond(context.Background(), testQuery("What skills is Bob Jones missing?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "Bob Jones") || !strings.Contains(answer, "SQL") {
		t.Fatalf("expected Bob's SQL gap, got %q", answer)
	}
}

func TestRespondCompare(t *testing.T) {
	r := NewRuleBased()

	answer, err := r.Respond(context.Background(), testQuery("Compare the leading candidates"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "Alice Smith") || !strings.Contains(answer, "Bob Jones") {
		t.Fatalf("expected both names, got %q", answer)
	}
}

func TestRespondSummary(t *testing.T) {
	r := NewRuleBased()

	answer, err := r.Respond(context.Background(), testQuery("Summarize the overall matches"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// (82 + 45) / 2 = 63
	if !strings.Contains(answer, "63%") {
		t.Fatalf("expected average match in summary, got %q", answer)
	}
}

func TestRespondUnknownQuestion(t *testing.T) {
	r := NewRuleBased()

	answer, err := r.Respond(context.Background(), testQuery("What is the weather like?"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "I can answer") {
		t.Fatalf("expected capability summary, got %q", answer)
	}
}

func TestRespondEmptyBatch(t *testing.T) {
	r := NewRuleBased()

	answer, err := r.Respond(context.Background(), Query{Question: "top candidates?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(answer, "No candidates") {
		t.Fatalf("unexpected answer %q", answer)
	}
}
