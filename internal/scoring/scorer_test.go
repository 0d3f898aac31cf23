package scoring

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCombineWeights(t *testing.T) {
	// Full overlap with lexical similarity 0.5 gives 0.6*1.0 + 0.4*0.5.
	if got := Combine(1.0, 0.5); !almostEqual(got, 0.8) {
		t.Fatalf("expected 0.8, got %v", got)
	}
}

func TestOverlapRatio(t *testing.T) {
	jobSkills := []string{"python", "sql"}
	resumeSkills := []string{"python", "sql", "java"}

	if got := OverlapRatio(jobSkills, resumeSkills); !almostEqual(got, 1.0) {
		t.Fatalf("expected full overlap, got %v", got)
	}
	if got := OverlapRatio(jobSkills, []string{"python"}); !almostEqual(got, 0.5) {
		t.Fatalf("expected 0.5 overlap, got %v", got)
	}
	if got := OverlapRatio(jobSkills, nil); got != 0.0 {
		t.Fatalf("expected zero overlap, got %v", got)
	}
}

func TestOverlapRatioCaseInsensitive(t *testing.T) {
	if got := OverlapRatio([]string{"Python"}, []string{"PYTHON"}); !almostEqual(got, 1.0) {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
}

func TestScoreEmptyJobSkills(t *testing.T) {
	jobText := "looking for a backend developer"
	resumeText := "experienced backend developer"

	lexical := LexicalSimilarity(jobText, resumeText)
	score := Score(jobText, resumeText, nil, []string{"python", "sql"})

	if !almostEqual(score, 0.4*lexical) {
		t.Fatalf("with empty job skills score must be 0.4*lexical: got %v, lexical %v", score, lexical)
	}
}

func TestScoreBounds(t *testing.T) {
	cases := []struct {
		job, resume            string
		jobSkills, resumeSkill []string
	}{
		{"", "", nil, nil},
		{"python developer wanted", "python developer here", []string{"python"}, []string{"python"}},
		{"go go go", "completely unrelated text", []string{"go"}, []string{"rust"}},
		{"the and of", "a an the", []string{"x"}, []string{"y"}},
	}

	for _, tc := range cases {
		score := Score(tc.job, tc.resume, tc.jobSkills, tc.resumeSkill)
		if score < 0.0 || score > 1.0 {
			t.Fatalf("score out of bounds for %q vs %q: %v", tc.job, tc.resume, score)
		}
	}
}

func TestLexicalSimilarityIdenticalTexts(t *testing.T) {
	text := "senior python developer with sql experience"

	if got := LexicalSimilarity(text, text); !almostEqual(got, 1.0) {
		t.Fatalf("identical texts must have similarity 1.0, got %v", got)
	}
}

func TestLexicalSimilarityDisjointTexts(t *testing.T) {
	if got := LexicalSimilarity("alpha beta gamma", "delta epsilon zeta"); got != 0.0 {
		t.Fatalf("disjoint texts must have similarity 0.0, got %v", got)
	}
}

func TestLexicalSimilarityDegenerateInput(t *testing.T) {
	// Texts reduced to stop words or single characters must not fail; the
	// lexical term drops to zero instead.
	cases := [][2]string{
		{"", ""},
		{"the and of to", "a an the"},
		{"x y z", "q w e"},
		{"python developer", ""},
	}

	for _, tc := range cases {
		if got := LexicalSimilarity(tc[0], tc[1]); got != 0.0 {
			t.Fatalf("expected 0.0 for %q vs %q, got %v", tc[0], tc[1], got)
		}
	}
}

func TestMatchingSkillsKeepsJobOrderAndCasing(t *testing.T) {
	matching := MatchingSkills([]string{"SQL", "Python", "java"}, []string{"python", "sql"})

	if len(matching) != 2 || matching[0] != "SQL" || matching[1] != "Python" {
		t.Fatalf("unexpected matching skills: %v", matching)
	}
}
