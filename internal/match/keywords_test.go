package match

import "testing"

func TestTopKeywords(t *testing.T) {
	results := Results{
		{CandidateName: "A", Skills: []string{"python", "sql"}},
		{CandidateName: "B", Skills: []string{"python", "java"}},
	}
	jobSkills := []string{"python", "sql"}

	rows := TopKeywords(results, jobSkills, 10)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", rows)
	}
	if rows[0].Keyword != "python" || rows[0].Frequency != 2 {
		t.Fatalf("expected python with frequency 2, got %+v", rows[0])
	}
	if rows[1].Keyword != "sql" || rows[1].Frequency != 1 {
		t.Fatalf("expected sql with frequency 1, got %+v", rows[1])
	}
}

func TestTopKeywordsExcludesNonJobSkills(t *testing.T) {
	results := Results{{Skills: []string{"java", "rust"}}}

	if rows := TopKeywords(results, []string{"python"}, 10); len(rows) != 0 {
		t.Fatalf("expected no rows, got %v", rows)
	}
}

func TestTopKeywordsTiesKeepFirstEncounteredOrder(t *testing.T) {
	results := Results{
		{Skills: []string{"sql", "python"}},
		{Skills: []string{"python", "sql"}},
	}

	rows := TopKeywords(results, []string{"python", "sql"}, 10)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", rows)
	}
	// Both have frequency 2; sql was encountered first.
	if rows[0].Keyword != "sql" || rows[1].Keyword != "python" {
		t.Fatalf("tie order not preserved: %+v", rows)
	}
}

func TestTopKeywordsTruncates(t *testing.T) {
	results := Results{
		{Skills: []string{"a1", "b2", "c3"}},
	}

	rows := TopKeywords(results, []string{"a1", "b2", "c3"}, 2)
	if len(rows) != 2 {
		t.Fatalf("expected truncation to 2 rows, got %v", rows)
	}
}

func TestTopKeywordsEmptySubset(t *testing.T) {
	if rows := TopKeywords(nil, []string{"python"}, 5); len(rows) != 0 {
		t.Fatalf("expected no rows for empty subset, got %v", rows)
	}
}
