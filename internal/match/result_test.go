package match

import "testing"

func TestRankDescending(t *testing.T) {
	results := Results{
		{CandidateName: "low", Score: 0.2},
		{CandidateName: "high", Score: 0.9},
		{CandidateName: "mid", Score: 0.5},
	}

	ranked := results.Rank()

	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if ranked[i].CandidateName != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, ranked[i].CandidateName)
		}
		if ranked[i].Rank != i+1 {
			t.Fatalf("position %d: expected rank %d, got %d", i, i+1, ranked[i].Rank)
		}
	}
}

func TestRankStableForTies(t *testing.T) {
	results := Results{
		{CandidateName: "A", Score: 0.5},
		{CandidateName: "B", Score: 0.5},
		{CandidateName: "C", Score: 0.7},
	}

	ranked := results.Rank()

	if ranked[0].CandidateName != "C" {
		t.Fatalf("expected C first, got %q", ranked[0].CandidateName)
	}
	// Equal scores keep input order.
	if ranked[1].CandidateName != "A" || ranked[2].CandidateName != "B" {
		t.Fatalf("tie order not preserved: got %v", ranked.Names())
	}
}

func TestRankEmptyBatch(t *testing.T) {
	var results Results

	if ranked := results.Rank(); ranked.Len() != 0 {
		t.Fatalf("expected empty ranked batch, got %d", ranked.Len())
	}
}

func TestMinMatch(t *testing.T) {
	results := Results{
		{CandidateName: "A", MatchPercentage: 80},
		{CandidateName: "B", MatchPercentage: 50},
		{CandidateName: "C", MatchPercentage: 49},
	}

	filtered := results.MinMatch(50)
	if filtered.Len() != 2 {
		t.Fatalf("expected 2 results, got %d", filtered.Len())
	}
	if filtered[1].CandidateName != "B" {
		t.Fatalf("boundary candidate must be included, got %v", filtered.Names())
	}
}

func TestTop(t *testing.T) {
	results := Results{{CandidateName: "A"}, {CandidateName: "B"}, {CandidateName: "C"}}

	if got := results.Top(2); got.Len() != 2 {
		t.Fatalf("expected 2 results, got %d", got.Len())
	}
	if got := results.Top(0); got.Len() != 3 {
		t.Fatalf("non-positive n must return the full batch, got %d", got.Len())
	}
	if got := results.Top(10); got.Len() != 3 {
		t.Fatalf("oversized n must return the full batch, got %d", got.Len())
	}
}

func TestFindByName(t *testing.T) {
	results := Results{
		{CandidateName: "Jane Doe", Filename: "jane.pdf"},
	}

	if got := results.FindByName("jane doe"); got == nil {
		t.Fatalf("expected case-insensitive name lookup to succeed")
	}
	if got := results.FindByName("jane.PDF"); got == nil {
		t.Fatalf("expected filename lookup to succeed")
	}
	if got := results.FindByName("nobody"); got != nil {
		t.Fatalf("expected nil for unknown candidate")
	}
}
