package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/vmaltsev/resume-ranker/internal/analyzer"
	"github.com/vmaltsev/resume-ranker/internal/extract"
	"github.com/vmaltsev/resume-ranker/internal/match"
)

func TestExcelWritesAllSheets(t *testing.T) {
	results := match.Results{
		{
			Rank:            1,
			CandidateName:   "Alice Smith",
			Filename:        "alice.txt",
			Score:           0.82,
			MatchPercentage: 82,
			MatchingSkills:  []string{"python", "sql"},
		},
		{
			Rank:            2,
			CandidateName:   "Bob Jones",
			Filename:        "bob.pdf",
			Score:           0.35,
			MatchPercentage: 35,
			MatchingSkills:  []string{"python"},
		},
	}
	failures := []match.Failure{{Filename: "broken.docx", Err: errors.New("no document.xml found in docx")}}
	job := &analyzer.Job{
		Skills:       []string{"python", "sql"},
		Requirements: extract.JobRequirements{ExperienceYears: []string{"5 years"}},
	}
	keywords := []match.KeywordCount{
		{Keyword: "python", Frequency: 2},
		{Keyword: "sql", Frequency: 1},
	}

	path := filepath.Join(t.TempDir(), "report.xlsx")
	if err := Excel(results, failures, job, keywords, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Summary", "Ranked Candidates", "Keywords"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Fatalf("missing sheet %q (idx %d, err %v)", sheet, idx, err)
		}
	}

	name, err := f.GetCellValue("Ranked Candidates", "B2")
	if err != nil {
		t.Fatalf("reading cell: %v", err)
	}
	if name != "Alice Smith" {
		t.Fatalf("expected top candidate in row 2, got %q", name)
	}

	keyword, err := f.GetCellValue("Keywords", "A2")
	if err != nil {
		t.Fatalf("reading cell: %v", err)
	}
	if keyword != "python" {
		t.Fatalf("expected python as top keyword, got %q", keyword)
	}
}

func TestExcelAppendsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")
	job := &analyzer.Job{}

	if err := Excel(match.Results{}, nil, job, nil, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := excelize.OpenFile(path + ".xlsx"); err != nil {
		t.Fatalf("expected workbook at %s.xlsx: %v", path, err)
	}
}
