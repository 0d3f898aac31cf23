// Package export writes the ranked match report as an Excel workbook.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/vmaltsev/resume-ranker/internal/analyzer"
	"github.com/vmaltsev/resume-ranker/internal/match"
)

const (
	summarySheet    = "Summary"
	candidatesSheet = "Ranked Candidates"
	keywordsSheet   = "Keywords"
)

// Excel writes a workbook with a summary sheet, the ranked candidate
// table and the keyword frequency report.
func Excel(results match.Results, failures []match.Failure, job *analyzer.Job, keywords []match.KeywordCount, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(candidatesSheet)
	f.NewSheet(keywordsSheet)

	if err := writeSummarySheet(f, results, failures, job); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, results); err != nil {
		return fmt.Errorf("candidates sheet: %w", err)
	}
	if err := writeKeywordsSheet(f, keywords); err != nil {
		return fmt.Errorf("keywords sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, results match.Results, failures []match.Failure, job *analyzer.Job) error {
	f.SetColWidth(summarySheet, "A", "A", 28)
	f.SetColWidth(summarySheet, "B", "B", 60)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(summarySheet, cell("A", row), "Resume Ranking Report")
	f.SetCellStyle(summarySheet, cell("A", row), cell("B", row), titleStyle)
	f.MergeCell(summarySheet, cell("A", row), cell("B", row))
	row += 2

	put := func(label string, value any) {
		f.SetCellValue(summarySheet, cell("A", row), label)
		f.SetCellStyle(summarySheet, cell("A", row), cell("A", row), labelStyle)
		f.SetCellValue(summarySheet, cell("B", row), value)
		row++
	}

	put("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	put("Job Skills:", strings.Join(job.Skills, ", "))
	put("Experience Required:", strings.Join(job.Requirements.ExperienceYears, ", "))
	put("Resumes Ranked:", results.Len())
	put("Resumes Failed:", len(failures))

	if results.Len() > 0 {
		var total float64
		best := results[0]
		for _, result := range results {
			total += result.Score
			if result.Score > best.Score {
				best = result
			}
		}
		put("Top Candidate:", best.CandidateName)
		put("Average Score:", fmt.Sprintf("%.2f", total/float64(results.Len())))
	}

	if len(failures) > 0 {
		row++
		f.SetCellValue(summarySheet, cell("A", row), "Skipped Files:")
		f.SetCellStyle(summarySheet, cell("A", row), cell("B", row), titleStyle)
		f.MergeCell(summarySheet, cell("A", row), cell("B", row))
		row++
		for _, failure := range failures {
			put(failure.Filename, failure.Err.Error())
		}
	}

	return nil
}

func writeCandidatesSheet(f *excelize.File, results match.Results) error {
	f.SetColWidth(candidatesSheet, "A", "A", 8)
	f.SetColWidth(candidatesSheet, "B", "C", 28)
	f.SetColWidth(candidatesSheet, "D", "E", 14)
	f.SetColWidth(candidatesSheet, "F", "F", 60)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	headers := []string{"Rank", "Candidate", "Filename", "Score", "Match %", "Matching Skills"}
	for col, header := range headers {
		c := cell(string(rune('A'+col)), 1)
		f.SetCellValue(candidatesSheet, c, header)
		f.SetCellStyle(candidatesSheet, c, c, headerStyle)
	}

	strongStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	moderateStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	weakStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	for i, result := range results {
		row := i + 2
		f.SetCellValue(candidatesSheet, cell("A", row), result.Rank)
		f.SetCellValue(candidatesSheet, cell("B", row), result.CandidateName)
		f.SetCellValue(candidatesSheet, cell("C", row), result.Filename)
		f.SetCellValue(candidatesSheet, cell("D", row), fmt.Sprintf("%.4f", result.Score))
		f.SetCellValue(candidatesSheet, cell("E", row), result.MatchPercentage)
		f.SetCellValue(candidatesSheet, cell("F", row), strings.Join(result.MatchingSkills, ", "))

		style := weakStyle
		switch {
		case result.MatchPercentage >= 70:
			style = strongStyle
		case result.MatchPercentage >= 40:
			style = moderateStyle
		}
		f.SetCellStyle(candidatesSheet, cell("A", row), cell("F", row), style)
	}

	if results.Len() > 0 {
		f.AutoFilter(candidatesSheet, fmt.Sprintf("A1:F%d", results.Len()+1), nil)
	}
	f.SetPanes(candidatesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

func writeKeywordsSheet(f *excelize.File, keywords []match.KeywordCount) error {
	f.SetColWidth(keywordsSheet, "A", "A", 28)
	f.SetColWidth(keywordsSheet, "B", "B", 14)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	f.SetCellValue(keywordsSheet, "A1", "Keyword")
	f.SetCellValue(keywordsSheet, "B1", "Candidates")
	f.SetCellStyle(keywordsSheet, "A1", "B1", headerStyle)

	for i, keyword := range keywords {
		row := i + 2
		f.SetCellValue(keywordsSheet, cell("A", row), keyword.Keyword)
		f.SetCellValue(keywordsSheet, cell("B", row), keyword.Frequency)
	}

	return nil
}

func cell(column string, row int) string {
	return fmt.Sprintf("%s%d", column, row)
}
