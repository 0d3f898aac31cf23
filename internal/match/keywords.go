package match

import (
	"sort"
	"strings"
)

// KeywordCount is one row of the keyword frequency table.
type KeywordCount struct {
	Keyword   string `json:"keyword"`
	Frequency int    `json:"frequency"`
}

// TopKeywords computes cross-candidate frequency statistics over a filtered
// subset: each candidate contributes one count per skill that also appears
// in the job skill set. Rows are sorted by descending frequency, ties broken
// by first-encountered skill order, and truncated to topN.
func TopKeywords(results Results, jobSkills []string, topN int) []KeywordCount {
	jobSet := make(map[string]string, len(jobSkills))
	for _, skill := range jobSkills {
		key := strings.ToLower(skill)
		if _, ok := jobSet[key]; !ok {
			jobSet[key] = skill
		}
	}

	counts := make(map[string]int)
	var order []string

	for _, result := range results {
		for _, skill := range result.Skills {
			key := strings.ToLower(skill)
			if _, ok := jobSet[key]; !ok {
				continue
			}
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	rows := make([]KeywordCount, 0, len(order))
	for _, key := range order {
		rows = append(rows, KeywordCount{Keyword: jobSet[key], Frequency: counts[key]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Frequency > rows[j].Frequency
	})

	if topN > 0 && topN < len(rows) {
		rows = rows[:topN]
	}
	return rows
}
