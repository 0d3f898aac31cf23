// Package store persists analyzed job descriptions, resumes and their
// match results as JSON files under a data directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"
)

const (
	jobDescriptionsFile = "job_descriptions.json"
	resumesFile         = "resumes.json"
	analysisResultsFile = "analysis_results.json"
)

// JobDescription is a stored job description record.
type JobDescription struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Skills      []string  `json:"skills"`
	CreatedAt   time.Time `json:"created_at"`
}

// Resume is a stored resume record.
type Resume struct {
	ID            int       `json:"id"`
	Filename      string    `json:"filename"`
	CandidateName string    `json:"candidate_name"`
	Text          string    `json:"text"`
	Skills        []string  `json:"skills"`
	CreatedAt     time.Time `json:"created_at"`
}

// AnalysisResult links a resume to a job description with its score.
type AnalysisResult struct {
	ID              int       `json:"id"`
	JobID           int       `json:"job_id"`
	ResumeID        int       `json:"resume_id"`
	SimilarityScore float64   `json:"similarity_score"`
	MatchingSkills  []string  `json:"matching_skills"`
	CreatedAt       time.Time `json:"created_at"`
}

// Analysis is a joined view over an analysis result and its related
// job description and resume.
type Analysis struct {
	ID              int       `json:"id"`
	Description     string    `json:"description"`
	CandidateName   string    `json:"candidate_name"`
	Filename        string    `json:"filename"`
	SimilarityScore float64   `json:"similarity_score"`
	MatchingSkills  []string  `json:"matching_skills"`
	CreatedAt       time.Time `json:"created_at"`
}

// Store reads and writes the JSON data files. All operations reread the
// files, so concurrent processes see each other's saves.
type Store struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// New creates the data directory if needed and returns a store over it.
func New(dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger, now: time.Now}, nil
}

// SaveJobDescription appends a job description record and returns its ID.
func (s *Store) SaveJobDescription(description string, skills []string) (int, error) {
	var records []JobDescription
	if err := s.read(jobDescriptionsFile, &records); err != nil {
		return 0, err
	}

	record := JobDescription{
		ID:          nextID(len(records), func(i int) int { return records[i].ID }),
		Description: description,
		Skills:      skills,
		CreatedAt:   s.now(),
	}
	records = append(records, record)

	if err := s.write(jobDescriptionsFile, records); err != nil {
		return 0, err
	}

	s.logger.Info("job description saved", zap.Int("id", record.ID))
	return record.ID, nil
}

// SaveResume appends a resume record and returns its ID.
func (s *Store) SaveResume(filename, candidateName, text string, skills []string) (int, error) {
	var records []Resume
	if err := s.read(resumesFile, &records); err != nil {
		return 0, err
	}

	record := Resume{
		ID:            nextID(len(records), func(i int) int { return records[i].ID }),
		Filename:      filename,
		CandidateName: candidateName,
		Text:          text,
		Skills:        skills,
		CreatedAt:     s.now(),
	}
	records = append(records, record)

	if err := s.write(resumesFile, records); err != nil {
		return 0, err
	}

	s.logger.Info("resume saved", zap.Int("id", record.ID), zap.String("filename", filename))
	return record.ID, nil
}

// SaveAnalysisResult appends an analysis record and returns its ID.
func (s *Store) SaveAnalysisResult(jobID, resumeID int, score float64, matchingSkills []string) (int, error) {
	var records []AnalysisResult
	if err := s.read(analysisResultsFile, &records); err != nil {
		return 0, err
	}

	record := AnalysisResult{
		ID:              nextID(len(records), func(i int) int { return records[i].ID }),
		JobID:           jobID,
		ResumeID:        resumeID,
		SimilarityScore: score,
		MatchingSkills:  matchingSkills,
		CreatedAt:       s.now(),
	}
	records = append(records, record)

	if err := s.write(analysisResultsFile, records); err != nil {
		return 0, err
	}

	s.logger.Info("analysis result saved", zap.Int("id", record.ID))
	return record.ID, nil
}

// PreviousAnalyses joins analysis results with their job descriptions and
// resumes, newest first, limited to the given count. Results whose job or
// resume record is missing are skipped.
func (s *Store) PreviousAnalyses(limit int) ([]Analysis, error) {
	var results []AnalysisResult
	if err := s.read(analysisResultsFile, &results); err != nil {
		return nil, err
	}
	var jobs []JobDescription
	if err := s.read(jobDescriptionsFile, &jobs); err != nil {
		return nil, err
	}
	var resumes []Resume
	if err := s.read(resumesFile, &resumes); err != nil {
		return nil, err
	}

	jobByID := make(map[int]JobDescription, len(jobs))
	for _, job := range jobs {
		jobByID[job.ID] = job
	}
	resumeByID := make(map[int]Resume, len(resumes))
	for _, resume := range resumes {
		resumeByID[resume.ID] = resume
	}

	analyses := make([]Analysis, 0, len(results))
	for _, result := range results {
		job, okJob := jobByID[result.JobID]
		resume, okResume := resumeByID[result.ResumeID]
		if !okJob || !okResume {
			continue
		}
		analyses = append(analyses, Analysis{
			ID:              result.ID,
			Description:     job.Description,
			CandidateName:   resume.CandidateName,
			Filename:        resume.Filename,
			SimilarityScore: result.SimilarityScore,
			MatchingSkills:  result.MatchingSkills,
			CreatedAt:       result.CreatedAt,
		})
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})
	if limit > 0 && len(analyses) > limit {
		analyses = analyses[:limit]
	}
	return analyses, nil
}

func (s *Store) read(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func (s *Store) write(name string, records any) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// nextID yields max existing ID plus one, starting at 1.
func nextID(n int, id func(int) int) int {
	next := 1
	for i := 0; i < n; i++ {
		if id(i) >= next {
			next = id(i) + 1
		}
	}
	return next
}
