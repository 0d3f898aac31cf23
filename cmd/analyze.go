package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vmaltsev/resume-ranker/internal/analyzer"
	"github.com/vmaltsev/resume-ranker/internal/assistant"
	"github.com/vmaltsev/resume-ranker/internal/assistant/gemini"
	"github.com/vmaltsev/resume-ranker/internal/export"
	"github.com/vmaltsev/resume-ranker/internal/extract"
	"github.com/vmaltsev/resume-ranker/internal/ingestion"
	logging "github.com/vmaltsev/resume-ranker/internal/logger"
	"github.com/vmaltsev/resume-ranker/internal/match"
	"github.com/vmaltsev/resume-ranker/internal/secrets"
	"github.com/vmaltsev/resume-ranker/internal/store"
	"github.com/vmaltsev/resume-ranker/internal/taxonomy"
)

const (
	PromptKeywords = "Keyword report"
	PromptExport   = "Export to Excel"
	PromptAsk      = "Ask the assistant"
	PromptHistory  = "Previous analyses"
	PromptExit     = "Exit"

	defaultDataDir = "data"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptKeywords, PromptExport, PromptAsk, PromptHistory, PromptExit},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Rank resumes from a directory against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("job", "i", "", "path to the job description text file")
	analyzeCmd.Flags().StringP("resumes", "r", "", "directory with resume files (txt, pdf, docx)")
	analyzeCmd.Flags().IntP("min-match-percentage", "m", 0, "drop candidates below this match percentage")
	analyzeCmd.Flags().IntP("top-n", "n", 0, "keep only the best n candidates. 0 keeps all")
	analyzeCmd.Flags().StringP("export-file", "o", "", "write the report to this xlsx file")
	analyzeCmd.Flags().BoolP("auto-approve", "y", false, "do not ask what to do next: export if configured and exit")
	analyzeCmd.Flags().String("catalog-file", "", "skill catalog file. Default is the built-in catalog")
	analyzeCmd.Flags().String("data-dir", "", "directory for the analysis history files")

	analyzeCmd.MarkFlagRequired("job")
	analyzeCmd.MarkFlagRequired("resumes")

	viper.BindPFlag("analyze.min-match-percentage", analyzeCmd.Flags().Lookup("min-match-percentage"))
	viper.BindPFlag("analyze.top-n", analyzeCmd.Flags().Lookup("top-n"))
	viper.BindPFlag("analyze.export-file", analyzeCmd.Flags().Lookup("export-file"))
	viper.BindPFlag("catalog-file", analyzeCmd.Flags().Lookup("catalog-file"))
	viper.BindPFlag("data-dir", analyzeCmd.Flags().Lookup("data-dir"))
}

// analyze is the main command for the cli.
func analyze(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logging.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the resume-ranker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	loaded := taxonomy.Load(config.CatalogFile)
	if loaded.Err != nil {
		logger.Warn("falling back to the built-in skill catalog",
			zap.String("catalog_file", config.CatalogFile),
			zap.Error(loaded.Err),
		)
	}
	logger.Info("skill catalog loaded", zap.String("source", string(loaded.Source)))

	jobFile := cmd.Flag("job").Value.String()
	jobText, err := os.ReadFile(jobFile)
	if err != nil {
		logger.Fatal("reading the job description", zap.Error(err))
	}

	skills := extract.NewSkillExtractor(loaded.Catalog, logger)
	logger.Debug("extractor ready", zap.Stringer("extractor", skills))

	a := analyzer.New(skills, logger)
	job := a.AnalyzeJob(string(jobText))

	docs, err := ingestion.LoadDir(cmd.Flag("resumes").Value.String())
	if err != nil {
		logger.Fatal("listing resumes", zap.Error(err))
	}
	if len(docs) == 0 {
		logger.Info("exiting", zap.String("reason", "no resume files found"))
		return
	}

	sources := make([]analyzer.Source, 0, len(docs))
	for _, doc := range docs {
		sources = append(sources, doc)
	}

	results, failures := a.Run(sources, job)

	results = results.MinMatch(config.Analyze.MinMatchPercentage).Top(config.Analyze.TopN)
	if results.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates left after filtering"))
		return
	}

	st := openStore(config, logger)
	if st != nil {
		saveResults(st, job, results, logger)
	}

	printRanked(results)

	auto := cmd.Flag("auto-approve").Value.String() == "true"
	for {
		action := PromptExport
		if !auto {
			var err error
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		if err := handleAction(ctx, action, config, st, job, results, failures, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if auto {
			return
		}
	}
}

func handleAction(ctx context.Context, action string, config *Config, st *store.Store, job *analyzer.Job, results match.Results, failures []match.Failure, logger *zap.Logger) error {
	switch action {
	case PromptKeywords:
		printKeywords(match.TopKeywords(results, job.Skills, config.Analyze.TopKeywords))
		return nil
	case PromptExport:
		path := config.Analyze.ExportFile
		if path == "" {
			logger.Info("skipping export", zap.String("reason", "no export file configured"))
			return nil
		}
		keywords := match.TopKeywords(results, job.Skills, config.Analyze.TopKeywords)
		if err := export.Excel(results, failures, job, keywords, path); err != nil {
			return fmt.Errorf("export to excel: %w", err)
		}
		logger.Info("report exported", zap.String("filename", path))
		return nil
	case PromptAsk:
		return askAssistant(ctx, config.AI, job, results, logger)
	case PromptHistory:
		if st == nil {
			logger.Info("skipping history", zap.String("reason", "store is unavailable"))
			return nil
		}
		analyses, err := st.PreviousAnalyses(20)
		if err != nil {
			return fmt.Errorf("previous analyses: %w", err)
		}
		printHistory(analyses)
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// openStore never aborts the run: history is a convenience, not a
// prerequisite for ranking.
func openStore(config *Config, logger *zap.Logger) *store.Store {
	dir := config.DataDir
	if dir == "" {
		dir = defaultDataDir
	}

	st, err := store.New(dir, logger)
	if err != nil {
		logger.Warn("analysis history disabled", zap.Error(err))
		return nil
	}
	return st
}

func saveResults(st *store.Store, job *analyzer.Job, results match.Results, logger *zap.Logger) {
	jobID, err := st.SaveJobDescription(job.Text, job.Skills)
	if err != nil {
		logger.Warn("saving job description", zap.Error(err))
		return
	}

	for _, result := range results {
		resumeID, err := st.SaveResume(result.Filename, result.CandidateName, result.Text, result.Skills)
		if err != nil {
			logger.Warn("saving resume", zap.String("filename", result.Filename), zap.Error(err))
			continue
		}
		if _, err := st.SaveAnalysisResult(jobID, resumeID, result.Score, result.MatchingSkills); err != nil {
			logger.Warn("saving analysis result", zap.String("filename", result.Filename), zap.Error(err))
		}
	}
}

func askAssistant(ctx context.Context, config *AIConfig, job *analyzer.Job, results match.Results, logger *zap.Logger) error {
	responder := newResponder(ctx, config, logger)

	for {
		input := promptui.Prompt{Label: "Question (empty to go back)"}
		question, err := input.Run()
		if err != nil {
			return err
		}
		if strings.TrimSpace(question) == "" {
			return nil
		}

		answer, err := responder.Respond(ctx, assistant.Query{
			Question:  question,
			Results:   results,
			JobSkills: job.Skills,
		})
		if err != nil {
			logger.Warn("assistant failed, retrying with the rule-based responder", zap.Error(err))
			answer, err = assistant.NewRuleBased().Respond(ctx, assistant.Query{
				Question:  question,
				Results:   results,
				JobSkills: job.Skills,
			})
			if err != nil {
				return err
			}
		}

		logger.Debug("assistant answered", zap.String("answer", logging.TruncateForLog(answer, 200)))
		fmt.Printf("\n%s\n\n", answer)
	}
}

// newResponder builds the AI-backed responder when it is enabled and
// configured, falling back to the rule-based one otherwise.
func newResponder(ctx context.Context, config *AIConfig, logger *zap.Logger) assistant.Responder {
	if config == nil || !config.Enabled {
		return assistant.NewRuleBased()
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("unsupported ai provider, using the rule-based assistant", zap.String("provider", config.Provider))
		return assistant.NewRuleBased()
	}

	geminiCfg := config.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: geminiCfg.APIKey,
		File:  geminiCfg.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		logger.Warn("using the rule-based assistant",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key, ai.gemini.api-key-file or GEMINI_API_KEY"),
		)
		return assistant.NewRuleBased()
	}

	responder, err := gemini.New(ctx, apiKey, geminiCfg.Model)
	if err != nil {
		logger.Warn("using the rule-based assistant", zap.Error(err))
		return assistant.NewRuleBased()
	}

	logging.WithAI(logger, "gemini", geminiCfg.Model).Info("ai assistant enabled")
	return responder
}

func printRanked(results match.Results) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "RANK\tCANDIDATE\tFILE\tMATCH\tMATCHING SKILLS")
	for _, result := range results {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d%%\t%s\n",
			result.Rank, result.CandidateName, result.Filename,
			result.MatchPercentage, strings.Join(result.MatchingSkills, ", "))
	}
	w.Flush()
}

func printKeywords(keywords []match.KeywordCount) {
	if len(keywords) == 0 {
		fmt.Println("No job skills were found in the resumes.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "KEYWORD\tCANDIDATES")
	for _, keyword := range keywords {
		fmt.Fprintf(w, "%s\t%d\n", keyword.Keyword, keyword.Frequency)
	}
	w.Flush()
}

func printHistory(analyses []store.Analysis) {
	if len(analyses) == 0 {
		fmt.Println("No previous analyses recorded.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DATE\tCANDIDATE\tFILE\tMATCH")
	for _, analysis := range analyses {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d%%\n",
			analysis.CreatedAt.Format("2006-01-02"),
			analysis.CandidateName, analysis.Filename,
			int(analysis.SimilarityScore*100))
	}
	w.Flush()
}
