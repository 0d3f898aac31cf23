package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "resume-ranker"
)

type Config struct {
	CatalogFile string         `mapstructure:"catalog-file"`
	DataDir     string         `mapstructure:"data-dir"`
	Analyze     *AnalyzeConfig `mapstructure:"analyze"`
	AI          *AIConfig      `mapstructure:"ai"`
}

type AnalyzeConfig struct {
	MinMatchPercentage int    `mapstructure:"min-match-percentage"`
	TopN               int    `mapstructure:"top-n"`
	TopKeywords        int    `mapstructure:"top-keywords"`
	ExportFile         string `mapstructure:"export-file"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-ranker is a cli for ranking candidate resumes against a job description",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-ranker.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for the analyze command. If there is no config, we
	// can skip initialization since every setting has a flag or a default.
	if analyzeCmd.CalledAs() == "" {
		return
	}

	if err := readConfig(viper.GetViper(), cfgFile); err != nil {
		// We can't proceed if the config file parsed with error.
		log.Fatal(err)
	}
}

// readConfig loads the config file into v. Without an explicit path it
// searches the current directory for <app>.yaml; a missing file is fine
// then, since every setting has a flag or a default.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		// SetConfigName takes the bare name; viper appends the extension
		// itself when searching.
		v.SetConfigName(app)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return nil
		}
		return err
	}
	return nil
}

func getConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	if config.Analyze == nil {
		config.Analyze = &AnalyzeConfig{}
	}
	if config.Analyze.TopKeywords == 0 {
		config.Analyze.TopKeywords = 10
	}

	return config, nil
}
