package cmd

import (
	"errors"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/internbuddy/internal/ranking"
	"github.com/spigell/internbuddy/internal/script"
)

const (
	app = "internbuddy"

	defaultCourseLimit = 3
)

type Config struct {
	Locale               string           `mapstructure:"locale"`
	CandidatesFile       string           `mapstructure:"candidates-file"`
	ExcludeFile          string           `mapstructure:"exclude-file"`
	ExcludeOrganizations []string         `mapstructure:"exclude-organizations"`
	Recommend            *RecommendConfig `mapstructure:"recommend"`
	Scripts              map[string]any   `mapstructure:"scripts"`
	AI                   *AIConfig        `mapstructure:"ai"`
}

type RecommendConfig struct {
	PerCategoryLimit int `mapstructure:"per-category-limit"`
	CourseLimit      int `mapstructure:"course-limit"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "internbuddy interviews a student and recommends internships in their language",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"ai.gemini.api-key":      "GEMINI_API_KEY",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetEnvPrefix(app)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("locale", script.DefaultLocale)
	viper.SetDefault("recommend.per-category-limit", ranking.DefaultPerCategoryLimit)
	viper.SetDefault("recommend.course-limit", defaultCourseLimit)
	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.gemini.max-retries", 3)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is internbuddy.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config is only needed by commands that read scripts or candidates.
	if runCmd.CalledAs() == "" && localesCmd.CalledAs() == "" {
		return
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && cfgFile == "" {
		return
	}
	// We can't proceed if the config file parsed with error.
	if err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Recommend == nil {
		config.Recommend = &RecommendConfig{
			PerCategoryLimit: ranking.DefaultPerCategoryLimit,
			CourseLimit:      defaultCourseLimit,
		}
	}

	return config, nil
}
