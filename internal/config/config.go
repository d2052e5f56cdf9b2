package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rahimkhoja/ai-article-writer/internal/formats"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	AI      AI      `mapstructure:"ai"`
	Article Article `mapstructure:"article"`
	YouTube YouTube `mapstructure:"youtube"`
	Links   Links   `mapstructure:"links"`
	Output  Output  `mapstructure:"output"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey          string `mapstructure:"api_key"`
	Model           string `mapstructure:"model"`
	TitleModel      string `mapstructure:"title_model"`
	ReferencesModel string `mapstructure:"references_model"`
	Timeout         string `mapstructure:"timeout"`
}

// Article holds default article generation settings
type Article struct {
	Format    string `mapstructure:"format"`
	WordCount int    `mapstructure:"word_count"`
	Audience  string `mapstructure:"audience"`
	Research  bool   `mapstructure:"research"`
}

// YouTube holds transcript download configuration
type YouTube struct {
	Languages     []string `mapstructure:"languages"`
	DownloadDelay string   `mapstructure:"download_delay"`
}

// Links holds link verification configuration
type Links struct {
	VerifyTimeout string `mapstructure:"verify_timeout"`
}

// Output holds output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".article-writer")
		viper.SetConfigType("yaml")
	}

	// Set defaults
	setDefaults()

	// Bind environment variables
	bindEnvironmentVariables()

	// Enable automatic environment variable reading
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Unmarshal into struct
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Apply post-processing
	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	// AI defaults
	viper.SetDefault("ai.gemini.model", "gemini-3-pro-preview")
	viper.SetDefault("ai.gemini.title_model", "gemini-2.0-flash-exp")
	viper.SetDefault("ai.gemini.references_model", "gemini-2.0-flash-exp")
	viper.SetDefault("ai.gemini.timeout", "300s")

	// Article defaults
	viper.SetDefault("article.format", "LinkedIn Article")
	viper.SetDefault("article.word_count", 1000)
	viper.SetDefault("article.audience", "Senior engineers and technical practitioners")
	viper.SetDefault("article.research", true)

	// YouTube defaults
	viper.SetDefault("youtube.languages", []string{"en", "en-US", "en-GB"})
	viper.SetDefault("youtube.download_delay", "15s")

	// Links defaults
	viper.SetDefault("links.verify_timeout", "10s")

	// Output defaults
	viper.SetDefault("output.directory", "articles")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	// General settings
	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"ARTICLE_WRITER_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	// Expand paths
	if config.Output.Directory != "" {
		config.Output.Directory = expandPath(config.Output.Directory)
	}

	// Validate durations
	durations := map[string]string{
		"ai.gemini.timeout":      config.AI.Gemini.Timeout,
		"youtube.download_delay": config.YouTube.DownloadDelay,
		"links.verify_timeout":   config.Links.VerifyTimeout,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures the configuration is usable. The Gemini API key is
// not required here so that commands that never call the API (formats,
// verify) can run without one; the client constructor enforces it.
func validateConfig(config *Config) error {
	var errors []string

	if config.Article.WordCount != 0 && !isValidWordCount(config.Article.WordCount) {
		errors = append(errors, fmt.Sprintf("article.word_count must be one of %v, got %d", formats.WordCountChoices, config.Article.WordCount))
	}

	if config.Article.Audience == "" {
		errors = append(errors, "article.audience cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func isValidWordCount(wordCount int) bool {
	for _, choice := range formats.WordCountChoices {
		if wordCount == choice {
			return true
		}
	}
	return false
}

// Convenience getters for commonly used configuration values
func GetApp() App         { return Get().App }
func GetAI() AI           { return Get().AI }
func GetArticle() Article { return Get().Article }
func GetYouTube() YouTube { return Get().YouTube }
func GetLinks() Links     { return Get().Links }
func GetOutput() Output   { return Get().Output }

// Specific convenience getters for frequently accessed values
func GetGeminiAPIKey() string    { return Get().AI.Gemini.APIKey }
func GetBodyModel() string       { return Get().AI.Gemini.Model }
func GetTitleModel() string      { return Get().AI.Gemini.TitleModel }
func GetReferencesModel() string { return Get().AI.Gemini.ReferencesModel }
func GetOutputDirectory() string { return Get().Output.Directory }
func IsDebugMode() bool          { return Get().App.Debug }

// GetTranscriptLanguages returns the preferred transcript languages in order.
func GetTranscriptLanguages() []string { return Get().YouTube.Languages }

// GetGeminiTimeout returns the per-call Gemini timeout.
func GetGeminiTimeout() time.Duration {
	return parseDurationOr(Get().AI.Gemini.Timeout, 300*time.Second)
}

// GetDownloadDelay returns the delay between transcript downloads.
func GetDownloadDelay() time.Duration {
	return parseDurationOr(Get().YouTube.DownloadDelay, 15*time.Second)
}

// GetVerifyTimeout returns the link probe timeout.
func GetVerifyTimeout() time.Duration {
	return parseDurationOr(Get().Links.VerifyTimeout, 10*time.Second)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// HasValidAPIKey returns true if a Gemini API key is configured and does not
// look like a placeholder.
func HasValidAPIKey() bool {
	return isValidAPIKey(GetGeminiAPIKey())
}

// isValidAPIKey checks if an API key is valid (not empty and not a placeholder)
func isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	// Check for common placeholder values
	placeholders := []string{
		"your-api-key", "your-gemini-key", "your-gemini-api-key",
		"YOUR_API_KEY", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}

	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			return false
		}
	}

	return true
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
