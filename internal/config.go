package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	GeminiModel    string
	GeminiAPIKey   string
	Style          string
	Languages      []string
	TranscriptsDir string
	SummaryTimeout time.Duration
	UploadTimeout  time.Duration
	Verbose        bool
	Quiet          bool
	MCPLogEnabled  bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
}

//go:embed config.toml summary_prompt.txt script_prompt.txt transcribe_prompt.txt
var defaultFS embed.FS

// PollInterval is the delay between checks on an uploaded file's
// processing state.
const PollInterval = 2 * time.Second

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompts creates the prompt template files in the XDG config
// directory from the embedded defaults if they don't exist
func EnsureDefaultPrompts(configDir string) error {
	prompts := map[string]string{
		"summary_prompt.txt":    "summary prompt template",
		"script_prompt.txt":     "script prompt template",
		"transcribe_prompt.txt": "transcription prompt template",
	}
	for filename, description := range prompts {
		if err := ensureDefaultFile(configDir, filename, description); err != nil {
			return err
		}
	}
	return nil
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// Ensure yt-dlp is installed
	ytdlp.MustInstall(context.Background(), nil)

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "remixtube")
	dataDir := filepath.Join(xdg.DataHome, "remixtube")
	cacheDir := filepath.Join(xdg.CacheHome, "remixtube")

	transcriptsDir := filepath.Join(dataDir, "transcripts")

	// Initialize viper
	v := viper.New()

	// Set default values for configurable settings
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("style", Styles[0])
	v.SetDefault("languages", []string{"vi", "en"})
	v.SetDefault("transcripts_dir", transcriptsDir)
	v.SetDefault("summary_timeout", 2*time.Minute)
	v.SetDefault("upload_timeout", 5*time.Minute)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_logging", false)

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("REMIXTUBE")
	v.AutomaticEnv()

	// Special case for the Gemini API key - check both Viper and direct env var
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	// Create config struct from viper
	config := &Config{
		GeminiModel:    v.GetString("gemini_model"),
		GeminiAPIKey:   v.GetString("gemini_api_key"),
		Style:          v.GetString("style"),
		Languages:      v.GetStringSlice("languages"),
		TranscriptsDir: v.GetString("transcripts_dir"),
		SummaryTimeout: v.GetDuration("summary_timeout"),
		UploadTimeout:  v.GetDuration("upload_timeout"),
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),
		MCPLogEnabled:  v.GetBool("mcp_logging"),

		ConfigDir: configDir,
		DataDir:   dataDir,
		CacheDir:  cacheDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

// ValidateGeminiAPIKey checks if the Gemini API key is set and returns a
// standardized error if not
func ValidateGeminiAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("Gemini API key is required - set it in config.toml or GEMINI_API_KEY environment variable")
	}
	return nil
}
