package internal

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// Config holds application settings
type Config struct {
	// User configurable settings
	OutputDir        string
	Format           string
	Languages        []string
	APIKey           string
	SkipExisting     bool
	Limit            int
	SearchContext    int
	SearchMaxResults int
	Verbose          bool
	Quiet            bool
	LogFile          string
	MCPLogEnabled    bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
}

//go:embed config.toml
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	// Check if file already exists
	if FileExists(filePath) {
		return nil
	}

	// Make sure the config directory exists
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Read the embedded default file
	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	// Write the default file to the specified directory
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

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "ytm")
	dataDir := filepath.Join(xdg.DataHome, "ytm")

	// Initialize viper
	v := viper.New()

	// Set default values for configurable settings
	v.SetDefault("output_dir", "Transcripts")
	v.SetDefault("format", "md")
	v.SetDefault("languages", []string{"en"})
	v.SetDefault("skip_existing", true)
	v.SetDefault("limit", 0)
	v.SetDefault("search_context", 2)
	v.SetDefault("search_max_results", 50)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("log_file", filepath.Join(dataDir, "ytm.log"))
	v.SetDefault("mcp_log", false)

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("YTM")
	v.AutomaticEnv()

	// The API key is commonly exported as YOUTUBE_API_KEY; accept both
	_ = v.BindEnv("youtube_api_key", "YTM_YOUTUBE_API_KEY", "YOUTUBE_API_KEY")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	// Create config struct from viper
	config := &Config{
		// User configurable settings
		OutputDir:        v.GetString("output_dir"),
		Format:           v.GetString("format"),
		Languages:        v.GetStringSlice("languages"),
		APIKey:           v.GetString("youtube_api_key"),
		SkipExisting:     v.GetBool("skip_existing"),
		Limit:            v.GetInt("limit"),
		SearchContext:    v.GetInt("search_context"),
		SearchMaxResults: v.GetInt("search_max_results"),
		Verbose:          v.GetBool("verbose"),
		Quiet:            v.GetBool("quiet"),
		LogFile:          v.GetString("log_file"),
		MCPLogEnabled:    v.GetBool("mcp_log"),

		// Fixed XDG paths
		ConfigDir: configDir,
		DataDir:   dataDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}
