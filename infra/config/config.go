package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application-level configuration.
type Config struct {
	APIBaseURL string // e.g. "https://api.imgflip.com"
	DataDir    string // Directory for the local key-value store
	LogPath    string // Log file path; a TUI owns stdout, so logs go to a file
}

// Load reads configuration from environment variables.
//
//	MEMEVERSE_API   — meme catalog API base URL (default: https://api.imgflip.com)
//	MEMEVERSE_DATA  — data directory (default: ~/.local/share/memeverse)
//	MEMEVERSE_LOG   — log file path (default: <data dir>/memeverse.log)
func Load() (Config, error) {
	api := os.Getenv("MEMEVERSE_API")
	if api == "" {
		api = "https://api.imgflip.com"
	}
	parsed, err := url.Parse(api)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid MEMEVERSE_API: must be an absolute URL")
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return Config{}, fmt.Errorf("invalid MEMEVERSE_API: only http(s) is allowed")
	}
	api = strings.TrimRight(parsed.String(), "/")

	dataDir := os.Getenv("MEMEVERSE_DATA")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share", "memeverse")
	}

	logPath := os.Getenv("MEMEVERSE_LOG")
	if logPath == "" {
		logPath = filepath.Join(dataDir, "memeverse.log")
	}

	return Config{
		APIBaseURL: api,
		DataDir:    dataDir,
		LogPath:    logPath,
	}, nil
}
