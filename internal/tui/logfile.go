package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If TIDYGIT_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.tidygit/logs/tidygit.log
func GetLogFilePath() string {
	if customPath := os.Getenv("TIDYGIT_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "tidygit.log"
	}

	return filepath.Join(homeDir, ".tidygit", "logs", "tidygit.log")
}
