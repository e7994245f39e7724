// Package config provides repository configuration management,
// including reading and writing tidygit configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RepoConfig represents the repository configuration
type RepoConfig struct {
	Trunk             *string  `json:"trunk,omitempty"`
	ProtectedBranches []string `json:"protectedBranches,omitempty"`
}

func configPath(repoRoot string) string {
	return filepath.Join(repoRoot, ".git", ".tidygit_config")
}

// GetRepoConfig reads the repository configuration
func GetRepoConfig(repoRoot string) (*RepoConfig, error) {
	data, err := os.ReadFile(configPath(repoRoot))
	if err != nil {
		// Config doesn't exist - return default
		return &RepoConfig{}, nil
	}

	var config RepoConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse repo config: %w", err)
	}

	return &config, nil
}

func writeRepoConfig(repoRoot string, config *RepoConfig) error {
	configJSON, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath(repoRoot), configJSON, 0600)
}

// GetTrunkOverride returns the configured trunk branch, or "" when the
// repository relies on automatic default-branch detection.
func GetTrunkOverride(repoRoot string) (string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return "", err
	}

	if config.Trunk != nil {
		return *config.Trunk, nil
	}
	return "", nil
}

// SetTrunk updates the trunk branch in the config
func SetTrunk(repoRoot string, trunkName string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	config.Trunk = &trunkName
	return writeRepoConfig(repoRoot, config)
}

// GetProtectedBranches returns the protection patterns stored in the repo
// config file.
func GetProtectedBranches(repoRoot string) ([]string, error) {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}
	return config.ProtectedBranches, nil
}

// AddProtectedBranch adds a protection pattern to the repo config
func AddProtectedBranch(repoRoot string, pattern string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		config = &RepoConfig{}
	}

	if contains(config.ProtectedBranches, pattern) {
		return fmt.Errorf("'%s' is already protected", pattern)
	}

	config.ProtectedBranches = append(config.ProtectedBranches, pattern)
	return writeRepoConfig(repoRoot, config)
}

// RemoveProtectedBranch removes a protection pattern from the repo config
func RemoveProtectedBranch(repoRoot string, pattern string) error {
	config, err := GetRepoConfig(repoRoot)
	if err != nil {
		return err
	}

	var kept []string
	for _, p := range config.ProtectedBranches {
		if p != pattern {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(config.ProtectedBranches) {
		return fmt.Errorf("'%s' is not a configured protection pattern", pattern)
	}

	config.ProtectedBranches = kept
	return writeRepoConfig(repoRoot, config)
}

// contains checks if a string slice contains a value
func contains(slice []string, value string) bool {
	for _, v := range slice {
		if v == value {
			return true
		}
	}
	return false
}
