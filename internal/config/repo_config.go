package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/issue-warden/internal/core"
)

// RepoConfigFile is the optional per-repository configuration file.
const RepoConfigFile = ".issue-warden.yml"

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParsing  = errors.New("config parsing failed")
)

// LoadRepoConfig loads and parses the .issue-warden.yml file from a repository path.
// A missing file yields the defaults together with ErrConfigNotFound.
func LoadRepoConfig(repoPath string) (*core.RepoConfig, error) {
	configPath := filepath.Join(repoPath, RepoConfigFile)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.DefaultRepoConfig(), ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", RepoConfigFile, err)
	}

	config := core.DefaultRepoConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParsing, err)
	}
	for i, ext := range config.ExcludeExts {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			config.ExcludeExts[i] = "." + ext
		}
	}
	return config, nil
}
