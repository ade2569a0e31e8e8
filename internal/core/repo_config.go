package core

// RepoConfig represents the structure of the optional .issue-warden.yml file in the
// target repository.
type RepoConfig struct {
	// Custom instructions appended to the system prompt.
	CustomInstructions []string `yaml:"custom_instructions"`

	// Directories, by name, left out of the file map sent to the model.
	// Example: ["dist", "vendor", "node_modules"]
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// File extensions left out of the file map. The leading dot is optional.
	ExcludeExts []string `yaml:"exclude_exts"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		CustomInstructions: []string{},
		ExcludeDirs:        []string{},
		ExcludeExts:        []string{},
	}
}
