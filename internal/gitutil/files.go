package gitutil

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
)

// CleanRelativePath normalizes a slash-separated path proposed for the working
// tree and rejects anything that could land outside of it or inside .git.
func CleanRelativePath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.ContainsRune(p, 0) {
		return "", fmt.Errorf("path %q contains a NUL byte", p)
	}
	p = strings.ReplaceAll(p, "\\", "/")
	if path.IsAbs(p) || filepath.IsAbs(p) || filepath.VolumeName(p) != "" {
		return "", fmt.Errorf("path %q must be relative", p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("path %q escapes the repository", p)
	}
	if slices.Contains(strings.Split(cleaned, "/"), ".git") {
		return "", fmt.Errorf("path %q points into .git", p)
	}
	return cleaned, nil
}

// WriteFiles writes every edit below root, creating missing parent directories
// first. Content is written verbatim and existing files are replaced. Writes go
// through an os.Root, so a symlink in the working copy cannot redirect a write
// outside of it.
func WriteFiles(root string, edits []core.FileEdit) error {
	if len(edits) == 0 {
		return nil
	}
	r, err := os.OpenRoot(root)
	if err != nil {
		return core.NewError(core.KindFilesystem, "write files", fmt.Errorf("failed to open %s: %w", root, err))
	}
	defer r.Close()

	for _, edit := range edits {
		rel, err := CleanRelativePath(edit.Path)
		if err != nil {
			return core.NewError(core.KindValidation, "write files", err)
		}
		target := filepath.FromSlash(rel)

		if dir := filepath.Dir(target); dir != "." {
			if err := r.MkdirAll(dir, 0o755); err != nil {
				return core.NewError(core.KindFilesystem, "write files", fmt.Errorf("failed to create directory for %s: %w", rel, err))
			}
		}
		if err := r.WriteFile(target, []byte(edit.Content), 0o644); err != nil { //nolint:gosec // repository files are world-readable
			return core.NewError(core.KindFilesystem, "write files", fmt.Errorf("failed to write %s: %w", rel, err))
		}
	}
	return nil
}

// FilterFiles drops paths under excluded directories or with excluded
// extensions. A nil config keeps every path.
func FilterFiles(files []string, cfg *core.RepoConfig) []string {
	if cfg == nil || (len(cfg.ExcludeDirs) == 0 && len(cfg.ExcludeExts) == 0) {
		return files
	}

	kept := make([]string, 0, len(files))
	for _, f := range files {
		if isExcluded(f, cfg) {
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func isExcluded(file string, cfg *core.RepoConfig) bool {
	ext := path.Ext(file)
	for _, excluded := range cfg.ExcludeExts {
		if ext != "" && strings.EqualFold(ext, excluded) {
			return true
		}
	}
	dirs := strings.Split(path.Dir(file), "/")
	for _, excluded := range cfg.ExcludeDirs {
		excluded = strings.Trim(excluded, "/")
		if excluded == "" {
			continue
		}
		if slices.Contains(dirs, excluded) || strings.HasPrefix(file, excluded+"/") {
			return true
		}
	}
	return false
}
