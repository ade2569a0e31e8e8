package jobs

import (
	"log/slog"

	"github.com/sevigo/issue-warden/internal/core"
)

// PartitionEdits splits edits into changes to tracked files and new files.
// The model is free to create files, so nothing is dropped.
func PartitionEdits(logger *slog.Logger, edits []core.FileEdit, tracked []string) (modified, created []core.FileEdit) {
	if len(tracked) == 0 {
		logger.Warn("Tracked file list is empty, treating every edit as a new file")
		return nil, edits
	}

	known := make(map[string]struct{}, len(tracked))
	for _, f := range tracked {
		known[f] = struct{}{}
	}

	for _, e := range edits {
		if _, exists := known[e.Path]; exists {
			modified = append(modified, e)
		} else {
			logger.Debug("edit creates a new file", "path", e.Path)
			created = append(created, e)
		}
	}
	return modified, created
}
