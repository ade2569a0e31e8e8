package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/gitutil"
)

// Matches the first fenced block; the language tag is optional.
var codeBlockRegex = regexp.MustCompile("```(\\w+)?\\n([\\s\\S]*?)\\n```")

// ErrNoCodeBlock is returned when a response holds no fenced code block.
var ErrNoCodeBlock = errors.New("response contains no fenced code block")

// fileEditPayload uses pointers so missing fields can be told apart from empty ones.
type fileEditPayload struct {
	Path    *string `json:"path"`
	Content *string `json:"content"`
}

// ExtractCodeBlock returns the body of the first fenced code block in content.
func ExtractCodeBlock(content string) (string, bool) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	matches := codeBlockRegex.FindStringSubmatch(content)
	if len(matches) != 3 {
		return "", false
	}
	return matches[2], true
}

// ParseFileEdits extracts the first fenced block of a model response and decodes it
// as a list of file edits. Every failure is a validation error, so callers can ask
// the model again.
func ParseFileEdits(content string) ([]core.FileEdit, error) {
	block, ok := ExtractCodeBlock(content)
	if !ok {
		return nil, core.NewError(core.KindValidation, "parse file edits", ErrNoCodeBlock)
	}

	edits, err := decodeFileEdits([]byte(block))
	if err != nil {
		return nil, core.NewError(core.KindValidation, "parse file edits", err)
	}
	return edits, nil
}

func decodeFileEdits(data []byte) ([]core.FileEdit, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("expected a JSON array of file edits")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var payload []fileEditPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after the JSON array")
	}

	edits := make([]core.FileEdit, 0, len(payload))
	seen := make(map[string]int, len(payload))
	for i, p := range payload {
		if p.Path == nil {
			return nil, fmt.Errorf("edit %d: missing \"path\"", i)
		}
		if p.Content == nil {
			return nil, fmt.Errorf("edit %d: missing \"content\"", i)
		}
		path, err := gitutil.CleanRelativePath(*p.Path)
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i, err)
		}
		if first, dup := seen[path]; dup {
			return nil, fmt.Errorf("edit %d: duplicate path %q (first seen in edit %d)", i, path, first)
		}
		seen[path] = i
		edits = append(edits, core.FileEdit{Path: path, Content: *p.Content})
	}
	return edits, nil
}
