package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/sevigo/issue-warden/internal/core"
)

// FileEditsSchema returns the JSON schema of the edit list the model must produce.
func FileEditsSchema() (string, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
	}
	item := reflector.Reflect(&core.FileEdit{})
	item.Version = ""

	schema := &jsonschema.Schema{
		Type:        "array",
		Description: "Files to create or replace in the repository",
		Items:       item,
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal file edit schema: %w", err)
	}
	return string(out), nil
}
