package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/issue-warden/internal/core"
)

func TestPromptManager_BuildMessages(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	schema, err := FileEditsSchema()
	require.NoError(t, err)

	data := PromptData{
		Issue: &core.Issue{
			Number: 12,
			Title:  "Crash on start",
			Author: "alice",
			Labels: []string{"bug", "p1"},
			Body:   "It panics.",
		},
		Files:              []string{"main.go", "go.mod"},
		CustomInstructions: []string{"Keep functions short"},
		Schema:             schema,
	}

	messages, err := pm.BuildMessages(ModelProvider("gpt-test"), data)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	system := messages[0]
	assert.Equal(t, core.RoleSystem, system.Role)
	assert.Contains(t, system.Content, "issue #12")
	assert.Contains(t, system.Content, "**Title:** Crash on start")
	assert.Contains(t, system.Content, "**Author:** alice")
	assert.Contains(t, system.Content, "**Labels:** bug, p1")
	assert.Contains(t, system.Content, "It panics.")
	assert.Contains(t, system.Content, "- main.go\n- go.mod\n")
	assert.Contains(t, system.Content, "- Keep functions short")
	assert.Contains(t, system.Content, schema)

	user := messages[1]
	assert.Equal(t, core.RoleUser, user.Role)
	assert.Contains(t, user.Content, "leave it an empty array")
}

func TestPromptManager_EmptyRepository(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	out, err := pm.Render(SystemPrompt, DefaultProvider, PromptData{Issue: &core.Issue{Number: 1}})
	require.NoError(t, err)
	assert.Contains(t, out, "**Labels:** none")
	assert.Contains(t, out, "no tracked files")
	assert.NotContains(t, out, "Repository instructions")
}

func TestPromptManager_UnknownKey(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	_, err = pm.Get(PromptKey("missing"), DefaultProvider)
	assert.Error(t, err)
}

func TestFileEditsSchema(t *testing.T) {
	schema, err := FileEditsSchema()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(schema), &parsed))
	assert.Equal(t, "array", parsed["type"])

	items, ok := parsed["items"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"path", "content"}, items["required"])

	props, ok := items["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "path")
	assert.Contains(t, props, "content")
}
