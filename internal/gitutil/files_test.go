package gitutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/issue-warden/internal/core"
)

func TestWriteFiles(t *testing.T) {
	t.Run("creates intermediate directories", func(t *testing.T) {
		root := t.TempDir()
		err := WriteFiles(root, []core.FileEdit{{Path: "a/b/c.txt", Content: "hi"}})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(root, "a", "b", "c.txt"))
		require.NoError(t, err)
		assert.Equal(t, "hi", string(data))
	})

	t.Run("replaces existing content verbatim", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), []byte("old"), 0o600))

		err := WriteFiles(root, []core.FileEdit{
			{Path: "README.md", Content: "new\n\n  trailing  "},
			{Path: "empty.txt", Content: ""},
		})
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(root, "README.md"))
		require.NoError(t, err)
		assert.Equal(t, "new\n\n  trailing  ", string(data))

		info, err := os.Stat(filepath.Join(root, "empty.txt"))
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("empty list writes nothing", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, WriteFiles(root, nil))

		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects paths outside the root", func(t *testing.T) {
		root := t.TempDir()
		err := WriteFiles(root, []core.FileEdit{{Path: "../escape.txt", Content: "x"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrValidation)
		assert.NoFileExists(t, filepath.Join(filepath.Dir(root), "escape.txt"))
	})

	t.Run("does not follow a symlinked directory out of the root", func(t *testing.T) {
		root, outside := t.TempDir(), t.TempDir()
		symlinkOrSkip(t, outside, filepath.Join(root, "link"))

		err := WriteFiles(root, []core.FileEdit{{Path: "link/pwned.txt", Content: "x"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrFilesystem)
		assert.NoFileExists(t, filepath.Join(outside, "pwned.txt"))
	})

	t.Run("does not follow a symlinked file out of the root", func(t *testing.T) {
		root, outside := t.TempDir(), t.TempDir()
		victim := filepath.Join(outside, "victim")
		require.NoError(t, os.WriteFile(victim, []byte("original"), 0o600))
		symlinkOrSkip(t, victim, filepath.Join(root, "file"))

		err := WriteFiles(root, []core.FileEdit{{Path: "file", Content: "y"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrFilesystem)

		data, err := os.ReadFile(victim)
		require.NoError(t, err)
		assert.Equal(t, "original", string(data))
	})

	t.Run("follows symlinks that stay inside the root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "real.txt"), []byte("old"), 0o600))
		symlinkOrSkip(t, "real.txt", filepath.Join(root, "alias.txt"))

		require.NoError(t, WriteFiles(root, []core.FileEdit{{Path: "alias.txt", Content: "ok"}}))

		data, err := os.ReadFile(filepath.Join(root, "real.txt"))
		require.NoError(t, err)
		assert.Equal(t, "ok", string(data))
	})
}

func symlinkOrSkip(t *testing.T, oldname, newname string) {
	t.Helper()
	if err := os.Symlink(oldname, newname); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

func TestCleanRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "Plain file", input: "main.go", want: "main.go"},
		{name: "Nested", input: "src/pkg/file.go", want: "src/pkg/file.go"},
		{name: "Dot segments inside", input: "src/./pkg/../file.go", want: "src/file.go"},
		{name: "Backslashes", input: `src\file.go`, want: "src/file.go"},
		{name: "Empty", input: "  ", wantErr: true},
		{name: "Absolute", input: "/etc/passwd", wantErr: true},
		{name: "Parent escape", input: "../x", wantErr: true},
		{name: "Hidden escape", input: "a/../../x", wantErr: true},
		{name: "Root itself", input: ".", wantErr: true},
		{name: "Git directory", input: ".git/config", wantErr: true},
		{name: "Nested git directory", input: "sub/.git/hooks/pre-commit", wantErr: true},
		{name: "Gitignore is fine", input: ".gitignore", want: ".gitignore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanRelativePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterFiles(t *testing.T) {
	files := []string{"main.go", "vendor/lib/x.go", "docs/guide.md", "assets/logo.PNG", "cmd/app/main.go"}

	assert.Equal(t, files, FilterFiles(files, nil))

	cfg := &core.RepoConfig{
		ExcludeDirs: []string{"vendor", "docs/"},
		ExcludeExts: []string{".png"},
	}
	assert.Equal(t, []string{"main.go", "cmd/app/main.go"}, FilterFiles(files, cfg))
}
