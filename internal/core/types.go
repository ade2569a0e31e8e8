package core

// Chat roles understood by chat-completion endpoints.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// FileEdit is a proposed file to create or overwrite, relative to the repository root.
// Content is written verbatim.
type FileEdit struct {
	Path    string `json:"path" jsonschema:"required,minLength=1,description=Repository-relative path using forward slashes"`
	Content string `json:"content" jsonschema:"required,description=Full new content of the file"`
}

// ChatMessage is a single role-tagged message sent to the model.
type ChatMessage struct {
	Role    string
	Content string
}

// Identity is the commit author configured in the working copy.
type Identity struct {
	Name  string
	Email string
}

// Repository describes the target repository as returned by the hosting API.
type Repository struct {
	Owner         string
	Name          string
	FullName      string
	DefaultBranch string
	CloneURL      string
}

// PullRequest is the result of a successful run.
type PullRequest struct {
	Number int
	URL    string
	Branch string
}
