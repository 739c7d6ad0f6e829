// Package event carries workspace notifications to collaborators.
package event

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	TypeFileLoaded      // a document was loaded or created
	TypeFileActivated   // a document became the active one
	TypeFileClosed      // a document was closed
	TypeCommandExecuted // a mutation, undo, redo or save completed
	TypeWorkspaceExit   // the workspace is shutting down
)

var typeNames = map[Type]string{
	TypeFileLoaded:      "fileLoaded",
	TypeFileActivated:   "fileActivated",
	TypeFileClosed:      "fileClosed",
	TypeCommandExecuted: "commandExecuted",
	TypeWorkspaceExit:   "workspaceExit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Field keys.
const (
	KeyFilepath   = "filepath"
	KeyCommand    = "command"
	KeyAutoEnable = "autoEnable"
	KeyExcludes   = "excludes"
)

// Fields is the payload of an event. Every event carries KeyFilepath.
type Fields map[string]interface{}

// Filepath returns the KeyFilepath field.
func (f Fields) Filepath() string {
	s, _ := f[KeyFilepath].(string)
	return s
}

// Command returns the KeyCommand field of a commandExecuted event.
func (f Fields) Command() string {
	s, _ := f[KeyCommand].(string)
	return s
}

// AutoEnable returns the KeyAutoEnable field of a fileLoaded event.
func (f Fields) AutoEnable() bool {
	b, _ := f[KeyAutoEnable].(bool)
	return b
}

// Excludes returns the operation names a fileLoaded directive excluded from logging.
func (f Fields) Excludes() []string {
	s, _ := f[KeyExcludes].([]string)
	return s
}

// Event is one notification.
type Event struct {
	Type   Type
	Fields Fields
}
