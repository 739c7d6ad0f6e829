// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/event"
)

// CommandFunc runs a plugin command. The returned text is printed.
type CommandFunc func(args []string) (string, error)

// API is what plugins may use to interact with the workspace.
type API interface {
	// ActiveDocument returns the active document, or nil.
	ActiveDocument() document.Document
	// SaveDocument saves an open document ("" is the active one).
	SaveDocument(path string) error

	SubscribeEvent(eventType event.Type, handler event.Handler)

	// RegisterCommand exposes a command on the command line.
	RegisterCommand(name, usage string, cmdFunc CommandFunc) error

	// GetPluginConfigValue reads key of the [plugins.<plugin>] config table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)

	// Printf writes a message for the user.
	Printf(format string, args ...interface{})
}

// Plugin is implemented by every plugin.
type Plugin interface {
	// Name returns the unique name of the plugin.
	Name() string

	// Initialize is called once after registration. Plugins subscribe to
	// events and register commands here.
	Initialize(api API) error

	// Shutdown is called once when the workspace exits.
	Shutdown() error
}
