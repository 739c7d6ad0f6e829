package app

import (
	"fmt"
	"strings"

	"github.com/bethropolis/weave/internal/document"
	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/plugin"
)

var _ plugin.API = (*appEditorAPI)(nil)

// appEditorAPI is the plugin.API handed to plugins and app commands.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

func (api *appEditorAPI) ActiveDocument() document.Document {
	return api.app.workspace.Active()
}

func (api *appEditorAPI) SaveDocument(path string) error {
	_, err := api.app.workspace.Save(path)
	return err
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// RegisterCommand adds a command to the Plugins group of help. Names are
// case-insensitive and may not shadow an existing command.
func (api *appEditorAPI) RegisterCommand(name, usage string, cmdFunc plugin.CommandFunc) error {
	name = strings.ToLower(name)
	if name == "" || cmdFunc == nil {
		return fmt.Errorf("invalid command registration %q", name)
	}
	if usage == "" {
		usage = name
	}
	err := api.app.addCommand(&command{
		name:  name,
		group: groupPlugins,
		usage: usage,
		run: func(args []token) (string, error) {
			return cmdFunc(values(args))
		},
	})
	if err == nil {
		logger.Debugf("API: registered command '%s'", name)
	}
	return err
}

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}

func (api *appEditorAPI) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprint(api.app.out, msg)
}
