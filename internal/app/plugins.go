package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/plugin"
	"github.com/bethropolis/weave/plugins/autosave"
	"github.com/bethropolis/weave/plugins/wordcount"
)

// registerPlugins registers every built-in plugin with the manager.
func registerPlugins(pm *plugin.Manager) error {
	if pm == nil {
		return fmt.Errorf("plugin manager is nil")
	}

	// Adding a plugin means adding its constructor here.
	pluginConstructors := []func() plugin.Plugin{
		func() plugin.Plugin { return wordcount.New() },
		func() plugin.Plugin { return autosave.New() },
	}

	var errs []error
	for _, newPlugin := range pluginConstructors {
		p := newPlugin()
		logger.Debugf("Registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			wrappedErr := fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err)
			logger.Errorf("%v", wrappedErr)
			errs = append(errs, wrappedErr)
		}
	}
	return errors.Join(errs...)
}
