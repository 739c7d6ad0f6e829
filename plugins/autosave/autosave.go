package autosave

import (
	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/logger"
	"github.com/bethropolis/weave/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled = false
	defaultEvery   = 20
)

// AutoSave saves a document after every N commands executed on it.
// Configured under [plugins.autosave] with "enabled" and "every".
type AutoSave struct {
	api plugin.API

	enabled bool
	every   int

	pending map[string]int // commands since the last save, per path
}

func New() *AutoSave {
	return &AutoSave{
		enabled: defaultEnabled,
		every:   defaultEvery,
		pending: make(map[string]int),
	}
}

func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads the configuration and subscribes to command events.
func (p *AutoSave) Initialize(api plugin.API) error {
	p.api = api
	name := p.Name()

	if v, ok := api.GetPluginConfigValue(name, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", name, v, p.enabled)
		}
	}
	if v, ok := api.GetPluginConfigValue(name, "every"); ok {
		switch n := v.(type) {
		case int64:
			if n > 0 {
				p.every = int(n)
			} else {
				logger.Warnf("%s: 'every' must be positive (%d), using default (%d)", name, n, p.every)
			}
		case int:
			if n > 0 {
				p.every = n
			}
		default:
			logger.Warnf("%s: Invalid type for 'every' config (%T), using default (%d)", name, v, p.every)
		}
	}
	logger.Infof("%s initialized. Enabled: %v, Every: %d commands", name, p.enabled, p.every)

	if p.enabled {
		api.SubscribeEvent(event.TypeCommandExecuted, p.onCommand)
		api.SubscribeEvent(event.TypeFileClosed, func(e event.Event) bool {
			delete(p.pending, e.Fields.Filepath())
			return false
		})
	}
	return nil
}

func (p *AutoSave) Shutdown() error {
	return nil
}

func (p *AutoSave) onCommand(e event.Event) bool {
	path := e.Fields.Filepath()
	if path == "" {
		return false
	}
	if e.Fields.Command() == "save" {
		delete(p.pending, path)
		return false
	}
	p.pending[path]++
	if p.pending[path] < p.every {
		return false
	}

	logger.Infof("%s: Auto-saving %s", p.Name(), path)
	if err := p.api.SaveDocument(path); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), path, err)
		return false
	}
	delete(p.pending, path)
	return false
}
