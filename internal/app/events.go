package app

import (
	"github.com/bethropolis/weave/internal/event"
	"github.com/bethropolis/weave/internal/logger"
)

// attachCollaborators connects the command log and the statistics to the
// workspace events and traces the rest.
func (a *App) attachCollaborators() {
	a.eventManager.Attach(a.cmdLog)
	a.eventManager.Attach(a.stats)

	for _, t := range []event.Type{event.TypeFileLoaded, event.TypeFileActivated, event.TypeFileClosed, event.TypeWorkspaceExit} {
		a.eventManager.Subscribe(t, a.traceEvent)
	}
}

func (a *App) traceEvent(e event.Event) bool {
	logger.DebugTagf("events", "App: %v %s", e.Type, e.Fields.Filepath())
	return false
}
