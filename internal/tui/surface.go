// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/citation-view/internal/view"
)

// Surface identifies one of the two presentations of the engine state.
type Surface int

const (
	// SurfaceTable shows one record per line with a column header.
	SurfaceTable Surface = iota
	// SurfaceCards shows one bordered card per record.
	SurfaceCards
)

func (s Surface) String() string {
	if s == SurfaceCards {
		return "cards"
	}
	return "table"
}

// invalidatedMsg tells the model that engine state changed outside Update,
// for example a load from another goroutine.
type invalidatedMsg struct{}

// surfaceState is the cached view of one surface. Each surface subscribes to
// the engine on its own and re-derives its view after every invalidation,
// so a change made through one is visible on the other.
type surfaceState struct {
	view        view.View
	dirty       atomic.Bool
	unsubscribe func()
}

func newSurfaceState(engine *view.Engine, signal chan<- struct{}) *surfaceState {
	s := &surfaceState{view: engine.Snapshot()}
	s.unsubscribe = engine.Subscribe(func() {
		s.dirty.Store(true)
		select {
		case signal <- struct{}{}:
		default:
		}
	})
	return s
}

// refresh re-derives the view when the engine signalled a change since the
// last refresh.
func (s *surfaceState) refresh(engine *view.Engine) {
	if s.dirty.Swap(false) {
		s.view = engine.Snapshot()
	}
}

// waitForInvalidation blocks until the engine signals a change.
func waitForInvalidation(signal <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-signal; !ok {
			return nil
		}
		return invalidatedMsg{}
	}
}
