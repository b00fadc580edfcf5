package insight

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrNoOnlineProvider is returned when online mode is requested without a configured service.
var ErrNoOnlineProvider = errors.New("no online analysis provider configured")

// ModeSwitch routes analysis to the remote provider or to the offline stand-in.
type ModeSwitch struct {
	online  AnalysisProvider
	offline AnalysisProvider
	isOff   atomic.Bool
}

// NewModeSwitch starts in offline mode when no online provider is given.
func NewModeSwitch(online, offline AnalysisProvider, startOffline bool) *ModeSwitch {
	m := &ModeSwitch{online: online, offline: offline}
	m.isOff.Store(startOffline || online == nil)
	return m
}

func (m *ModeSwitch) Offline() bool { return m.isOff.Load() }

// SetOffline toggles the mode. Going online fails when there is nothing to go online to.
func (m *ModeSwitch) SetOffline(offline bool) error {
	if !offline && m.online == nil {
		return ErrNoOnlineProvider
	}
	m.isOff.Store(offline)
	return nil
}

func (m *ModeSwitch) Analyze(ctx context.Context, summaries []ProductSummary) ([]RawInsight, error) {
	if m.Offline() {
		return m.offline.Analyze(ctx, summaries)
	}
	return m.online.Analyze(ctx, summaries)
}
