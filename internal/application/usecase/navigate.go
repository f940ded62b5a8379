package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/url"
	"github.com/egdesk/taehwa/internal/logging"
)

// logURLMaxLen is the max length for URLs in log messages.
const logURLMaxLen = 60

// NavigateUseCase turns free text from the console or automation layer
// into a navigation of the active tab.
type NavigateUseCase struct {
	tabs port.TabController

	mu            sync.RWMutex
	shortcuts     map[string]string
	defaultSearch string
}

// NewNavigateUseCase creates a new navigation use case.
func NewNavigateUseCase(tabs port.TabController, shortcuts map[string]string, defaultSearch string) *NavigateUseCase {
	uc := &NavigateUseCase{tabs: tabs}
	uc.SetSearch(shortcuts, defaultSearch)
	return uc
}

// SetSearch replaces the bang shortcuts and default search template. Used on
// config reload.
func (uc *NavigateUseCase) SetSearch(shortcuts map[string]string, defaultSearch string) {
	copied := make(map[string]string, len(shortcuts))
	for k, v := range shortcuts {
		copied[k] = v
	}
	uc.mu.Lock()
	uc.shortcuts = copied
	uc.defaultSearch = defaultSearch
	uc.mu.Unlock()
}

// NavigateInput contains the parameters for navigation.
type NavigateInput struct {
	Input string
	TabID entity.TabID
}

// NavigateOutput contains the result of navigation.
type NavigateOutput struct {
	TabID      entity.TabID
	URL        string
	Resolution url.Resolution
}

// Execute resolves the input and loads it.
func (uc *NavigateUseCase) Execute(ctx context.Context, input NavigateInput) (*NavigateOutput, error) {
	log := logging.FromContext(ctx)

	uc.mu.RLock()
	target, kind := url.Resolve(input.Input, uc.shortcuts, uc.defaultSearch)
	uc.mu.RUnlock()

	if kind == url.ResolvedEmpty {
		return nil, fmt.Errorf("navigate: empty input")
	}

	log.Debug().
		Str("input", logging.TruncateURL(input.Input, logURLMaxLen)).
		Str("url", logging.TruncateURL(target, logURLMaxLen)).
		Int("resolution", int(kind)).
		Msg("navigating")

	id, err := uc.tabs.LoadURL(ctx, target, input.TabID)
	if err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	return &NavigateOutput{TabID: id, URL: target, Resolution: kind}, nil
}
