package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/logging"
)

// ErrWaitTimeout is returned when the selector never matched in time.
var ErrWaitTimeout = errors.New("timed out waiting for element")

const (
	defaultWaitTimeout  = 10 * time.Second
	defaultPollInterval = 250 * time.Millisecond
)

// WaitForElementUseCase polls a tab until a CSS selector matches.
type WaitForElementUseCase struct {
	tabs         port.TabController
	pollInterval time.Duration
}

// NewWaitForElementUseCase creates a new WaitForElementUseCase.
// A non-positive pollInterval uses 250ms.
func NewWaitForElementUseCase(tabs port.TabController, pollInterval time.Duration) *WaitForElementUseCase {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &WaitForElementUseCase{tabs: tabs, pollInterval: pollInterval}
}

// WaitInput describes what to wait for.
type WaitInput struct {
	Selector string
	Timeout  time.Duration
	TabID    entity.TabID
}

// WaitOutput reports how long the wait took.
type WaitOutput struct {
	Attempts int
	Elapsed  time.Duration
}

// Execute evaluates document.querySelector until it returns an element,
// the timeout elapses or ctx is cancelled. Script errors other than a
// missing tab are retried; pages mid-navigation reject evaluation.
func (uc *WaitForElementUseCase) Execute(ctx context.Context, input WaitInput) (*WaitOutput, error) {
	if input.Selector == "" {
		return nil, fmt.Errorf("selector required")
	}
	timeout := input.Timeout
	if timeout <= 0 {
		timeout = defaultWaitTimeout
	}

	selector, err := json.Marshal(input.Selector)
	if err != nil {
		return nil, fmt.Errorf("encode selector: %w", err)
	}
	script := fmt.Sprintf("document.querySelector(%s) !== null", selector)

	log := logging.FromContext(ctx)
	start := time.Now()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(uc.pollInterval)
	defer ticker.Stop()

	out := &WaitOutput{}
	for {
		out.Attempts++
		raw, err := uc.tabs.ExecuteScript(ctx, script, input.TabID)
		switch {
		case errors.Is(err, port.ErrNoActiveTab), errors.Is(err, port.ErrTabNotFound),
			errors.Is(err, port.ErrUninitialized), errors.Is(err, port.ErrDestroyed):
			return nil, err
		case err != nil:
			log.Debug().Err(err).Str("selector", input.Selector).Msg("selector check failed")
		case found(raw):
			out.Elapsed = time.Since(start)
			return out, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline.C:
			return nil, fmt.Errorf("%w: %q after %s", ErrWaitTimeout, input.Selector, timeout)
		case <-ticker.C:
		}
	}
}

func found(raw json.RawMessage) bool {
	var ok bool
	if err := json.Unmarshal(raw, &ok); err != nil {
		return false
	}
	return ok
}
