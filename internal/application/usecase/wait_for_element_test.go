package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/egdesk/taehwa/internal/application/port"
	portmocks "github.com/egdesk/taehwa/internal/application/port/mocks"
	"github.com/egdesk/taehwa/internal/application/usecase"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const loginScript = `document.querySelector("#login") !== null`

func TestWaitForElementUseCase_Execute_FoundAfterRetries(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	tabs.EXPECT().ExecuteScript(mock.Anything, loginScript, entity.TabID("")).Return(json.RawMessage("false"), nil).Once()
	tabs.EXPECT().ExecuteScript(mock.Anything, loginScript, entity.TabID("")).Return(nil, errors.New("context destroyed")).Once()
	tabs.EXPECT().ExecuteScript(mock.Anything, loginScript, entity.TabID("")).Return(json.RawMessage("true"), nil).Once()

	uc := usecase.NewWaitForElementUseCase(tabs, time.Millisecond)
	out, err := uc.Execute(testContext(), usecase.WaitInput{Selector: "#login", Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Attempts)
}

func TestWaitForElementUseCase_Execute_Timeout(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	tabs.EXPECT().ExecuteScript(mock.Anything, loginScript, entity.TabID("tab-1")).Return(json.RawMessage("false"), nil)

	uc := usecase.NewWaitForElementUseCase(tabs, 5*time.Millisecond)
	_, err := uc.Execute(testContext(), usecase.WaitInput{Selector: "#login", Timeout: 30 * time.Millisecond, TabID: "tab-1"})
	assert.ErrorIs(t, err, usecase.ErrWaitTimeout)
}

func TestWaitForElementUseCase_Execute_NoTabStopsImmediately(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	tabs.EXPECT().ExecuteScript(mock.Anything, loginScript, entity.TabID("")).Return(nil, port.ErrNoActiveTab).Once()

	uc := usecase.NewWaitForElementUseCase(tabs, time.Millisecond)
	_, err := uc.Execute(testContext(), usecase.WaitInput{Selector: "#login"})
	assert.ErrorIs(t, err, port.ErrNoActiveTab)
}

func TestWaitForElementUseCase_Execute_ManagerGoneStopsImmediately(t *testing.T) {
	for _, sentinel := range []error{port.ErrUninitialized, port.ErrDestroyed} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			tabs := portmocks.NewMockTabController(t)
			tabs.EXPECT().ExecuteScript(mock.Anything, loginScript, entity.TabID("")).
				Return(nil, fmt.Errorf("execute script: %w", sentinel)).Once()

			uc := usecase.NewWaitForElementUseCase(tabs, time.Millisecond)
			out, err := uc.Execute(testContext(), usecase.WaitInput{Selector: "#login", Timeout: time.Hour})
			assert.ErrorIs(t, err, sentinel)
			assert.Nil(t, out)
		})
	}
}

func TestWaitForElementUseCase_Execute_ContextCancelled(t *testing.T) {
	tabs := portmocks.NewMockTabController(t)
	tabs.EXPECT().ExecuteScript(mock.Anything, loginScript, entity.TabID("")).Return(json.RawMessage("false"), nil)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	uc := usecase.NewWaitForElementUseCase(tabs, time.Hour)
	_, err := uc.Execute(ctx, usecase.WaitInput{Selector: "#login", Timeout: time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWaitForElementUseCase_Execute_RequiresSelector(t *testing.T) {
	uc := usecase.NewWaitForElementUseCase(portmocks.NewMockTabController(t), 0)
	_, err := uc.Execute(testContext(), usecase.WaitInput{})
	assert.Error(t, err)
}
