package usecase_test

import (
	"testing"

	"github.com/egdesk/taehwa/internal/application/usecase"
	"github.com/egdesk/taehwa/internal/domain/entity"
	repomocks "github.com/egdesk/taehwa/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManageSettingsUseCase_GetSet(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockSettingsRepository(t)
	uc := usecase.NewManageSettingsUseCase(repo)

	repo.EXPECT().Set(mock.Anything, "console.last_input", "example.com").Return(nil)
	require.NoError(t, uc.Set(ctx, "console.last_input", "example.com"))

	repo.EXPECT().Get(mock.Anything, "console.last_input").
		Return(&entity.Setting{Key: "console.last_input", Value: "example.com"}, nil)
	value, ok, err := uc.Get(ctx, "console.last_input")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "example.com", value)
}

func TestManageSettingsUseCase_GetMissing(t *testing.T) {
	repo := repomocks.NewMockSettingsRepository(t)
	repo.EXPECT().Get(mock.Anything, "missing").Return(nil, nil)

	_, ok, err := usecase.NewManageSettingsUseCase(repo).Get(testContext(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManageSettingsUseCase_RejectsBadKeys(t *testing.T) {
	uc := usecase.NewManageSettingsUseCase(repomocks.NewMockSettingsRepository(t))

	for _, key := range []string{"", "Upper.case", "trailing.", "has space"} {
		err := uc.Set(testContext(), key, "v")
		assert.ErrorIs(t, err, usecase.ErrInvalidSetting, key)
	}
}

func TestManageSettingsUseCase_DeleteAndList(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockSettingsRepository(t)
	uc := usecase.NewManageSettingsUseCase(repo)

	repo.EXPECT().Delete(mock.Anything, "a.b").Return(nil)
	require.NoError(t, uc.Delete(ctx, "a.b"))

	repo.EXPECT().List(mock.Anything).Return([]*entity.Setting{{Key: "a"}, {Key: "b"}}, nil)
	all, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
