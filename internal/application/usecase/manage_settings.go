package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/domain/repository"
	"github.com/egdesk/taehwa/internal/domain/validation"
	"github.com/egdesk/taehwa/internal/logging"
)

// ErrInvalidSetting is returned when a key or value fails validation.
var ErrInvalidSetting = errors.New("invalid setting")

// ManageSettingsUseCase reads and writes runtime settings.
type ManageSettingsUseCase struct {
	settingsRepo repository.SettingsRepository
}

// NewManageSettingsUseCase creates a new ManageSettingsUseCase.
func NewManageSettingsUseCase(settingsRepo repository.SettingsRepository) *ManageSettingsUseCase {
	return &ManageSettingsUseCase{settingsRepo: settingsRepo}
}

// Get returns the value for key and whether it was set.
func (uc *ManageSettingsUseCase) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateSetting(key, ""); err != nil {
		return "", false, err
	}
	s, err := uc.settingsRepo.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("get setting %s: %w", key, err)
	}
	if s == nil {
		return "", false, nil
	}
	return s.Value, true, nil
}

// Set stores value under key.
func (uc *ManageSettingsUseCase) Set(ctx context.Context, key, value string) error {
	if err := validateSetting(key, value); err != nil {
		return err
	}
	if err := uc.settingsRepo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	logging.FromContext(ctx).Debug().Str("key", key).Msg("setting saved")
	return nil
}

// Delete removes key.
func (uc *ManageSettingsUseCase) Delete(ctx context.Context, key string) error {
	if err := validateSetting(key, ""); err != nil {
		return err
	}
	if err := uc.settingsRepo.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete setting %s: %w", key, err)
	}
	return nil
}

// List returns every setting ordered by key.
func (uc *ManageSettingsUseCase) List(ctx context.Context) ([]*entity.Setting, error) {
	settings, err := uc.settingsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

func validateSetting(key, value string) error {
	errs := append(validation.ValidateSettingKey(key), validation.ValidateSettingValue(value)...)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidSetting, strings.Join(errs, "; "))
}
