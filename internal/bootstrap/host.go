package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/egdesk/taehwa/internal/application/port"
	"github.com/egdesk/taehwa/internal/config"
	"github.com/egdesk/taehwa/internal/infrastructure/cdp"
	"github.com/egdesk/taehwa/internal/infrastructure/playwright"
	"github.com/egdesk/taehwa/internal/logging"
)

const profileDirName = "profile"

// HostFactory starts the browser engine. post delivers engine callbacks in
// order on the runtime loop.
type HostFactory func(ctx context.Context, cfg *config.Config, post func(func()) bool) (port.Host, error)

// EngineHost returns the factory for cfg.Browser.Engine. install lets the
// playwright engine download its driver on first use.
func EngineHost(install bool) HostFactory {
	return func(ctx context.Context, cfg *config.Config, post func(func()) bool) (port.Host, error) {
		log := logging.FromContext(ctx)
		poll := time.Duration(cfg.Browser.ResizePollMs) * time.Millisecond

		switch cfg.Browser.Engine {
		case config.EnginePlaywright:
			log.Debug().Msg("starting playwright engine")
			return playwright.NewHost(ctx, playwright.Options{
				ExecPath:     cfg.Browser.ExecPath,
				Headless:     cfg.Browser.Headless,
				WindowWidth:  cfg.Browser.WindowWidth,
				WindowHeight: cfg.Browser.WindowHeight,
				Install:      install,
				ResizePoll:   poll,
				Post:         post,
			})
		case config.EngineCDP, "":
			log.Debug().Msg("starting cdp engine")
			return cdp.NewHost(ctx, cdp.Options{
				ExecPath:     cfg.Browser.ExecPath,
				Headless:     cfg.Browser.Headless,
				WindowWidth:  cfg.Browser.WindowWidth,
				WindowHeight: cfg.Browser.WindowHeight,
				UserDataDir:  profileDir(ctx),
				ResizePoll:   poll,
				Post:         post,
			})
		default:
			return nil, fmt.Errorf("unknown browser engine %q", cfg.Browser.Engine)
		}
	}
}

// profileDir keeps the Chromium profile under the data dir. An unresolvable
// data dir falls back to a temporary profile.
func profileDir(ctx context.Context) string {
	dir, err := config.GetDataDir()
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("no data dir, using a temporary browser profile")
		return ""
	}
	return filepath.Join(dir, profileDirName)
}
