// Package cdp hosts surfaces as Chromium tabs driven over the DevTools
// protocol with chromedp.
//
// The browser window is the host window. Each surface is a page target.
// Bounds map to a device-metrics override, visibility to the page lifecycle
// state, and window resizes are picked up by polling the window bounds.
package cdp

import (
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultWidth      = 1400
	defaultHeight     = 900
	defaultResizePoll = 250 * time.Millisecond
	shutdownTimeout   = 5 * time.Second
)

// Options configures the Chromium process.
type Options struct {
	ExecPath     string
	Headless     bool
	WindowWidth  int
	WindowHeight int
	// UserDataDir keeps the profile between runs. Empty uses a temp dir.
	UserDataDir string
	// ResizePoll is the window-size polling interval.
	ResizePoll time.Duration
	// Post delivers callbacks in order. Defaults to an internal loop.
	Post func(func()) bool
}

func (o Options) withDefaults() Options {
	if o.WindowWidth <= 0 {
		o.WindowWidth = defaultWidth
	}
	if o.WindowHeight <= 0 {
		o.WindowHeight = defaultHeight
	}
	if o.ResizePoll <= 0 {
		o.ResizePoll = defaultResizePoll
	}
	return o
}

// chromeFlags are the switches passed to Chromium on top of chromedp's
// defaults.
func chromeFlags(o Options) map[string]any {
	flags := map[string]any{
		"disable-infobars":                       true,
		"disable-dev-shm-usage":                  true,
		"disable-renderer-backgrounding":         true,
		"disable-background-timer-throttling":    true,
		"disable-backgrounding-occluded-windows": true,
		"disable-session-crashed-bubble":         true,
		"hide-crash-restore-bubble":              true,
		"disable-popup-blocking":                 true,
		"headless":                               o.Headless,
	}
	if !o.Headless {
		// chromedp's defaults hide scrollbars and mute audio for headless use.
		flags["hide-scrollbars"] = false
		flags["mute-audio"] = false
	}
	return flags
}

func allocatorOptions(o Options) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	for name, value := range chromeFlags(o) {
		opts = append(opts, chromedp.Flag(name, value))
	}
	opts = append(opts,
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.WindowSize(o.WindowWidth, o.WindowHeight),
	)
	if o.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(o.ExecPath))
	}
	if o.UserDataDir != "" {
		opts = append(opts, chromedp.UserDataDir(o.UserDataDir))
	}
	return opts
}
