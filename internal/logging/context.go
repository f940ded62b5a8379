package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// maxLoggedURL keeps data: URIs and tracking-heavy links readable in logs.
const maxLoggedURL = 120

// FromContext returns the logger carried by ctx. Without one it returns
// zerolog's disabled logger, so callers never nil-check.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent tags records with the subsystem that wrote them.
func WithComponent(ctx context.Context, component string) context.Context {
	return withField(ctx, "component", component)
}

// WithTabID tags records with the tab they concern.
func WithTabID(ctx context.Context, tabID string) context.Context {
	return withField(ctx, "tab_id", tabID)
}

// WithURL tags records with the target of a navigation.
func WithURL(ctx context.Context, url string) context.Context {
	return withField(ctx, "url", TruncateURL(url, maxLoggedURL))
}

func withField(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With().Str(key, value).Logger())
}

// TruncateURL cuts url to maxLen bytes, ending in "...".
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 3 || len(url) <= maxLen {
		return url
	}
	return url[:maxLen-3] + "..."
}
