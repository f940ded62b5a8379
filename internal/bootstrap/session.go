package bootstrap

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/egdesk/taehwa/internal/config"
	"github.com/egdesk/taehwa/internal/domain/entity"
	"github.com/egdesk/taehwa/internal/logging"
)

// Session is one run of the browser runtime and where its logs go.
type Session struct {
	ID     entity.SessionID
	Logger zerolog.Logger
	// LogFile is empty when file logging is off.
	LogFile    string
	LogCleanup func()
}

// SessionOptions tune StartSession.
type SessionOptions struct {
	// ID names the session. Generated when empty.
	ID entity.SessionID
	// Quiet keeps logs off stderr, e.g. while a TUI owns the terminal.
	Quiet bool
	// Stderr overrides os.Stderr.
	Stderr io.Writer
}

// StartSession builds the session logger from cfg.Logging and attaches it to
// the returned context. With file logging enabled every record is also
// appended to <log_dir>/session_<id>.log.
func StartSession(ctx context.Context, cfg *config.Config, opts SessionOptions) (*Session, context.Context) {
	id := opts.ID
	if id == "" {
		id = entity.SessionID(logging.GenerateSessionID())
	}

	var stderr io.Writer = os.Stderr
	if opts.Stderr != nil {
		stderr = opts.Stderr
	}

	s := &Session{ID: id, LogCleanup: func() {}}
	var writers []io.Writer
	if !opts.Quiet {
		writers = append(writers, consoleWriter(cfg.Logging.Format, stderr))
	}

	var fileErr error
	logDir := cfg.Logging.LogDir
	if logDir == "" {
		logDir, _ = config.GetLogDir()
	}
	if cfg.Logging.EnableFileLog {
		file, closeFile, err := logging.OpenSessionFile(logDir, string(id))
		if err == nil {
			writers = append(writers, file)
			s.LogFile = filepath.Join(logDir, logging.SessionFilename(string(id)))
			s.LogCleanup = func() { _ = closeFile() }
		} else {
			fileErr = err
		}
	}

	var out io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	s.Logger = zerolog.New(out).
		Level(logging.ParseLevel(cfg.Logging.Level)).
		With().
		Timestamp().
		Str("session_id", string(id)).
		Logger()
	if fileErr != nil {
		s.Logger.Warn().Err(fileErr).Msg("session log file disabled")
	}

	return s, logging.WithContext(ctx, s.Logger)
}

func consoleWriter(format string, out io.Writer) io.Writer {
	if format == "json" {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
}
