package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// GenerateSessionID creates a unique session identifier.
// Format: YYYYMMDD_HHMMSS_xxxx (timestamp + 4 random hex chars)
func GenerateSessionID() string {
	id := uuid.New()
	return time.Now().Format("20060102_150405") + "_" + fmt.Sprintf("%x", id[:2])
}

// SessionFilename generates the log filename for a session ID.
// Example: "20251217_205106_a7b3" -> "session_20251217_205106_a7b3.log"
func SessionFilename(sessionID string) string {
	return "session_" + sessionID + ".log"
}

// OpenSessionFile opens (or appends to) the per-session log file inside
// logDir. The returned func closes it.
func OpenSessionFile(logDir, sessionID string) (io.Writer, func() error, error) {
	const logDirPerm = 0o750
	if logDir == "" {
		return nil, nil, fmt.Errorf("log directory cannot be empty")
	}
	if err := os.MkdirAll(logDir, logDirPerm); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	path := filepath.Join(logDir, SessionFilename(sessionID))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open session log: %w", err)
	}
	return file, file.Close, nil
}
