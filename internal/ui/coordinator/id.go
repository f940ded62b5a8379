package coordinator

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/egdesk/taehwa/internal/domain/entity"
)

// NewTabID returns "tab-<unix millis>-<8 hex chars>".
func NewTabID(now time.Time) entity.TabID {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return entity.TabID(fmt.Sprintf("tab-%d-%s", now.UnixMilli(), suffix))
}
