package console

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/domain/event"
	"github.com/egdesk/taehwa/internal/logging"
)

const maxURLWidth = 80

type severity int

const (
	sevInfo severity = iota
	sevOK
	sevWarn
	sevError
)

// describeEvent renders an event as one log line. Bounds updates are too
// frequent to be useful and return "".
func describeEvent(ev event.Event) (string, severity) {
	switch e := ev.(type) {
	case event.TabCreated:
		return fmt.Sprintf("%s created", e.TabID), sevInfo
	case event.TabSwitched:
		return fmt.Sprintf("%s active", e.TabID), sevInfo
	case event.TabClosed:
		return fmt.Sprintf("%s closed", e.TabID), sevInfo
	case event.Navigation:
		if e.InPage {
			return fmt.Sprintf("%s in-page %s", e.TabID, short(e.URL)), sevInfo
		}
		return fmt.Sprintf("%s navigated %s", e.TabID, short(e.URL)), sevInfo
	case event.LoadingStarted:
		return fmt.Sprintf("%s loading %s", e.TabID, short(e.URL)), sevInfo
	case event.LoadingFinished:
		return fmt.Sprintf("%s loaded %s", e.TabID, short(e.URL)), sevOK
	case event.LoadingFailed:
		msg := fmt.Sprintf("%s failed %s", e.TabID, short(e.URL))
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg, sevError
	case event.LoadingStopped:
		return fmt.Sprintf("%s stopped", e.TabID), sevInfo
	case event.TitleUpdated:
		return fmt.Sprintf("%s title %q", e.TabID, e.Title), sevInfo
	case event.TabCrashed:
		return fmt.Sprintf("%s crashed: %s", e.TabID, e.Reason), sevError
	case event.CertificateError:
		verdict := "rejected"
		if e.Accepted {
			verdict = "accepted"
		}
		return fmt.Sprintf("%s certificate error on %s (%s), %s", e.TabID, e.Host, e.Reason, verdict), sevWarn
	case event.BoundsApplied:
		return "", sevInfo
	default:
		return string(ev.Kind()), sevInfo
	}
}

// describeResult renders a command result.
func describeResult(name command.Name, value any) string {
	switch v := value.(type) {
	case command.OKResult:
		return string(name) + " ok"
	case command.TabsResult:
		if len(v.Tabs) == 0 {
			return "no tabs"
		}
		lines := make([]string, 0, len(v.Tabs))
		for i, tab := range v.Tabs {
			marker := " "
			if tab.Active {
				marker = "*"
			}
			lines = append(lines, fmt.Sprintf("%s %d %s %s %q", marker, i+1, tab.ID, short(tab.URL), tab.Title))
		}
		return strings.Join(lines, "\n")
	case command.ScriptResult:
		return string(v.Result)
	case command.NavigateResult:
		return fmt.Sprintf("%s → %s (%s)", v.TabID, short(v.URL), v.Resolution)
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}

func short(u string) string {
	return logging.TruncateURL(u, maxURLWidth)
}

const helpText = `free text             navigate (address, search or !bang query)
/new [url]            open a tab
/open <url>           load an address in the active tab
/tab <n|id>           switch tab
/close [id]           close a tab
/back /forward        history
/reload /stop         reload or stop loading
/state [id]           navigation state
/tabs                 list tabs
/js <code>            run JavaScript in the active tab
/wait <selector>      wait for an element
/<command> {json}     any automation command
/quit                 exit`
