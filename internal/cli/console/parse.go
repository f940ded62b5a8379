package console

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/egdesk/taehwa/internal/application/command"
)

var errEmptyInput = errors.New("empty input")

// Request is one parsed console line.
type Request struct {
	Name command.Name
	Args map[string]any
	// Raw holds literal JSON arguments given after a command name.
	Raw json.RawMessage
	// TabIndex is the 1-based tab position of "/tab N"; it is resolved
	// against the tab bar before dispatch.
	TabIndex int
	Quit     bool
	Help     bool
}

// Parse turns console input into a request. Plain text is free-text
// navigation; lines starting with "/" are commands.
func Parse(line string) (Request, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Request{}, errEmptyInput
	}
	if !strings.HasPrefix(line, "/") {
		return Request{Name: command.NavigateInput, Args: map[string]any{"input": line}}, nil
	}

	verb, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)
	withTab := func(name command.Name) Request {
		if rest == "" {
			return Request{Name: name}
		}
		return Request{Name: name, Args: map[string]any{"tab_id": rest}}
	}

	switch strings.ToLower(verb) {
	case "quit", "q", "exit":
		return Request{Quit: true}, nil
	case "help", "?":
		return Request{Help: true}, nil
	case "new", "n":
		if rest == "" {
			return Request{Name: command.CreateTab}, nil
		}
		return Request{Name: command.CreateTab, Args: map[string]any{"url": rest}}, nil
	case "open", "o":
		if rest == "" {
			return Request{}, fmt.Errorf("/open needs an address")
		}
		return Request{Name: command.LoadURL, Args: map[string]any{"url": rest}}, nil
	case "tab", "t":
		if rest == "" {
			return Request{}, fmt.Errorf("/tab needs a tab number or id")
		}
		if n, err := strconv.Atoi(rest); err == nil {
			if n < 1 {
				return Request{}, fmt.Errorf("tab numbers start at 1")
			}
			return Request{Name: command.SwitchTab, TabIndex: n}, nil
		}
		return Request{Name: command.SwitchTab, Args: map[string]any{"tab_id": rest}}, nil
	case "close", "x":
		return withTab(command.CloseTab), nil
	case "back", "b":
		return withTab(command.GoBack), nil
	case "forward", "f":
		return withTab(command.GoForward), nil
	case "reload", "r":
		return withTab(command.Reload), nil
	case "stop", "s":
		return withTab(command.Stop), nil
	case "state":
		return withTab(command.GetNavigationState), nil
	case "tabs", "ls":
		return Request{Name: command.ListTabs}, nil
	case "js", "eval":
		if rest == "" {
			return Request{}, fmt.Errorf("/js needs code")
		}
		return Request{Name: command.ExecuteScript, Args: map[string]any{"code": rest}}, nil
	case "wait":
		if rest == "" {
			return Request{}, fmt.Errorf("/wait needs a selector")
		}
		return Request{Name: command.WaitForElement, Args: map[string]any{"selector": rest}}, nil
	}

	req := Request{Name: command.Name(verb)}
	if rest != "" {
		if !json.Valid([]byte(rest)) {
			return Request{}, fmt.Errorf("arguments of /%s must be a JSON object", verb)
		}
		req.Raw = json.RawMessage(rest)
	}
	return req, nil
}

// Arguments encodes the request arguments for the dispatcher.
func (r Request) Arguments() (json.RawMessage, error) {
	if r.Raw != nil {
		return r.Raw, nil
	}
	if len(r.Args) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(r.Args)
	if err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}
	return data, nil
}
