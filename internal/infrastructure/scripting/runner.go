// Package scripting runs automation scripts written in JavaScript against
// the command surface. Every command is exposed on a global `tabs` object
// under its snake_case name and a camelCase alias:
//
//	const id = tabs.create_tab({url: "https://example.com"}).tab_id
//	tabs.waitForElement({selector: "#login", timeout_ms: 5000})
//	console.log(tabs.getNavigationState({}).url)
package scripting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/logging"
)

const defaultTimeout = 30 * time.Second

// ErrTimeout is returned when a script outlives its deadline.
var ErrTimeout = errors.New("script timed out")

// Dispatcher is the part of command.Dispatcher scripts use.
type Dispatcher interface {
	Names() []command.Name
	Dispatch(ctx context.Context, name command.Name, args json.RawMessage) (any, error)
}

// Options configures a Runner.
type Options struct {
	// Timeout bounds a whole script run. Zero means 30s.
	Timeout time.Duration
	// Output receives console.log lines. Nil discards them.
	Output io.Writer
}

// Runner executes scripts. Each Run gets a fresh JS runtime.
type Runner struct {
	dispatcher Dispatcher
	timeout    time.Duration
	out        io.Writer
}

// NewRunner creates a Runner.
func NewRunner(d Dispatcher, opts Options) *Runner {
	r := &Runner{dispatcher: d, timeout: opts.Timeout, out: opts.Output}
	if r.timeout <= 0 {
		r.timeout = defaultTimeout
	}
	if r.out == nil {
		r.out = io.Discard
	}
	return r
}

// Result is the exported completion value of a script.
type Result struct {
	Value    any
	Commands int
	Elapsed  time.Duration
}

// Run evaluates source. name is used in stack traces.
func (r *Runner) Run(ctx context.Context, name, source string) (*Result, error) {
	log := logging.FromContext(ctx).With().Str("script", name).Logger()
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	vm := goja.New()
	vm.SetFieldNameMapper(goja.TagFieldNameMapper("json", true))

	session := &session{vm: vm, ctx: ctx, dispatcher: r.dispatcher, out: r.out}
	if err := session.install(); err != nil {
		return nil, err
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	start := time.Now()
	value, err := vm.RunScript(name, source)
	elapsed := time.Since(start)
	if err != nil {
		err = scriptError(err)
		log.Debug().Err(err).Dur("elapsed", elapsed).Msg("script failed")
		return nil, err
	}

	log.Debug().Int("commands", session.commands).Dur("elapsed", elapsed).Msg("script finished")
	return &Result{Value: exportValue(value), Commands: session.commands, Elapsed: elapsed}, nil
}

func exportValue(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}

// scriptError maps interrupts caused by the deadline to ErrTimeout. goja
// exceptions thrown by commands unwrap to the command error.
func scriptError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// camelCase turns "get_navigation_state" into "getNavigationState".
func camelCase(name string) string {
	parts := strings.Split(name, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// RunFile reads and runs a script file.
func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return r.Run(ctx, filepath.Base(path), string(src))
}
