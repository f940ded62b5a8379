package scripting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/egdesk/taehwa/internal/application/command"
)

// session holds the state of one Run.
type session struct {
	vm         *goja.Runtime
	ctx        context.Context
	dispatcher Dispatcher
	out        io.Writer
	commands   int
}

func (s *session) install() error {
	tabs := s.vm.NewObject()
	for _, name := range s.dispatcher.Names() {
		fn := s.commandFunc(name)
		if err := tabs.Set(string(name), fn); err != nil {
			return err
		}
		if alias := camelCase(string(name)); alias != string(name) {
			if err := tabs.Set(alias, fn); err != nil {
				return err
			}
		}
	}
	if err := s.vm.Set("tabs", tabs); err != nil {
		return err
	}

	console := s.vm.NewObject()
	if err := console.Set("log", s.log); err != nil {
		return err
	}
	if err := s.vm.Set("console", console); err != nil {
		return err
	}
	return s.vm.Set("sleep", s.sleep)
}

func (s *session) commandFunc(name command.Name) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var args json.RawMessage
		if arg := call.Argument(0); !goja.IsUndefined(arg) && !goja.IsNull(arg) {
			raw, err := json.Marshal(arg.Export())
			if err != nil {
				panic(s.vm.NewGoError(fmt.Errorf("%s: %w", name, err)))
			}
			args = raw
		}

		s.commands++
		result, err := s.dispatcher.Dispatch(s.ctx, name, args)
		if err != nil {
			panic(s.vm.NewGoError(err))
		}
		return s.toJS(result)
	}
}

// toJS passes results through JSON so scripts see the same field names as
// MCP clients.
func (s *session) toJS(result any) goja.Value {
	if result == nil {
		return goja.Null()
	}
	raw, err := json.Marshal(result)
	if err != nil {
		panic(s.vm.NewGoError(err))
	}
	var plain any
	if err := json.Unmarshal(raw, &plain); err != nil {
		panic(s.vm.NewGoError(err))
	}
	return s.vm.ToValue(plain)
}

func (s *session) log(call goja.FunctionCall) goja.Value {
	parts := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		parts[i] = s.format(arg)
	}
	_, _ = fmt.Fprintln(s.out, strings.Join(parts, " "))
	return goja.Undefined()
}

func (s *session) format(v goja.Value) string {
	if obj, ok := v.(*goja.Object); ok && obj.ClassName() != "Function" && obj.ClassName() != "Error" {
		if raw, err := json.Marshal(obj.Export()); err == nil {
			return string(raw)
		}
	}
	return v.String()
}

func (s *session) sleep(call goja.FunctionCall) goja.Value {
	ms := call.Argument(0).ToInteger()
	if ms <= 0 {
		return goja.Undefined()
	}
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-s.ctx.Done():
	}
	return goja.Undefined()
}
