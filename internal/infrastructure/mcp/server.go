// Package mcp serves the tab commands as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/egdesk/taehwa/internal/application/command"
	"github.com/egdesk/taehwa/internal/logging"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

const serverName = "egdesk"

// Dispatcher runs named commands. *command.Dispatcher satisfies it.
type Dispatcher interface {
	Specs() []command.Spec
	Dispatch(ctx context.Context, name command.Name, args json.RawMessage) (any, error)
}

// Server exposes a Dispatcher over MCP.
type Server struct {
	dispatcher Dispatcher
	logger     zerolog.Logger
	server     *sdk.Server
}

// NewServer registers one tool per command spec. The logger in ctx is
// attached to every tool call.
func NewServer(ctx context.Context, d Dispatcher, version string) *Server {
	if version == "" {
		version = "dev"
	}
	s := &Server{
		dispatcher: d,
		logger:     logging.FromContext(ctx).With().Str("component", "mcp").Logger(),
		server: sdk.NewServer(&sdk.Implementation{
			Name:    serverName,
			Title:   "EG-Desk browser tabs",
			Version: version,
		}, &sdk.ServerOptions{
			Instructions: "Tabs are identified by tab_id. Omit tab_id to act on the active tab.",
		}),
	}
	for _, spec := range d.Specs() {
		s.server.AddTool(&sdk.Tool{
			Name:        string(spec.Name),
			Description: spec.Description,
			InputSchema: spec.InputSchema(),
		}, s.handler(spec.Name))
	}
	return s
}

// Serve runs the server on stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, &sdk.StdioTransport{})
}

// Run serves a single session on t.
func (s *Server) Run(ctx context.Context, t sdk.Transport) error {
	s.logger.Info().Msg("mcp server started")
	err := s.server.Run(ctx, t)
	if err != nil && ctx.Err() != nil {
		s.logger.Info().Msg("mcp server stopped")
		return nil
	}
	return err
}

// Connect starts a session on t without blocking.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func (s *Server) handler(name command.Name) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		ctx = logging.WithContext(ctx, s.logger)
		start := time.Now()

		var args json.RawMessage
		if req.Params != nil {
			args = req.Params.Arguments
		}
		value, err := s.dispatcher.Dispatch(ctx, name, args)
		if err != nil {
			s.logger.Warn().Err(err).Str("tool", string(name)).Dur("took", time.Since(start)).Msg("tool call failed")
			res := &sdk.CallToolResult{}
			res.SetError(err)
			return res, nil
		}
		return toolResult(value)
	}
}

// toolResult renders value as JSON text. Object values are also returned
// as structured content.
func toolResult(value any) (*sdk.CallToolResult, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tool result: %w", err)
	}
	res := &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(data)}},
	}
	var obj map[string]any
	if json.Unmarshal(data, &obj) == nil && obj != nil {
		res.StructuredContent = obj
	}
	return res, nil
}
