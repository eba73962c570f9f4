package mcp

import (
	"context"
	"errors"
	"fmt"

	"delivery-risk/internal/config"
	"delivery-risk/internal/pipeline"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// ServerName is advertised to MCP clients during initialization.
const ServerName = "delivery-risk"

// errProcessing is the only failure clients see when a run cannot load its
// sources. The cause is logged.
var errProcessing = errors.New("failed to process data")

// Runner produces one complete pipeline result.
type Runner interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

// Server exposes delivery risk analytics as MCP tools. Every tool call runs
// the pipeline from scratch; nothing is cached between calls.
type Server struct {
	cfg     *config.AppConfig
	runner  Runner
	version string
}

// NewServer creates a server reading the sources named in cfg.
func NewServer(cfg *config.AppConfig, version string) *Server {
	return NewServerWithRunner(cfg, pipeline.New(cfg), version)
}

// NewServerWithRunner creates a server over an explicit runner.
func NewServerWithRunner(cfg *config.AppConfig, runner Runner, version string) *Server {
	return &Server{cfg: cfg, runner: runner, version: version}
}

// Build registers every tool on a fresh SDK server.
func (s *Server) Build() *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{Name: ServerName, Version: s.version}, nil)
	s.registerTools(server)
	return server
}

// Start serves MCP over stdio until the client disconnects or ctx ends.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Str("dataPath", s.cfg.DataPath).Msg("MCP server listening on stdio")
	if err := s.Build().Run(ctx, &sdk.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}

// run executes the pipeline and hides the load error from the client.
func (s *Server) run(ctx context.Context, tool string) (*pipeline.Result, error) {
	res, err := s.runner.Run(ctx)
	if err != nil {
		log.Error().Err(err).Str("tool", tool).Msg("Pipeline run failed")
		return nil, errProcessing
	}
	log.Debug().Str("tool", tool).Str("runId", res.Metadata.RunID).Msg("Tool call served")
	return res, nil
}

func (s *Server) chartsEnabled() bool {
	return s.cfg != nil && s.cfg.EnableMermaidCharts
}

// inputSchema builds the tool input schema from the Go type so the
// descriptions on struct tags reach the client.
func inputSchema[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("input schema for %T: %v", *new(T), err))
	}
	return schema
}
