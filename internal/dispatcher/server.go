package dispatcher

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"hostbridge/internal/config"
	"hostbridge/pkg/logging"
)

// serverName and serverVersion identify the MCP server to clients
// during the initialize handshake.
const (
	serverName    = "hostbridge"
	serverVersion = "1.0.0"
)

// Server exposes a Dispatcher over one of the MCP transports. The
// capability table is frozen before Start, so tools are registered
// exactly once and never change for the process lifetime.
type Server struct {
	dispatcher *Dispatcher
	cfg        config.Config

	server               *server.MCPServer
	sseServer            *server.SSEServer
	streamableHTTPServer *server.StreamableHTTPServer
	stdioServer          *server.StdioServer

	ctx        context.Context
	cancelFunc context.CancelFunc
	mu         sync.Mutex

	// errCh receives at most one fatal transport error (failed bind,
	// broken stdio stream). The process treats it as a reason to exit.
	errCh chan error
}

// NewServer wraps a dispatcher for serving.
func NewServer(d *Dispatcher, cfg config.Config) *Server {
	return &Server{dispatcher: d, cfg: cfg, errCh: make(chan error, 1)}
}

// Errors exposes fatal transport errors observed after Start.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

func (s *Server) reportFatal(err error) {
	select {
	case s.errCh <- err:
	default:
	}
}

// Start registers every capability as an MCP tool and begins serving
// on the configured transport. Network transports serve in the
// background; the stdio transport serves until ctx is cancelled or
// stdin closes.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.server != nil {
		s.mu.Unlock()
		return fmt.Errorf("server already started")
	}

	s.ctx, s.cancelFunc = context.WithCancel(ctx)

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	s.server = mcpServer

	tools := s.dispatcher.buildTools()
	mcpServer.AddTools(tools...)
	logging.Info("Server", "Registered %d capabilities as MCP tools", len(tools))

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	switch s.cfg.Transport {
	case config.TransportSSE:
		logging.Info("Server", "Starting MCP server with SSE transport on %s", addr)
		baseURL := fmt.Sprintf("http://%s", addr)
		s.sseServer = server.NewSSEServer(
			s.server,
			server.WithBaseURL(baseURL),
			server.WithSSEEndpoint("/sse"),
			server.WithMessageEndpoint("/message"),
			server.WithKeepAlive(true),
			server.WithKeepAliveInterval(30*time.Second),
		)
		sseServer := s.sseServer
		s.mu.Unlock()
		go func() {
			if err := sseServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Server", err, "SSE server error")
				s.reportFatal(err)
			}
		}()
		return nil

	case config.TransportStdio:
		logging.Info("Server", "Starting MCP server with stdio transport")
		s.stdioServer = server.NewStdioServer(s.server)
		stdioServer := s.stdioServer
		serveCtx := s.ctx
		s.mu.Unlock()
		go func() {
			if err := stdioServer.Listen(serveCtx, os.Stdin, os.Stdout); err != nil && serveCtx.Err() == nil {
				logging.Error("Server", err, "Stdio server error")
				s.reportFatal(err)
			}
		}()
		return nil

	default:
		logging.Info("Server", "Starting MCP server with streamable-http transport on %s", addr)
		s.streamableHTTPServer = server.NewStreamableHTTPServer(s.server)
		streamableServer := s.streamableHTTPServer
		s.mu.Unlock()
		go func() {
			if err := streamableServer.Start(addr); err != nil && err != http.ErrServerClosed {
				logging.Error("Server", err, "Streamable HTTP server error")
				s.reportFatal(err)
			}
		}()
		return nil
	}
}

// Stop shuts the transport down and releases the MCP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.server == nil {
		s.mu.Unlock()
		return fmt.Errorf("server not started")
	}

	logging.Info("Server", "Stopping MCP server")

	cancelFunc := s.cancelFunc
	sseServer := s.sseServer
	streamableServer := s.streamableHTTPServer
	s.mu.Unlock()

	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if sseServer != nil {
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down SSE server")
		}
	}
	if streamableServer != nil {
		if err := streamableServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down streamable HTTP server")
		}
	}
	// The stdio server stops on context cancellation, no explicit
	// shutdown needed.

	s.mu.Lock()
	s.server = nil
	s.sseServer = nil
	s.streamableHTTPServer = nil
	s.stdioServer = nil
	s.mu.Unlock()

	return nil
}
