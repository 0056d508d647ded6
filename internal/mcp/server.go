// ABOUTME: MCP server setup for the kinetiqo fitness store.
// ABOUTME: Wraps the MCP server with the storage handle and tracker.
package mcp

import (
	"context"
	"errors"

	"github.com/Reogieakero/fitness/internal/storage"
	"github.com/Reogieakero/fitness/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var errNoUser = errors.New("no user selected: pass user_id or set active_user_id")

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	db        *storage.DB
	stores    *storage.Stores
	tracker   *tracker.Tracker
	userID    int64
}

// NewServer creates a new MCP server. defaultUser is used by resources and
// by tools called without a user_id; 0 means none.
func NewServer(db *storage.DB, tr *tracker.Tracker, defaultUser int64) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "kinetiqo",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		db:        db,
		stores:    storage.NewStores(db),
		tracker:   tr,
		userID:    defaultUser,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// user resolves the acting user for a request.
func (s *Server) user(id int64) (int64, error) {
	if id > 0 {
		return id, nil
	}
	if s.userID > 0 {
		return s.userID, nil
	}
	return 0, errNoUser
}
