// Package lsp implements a Language Server Protocol server for R source
// files, wiring components A-J behind glsp the same way the teacher
// wires its schema engine behind glsp.
package lsp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple" // required backend for glsp

	"github.com/jbearak/rlsp/config"
	"github.com/jbearak/rlsp/location"
)

const serverName = "rlsp-lsp"

// Config holds the server's startup configuration: initializationOptions
// is parsed into config.Options once the client's initialize request
// arrives, so Config itself only carries what's known before that.
type Config struct {
	// Options overrides the config.Default() used for every workspace,
	// for hosts that want to set options before initialize (tests,
	// embeddings). A real LSP client instead sends
	// initializationOptions on the initialize request.
	Options config.Options
}

// Server is the rlsp language server. It owns protocol lifecycle and a
// Workspace per workspace root; Workspace owns document state, the
// dependency graph, and the revalidation engine.
type Server struct {
	logger  *slog.Logger
	cfg     Config
	options config.Options
	handler protocol.Handler
	server  *server.Server

	mu         sync.RWMutex
	workspaces map[string]*Workspace // keyed by root.String()
	roots      []location.CanonicalPath

	shutdownCalled bool

	closeOnce sync.Once
	closeErr  error
}

// NewServer creates an rlsp language server. If logger is nil,
// slog.Default() is used.
func NewServer(logger *slog.Logger, cfg Config) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		logger:     logger.With(slog.String("component", "server")),
		cfg:        cfg,
		options:    cfg.Options,
		workspaces: make(map[string]*Workspace),
	}

	// glsp uses commonlog internally; this server logs through slog, so
	// silence commonlog rather than carry two logging paths.
	commonlog.Configure(0, nil)

	s.handler = protocol.Handler{
		Initialize:    s.initialize,
		Initialized:   s.initialized,
		Shutdown:      s.shutdown,
		Exit:          s.exit,
		SetTrace:      s.setTrace,
		CancelRequest: s.cancelRequest,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,

		TextDocumentDefinition:     s.textDocumentDefinition,
		TextDocumentHover:          s.textDocumentHover,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,

		WorkspaceSymbol:                    s.workspaceSymbol,
		WorkspaceDidChangeWatchedFiles:     s.workspaceDidChangeWatchedFiles,
		WorkspaceDidChangeWorkspaceFolders: s.workspaceDidChangeWorkspaceFolders,
	}

	s.server = server.NewServer(&s.handler, serverName, false)
	return s
}

// Handler returns the protocol handler, for tests that drive it directly.
func (s *Server) Handler() *protocol.Handler { return &s.handler }

// RunStdio runs the server over stdio transport until the connection
// closes.
func (s *Server) RunStdio() error {
	if err := s.server.RunStdio(); err != nil {
		return fmt.Errorf("run stdio: %w", err)
	}
	return nil
}

// Shutdown cancels pending revalidation work across every workspace,
// ahead of the connection closing.
func (s *Server) Shutdown() {
	s.logger.Info("initiating shutdown")
	s.mu.RLock()
	workspaces := make([]*Workspace, 0, len(s.workspaces))
	for _, ws := range s.workspaces {
		workspaces = append(workspaces, ws)
	}
	s.mu.RUnlock()
	for _, ws := range workspaces {
		ws.CancelAllPending()
		ws.Close()
	}
}

// Close closes the JSON-RPC connection, causing RunStdio to return.
// Close is idempotent and safe to call before RunStdio (returns nil if
// the connection isn't ready yet, so callers may retry).
func (s *Server) Close() error {
	conn := s.server.GetStdio()
	if conn == nil {
		return nil
	}
	s.closeOnce.Do(func() {
		if err := conn.Close(); err != nil {
			s.closeErr = fmt.Errorf("close connection: %w", err)
		}
	})
	return s.closeErr
}

// addRoot registers a workspace root (from workspaceFolders, rootUri, or
// rootPath) and lazily constructs its Workspace.
func (s *Server) addRoot(path string) {
	canon, err := location.NewCanonicalPath(path)
	if err != nil {
		s.logger.Warn("ignoring unusable workspace root", slog.String("path", path), slog.Any("error", err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workspaces[canon.String()]; ok {
		return
	}

	ws, err := NewWorkspace(canon, s.options, s.logger)
	if err != nil {
		s.logger.Warn("failed to construct workspace", slog.String("root", canon.String()), slog.Any("error", err))
		return
	}
	s.roots = append(s.roots, canon)
	s.workspaces[canon.String()] = ws
}

// workspaceFor returns the Workspace whose root is the longest matching
// prefix of path, creating an ad-hoc single-file workspace rooted at the
// file's own directory if path falls outside every known root (e.g. the
// client opened a file before sending any workspace folder).
func (s *Server) workspaceFor(path string) *Workspace {
	s.mu.RLock()
	var best *Workspace
	bestLen := -1
	for _, root := range s.roots {
		rootStr := root.String()
		if len(path) >= len(rootStr) && path[:len(rootStr)] == rootStr && len(rootStr) > bestLen {
			best = s.workspaces[rootStr]
			bestLen = len(rootStr)
		}
	}
	s.mu.RUnlock()
	if best != nil {
		return best
	}

	s.addRoot(filepath.Dir(path))
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, root := range s.roots {
		rootStr := root.String()
		if len(path) >= len(rootStr) && path[:len(rootStr)] == rootStr {
			return s.workspaces[rootStr]
		}
	}
	return nil
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	opts, err := config.FromInitializationOptions(params.InitializationOptions)
	if err != nil {
		s.logger.Warn("invalid initializationOptions, using defaults", slog.Any("error", err))
		opts = config.Default()
	}
	s.options = opts

	switch {
	case params.WorkspaceFolders != nil:
		for _, folder := range params.WorkspaceFolders {
			if path, err := URIToPath(folder.URI); err == nil {
				s.addRoot(path)
			}
		}
	case params.RootURI != nil:
		if path, err := URIToPath(*params.RootURI); err == nil {
			s.addRoot(path)
		}
	case params.RootPath != nil:
		s.addRoot(*params.RootPath)
	}

	if opts.CrossFile.IndexWorkspace {
		s.enumerateAll(context.Background())
	}

	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	if syncOpts, ok := capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions); ok {
		syncOpts.Change = &syncKind
	}

	version := "dev"
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) enumerateAll(ctx context.Context) {
	s.mu.RLock()
	workspaces := make([]*Workspace, 0, len(s.workspaces))
	for _, ws := range s.workspaces {
		workspaces = append(workspaces, ws)
	}
	s.mu.RUnlock()

	for _, ws := range workspaces {
		if err := ws.Enumerate(ctx); err != nil {
			s.logger.Warn("workspace enumeration failed", slog.String("root", ws.Root().String()), slog.Any("error", err))
		}
	}
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("server initialized")
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	s.logger.Info("shutdown request received")
	s.shutdownCalled = true
	protocol.SetTraceValue(protocol.TraceValueOff)
	s.Shutdown()
	return nil
}

func (s *Server) exit(_ *glsp.Context) error {
	exitCode := 0
	if !s.shutdownCalled {
		s.logger.Warn("exit called without shutdown")
		exitCode = 1
	}
	os.Exit(exitCode)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) cancelRequest(_ *glsp.Context, _ *protocol.CancelParams) error {
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	if !isRURI(uri) {
		return nil
	}
	path, err := URIToPath(uri)
	if err != nil {
		return nil
	}
	file, err := location.FileIDFromPath(path)
	if err != nil {
		return nil
	}

	ws := s.workspaceFor(path)
	if ws == nil {
		return nil
	}
	if ctx != nil {
		ws.setNotify(func(method string, p any) { ctx.Notify(method, p) })
	}

	requestID := uuid.New().String()
	s.logger.Debug("textDocument/didOpen", slog.String("request_id", requestID), slog.String("uri", uri))
	return ws.DocumentOpened(context.Background(), file, params.TextDocument.Text, int32(params.TextDocument.Version))
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	if !isRURI(uri) {
		return nil
	}
	path, err := URIToPath(uri)
	if err != nil {
		return nil
	}
	file, err := location.FileIDFromPath(path)
	if err != nil {
		return nil
	}

	var fullText *string
	for _, raw := range params.ContentChanges {
		if change, ok := raw.(protocol.TextDocumentContentChangeEventWhole); ok {
			fullText = &change.Text
		}
	}
	if fullText == nil {
		s.logger.Warn("ignoring incremental change; server advertises full sync", slog.String("uri", uri))
		return nil
	}

	ws := s.workspaceFor(path)
	if ws == nil {
		return nil
	}
	if ctx != nil {
		ws.setNotify(func(method string, p any) { ctx.Notify(method, p) })
	}

	requestID := uuid.New().String()
	s.logger.Debug("textDocument/didChange", slog.String("request_id", requestID), slog.String("uri", uri))
	return ws.DocumentChanged(context.Background(), file, *fullText, int32(params.TextDocument.Version))
}

func (s *Server) textDocumentDidClose(_ *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	if !isRURI(uri) {
		return nil
	}
	path, err := URIToPath(uri)
	if err != nil {
		return nil
	}
	file, err := location.FileIDFromPath(path)
	if err != nil {
		return nil
	}

	if ws := s.workspaceFor(path); ws != nil {
		ws.DocumentClosed(file)
	}
	return nil
}

func (s *Server) workspaceDidChangeWatchedFiles(_ *glsp.Context, params *protocol.DidChangeWatchedFilesParams) error {
	for _, change := range params.Changes {
		s.logger.Debug("watched file changed", slog.String("uri", change.URI), slog.Int("type", int(change.Type)))
	}
	return nil
}

func (s *Server) workspaceDidChangeWorkspaceFolders(_ *glsp.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	for _, folder := range params.Event.Added {
		if path, err := URIToPath(folder.URI); err == nil {
			s.addRoot(path)
		}
	}
	return nil
}
