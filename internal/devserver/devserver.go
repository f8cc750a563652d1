// Package devserver implements the weft development server: a static file
// server that injects a live-reload script into HTML responses and pushes
// reload notifications over a websocket.
package devserver

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// ReloadPath is the websocket endpoint browsers connect to for reload
// notifications.
const ReloadPath = "/_weft/reload"

const broadcastTimeout = 5 * time.Second

// Server serves a static directory with live reload.
type Server struct {
	static string
	reload bool
	log    *slog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// New creates a server for staticDir. With reload disabled no script is
// injected and the websocket endpoint is not registered. A nil logger
// discards log output.
func New(staticDir string, reload bool, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		static:  staticDir,
		reload:  reload,
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.reload {
		mux.HandleFunc(ReloadPath, s.handleReload)
	}
	mux.HandleFunc("/", s.handleStatic)
	return mux
}

// handleStatic serves files from the static directory. HTML documents get
// the reload script injected; everything else goes through the stdlib file
// server untouched.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	fileServer := http.FileServer(http.Dir(s.static))
	if !s.reload {
		fileServer.ServeHTTP(w, r)
		return
	}

	rel := path.Clean("/" + r.URL.Path)
	if strings.HasSuffix(r.URL.Path, "/") {
		rel = path.Join(rel, "index.html")
	}
	if !strings.HasSuffix(rel, ".html") {
		fileServer.ServeHTTP(w, r)
		return
	}

	full := filepath.Join(s.static, filepath.FromSlash(rel))
	doc, err := os.ReadFile(full)
	if err != nil {
		fileServer.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(InjectReloadScript(doc)); err != nil {
		s.log.Debug("writing response", "path", rel, "error", err)
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The dev server binds to localhost; cross-origin pages cannot
		// usefully connect anyway.
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()
	s.log.Debug("reload client connected")

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close(websocket.StatusNormalClosure, "")
	}()

	// The client never sends anything; CloseRead watches the connection
	// and cancels when it goes away.
	ctx := conn.CloseRead(r.Context())
	<-ctx.Done()
}

// Broadcast notifies every connected client that it should reload.
func (s *Server) Broadcast(ctx context.Context) {
	s.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(s.clients))
	for c := range s.clients {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		wctx, cancel := context.WithTimeout(ctx, broadcastTimeout)
		if err := c.Write(wctx, websocket.MessageText, []byte("reload")); err != nil {
			s.log.Debug("notifying client", "error", err)
		}
		cancel()
	}
	s.log.Debug("reload broadcast", "clients", len(conns))
}
