package server

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/coverwatch/dashboard/internal/dashboard"
)

type Server struct {
	ctrl      *dashboard.Controller
	templates map[string]*template.Template
	rootDir   string
	upgrader  websocket.Upgrader
}

func NewServer(ctrl *dashboard.Controller, rootDir string) *Server {
	// Each page template defines "content" and is parsed with the layout
	templatesDir := filepath.Join(rootDir, "web/templates")
	templates := make(map[string]*template.Template)

	pages := []string{
		"dashboard.html",
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	for _, page := range pages {
		pagePath := filepath.Join(templatesDir, page)
		templates[page] = template.Must(template.ParseFiles(layoutPath, pagePath))
	}

	return &Server{
		ctrl:      ctrl,
		templates: templates,
		rootDir:   rootDir,
		upgrader:  websocket.Upgrader{},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Static files
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(filepath.Join(s.rootDir, "web/static")))))

	r.Get("/", s.handleDashboard)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleLiveRefresh)

	return r
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	frame := s.ctrl.Frame()
	if frame == nil {
		// First poll cycle has not completed yet
		frame = &dashboard.Frame{
			Project:     "loading...",
			Stats:       template.HTML(`<div class="stat-card">Loading dashboard data...</div>`),
			RunsBody:    template.HTML(`<tr><td colspan="8">Loading...</td></tr>`),
			LastUpdated: "",
		}
	}

	data := map[string]interface{}{
		"Frame":          frame,
		"RefreshSeconds": int(s.ctrl.Interval().Seconds()),
	}

	s.render(w, "dashboard.html", data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleLiveRefresh pushes a one-line event to the browser whenever a new
// frame lands, so the page reloads on the server's poll cadence.
func (s *Server) handleLiveRefresh(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	sub := s.ctrl.Subscribe()
	defer s.ctrl.Unsubscribe(sub)

	// Reader goroutine only exists to notice the peer going away
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-sub:
			if err := conn.WriteJSON(map[string]string{"event": "refresh"}); err != nil {
				return
			}
		}
	}
}

func (s *Server) render(w http.ResponseWriter, page string, data interface{}) {
	t, ok := s.templates[page]
	if !ok {
		log.Printf("Template not found: %s", page)
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
