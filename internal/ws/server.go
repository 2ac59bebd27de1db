package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sharelist/backend/internal/config"
	"github.com/sharelist/backend/internal/health"
	"github.com/sharelist/backend/internal/store"
	"github.com/sharelist/backend/internal/tenant"
)

// tenantNamePattern is conservative on purpose: names become path
// components under the data root.
var tenantNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)

type Server struct {
	cfg             *config.Config
	registry        *tenant.Registry
	store           *store.Store
	reporter        *health.Reporter
	frontendDir     string
	dev             bool
	embeddedHandler http.Handler
	allowedOrigins  map[string]bool
	allowedHosts    map[string]bool
}

func NewServer(cfg *config.Config, registry *tenant.Registry, st *store.Store, frontendDir string, dev bool, embeddedHandler http.Handler) *Server {
	s := &Server{
		cfg:             cfg,
		registry:        registry,
		store:           st,
		reporter:        health.NewReporter(),
		frontendDir:     frontendDir,
		dev:             dev,
		embeddedHandler: embeddedHandler,
		allowedOrigins:  make(map[string]bool),
		allowedHosts:    make(map[string]bool),
	}

	for _, origin := range cfg.WS.AllowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		s.allowedOrigins[trimmed] = true
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			s.allowedHosts[parsed.Host] = true
		}
	}

	return s
}

func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(accessLog)

	r.HandleFunc("/ws/{tenant}/updates", s.handleWS)
	r.HandleFunc("/api/list/{tenant}", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/l/{tenant}", s.handleShell).Methods(http.MethodGet)

	if static := s.staticHandler(); static != nil {
		r.PathPrefix("/").Handler(static)
	}

	return r
}

// accessLog wraps every handler with a one-line request log.
func accessLog(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m := httpsnoop.CaptureMetrics(handler, w, r)
		log.Printf("%s %s %d %s", r.Method, r.URL.Path, m.Code, m.Duration)
	})
}

func (s *Server) staticHandler() http.Handler {
	if s.dev {
		return http.FileServer(http.Dir(s.frontendDir))
	}
	return s.embeddedHandler
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["tenant"]
	if !tenantNamePattern.MatchString(name) {
		http.Error(w, "invalid tenant name", http.StatusBadRequest)
		return
	}

	t, err := s.registry.GetOrInit(name)
	if err != nil {
		log.Printf("ws: tenant %q init failed: %v", name, err)
		http.Error(w, "tenant unavailable", http.StatusInternalServerError)
		return
	}

	upgrader := websocket.Upgrader{CheckOrigin: s.checkOrigin}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	s.runSession(conn, t)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["tenant"]
	if !tenantNamePattern.MatchString(name) {
		http.Error(w, "invalid tenant name", http.StatusBadRequest)
		return
	}

	t, err := s.registry.GetOrInit(name)
	if err != nil {
		log.Printf("api: tenant %q init failed: %v", name, err)
		http.Error(w, "tenant unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.reporter.Report(s.registry.TenantCount(), s.registry.SubscriberCount())
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(st)
}

// handleShell serves the client shell for any tenant name; the page reads
// the tenant back out of its own URL.
func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	static := s.staticHandler()
	if static == nil {
		http.Error(w, "no frontend available", http.StatusNotFound)
		return
	}
	r.URL.Path = "/"
	static.ServeHTTP(w, r)
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if len(s.allowedOrigins) > 0 {
		if s.allowedOrigins[origin] {
			return true
		}
		if parsed, err := url.Parse(origin); err == nil && parsed.Host != "" {
			return s.allowedHosts[parsed.Host]
		}
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := parsed.Host
	if host == "" {
		return false
	}

	if host == r.Host {
		return true
	}

	if strings.HasPrefix(host, "localhost:") || host == "localhost" {
		return true
	}
	if strings.HasPrefix(host, "127.0.0.1:") || host == "127.0.0.1" {
		return true
	}
	if strings.HasPrefix(host, "[::1]:") || host == "::1" {
		return true
	}

	return false
}

func ListenAndServe(host string, port int, handler http.Handler) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("Server listening on %s", addr)
	return http.ListenAndServe(addr, handler)
}
