package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/df07/interactive-raytracer/pkg/renderer"
	"github.com/df07/interactive-raytracer/pkg/scene"
	"github.com/go-json-experiment/json"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	minDimension = 1
	maxDimension = 2000
)

// Server handles web requests for the interactive raytracer
type Server struct {
	port         int
	scenesDir    string
	staticDir    string
	renderConfig renderer.RenderConfig
	logger       *slog.Logger
	upgrader     websocket.Upgrader

	sessions map[string]*Session
	mutex    sync.RWMutex
}

// Config holds the server settings
type Config struct {
	Port         int
	ScenesDir    string // YAML scene directory, empty for the default lookup
	StaticDir    string // Browser client files
	RenderConfig renderer.RenderConfig
	Logger       *slog.Logger
}

// NewServer creates a new web server
func NewServer(config Config) *Server {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	staticDir := config.StaticDir
	if staticDir == "" {
		staticDir = "static/"
	}

	return &Server{
		port:         config.Port,
		scenesDir:    config.ScenesDir,
		staticDir:    staticDir,
		renderConfig: config.RenderConfig,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			// The client is served from anywhere during development
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/interactive", s.handleInteractive)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", "addr", "http://localhost"+addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mutex.RLock()
	sessions := len(s.sessions)
	s.mutex.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": sessions})
}

// handleScenes lists built-in and discovered scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAll(s.scenesDir)
	if err != nil {
		s.logger.Error("failed to list scenes", "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// SceneConfigResponse is the scene description plus the request limits
type SceneConfigResponse struct {
	Scene  string                    `json:"scene"`
	Config *scene.Config             `json:"config"`
	Limits map[string]map[string]int `json:"limits"`
}

// handleSceneConfig returns the configuration of a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := sceneParam(r.URL.Query())
	cfg, err := scene.ResolveID(sceneID, s.scenesDir)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SceneConfigResponse{
		Scene:  sceneID,
		Config: cfg,
		Limits: map[string]map[string]int{
			"width":  {"min": minDimension, "max": maxDimension},
			"height": {"min": minDimension, "max": maxDimension},
		},
	})
}

// RenderRequest represents a single-frame render request from the client
type RenderRequest struct {
	Scene  string `json:"scene"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// parseRenderRequest parses scene and size, defaulting the size to the scene's
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, *scene.Config, error) {
	req := &RenderRequest{Scene: sceneParam(values)}

	cfg, err := scene.ResolveID(req.Scene, s.scenesDir)
	if err != nil {
		return nil, nil, err
	}

	if req.Width, err = parseIntParam(values, "width", cfg.Width, minDimension, maxDimension); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(values, "height", cfg.Height, minDimension, maxDimension); err != nil {
		return nil, nil, err
	}
	cfg.Width, cfg.Height = req.Width, req.Height

	return req, cfg, nil
}

// buildScene creates a renderer and camera configured for this server
func (s *Server) buildScene(cfg *scene.Config) (*renderer.Renderer, *renderer.Camera, error) {
	r, camera, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	r.SetRenderConfig(s.renderConfig)
	return r, camera, nil
}

func sceneParam(values url.Values) string {
	if id := values.Get("scene"); id != "" {
		return id
	}
	return "default"
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Wrapf(errBadParam, "invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, errors.Wrapf(errBadParam, "%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

var errBadParam = errors.New("bad parameter")

// statusFor maps request errors to HTTP status codes
func statusFor(err error) int {
	switch errors.Cause(err) {
	case scene.ErrUnknownScene:
		return http.StatusNotFound
	case scene.ErrInvalidScene, errBadParam:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, v); err != nil {
		slog.Error("failed to write JSON response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
