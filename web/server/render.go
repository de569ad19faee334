package server

import (
	"net/http"
	"strconv"

	"github.com/df07/interactive-raytracer/pkg/frames"
)

// handleRender renders one frame of a scene and returns it as a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, cfg, err := s.parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	rt, camera, err := s.buildScene(cfg)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	stats := rt.Render(camera)
	data, width, height := rt.Frame()
	encoded, err := frames.PNG(data, width, height)
	if err != nil {
		s.logger.Error("failed to encode frame", "scene", req.Scene, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("rendered frame",
		"scene", req.Scene,
		"width", stats.Width,
		"height", stats.Height,
		"hitPixels", stats.HitPixels,
		"duration", stats.Duration,
	)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	w.WriteHeader(http.StatusOK)
	w.Write(encoded)
}
