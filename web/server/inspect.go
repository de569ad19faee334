package server

import (
	"fmt"
	"net/http"

	"github.com/df07/interactive-raytracer/pkg/core"
	"github.com/df07/interactive-raytracer/pkg/renderer"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit         bool       `json:"hit"`
	SphereIndex int        `json:"sphereIndex"`
	Center      [3]float64 `json:"center"`
	Radius      float64    `json:"radius"`
	Albedo      [3]float64 `json:"albedo"`
	Point       [3]float64 `json:"point"`
	Normal      [3]float64 `json:"normal"`
	Distance    float64    `json:"distance"`
	Color       string     `json:"color"` // Shaded pixel color as written to the frame, hex
}

// newInspectResponse converts a renderer pick result for the client
func newInspectResponse(result renderer.InspectResult) InspectResponse {
	response := InspectResponse{
		Hit:         result.Hit,
		SphereIndex: result.SphereIndex,
		Color:       hexColor(result.Color),
	}
	if !result.Hit {
		return response
	}

	response.Center = result.Sphere.Center.Array()
	response.Radius = result.Sphere.Radius
	response.Albedo = result.Sphere.Albedo().Array()
	response.Point = result.Point.Array()
	response.Normal = result.Normal.Array()
	response.Distance = result.Distance
	return response
}

// hexColor formats a linear color as the #rrggbb bytes written to the frame
func hexColor(c core.Vec3) string {
	rgb := renderer.EncodeColor(c)
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2])
}

// handleInspect reports the sphere under pixel (x, y) of a scene render,
// with row 0 at the top of the image
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req, cfg, err := s.parseRenderRequest(query)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	x, err := parseIntParam(query, "x", -1, 0, req.Width-1)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	y, err := parseIntParam(query, "y", -1, 0, req.Height-1)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	if x < 0 || y < 0 {
		writeError(w, http.StatusBadRequest, "x and y are required")
		return
	}

	rt, camera, err := s.buildScene(cfg)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, newInspectResponse(rt.Inspect(camera, x, y)))
}
