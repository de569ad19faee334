package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/df07/interactive-raytracer/pkg/frames"
	"github.com/df07/interactive-raytracer/pkg/input"
	"github.com/df07/interactive-raytracer/pkg/renderer"
	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// Client message types
const (
	MessageKeys       = "keys"       // held movement keys for DeltaTime seconds
	MessageMouse      = "mouse"      // pointer position
	MessageMouseReset = "mouseReset" // pointer left the display
	MessageResize     = "resize"     // new display size
	MessageInspect    = "inspect"    // pick the sphere under X, Y
)

// Server message types
const (
	MessageStatus  = "status"
	MessageConsole = "console"
	MessageError   = "error"
)

// ClientMessage is a JSON input event sent by the browser
type ClientMessage struct {
	Type      string   `json:"type"`
	Keys      []string `json:"keys,omitempty"`
	DeltaTime float64  `json:"dt,omitzero"` // seconds
	X         float64  `json:"x,omitzero"`
	Y         float64  `json:"y,omitzero"`
	Width     int      `json:"width,omitzero"`
	Height    int      `json:"height,omitzero"`
}

// StatusMessage describes the frame sent just before it, or carries a
// console line, an inspection result or an error
type StatusMessage struct {
	Type      string           `json:"type"`
	SessionID string           `json:"sessionId"`
	Frame     int              `json:"frame,omitzero"`
	Width     int              `json:"width,omitzero"`
	Height    int              `json:"height,omitzero"`
	Position  [3]float64       `json:"position,omitzero"`
	Yaw       float64          `json:"yaw,omitzero"`
	Pitch     float64          `json:"pitch,omitzero"`
	HitPixels int              `json:"hitPixels,omitzero"`
	RenderMs  float64          `json:"renderMs,omitzero"`
	Console   *ConsoleMessage  `json:"console,omitzero"`
	Inspect   *InspectResponse `json:"inspect,omitzero"`
	Error     string           `json:"error,omitempty"`
}

// Session is one interactive viewer. Its renderer, camera and controller are
// only touched from the session goroutine, so input is applied strictly
// between frames.
type Session struct {
	ID      string
	SceneID string

	conn       *websocket.Conn
	renderer   *renderer.Renderer
	controller *input.Controller
	console    chan ConsoleMessage
	logger     *slog.Logger
	frame      int
}

func (s *Server) addSession(session *Session) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sessions[session.ID] = session
}

func (s *Server) removeSession(id string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.sessions, id)
}

// handleInteractive upgrades to a WebSocket and runs a render session.
// Query: scene, width, height.
func (s *Server) handleInteractive(w http.ResponseWriter, r *http.Request) {
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

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	logger := s.logger.With("session", id, "scene", req.Scene)
	console := make(chan ConsoleMessage, 32)
	rt.SetLogger(NewWebLogger(id, console, s.logger))

	session := &Session{
		ID:         id,
		SceneID:    req.Scene,
		conn:       conn,
		renderer:   rt,
		controller: input.NewController(camera),
		console:    console,
		logger:     logger,
	}
	s.addSession(session)
	defer s.removeSession(id)

	logger.Info("interactive session started", "width", req.Width, "height", req.Height)
	if err := session.run(); err != nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		logger.Warn("interactive session ended", "err", err)
		return
	}
	logger.Info("interactive session closed", "frames", session.frame)
}

// run renders the first frame, then re-renders after every input message
// that changed the view until the connection closes
func (ss *Session) run() error {
	if err := ss.renderAndSend(); err != nil {
		return err
	}

	for {
		messageType, data, err := ss.conn.ReadMessage()
		if err != nil {
			return err
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := ss.sendError(errors.Wrap(err, "malformed message")); err != nil {
				return err
			}
			continue
		}

		if msg.Type == MessageInspect {
			if err := ss.inspect(msg); err != nil {
				return err
			}
			continue
		}

		changed, err := ss.apply(msg)
		if err != nil {
			if err := ss.sendError(err); err != nil {
				return err
			}
			continue
		}
		if changed {
			if err := ss.renderAndSend(); err != nil {
				return err
			}
		}
	}
}

// apply feeds one view-changing message to the controller or renderer and
// reports whether the next frame differs. Errors reject the message.
func (ss *Session) apply(msg ClientMessage) (bool, error) {
	switch msg.Type {
	case MessageKeys:
		// Browsers report every held key; keys without a binding are ignored
		// unless nothing else is held
		keys := make([]input.Key, 0, len(msg.Keys))
		var lastErr error
		for _, name := range msg.Keys {
			key, err := input.ParseKey(name)
			if err != nil {
				lastErr = err
				continue
			}
			keys = append(keys, key)
		}
		if len(keys) == 0 && lastErr != nil {
			return false, lastErr
		}
		return ss.controller.ProcessKeys(keys, msg.DeltaTime), nil

	case MessageMouse:
		return ss.controller.ProcessMouse(msg.X, msg.Y), nil

	case MessageMouseReset:
		ss.controller.ResetMouse()
		return false, nil

	case MessageResize:
		if msg.Width < minDimension || msg.Width > maxDimension ||
			msg.Height < minDimension || msg.Height > maxDimension {
			return false, errors.Wrapf(errBadParam, "size %dx%d out of range", msg.Width, msg.Height)
		}
		if msg.Width == ss.renderer.Width() && msg.Height == ss.renderer.Height() {
			return false, nil
		}
		ss.renderer.UpdateDimensions(msg.Width, msg.Height)
		ss.controller.Camera().SetAspectRatio(float64(msg.Width) / float64(msg.Height))
		return true, nil

	default:
		return false, errors.Wrapf(errBadParam, "unknown message type %q", msg.Type)
	}
}

// inspect replies with the sphere under pixel (X, Y) of the current view
// without rendering a frame
func (ss *Session) inspect(msg ClientMessage) error {
	result := ss.renderer.Inspect(ss.controller.Camera(), int(msg.X), int(msg.Y))
	response := newInspectResponse(result)
	return ss.send(StatusMessage{Type: MessageInspect, SessionID: ss.ID, Inspect: &response})
}

// renderAndSend renders a frame and sends pending console lines, the PNG
// frame as a binary message and its status, in that order
func (ss *Session) renderAndSend() error {
	camera := ss.controller.Camera()
	stats := ss.renderer.Render(camera)
	data, width, height := ss.renderer.Frame()

	encoded, err := frames.PNG(data, width, height)
	if err != nil {
		return err
	}

	if err := ss.flushConsole(); err != nil {
		return err
	}
	if err := ss.conn.WriteMessage(websocket.BinaryMessage, encoded); err != nil {
		return errors.Wrap(err, "failed to send frame")
	}

	ss.frame++
	return ss.send(StatusMessage{
		Type:      MessageStatus,
		SessionID: ss.ID,
		Frame:     ss.frame,
		Width:     width,
		Height:    height,
		Position:  camera.Position().Array(),
		Yaw:       camera.Yaw(),
		Pitch:     camera.Pitch(),
		HitPixels: stats.HitPixels,
		RenderMs:  float64(stats.Duration) / float64(time.Millisecond),
	})
}

func (ss *Session) flushConsole() error {
	for {
		select {
		case msg := <-ss.console:
			if err := ss.send(StatusMessage{Type: MessageConsole, SessionID: ss.ID, Console: &msg}); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (ss *Session) sendError(err error) error {
	ss.logger.Debug("rejected client message", "err", err)
	return ss.send(StatusMessage{Type: MessageError, SessionID: ss.ID, Error: err.Error()})
}

func (ss *Session) send(msg StatusMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "failed to encode status")
	}
	if err := ss.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return errors.Wrap(err, "failed to send status")
	}
	return nil
}
