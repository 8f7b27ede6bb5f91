package bridge

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/Carmen-Shannon/timmy/engine/animation"
	"github.com/gorilla/websocket"
)

// HandlerConfig wires a Host into the application.
//
// Post hands a callback to the goroutine that owns the animation controller. Every On* callback and
// the clip finished subscription run through Post. A nil Post runs callbacks on the connection's
// read goroutine.
type HandlerConfig struct {
	Logger *log.Logger
	Post   func(func())

	OnReady func()
	OnClick func()
	OnChat  func(text string)
	OnPlay  func(name string)
}

// host is the implementation of the Host interface.
type host struct {
	mu      *sync.Mutex
	writeMu *sync.Mutex

	cfg      HandlerConfig
	logger   *log.Logger
	upgrader websocket.Upgrader

	conn       *websocket.Conn
	clips      map[string]ClipInfo
	order      []string
	active     string
	onFinished func()
}

// Host is an AnimationHost whose timeline runs in a browser connected over a websocket.
//
// The browser loads the model and announces its clips with a "ready" message. CrossFadeTo is sent as a
// "crossFade" message and the browser answers with "finished" when the clip has played through. Only
// one browser is driven at a time; a new connection replaces the previous one.
type Host interface {
	animation.AnimationHost

	// Handle upgrades the request to a websocket and serves the connection until it closes.
	//
	// Parameters:
	//   - w: the response writer
	//   - r: the upgrade request
	Handle(w http.ResponseWriter, r *http.Request)

	// ClipNames returns the clips announced by the browser in announcement order.
	ClipNames() []string

	// Connected reports whether a browser is attached.
	Connected() bool

	// Say sends text for the browser to display.
	//
	// Parameters:
	//   - text: the text to show
	//
	// Returns:
	//   - error: ErrHostNotReady if no browser is attached, or a write error
	Say(text string) error
}

var _ Host = &host{}

// NewHost creates a new Host.
//
// Parameters:
//   - cfg: the handler configuration
//
// Returns:
//   - Host: the new host
func NewHost(cfg HandlerConfig) Host {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &host{
		mu:      &sync.Mutex{},
		writeMu: &sync.Mutex{},
		cfg:     cfg,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clips: make(map[string]ClipInfo),
	}
}

func (h *host) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("bridge: upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	prev := h.conn
	h.conn = conn
	h.mu.Unlock()
	if prev != nil {
		h.logger.Printf("bridge: replacing connection from %s", prev.RemoteAddr())
		_ = prev.Close()
	}

	defer func() {
		h.mu.Lock()
		if h.conn == conn {
			h.conn = nil
		}
		h.mu.Unlock()
		_ = conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Printf("bridge: connection closed: %v", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Printf("bridge: discarding malformed message: %v", err)
			continue
		}
		h.dispatch(msg)
	}
}

func (h *host) dispatch(msg clientMessage) {
	switch msg.Type {
	case MessageReady:
		h.setClips(msg.Clips)
		h.post(h.cfg.OnReady)
	case MessageFinished:
		h.post(func() { h.finished(msg.Clip) })
	case MessageClick:
		h.post(h.cfg.OnClick)
	case MessageChat:
		if h.cfg.OnChat != nil {
			h.post(func() { h.cfg.OnChat(msg.Text) })
		}
	case MessagePlay:
		if h.cfg.OnPlay != nil {
			h.post(func() { h.cfg.OnPlay(msg.Clip) })
		}
	default:
		h.logger.Printf("bridge: unknown message type %q", msg.Type)
	}
}

func (h *host) post(fn func()) {
	if fn == nil {
		return
	}
	if h.cfg.Post != nil {
		h.cfg.Post(fn)
		return
	}
	fn()
}

func (h *host) setClips(clips []ClipInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clips = make(map[string]ClipInfo, len(clips))
	h.order = h.order[:0]
	for _, c := range clips {
		if c.Name == "" {
			continue
		}
		if _, ok := h.clips[c.Name]; ok {
			continue
		}
		h.clips[c.Name] = c
		h.order = append(h.order, c.Name)
	}
}

// finished raises the finished subscription when clip is the one most recently faded in.
// Reports for clips that were superseded in flight are dropped.
func (h *host) finished(clip string) {
	h.mu.Lock()
	fn := h.onFinished
	current := clip == h.active
	h.mu.Unlock()

	if current && fn != nil {
		fn()
	}
}

func (h *host) CrossFadeTo(name string, duration float32) error {
	h.mu.Lock()
	_, ok := h.clips[name]
	conn := h.conn
	if ok && conn != nil {
		h.active = name
	}
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %q", animation.ErrUnknownAnimation, name)
	}
	if conn == nil {
		return animation.ErrHostNotReady
	}
	return h.write(conn, serverMessage{Type: MessageCrossFade, Clip: name, Duration: duration})
}

func (h *host) HasClip(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.clips[name]
	return ok
}

func (h *host) Duration(name string) (float32, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clips[name]
	return c.Duration, ok
}

func (h *host) OnClipFinished(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onFinished = fn
}

func (h *host) ClipNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.order...)
}

func (h *host) Connected() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.conn != nil
}

func (h *host) Say(text string) error {
	h.mu.Lock()
	conn := h.conn
	h.mu.Unlock()
	if conn == nil {
		return animation.ErrHostNotReady
	}
	return h.write(conn, serverMessage{Type: MessageSay, Text: text})
}

func (h *host) write(conn *websocket.Conn, msg serverMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("bridge: write %s: %w", msg.Type, err)
	}
	return nil
}
