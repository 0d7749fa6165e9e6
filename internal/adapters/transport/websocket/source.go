package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a control frame to the bridge.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the bridge.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxFrameSize = 4096

	defaultHandshakeTimeout = 5 * time.Second
)

var errMissingURL = errors.New("bridge url is not configured")

type Options struct {
	URL              string
	HandshakeTimeout time.Duration
	Logger           *slog.Logger
}

// Frame is the JSON message the device bridge sends for every lifecycle
// change.
type Frame struct {
	Event  string `json:"event"`
	Device string `json:"device"`
}

func (f Frame) DeviceEvent() (domain.DeviceEvent, error) {
	kind := domain.DeviceEventKind(strings.ToLower(strings.TrimSpace(f.Event)))
	if !kind.Valid() {
		return domain.DeviceEvent{}, fmt.Errorf("unknown bridge event %q", f.Event)
	}
	device := strings.TrimSpace(f.Device)
	if device == "" {
		return domain.DeviceEvent{}, domain.ErrInvalidDeviceID
	}
	return domain.DeviceEvent{Kind: kind, DeviceID: domain.DeviceID(device)}, nil
}

// Source streams device events from a websocket bridge onto the bus.
type Source struct {
	bus    ports.EventBus
	url    string
	dialer websocket.Dialer
	logger *slog.Logger

	mu   sync.Mutex
	conn *websocket.Conn
	exit chan struct{}
	wg   sync.WaitGroup
}

var _ ports.NotificationSource = (*Source)(nil)

func NewSource(bus ports.EventBus, opts Options) *Source {
	timeout := opts.HandshakeTimeout
	if timeout <= 0 {
		timeout = defaultHandshakeTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Source{
		bus:    bus,
		url:    strings.TrimSpace(opts.URL),
		dialer: websocket.Dialer{HandshakeTimeout: timeout},
		logger: logger,
	}
}

func (s *Source) Start(ctx context.Context) error {
	if s.url == "" {
		return fmt.Errorf("%w: %w", domain.ErrTransportUnavailable, errMissingURL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return nil
	}

	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %w", domain.ErrTransportUnavailable, s.url, err)
	}

	conn.SetReadLimit(maxFrameSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	s.conn = conn
	s.exit = make(chan struct{})
	s.wg.Add(2)
	go s.readLoop(conn)
	go s.pingLoop(conn, s.exit)

	s.logger.Info("device bridge connected", "url", s.url)
	return nil
}

func (s *Source) Stop() error {
	s.mu.Lock()
	conn := s.conn
	exit := s.exit
	s.conn = nil
	s.exit = nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	close(exit)
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait),
	)
	err := conn.Close()
	s.wg.Wait()

	if err != nil {
		return fmt.Errorf("close bridge connection: %w", err)
	}
	return nil
}

func (s *Source) readLoop(conn *websocket.Conn) {
	defer s.wg.Done()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("device bridge closed", "url", s.url, "err", err)
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(message, &frame); err != nil {
			s.logger.Warn("skip malformed bridge frame", "err", err)
			continue
		}
		event, err := frame.DeviceEvent()
		if err != nil {
			s.logger.Warn("skip bridge frame", "event", frame.Event, "err", err)
			continue
		}

		s.logger.Debug("bridge event", "event", event.Kind, "device", event.DeviceID)
		ports.PublishDeviceEvent(s.bus, event)
	}
}

func (s *Source) pingLoop(conn *websocket.Conn, exit <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-exit:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				s.logger.Debug("bridge ping failed", "err", err)
				return
			}
		}
	}
}
