package application

import (
	"context"
	"log/slog"

	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

var deviceTopics = []string{
	ports.TopicDeviceConnected,
	ports.TopicDevicePaired,
	ports.TopicDeviceDisconnected,
}

// NotificationListener mirrors device lifecycle events into the registry and
// the autofocus preference into its toggle. Handlers run on the publisher's
// goroutine and hop onto the executor before touching any state.
type NotificationListener struct {
	bus       ports.EventBus
	source    ports.NotificationSource
	exec      *Executor
	registry  *domain.DeviceRegistry
	toggle    ports.AutoFocusToggle
	onRemoved func(domain.DeviceID)
	logger    *slog.Logger

	subs          []ports.Subscription
	sourceStarted bool
	autoFocus     bool
}

type ListenerDeps struct {
	Bus      ports.EventBus
	Source   ports.NotificationSource
	Executor *Executor
	Registry *domain.DeviceRegistry
	Toggle   ports.AutoFocusToggle
	Logger   *slog.Logger
	// OnRemoved runs on the executor right after an id leaves the registry.
	OnRemoved func(domain.DeviceID)
}

func NewNotificationListener(deps ListenerDeps) *NotificationListener {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationListener{
		bus:       deps.Bus,
		source:    deps.Source,
		exec:      deps.Executor,
		registry:  deps.Registry,
		toggle:    deps.Toggle,
		onRemoved: deps.OnRemoved,
		logger:    logger,
	}
}

// Start subscribes the autofocus mirror and, when the notification source
// starts, the device handlers. A source that fails to start leaves the
// listener inert for devices; that is not an error.
func (l *NotificationListener) Start(ctx context.Context) {
	l.subs = append(l.subs, l.bus.Subscribe(ports.TopicAutoFocusChanged, l.handleAutoFocus))

	if l.source == nil {
		l.logger.Info("no device notification source configured")
		return
	}

	deviceSubs := make([]ports.Subscription, 0, len(deviceTopics))
	for _, topic := range deviceTopics {
		topic := topic
		deviceSubs = append(deviceSubs, l.bus.Subscribe(topic, func(payload any) {
			l.handleDevice(topic, payload)
		}))
	}

	if err := l.source.Start(ctx); err != nil {
		for _, sub := range deviceSubs {
			l.bus.Unsubscribe(sub)
		}
		l.logger.Warn("device notifications unavailable", "err", err)
		return
	}

	l.sourceStarted = true
	l.subs = append(l.subs, deviceSubs...)
}

// Close removes exactly the subscriptions Start registered and stops the
// source. It is safe to call when Start never ran or the source failed.
func (l *NotificationListener) Close() {
	for _, sub := range l.subs {
		l.bus.Unsubscribe(sub)
	}
	l.subs = nil

	if !l.sourceStarted {
		return
	}
	l.sourceStarted = false
	if err := l.source.Stop(); err != nil {
		l.logger.Warn("stop device notification source", "err", err)
	}
}

// AutoFocus reports the last mirrored preference. Executor only.
func (l *NotificationListener) AutoFocus() bool {
	return l.autoFocus
}

func (l *NotificationListener) handleDevice(topic string, payload any) {
	id, ok := deviceIDFromPayload(payload)
	if !ok {
		l.logger.Warn("ignoring device notification with unexpected payload", "topic", topic, "payload", payload)
		return
	}

	err := l.exec.Do(context.Background(), func() {
		switch topic {
		case ports.TopicDeviceConnected, ports.TopicDevicePaired:
			if l.registry.Add(id) {
				l.logger.Debug("device registered", "device", id, "topic", topic)
			}
		case ports.TopicDeviceDisconnected:
			if !l.registry.Remove(id) {
				return
			}
			l.logger.Debug("device removed", "device", id)
			if l.onRemoved != nil {
				l.onRemoved(id)
			}
		}
	})
	if err != nil {
		l.logger.Warn("drop device notification", "topic", topic, "device", id, "err", err)
	}
}

func (l *NotificationListener) handleAutoFocus(payload any) {
	enabled, ok := payload.(bool)
	if !ok {
		l.logger.Warn("ignoring autofocus notification with unexpected payload", "payload", payload)
		return
	}

	err := l.exec.Do(context.Background(), func() {
		l.autoFocus = enabled
		if l.toggle != nil {
			l.toggle.SetAutoFocus(enabled)
		}
	})
	if err != nil {
		l.logger.Warn("drop autofocus notification", "err", err)
	}
}

func deviceIDFromPayload(payload any) (domain.DeviceID, bool) {
	var id domain.DeviceID
	switch v := payload.(type) {
	case domain.DeviceID:
		id = v
	case string:
		id = domain.DeviceID(v)
	case domain.DeviceEvent:
		id = v.DeviceID
	default:
		return "", false
	}
	return id, id != ""
}
