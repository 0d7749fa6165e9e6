package ports

import (
	"context"

	"github.com/bnema/locsim/internal/domain"
)

// Device topics carry a domain.DeviceID payload; the autofocus topic carries a bool.
const (
	TopicDeviceConnected    = "device.connected"
	TopicDevicePaired       = "device.paired"
	TopicDeviceDisconnected = "device.disconnected"
	TopicAutoFocusChanged   = "preferences.autofocus_changed"
)

func DeviceTopic(kind domain.DeviceEventKind) (string, bool) {
	switch kind {
	case domain.DeviceConnected:
		return TopicDeviceConnected, true
	case domain.DevicePaired:
		return TopicDevicePaired, true
	case domain.DeviceDisconnected:
		return TopicDeviceDisconnected, true
	default:
		return "", false
	}
}

// PublishDeviceEvent routes event to its topic. Unknown kinds are dropped.
func PublishDeviceEvent(bus EventBus, event domain.DeviceEvent) bool {
	topic, ok := DeviceTopic(event.Kind)
	if !ok {
		return false
	}
	bus.Publish(topic, event.DeviceID)
	return true
}

type Handler func(payload any)

// Subscription identifies one registered handler on an EventBus.
type Subscription interface {
	Topic() string
}

type EventBus interface {
	Subscribe(topic string, handler Handler) Subscription
	Unsubscribe(subscription Subscription)
	Publish(topic string, payload any)
}

// NotificationSource produces device lifecycle events onto an EventBus once
// started. Start fails when the underlying transport cannot deliver events.
type NotificationSource interface {
	Start(ctx context.Context) error
	Stop() error
}
