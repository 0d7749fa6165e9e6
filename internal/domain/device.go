package domain

type DeviceID string

type DeviceEventKind string

const (
	DeviceConnected    DeviceEventKind = "connected"
	DevicePaired       DeviceEventKind = "paired"
	DeviceDisconnected DeviceEventKind = "disconnected"
)

func (k DeviceEventKind) Valid() bool {
	switch k {
	case DeviceConnected, DevicePaired, DeviceDisconnected:
		return true
	default:
		return false
	}
}

type DeviceEvent struct {
	Kind     DeviceEventKind
	DeviceID DeviceID
}
