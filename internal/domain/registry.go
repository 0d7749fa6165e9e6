package domain

import (
	"fmt"
	"strings"
)

// DeviceRegistry lists reachable devices in discovery order, without duplicates.
type DeviceRegistry struct {
	ids []DeviceID
}

func NewDeviceRegistry() *DeviceRegistry {
	return &DeviceRegistry{}
}

// Add appends id unless it is blank or already registered.
func (r *DeviceRegistry) Add(id DeviceID) bool {
	if strings.TrimSpace(string(id)) == "" {
		return false
	}
	if r.Contains(id) {
		return false
	}

	r.ids = append(r.ids, id)
	return true
}

// Remove drops id by exact match. Unknown ids are ignored.
func (r *DeviceRegistry) Remove(id DeviceID) bool {
	index := r.IndexOf(id)
	if index < 0 {
		return false
	}

	r.ids = append(r.ids[:index], r.ids[index+1:]...)
	return true
}

func (r *DeviceRegistry) At(index int) (DeviceID, error) {
	if index < 0 || index >= len(r.ids) {
		return "", fmt.Errorf("%w: %d (devices: %d)", ErrDeviceIndexOutOfRange, index, len(r.ids))
	}
	return r.ids[index], nil
}

func (r *DeviceRegistry) IndexOf(id DeviceID) int {
	for i, candidate := range r.ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

func (r *DeviceRegistry) Contains(id DeviceID) bool {
	return r.IndexOf(id) >= 0
}

func (r *DeviceRegistry) Len() int {
	return len(r.ids)
}

func (r *DeviceRegistry) IDs() []DeviceID {
	ids := make([]DeviceID, len(r.ids))
	copy(ids, r.ids)
	return ids
}
