package cmd

import (
	"sync"

	"github.com/bnema/locsim/internal/application"
	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
)

// stepRecorder collects the steps of a run in the order they took effect.
// Device steps are taken from the bus so devices announced by the bridge or
// the static list are recorded along with typed ones.
type stepRecorder struct {
	mu    sync.Mutex
	steps []application.Step
}

var recordedTopics = map[string]application.StepAction{
	ports.TopicDeviceConnected:    application.StepConnect,
	ports.TopicDevicePaired:       application.StepPair,
	ports.TopicDeviceDisconnected: application.StepDisconnect,
}

// track subscribes to device topics on bus. The returned func removes the
// subscriptions.
func (r *stepRecorder) track(bus ports.EventBus) func() {
	subs := make([]ports.Subscription, 0, len(recordedTopics))
	for topic, action := range recordedTopics {
		subs = append(subs, bus.Subscribe(topic, func(payload any) {
			var id domain.DeviceID
			switch v := payload.(type) {
			case domain.DeviceID:
				id = v
			case string:
				id = domain.DeviceID(v)
			default:
				return
			}
			r.add(application.Step{Action: action, Device: id})
		}))
	}

	return func() {
		for _, sub := range subs {
			bus.Unsubscribe(sub)
		}
	}
}

// addApplied records a typed step. Device steps are skipped because they
// already reached the recorder through the bus.
func (r *stepRecorder) addApplied(step application.Step) {
	switch step.Action {
	case application.StepConnect, application.StepPair, application.StepDisconnect:
		return
	}
	r.add(step)
}

func (r *stepRecorder) add(step application.Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

func (r *stepRecorder) Steps() []application.Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]application.Step(nil), r.steps...)
}
