package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	eventbus "github.com/bnema/locsim/internal/adapters/eventbus/memory"
	statusadapter "github.com/bnema/locsim/internal/adapters/render/status"
	"github.com/bnema/locsim/internal/adapters/sessionhost/sim"
	"github.com/bnema/locsim/internal/adapters/transport/chain"
	"github.com/bnema/locsim/internal/adapters/transport/static"
	"github.com/bnema/locsim/internal/adapters/transport/websocket"
	"github.com/bnema/locsim/internal/adapters/ui/console"
	"github.com/bnema/locsim/internal/application"
	"github.com/bnema/locsim/internal/config"
	"github.com/bnema/locsim/internal/domain"
	"github.com/bnema/locsim/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	cfg            config.Config
	statusRenderer func(application.Status, statusadapter.RenderOptions) (string, error)
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New(), "")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &app{
		cfg:            cfg,
		statusRenderer: statusadapter.Render,
		now:            time.Now,
	}, nil
}

type runtimeOptions struct {
	out       io.Writer
	logOut    io.Writer
	bridgeURL string
	devices   []string
	verbose   bool
	recorder  *stepRecorder
}

// runtime is one running coordinator with its stand-in host and surface.
type runtime struct {
	coordinator *application.Coordinator
	host        *sim.Host
	surface     *console.Surface
	source      ports.NotificationSource
	untrack     func()
}

func (a *app) startRuntime(ctx context.Context, opts runtimeOptions) (*runtime, error) {
	logger := config.NewLogger(opts.logOut, a.cfg.LogLevel)
	bus := eventbus.NewBus()

	host := sim.NewHost(sim.Options{DefaultLocation: a.cfg.DefaultLocation})
	untrack := host.Track(bus)
	if opts.recorder != nil {
		untrackHost, untrackRecorder := untrack, opts.recorder.track(bus)
		untrack = func() {
			untrackRecorder()
			untrackHost()
		}
	}

	source := notificationSource(bus, opts, a.cfg.HandshakeTimeout, logger)
	surface := console.NewSurface(opts.out, opts.verbose)

	coordinator, err := application.NewCoordinator(application.CoordinatorDeps{
		Host:            host,
		View:            surface.View(),
		Bus:             bus,
		Source:          source,
		Actions:         surface.Actions(),
		Toggle:          surface.Toggle(),
		Logger:          logger,
		InitialMoveType: a.cfg.DefaultMoveType,
	})
	if err != nil {
		untrack()
		return nil, fmt.Errorf("wire coordinator: %w", err)
	}

	if err := coordinator.Start(ctx); err != nil {
		untrack()
		return nil, fmt.Errorf("start coordinator: %w", err)
	}

	for _, name := range []domain.Control{domain.ControlPrimary, domain.ControlSecondary} {
		if err := coordinator.AttachControl(ctx, name, surface.Control(name)); err != nil {
			coordinator.Close()
			untrack()
			return nil, fmt.Errorf("attach %s control: %w", name, err)
		}
	}

	return &runtime{
		coordinator: coordinator,
		host:        host,
		surface:     surface,
		source:      source,
		untrack:     untrack,
	}, nil
}

func (r *runtime) Close() {
	r.coordinator.Close()
	r.untrack()
}

// notificationSource prefers the websocket bridge and falls back to the
// static device list, or to the console when no devices are configured.
func notificationSource(bus ports.EventBus, opts runtimeOptions, timeout time.Duration, logger *slog.Logger) ports.NotificationSource {
	var fallback ports.NotificationSource = console.Source{}
	if len(opts.devices) > 0 {
		fallback = static.NewSource(bus, opts.devices)
	}
	if opts.bridgeURL == "" {
		return fallback
	}

	bridge := websocket.NewSource(bus, websocket.Options{
		URL:              opts.bridgeURL,
		HandshakeTimeout: timeout,
		Logger:           logger,
	})
	return chain.NewSource(bridge, fallback)
}

// bridgeFellBack reports whether a bridge was configured but the fallback
// source ended up delivering events.
func (r *runtime) bridgeFellBack() bool {
	source, ok := r.source.(*chain.Source)
	if !ok {
		return false
	}
	_, bridged := source.Active().(*websocket.Source)
	return !bridged
}
