package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/gauss2302/agrogame/internal/config"
	"github.com/gauss2302/agrogame/internal/event"
	"github.com/gauss2302/agrogame/internal/eventlog"
	"github.com/gauss2302/agrogame/internal/metrics"
	"github.com/gauss2302/agrogame/internal/notify"
	"github.com/gauss2302/agrogame/internal/sse"
	"github.com/gauss2302/agrogame/internal/worker"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus     event.Bus
	GrowthWorker *worker.GrowthWorker
	SSEHub       *sse.Hub
	EventLog     eventlog.Service
	Config       *config.Config

	// Webhook overrides the Discord session, mainly for tests
	Webhook notify.WebhookExecutor
}

// RegisterEventHandlers sets up all event subscribers:
//   - growth worker (schedules plantings, drops harvested timers)
//   - event stream subscriber (pushes persisted changes to clients)
//   - metrics collector
//   - farm event log, when a service is given
//   - Discord notifier, when a webhook is configured
//
// The returned notifier is nil when Discord is disabled.
func RegisterEventHandlers(deps EventHandlerDependencies) (*notify.DiscordNotifier, error) {
	deps.GrowthWorker.Subscribe(deps.EventBus)
	slog.Info(LogMsgGrowthWorkerRegistered)

	sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)

	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.EventLog != nil {
		deps.EventLog.Subscribe(deps.EventBus)
		slog.Info(LogMsgEventLogRegistered)
	}

	if !deps.Config.DiscordEnabled() {
		slog.Info(LogMsgDiscordNotifierDisabled)
		return nil, nil
	}

	exec := deps.Webhook
	if exec == nil {
		session, err := notify.NewWebhookSession()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDiscordSession, err)
		}
		exec = session
	}

	notifier := notify.NewDiscordNotifier(exec, deps.Config.DiscordWebhookID, deps.Config.DiscordWebhookToken)
	notifier.Subscribe(deps.EventBus)
	notifier.Start()
	slog.Info(LogMsgDiscordNotifierEnabled)

	return notifier, nil
}
