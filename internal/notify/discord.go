// Package notify posts delivery milestones to a Discord channel webhook
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/event"
)

// WebhookExecutor is the part of *discordgo.Session the notifier uses
type WebhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ WebhookExecutor = (*discordgo.Session)(nil)

// NewWebhookSession returns a session for executing webhooks. Webhook
// calls are authorised by the webhook token, so no bot token is needed.
func NewWebhookSession() (*discordgo.Session, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateSession, err)
	}
	return s, nil
}

// DiscordNotifier sends delivery claims and real product unlocks to a webhook.
// Sends happen on a background goroutine so a slow webhook never delays the
// operation that published the event.
type DiscordNotifier struct {
	exec      WebhookExecutor
	webhookID string
	token     string
	printer   *message.Printer

	queue    chan *discordgo.WebhookParams
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewDiscordNotifier creates a notifier for the given webhook
func NewDiscordNotifier(exec WebhookExecutor, webhookID, token string) *DiscordNotifier {
	return &DiscordNotifier{
		exec:      exec,
		webhookID: webhookID,
		token:     token,
		printer:   message.NewPrinter(language.English),
		queue:     make(chan *discordgo.WebhookParams, QueueSize),
		quit:      make(chan struct{}),
	}
}

// Start launches the send loop
func (n *DiscordNotifier) Start() {
	n.wg.Add(1)
	go n.run()
	slog.Info(LogMsgNotifierStarted)
}

// Subscribe registers the notifier for the events it reports
func (n *DiscordNotifier) Subscribe(bus event.Bus) {
	bus.Subscribe(event.DeliveryClaimed, n.handleDeliveryClaimed)
	bus.Subscribe(event.RealProductUnlocked, n.handleRealProductUnlocked)
}

// Stop sends whatever is queued, then stops the loop
func (n *DiscordNotifier) Stop(ctx context.Context) error {
	n.stopOnce.Do(func() { close(n.quit) })

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *DiscordNotifier) run() {
	defer n.wg.Done()
	for {
		select {
		case params := <-n.queue:
			n.send(params)
		case <-n.quit:
			for {
				select {
				case params := <-n.queue:
					n.send(params)
				default:
					return
				}
			}
		}
	}
}

func (n *DiscordNotifier) send(params *discordgo.WebhookParams) {
	ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
	defer cancel()

	if _, err := n.exec.WebhookExecute(n.webhookID, n.token, false, params, discordgo.WithContext(ctx)); err != nil {
		slog.Error(LogMsgNotificationError, "error", err)
		return
	}
	slog.Debug(LogMsgNotificationSent, "title", params.Embeds[0].Title)
}

func (n *DiscordNotifier) enqueue(embed *discordgo.MessageEmbed) {
	params := &discordgo.WebhookParams{Embeds: []*discordgo.MessageEmbed{embed}}
	select {
	case n.queue <- params:
	default:
		slog.Warn(LogMsgQueueFull, "title", embed.Title)
	}
}

func (n *DiscordNotifier) handleDeliveryClaimed(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.DeliveryClaimedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}
	n.enqueue(n.deliveryClaimedEmbed(p))
	return nil
}

func (n *DiscordNotifier) handleRealProductUnlocked(_ context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.RealProductUnlockedPayload](evt.Payload)
	if err != nil {
		slog.Warn(LogMsgPayloadError, "event_type", evt.Type, "error", err)
		return nil
	}
	n.enqueue(n.realProductUnlockedEmbed(p))
	return nil
}

func (n *DiscordNotifier) deliveryClaimedEmbed(p domain.DeliveryClaimedPayload) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       TitleDeliveryClaimed,
		Description: n.printer.Sprintf(DescDeliveryClaimedFormat, p.OrderID, p.Reference, p.Quantity, p.VirtualUsed),
		Color:       ColorDeliveryClaimed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: FieldRemaining, Value: n.printer.Sprintf("%d", p.Remaining), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: FooterText},
	}
	if p.RecipientName != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: FieldRecipient, Value: p.RecipientName, Inline: true})
	}
	return embed
}

func (n *DiscordNotifier) realProductUnlockedEmbed(p domain.RealProductUnlockedPayload) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       TitleRealProductUnlocked,
		Description: n.printer.Sprintf(DescRealProductUnlockedFmt, p.FarmID, p.RealProductsReady),
		Color:       ColorRealUnlocked,
		Footer:      &discordgo.MessageEmbedFooter{Text: FooterText},
	}
}
