package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/util"
	"jobboard/pkg/delivery"
	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
	"jobboard/services/mailing/internal/store"
)

// Templates lists the email templates a sender may reference.
var Templates = map[string]struct{}{
	"welcome-template":      {},
	"notification-template": {},
}

// Config holds dependencies for the mailing core.
type Config struct {
	DatabaseURL string
	Store       store.Store
	// Channel transports emails; nil accepts them without sending anything.
	Channel delivery.Channel
}

// App manages the mailing list and outbound emails.
type App struct {
	store   store.Store
	channel delivery.Channel
	now     func() time.Time
}

// New builds the app, opening Postgres when no store is injected.
func New(cfg Config) (*App, error) {
	st := cfg.Store
	if st == nil {
		if cfg.DatabaseURL == "" {
			return nil, errors.New("database URL is required")
		}
		gs, err := store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init store: %w", err)
		}
		st = gs
	}
	ch := cfg.Channel
	if ch == nil {
		ch = delivery.Simulated{}
	}
	return &App{store: st, channel: ch, now: time.Now}, nil
}

// Subscribe adds email to the list or resubscribes it.
func (a *App) Subscribe(ctx context.Context, email string, categories []string) (domain.Subscription, error) {
	email = normalizeEmail(email)
	categories = orEmpty(categories)
	now := a.now().UTC()
	sub, ok, err := a.store.GetSubscription(ctx, email)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("fetch subscription: %w", err)
	}
	if ok {
		if sub.Subscribed {
			return domain.Subscription{}, ErrAlreadySubscribed
		}
		matched, err := a.store.Resubscribe(ctx, email, categories, now)
		if err != nil {
			return domain.Subscription{}, err
		}
		if !matched {
			return domain.Subscription{}, ErrAlreadySubscribed
		}
		sub.Subscribed = true
		sub.Categories = categories
		sub.UpdatedAt = now
		util.LoggerFromContext(ctx).Info("email resubscribed", "subscription_id", sub.ID)
		return sub, nil
	}

	sub = domain.Subscription{
		ID:         util.NewID(),
		Email:      email,
		Subscribed: true,
		Categories: categories,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := a.store.CreateSubscription(ctx, sub); err != nil {
		if pgstore.IsDuplicate(err) {
			return domain.Subscription{}, ErrAlreadySubscribed
		}
		return domain.Subscription{}, fmt.Errorf("save subscription: %w", err)
	}
	util.LoggerFromContext(ctx).Info("email subscribed", "subscription_id", sub.ID)
	return sub, nil
}

// Unsubscribe turns the subscription off and replaces its categories.
func (a *App) Unsubscribe(ctx context.Context, email string, categories []string) (domain.Subscription, error) {
	email = normalizeEmail(email)
	categories = orEmpty(categories)
	sub, ok, err := a.store.GetSubscription(ctx, email)
	if err != nil {
		return domain.Subscription{}, fmt.Errorf("fetch subscription: %w", err)
	}
	if !ok {
		return domain.Subscription{}, ErrUserNotFound
	}
	now := a.now().UTC()
	matched, err := a.store.Unsubscribe(ctx, email, categories, now)
	if err != nil {
		return domain.Subscription{}, err
	}
	if !matched {
		return domain.Subscription{}, ErrUserNotFound
	}
	sub.Subscribed = false
	sub.Categories = categories
	sub.UpdatedAt = now
	util.LoggerFromContext(ctx).Info("email unsubscribed", "subscription_id", sub.ID)
	return sub, nil
}

// EmailInput is an email to send, either raw or from a template.
type EmailInput struct {
	To         string
	Subject    string
	Body       string
	TemplateID string
	Variables  map[string]any
}

// SendEmail records the email as queued, hands it to the delivery channel
// and records the outcome.
func (a *App) SendEmail(ctx context.Context, in EmailInput) (domain.EmailMessage, error) {
	templateID := strings.TrimSpace(in.TemplateID)
	if templateID != "" {
		if _, ok := Templates[templateID]; !ok {
			return domain.EmailMessage{}, ErrTemplateNotFound
		}
	}
	msg := domain.EmailMessage{
		ID:         util.PrefixedID("mail"),
		To:         normalizeEmail(in.To),
		Subject:    in.Subject,
		Body:       in.Body,
		TemplateID: templateID,
		Variables:  in.Variables,
		Status:     domain.DeliveryQueued,
		CreatedAt:  a.now().UTC(),
	}
	if err := a.store.CreateEmail(ctx, msg); err != nil {
		return domain.EmailMessage{}, fmt.Errorf("save email: %w", err)
	}

	logger := util.LoggerFromContext(ctx)
	err := a.channel.Deliver(ctx, delivery.Message{
		Kind:      delivery.KindEmail,
		ID:        msg.ID,
		Recipient: msg.To,
		Subject:   msg.Subject,
		Body:      msg.Body,
		Template:  msg.TemplateID,
		Data:      msg.Variables,
		CreatedAt: msg.CreatedAt,
	})
	if err != nil {
		logger.Error("email delivery failed", "message_id", msg.ID, "err", err)
		msg.Status = domain.DeliveryFailed
	} else {
		sentAt := a.now().UTC()
		msg.Status = domain.DeliverySent
		msg.SentAt = &sentAt
	}
	if err := a.store.SetEmailStatus(ctx, msg.ID, msg.Status, msg.SentAt); err != nil {
		return domain.EmailMessage{}, err
	}
	logger.Info("email processed", "message_id", msg.ID, "status", string(msg.Status), "template", templateID)
	return msg, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
