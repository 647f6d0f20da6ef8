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
	"jobboard/services/notifications/internal/store"
)

// Config holds dependencies for the notifications core.
type Config struct {
	DatabaseURL string
	Store       store.Store
	// Channel transports push notifications; nil accepts them without
	// sending anything.
	Channel delivery.Channel
}

// App manages push devices and sends notifications to them.
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

// EnableDevice registers deviceID for userID or re-enables a device the
// user already owns.
func (a *App) EnableDevice(ctx context.Context, userID, deviceID string) (domain.Device, error) {
	deviceID = strings.TrimSpace(deviceID)
	now := a.now().UTC()
	device, ok, err := a.store.GetDevice(ctx, deviceID)
	if err != nil {
		return domain.Device{}, fmt.Errorf("fetch device: %w", err)
	}
	if !ok {
		device = domain.Device{
			ID:          util.NewID(),
			DeviceID:    deviceID,
			UserID:      userID,
			PushEnabled: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err := a.store.CreateDevice(ctx, device)
		if err == nil {
			util.LoggerFromContext(ctx).Info("device registered", "device_id", deviceID, "user_id", userID)
			return device, nil
		}
		if !pgstore.IsDuplicate(err) {
			return domain.Device{}, fmt.Errorf("save device: %w", err)
		}
		// registered concurrently; treat it as an existing device
		device, ok, err = a.store.GetDevice(ctx, deviceID)
		if err != nil {
			return domain.Device{}, fmt.Errorf("fetch device: %w", err)
		}
		if !ok {
			return domain.Device{}, ErrDeviceNotFound
		}
	}
	return a.setPush(ctx, device, userID, true, now)
}

// DisableDevice turns push off for a device the user owns.
func (a *App) DisableDevice(ctx context.Context, userID, deviceID string) (domain.Device, error) {
	deviceID = strings.TrimSpace(deviceID)
	device, ok, err := a.store.GetDevice(ctx, deviceID)
	if err != nil {
		return domain.Device{}, fmt.Errorf("fetch device: %w", err)
	}
	if !ok {
		return domain.Device{}, ErrDeviceNotFound
	}
	return a.setPush(ctx, device, userID, false, a.now().UTC())
}

func (a *App) setPush(ctx context.Context, device domain.Device, userID string, enabled bool, now time.Time) (domain.Device, error) {
	if device.UserID != userID {
		return domain.Device{}, ErrAccessDenied
	}
	matched, err := a.store.SetPushEnabled(ctx, device.DeviceID, userID, enabled, now)
	if err != nil {
		return domain.Device{}, err
	}
	if !matched {
		return domain.Device{}, ErrDeviceNotFound
	}
	device.PushEnabled = enabled
	device.UpdatedAt = now
	util.LoggerFromContext(ctx).Info("device push updated", "device_id", device.DeviceID, "push_enabled", enabled)
	return device, nil
}

// SendInput is a notification addressed to a user.
type SendInput struct {
	UserID string
	Title  string
	Body   string
	Type   string
	Data   map[string]any
}

// Send persists the notification and hands it to the delivery channel. A
// delivery failure is recorded on the notification, not returned.
func (a *App) Send(ctx context.Context, in SendInput) (domain.Notification, error) {
	logger := util.LoggerFromContext(ctx)
	devices, err := a.store.ListEnabledDevices(ctx, in.UserID)
	if err != nil {
		return domain.Notification{}, err
	}
	if len(devices) == 0 {
		logger.Warn("no enabled devices for user", "user_id", in.UserID)
	}

	n := domain.Notification{
		ID:        util.PrefixedID("notif"),
		UserID:    in.UserID,
		Title:     in.Title,
		Body:      in.Body,
		Type:      in.Type,
		Data:      in.Data,
		Status:    domain.DeliveryQueued,
		CreatedAt: a.now().UTC(),
	}
	if err := a.store.CreateNotification(ctx, n); err != nil {
		return domain.Notification{}, fmt.Errorf("save notification: %w", err)
	}

	targets := make([]string, 0, len(devices))
	for _, d := range devices {
		targets = append(targets, d.DeviceID)
	}
	err = a.channel.Deliver(ctx, delivery.Message{
		Kind:      delivery.KindPush,
		ID:        n.ID,
		Recipient: n.UserID,
		Subject:   n.Title,
		Body:      n.Body,
		Template:  n.Type,
		Data:      n.Data,
		Targets:   targets,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		logger.Error("notification delivery failed", "notification_id", n.ID, "err", err)
		n.Status = domain.DeliveryFailed
	} else {
		sentAt := a.now().UTC()
		n.Status = domain.DeliverySent
		n.SentAt = &sentAt
	}
	if err := a.store.SetNotificationStatus(ctx, n.ID, n.Status, n.SentAt); err != nil {
		return domain.Notification{}, err
	}
	logger.Info("notification processed", "notification_id", n.ID, "user_id", n.UserID, "status", string(n.Status), "devices", len(targets))
	return n, nil
}
