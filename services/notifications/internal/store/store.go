package store

import (
	"context"
	"time"

	"jobboard/pkg/domain"
)

// Store persists push devices and the notifications sent to them.
type Store interface {
	// CreateDevice returns pgstore.ErrDuplicate when device_id is taken.
	CreateDevice(ctx context.Context, d domain.Device) error
	GetDevice(ctx context.Context, deviceID string) (domain.Device, bool, error)
	// SetPushEnabled flips the flag on a device owned by userID and reports
	// whether it matched.
	SetPushEnabled(ctx context.Context, deviceID, userID string, enabled bool, at time.Time) (bool, error)
	ListEnabledDevices(ctx context.Context, userID string) ([]domain.Device, error)

	CreateNotification(ctx context.Context, n domain.Notification) error
	SetNotificationStatus(ctx context.Context, id string, status domain.DeliveryStatus, sentAt *time.Time) error
}
