package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jobboard/pkg/domain"
	pgstore "jobboard/pkg/store"
)

// GormStore implements Store on Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database and migrates the notification tables.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := pgstore.Open(dsn, pgstore.Schema{Models: []any{&DeviceModel{}, &NotificationModel{}}})
	if err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateDevice(ctx context.Context, d domain.Device) error {
	model := deviceToModel(d)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) GetDevice(ctx context.Context, deviceID string) (domain.Device, bool, error) {
	var model DeviceModel
	if err := s.db.WithContext(ctx).Where("device_id = ?", deviceID).First(&model).Error; err != nil {
		if pgstore.IsNotFound(err) {
			return domain.Device{}, false, nil
		}
		return domain.Device{}, false, fmt.Errorf("query device: %w", err)
	}
	return deviceFromModel(model), true, nil
}

func (s *GormStore) SetPushEnabled(ctx context.Context, deviceID, userID string, enabled bool, at time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&DeviceModel{}).
		Where("device_id = ? AND user_id = ?", deviceID, userID).
		Updates(map[string]any{"push_enabled": enabled, "updated_at": at})
	if res.Error != nil {
		return false, fmt.Errorf("update device: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) ListEnabledDevices(ctx context.Context, userID string) ([]domain.Device, error) {
	var models []DeviceModel
	if err := s.db.WithContext(ctx).Where("user_id = ? AND push_enabled = ?", userID, true).Order("created_at").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	devices := make([]domain.Device, 0, len(models))
	for _, m := range models {
		devices = append(devices, deviceFromModel(m))
	}
	return devices, nil
}

func (s *GormStore) CreateNotification(ctx context.Context, n domain.Notification) error {
	model := notificationToModel(n)
	return pgstore.TranslateDuplicate(s.db.WithContext(ctx).Create(&model).Error)
}

func (s *GormStore) SetNotificationStatus(ctx context.Context, id string, status domain.DeliveryStatus, sentAt *time.Time) error {
	err := s.db.WithContext(ctx).Model(&NotificationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "sent_at": sentAt}).Error
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	return nil
}
