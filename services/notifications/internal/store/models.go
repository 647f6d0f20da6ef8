package store

import (
	"time"

	"gorm.io/datatypes"

	"jobboard/pkg/domain"
)

// DeviceModel is the devices table.
type DeviceModel struct {
	ID          string    `gorm:"primaryKey"`
	DeviceID    string    `gorm:"uniqueIndex;not null"`
	UserID      string    `gorm:"index;not null"`
	PushEnabled bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (DeviceModel) TableName() string { return "devices" }

// NotificationModel is the notifications table.
type NotificationModel struct {
	ID        string            `gorm:"primaryKey"`
	UserID    string            `gorm:"index;not null"`
	Title     string            `gorm:"not null"`
	Body      string            `gorm:"type:text;not null"`
	Type      string            `gorm:"not null;default:''"`
	Data      datatypes.JSONMap `gorm:"type:jsonb"`
	Status    string            `gorm:"not null"`
	SentAt    *time.Time        `gorm:"column:sent_at"`
	CreatedAt time.Time         `gorm:"not null"`
}

func (NotificationModel) TableName() string { return "notifications" }

func deviceToModel(d domain.Device) DeviceModel {
	return DeviceModel{
		ID:          d.ID,
		DeviceID:    d.DeviceID,
		UserID:      d.UserID,
		PushEnabled: d.PushEnabled,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func deviceFromModel(m DeviceModel) domain.Device {
	return domain.Device{
		ID:          m.ID,
		DeviceID:    m.DeviceID,
		UserID:      m.UserID,
		PushEnabled: m.PushEnabled,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func notificationToModel(n domain.Notification) NotificationModel {
	var data datatypes.JSONMap
	if n.Data != nil {
		data = datatypes.JSONMap(n.Data)
	}
	return NotificationModel{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Body:      n.Body,
		Type:      n.Type,
		Data:      data,
		Status:    string(n.Status),
		SentAt:    n.SentAt,
		CreatedAt: n.CreatedAt,
	}
}
