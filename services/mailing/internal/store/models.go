package store

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"

	"jobboard/pkg/domain"
)

// SubscriptionModel is the subscriptions table, one row per email.
type SubscriptionModel struct {
	ID         string         `gorm:"primaryKey"`
	Email      string         `gorm:"uniqueIndex;not null"`
	Subscribed bool           `gorm:"not null;default:true"`
	Categories pq.StringArray `gorm:"type:text[]"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

func (SubscriptionModel) TableName() string { return "subscriptions" }

// EmailMessageModel is the email_messages table.
type EmailMessageModel struct {
	ID         string            `gorm:"primaryKey"`
	ToEmail    string            `gorm:"index;not null"`
	Subject    string            `gorm:"not null;default:''"`
	Body       string            `gorm:"type:text"`
	TemplateID string            `gorm:"not null;default:''"`
	Variables  datatypes.JSONMap `gorm:"type:jsonb"`
	Status     string            `gorm:"not null"`
	SentAt     *time.Time        `gorm:"column:sent_at"`
	CreatedAt  time.Time         `gorm:"not null"`
}

func (EmailMessageModel) TableName() string { return "email_messages" }

func subscriptionToModel(s domain.Subscription) SubscriptionModel {
	return SubscriptionModel{
		ID:         s.ID,
		Email:      s.Email,
		Subscribed: s.Subscribed,
		Categories: pq.StringArray(s.Categories),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func subscriptionFromModel(m SubscriptionModel) domain.Subscription {
	categories := []string(m.Categories)
	if categories == nil {
		categories = []string{}
	}
	return domain.Subscription{
		ID:         m.ID,
		Email:      m.Email,
		Subscribed: m.Subscribed,
		Categories: categories,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

func emailToModel(e domain.EmailMessage) EmailMessageModel {
	var vars datatypes.JSONMap
	if e.Variables != nil {
		vars = datatypes.JSONMap(e.Variables)
	}
	return EmailMessageModel{
		ID:         e.ID,
		ToEmail:    e.To,
		Subject:    e.Subject,
		Body:       e.Body,
		TemplateID: e.TemplateID,
		Variables:  vars,
		Status:     string(e.Status),
		SentAt:     e.SentAt,
		CreatedAt:  e.CreatedAt,
	}
}
