package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TicketModel struct {
	ID          uint   `gorm:"primaryKey"`
	Key         string `gorm:"uniqueIndex:idx_tickets_key;size:20;not null"`
	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:20;not null;index"`
	Priority    string `gorm:"size:20;not null;index"`
	Type        string `gorm:"size:20;not null;index"`
	ReporterID  uint   `gorm:"not null;index"`
	AssigneeID  *uint  `gorm:"index"`
	DueAt       *time.Time
	ResolvedAt  *time.Time
	ClosedAt    *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (TicketModel) TableName() string {
	return "tickets"
}

type TicketHistoryModel struct {
	ID       uint   `gorm:"primaryKey"`
	TicketID uint   `gorm:"not null;index"`
	ActorID  *uint  `gorm:"index"`
	Summary  string `gorm:"size:100;not null"`
	// Changes holds the field-level diff as a JSON document, or null
	// for entries without one.
	Changes   datatypes.JSON
	CreatedAt time.Time `gorm:"index"`
}

func (TicketHistoryModel) TableName() string {
	return "ticket_histories"
}

type WatcherModel struct {
	ID        uint `gorm:"primaryKey"`
	TicketID  uint `gorm:"not null;uniqueIndex:idx_watcher_ticket_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_watcher_ticket_user"`
	CreatedAt time.Time
}

func (WatcherModel) TableName() string {
	return "ticket_watchers"
}
