package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Note struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID      `gorm:"type:uuid;not null;index"`
	ConversationId *uuid.UUID     `gorm:"type:uuid;index"`
	Title          string         `gorm:"type:varchar(255);not null"`
	Content        string         `gorm:"type:text;not null"`
	Link           *string        `gorm:"type:varchar(2048)"`
	Type           string         `gorm:"type:varchar(32);not null"`
	Category       string         `gorm:"type:varchar(32);not null;default:'general'"`
	Tags           datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
