package model

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename     string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	OriginalName string     `gorm:"type:varchar(255);not null"`
	MimeType     string     `gorm:"type:varchar(128);not null"`
	Size         int64      `gorm:"not null"`
	SessionId    string     `gorm:"type:varchar(128);not null;index"`
	UserId       *uuid.UUID `gorm:"type:uuid;index"`
	Title        *string    `gorm:"type:varchar(255)"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
}

func (File) TableName() string {
	return "files"
}
