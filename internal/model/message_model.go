package model

import (
	"time"

	"gorm.io/datatypes"
)

type Message struct {
	Id        int64          `gorm:"primaryKey;autoIncrement:false"`
	ChannelId int64          `gorm:"not null;index"`
	AuthorId  int64          `gorm:"not null"`
	Content   string         `gorm:"type:text"`
	Reactions datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Message) TableName() string {
	return "messages"
}
