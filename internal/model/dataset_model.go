package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Dataset struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Description string         `gorm:"type:text"`
	RemoteId    string         `gorm:"type:varchar(64);index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Dataset) TableName() string {
	return "datasets"
}
