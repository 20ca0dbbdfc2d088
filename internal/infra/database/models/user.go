package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	Email        string    `json:"email" gorm:"type:text;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:text"`
	Name         string    `json:"name" gorm:"type:text"`
	Picture      string    `json:"picture" gorm:"type:text"`
	Phone        string    `json:"phone" gorm:"type:text"`
	GoogleID     string    `json:"-" gorm:"type:text;index"`
	AuthProvider string    `json:"authProvider" gorm:"type:text;not null;default:'local'"`
	CDate        time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
