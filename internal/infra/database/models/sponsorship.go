package models

import (
	"time"
)

// Sponsorship links a user to an adopted case. It is a snapshot taken at
// adoption time, never mutated in place: created on adopt, deleted on
// unadopt. At most one active row per (domain, case, user).
type Sponsorship struct {
	ID     int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Domain string `json:"domain" gorm:"type:text;uniqueIndex:uniq_sponsorship;not null"`
	CaseID string `json:"caseId" gorm:"type:text;uniqueIndex:uniq_sponsorship;not null"`
	UserID string `json:"userId" gorm:"type:text;uniqueIndex:uniq_sponsorship;index;not null"`
	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`

	// Denormalized snapshot of the case's canonical fields.
	Name         string  `json:"name" gorm:"type:text"`
	Age          int     `json:"age,omitempty" gorm:"type:integer"`
	Location     string  `json:"location" gorm:"type:text"`
	Description  string  `json:"description" gorm:"type:text"`
	Amount       float64 `json:"amount" gorm:"type:numeric"`
	AmountNeeded float64 `json:"amountNeeded" gorm:"type:numeric"`

	AdoptedAt time.Time `json:"adoptedAt" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
