package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player is a user profile that can join contests.
type Player struct {
	gorm.Model
	UUID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4()"`
	Username          string    `gorm:"uniqueIndex"`
	PersonalStatement string
	City              string
	UntappdUsername   *string
	UntappdRSS        *string
}
