package model

import (
	"time"

	"gorm.io/gorm"
)

// Contest represents one competition window. It owns the contest-scoped
// beer, brewery, bonus and player associations.
type Contest struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex"`
	CreatorID uint
	Active    bool
	StartDate time.Time
	EndDate   time.Time
	UserCount int
	BeerCount int

	Creator Player `gorm:"foreignKey:CreatorID"`
}

// ContestPlayer links a player's activity to a contest and carries the
// denormalized score state. The point fields are mutated only by the
// reconciliation engine and by the full recompute; ingestion touches
// LastCheckinLoad alone. All totals must stay re-derivable from the
// contest checkin ledger.
type ContestPlayer struct {
	gorm.Model
	ContestID          uint   `gorm:"uniqueIndex:idx_contest_player_unique"`
	PlayerID           uint   `gorm:"uniqueIndex:idx_contest_player_unique"`
	UserName           string `gorm:"size:50"`
	BeerCount          int
	BeerPoints         int
	BreweryPoints      int
	BonusPoints        int
	ChallengePointGain int
	// ChallengePointLoss holds the positive magnitude of points lost to
	// other players drinking this player's challenge beers.
	ChallengePointLoss int
	TotalPoints        int

	// Denormalized display fields from the most recently validated checkin.
	LastCheckinDate    *time.Time
	LastCheckinBeer    *string
	LastCheckinBrewery *string

	// LastCheckinLoad is the high-water mark of feed publish times seen by
	// ingestion. It only ever moves forward.
	LastCheckinLoad time.Time

	Contest Contest `gorm:"foreignKey:ContestID"`
	Player  Player  `gorm:"foreignKey:PlayerID"`
}
