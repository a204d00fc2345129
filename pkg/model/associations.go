package model

import "gorm.io/gorm"

// ContestBeer attaches a beer to a contest with a point value. A non-nil
// ChallengerID makes it a challenge beer: the challenger earns
// ChallengePointValue for drinking it themselves, and loses
// ChallengePointLoss every time someone else drinks it, up to
// MaxPointLoss in total.
type ContestBeer struct {
	gorm.Model
	ContestID    uint `gorm:"uniqueIndex:idx_contest_beer_unique"`
	BeerID       uint `gorm:"uniqueIndex:idx_contest_beer_unique"`
	ChallengerID *uint

	// Denormalized for display and for the ingestion possible-match scan.
	BeerName    string
	BreweryName string

	PointValue          int
	ChallengePointValue int
	ChallengePointLoss  int
	MaxPointLoss        int
	TotalDrank          int

	Contest    Contest        `gorm:"foreignKey:ContestID"`
	Beer       Beer           `gorm:"foreignKey:BeerID"`
	Challenger *ContestPlayer `gorm:"foreignKey:ChallengerID"`
}

// IsChallenge reports whether this beer carries challenge mechanics.
func (b *ContestBeer) IsChallenge() bool {
	return b.ChallengerID != nil
}

// ContestBrewery attaches a brewery to a contest with a point value.
type ContestBrewery struct {
	gorm.Model
	ContestID    uint `gorm:"uniqueIndex:idx_contest_brewery_unique"`
	BreweryID    uint `gorm:"uniqueIndex:idx_contest_brewery_unique"`
	BreweryName  string
	PointValue   int
	TotalVisited int

	Contest Contest `gorm:"foreignKey:ContestID"`
	Brewery Brewery `gorm:"foreignKey:BreweryID"`
}

// ContestBonus is a named bonus worth PointValue, triggered by any of its
// hashtags. A hashtag may belong to at most one bonus per contest.
type ContestBonus struct {
	gorm.Model
	ContestID   uint   `gorm:"uniqueIndex:idx_contest_bonus_unique"`
	Name        string `gorm:"uniqueIndex:idx_contest_bonus_unique;size:50"`
	Description string
	Hashtags    []string `gorm:"serializer:json"`
	PointValue  int

	Contest Contest `gorm:"foreignKey:ContestID"`
}
