package model

import "gorm.io/gorm"

// Beer is a contest-independent beer identity, shared across contests.
// It is created on first reference and never deleted while any contest
// still points at it.
type Beer struct {
	gorm.Model
	Name           string `gorm:"uniqueIndex:idx_beer_unique"`
	Brewery        string `gorm:"uniqueIndex:idx_beer_unique"`
	Style          string
	Description    string
	BreweryCity    string
	BreweryState   string
	BreweryCountry string
	BreweryLat     *float64
	BreweryLon     *float64
	UntappdID      *string
	UntappdURL     *string
	BreweryURL     *string
}

// Brewery is a contest-independent brewery identity.
type Brewery struct {
	gorm.Model
	Name       string `gorm:"uniqueIndex"`
	State      string
	Location   *string
	UntappdID  *string
	UntappdURL *string
}
