package model

import (
	"time"

	"gorm.io/gorm"
)

// TxType tags a ledger entry with the kind of event that produced it.
type TxType string

const (
	TxBeer           TxType = "BE" // ordinary contest beer
	TxBrewery        TxType = "BR" // contest brewery visit
	TxChallengeOther TxType = "CO" // non-challenger drank a challenge beer
	TxChallengeSelf  TxType = "CS" // challenger drank their own challenge beer
	TxChallengeLoss  TxType = "CL" // penalty against the challenger
	TxBonus          TxType = "BO" // bonus hashtag
)

// UnvalidatedCheckin is a provisional consumption event produced by feed
// ingestion, awaiting a runner's match decision. The checkin URL is the
// idempotency key per contest player. It is retired by the reconciliation
// engine once resolved.
type UnvalidatedCheckin struct {
	gorm.Model
	ContestPlayerID    uint   `gorm:"uniqueIndex:idx_uv_checkin_unique"`
	UntappdCheckin     string `gorm:"uniqueIndex:idx_uv_checkin_unique;size:250"`
	UntappdTitle       string `gorm:"size:500"`
	UntappdCheckinDate time.Time

	// Free-text names extracted from the feed title, not yet matched to
	// catalog entities.
	Beer    string
	Brewery string

	BeerURL    *string
	BreweryURL *string
	PhotoURL   *string
	Rating     *int

	// PossibleBonuses holds ContestBonus IDs whose hashtags intersected the
	// entry's description.
	PossibleBonuses []uint `gorm:"serializer:json"`

	// HasPossibles is set when the extracted names exactly match a
	// ContestBeer in the same contest.
	HasPossibles bool

	ContestPlayer ContestPlayer `gorm:"foreignKey:ContestPlayerID"`
}

// ContestCheckin is one immutable, append-only ledger entry. Exactly one
// of the association IDs is set, matching the transaction type. The
// ledger is the single source of truth: every ContestPlayer total must be
// re-derivable from it.
type ContestCheckin struct {
	gorm.Model
	TxType           TxType `gorm:"size:2;default:BE"`
	ContestPlayerID  uint
	ContestBeerID    *uint
	ContestBreweryID *uint
	ContestBonusID   *uint
	CheckinPoints    int
	CheckinTime      time.Time
	UntappdCheckin   string `gorm:"size:250"`

	ContestPlayer  ContestPlayer   `gorm:"foreignKey:ContestPlayerID"`
	ContestBeer    *ContestBeer    `gorm:"foreignKey:ContestBeerID"`
	ContestBrewery *ContestBrewery `gorm:"foreignKey:ContestBreweryID"`
	ContestBonus   *ContestBonus   `gorm:"foreignKey:ContestBonusID"`
}

// The constructors below are the only way the engine builds ledger
// entries: each sets the one association matching its transaction type,
// which keeps the "which foreign key is set" question out of the calling
// code.

func NewBeerCheckin(player ContestPlayer, beer ContestBeer, checkinTime time.Time, untappdCheckin string) *ContestCheckin {
	return &ContestCheckin{
		TxType:          TxBeer,
		ContestPlayerID: player.ID,
		ContestBeerID:   &beer.ID,
		CheckinPoints:   beer.PointValue,
		CheckinTime:     checkinTime,
		UntappdCheckin:  untappdCheckin,
	}
}

func NewBreweryCheckin(player ContestPlayer, brewery ContestBrewery, checkinTime time.Time, untappdCheckin string) *ContestCheckin {
	return &ContestCheckin{
		TxType:           TxBrewery,
		ContestPlayerID:  player.ID,
		ContestBreweryID: &brewery.ID,
		CheckinPoints:    brewery.PointValue,
		CheckinTime:      checkinTime,
		UntappdCheckin:   untappdCheckin,
	}
}

func NewBonusCheckin(player ContestPlayer, bonus ContestBonus, checkinTime time.Time, untappdCheckin string) *ContestCheckin {
	return &ContestCheckin{
		TxType:          TxBonus,
		ContestPlayerID: player.ID,
		ContestBonusID:  &bonus.ID,
		CheckinPoints:   bonus.PointValue,
		CheckinTime:     checkinTime,
		UntappdCheckin:  untappdCheckin,
	}
}

func NewChallengeSelfCheckin(player ContestPlayer, beer ContestBeer, checkinTime time.Time, untappdCheckin string) *ContestCheckin {
	return &ContestCheckin{
		TxType:          TxChallengeSelf,
		ContestPlayerID: player.ID,
		ContestBeerID:   &beer.ID,
		CheckinPoints:   beer.ChallengePointValue,
		CheckinTime:     checkinTime,
		UntappdCheckin:  untappdCheckin,
	}
}

func NewChallengeOtherCheckin(player ContestPlayer, beer ContestBeer, checkinTime time.Time, untappdCheckin string) *ContestCheckin {
	return &ContestCheckin{
		TxType:          TxChallengeOther,
		ContestPlayerID: player.ID,
		ContestBeerID:   &beer.ID,
		CheckinPoints:   beer.PointValue,
		CheckinTime:     checkinTime,
		UntappdCheckin:  untappdCheckin,
	}
}

// NewChallengeLossCheckin records the penalty against the challenger, so
// the points are negative.
func NewChallengeLossCheckin(challenger ContestPlayer, beer ContestBeer, checkinTime time.Time, untappdCheckin string) *ContestCheckin {
	return &ContestCheckin{
		TxType:          TxChallengeLoss,
		ContestPlayerID: challenger.ID,
		ContestBeerID:   &beer.ID,
		CheckinPoints:   -beer.ChallengePointLoss,
		CheckinTime:     checkinTime,
		UntappdCheckin:  untappdCheckin,
	}
}
