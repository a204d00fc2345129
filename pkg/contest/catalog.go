package contest

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// ChallengeRules carries the point settings for a challenge beer.
type ChallengeRules struct {
	PointValue          int
	ChallengePointValue int
	ChallengePointLoss  int
	MaxPointLoss        int
}

// DefaultChallengeRules match the long-standing contest defaults: the
// challenger gets 12 for drinking their own beer, everyone else gets 3
// and costs the challenger 3, down to at most 12 lost.
var DefaultChallengeRules = ChallengeRules{
	PointValue:          3,
	ChallengePointValue: 12,
	ChallengePointLoss:  3,
	MaxPointLoss:        12,
}

var hashtagPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// AddPlayer enrolls a player in the contest. The ingestion high-water
// mark starts at the contest start so pre-contest checkins are never
// pulled.
func (e *Engine) AddPlayer(ctx context.Context, con *model.Contest, player *model.Player) (*model.ContestPlayer, error) {
	contestPlayer := &model.ContestPlayer{
		ContestID:       con.ID,
		PlayerID:        player.ID,
		UserName:        player.Username,
		LastCheckinLoad: con.StartDate,
	}

	if err := e.store.CreateContestPlayer(ctx, contestPlayer); err != nil {
		return nil, err
	}

	e.logger.Info("added player to contest",
		zap.String("contest", con.Name), zap.String("player", player.Username))

	return contestPlayer, nil
}

// AddBeer associates a beer with the contest as an ordinary (non
// challenge) beer.
func (e *Engine) AddBeer(ctx context.Context, con *model.Contest, beer *model.Beer, pointValue int) (*model.ContestBeer, error) {
	if err := e.checkEditable(con); err != nil {
		return nil, err
	}

	contestBeer := &model.ContestBeer{
		ContestID:   con.ID,
		BeerID:      beer.ID,
		BeerName:    beer.Name,
		BreweryName: beer.Brewery,
		PointValue:  pointValue,
	}

	if err := e.store.CreateContestBeer(ctx, contestBeer); err != nil {
		return nil, err
	}

	return contestBeer, nil
}

// AddChallengeBeer associates a beer with the contest as a challenge
// owned by the given contest player.
func (e *Engine) AddChallengeBeer(ctx context.Context, con *model.Contest, beer *model.Beer, challenger *model.ContestPlayer, rules ChallengeRules) (*model.ContestBeer, error) {
	if err := e.checkEditable(con); err != nil {
		return nil, err
	}

	if challenger.ContestID != con.ID {
		return nil, fmt.Errorf("%w: challenger %q belongs to contest %d",
			ErrContestMismatch, challenger.UserName, challenger.ContestID)
	}

	contestBeer := &model.ContestBeer{
		ContestID:           con.ID,
		BeerID:              beer.ID,
		ChallengerID:        &challenger.ID,
		BeerName:            beer.Name,
		BreweryName:         beer.Brewery,
		PointValue:          rules.PointValue,
		ChallengePointValue: rules.ChallengePointValue,
		ChallengePointLoss:  rules.ChallengePointLoss,
		MaxPointLoss:        rules.MaxPointLoss,
	}

	if err := e.store.CreateContestBeer(ctx, contestBeer); err != nil {
		return nil, err
	}

	e.logger.Info("added challenge beer",
		zap.String("contest", con.Name), zap.String("beer", beer.Name),
		zap.String("challenger", challenger.UserName))

	return contestBeer, nil
}

// AddBrewery associates a brewery with the contest.
func (e *Engine) AddBrewery(ctx context.Context, con *model.Contest, brewery *model.Brewery, pointValue int) (*model.ContestBrewery, error) {
	if err := e.checkEditable(con); err != nil {
		return nil, err
	}

	contestBrewery := &model.ContestBrewery{
		ContestID:   con.ID,
		BreweryID:   brewery.ID,
		BreweryName: brewery.Name,
		PointValue:  pointValue,
	}

	if err := e.store.CreateContestBrewery(ctx, contestBrewery); err != nil {
		return nil, err
	}

	return contestBrewery, nil
}

// AddBonus defines a named bonus triggered by any of the given hashtags.
// Hashtags are letters, digits and underscores only, and each hashtag may
// belong to at most one bonus per contest.
func (e *Engine) AddBonus(ctx context.Context, con *model.Contest, name string, description string, hashtags []string, pointValue int) (*model.ContestBonus, error) {
	if err := e.checkEditable(con); err != nil {
		return nil, err
	}

	tags, err := cleanHashtags(hashtags)
	if err != nil {
		return nil, err
	}

	var conflicts []string

	for _, tag := range tags {
		existing, err := e.store.FindBonusByHashtag(ctx, con.ID, tag)
		if err != nil {
			return nil, err
		}

		if existing != nil {
			conflicts = append(conflicts, fmt.Sprintf("#%s in %s", tag, existing.Name))
		}
	}

	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: hash tags are already being used: %s",
			ErrValidation, strings.Join(conflicts, ","))
	}

	bonus := &model.ContestBonus{
		ContestID:   con.ID,
		Name:        name,
		Description: description,
		Hashtags:    tags,
		PointValue:  pointValue,
	}

	if err := e.store.CreateContestBonus(ctx, bonus); err != nil {
		return nil, err
	}

	return bonus, nil
}

func (e *Engine) checkEditable(con *model.Contest) error {
	if con.Active && !e.policy.AllowActiveEdits {
		return fmt.Errorf("%w: %q is active", ErrContestClosed, con.Name)
	}

	return nil
}

// cleanHashtags trims each tag and rejects anything outside
// [A-Za-z0-9_]+, naming every offender.
func cleanHashtags(hashtags []string) ([]string, error) {
	tags := make([]string, 0, len(hashtags))

	var misses []string

	for _, tag := range hashtags {
		tag = strings.TrimSpace(tag)
		if !hashtagPattern.MatchString(tag) {
			misses = append(misses, tag)

			continue
		}

		tags = append(tags, tag)
	}

	if len(misses) > 0 {
		return nil, fmt.Errorf("%w: a hash tag should only be made with letters, numbers and underscores: %s",
			ErrValidation, strings.Join(misses, ","))
	}

	return tags, nil
}
