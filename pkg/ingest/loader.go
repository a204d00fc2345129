package ingest

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// Store is the slice of persistence the loader needs, implemented by the
// repository package.
type Store interface {
	ContestPlayersForPlayer(ctx context.Context, playerID uint, contestID *uint) ([]model.ContestPlayer, error)
	BonusesForContest(ctx context.Context, contestID uint) ([]model.ContestBonus, error)
	SeenCheckin(ctx context.Context, contestPlayerID uint, untappdCheckin string) (bool, error)
	CreateUnvalidatedCheckin(ctx context.Context, checkin *model.UnvalidatedCheckin) error
	MarkPossibleMatches(ctx context.Context, contestPlayerID uint, contestID uint) error
	SaveContestPlayer(ctx context.Context, player *model.ContestPlayer) error
}

// LoadOptions narrows an ingestion run.
type LoadOptions struct {
	// ContestID restricts the run to one of the player's contests.
	ContestID *uint
	// FromDate raises the lower bound of the scan window. The effective
	// bound is the later of this and the stored high-water mark.
	FromDate *time.Time
}

// LoadStats reports what one ingestion run did for a player.
type LoadStats struct {
	Created   int
	Skipped   int
	Malformed int
}

// Loader turns raw feed entries into unvalidated checkins. Score state is
// never touched here; only the ingestion high-water mark advances.
type Loader struct {
	store  Store
	source FeedSource
	logger *zap.Logger
}

func NewLoader(store Store, source FeedSource, logger *zap.Logger) *Loader {
	return &Loader{store: store, source: source, logger: logger}
}

// LoadPlayerCheckins fetches the player's feed once and scans it for each
// of their contest memberships. Entries are kept when they fall inside
// the contest window, after the lower bound, and have not been seen
// before. The high-water mark is written only after a membership's scan
// completes, so a failure never advances it past the point of failure.
func (l *Loader) LoadPlayerCheckins(ctx context.Context, player *model.Player, opts LoadOptions) (*LoadStats, error) {
	stats := &LoadStats{}

	if player.UntappdRSS == nil || *player.UntappdRSS == "" {
		l.logger.Info("player has no feed to load", zap.String("player", player.Username))

		return stats, nil
	}

	entries, err := l.source.Fetch(ctx, *player.UntappdRSS)
	if err != nil {
		return nil, err
	}

	memberships, err := l.store.ContestPlayersForPlayer(ctx, player.ID, opts.ContestID)
	if err != nil {
		return nil, err
	}

	for i := range memberships {
		if err := l.loadForMembership(ctx, &memberships[i], entries, opts, stats); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

func (l *Loader) loadForMembership(ctx context.Context, membership *model.ContestPlayer, entries []Entry, opts LoadOptions, stats *LoadStats) error {
	contest := membership.Contest

	after := membership.LastCheckinLoad
	if opts.FromDate != nil && opts.FromDate.After(after) {
		after = *opts.FromDate
	}

	bonuses, err := l.store.BonusesForContest(ctx, contest.ID)
	if err != nil {
		return err
	}

	lastDate := after

	for _, entry := range entries {
		published := entry.Published

		// The lower bound is strict; the contest end is inclusive.
		if published.Before(contest.StartDate) || published.After(contest.EndDate) || !published.After(after) {
			continue
		}

		seen, err := l.store.SeenCheckin(ctx, membership.ID, entry.Link)
		if err != nil {
			return err
		}

		if seen {
			stats.Skipped++

			continue
		}

		// The watermark covers malformed entries too; they are dropped for
		// good rather than re-parsed on every run.
		if published.After(lastDate) {
			lastDate = published
		}

		match, ok := ParseTitle(entry.Title)
		if !ok {
			l.logger.Info("title did not match checkin grammar",
				zap.String("player", membership.UserName), zap.String("title", entry.Title))
			stats.Malformed++

			continue
		}

		checkin := &model.UnvalidatedCheckin{
			ContestPlayerID:    membership.ID,
			UntappdCheckin:     entry.Link,
			UntappdTitle:       entry.Title,
			UntappdCheckinDate: published,
			Beer:               match.Beer,
			Brewery:            match.Brewery,
			PossibleBonuses:    MatchBonuses(ExtractHashtags(entry.Description), bonuses),
		}

		if err := l.store.CreateUnvalidatedCheckin(ctx, checkin); err != nil {
			return err
		}

		l.logger.Info("added unvalidated checkin",
			zap.String("player", membership.UserName),
			zap.Uint("contest_id", contest.ID),
			zap.String("checkin", entry.Link),
			zap.Time("date", published))
		stats.Created++
	}

	if err := l.store.MarkPossibleMatches(ctx, membership.ID, contest.ID); err != nil {
		return err
	}

	if lastDate.After(membership.LastCheckinLoad) {
		membership.LastCheckinLoad = lastDate

		return l.store.SaveContestPlayer(ctx, membership)
	}

	return nil
}
