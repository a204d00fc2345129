package contest

import "errors"

var (
	// ErrContestMismatch means an entity and a player belong to different
	// contests. This is a caller bug and is never retried.
	ErrContestMismatch = errors.New("entity not associated with contest")

	// ErrNoSuchAssociation means a contest beer or brewery lookup failed.
	ErrNoSuchAssociation = errors.New("no such contest association")

	// ErrNoSuchBonus means a bonus name did not resolve within the contest.
	ErrNoSuchBonus = errors.New("no such bonus for contest")

	// ErrValidation covers bad input that aborts the enclosing transaction:
	// malformed hashtags, hashtag conflicts, name collisions.
	ErrValidation = errors.New("validation error")

	// ErrContestClosed means a catalog mutation was attempted on an active
	// contest while the policy forbids it.
	ErrContestClosed = errors.New("contest no longer accepts catalog changes")
)
