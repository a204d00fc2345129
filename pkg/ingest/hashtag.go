package ingest

import (
	"regexp"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

var hashtagToken = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags pulls the hashtag-like tokens out of an entry's
// free-text description, without the leading '#'.
func ExtractHashtags(description string) []string {
	matches := hashtagToken.FindAllStringSubmatch(description, -1)
	if matches == nil {
		return nil
	}

	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}

	return tags
}

// MatchBonuses returns the IDs of the bonuses whose hashtag set
// intersects the extracted tags, in bonus order, each at most once.
func MatchBonuses(tags []string, bonuses []model.ContestBonus) []uint {
	if len(tags) == 0 {
		return nil
	}

	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}

	var ids []uint

	for i := range bonuses {
		for _, tag := range bonuses[i].Hashtags {
			if _, found := tagSet[tag]; found {
				ids = append(ids, bonuses[i].ID)

				break
			}
		}
	}

	return ids
}
