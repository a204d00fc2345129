package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/nvembar/onehundredbeers/pkg/ingest"
	"github.com/nvembar/onehundredbeers/pkg/model"
)

func TestExtractHashtags(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{name: "no tags", description: "just a tasty beer", want: nil},
		{name: "single tag", description: "great night #beerfest", want: []string{"beerfest"}},
		{name: "several tags", description: "#beerfest with friends #roadtrip", want: []string{"beerfest", "roadtrip"}},
		{name: "punctuation ends a tag", description: "loved it #beerfest!", want: []string{"beerfest"}},
		{name: "underscores and digits", description: "#summer_2016", want: []string{"summer_2016"}},
		{name: "bare hash ignored", description: "meet at # the bar", want: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ingest.ExtractHashtags(tc.description))
		})
	}
}

func TestMatchBonuses(t *testing.T) {
	bonuses := []model.ContestBonus{
		{Model: gorm.Model{ID: 1}, Name: "Event Bonus", Hashtags: []string{"beerfest", "brewfest"}},
		{Model: gorm.Model{ID: 2}, Name: "Road Trip", Hashtags: []string{"roadtrip"}},
	}

	tests := []struct {
		name string
		tags []string
		want []uint
	}{
		{name: "no tags", tags: nil, want: nil},
		{name: "no intersection", tags: []string{"cheers"}, want: nil},
		{name: "single match", tags: []string{"roadtrip"}, want: []uint{2}},
		{name: "both bonuses", tags: []string{"roadtrip", "beerfest"}, want: []uint{1, 2}},
		{name: "two tags of one bonus count once", tags: []string{"beerfest", "brewfest"}, want: []uint{1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ingest.MatchBonuses(tc.tags, bonuses))
		})
	}
}
