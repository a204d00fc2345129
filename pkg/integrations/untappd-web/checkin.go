package untappdweb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"go.openly.dev/pointy"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// Checkin pages carry the star rating as a CSS class like "r350".
var ratingClass = regexp.MustCompile(`^r[0-9]{3}$`)

const checkinTimeLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// ParseCheckin scrapes a checkin page into a partially filled
// UnvalidatedCheckin: canonical beer/brewery names and URLs, checkin
// time, and the optional photo and rating. It is used to back-fill
// records the feed ingestion created from title text alone.
func (u *UntappedWebIntegration) ParseCheckin(url string) (*model.UnvalidatedCheckin, error) {
	collector := u.newCollector()

	var errs error

	result := &model.UnvalidatedCheckin{UntappdCheckin: url}

	collector.OnHTML("title", func(element *colly.HTMLElement) {
		result.UntappdTitle = strings.TrimSpace(element.Text)
	})

	collector.OnHTML("div.beer a", func(element *colly.HTMLElement) {
		href := element.Attr("href")

		switch {
		case strings.HasPrefix(href, "/b/"):
			result.Beer = strings.TrimSpace(element.Text)
			result.BeerURL = pointy.String(element.Request.AbsoluteURL(href))
		case strings.HasPrefix(href, "/brewery/"):
			result.Brewery = strings.TrimSpace(element.Text)
			result.BreweryURL = pointy.String(element.Request.AbsoluteURL(href))
		}
	})

	collector.OnHTML("p.time", func(element *colly.HTMLElement) {
		checkinTime, err := time.Parse(checkinTimeLayout, strings.TrimSpace(element.Text))
		if err != nil {
			u.logger.Info("could not parse checkin time", zap.String("time", element.Text))

			return
		}

		result.UntappdCheckinDate = checkinTime
	})

	collector.OnHTML("div.photo a", func(element *colly.HTMLElement) {
		if image := element.Attr("data-image"); image != "" {
			result.PhotoURL = pointy.String(image)
		}
	})

	collector.OnHTML("span.rating", func(element *colly.HTMLElement) {
		for _, class := range strings.Fields(element.Attr("class")) {
			if ratingClass.MatchString(class) {
				rating, err := strconv.Atoi(class[1:])
				if err == nil {
					result.Rating = pointy.Int(rating)
				}
			}
		}
	})

	collector.OnError(func(response *colly.Response, err error) {
		u.logger.Error("error while scraping checkin page",
			zap.String("url", response.Request.URL.String()), zap.Error(err))
	})

	multierr.AppendInto(&errs, collector.Visit(url))

	if errs != nil {
		return nil, errs
	}

	if result.Beer == "" || result.BeerURL == nil {
		return nil, fmt.Errorf("%w: no beer information on checkin page %s", ErrParse, url)
	}

	return result, nil
}
