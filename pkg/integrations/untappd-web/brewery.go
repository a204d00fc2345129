package untappdweb

import (
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.openly.dev/pointy"
	"go.uber.org/multierr"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// ParseBrewery scrapes a brewery page into a catalog Brewery.
func (u *UntappedWebIntegration) ParseBrewery(url string) (*model.Brewery, error) {
	collector := u.newCollector()

	var errs error

	result := &model.Brewery{}

	collector.OnResponse(func(response *colly.Response) {
		result.UntappdURL = pointy.String(response.Request.URL.String())
	})

	collector.OnHTML("div.name", func(element *colly.HTMLElement) {
		if result.Name != "" {
			return
		}

		name := strings.TrimSpace(element.ChildText("h1"))
		if name == "" {
			return
		}

		result.Name = name

		if location := strings.TrimSpace(element.ChildText("p.brewery")); location != "" {
			result.Location = pointy.String(location)
		}
	})

	multierr.AppendInto(&errs, collector.Visit(url))

	if errs != nil {
		return nil, errs
	}

	if result.Name == "" {
		return nil, fmt.Errorf("%w: expected a brewery page at %s", ErrParse, url)
	}

	return result, nil
}
