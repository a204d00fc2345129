package untappdweb

import (
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.openly.dev/pointy"
	"go.uber.org/multierr"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// ParseBeer scrapes a beer page into a catalog Beer, following the
// brewery link for its canonical URL unless followBrewery is false.
func (u *UntappedWebIntegration) ParseBeer(url string, followBrewery bool) (*model.Beer, error) {
	collector := u.newCollector()

	var (
		errs       error
		breweryURL string
	)

	result := &model.Beer{}

	collector.OnResponse(func(response *colly.Response) {
		result.UntappdURL = pointy.String(response.Request.URL.String())
	})

	collector.OnHTML("div.name", func(element *colly.HTMLElement) {
		// The page repeats the name block; the one with an h1 is the
		// title block.
		if result.Name != "" {
			return
		}

		name := strings.TrimSpace(element.ChildText("h1"))
		if name == "" {
			return
		}

		result.Name = name
		result.Brewery = strings.TrimSpace(element.ChildText("a"))
		result.Style = strings.TrimSpace(element.ChildText("p.style"))
		breweryURL = element.Request.AbsoluteURL(element.ChildAttr("a", "href"))
	})

	multierr.AppendInto(&errs, collector.Visit(url))

	if errs != nil {
		return nil, errs
	}

	if result.Name == "" {
		return nil, fmt.Errorf("%w: expected a beer page at %s", ErrParse, url)
	}

	if result.Brewery == "" || breweryURL == "" {
		return nil, fmt.Errorf("%w: could not find expected brewery link in %s", ErrParse, url)
	}

	if followBrewery {
		brewery, err := u.ParseBrewery(breweryURL)
		if err != nil {
			return nil, err
		}

		result.BreweryURL = brewery.UntappdURL
	} else {
		result.BreweryURL = pointy.String(breweryURL)
	}

	return result, nil
}
