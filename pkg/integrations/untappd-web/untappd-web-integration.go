package untappdweb

import (
	"errors"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const IntegrationName = "untappd_web"

const userAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:15.0) Gecko/20100101 Firefox/15.0.1"

// ErrParse marks a page that did not contain the structure we expect.
var ErrParse = errors.New("could not parse untappd page")

type UntappedWebIntegration struct {
	logger *zap.Logger
}

func NewUntappedWebIntegration(logger *zap.Logger) *UntappedWebIntegration {
	return &UntappedWebIntegration{logger: logger}
}

func (u *UntappedWebIntegration) newCollector() *colly.Collector {
	return colly.NewCollector(
		colly.AllowedDomains("untappd.com"),
		colly.UserAgent(userAgent),
	)
}
