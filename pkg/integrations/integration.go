package integrations

import (
	"go.uber.org/zap"

	untappdweb "github.com/nvembar/onehundredbeers/pkg/integrations/untappd-web"
	"github.com/nvembar/onehundredbeers/pkg/model"
)

// Integration parses external checkin, beer, and brewery pages into
// structured records. Parse failures surface as typed errors; the
// contest core treats these strictly as enrichment and never depends on
// them for correctness.
type Integration interface {
	ParseCheckin(url string) (*model.UnvalidatedCheckin, error)
	ParseBeer(url string, followBrewery bool) (*model.Beer, error)
	ParseBrewery(url string) (*model.Brewery, error)
}

func GetIntegration(name string, logger *zap.Logger) Integration {
	if name == untappdweb.IntegrationName {
		return untappdweb.NewUntappedWebIntegration(logger)
	}

	return nil
}
