package catalog

import (
	"context"
	"fmt"
)

// Probe adapts a loaded catalog to the health-check interface exposed by the
// API chassis. A loaded catalog cannot become unhealthy (it is immutable),
// so the probe only guards against wiring mistakes.
type Probe struct {
	Catalog *Catalog
}

// Name identifies the probe in the health endpoint's component map.
func (p *Probe) Name() string { return "catalog" }

// Check reports healthy as long as a non-empty catalog is wired.
func (p *Probe) Check(_ context.Context) error {
	if p.Catalog == nil || p.Catalog.Len() == 0 {
		return fmt.Errorf("standards catalog is not loaded")
	}
	return nil
}
