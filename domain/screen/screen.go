package screen

import (
	"errors"
	"sync"
)

// Geometry is the primary display resolution in pixels.
type Geometry struct {
	Width  int
	Height int
}

// Provider resolves the display resolution once and caches it for the
// process lifetime. All coordinate mapping derives from this value, so a
// probe failure is fatal for the pipeline.
type Provider struct {
	probe func() (Geometry, error)
	once  sync.Once
	geo   Geometry
	err   error
}

// NewProvider returns a Provider backed by the OS display query.
func NewProvider() *Provider {
	return &Provider{probe: resolve}
}

// NewProviderFunc returns a Provider backed by a custom probe. Used by tests
// and by callers that already know the target resolution.
func NewProviderFunc(probe func() (Geometry, error)) *Provider {
	return &Provider{probe: probe}
}

// Geometry returns the cached display resolution, probing on first call.
func (p *Provider) Geometry() (Geometry, error) {
	p.once.Do(func() {
		if p.probe == nil {
			p.err = errors.New("screen: no probe configured")
			return
		}
		g, err := p.probe()
		if err != nil {
			p.err = err
			return
		}
		if g.Width <= 0 || g.Height <= 0 {
			p.err = errors.New("screen: probe returned non-positive dimensions")
			return
		}
		p.geo = g
	})
	return p.geo, p.err
}
