package presenter

import (
	"bytes"
	"image"
	"image/png"
	"log/slog"
)

// PreviewView displays the decoded edge preview.
type PreviewView interface {
	UpdatePreview(img image.Image)
}

// PreviewPresenter pushes freshly generated edge previews to the view. The
// preview ID is the change detector: every pipeline regeneration carries a
// new ID, so comparing IDs is enough to skip redundant redraws and to never
// show a stale bitmap.
type PreviewPresenter struct {
	gens   GenerationSource
	view   PreviewView
	logger *slog.Logger
	lastID string
}

// NewPreviewPresenter returns a presenter reading from gens into view.
func NewPreviewPresenter(gens GenerationSource, view PreviewView, logger *slog.Logger) *PreviewPresenter {
	return &PreviewPresenter{gens: gens, view: view, logger: logger}
}

// Tick refreshes the view when a new preview generation is available.
func (p *PreviewPresenter) Tick() {
	if p == nil || p.gens == nil || p.view == nil {
		return
	}
	gen := p.gens.Latest()
	if gen == nil || gen.Preview == nil || gen.Preview.ID == p.lastID {
		return
	}
	img, err := png.Decode(bytes.NewReader(gen.Preview.PNG))
	if err != nil {
		if p.logger != nil {
			p.logger.Error("preview decode", "id", gen.Preview.ID, "error", err)
		}
		// Remember the broken ID so we do not retry every tick.
		p.lastID = gen.Preview.ID
		return
	}
	p.lastID = gen.Preview.ID
	p.view.UpdatePreview(img)
}
