package view

import (
	"image"

	"github.com/soocke/autodraw-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PreviewPane shows the latest edge-map preview.
type PreviewPane interface {
	Update(img image.Image)
}

type previewPane struct {
	label     *LabelWidget
	prevPhoto *Img // last Tk photo image instance
}

const (
	// Max preview dimensions; the edge map itself can be near screen size.
	maxPreviewW = 720
	maxPreviewH = 480
)

// NewPreviewPane creates the preview label and grids it at the given row.
func NewPreviewPane(row int) PreviewPane {
	placeholder := image.NewRGBA(image.Rect(0, 0, 200, 120))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	return &previewPane{label: label, prevPhoto: photo}
}

// Update replaces the displayed preview. The previous Tk photo is deleted
// first so obsolete pixel buffers are not retained across regenerations.
func (v *previewPane) Update(img image.Image) {
	if v.label == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, maxPreviewW, maxPreviewH)
	pngBytes := images.EncodePNG(scaled)
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	photo := NewPhoto(Data(pngBytes))
	v.prevPhoto = photo
	v.label.Configure(Image(photo))
}
