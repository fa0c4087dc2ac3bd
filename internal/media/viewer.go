package media

import "github.com/spec-kit/case-service/internal/domain"

const (
	minZoom  = 0.5
	maxZoom  = 4.0
	zoomStep = 0.25
)

// Viewer is the navigation state of a multi-item attachment viewer.
type Viewer struct {
	Items    []domain.Attachment `json:"items"`
	Index    int                 `json:"index"`
	Zoom     float64             `json:"zoom"`
	Rotation int                 `json:"rotation"`
	PanX     float64             `json:"pan_x"`
	PanY     float64             `json:"pan_y"`
}

func newViewer(items []domain.Attachment, index int) *Viewer {
	v := &Viewer{Items: items, Index: index}
	v.Reset()
	return v
}

// Current returns the attachment on screen.
func (v *Viewer) Current() domain.Attachment {
	return v.Items[v.Index]
}

// Next moves forward, wrapping at the end.
func (v *Viewer) Next() {
	if len(v.Items) == 0 {
		return
	}
	v.Index = (v.Index + 1) % len(v.Items)
	v.Reset()
}

// Prev moves backward, wrapping at the start.
func (v *Viewer) Prev() {
	if len(v.Items) == 0 {
		return
	}
	v.Index = (v.Index - 1 + len(v.Items)) % len(v.Items)
	v.Reset()
}

// ZoomIn enlarges by one step up to the maximum.
func (v *Viewer) ZoomIn() {
	v.Zoom = min(v.Zoom+zoomStep, maxZoom)
}

// ZoomOut shrinks by one step down to the minimum. Pan resets at 1x or below.
func (v *Viewer) ZoomOut() {
	v.Zoom = max(v.Zoom-zoomStep, minZoom)
	if v.Zoom <= 1 {
		v.PanX, v.PanY = 0, 0
	}
}

// Rotate turns the item clockwise by 90 degrees.
func (v *Viewer) Rotate() {
	v.Rotation = (v.Rotation + 90) % 360
}

// Pan shifts the item; only meaningful when zoomed in.
func (v *Viewer) Pan(dx, dy float64) {
	if v.Zoom <= 1 {
		return
	}
	v.PanX += dx
	v.PanY += dy
}

// Reset restores zoom, rotation and pan.
func (v *Viewer) Reset() {
	v.Zoom = 1
	v.Rotation = 0
	v.PanX, v.PanY = 0, 0
}
