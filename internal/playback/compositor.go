package playback

import (
	"image"
	"image/color"
	"image/draw"
	"sort"
	"sync"
)

// defaultBackground is the clear color when none is configured.
var defaultBackground = color.RGBA{A: 0xff}

// Compositor paints the active visual layers onto a single output surface.
// Entries are painted bottom-to-top: highest track order first, so order 0
// ends up closest to the viewer.
type Compositor struct {
	mu         sync.Mutex
	surface    *image.RGBA
	background color.RGBA
}

// NewCompositor builds a compositor with the given clear color. The output
// surface is supplied separately via SetSurface; painting before that is a
// no-op.
func NewCompositor(background color.RGBA) *Compositor {
	return &Compositor{background: background}
}

// SetSurface installs the output surface.
func (c *Compositor) SetSurface(surface *image.RGBA) {
	c.mu.Lock()
	c.surface = surface
	c.mu.Unlock()
}

// Paint clears the surface and draws every ready visual entry in stacking
// order. Entries whose resource cannot produce a frame yet are skipped for
// this frame rather than painted as garbage.
func (c *Compositor) Paint(entries []*ActiveEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return
	}

	bounds := c.surface.Bounds()
	draw.Draw(c.surface, bounds, image.NewUniform(c.background), image.Point{}, draw.Src)

	layers := make([]*ActiveEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Visual() {
			layers = append(layers, entry)
		}
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return layers[i].TrackOrder > layers[j].TrackOrder
	})

	for _, entry := range layers {
		if !entry.Resource.Ready() {
			continue
		}
		frame := entry.Resource.Frame()
		if frame == nil {
			continue
		}
		drawScaled(c.surface, frame, AspectFitRect(frame.Bounds(), bounds))
	}
}

// Snapshot returns a copy of the current surface, or nil when none is set.
func (c *Compositor) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.surface == nil {
		return nil
	}
	clone := image.NewRGBA(c.surface.Bounds())
	copy(clone.Pix, c.surface.Pix)
	return clone
}

// AspectFitRect computes the largest rectangle with src's aspect ratio that
// fits inside dst, centered on both axes.
func AspectFitRect(src, dst image.Rectangle) image.Rectangle {
	srcW, srcH := src.Dx(), src.Dy()
	dstW, dstH := dst.Dx(), dst.Dy()
	if srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return image.Rectangle{}
	}

	fitW := dstW
	fitH := srcH * dstW / srcW
	if fitH > dstH {
		fitH = dstH
		fitW = srcW * dstH / srcH
	}

	x0 := dst.Min.X + (dstW-fitW)/2
	y0 := dst.Min.Y + (dstH-fitH)/2
	return image.Rect(x0, y0, x0+fitW, y0+fitH)
}

// drawScaled paints src into the target rectangle with nearest-neighbor
// sampling.
func drawScaled(dst *image.RGBA, src image.Image, target image.Rectangle) {
	srcBounds := src.Bounds()
	targetW, targetH := target.Dx(), target.Dy()
	if targetW <= 0 || targetH <= 0 {
		return
	}

	for y := 0; y < targetH; y++ {
		srcY := srcBounds.Min.Y + y*srcBounds.Dy()/targetH
		for x := 0; x < targetW; x++ {
			srcX := srcBounds.Min.X + x*srcBounds.Dx()/targetW
			dst.Set(target.Min.X+x, target.Min.Y+y, src.At(srcX, srcY))
		}
	}
}
