package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"

	"github.com/npillmayer/tyse/core/dimen"
)

// Device is the viewport/media context selectors and relative units are
// resolved against. The styling engine holds one Device per medium.
//
// Caches of the traversal engine may embed viewport-relative resolved
// lengths, so a change of the screen size must be propagated to them; see
// the resize listeners.
type Device struct {
	mu       sync.Mutex
	width    dimen.DU
	height   dimen.DU
	onResize []func()
}

// NewDevice creates a device for a given viewport size.
func NewDevice(width, height dimen.DU) *Device {
	return &Device{width: width, height: height}
}

// Viewport returns the current viewport size.
func (d *Device) Viewport() (width, height dimen.DU) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.width, d.height
}

// SetViewport changes the viewport size. If the size actually changed, all
// registered resize listeners are notified (synchronously, in registration
// order) and true is returned.
func (d *Device) SetViewport(width, height dimen.DU) bool {
	d.mu.Lock()
	changed := d.width != width || d.height != height
	d.width, d.height = width, height
	listeners := d.onResize
	d.mu.Unlock()
	if !changed {
		return false
	}
	tracer().Infof("device viewport changed to %d×%d", width, height)
	for _, l := range listeners {
		l()
	}
	return true
}

// NotifyOnResize registers a listener called whenever the viewport size
// changes. The traversal engine registers its cache eviction here.
func (d *Device) NotifyOnResize(listener func()) {
	if listener == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onResize = append(d.onResize, listener)
}

func (d *Device) String() string {
	w, h := d.Viewport()
	return fmt.Sprintf("Device(%d×%d)", w, h)
}
