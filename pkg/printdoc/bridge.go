package printdoc

import (
	"context"
	"sync"
)

// Bridge hands a rendered view to the platform's print/export flow. The form
// never consumes a result beyond the error.
type Bridge interface {
	RenderToDocument(ctx context.Context, view *View, title string, style PageStyle) error
}

// BridgeFunc adapts a function to Bridge.
type BridgeFunc func(ctx context.Context, view *View, title string, style PageStyle) error

// RenderToDocument calls f.
func (f BridgeFunc) RenderToDocument(ctx context.Context, view *View, title string, style PageStyle) error {
	return f(ctx, view, title, style)
}

// Print is the guarded print call: when the view or the bridge is missing the
// call is a no-op.
func Print(ctx context.Context, bridge Bridge, view *View, title string, style PageStyle) error {
	if bridge == nil || view == nil {
		return nil
	}
	return bridge.RenderToDocument(ctx, view, title, style)
}

// Printer keeps a reference to the currently mounted view so front ends can
// wire a print action before anything has been rendered.
type Printer struct {
	mu     sync.RWMutex
	bridge Bridge
	style  PageStyle
	view   *View
}

// NewPrinter binds a bridge and a page style.
func NewPrinter(bridge Bridge, style PageStyle) *Printer {
	return &Printer{bridge: bridge, style: style}
}

// Mount records view as the current rendered view.
func (p *Printer) Mount(view *View) {
	p.mu.Lock()
	p.view = view
	p.mu.Unlock()
}

// Unmount drops the current view; later Print calls become no-ops.
func (p *Printer) Unmount() {
	p.Mount(nil)
}

// Mounted reports whether a view is available.
func (p *Printer) Mounted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view != nil
}

// Print renders the mounted view under title. It does nothing when no view is
// mounted.
func (p *Printer) Print(ctx context.Context, title string) error {
	if p == nil {
		return nil
	}
	p.mu.RLock()
	view, bridge, style := p.view, p.bridge, p.style
	p.mu.RUnlock()
	return Print(ctx, bridge, view, title, style)
}
