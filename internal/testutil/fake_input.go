// Package testutil provides scriptable desktop fakes for tests.
package testutil

import (
	"context"
	"sync"

	"github.com/frudas24/cursorclip/internal/winapi"
)

// FakeInput implements winapi.InputSource and lets tests inject events.
type FakeInput struct {
	mu      sync.Mutex
	handler winapi.InputHandler
	hotkeys []winapi.Hotkey
	ready   chan struct{}
	once    sync.Once
	Err     error
}

// Ensure FakeInput implements the interface.
var _ winapi.InputSource = (*FakeInput)(nil)

// NewFakeInput returns an input source that blocks until its context ends.
func NewFakeInput() *FakeInput {
	return &FakeInput{ready: make(chan struct{})}
}

// Run records the handler and blocks until ctx is done.
func (f *FakeInput) Run(ctx context.Context, hotkeys []winapi.Hotkey, h winapi.InputHandler) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	f.handler = h
	f.hotkeys = append([]winapi.Hotkey(nil), hotkeys...)
	f.mu.Unlock()
	f.once.Do(func() { close(f.ready) })
	<-ctx.Done()
	return nil
}

// Ready is closed once Run has registered its handler.
func (f *FakeInput) Ready() <-chan struct{} {
	return f.ready
}

// Hotkeys returns the hotkeys passed to Run.
func (f *FakeInput) Hotkeys() []winapi.Hotkey {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]winapi.Hotkey(nil), f.hotkeys...)
}

// PressHotkey delivers a hotkey event.
func (f *FakeInput) PressHotkey(id int) {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h != nil {
		h.OnHotkey(id)
	}
}

// PressKey delivers a key-down event.
func (f *FakeInput) PressKey(vk uint32) {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h != nil {
		h.OnKeyDown(vk)
	}
}
