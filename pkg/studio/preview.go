package studio

import (
	"sync"
	"time"
)

// Preview tracks the two URLs of the studio: the pending one, updated on
// every edit, and the committed one that only follows after the quiet
// period. onCommit runs with each newly committed URL.
type Preview struct {
	mu         sync.Mutex
	renderPath string
	state      FormState
	pending    string
	committed  string
	onCommit   func(url string)
	debounce   *Debouncer
}

// NewPreview starts from state with both URLs equal, as a freshly loaded
// page shows the image for its initial values.
func NewPreview(state FormState, renderPath string, quiet time.Duration, onCommit func(string)) *Preview {
	return newPreview(state, renderPath, quiet, onCommit, afterFunc)
}

func newPreview(state FormState, renderPath string, quiet time.Duration, onCommit func(string), schedule scheduleFunc) *Preview {
	p := &Preview{
		renderPath: renderPath,
		state:      state,
		onCommit:   onCommit,
	}
	p.pending = state.PreviewURL(renderPath)
	p.committed = p.pending
	p.debounce = newDebouncer(quiet, p.commit, schedule)
	return p
}

// Update replaces the form state. The pending URL changes immediately; the
// committed URL follows once edits pause.
func (p *Preview) Update(state FormState) {
	p.mu.Lock()
	p.state = state
	p.pending = state.PreviewURL(p.renderPath)
	p.mu.Unlock()
	p.debounce.Trigger()
}

// Set updates a single field.
func (p *Preview) Set(name, value string) {
	p.Update(p.State().With(name, value))
}

// State returns the current form state.
func (p *Preview) State() FormState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// PendingURL is the shareable URL for the current state.
func (p *Preview) PendingURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending
}

// CommittedURL is the URL the image currently shows.
func (p *Preview) CommittedURL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.committed
}

// Flush commits the pending URL now and closes the preview.
func (p *Preview) Flush() {
	p.debounce.Stop()
	p.commit()
}

// Close cancels any outstanding countdown. No commit happens afterwards.
func (p *Preview) Close() {
	p.debounce.Stop()
}

func (p *Preview) commit() {
	p.mu.Lock()
	if p.committed == p.pending {
		p.mu.Unlock()
		return
	}
	p.committed = p.pending
	url, fn := p.committed, p.onCommit
	p.mu.Unlock()

	if fn != nil {
		fn(url)
	}
}
