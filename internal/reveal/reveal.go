// Package reveal implements the cosmetic typewriter disclosure of summary
// text. The full text is already received before the reveal starts; this is
// presentation pacing, not streaming.
package reveal

import "time"

const (
	// DefaultStep is how many runes each tick uncovers.
	DefaultStep = 3
	// TickInterval is the cadence of reveal ticks.
	TickInterval = 18 * time.Millisecond
)

// Reveal walks a fixed text in rune steps. Operating on runes keeps Hangul
// and other multibyte text intact; a byte prefix could split a character.
type Reveal struct {
	runes []rune
	step  int
	pos   int
}

// New starts a reveal over text with the default step.
func New(text string) *Reveal {
	return NewStep(text, DefaultStep)
}

// NewStep starts a reveal uncovering step runes per Advance. A step below 1
// is treated as 1.
func NewStep(text string, step int) *Reveal {
	if step < 1 {
		step = 1
	}
	return &Reveal{runes: []rune(text), step: step}
}

// Advance uncovers the next step of text and reports whether the reveal
// has reached the end. The revealed length never exceeds the source text
// and reaches it deterministically.
func (r *Reveal) Advance() bool {
	r.pos += r.step
	if r.pos >= len(r.runes) {
		r.pos = len(r.runes)
	}
	return r.Done()
}

// Current returns the revealed prefix.
func (r *Reveal) Current() string {
	return string(r.runes[:r.pos])
}

// Done reports whether the full text is visible.
func (r *Reveal) Done() bool {
	return r.pos >= len(r.runes)
}

// Skip jumps to the end of the text.
func (r *Reveal) Skip() {
	r.pos = len(r.runes)
}

// Len returns the total rune length of the text.
func (r *Reveal) Len() int {
	return len(r.runes)
}
