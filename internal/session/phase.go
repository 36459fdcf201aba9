// Package session tracks the query lifecycle: the coarse UI phase for the
// single-shot view and the message thread for the conversation view.
package session

import (
	"strings"

	"github.com/curiobooks/curio/internal/curation"
)

// Phase is the coarse UI state gating which view is shown. Exactly one
// phase is active at a time; transitions are driven solely by the outcome
// of the latest request.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseResults
	PhaseEmpty
	PhaseError
)

// String returns the display label for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseResults:
		return "results"
	case PhaseEmpty:
		return "empty"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// PhaseController is the single-shot request state machine:
//
//	idle → loading → {results | empty | error} → idle | loading → …
//
// No state is terminal. Blank submissions and submissions while a request
// is in flight leave the state unchanged.
type PhaseController struct {
	phase    Phase
	response *curation.Response
	err      error
}

// NewPhaseController starts in PhaseIdle.
func NewPhaseController() *PhaseController {
	return &PhaseController{phase: PhaseIdle}
}

// Phase reports the current phase.
func (c *PhaseController) Phase() Phase {
	return c.phase
}

// Submit enters PhaseLoading for a non-blank query and reports whether the
// submission was accepted. A blank query, or a query submitted while a
// prior request is still loading, is a no-op.
func (c *PhaseController) Submit(query string) bool {
	if strings.TrimSpace(query) == "" {
		return false
	}
	if c.phase == PhaseLoading {
		return false
	}
	c.phase = PhaseLoading
	c.response = nil
	c.err = nil
	return true
}

// Resolve records a successful response: PhaseResults when it carries at
// least one book, PhaseEmpty otherwise regardless of any summary text.
func (c *PhaseController) Resolve(resp *curation.Response) {
	c.response = resp
	c.err = nil
	if resp != nil && len(resp.Results) > 0 {
		c.phase = PhaseResults
		return
	}
	c.phase = PhaseEmpty
}

// Fail records a request failure and enters PhaseError. The error is kept
// for display until the next submission or reset.
func (c *PhaseController) Fail(err error) {
	c.phase = PhaseError
	c.response = nil
	c.err = err
}

// Reset returns to PhaseIdle, discarding the last outcome.
func (c *PhaseController) Reset() {
	c.phase = PhaseIdle
	c.response = nil
	c.err = nil
}

// Response returns the latest successful response, nil outside
// PhaseResults/PhaseEmpty.
func (c *PhaseController) Response() *curation.Response {
	return c.response
}

// Err returns the latest failure, nil outside PhaseError.
func (c *PhaseController) Err() error {
	return c.err
}
