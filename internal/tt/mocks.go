package tt

import (
	"context"
	"errors"
	"sync"

	"github.com/rickchristie/piece"
	"github.com/tmc/langchaingo/llms"
)

// -----------------------------------------------------------------------------
// Mock Pieces
// -----------------------------------------------------------------------------

// Leaf is a piece that renders a fixed string.
type Leaf string

// Render implements piece.Piece.
func (l Leaf) Render() string {
	return string(l)
}

// Leaves converts strings into pieces.
func Leaves(texts ...string) []piece.Piece {
	out := make([]piece.Piece, len(texts))
	for i, text := range texts {
		out[i] = Leaf(text)
	}
	return out
}

// CountingPiece renders a fixed string and counts how many times it was rendered.
// It also appends its text to a shared Trace, if set, to record render order.
type CountingPiece struct {
	Text  string
	Trace *Trace

	mu    sync.Mutex
	calls int
}

// Render implements piece.Piece.
func (c *CountingPiece) Render() string {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.Trace != nil {
		c.Trace.Add(c.Text)
	}
	return c.Text
}

// Calls returns how many times Render was called.
func (c *CountingPiece) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Trace records the order in which pieces rendered.
type Trace struct {
	mu    sync.Mutex
	items []string
}

// Add appends an entry.
func (t *Trace) Add(item string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.items = append(t.items, item)
}

// Items returns a copy of the recorded entries.
func (t *Trace) Items() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.items...)
}

// ErrInconsistent is the value PanicPiece panics with.
var ErrInconsistent = errors.New("derived value inconsistent")

// PanicPiece panics with ErrInconsistent when rendered.
type PanicPiece struct{}

// Render implements piece.Piece.
func (PanicPiece) Render() string {
	panic(ErrInconsistent)
}

// Box is a mutable composite used to build cyclic trees in tests. Real composites are
// immutable; Box exists only because a cycle cannot be built otherwise.
type Box struct {
	Items []piece.Piece
}

// Render implements piece.Piece.
func (b *Box) Render() string {
	out := ""
	for _, p := range b.Items {
		out += p.Render()
	}
	return out
}

// Children implements piece.Parent.
func (b *Box) Children() []piece.Piece {
	return b.Items
}

// -----------------------------------------------------------------------------
// Mock LLM
// -----------------------------------------------------------------------------

// MockLLM implements llms.Model and records the messages it receives.
type MockLLM struct {
	mu       sync.Mutex
	response string
	info     map[string]any
	err      error

	// CapturedMessages holds the messages passed to each GenerateContent call.
	CapturedMessages [][]llms.MessageContent
}

// NewMockLLM creates a MockLLM that answers every call with response.
func NewMockLLM(response string) *MockLLM {
	return &MockLLM{response: response}
}

// WithError makes every call fail with err.
func (m *MockLLM) WithError(err error) *MockLLM {
	m.err = err
	return m
}

// WithGenerationInfo sets the provider info attached to every response choice.
func (m *MockLLM) WithGenerationInfo(info map[string]any) *MockLLM {
	m.info = info
	return m
}

// Calls returns the number of GenerateContent calls so far.
func (m *MockLLM) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CapturedMessages)
}

// GenerateContent implements llms.Model.
func (m *MockLLM) GenerateContent(
	_ context.Context,
	messages []llms.MessageContent,
	_ ...llms.CallOption,
) (*llms.ContentResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CapturedMessages = append(m.CapturedMessages, messages)
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content:        m.response,
			StopReason:     "stop",
			GenerationInfo: m.info,
		}},
	}, nil
}

// Call implements llms.Model.
func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Compile-time checks.
var (
	_ piece.Piece  = Leaf("")
	_ piece.Piece  = (*CountingPiece)(nil)
	_ piece.Parent = (*Box)(nil)
	_ llms.Model   = (*MockLLM)(nil)
)
