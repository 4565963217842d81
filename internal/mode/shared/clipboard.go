// Package shared provides common utilities shared between mode controllers.
package shared

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies through the terminal (OSC 52) over SSH and inside
// multiplexers, and through the OS clipboard otherwise.
type SystemClipboard struct {
	// Out receives OSC 52 sequences. Nil means os.Stderr.
	Out io.Writer
}

// MockClipboard records the last copied text.
type MockClipboard struct {
	Text string
	Err  error
}

// Copy stores text and returns Err.
func (c *MockClipboard) Copy(text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Text = text
	return nil
}

// Copy copies text to the clipboard.
func (c SystemClipboard) Copy(text string) error {
	if !shouldUseOSC52() {
		return clipboard.WriteAll(text)
	}
	out := c.Out
	if out == nil {
		out = os.Stderr
	}
	_, err := io.WriteString(out, osc52Sequence(text))
	return err
}

// shouldUseOSC52 reports whether the OS clipboard is likely unreachable:
// remote sessions and terminal multiplexers.
func shouldUseOSC52() bool {
	for _, env := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

// osc52Sequence builds the escape sequence, wrapped for tmux or screen passthrough.
func osc52Sequence(text string) string {
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case os.Getenv("STY") != "":
		seq = seq.Screen()
	}
	return seq.String()
}
