// Package prompt provides operator confirmation adapters.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mdforge/mdforge/internal/ports"
)

// AffirmativeToken is the exact response required to approve a destructive
// action. Anything else counts as a decline.
const AffirmativeToken = "yes"

// Terminal asks for confirmation on an interactive reader/writer pair.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a Terminal confirmer.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm displays the action and its consequence, then requires the literal
// affirmative token. Any read error is treated as a decline.
func (t *Terminal) Confirm(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(t.out, "\nWARNING: %s\n", prompt)
	fmt.Fprintf(t.out, "Type %q to continue, anything else to abort: ", AffirmativeToken)

	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	return strings.ToLower(strings.TrimSpace(line)) == AffirmativeToken, nil
}

// AutoApprove answers every confirmation affirmatively. Used when the
// operator pre-approved destructive actions with --yes.
type AutoApprove struct{}

// NewAutoApprove creates an AutoApprove confirmer.
func NewAutoApprove() *AutoApprove {
	return &AutoApprove{}
}

// Confirm always approves.
func (a *AutoApprove) Confirm(_ context.Context, _ string) (bool, error) {
	return true, nil
}

var (
	_ ports.Confirmer = (*Terminal)(nil)
	_ ports.Confirmer = (*AutoApprove)(nil)
)
