package ports

import "context"

// Confirmer gates irreversible actions behind explicit operator approval.
// Implementations may prompt a terminal or answer from a pre-approved flag;
// returning false means the operator declined and no mutation may happen.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}
