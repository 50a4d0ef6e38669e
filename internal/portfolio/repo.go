package portfolio

import "context"

// Repo persists one serialized override document per language. Raw bytes
// cross this boundary so that a corrupt stored document can be detected and
// recovered from by the service rather than poisoning the repo.
type Repo interface {
	// Load returns the stored override, or ok=false when none exists.
	Load(ctx context.Context, lang Lang) (raw []byte, ok bool, err error)
	// Save replaces the override for a language with the given document.
	Save(ctx context.Context, lang Lang, raw []byte) error
	// Delete removes the override; deleting a missing override is a no-op.
	Delete(ctx context.Context, lang Lang) error
}
