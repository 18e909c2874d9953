package conflict

import (
	"github.com/arthur-debert/aidot/pkg/types"
)

// ExistingLoader returns the current content of a change's destination, or nil
type ExistingLoader func(change types.PendingChange) *string

// PreResolve asks the per-file question for every change that needs a
// decision, before anything is written. An "all" answer becomes the
// fallback for the remaining files and ends the questioning.
func PreResolve(console Console, changes []types.PendingChange, load ExistingLoader) *Mode {
	decisions := make(map[string]bool)
	for _, change := range changes {
		if !change.NeedsDecision() {
			continue
		}
		var existing *string
		if load != nil {
			existing = load(change)
		}
		write, forAll := askFile(console, change.Path, existing, change.PreviewContent)
		if forAll {
			return PreResolved(decisions, &write)
		}
		decisions[change.Path] = write
	}
	return PreResolved(decisions, nil)
}
