package types

// PendingChange describes what applying would do to one destination file.
// It is produced by a scan and never mutates the filesystem.
type PendingChange struct {
	// Path is the slash-separated display path relative to the target directory
	Path    string
	Section string
	Adapter string
	// IsConflict is set when the destination already exists
	IsConflict bool
	// IsIdentical is set when the existing file already matches after normalization.
	// It implies IsConflict.
	IsIdentical    bool
	PreviewContent *string
}

// IsNew reports whether the change creates a file
func (c PendingChange) IsNew() bool {
	return !c.IsConflict
}

// NeedsDecision reports whether applying would overwrite different content
func (c PendingChange) NeedsDecision() bool {
	return c.IsConflict && !c.IsIdentical
}

// ScanResult collects the pending changes of one adapter
type ScanResult struct {
	Adapter string
	Changes []PendingChange
}

// Add appends a change, stamping it with the result's adapter
func (r *ScanResult) Add(change PendingChange) {
	if change.Adapter == "" {
		change.Adapter = r.Adapter
	}
	r.Changes = append(r.Changes, change)
}

// Creates returns the changes that create new files
func (r *ScanResult) Creates() []PendingChange {
	return r.filter(PendingChange.IsNew)
}

// Conflicts returns the changes that would overwrite different content
func (r *ScanResult) Conflicts() []PendingChange {
	return r.filter(PendingChange.NeedsDecision)
}

// Identical returns the changes whose destination already matches
func (r *ScanResult) Identical() []PendingChange {
	return r.filter(func(c PendingChange) bool { return c.IsIdentical })
}

// HasConflicts reports whether any change needs a decision
func (r *ScanResult) HasConflicts() bool {
	return len(r.Conflicts()) > 0
}

// HasChanges reports whether applying would touch the filesystem
func (r *ScanResult) HasChanges() bool {
	for _, c := range r.Changes {
		if !c.IsIdentical {
			return true
		}
	}
	return false
}

func (r *ScanResult) filter(keep func(PendingChange) bool) []PendingChange {
	var out []PendingChange
	for _, c := range r.Changes {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// ApplyResult records what an apply pass did, in write order
type ApplyResult struct {
	Created   []string
	Updated   []string
	Skipped   []string
	Unchanged []string
}

func (r *ApplyResult) AddCreated(path string)   { r.Created = append(r.Created, path) }
func (r *ApplyResult) AddUpdated(path string)   { r.Updated = append(r.Updated, path) }
func (r *ApplyResult) AddSkipped(path string)   { r.Skipped = append(r.Skipped, path) }
func (r *ApplyResult) AddUnchanged(path string) { r.Unchanged = append(r.Unchanged, path) }

// Merge appends other's paths to r
func (r *ApplyResult) Merge(other *ApplyResult) {
	if other == nil {
		return
	}
	r.Created = append(r.Created, other.Created...)
	r.Updated = append(r.Updated, other.Updated...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Unchanged = append(r.Unchanged, other.Unchanged...)
}

// Total returns the number of paths recorded
func (r *ApplyResult) Total() int {
	return len(r.Created) + len(r.Updated) + len(r.Skipped) + len(r.Unchanged)
}

// Changed returns the number of files written
func (r *ApplyResult) Changed() int {
	return len(r.Created) + len(r.Updated)
}
