// ABOUTME: Field-by-field merge of an incoming entry into an existing one
// ABOUTME: Protected fields are never overwritten; returns an exact changed flag

package models

import "fmt"

// MergeOptions controls a merge call.
type MergeOptions struct {
	// Protected overrides the target's own protected-field list when
	// non-nil. entry_id, entry_type, and protected_fields are always
	// treated as protected regardless.
	Protected []string

	// OnSuppressed, when set, is invoked for every protected field whose
	// incoming value is non-empty and differs from the current one. It is
	// a report, never an error; the merge continues.
	OnSuppressed func(field string, current, incoming any)
}

// Merge reconciles in into e, field by field over e's declared variant
// fields. Non-protected fields take the incoming value whenever it differs
// under set-aware comparison; an empty incoming value is a valid new value
// and does overwrite. Returns true iff at least one field actually changed.
//
// Merging entries with different non-empty IDs fails with
// ErrIdentityMismatch and leaves e untouched.
func (e *Entry) Merge(in *Entry, opts MergeOptions) (bool, error) {
	if in.ID != "" && in.ID != e.ID {
		return false, fmt.Errorf("%w: %q vs %q", ErrIdentityMismatch, e.ID, in.ID)
	}

	protected := opts.Protected
	if protected == nil {
		protected = e.Protected
	}
	guard := make(map[string]bool, len(protected)+3)
	for _, name := range protected {
		guard[name] = true
	}
	// The protection policy itself can never be merged away.
	guard["entry_id"] = true
	guard["entry_type"] = true
	guard["protected_fields"] = true

	changed := false
	for _, f := range variantFields(e.Type) {
		current := f.get(e)
		incoming := f.get(in)

		if guard[f.name] {
			if opts.OnSuppressed != nil && !fieldEmpty(incoming) && !fieldEqual(f.kind, current, incoming) {
				opts.OnSuppressed(f.name, current, incoming)
			}
			continue
		}

		if !fieldEqual(f.kind, current, incoming) {
			f.set(e, incoming)
			changed = true
		}
	}
	return changed, nil
}
