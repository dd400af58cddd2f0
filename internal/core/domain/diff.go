package domain

// Diff is the file-level difference between two locks. It is the single
// source of truth handed to the materializer; the materializer never
// inspects the manifest directly.
type Diff struct {
	// ToInstall are entries present only in the new lock.
	ToInstall []LockEntry
	// ToRemove are entries present only in the old lock.
	ToRemove []LockEntry
	// ToUpdate pairs entries present in both locks with a differing hash or
	// version. The old entry's file is removed and the new one installed.
	ToUpdate []DiffUpdate
}

// DiffUpdate is one changed entry of a diff.
type DiffUpdate struct {
	Old LockEntry
	New LockEntry
}

// Empty reports whether applying the diff would change nothing.
func (d Diff) Empty() bool {
	return len(d.ToInstall) == 0 && len(d.ToRemove) == 0 && len(d.ToUpdate) == 0
}

// ComputeDiff computes the symmetric difference between two locks keyed by
// (role, name). Either lock may be nil, meaning "no entries".
func ComputeDiff(old, new *Lock) Diff {
	var oldEntries, newEntries []LockEntry
	if old != nil {
		oldEntries = old.Entries
	}
	if new != nil {
		newEntries = new.Entries
	}

	oldByKey := make(map[string]LockEntry, len(oldEntries))
	for _, e := range oldEntries {
		oldByKey[e.Key()] = e
	}

	var diff Diff
	newKeys := make(map[string]bool, len(newEntries))
	for _, e := range newEntries {
		newKeys[e.Key()] = true
		prev, existed := oldByKey[e.Key()]
		switch {
		case !existed:
			diff.ToInstall = append(diff.ToInstall, e)
		case !prev.Hash.Equal(e.Hash) || prev.Version != e.Version || prev.Path != e.Path:
			diff.ToUpdate = append(diff.ToUpdate, DiffUpdate{Old: prev, New: e})
		}
	}
	for _, e := range oldEntries {
		if !newKeys[e.Key()] {
			diff.ToRemove = append(diff.ToRemove, e)
		}
	}
	return diff
}
