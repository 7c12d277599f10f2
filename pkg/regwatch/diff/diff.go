// Package diff computes the changeset between two registry snapshots.
package diff

import "github.com/ukaji3/regwatch-go/pkg/regwatch/models"

// Changeset is the list of records to deliver after a comparison.
type Changeset struct {
	// Records holds new and changed records in scan order, followed by
	// records that disappeared from the active set, marked inactive.
	Records []models.Purchase
	// Added counts records with a registry number absent from the old set.
	Added int
	// Changed counts records whose content differs from the old value.
	Changed int
	// Deactivated counts old records missing from the new set.
	Deactivated int
}

// Len returns the number of records in the changeset.
func (c Changeset) Len() int {
	return len(c.Records)
}

// Empty reports whether there is nothing to deliver.
func (c Changeset) Empty() bool {
	return len(c.Records) == 0
}

// Initial returns a changeset carrying the full set, used when no previous
// snapshot exists.
func Initial(fresh []models.Purchase) Changeset {
	records := make([]models.Purchase, len(fresh))
	copy(records, fresh)
	return Changeset{Records: records, Added: len(records)}
}

// Compute compares fresh against old, keyed by registry number. Records
// equal to their old value are omitted. Old records missing from fresh are
// re-emitted with status models.StatusInactive. Only the first record of a
// repeated registry number in either set takes part.
func Compute(old, fresh []models.Purchase) Changeset {
	index := make(map[string]int, len(old))
	for i, p := range old {
		if _, ok := index[p.RegistryNumber]; !ok {
			index[p.RegistryNumber] = i
		}
	}

	var cs Changeset
	seen := make(map[string]struct{}, len(fresh))
	for _, p := range fresh {
		if _, dup := seen[p.RegistryNumber]; dup {
			continue
		}
		seen[p.RegistryNumber] = struct{}{}

		i, ok := index[p.RegistryNumber]
		if !ok {
			cs.Records = append(cs.Records, p)
			cs.Added++
			continue
		}
		delete(index, p.RegistryNumber)
		if !p.Equal(old[i]) {
			cs.Records = append(cs.Records, p)
			cs.Changed++
		}
	}

	for i, p := range old {
		if j, ok := index[p.RegistryNumber]; !ok || j != i {
			continue
		}
		p.Status = models.StatusInactive
		cs.Records = append(cs.Records, p)
		cs.Deactivated++
	}

	return cs
}
