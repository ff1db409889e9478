package wizard

import (
	"github.com/google/uuid"

	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

// ValidateEntries checks every entry and returns a flat diagnostics map keyed
// "<field>-<entryID>". It never mutates the entries. A single invalid entry
// blocks submission; errors stay scoped to the offending entry.
func ValidateEntries(entries []*model.JobEntry) (map[string]string, bool) {
	errs := map[string]string{}
	for _, e := range entries {
		validateEntry(e, errs)
	}
	return errs, len(errs) == 0
}

func validateEntry(e *model.JobEntry, errs map[string]string) {
	if e.Title == "" {
		errs[errKey(fieldTitle, e.ID)] = "title is required"
	}
	if len(e.EligiblePrograms) == 0 {
		errs[errKey(fieldEligiblePrograms, e.ID)] = "select at least one eligible program"
	}

	checkRange(errs, e.ID, fieldMinTenthPercent, e.MinTenthPercent, 0, 100, "10th percentage must be between 0 and 100")
	checkRange(errs, e.ID, fieldMinTwelfthPercent, e.MinTwelfthPercent, 0, 100, "12th percentage must be between 0 and 100")

	validateTrack(errs, e.ID, &e.UG, fieldMinUGCGPA, fieldMaxUGBacklogs, fieldUGPackageMin, fieldUGPackageMax, fieldUGStipend)
	validateTrack(errs, e.ID, &e.PG, fieldMinPGCGPA, fieldMaxPGBacklogs, fieldPGPackageMin, fieldPGPackageMax, fieldPGStipend)
}

func validateTrack(errs map[string]string, id uuid.UUID, t *model.TrackProfile, cgpaField, backlogField, minField, maxField, stipendField string) {
	checkRange(errs, id, cgpaField, t.MinCGPA, 0, 10, "CGPA must be between 0 and 10")

	if t.MaxBacklogs != nil && *t.MaxBacklogs < 0 {
		errs[errKey(backlogField, id)] = "backlog count cannot be negative"
	}
	checkNonNegative(errs, id, minField, t.PackageMin, "package cannot be negative")
	checkNonNegative(errs, id, maxField, t.PackageMax, "package cannot be negative")
	checkNonNegative(errs, id, stipendField, t.Stipend, "stipend cannot be negative")

	// min <= max, attributed to the max field
	if t.PackageMin != nil && t.PackageMax != nil && *t.PackageMin > *t.PackageMax {
		errs[errKey(maxField, id)] = "maximum package must be at least the minimum"
	}
}

func checkRange(errs map[string]string, id uuid.UUID, field string, v *float64, lo, hi float64, msg string) {
	if v != nil && (*v < lo || *v > hi) {
		errs[errKey(field, id)] = msg
	}
}

func checkNonNegative(errs map[string]string, id uuid.UUID, field string, v *float64, msg string) {
	if v != nil && *v < 0 {
		errs[errKey(field, id)] = msg
	}
}
