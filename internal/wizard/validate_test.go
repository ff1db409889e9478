package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivaram-9/HireSphereX-sub000/pkg/model"
)

func completeEntry() *model.JobEntry {
	e := model.NewJobEntry()
	e.Title = "SDE I"
	e.EligiblePrograms = []int{1, 2}
	return e
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestValidateEntries_CompleteEntryPasses(t *testing.T) {
	t.Parallel()

	errs, ok := ValidateEntries([]*model.JobEntry{completeEntry()})
	assert.True(t, ok)
	assert.Empty(t, errs)
}

func TestValidateEntries_RequiredFields(t *testing.T) {
	t.Parallel()

	e := model.NewJobEntry()
	errs, ok := ValidateEntries([]*model.JobEntry{e})
	assert.False(t, ok)
	assert.Equal(t, "title is required", errs[errKey(fieldTitle, e.ID)])
	assert.Contains(t, errs, errKey(fieldEligiblePrograms, e.ID))
}

func TestValidateEntries_CGPABounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cgpa *float64
		ok   bool
	}{
		{"above upper bound", f(10.5), false},
		{"at upper bound", f(10), true},
		{"at lower bound", f(0), true},
		{"negative", f(-0.5), false},
		{"omitted", nil, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := completeEntry()
			e.UG.MinCGPA = tt.cgpa

			errs, ok := ValidateEntries([]*model.JobEntry{e})
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Contains(t, errs, errKey(fieldMinUGCGPA, e.ID))
			}
		})
	}
}

func TestValidateEntries_PercentageBounds(t *testing.T) {
	t.Parallel()

	e := completeEntry()
	e.MinTenthPercent = f(101)
	e.MinTwelfthPercent = f(60)

	errs, ok := ValidateEntries([]*model.JobEntry{e})
	assert.False(t, ok)
	assert.Contains(t, errs, errKey(fieldMinTenthPercent, e.ID))
	assert.NotContains(t, errs, errKey(fieldMinTwelfthPercent, e.ID))
}

func TestValidateEntries_BacklogAndMoneyBounds(t *testing.T) {
	t.Parallel()

	e := completeEntry()
	e.PG.MaxBacklogs = i(-1)
	e.UG.Stipend = f(-100)

	errs, ok := ValidateEntries([]*model.JobEntry{e})
	assert.False(t, ok)
	assert.Contains(t, errs, errKey(fieldMaxPGBacklogs, e.ID))
	assert.Contains(t, errs, errKey(fieldUGStipend, e.ID))
}

func TestValidateEntries_PackageOrderingAttributedToMax(t *testing.T) {
	t.Parallel()

	e := completeEntry()
	e.UG.PackageMin = f(8)
	e.UG.PackageMax = f(6)

	errs, ok := ValidateEntries([]*model.JobEntry{e})
	assert.False(t, ok)
	assert.Contains(t, errs, errKey(fieldUGPackageMax, e.ID))
	assert.NotContains(t, errs, errKey(fieldUGPackageMin, e.ID))

	e.UG.PackageMin = f(6)
	e.UG.PackageMax = f(8)
	_, ok = ValidateEntries([]*model.JobEntry{e})
	assert.True(t, ok)
}

func TestValidateEntries_ErrorsScopedToOffendingEntry(t *testing.T) {
	t.Parallel()

	bad := model.NewJobEntry()
	good := completeEntry()

	errs, ok := ValidateEntries([]*model.JobEntry{bad, good})
	require.False(t, ok)
	for key := range errs {
		assert.Contains(t, key, bad.ID.String())
		assert.NotContains(t, key, good.ID.String())
	}
}

func TestValidateEntries_DoesNotMutate(t *testing.T) {
	t.Parallel()

	e := model.NewJobEntry()
	e.UG.PackageMin = f(8)
	before := *e

	_, _ = ValidateEntries([]*model.JobEntry{e})
	assert.Equal(t, before.Title, e.Title)
	assert.Equal(t, *before.UG.PackageMin, *e.UG.PackageMin)
}
