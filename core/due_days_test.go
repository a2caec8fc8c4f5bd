package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bibliofleet/lending-go/core"
)

func Test_ParseDueDays_DefaultWhenNotRequested(t *testing.T) {
	dueDays, err := core.ParseDueDays(nil)

	assert.NoError(t, err)
	assert.Equal(t, core.DueDays(core.DefaultDueDays), dueDays)
}

func Test_ParseDueDays_AcceptsPositiveValues(t *testing.T) {
	requested := 14

	dueDays, err := core.ParseDueDays(&requested)

	assert.NoError(t, err)
	assert.Equal(t, core.DueDays(14), dueDays)
}

func Test_ParseDueDays_RejectsZeroAndNegative(t *testing.T) {
	for _, requested := range []int{0, -1, -100} {
		value := requested

		_, err := core.ParseDueDays(&value)

		assert.ErrorIs(t, err, core.ErrInvalidDueDays)
	}
}

func Test_DueDateFrom_AddsCalendarDays(t *testing.T) {
	base := time.Date(2025, 3, 28, 10, 30, 0, 0, time.UTC)

	dueDate := core.DueDays(7).DueDateFrom(base)

	assert.Equal(t, time.Date(2025, 4, 4, 10, 30, 0, 0, time.UTC), dueDate)
}

func Test_DueDateFrom_CrossesMonthBoundary(t *testing.T) {
	base := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	dueDate := core.DueDays(1).DueDateFrom(base)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), dueDate)
}
