package payroll

import (
	"testing"
	"time"

	"github.com/haken-hr/kyuyo-backend-go/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftRun() Run {
	return Run{
		ID:          "run-1",
		WorkplaceID: "wp-1",
		PeriodYear:  2025,
		PeriodMonth: 6,
		Status:      StatusDraft,
		Version:     1,
	}
}

func TestApproveFromDraft(t *testing.T) {
	run := draftRun()
	now := time.Now()

	require.NoError(t, run.Approve("user-1", now, false))
	assert.Equal(t, StatusApproved, run.Status)
	require.NotNil(t, run.ApprovedBy)
	assert.Equal(t, "user-1", *run.ApprovedBy)
	assert.False(t, run.Recomputable())
}

func TestApproveBlockedByWarnings(t *testing.T) {
	run := draftRun()
	run.LineItems = []LineItem{{
		EmployeeID: "emp-1",
		Warnings: WarningList{{
			Kind:       timesheet.WarningIncompleteDay,
			EmployeeID: "emp-1",
		}},
	}}

	err := run.Approve("user-1", time.Now(), false)
	assert.ErrorIs(t, err, ErrUnresolvedWarnings)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusDraft, run.Status)

	require.NoError(t, run.Approve("user-1", time.Now(), true))
	assert.Equal(t, StatusApproved, run.Status)
}

func TestTransitionsRejectWrongState(t *testing.T) {
	now := time.Now()

	t.Run("pay a draft", func(t *testing.T) {
		run := draftRun()
		assert.ErrorIs(t, run.MarkPaid("user-1", now), ErrInvalidTransition)
	})

	t.Run("approve twice", func(t *testing.T) {
		run := draftRun()
		require.NoError(t, run.Approve("user-1", now, false))
		assert.ErrorIs(t, run.Approve("user-1", now, false), ErrInvalidTransition)
	})

	t.Run("cancel a paid run", func(t *testing.T) {
		run := draftRun()
		require.NoError(t, run.Approve("user-1", now, false))
		require.NoError(t, run.MarkPaid("user-1", now))
		assert.ErrorIs(t, run.Cancel(now), ErrInvalidTransition)
	})

	t.Run("cancel draft and approved", func(t *testing.T) {
		run := draftRun()
		require.NoError(t, run.Cancel(now))

		run = draftRun()
		require.NoError(t, run.Approve("user-1", now, false))
		require.NoError(t, run.Cancel(now))
	})
}
