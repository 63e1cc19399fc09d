package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatusFinished(t *testing.T) {
	cases := []struct {
		status   TaskStatus
		finished bool
	}{
		{TaskUnscheduled, false},
		{TaskScheduled, false},
		{TaskPendingConfirm, false},
		{TaskConfirmed, false},
		{TaskDeclined, false},
		{TaskInProgress, false},
		{TaskCompleted, true},
		{TaskCanceled, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.finished, tc.status.Finished(), "status=%s", tc.status)
	}
}

func TestPunchStatusOutstanding(t *testing.T) {
	cases := []struct {
		status      PunchStatus
		outstanding bool
	}{
		{PunchOpen, true},
		{PunchReadyForReview, true},
		{PunchClosed, false},
		{PunchCanceled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.outstanding, tc.status.Outstanding(), "status=%s", tc.status)
	}
}
