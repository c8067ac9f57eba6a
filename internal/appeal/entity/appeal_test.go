package entity

import (
	"testing"
	"time"
)

func TestAppealPriorityAt(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want Priority
	}{
		{"FreshlySubmitted", 0, PriorityLow},
		{"ThreeDaysOld", 3 * 24 * time.Hour, PriorityLow},
		{"JustOverThreeDays", 3*24*time.Hour + time.Minute, PriorityMedium},
		{"SevenDaysOld", 7 * 24 * time.Hour, PriorityMedium},
		{"JustOverSevenDays", 7*24*time.Hour + time.Minute, PriorityHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := Appeal{CreatedAt: now.Add(-tc.age)}
			if got := a.PriorityAt(now); got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAppealDecided(t *testing.T) {
	tests := []struct {
		status AppealStatus
		want   bool
	}{
		{AppealStatusPending, false},
		{AppealStatusApproved, true},
		{AppealStatusRejected, true},
	}

	for _, tc := range tests {
		t.Run(tc.status.String(), func(t *testing.T) {
			a := Appeal{Status: tc.status}
			if got := a.Decided(); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAppealStatusFromString(t *testing.T) {
	if got := AppealStatusFromString("Approved"); got != AppealStatusApproved {
		t.Fatalf("expected approved, got %s", got)
	}
	if got := AppealStatusFromString("withdrawn"); got != AppealStatusUnknown {
		t.Fatalf("expected unknown, got %s", got)
	}
}
