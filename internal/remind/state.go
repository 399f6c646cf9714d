// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Later Authors

// Package remind holds the pure time/state computations of the reminder
// lifecycle: due/overdue flags, auto-archive thresholds and snooze target
// times. All functions take the reference instant explicitly so they stay
// deterministic under test.
package remind

import (
	"time"

	"github.com/laterhq/later-server/models"
)

// DueWindow is how long past the scheduled instant a reminder counts as
// "due now" before it becomes merely overdue.
const DueWindow = time.Minute

// ComputeState derives the due/overdue flags of a reminder at instant now.
//
// A reminder with no scheduled time is neither due nor overdue. Otherwise
// it is overdue from its scheduled time onwards while not archived, and
// due within the first DueWindow of being overdue.
func ComputeState(reminder models.Reminder, now time.Time) models.ReminderState {
	state := models.ReminderState{Reminder: reminder}
	if reminder.RemindAt == nil {
		return state
	}

	elapsed := now.Sub(*reminder.RemindAt)
	state.IsOverdue = elapsed >= 0 && reminder.Status != models.StatusArchived
	state.IsDue = state.IsOverdue && elapsed < DueWindow

	return state
}

// AutoArchiveThreshold returns the grace period of an auto-archive policy.
// ok is false for AutoArchiveNever (and unknown policies), meaning no
// threshold applies.
func AutoArchiveThreshold(policy models.AutoArchivePolicy) (time.Duration, bool) {
	switch policy {
	case models.AutoArchive24h:
		return 24 * time.Hour, true
	case models.AutoArchive7d:
		return 7 * 24 * time.Hour, true
	}

	return 0, false
}

// ShouldAutoArchive reports whether the auto-archive sweep should move the
// reminder to the archive at instant now under the given policy: never for
// archived or unscheduled reminders or the "never" policy, otherwise once
// now reaches the scheduled time plus the policy threshold.
func ShouldAutoArchive(reminder models.Reminder, policy models.AutoArchivePolicy, now time.Time) bool {
	if reminder.Status == models.StatusArchived {
		return false
	}
	if reminder.RemindAt == nil {
		return false
	}

	threshold, ok := AutoArchiveThreshold(policy)
	if !ok {
		return false
	}

	return !now.Before(reminder.RemindAt.Add(threshold))
}

// SnoozeAt computes the new scheduled time for a snooze issued at instant
// now. Presets: "10m" and "1h" offset from now; "tomorrow" is the next
// calendar day at 09:00 in loc. Without a preset the explicit minute count
// applies, defaulting to ten minutes. The reminder's previous scheduled
// time never participates.
func SnoozeAt(now time.Time, input models.SnoozeReminderInput, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}

	switch input.Preset {
	case models.SnoozePreset10m:
		return now.Add(10 * time.Minute)
	case models.SnoozePreset1h:
		return now.Add(time.Hour)
	case models.SnoozePresetTomorrow:
		local := now.In(loc)
		return time.Date(local.Year(), local.Month(), local.Day()+1, 9, 0, 0, 0, loc)
	}

	minutes := input.Minutes
	if minutes <= 0 {
		minutes = 10
	}

	return now.Add(time.Duration(minutes) * time.Minute)
}
