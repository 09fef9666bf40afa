package models

import "errors"

var (
	ErrTenderNotFound    = errors.New("tender not found")
	ErrReminderNotFound  = errors.New("reminder not found")
	ErrDuplicateReminder = errors.New("a reminder of this type already exists for the tender")
	ErrTenderFinalized   = errors.New("tender is in a terminal status, reminders are not scheduled")
)
