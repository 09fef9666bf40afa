package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidReminderType(t *testing.T) {
	valid := []ReminderType{ReminderDeadline7Days, ReminderDeadline3Days, ReminderDeadline1Day, ReminderCheckBidOpening}
	for _, rt := range valid {
		assert.True(t, ValidReminderType(rt), string(rt))
	}
	assert.False(t, ValidReminderType("deadline_2weeks"))
	assert.False(t, ValidReminderType(""))
}

func TestTerminalStatuses(t *testing.T) {
	terminal := []TenderStatus{StatusWon, StatusLost, StatusAbandoned}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), string(s))
	}

	active := []TenderStatus{StatusIdentified, StatusEvaluating, StatusPreparing,
		StatusSubmitted, StatusBidOpening, StatusUnderEvaluation}
	for _, s := range active {
		assert.False(t, s.IsTerminal(), string(s))
	}
}

func TestValidTenderStatus(t *testing.T) {
	assert.True(t, ValidTenderStatus(StatusPreparing))
	assert.False(t, ValidTenderStatus("archived"))
}
