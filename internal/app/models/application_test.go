package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseApplicationStatus(t *testing.T) {
	for _, raw := range []string{"applied", "shortlisted", "selected", "rejected", "on_hold"} {
		status, err := ParseApplicationStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, ApplicationStatus(raw), status)
	}
}

func TestParseApplicationStatus_Invalid(t *testing.T) {
	for _, raw := range []string{"", "accepted", "APPLIED", "Selected"} {
		_, err := ParseApplicationStatus(raw)
		assert.Error(t, err, raw)
	}
}

func TestApplicationStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusSelected.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusApplied.IsTerminal())
	assert.False(t, StatusShortlisted.IsTerminal())
	assert.False(t, StatusOnHold.IsTerminal())
}

func TestDriveStatus_IsValid(t *testing.T) {
	assert.True(t, DriveActive.IsValid())
	assert.True(t, DriveCompleted.IsValid())
	assert.True(t, DriveCancelled.IsValid())
	assert.False(t, DriveStatus("open").IsValid())
	assert.False(t, DriveStatus("").IsValid())
}

func TestRoleType_IsValid(t *testing.T) {
	assert.True(t, RoleStudent.IsValid())
	assert.True(t, RoleHOD.IsValid())
	assert.True(t, RoleTPO.IsValid())
	assert.False(t, RoleType("student").IsValid())
	assert.False(t, RoleType("ADMIN").IsValid())
}
