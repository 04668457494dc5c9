// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package status

import (
	"time"
)

// Status represents the operational state reported for a unit's workload.
type Status string

// String returns a string representation of the Status.
func (s Status) String() string {
	return string(s)
}

const (
	// Blocked is set when:
	// The unit needs manual intervention to get back to the Running state.
	Blocked Status = "blocked"

	// Waiting is set when:
	// The unit is unable to progress to an active state because an
	// application to which it is related is not running.
	Waiting Status = "waiting"

	// Maintenance is set when:
	// The unit is not yet providing services, but is actively doing stuff
	// in preparation for providing those services.
	// This is a "spinning" state, not an error state.
	Maintenance Status = "maintenance"

	// Active is set when:
	// The unit believes it is correctly offering all the services it has
	// been asked to offer.
	Active Status = "active"
)

// StatusInfo holds a Status and associated information.
type StatusInfo struct {
	Status  Status
	Message string
	Since   *time.Time
}

// BlockedStatus returns a StatusInfo reporting that the unit needs
// manual intervention.
func BlockedStatus(message string) StatusInfo {
	return StatusInfo{Status: Blocked, Message: message}
}

// WaitingStatus returns a StatusInfo reporting that the unit is waiting
// on something it does not control.
func WaitingStatus(message string) StatusInfo {
	return StatusInfo{Status: Waiting, Message: message}
}

// MaintenanceStatus returns a StatusInfo reporting that the unit is busy
// preparing to provide its services.
func MaintenanceStatus(message string) StatusInfo {
	return StatusInfo{Status: Maintenance, Message: message}
}

// ActiveStatus returns a StatusInfo reporting that the unit is operating
// correctly.
func ActiveStatus(message string) StatusInfo {
	return StatusInfo{Status: Active, Message: message}
}

// ValidSeverity returns true if status is one of the four ranked
// workload statuses. Severity ranking, starting with the worst:
// Blocked, Waiting, Maintenance, Active.
func ValidSeverity(status Status) bool {
	switch status {
	case
		Blocked,
		Waiting,
		Maintenance,
		Active:
		return true
	default:
		return false
	}
}
