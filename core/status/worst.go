// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package status

import (
	"github.com/juju/errors"
)

// ErrNoStatuses is returned by FirstWorst when given nothing to rank.
const ErrNoStatuses = errors.ConstError("no statuses provided")

// FirstWorst returns the most severe status in the list, ranked
// Blocked > Waiting > Maintenance > Active. Among statuses of equal
// severity the one appearing earliest in the list wins; messages are
// never compared.
//
// An empty list fails with ErrNoStatuses. A status outside the four
// ranked severities fails with NotValid; it is never skipped.
func FirstWorst(statuses []StatusInfo) (StatusInfo, error) {
	if len(statuses) == 0 {
		return StatusInfo{}, ErrNoStatuses
	}

	var blocked, waiting, maintenance, active *StatusInfo
	for i := range statuses {
		st := &statuses[i]
		switch st.Status {
		case Blocked:
			// Nothing outranks blocked, so the first one seen is the
			// answer regardless of what follows.
			blocked = st
		case Waiting:
			if waiting == nil {
				waiting = st
			}
		case Maintenance:
			if maintenance == nil {
				maintenance = st
			}
		case Active:
			if active == nil {
				active = st
			}
		default:
			return StatusInfo{}, errors.NotValidf("status %q (%q)", st.Status, st.Message)
		}
		if blocked != nil {
			break
		}
	}

	for _, st := range []*StatusInfo{blocked, waiting, maintenance, active} {
		if st != nil {
			return *st, nil
		}
	}
	// Unreachable: every entry matched one of the four severities above.
	return StatusInfo{}, ErrNoStatuses
}
