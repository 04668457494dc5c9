// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package catcher aggregates workload statuses across the independent
// tasks of a reconciliation pass. A StatusCatcher wraps each task in
// turn, absorbs failures whose kind is mapped to a status severity, and
// reports the worst status observed once every task has run. Failures
// of any other kind propagate to the caller unchanged.
package catcher

import (
	"context"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/statuscatcher/core/status"
	"github.com/juju/statuscatcher/statushistory"
)

var logger = loggo.GetLogger("statuscatcher.catcher")

// DefaultStatusMap maps the built-in error kinds to their status
// severities. There is deliberately no mapping to Active: an active
// status is never produced by catching an error, only synthesized by
// Worst when nothing was recorded.
var DefaultStatusMap = map[ErrorKind]status.Status{
	BlockedErrorKind:     status.Blocked,
	WaitingErrorKind:     status.Waiting,
	MaintenanceErrorKind: status.Maintenance,
}

// Config holds the configuration and dependencies of a StatusCatcher.
type Config struct {
	// StatusMap maps error kinds to the status severity recorded when a
	// task fails with an error of that kind. A nil or empty map selects
	// DefaultStatusMap.
	StatusMap map[ErrorKind]status.Status

	// Name identifies the entity being reconciled in the status
	// history. Defaults to "reconcile".
	Name string

	// Clock is used to timestamp recorded statuses. Defaults to
	// clock.WallClock.
	Clock clock.Clock

	// Recorder receives a status history record for every status the
	// catcher absorbs. Defaults to a recorder logging at debug level.
	Recorder statushistory.Recorder
}

// Validate returns an error if the config cannot be used. Every status
// map key must be a registered error kind, and every value one of the
// four ranked severities; a single bad entry rejects the whole map.
func (cfg Config) Validate() error {
	for kind, st := range cfg.StatusMap {
		if !KnownErrorKind(kind) {
			return errors.NotValidf("status map key %q", kind)
		}
		if !status.ValidSeverity(st) {
			return errors.NotValidf("status map value %q for key %q", st, kind)
		}
	}
	return nil
}

// StatusCatcher accumulates the statuses produced by catching mapped
// task failures. One instance serves any number of sequential tasks,
// all appending to the same status sequence; it is not safe for
// concurrent use.
type StatusCatcher struct {
	statusMap map[ErrorKind]status.Status
	clock     clock.Clock
	history   *statushistory.StatusHistory
	namespace statushistory.Namespace
	statuses  []status.StatusInfo
}

// New returns a StatusCatcher for one reconciliation pass.
func New(cfg Config) (*StatusCatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	statusMap := make(map[ErrorKind]status.Status, len(cfg.StatusMap))
	for kind, st := range cfg.StatusMap {
		statusMap[kind] = st
	}
	if len(statusMap) == 0 {
		for kind, st := range DefaultStatusMap {
			statusMap[kind] = st
		}
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.WallClock
	}
	name := cfg.Name
	if name == "" {
		name = "reconcile"
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = statushistory.LogRecorder{Logger: logger}
	}
	return &StatusCatcher{
		statusMap: statusMap,
		clock:     clk,
		history:   statushistory.NewStatusHistory(recorder, clk),
		namespace: statushistory.Namespace{Name: name},
	}, nil
}

// Run executes one task inside the catcher's scope and delivers its
// outcome to Observe.
func (c *StatusCatcher) Run(ctx context.Context, task func(context.Context) error) error {
	return c.Observe(ctx, task(ctx))
}

// Observe delivers the outcome of one task to the catcher. A nil err
// leaves the catcher untouched. A failure whose kind is in the status
// map is recorded as a status of the mapped severity, carrying the
// failure's message verbatim, and suppressed. Any other failure is
// returned to the caller unchanged.
func (c *StatusCatcher) Observe(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	serr, ok := errors.Cause(err).(*StatusError)
	if !ok {
		return err
	}
	mapped, ok := c.statusMap[serr.Kind()]
	if !ok {
		// Unknown kind - do not catch it; the caller sees it unchanged.
		return err
	}
	now := c.clock.Now()
	info := status.StatusInfo{
		Status:  mapped,
		Message: serr.Error(),
		Since:   &now,
	}
	c.statuses = append(c.statuses, info)
	if err := c.history.RecordStatus(ctx, c.namespace, info); err != nil {
		logger.Warningf("recording status history for %s: %v", c.namespace, err)
	}
	return nil
}

// Count returns the number of statuses recorded so far.
func (c *StatusCatcher) Count() int {
	return len(c.statuses)
}

// Statuses returns a copy of the recorded statuses in the order they
// were observed.
func (c *StatusCatcher) Statuses() []status.StatusInfo {
	statuses := make([]status.StatusInfo, len(c.statuses))
	copy(statuses, c.statuses)
	return statuses
}

// Worst returns the most severe status recorded so far, or an active
// status with an empty message if nothing has been recorded.
func (c *StatusCatcher) Worst() status.StatusInfo {
	if len(c.statuses) == 0 {
		return status.ActiveStatus("")
	}
	worst, err := status.FirstWorst(c.statuses)
	if err != nil {
		// Unreachable: only validated severities are ever appended.
		logger.Errorf("selecting worst status for %s: %v", c.namespace, err)
		return status.ActiveStatus("")
	}
	return worst
}
