// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package statushistory keeps a trail of the statuses absorbed during a
// reconciliation pass, so an operator can see how a unit arrived at its
// reported state.
package statushistory

import (
	"context"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/juju/statuscatcher/core/status"
)

// Namespace identifies the entity the statuses belong to.
type Namespace struct {
	Name string
	ID   string
}

// WithID returns a copy of the namespace with the given ID.
func (n Namespace) WithID(id string) Namespace {
	n.ID = id
	return n
}

// String returns the namespace as a string.
func (n Namespace) String() string {
	if n.ID == "" {
		return n.Name
	}
	return n.Name + " (" + n.ID + ")"
}

// Record is a single status history entry.
type Record struct {
	Name    string
	ID      string
	Status  string
	Message string
	Time    string
}

// Recorder is the sink for status history records.
type Recorder interface {
	Record(context.Context, Record) error
}

// StatusHistory timestamps statuses and hands them to a Recorder.
type StatusHistory struct {
	recorder Recorder
	clock    clock.Clock
}

// NewStatusHistory returns a StatusHistory writing to the given recorder.
func NewStatusHistory(recorder Recorder, clock clock.Clock) *StatusHistory {
	return &StatusHistory{
		recorder: recorder,
		clock:    clock,
	}
}

// RecordStatus records the given status for the namespaced entity. The
// status Since time is used if set, otherwise the current time.
func (s *StatusHistory) RecordStatus(ctx context.Context, ns Namespace, si status.StatusInfo) error {
	since := si.Since
	if since == nil {
		now := s.clock.Now()
		since = &now
	}
	err := s.recorder.Record(ctx, Record{
		Name:    ns.Name,
		ID:      ns.ID,
		Status:  si.Status.String(),
		Message: si.Message,
		Time:    since.Format(time.RFC3339),
	})
	return errors.Trace(err)
}

// LogRecorder writes status history records to a loggo logger at debug
// level. It never fails.
type LogRecorder struct {
	Logger loggo.Logger
}

// Record logs the record.
func (r LogRecorder) Record(_ context.Context, rec Record) error {
	ns := Namespace{Name: rec.Name, ID: rec.ID}
	r.Logger.Debugf("%s: status %q set at %s: %s", ns, rec.Status, rec.Time, rec.Message)
	return nil
}
