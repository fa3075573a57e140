// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AttemptStatus is the state of a single conversion attempt.
type AttemptStatus string

const (
	StatusIdle      AttemptStatus = "idle"
	StatusBuilding  AttemptStatus = "building"
	StatusInvoking  AttemptStatus = "invoking"
	StatusSucceeded AttemptStatus = "succeeded"
	StatusFailed    AttemptStatus = "failed"
	StatusKilled    AttemptStatus = "killed"
)

// Terminal reports whether the status ends an attempt.
func (s AttemptStatus) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed || s == StatusKilled
}

// AttemptRecord is the persisted outcome of one conversion attempt.
type AttemptRecord struct {
	// ID is assigned by the history store.
	ID int64 `json:"id" yaml:"id"`

	// Input is the file that was converted.
	Input string `json:"input" yaml:"input"`

	// Output is the path the tool was asked to write.
	Output string `json:"output" yaml:"output"`

	// Format is the preset key (e.g. "png").
	Format string `json:"format" yaml:"format"`

	// Quality is the quality value passed to the tool.
	Quality int `json:"quality" yaml:"quality"`

	// Scale is the scale descriptor passed to the tool (e.g. "1920:-1").
	Scale string `json:"scale" yaml:"scale"`

	// Status is one of succeeded, failed, killed.
	Status AttemptStatus `json:"status" yaml:"status"`

	// Error holds the failure message, if any.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
}

// Duration returns how long the attempt ran.
func (r AttemptRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
