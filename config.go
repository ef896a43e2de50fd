package binsweep

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// FailurePolicy decides what the sweeper does with lookups that fail.
type FailurePolicy int

const (
	// IgnoreFailures drops failed lookups without surfacing them. Failures are only visible at debug level.
	IgnoreFailures FailurePolicy = iota
	// ReportFailures logs every failed lookup as a warning.
	ReportFailures
)

// ParseFailurePolicy parses "ignore" or "report".
func ParseFailurePolicy(policy string) (FailurePolicy, error) {
	switch policy {
	case "", "ignore":
		return IgnoreFailures, nil
	case "report":
		return ReportFailures, nil
	}
	return IgnoreFailures, fmt.Errorf("unknown failure policy %q", policy)
}

func (p FailurePolicy) String() string {
	if p == ReportFailures {
		return "report"
	}
	return "ignore"
}

// Config holds all sweeper configuration.
type Config struct {
	Enumerator *Enumerator
	Endpoint   Endpoint
	Client     *Client

	// MaxConcurrentRequests caps the number of lookups in flight. Zero means no cap.
	MaxConcurrentRequests int64
	RequestDelay          time.Duration
	FailurePolicy         FailurePolicy

	Plugins []Plugin
	Logger  *zap.Logger
}
