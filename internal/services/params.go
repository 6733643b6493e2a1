package services

import (
	"fmt"
	"regexp"
	"strings"
)

// ValidationError reports a request parameter rejected before any computation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

var batchIDRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func validateBatchID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", &ValidationError{Field: "date", Msg: "is required"}
	}
	if !batchIDRE.MatchString(id) {
		return "", &ValidationError{Field: "date", Msg: "must be YYYY-MM-DD"}
	}
	return id, nil
}

type ThroughputRequest struct {
	BatchID   string
	BinSize   int
	StartTime string
	EndTime   string
}

// Validated throughput parameters.
type ThroughputQuery struct {
	BatchID string
	Plan    BucketPlan
}

func (r ThroughputRequest) Validate(allowed []int) (ThroughputQuery, error) {
	id, err := validateBatchID(r.BatchID)
	if err != nil {
		return ThroughputQuery{}, err
	}
	w, err := NewWindow(r.StartTime, r.EndTime)
	if err != nil {
		return ThroughputQuery{}, err
	}
	plan, err := NewBucketPlan(r.BinSize, allowed, w)
	if err != nil {
		return ThroughputQuery{}, err
	}
	return ThroughputQuery{BatchID: id, Plan: plan}, nil
}

// Request for the reports that only need a batch and a window (summary, volume).
type WindowRequest struct {
	BatchID   string
	StartTime string
	EndTime   string
}

type WindowQuery struct {
	BatchID string
	Window  Window
}

func (r WindowRequest) Validate() (WindowQuery, error) {
	id, err := validateBatchID(r.BatchID)
	if err != nil {
		return WindowQuery{}, err
	}
	w, err := NewWindow(r.StartTime, r.EndTime)
	if err != nil {
		return WindowQuery{}, err
	}
	return WindowQuery{BatchID: id, Window: w}, nil
}

type JourneyRequest struct {
	BatchID     string
	SearchBy    string
	SearchValue string
}
