package trafficflow

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the scheduler
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Counts mapping does not hold exactly the four directions
	ErrCodeDirectionCount
	// Direction is not one of the four approaches
	ErrCodeUnknownDirection
	// Vehicle count is negative
	ErrCodeNegativeCount
	// Scheduler has not been started
	ErrCodeNotStarted
	// Scheduler has already completed every direction
	ErrCodeAlreadyComplete
	// Scheduler is already running
	ErrCodeAlreadyStarted
	// Timing or scheduler configuration is invalid
	ErrCodeInvalidConfiguration
	// Run has started but not every direction is serviced yet
	ErrCodeNotComplete
)

// InvalidInputError reports counts rejected before scheduling begins
type InvalidInputError struct {
	Code      ErrorCode
	Direction string
	Reason    string
}

func (e *InvalidInputError) Error() string {
	if e.Direction != "" {
		return fmt.Sprintf("invalid input [%s]: %s", e.Direction, e.Reason)
	}
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

// NewDirectionCountError creates an error for a mapping without exactly four entries
func NewDirectionCountError(got int) *InvalidInputError {
	return &InvalidInputError{
		Code:   ErrCodeDirectionCount,
		Reason: fmt.Sprintf("expected counts for %d directions, got %d", len(canonicalOrder), got),
	}
}

// NewUnknownDirectionError creates an error for a direction outside the enumeration
func NewUnknownDirectionError(direction string) *InvalidInputError {
	return &InvalidInputError{
		Code:      ErrCodeUnknownDirection,
		Direction: direction,
		Reason:    fmt.Sprintf("unknown direction '%s'", direction),
	}
}

// NewNegativeCountError creates an error for a negative vehicle count
func NewNegativeCountError(direction string, count int) *InvalidInputError {
	return &InvalidInputError{
		Code:      ErrCodeNegativeCount,
		Direction: direction,
		Reason:    fmt.Sprintf("vehicle count %d is negative", count),
	}
}

// InvalidStateError reports an operation requested in a status that cannot serve it
type InvalidStateError struct {
	Code      ErrorCode
	Operation string
	Status    Status
	Reason    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state during %s (%s): %s", e.Operation, e.Status, e.Reason)
}

// NewNotStartedError creates an error for operations on an idle scheduler
func NewNotStartedError(operation string) *InvalidStateError {
	return &InvalidStateError{
		Code:      ErrCodeNotStarted,
		Operation: operation,
		Status:    StatusIdle,
		Reason:    "scheduler is not started",
	}
}

// NewNotCompleteError creates an error for results requested mid-run
func NewNotCompleteError(operation string) *InvalidStateError {
	return &InvalidStateError{
		Code:      ErrCodeNotComplete,
		Operation: operation,
		Status:    StatusRunning,
		Reason:    "waiting times are only valid once every direction is complete",
	}
}

// NewAlreadyCompleteError creates an error for ticks requested after completion
func NewAlreadyCompleteError(operation string) *InvalidStateError {
	return &InvalidStateError{
		Code:      ErrCodeAlreadyComplete,
		Operation: operation,
		Status:    StatusComplete,
		Reason:    "all directions have already been serviced",
	}
}

// NewAlreadyStartedError creates an error for a second Start on a running scheduler
func NewAlreadyStartedError(operation string) *InvalidStateError {
	return &InvalidStateError{
		Code:      ErrCodeAlreadyStarted,
		Operation: operation,
		Status:    StatusRunning,
		Reason:    "scheduler is already running",
	}
}

// ConfigurationError represents scheduler configuration issues
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// IsInvalidInputError checks if an error is an InvalidInputError
func IsInvalidInputError(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsInvalidStateError checks if an error is an InvalidStateError
func IsInvalidStateError(err error) bool {
	var target *InvalidStateError
	return errors.As(err, &target)
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	var (
		inputErr  *InvalidInputError
		stateErr  *InvalidStateError
		configErr *ConfigurationError
	)
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Code
	case errors.As(err, &stateErr):
		return stateErr.Code
	case errors.As(err, &configErr):
		return ErrCodeInvalidConfiguration
	default:
		return ErrCodeNone
	}
}
