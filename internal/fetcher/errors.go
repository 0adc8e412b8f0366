package fetcher

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectivity matches every *ConnectivityError.
	ErrConnectivity = errors.New("api unreachable")
	// ErrData matches every *DataError.
	ErrData = errors.New("api returned unusable data")
)

// ConnectivityError is returned when the request never produced an HTTP response.
type ConnectivityError struct {
	Base          string // API base the request was sent to
	BuildOverride bool   // Whether the base came with a configured override
	Err           error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrConnectivity, e.Base, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// Is makes the error match ErrConnectivity.
func (e *ConnectivityError) Is(target error) bool {
	return target == ErrConnectivity
}

// DataError is returned when the API answered with a non-success status
// or a body that is not the expected JSON shape.
type DataError struct {
	StatusCode int
	Message    string // Server supplied error or details, empty when there was none
}

func (e *DataError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d): %s", ErrData, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s (status %d)", ErrData, e.StatusCode)
}

func (e *DataError) Unwrap() error {
	return ErrData
}
