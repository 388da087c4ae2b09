package render_manager

import (
	"errors"
	"strings"
)

var (
	// ErrAdapterRequest indicates no adapter satisfied the request options.
	ErrAdapterRequest = errors.New("adapter request error")

	// ErrDeviceRequest indicates the adapter refused the device request.
	ErrDeviceRequest = errors.New("no compatible device")

	// ErrSurfaceCreation indicates the instance could not create a surface
	// for the given target.
	ErrSurfaceCreation = errors.New("surface creation error")

	// ErrUnsupportedSurfaceFormat indicates the surface reports neither
	// RGBA8Unorm nor BGRA8Unorm among its supported formats.
	ErrUnsupportedSurfaceFormat = errors.New("surface should support RGBA8Unorm or BGRA8Unorm")

	// ErrInvalidSurfaceSize indicates a zero width or height. Rejected before
	// any GPU call is made.
	ErrInvalidSurfaceSize = errors.New("surface width and height must be greater than 0")
)

// AcquireErrorKind classifies a GetCurrentTexture failure into the recovery
// action the frame loop should take.
type AcquireErrorKind int

const (
	// AcquireTransient covers timeouts and outdated configurations; skip the
	// frame and retry on the next one.
	AcquireTransient AcquireErrorKind = iota

	// AcquireLost means the surface was lost and must be reconfigured before
	// another acquisition can succeed.
	AcquireLost

	// AcquireFatal means the device is out of memory; the loop must
	// terminate.
	AcquireFatal
)

// String returns the classification name for log output.
func (k AcquireErrorKind) String() string {
	switch k {
	case AcquireLost:
		return "lost"
	case AcquireFatal:
		return "fatal"
	default:
		return "transient"
	}
}

// ClassifyAcquireError maps a surface texture acquisition error to its
// recovery action. The underlying binding reports these conditions as plain
// error strings, so classification matches on the condition names the native
// layer uses. Unrecognized errors are treated as transient: skipping one
// frame is recoverable, terminating on a mislabeled error is not.
//
// Parameters:
//   - err: the error returned by GetCurrentTexture
//
// Returns:
//   - AcquireErrorKind: the recovery action for the frame loop
func ClassifyAcquireError(err error) AcquireErrorKind {
	if err == nil {
		return AcquireTransient
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "out of memory") || strings.Contains(msg, "outofmemory"):
		return AcquireFatal
	case strings.Contains(msg, "lost"):
		return AcquireLost
	default:
		// Timeout and outdated both resolve themselves by the next frame.
		return AcquireTransient
	}
}
