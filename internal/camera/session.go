package camera

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"log/slog"

	"github.com/koya1616/koko-pic/internal/permission"
)

// FacingMode selects which physical camera sources the stream.
type FacingMode string

const (
	// FacingUser is the front camera.
	FacingUser FacingMode = "user"
	// FacingEnvironment is the rear camera.
	FacingEnvironment FacingMode = "environment"
)

// Opposite returns the other facing mode.
func (f FacingMode) Opposite() FacingMode {
	if f == FacingUser {
		return FacingEnvironment
	}
	return FacingUser
}

// State is the session lifecycle state.
type State int

const (
	// Idle means no stream is active and no image is held.
	Idle State = iota
	// Previewing means a live stream is active.
	Previewing
	// Captured means a frame was captured and the stream released.
	Captured
)

// Constraints are the stream acquisition parameters.
type Constraints struct {
	FacingMode FacingMode
}

// Track is a single media track of a stream. Every track must be stopped
// before its stream handle is dropped, or the device camera stays on.
type Track interface {
	Stop()
}

// ConstraintApplier is implemented by tracks that support switching
// constraints on a live stream without reacquisition.
type ConstraintApplier interface {
	ApplyConstraints(constraints Constraints) error
}

// Stream is an active device media stream. Frame returns the current video
// frame, or nil until the feed has produced one.
type Stream interface {
	Tracks() []Track
	Frame() image.Image
}

// Device is the platform camera API.
type Device interface {
	Acquire(ctx context.Context, constraints Constraints) (Stream, error)
}

// Common errors for the camera session.
var (
	// ErrPermissionThrottled is returned when the camera prompt was already issued once.
	ErrPermissionThrottled = errors.New("camera permission was already requested once")
	// ErrNotPreviewing is returned when an operation needs a live stream.
	ErrNotPreviewing = errors.New("camera is not previewing")
	// ErrNoFrame is returned when capture runs before the feed produced a frame.
	ErrNoFrame = errors.New("camera feed has not produced a frame yet")
	// ErrAcquisitionFailed is returned when the device stream could not be acquired.
	ErrAcquisitionFailed = errors.New("failed to acquire camera stream")
)

// jpegQuality matches the capture encoding of the client (quality 0.9).
const jpegQuality = 90

// gateKey is both the gate capability key and the platform permission name.
const gateKey = "camera"

// Session owns the camera stream exclusively and manages the
// acquire, preview, capture, release lifecycle. At most one stream is active;
// replacing a stream always stops the previous one's tracks first.
//
// Acquisition and capture failures are returned to the caller as well as
// logged; any failure leaves the session Idle with no partial state.
type Session struct {
	gate   *permission.Gate
	device Device
	log    *slog.Logger

	state    State
	stream   Stream
	facing   FacingMode
	captured string // quality-0.9 JPEG data URI, empty until a capture
}

// NewSession creates an idle camera session defaulting to the rear camera.
func NewSession(gate *permission.Gate, device Device, log *slog.Logger) *Session {
	return &Session{gate: gate, device: device, log: log, state: Idle, facing: FacingEnvironment}
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Facing returns the currently selected facing mode.
func (s *Session) Facing() FacingMode { return s.facing }

// CapturedImage returns the last captured frame as a JPEG data URI, or empty.
func (s *Session) CapturedImage() string { return s.captured }

// Start acquires a video stream for the requested facing mode, gated by the
// permission-once protocol. A previously captured image is discarded and a
// previous stream is stopped before the new one is adopted.
func (s *Session) Start(ctx context.Context, facing FacingMode) error {
	if !s.gate.ShouldRequestOnce(ctx, gateKey, gateKey) {
		s.log.DebugContext(ctx, "Suppressing repeat camera prompt")
		return ErrPermissionThrottled
	}

	if err := s.acquire(ctx, facing); err != nil {
		return err
	}

	s.gate.MarkGranted(ctx, gateKey)
	return nil
}

// Capture draws the current frame into a raster sized to the frame's native
// resolution, encodes it as a quality-0.9 JPEG data URI and releases the
// stream. Valid only while previewing, and only once the feed has produced a
// frame with non-zero dimensions.
func (s *Session) Capture() (string, error) {
	if s.state != Previewing || s.stream == nil {
		return "", ErrNotPreviewing
	}

	frame := s.stream.Frame()
	if frame == nil {
		return "", ErrNoFrame
	}
	bounds := frame.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return "", ErrNoFrame
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: jpegQuality}); err != nil {
		s.log.Error("Failed to encode captured frame", "error", err)
		return "", fmt.Errorf("failed to encode captured frame: %w", err)
	}

	s.captured = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	s.Stop()
	s.state = Captured

	return s.captured, nil
}

// ToggleFacing switches the stream to the opposite camera. When the active
// stream's track supports live constraint adjustment the stream is kept;
// otherwise the stream is torn down and reacquired with the new facing mode.
func (s *Session) ToggleFacing(ctx context.Context) error {
	next := s.facing.Opposite()

	if s.state == Previewing && s.stream != nil {
		if applier, ok := firstApplier(s.stream); ok {
			if err := applier.ApplyConstraints(Constraints{FacingMode: next}); err == nil {
				s.facing = next
				return nil
			}
			s.log.DebugContext(ctx, "Live constraint switch rejected, reacquiring stream", "facing", next)
		}
	}

	s.Stop()
	return s.acquire(ctx, next)
}

// Retake discards the captured image, returning the session to Idle.
func (s *Session) Retake() {
	s.captured = ""
	if s.state == Captured {
		s.state = Idle
	}
}

// Stop stops every track of the active stream and clears the stream
// reference. Safe to call when already idle.
func (s *Session) Stop() {
	if s.stream == nil {
		return
	}
	for _, track := range s.stream.Tracks() {
		track.Stop()
	}
	s.stream = nil
	if s.state == Previewing {
		s.state = Idle
	}
}

// Close releases the stream on owner teardown.
func (s *Session) Close() {
	s.Stop()
}

func (s *Session) acquire(ctx context.Context, facing FacingMode) error {
	stream, err := s.device.Acquire(ctx, Constraints{FacingMode: facing})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to start camera", "facing", facing, "error", err)
		return fmt.Errorf("%w: %w", ErrAcquisitionFailed, err)
	}

	// Never drop a stream handle without stopping its tracks.
	s.Stop()

	s.stream = stream
	s.facing = facing
	s.captured = ""
	s.state = Previewing

	return nil
}

func firstApplier(stream Stream) (ConstraintApplier, bool) {
	for _, track := range stream.Tracks() {
		if applier, ok := track.(ConstraintApplier); ok {
			return applier, true
		}
	}
	return nil, false
}
