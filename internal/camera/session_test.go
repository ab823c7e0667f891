package camera_test

import (
	"context"
	"image"
	"image/color"
	"log/slog"
	"strings"
	"testing"

	"github.com/koya1616/koko-pic/internal/camera"
	"github.com/koya1616/koko-pic/internal/permission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTrack struct {
	stopped  int
	applyErr error
	applied  []camera.Constraints
}

func (t *fakeTrack) Stop() { t.stopped++ }

type liveTrack struct {
	*fakeTrack
}

func (t *liveTrack) ApplyConstraints(constraints camera.Constraints) error {
	t.applied = append(t.applied, constraints)
	return t.applyErr
}

type fakeStream struct {
	tracks []camera.Track
	frame  image.Image
}

func (s *fakeStream) Tracks() []camera.Track { return s.tracks }
func (s *fakeStream) Frame() image.Image     { return s.frame }

type fakeDevice struct {
	streams  []*fakeStream
	err      error
	acquired []camera.Constraints
}

func (d *fakeDevice) Acquire(_ context.Context, constraints camera.Constraints) (camera.Stream, error) {
	d.acquired = append(d.acquired, constraints)
	if d.err != nil {
		return nil, d.err
	}
	stream := d.streams[0]
	if len(d.streams) > 1 {
		d.streams = d.streams[1:]
	}
	return stream, nil
}

func testFrame(width, height int) image.Image {
	frame := image.NewRGBA(image.Rect(0, 0, width, height))
	frame.Set(0, 0, color.RGBA{R: 255, A: 255})
	return frame
}

func newSession(t *testing.T, device camera.Device) *camera.Session {
	t.Helper()
	gate := permission.NewGate(permission.NewMemoryStore(), nil, slog.Default())
	return camera.NewSession(gate, device, slog.Default())
}

func TestStart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("acquires a stream and transitions to previewing", func(t *testing.T) {
		t.Parallel()
		device := &fakeDevice{streams: []*fakeStream{{tracks: []camera.Track{&fakeTrack{}}}}}
		session := newSession(t, device)

		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		assert.Equal(t, camera.Previewing, session.State())
		assert.Equal(t, camera.FacingEnvironment, session.Facing())
		require.Len(t, device.acquired, 1)
		assert.Equal(t, camera.FacingEnvironment, device.acquired[0].FacingMode)
	})

	t.Run("acquisition failure leaves the session idle", func(t *testing.T) {
		t.Parallel()
		device := &fakeDevice{err: assert.AnError}
		session := newSession(t, device)

		err := session.Start(ctx, camera.FacingEnvironment)

		assert.ErrorIs(t, err, camera.ErrAcquisitionFailed)
		assert.Equal(t, camera.Idle, session.State())
	})

	t.Run("throttled prompt acquires nothing", func(t *testing.T) {
		t.Parallel()
		device := &fakeDevice{streams: []*fakeStream{{tracks: []camera.Track{&fakeTrack{}}}}}
		gate := permission.NewGate(permission.NewMemoryStore(), nil, slog.Default())

		first := camera.NewSession(gate, &fakeDevice{err: assert.AnError}, slog.Default())
		_ = first.Start(ctx, camera.FacingEnvironment)

		second := camera.NewSession(gate, device, slog.Default())
		err := second.Start(ctx, camera.FacingEnvironment)

		assert.ErrorIs(t, err, camera.ErrPermissionThrottled)
		assert.Empty(t, device.acquired)
		assert.Equal(t, camera.Idle, second.State())
	})

	t.Run("restart stops the previous stream's tracks", func(t *testing.T) {
		t.Parallel()
		firstTrack := &fakeTrack{}
		secondTrack := &fakeTrack{}
		device := &fakeDevice{streams: []*fakeStream{
			{tracks: []camera.Track{firstTrack}},
			{tracks: []camera.Track{secondTrack}},
		}}
		session := newSession(t, device)

		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		assert.Equal(t, 1, firstTrack.stopped)
		assert.Zero(t, secondTrack.stopped)
	})
}

func TestCapture(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("encodes a jpeg data uri and releases the stream", func(t *testing.T) {
		t.Parallel()
		track := &fakeTrack{}
		device := &fakeDevice{streams: []*fakeStream{{
			tracks: []camera.Track{track},
			frame:  testFrame(4, 3),
		}}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		dataURI, err := session.Capture()

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(dataURI, "data:image/jpeg;base64,"))
		assert.Equal(t, dataURI, session.CapturedImage())
		assert.Equal(t, camera.Captured, session.State())
		assert.Equal(t, 1, track.stopped, "capture must release the stream")
	})

	t.Run("rejected before the feed produced a frame", func(t *testing.T) {
		t.Parallel()
		device := &fakeDevice{streams: []*fakeStream{{tracks: []camera.Track{&fakeTrack{}}}}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		_, err := session.Capture()

		assert.ErrorIs(t, err, camera.ErrNoFrame)
		assert.Equal(t, camera.Previewing, session.State())
	})

	t.Run("rejected on zero-size frames", func(t *testing.T) {
		t.Parallel()
		device := &fakeDevice{streams: []*fakeStream{{
			tracks: []camera.Track{&fakeTrack{}},
			frame:  image.NewRGBA(image.Rect(0, 0, 0, 0)),
		}}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		_, err := session.Capture()

		assert.ErrorIs(t, err, camera.ErrNoFrame)
	})

	t.Run("rejected while idle", func(t *testing.T) {
		t.Parallel()
		session := newSession(t, &fakeDevice{})

		_, err := session.Capture()

		assert.ErrorIs(t, err, camera.ErrNotPreviewing)
	})

	t.Run("restart discards the captured image", func(t *testing.T) {
		t.Parallel()
		device := &fakeDevice{streams: []*fakeStream{
			{tracks: []camera.Track{&fakeTrack{}}, frame: testFrame(2, 2)},
			{tracks: []camera.Track{&fakeTrack{}}},
		}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))
		_, err := session.Capture()
		require.NoError(t, err)

		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		assert.Empty(t, session.CapturedImage())
		assert.Equal(t, camera.Previewing, session.State())
	})
}

func TestToggleFacing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("live constraint switch keeps the stream", func(t *testing.T) {
		t.Parallel()
		track := &liveTrack{fakeTrack: &fakeTrack{}}
		device := &fakeDevice{streams: []*fakeStream{{tracks: []camera.Track{track}}}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		require.NoError(t, session.ToggleFacing(ctx))

		assert.Equal(t, camera.FacingUser, session.Facing())
		assert.Equal(t, camera.Previewing, session.State())
		assert.Zero(t, track.stopped, "stream must be preserved")
		require.Len(t, device.acquired, 1, "stream must not be reacquired")
		require.Len(t, track.applied, 1)
		assert.Equal(t, camera.FacingUser, track.applied[0].FacingMode)
	})

	t.Run("rejected constraint switch falls back to reacquisition", func(t *testing.T) {
		t.Parallel()
		track := &liveTrack{fakeTrack: &fakeTrack{applyErr: assert.AnError}}
		device := &fakeDevice{streams: []*fakeStream{
			{tracks: []camera.Track{track}},
			{tracks: []camera.Track{&fakeTrack{}}},
		}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		require.NoError(t, session.ToggleFacing(ctx))

		assert.Equal(t, camera.FacingUser, session.Facing())
		assert.Equal(t, 1, track.stopped, "old stream must be stopped before reacquiring")
		require.Len(t, device.acquired, 2)
		assert.Equal(t, camera.FacingUser, device.acquired[1].FacingMode)
	})

	t.Run("track without live constraints reacquires", func(t *testing.T) {
		t.Parallel()
		track := &fakeTrack{}
		device := &fakeDevice{streams: []*fakeStream{
			{tracks: []camera.Track{track}},
			{tracks: []camera.Track{&fakeTrack{}}},
		}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		require.NoError(t, session.ToggleFacing(ctx))

		assert.Equal(t, camera.FacingUser, session.Facing())
		assert.Equal(t, 1, track.stopped)
		require.Len(t, device.acquired, 2)
	})
}

func TestStop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stops every track and is idempotent", func(t *testing.T) {
		t.Parallel()
		trackA := &fakeTrack{}
		trackB := &fakeTrack{}
		device := &fakeDevice{streams: []*fakeStream{{tracks: []camera.Track{trackA, trackB}}}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))

		session.Stop()
		session.Stop()

		assert.Equal(t, 1, trackA.stopped)
		assert.Equal(t, 1, trackB.stopped)
		assert.Equal(t, camera.Idle, session.State())
	})

	t.Run("retake returns to idle", func(t *testing.T) {
		t.Parallel()
		device := &fakeDevice{streams: []*fakeStream{{
			tracks: []camera.Track{&fakeTrack{}},
			frame:  testFrame(2, 2),
		}}}
		session := newSession(t, device)
		require.NoError(t, session.Start(ctx, camera.FacingEnvironment))
		_, err := session.Capture()
		require.NoError(t, err)

		session.Retake()

		assert.Equal(t, camera.Idle, session.State())
		assert.Empty(t, session.CapturedImage())
	})
}
