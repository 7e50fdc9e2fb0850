package media

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"splice/internal/timeline"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestPlayClock(fc *fakeClock) *playClock {
	return &playClock{now: fc.Now}
}

func TestPlayClockAdvancesOnlyWhileRunning(t *testing.T) {
	fc := &fakeClock{now: time.Unix(0, 0)}
	clock := newTestPlayClock(fc)

	fc.Advance(time.Second)
	if got := clock.Position(); got != 0 {
		t.Fatalf("stopped clock moved to %v", got)
	}

	clock.Start()
	fc.Advance(2 * time.Second)
	if got := clock.Position(); got != 2*time.Second {
		t.Fatalf("position = %v, want 2s", got)
	}

	clock.Pause()
	fc.Advance(5 * time.Second)
	if got := clock.Position(); got != 2*time.Second {
		t.Fatalf("paused clock moved to %v", got)
	}

	clock.Start()
	fc.Advance(time.Second)
	if got := clock.Position(); got != 3*time.Second {
		t.Fatalf("resumed position = %v, want 3s", got)
	}
}

func TestPlayClockSeekWhileRunning(t *testing.T) {
	fc := &fakeClock{now: time.Unix(0, 0)}
	clock := newTestPlayClock(fc)
	clock.Start()
	fc.Advance(4 * time.Second)

	clock.SeekTo(10 * time.Second)
	if got := clock.Position(); got != 10*time.Second {
		t.Fatalf("position after seek = %v, want 10s", got)
	}
	fc.Advance(time.Second)
	if got := clock.Position(); got != 11*time.Second {
		t.Fatalf("position = %v, want 11s", got)
	}
}

func writeTestPNG(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "still.png")
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	file, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	if err := png.Encode(file, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func waitReady(t *testing.T, r Resource) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.Ready() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("resource never became ready")
}

func TestImageResourceDecodes(t *testing.T) {
	path := writeTestPNG(t, t.TempDir())
	res := newImageResource(path, nil)
	waitReady(t, res)

	if res.Frame() == nil {
		t.Fatal("expected decoded frame")
	}
	if got := res.Frame().Bounds().Dx(); got != 8 {
		t.Fatalf("frame width = %d, want 8", got)
	}

	res.Stop()
	if res.Ready() || res.Frame() != nil {
		t.Fatal("stopped image resource must release its frame")
	}
}

func TestImageResourceMissingFileNeverReady(t *testing.T) {
	res := newImageResource(filepath.Join(t.TempDir(), "absent.png"), nil)
	time.Sleep(50 * time.Millisecond)
	if res.Ready() {
		t.Fatal("missing image must not become ready")
	}
}

type stubProber struct {
	meta Metadata
	err  error
}

func (s stubProber) Probe(context.Context, string) (Metadata, error) { return s.meta, s.err }

type stubExtractor struct{}

func (stubExtractor) ExtractFrame(context.Context, string, time.Duration) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

func TestAllocatorBuildsPerType(t *testing.T) {
	alloc := NewAllocatorWithTools(stubProber{meta: Metadata{Duration: 5 * time.Second, HasVideo: true}}, stubExtractor{}, "", nil)

	video, err := alloc.Allocate(context.Background(), timeline.MediaVideo, "/tmp/a.mp4")
	if err != nil {
		t.Fatalf("video: %v", err)
	}
	if _, ok := video.(*videoResource); !ok {
		t.Fatalf("video resource type = %T", video)
	}

	audio, err := alloc.Allocate(context.Background(), timeline.MediaAudio, "/tmp/a.flac")
	if err != nil {
		t.Fatalf("audio: %v", err)
	}
	if audio.Frame() != nil {
		t.Fatal("audio must not produce frames")
	}

	if _, err := alloc.Allocate(context.Background(), timeline.MediaType("bogus"), "/tmp/x"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestVideoResourceStopIsTerminal(t *testing.T) {
	res := newVideoResource("/tmp/a.mp4", Metadata{}, nil, nil)
	res.Stop()
	if err := res.Start(context.Background()); err == nil {
		t.Fatal("expected start failure after stop")
	}
}

func TestAudioResourceSeekAndPosition(t *testing.T) {
	res := newAudioResource("/tmp/a.flac", Metadata{})
	res.SeekTo(1500 * time.Millisecond)
	if got := res.Position(); got != 1500*time.Millisecond {
		t.Fatalf("position = %v", got)
	}
}

func TestResolvePathJoinsMediaDir(t *testing.T) {
	alloc := NewAllocatorWithTools(stubProber{}, nil, "/media/library", nil)
	got, err := alloc.resolvePath("clips/a.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/media/library/clips/a.mp4" {
		t.Fatalf("resolved = %q", got)
	}

	got, err = alloc.resolvePath("file:///direct/b.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if got != "/direct/b.mp4" {
		t.Fatalf("resolved = %q", got)
	}
}
