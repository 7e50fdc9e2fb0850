package playback

import (
	"context"
	"image"
	"image/color"
	"sync"
	"time"

	"splice/internal/media"
	"splice/internal/timeline"
)

// fakeResource records lifecycle calls and simulates a resource clock that
// only moves via SeekTo.
type fakeResource struct {
	mu         sync.Mutex
	position   time.Duration
	running    bool
	stopped    bool
	muted      bool
	ready      bool
	frame      image.Image
	denyStarts int
	startCalls int
	seekCalls  int
}

func (f *fakeResource) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.startCalls++
	if f.denyStarts > 0 {
		f.denyStarts--
		return context.DeadlineExceeded
	}
	f.running = true
	return nil
}

func (f *fakeResource) Pause() {
	f.mu.Lock()
	f.running = false
	f.mu.Unlock()
}

func (f *fakeResource) Stop() {
	f.mu.Lock()
	f.running = false
	f.stopped = true
	f.mu.Unlock()
}

func (f *fakeResource) SeekTo(offset time.Duration) {
	f.mu.Lock()
	f.position = offset
	f.seekCalls++
	f.mu.Unlock()
}

func (f *fakeResource) Position() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.position
}

func (f *fakeResource) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready && !f.stopped
}

func (f *fakeResource) Frame() image.Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopped {
		return nil
	}
	return f.frame
}

func (f *fakeResource) SetMuted(muted bool) {
	f.mu.Lock()
	f.muted = muted
	f.mu.Unlock()
}

func (f *fakeResource) snapshot() fakeResource {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fakeResource{
		position:   f.position,
		running:    f.running,
		stopped:    f.stopped,
		muted:      f.muted,
		startCalls: f.startCalls,
		seekCalls:  f.seekCalls,
	}
}

// fakeAllocator hands out fakeResources and counts allocations per item url.
type fakeAllocator struct {
	mu          sync.Mutex
	resources   map[string]*fakeResource
	allocations map[string]int
	denyStarts  int
	failURLs    map[string]bool
}

func newFakeAllocator() *fakeAllocator {
	return &fakeAllocator{
		resources:   make(map[string]*fakeResource),
		allocations: make(map[string]int),
		failURLs:    make(map[string]bool),
	}
}

func (a *fakeAllocator) Allocate(ctx context.Context, mediaType timeline.MediaType, url string) (media.Resource, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failURLs[url] {
		return nil, context.DeadlineExceeded
	}
	a.allocations[url]++
	res := &fakeResource{denyStarts: a.denyStarts, ready: true}
	if mediaType.Visual() {
		res.frame = solidFrame(color.RGBA{R: 0x80, A: 0xff}, 4, 4)
	}
	a.resources[url] = res
	return res, nil
}

func (a *fakeAllocator) resource(url string) *fakeResource {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resources[url]
}

func (a *fakeAllocator) allocationCount(url string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocations[url]
}

// manualScheduler lets tests fire frame ticks explicitly.
type manualScheduler struct {
	mu      sync.Mutex
	pending func()
}

func (s *manualScheduler) ScheduleTick(fn func()) {
	s.mu.Lock()
	s.pending = fn
	s.mu.Unlock()
}

func (s *manualScheduler) CancelTick() {
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
}

func (s *manualScheduler) Fire() bool {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn()
	return true
}

func (s *manualScheduler) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// virtualClock feeds the engine a controllable notion of now.
type virtualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newVirtualClock() *virtualClock {
	return &virtualClock{now: time.Unix(1000, 0)}
}

func (c *virtualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *virtualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type engineFixture struct {
	engine    *Engine
	allocator *fakeAllocator
	scheduler *manualScheduler
	clock     *virtualClock
}

func newEngineFixture() *engineFixture {
	allocator := newFakeAllocator()
	scheduler := &manualScheduler{}
	clock := newVirtualClock()
	engine := NewEngine(EngineOptions{
		Allocator: allocator,
		Scheduler: scheduler,
	})
	engine.now = clock.Now
	return &engineFixture{engine: engine, allocator: allocator, scheduler: scheduler, clock: clock}
}

func solidFrame(c color.RGBA, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func videoItem(id, trackID string, start, duration int64) timeline.MediaItem {
	return timeline.MediaItem{
		ID:        id,
		Type:      timeline.MediaVideo,
		StartTime: start,
		Duration:  duration,
		TrackID:   trackID,
		URL:       id + ".mp4",
	}
}

func singleTrack(items ...timeline.MediaItem) []timeline.Track {
	return []timeline.Track{{ID: "t0", Name: "Track 0", Order: 0, Items: items}}
}
