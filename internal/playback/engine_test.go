package playback

import (
	"context"
	"testing"
	"time"
)

func TestSeekIdempotent(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 5000))

	fx.engine.Seek(context.Background(), tracks, 1000)
	first := fx.allocator.resource("a.mp4").snapshot()

	fx.engine.Seek(context.Background(), tracks, 1000)
	second := fx.allocator.resource("a.mp4").snapshot()

	if fx.allocator.allocationCount("a.mp4") != 1 {
		t.Fatalf("allocations = %d, want 1", fx.allocator.allocationCount("a.mp4"))
	}
	if second.stopped {
		t.Fatal("second identical seek destroyed the entry")
	}
	if first.position != second.position {
		t.Fatalf("positions diverged: %v vs %v", first.position, second.position)
	}
}

func TestLoadWithoutPlayThenPlayStartsSameHandle(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 5000))

	fx.engine.Seek(context.Background(), tracks, 1000)
	res := fx.allocator.resource("a.mp4")
	if res.snapshot().running {
		t.Fatal("seek while stopped must not start the resource")
	}

	fx.engine.Play(context.Background(), tracks, 5000)
	if !res.snapshot().running {
		t.Fatal("play must start the pre-positioned handle")
	}
	if fx.allocator.allocationCount("a.mp4") != 1 {
		t.Fatal("play recreated an already-active handle")
	}
}

func TestTickAdvancesWithoutSpuriousRestart(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 60000))

	fx.engine.Play(context.Background(), tracks, 60000)
	res := fx.allocator.resource("a.mp4")
	startsAfterPlay := res.snapshot().startCalls

	fx.clock.Advance(16 * time.Millisecond)
	fx.scheduler.Fire()
	fx.clock.Advance(16 * time.Millisecond)
	fx.scheduler.Fire()

	if got := fx.engine.Position(); got != 32 {
		t.Fatalf("position = %dms, want 32ms", got)
	}
	snap := res.snapshot()
	if snap.stopped {
		t.Fatal("continuing entry was destroyed mid-playback")
	}
	if snap.startCalls != startsAfterPlay {
		t.Fatalf("start calls grew from %d to %d across ticks", startsAfterPlay, snap.startCalls)
	}
	if fx.allocator.allocationCount("a.mp4") != 1 {
		t.Fatal("continuing entry was reallocated")
	}
}

func TestTickClampsAtTotalAndPauses(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 5000))

	fx.engine.Play(context.Background(), tracks, 5000)
	fx.clock.Advance(10 * time.Second)
	fx.scheduler.Fire()

	if got := fx.engine.Position(); got != 5000 {
		t.Fatalf("position = %d, want clamped 5000", got)
	}
	if fx.engine.CurrentState() != StatePaused {
		t.Fatalf("state = %s, want paused", fx.engine.CurrentState())
	}
	if fx.scheduler.HasPending() {
		t.Fatal("tick rescheduled after reaching the end")
	}
	// Item interval is half-open, so at exactly total the entry is gone.
	if ids := fx.engine.ActiveItemIDs(); len(ids) != 0 {
		t.Fatalf("active at end = %v, want none", ids)
	}
}

func TestPauseFreezesWithoutDestroying(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 60000))

	fx.engine.Play(context.Background(), tracks, 60000)
	fx.engine.Pause()
	fx.engine.Pause() // idempotent

	res := fx.allocator.resource("a.mp4").snapshot()
	if res.stopped {
		t.Fatal("pause destroyed the entry")
	}
	if res.running {
		t.Fatal("pause left the resource advancing")
	}
	if fx.scheduler.HasPending() {
		t.Fatal("pause left a tick scheduled")
	}
	if fx.engine.CurrentState() != StatePaused {
		t.Fatalf("state = %s", fx.engine.CurrentState())
	}
}

func TestNoTickFiresAfterPause(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 60000))

	fx.engine.Play(context.Background(), tracks, 60000)
	fx.engine.Pause()

	fx.clock.Advance(time.Second)
	if fx.scheduler.Fire() {
		t.Fatal("a tick fired after the pause transition")
	}
	if got := fx.engine.Position(); got != 0 {
		t.Fatalf("playhead moved while paused: %d", got)
	}
}

func TestStopResetsPlayheadAndDestroysEntries(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 60000))

	fx.engine.Play(context.Background(), tracks, 60000)
	fx.clock.Advance(100 * time.Millisecond)
	fx.scheduler.Fire()
	fx.engine.Stop(context.Background())

	if got := fx.engine.Position(); got != 0 {
		t.Fatalf("position after stop = %d, want 0", got)
	}
	if fx.engine.CurrentState() != StateStopped {
		t.Fatalf("state = %s", fx.engine.CurrentState())
	}
	if !fx.allocator.resource("a.mp4").snapshot().stopped {
		t.Fatal("stop must destroy active entries")
	}
	if ids := fx.engine.ActiveItemIDs(); len(ids) != 0 {
		t.Fatalf("active after stop = %v", ids)
	}
}

func TestSeekDestroysOutOfRangeAndRepositionsInRange(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(
		videoItem("a", "t0", 0, 5000),
		videoItem("b", "t0", 5000, 5000),
	)

	fx.engine.Seek(context.Background(), tracks, 1000)
	resA := fx.allocator.resource("a.mp4")

	fx.engine.Seek(context.Background(), tracks, 3000)
	if got := resA.Position(); got != 3*time.Second {
		t.Fatalf("in-range entry position = %v, want 3s", got)
	}
	if resA.snapshot().stopped {
		t.Fatal("in-range entry destroyed by seek")
	}

	fx.engine.Seek(context.Background(), tracks, 7000)
	if !resA.snapshot().stopped {
		t.Fatal("out-of-range entry survived seek")
	}
	if fx.allocator.resource("b.mp4") == nil {
		t.Fatal("newly covered item not materialized")
	}
}

func TestSeekWhilePlayingStartsNewEntries(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(
		videoItem("a", "t0", 0, 5000),
		videoItem("b", "t0", 5000, 5000),
	)

	fx.engine.Play(context.Background(), tracks, 10000)
	fx.engine.Seek(context.Background(), tracks, 7000)

	if !fx.allocator.resource("b.mp4").snapshot().running {
		t.Fatal("seek during playback must start newly covered entries")
	}
}

func TestPlayWhilePlayingIsNoop(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 60000))

	fx.engine.Play(context.Background(), tracks, 60000)
	starts := fx.allocator.resource("a.mp4").snapshot().startCalls
	fx.engine.Play(context.Background(), tracks, 60000)

	if got := fx.allocator.resource("a.mp4").snapshot().startCalls; got != starts {
		t.Fatalf("second play restarted handles: %d -> %d", starts, got)
	}
}

func TestStartDeniedRetriesMutedOnce(t *testing.T) {
	fx := newEngineFixture()
	fx.allocator.denyStarts = 1
	tracks := singleTrack(videoItem("a", "t0", 0, 60000))

	fx.engine.Play(context.Background(), tracks, 60000)

	res := fx.allocator.resource("a.mp4").snapshot()
	if res.startCalls != 2 {
		t.Fatalf("start calls = %d, want denial then muted retry", res.startCalls)
	}
	if !res.muted {
		t.Fatal("retry must mute the resource")
	}
	if !res.running {
		t.Fatal("muted retry should have succeeded")
	}
}

func TestStartDeniedTwiceIsSwallowed(t *testing.T) {
	fx := newEngineFixture()
	fx.allocator.denyStarts = 2
	tracks := singleTrack(videoItem("a", "t0", 0, 60000))

	fx.engine.Play(context.Background(), tracks, 60000)

	res := fx.allocator.resource("a.mp4").snapshot()
	if res.startCalls != 2 {
		t.Fatalf("start calls = %d, want exactly 2", res.startCalls)
	}
	if res.running {
		t.Fatal("resource should have stayed frozen")
	}
	// Playback itself carries on.
	fx.clock.Advance(16 * time.Millisecond)
	if !fx.scheduler.Fire() {
		t.Fatal("frame loop stopped over a declined start")
	}
}

func TestSetPlayheadPositionSkipsResync(t *testing.T) {
	fx := newEngineFixture()

	fx.engine.SetPlayheadPosition(1000)
	if got := fx.engine.Position(); got != 1000 {
		t.Fatalf("position = %d", got)
	}
	if fx.allocator.resource("a.mp4") != nil {
		t.Fatal("scrub preview must not materialize resources")
	}
}

func TestPlayClampsAfterPriorPauseResumes(t *testing.T) {
	fx := newEngineFixture()
	tracks := singleTrack(videoItem("a", "t0", 0, 60000))

	fx.engine.Play(context.Background(), tracks, 60000)
	fx.clock.Advance(50 * time.Millisecond)
	fx.scheduler.Fire()
	fx.engine.Pause()

	// Time passing while paused must not jump the playhead on resume.
	fx.clock.Advance(10 * time.Second)
	fx.engine.Play(context.Background(), tracks, 60000)
	fx.clock.Advance(16 * time.Millisecond)
	fx.scheduler.Fire()

	if got := fx.engine.Position(); got != 66 {
		t.Fatalf("position = %dms, want 66ms", got)
	}
}
