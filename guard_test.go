package lockcell_test

import (
	"testing"

	"github.com/brickingsoft/lockcell"
	"github.com/brickingsoft/lockcell/pkg/hostsim"
)

func TestGuard_Unlock_Depth(t *testing.T) {
	platform := hostsim.New()
	outer := lockcell.NewNoPreempt(platform, 0)
	inner := lockcell.NewNoPreempt(platform, 0)

	detach := platform.Attach(1)
	defer detach()

	a := outer.Lock()
	if depth := platform.Depth(); depth != 1 {
		t.Error("depth after first lock:", depth)
	}
	b := inner.Lock()
	if depth := platform.Depth(); depth != 2 {
		t.Error("depth after nested lock:", depth)
	}
	b.Unlock()
	if depth := platform.Depth(); depth != 1 {
		t.Error("depth after nested unlock:", depth)
	}
	a.Unlock()
	if depth := platform.Depth(); depth != 0 {
		t.Error("depth after final unlock:", depth)
	}
}

func TestGuard_Unlock_OnPanic(t *testing.T) {
	platform := hostsim.New()
	cell := lockcell.NewNoPreempt(platform, 0)

	detach := platform.Attach(1)
	defer detach()

	func() {
		defer func() {
			_ = recover()
		}()
		guard := cell.Lock()
		defer guard.Unlock()
		panic("critical section failed")
	}()

	if depth := platform.Depth(); depth != 0 {
		t.Error("interrupt disable depth not restored after unwinding:", depth)
	}
	guard, ok := cell.TryLock()
	if !ok {
		t.Fatal("lock not released after unwinding")
		return
	}
	guard.Unlock()
}

func TestGuard_Unlock_Twice(t *testing.T) {
	platform := hostsim.New()
	cell := lockcell.New(platform, 0)

	detach := platform.Attach(1)
	defer detach()
	guard := cell.Lock()
	guard.Unlock()

	defer func() {
		if recover() == nil {
			t.Fatal("second unlock was accepted")
		}
	}()
	guard.Unlock()
}

func TestLockCell_TryLock_DepthRestored(t *testing.T) {
	platform := hostsim.New()
	cell := lockcell.NewNoPreempt(platform, 0)

	detach := platform.Attach(1)
	defer detach()
	held := cell.Lock()
	defer held.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		d := platform.Attach(2)
		defer d()
		if _, ok := cell.TryLock(); ok {
			t.Error("try lock succeeded while the lock is held")
			return
		}
		if depth := platform.Depth(); depth != 0 {
			t.Error("failed try lock leaked interrupt disable depth:", depth)
		}
	}()
	<-done
}
