package spin

import (
	"runtime"
	"sync"
	"sync/atomic"
)

const maxBackoff = 16

// Wait
// 自旋等待一步，退避指数增长，封顶 maxBackoff 。
func Wait(backoff *int) {
	for i := 0; i < *backoff; i++ {
		runtime.Gosched()
	}
	if *backoff < maxBackoff {
		*backoff <<= 1
	}
}

// New
// 创建自旋锁
func New() sync.Locker {
	return &Locker{}
}

type Locker struct {
	n atomic.Int64
}

func (sl *Locker) Lock() {
	backoff := 1
	for !sl.n.CompareAndSwap(0, 1) {
		Wait(&backoff)
	}
}

func (sl *Locker) Unlock() {
	sl.n.Store(0)
}
