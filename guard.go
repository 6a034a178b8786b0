package lockcell

import "sync/atomic"

// Guard
// 独占访问守卫
//
// 只能由一次成功的加锁产生，同一时刻一个单元至多存在一个活动守卫。
// 用 defer Guard.Unlock 配对 Lock ，提前返回与 panic 展开也会释放。
type Guard[T any] struct {
	cell     *LockCell[T]
	released bool
}

// Value
// 返回受保护值的指针，可读写，仅在 Unlock 前有效。
func (guard *Guard[T]) Value() *T {
	if guard.released {
		panic("lockcell: guard already released")
	}
	return &guard.cell.value
}

// Set
// 设置受保护的值
func (guard *Guard[T]) Set(value T) {
	if guard.released {
		panic("lockcell: guard already released")
	}
	guard.cell.value = value
}

// Unlock
// 释放锁，只能调用一次。
//
// 顺序固定：owner 置回 NoOwner ，release 自增放行下一个票号，
// 关中断的单元最后才 ExitLock ，保证释放记账也在关中断下完成。
func (guard *Guard[T]) Unlock() {
	if guard.released {
		panic("lockcell: guard already released")
	}
	guard.released = true

	cell := guard.cell
	atomic.StoreUint32(&cell.owner, NoOwner)
	atomic.AddUint32(&cell.release, 1)
	if cell.disablesInterrupts {
		cell.platform.ExitLock()
	}
}
