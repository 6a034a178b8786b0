package lockcell

import (
	"sync/atomic"

	"github.com/brickingsoft/errors"
	"github.com/brickingsoft/lockcell/pkg/spin"
)

// LockCell
// 票号自旋锁守护的变量单元
//
// 阻塞式加锁按票号先进先出授予，TryLock 不排队。owner 记录当前持有锁的核，
// 同核重入视为死锁并致命终止。
//
// 字段按 ticket、release、owner、disablesInterrupts、value、platform 的顺序声明。
// 注意 Go 不保证结构体的内存布局，跨编译边界共享同一单元的嵌入系统
// 不可依赖字段的具体偏移。
type LockCell[T any] struct {
	// ticket
	// 票号计数器。取号后等待 release 到达自己的票号。
	ticket uint32
	// release
	// 下一个允许进入的票号。锁空闲时等于 ticket 。
	release uint32
	// owner
	// 当前持有锁的核，空闲时为 NoOwner 。
	owner uint32
	// disablesInterrupts
	// 持锁期间是否必须关闭中断。构建后不可变。
	disablesInterrupts bool
	// value
	// 受保护的值
	value T
	// platform
	// 注入的平台能力
	platform Platform
}

// New
// 创建可被抢占的 LockCell ，临界区内不关闭中断。
//
// 不可在中断上下文中对这种单元加锁，那种场景应使用 NewNoPreempt 。
func New[T any](platform Platform, value T) *LockCell[T] {
	if platform == nil {
		panic("lockcell: platform is nil")
	}
	return &LockCell[T]{
		owner:    NoOwner,
		value:    value,
		platform: platform,
	}
}

// NewNoPreempt
// 创建不可被抢占的 LockCell ，持锁期间整段临界区关闭中断。
func NewNoPreempt[T any](platform Platform, value T) *LockCell[T] {
	if platform == nil {
		panic("lockcell: platform is nil")
	}
	return &LockCell[T]{
		owner:              NoOwner,
		disablesInterrupts: true,
		value:              value,
		platform:           platform,
	}
}

// Lock
// 阻塞式加锁，按票号顺序授予，返回访问守卫。
//
// 同核重入、在中断上下文中对可抢占单元加锁、在异常上下文中阻塞式加锁，
// 均为不可恢复的使用错误，panic 携带对应的已定义错误。
func (cell *LockCell[T]) Lock() (guard *Guard[T]) {
	guard, _ = cell.lock(false)
	return
}

// TryLock
// 非阻塞式加锁，仅做一次尝试，不取号不排队，失败返回 false 。
func (cell *LockCell[T]) TryLock() (guard *Guard[T], ok bool) {
	return cell.lock(true)
}

func (cell *LockCell[T]) lock(try bool) (*Guard[T], bool) {
	// 不关中断的锁在中断里被使用，该单元本应以 NewNoPreempt 构建
	if !cell.disablesInterrupts && cell.platform.InInterrupt() {
		panic(errors.From(ErrInterruptContext))
	}
	// 异常上下文中只允许 TryLock
	if !try && cell.platform.InException() {
		panic(errors.From(ErrExceptionContext))
	}

	id := cell.platform.CoreID()

	if cell.disablesInterrupts {
		cell.platform.EnterLock()
	}

	if try {
		// 只争夺当前就绪的票号，失败立即退出，不影响排队公平性。
		release := atomic.LoadUint32(&cell.release)
		if !atomic.CompareAndSwapUint32(&cell.ticket, release, release+1) {
			if cell.disablesInterrupts {
				cell.platform.ExitLock()
			}
			return nil, false
		}
	} else {
		ticket := atomic.AddUint32(&cell.ticket, 1) - 1
		backoff := 1
		for atomic.LoadUint32(&cell.release) != ticket {
			if atomic.LoadUint32(&cell.owner) == id {
				panic(errors.From(ErrDeadlock))
			}
			spin.Wait(&backoff)
		}
	}

	atomic.StoreUint32(&cell.owner, id)
	return &Guard[T]{cell: cell}, true
}

// Shatter
// 逃生舱口：无视锁状态直接返回受保护值的指针。
//
// 绕过全部互斥保证，仅用于无法遵守正常协议的场景（比如致命错误的上报路径），
// 数据竞争的后果由调用方承担。
func (cell *LockCell[T]) Shatter() *T {
	return &cell.value
}
