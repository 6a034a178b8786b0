package lockcell

import "github.com/brickingsoft/errors"

const (
	errMetaPkgKey = "pkg"
	errMetaPkgVal = "lockcell"
)

var (
	// ErrDeadlock 同核重入（死锁）
	ErrDeadlock = errors.Define("deadlock detected", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
	// ErrInterruptContext 在中断上下文中对不关中断的单元加锁
	ErrInterruptContext = errors.Define("attempted to take a preemptable lock in an interrupt", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
	// ErrExceptionContext 在异常上下文中阻塞式加锁
	ErrExceptionContext = errors.Define("attempted to take a blocking lock while in an exception", errors.WithMeta(errMetaPkgKey, errMetaPkgVal))
)

// IsDeadlock
// 是否为 ErrDeadlock 错误
func IsDeadlock(err error) bool {
	return errors.Is(err, ErrDeadlock)
}

// IsInterruptContext
// 是否为 ErrInterruptContext 错误
func IsInterruptContext(err error) bool {
	return errors.Is(err, ErrInterruptContext)
}

// IsExceptionContext
// 是否为 ErrExceptionContext 错误
func IsExceptionContext(err error) bool {
	return errors.Is(err, ErrExceptionContext)
}
