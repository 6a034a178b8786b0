package lockcell

import "math"

// NoOwner
// 无持有者哨兵值。锁空闲时 owner 等于该值，Platform.CoreID 不可返回该值。
const NoOwner uint32 = math.MaxUint32

// Platform
// 平台能力接口
//
// 由嵌入方实现，并在构建 LockCell 时注入。提供中断状态、异常状态、
// 核标识以及关中断锁的进出原语。
type Platform interface {
	// InInterrupt
	// 当前是否处于中断上下文
	InInterrupt() bool
	// InException
	// 当前是否处于异常上下文
	//
	// 异常可能抢占了别处不可被抢占的临界区，故异常中不可进行阻塞式加锁。
	InException() bool
	// CoreID
	// 当前核的唯一标识，不可等于 NoOwner 。
	CoreID() uint32
	// EnterLock
	// 取得了一把关中断的锁，需要关闭中断。
	//
	// 一个核可能同时持有多把关中断的锁，嵌套深度由实现方计数处理，
	// 比如每核一个关中断请求的引用计数。
	EnterLock()
	// ExitLock
	// 释放了一把关中断的锁，可以恢复中断。与 EnterLock 严格配对。
	ExitLock()
}
