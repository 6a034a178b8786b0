package nesting

import "sync/atomic"

// New
// 创建嵌套深度计数器
func New() *Counter {
	return new(Counter)
}

// Counter
// 嵌套深度计数器
//
// 用于实现每核的关中断引用计数：每次 Incr 对应一次关中断请求，
// Decr 回到 0 时才真正恢复中断。
type Counter struct {
	n int64
}

func (c *Counter) Incr() int64 {
	return atomic.AddInt64(&c.n, 1)
}

func (c *Counter) Decr() int64 {
	n := atomic.AddInt64(&c.n, -1)
	if n < 0 {
		panic("nesting: counter dropped below zero")
	}
	return n
}

func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.n)
}
