package hostsim

import (
	"runtime"
	"strconv"
	"sync"

	"github.com/brickingsoft/lockcell"
	"github.com/brickingsoft/lockcell/pkg/nesting"
	"github.com/brickingsoft/lockcell/pkg/spin"
)

var _ lockcell.Platform = (*Platform)(nil)

// New
// 创建宿主端模拟平台
func New() *Platform {
	return &Platform{
		locker: spin.New(),
		cores:  make(map[uint64]*core),
	}
}

// Platform
// 宿主端模拟平台，lockcell.Platform 的参考实现，用于测试。
//
// 每个模拟核绑定一个 goroutine（见 Attach），核的中断、异常标记
// 由该 goroutine 自身切换，关中断嵌套深度按核计数。
type Platform struct {
	locker sync.Locker
	cores  map[uint64]*core
}

type core struct {
	id        uint32
	interrupt bool
	exception bool
	depth     *nesting.Counter
}

// Attach
// 把当前 goroutine 绑定为标识为 coreID 的模拟核，返回解绑函数。
//
// coreID 不可等于 lockcell.NoOwner ，一个 goroutine 只能绑定一次。
func (p *Platform) Attach(coreID uint32) (detach func()) {
	if coreID == lockcell.NoOwner {
		panic("hostsim: core id equals the no-owner sentinel")
	}
	gid := goid()
	c := &core{
		id:    coreID,
		depth: nesting.New(),
	}
	p.locker.Lock()
	if _, has := p.cores[gid]; has {
		p.locker.Unlock()
		panic("hostsim: goroutine already attached to a core")
	}
	p.cores[gid] = c
	p.locker.Unlock()
	return func() {
		p.locker.Lock()
		delete(p.cores, gid)
		p.locker.Unlock()
	}
}

// EnterInterrupt
// 当前核进入中断上下文
func (p *Platform) EnterInterrupt() {
	p.current().interrupt = true
}

// LeaveInterrupt
// 当前核离开中断上下文
func (p *Platform) LeaveInterrupt() {
	p.current().interrupt = false
}

// EnterException
// 当前核进入异常上下文
func (p *Platform) EnterException() {
	p.current().exception = true
}

// LeaveException
// 当前核离开异常上下文
func (p *Platform) LeaveException() {
	p.current().exception = false
}

// Depth
// 当前核的关中断嵌套深度
func (p *Platform) Depth() int64 {
	return p.current().depth.Value()
}

func (p *Platform) InInterrupt() bool {
	return p.current().interrupt
}

func (p *Platform) InException() bool {
	return p.current().exception
}

func (p *Platform) CoreID() uint32 {
	return p.current().id
}

func (p *Platform) EnterLock() {
	p.current().depth.Incr()
}

func (p *Platform) ExitLock() {
	p.current().depth.Decr()
}

func (p *Platform) current() *core {
	gid := goid()
	p.locker.Lock()
	c := p.cores[gid]
	p.locker.Unlock()
	if c == nil {
		panic("hostsim: goroutine is not attached to a core")
	}
	return c
}

// goid 从 runtime.Stack 的首行解析当前 goroutine 标识
func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	s := string(buf[:n])
	s = s[len("goroutine "):]
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			id, err := strconv.ParseUint(s[:i], 10, 64)
			if err != nil {
				break
			}
			return id
		}
	}
	panic("hostsim: cannot parse goroutine id")
}
