// Package safe_close coordinates graceful shutdown of background components
// Package safe_close 协调后台组件的优雅关闭
package safe_close

import (
	"sync"
)

// SafeClose 关闭协调器
// 各组件通过 Attach 注册，主进程通过 SendCloseSignal 广播关闭信号，
// 并用 WaitClosed 等待全部组件退出
type SafeClose struct {
	mu      sync.Mutex
	closed  bool
	signals []chan struct{}
	wg      sync.WaitGroup
}

func New() *SafeClose {
	return &SafeClose{}
}

// Attach 注册一个组件，返回关闭信号通道和退出回执函数
// 组件收到信号通道关闭后完成清理，再调用 done
func (s *SafeClose) Attach() (signal <-chan struct{}, done func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{})
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	s.signals = append(s.signals, ch)
	s.wg.Add(1)

	var once sync.Once
	return ch, func() {
		once.Do(s.wg.Done)
	}
}

// SendCloseSignal 广播关闭信号，重复调用是安全的
func (s *SafeClose) SendCloseSignal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for _, ch := range s.signals {
		close(ch)
	}
}

// WaitClosed 阻塞等待所有已注册组件退出
func (s *SafeClose) WaitClosed() {
	s.wg.Wait()
}
