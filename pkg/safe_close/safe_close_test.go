package safe_close

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestSafeClose_SignalAndWait(t *testing.T) {
	sc := New()

	var closedCount int32
	for i := 0; i < 3; i++ {
		signal, done := sc.Attach()
		go func() {
			<-signal
			atomic.AddInt32(&closedCount, 1)
			done()
		}()
	}

	sc.SendCloseSignal()

	waitDone := make(chan struct{})
	go func() {
		sc.WaitClosed()
		close(waitDone)
	}()

	select {
	case <-waitDone:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitClosed did not return after all components exited")
	}

	if got := atomic.LoadInt32(&closedCount); got != 3 {
		t.Errorf("Expected 3 components closed, got %d", got)
	}
}

func TestSafeClose_AttachAfterClose(t *testing.T) {
	sc := New()
	sc.SendCloseSignal()

	signal, done := sc.Attach()
	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatal("Expected signal channel to be closed for late Attach")
	}
	done()

	// 重复广播应当安全
	sc.SendCloseSignal()
	sc.WaitClosed()
}
