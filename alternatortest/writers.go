package alternatortest

import (
	"bytes"
	"sync"
)

type (
	// SafeBuffer is a bytes.Buffer that is safe for concurrent use.
	SafeBuffer struct {
		b  bytes.Buffer
		mu sync.Mutex
	}

	// BlockingWriter buffers writes, but blocks the Nth write (1-based),
	// until Release is called. Instances must be initialized using
	// NewBlockingWriter.
	BlockingWriter struct {
		entered chan struct{}
		release chan struct{}
		SafeBuffer
		block    int
		count    int
		countMu  sync.Mutex
		once     sync.Once
		released sync.Once
	}

	// FailingWriter buffers writes, but fails the Nth write (1-based), and all
	// writes after it.
	FailingWriter struct {
		Err error
		SafeBuffer
		Fail  int
		count int
	}
)

func (x *SafeBuffer) Write(p []byte) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.Write(p)
}

func (x *SafeBuffer) String() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.String()
}

// NewBlockingWriter initializes a BlockingWriter, blocking the Nth write.
func NewBlockingWriter(n int) *BlockingWriter {
	return &BlockingWriter{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		block:   n,
	}
}

func (x *BlockingWriter) Write(p []byte) (int, error) {
	x.countMu.Lock()
	x.count++
	block := x.count == x.block
	x.countMu.Unlock()
	if block {
		x.once.Do(func() { close(x.entered) })
		<-x.release
	}
	return x.SafeBuffer.Write(p)
}

// Entered is closed once the blocking write has started.
func (x *BlockingWriter) Entered() <-chan struct{} { return x.entered }

// Release unblocks the blocking write. It is safe to call multiple times.
func (x *BlockingWriter) Release() {
	x.released.Do(func() { close(x.release) })
}

func (x *FailingWriter) Write(p []byte) (int, error) {
	// note: writes are serialized by alternator.Printer
	x.count++
	if x.count >= x.Fail {
		return 0, x.Err
	}
	return x.SafeBuffer.Write(p)
}
