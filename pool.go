package jfold

import "sync"

const maxScratchCap = 64 * 1024

var encodeStatePool = sync.Pool{
	New: func() any {
		return &encodeState{}
	},
}

func acquireEncodeState() *encodeState {
	return encodeStatePool.Get().(*encodeState)
}

// releaseEncodeState returns e to the pool. The frame and level stacks fall
// back to their inline backing arrays; the quoting scratch is kept unless it
// grew past maxScratchCap.
func releaseEncodeState(e *encodeState) {
	if e == nil {
		return
	}
	e.clear()
	if cap(e.scratch) > maxScratchCap {
		e.scratch = nil
	} else {
		e.scratch = e.scratch[:0]
	}
	encodeStatePool.Put(e)
}
