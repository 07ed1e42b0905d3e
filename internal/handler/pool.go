package handler

import (
	"bytes"
	"sync"
)

const (
	bufferInitialSize = 512

	// Buffers that grew past this (order exports, long histories) are not reused
	bufferMaxPooledSize = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, bufferInitialSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > bufferMaxPooledSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
