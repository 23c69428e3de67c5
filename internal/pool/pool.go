// Package pool provides sync.Pool backed buffers for the render path.
package pool

import (
	"strings"
	"sync"
)

// maxPooledSize keeps one oversized frame from pinning memory.
const maxPooledSize = 1 << 20

var stringBuilderPool = sync.Pool{
	New: func() any { return new(strings.Builder) },
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	if sb == nil || sb.Cap() > maxPooledSize {
		return
	}
	sb.Reset()
	stringBuilderPool.Put(sb)
}

var byteSlicePool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 4096)
		return &b
	},
}

// GetByteSlice returns an empty byte slice from the pool.
func GetByteSlice() *[]byte {
	return byteSlicePool.Get().(*[]byte)
}

// PutByteSlice truncates buf and returns it to the pool.
func PutByteSlice(buf *[]byte) {
	if buf == nil || cap(*buf) > maxPooledSize {
		return
	}
	*buf = (*buf)[:0]
	byteSlicePool.Put(buf)
}
