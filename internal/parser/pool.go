package parser

import (
	"bufio"
	"io"
	"sync"
)

const (
	scannerBufferSize    = 64 * 1024       // 64KB per scanner
	maxScannerBufferSize = 4 * 1024 * 1024 // 4MB max line

	// Most fonts are fewer than 16 rows tall
	rowSliceCapacity = 16
)

// scannerPool holds scanner buffers so loading many fonts (the font cache,
// golden generation) does not allocate a fresh 64KB buffer per font.
// Only buffers within the size bounds are returned to the pool.
var scannerPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, scannerBufferSize)
		return &buf
	},
}

// rowSlicePool holds the scratch slices used while reading glyph rows.
// NewGlyph copies rows, so the slice can be reused once a glyph is built.
var rowSlicePool = sync.Pool{
	New: func() interface{} {
		s := make([]string, 0, rowSliceCapacity)
		return &s
	},
}

func acquireScannerBuffer() []byte {
	bufPtr, ok := scannerPool.Get().(*[]byte)
	if !ok {
		return make([]byte, 0, scannerBufferSize)
	}
	return (*bufPtr)[:0]
}

func releaseScannerBuffer(buf []byte) {
	if buf == nil || cap(buf) < scannerBufferSize/2 || cap(buf) > maxScannerBufferSize {
		return
	}
	buf = buf[:0]
	scannerPool.Put(&buf)
}

// createPooledScanner creates a line scanner backed by a pooled buffer.
// The caller releases the returned buffer when done scanning.
func createPooledScanner(r io.Reader) (*bufio.Scanner, []byte) {
	scanner := bufio.NewScanner(r)
	buf := acquireScannerBuffer()
	scanner.Buffer(buf, maxScannerBufferSize)
	return scanner, buf
}

// acquireRowSlice returns an empty slice with at least the given capacity.
func acquireRowSlice(capacity int) []string {
	slicePtr, ok := rowSlicePool.Get().(*[]string)
	if !ok || cap(*slicePtr) < capacity {
		return make([]string, 0, capacity)
	}
	return (*slicePtr)[:0]
}

func releaseRowSlice(slice []string) {
	if cap(slice) < rowSliceCapacity {
		return
	}
	// Clear references to help GC
	for i := range slice {
		slice[i] = ""
	}
	slice = slice[:0]
	rowSlicePool.Put(&slice)
}
