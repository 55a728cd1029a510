package renderer

import (
	"sync"

	"github.com/ryanlewis/figtext/internal/parser"
)

const (
	// Buffer retention thresholds - buffers larger than these are released
	// to prevent memory bloat in the pool from occasional large renders
	maxRetainWriteBuffer = 8192
	maxRetainGlyphCache  = 512
)

// smusherPool reuses smushers across renders. A pooled smusher keeps its
// row slice and, when the next render uses the same font, its converted
// glyph rows.
var smusherPool = sync.Pool{
	New: func() interface{} {
		return &Smusher{glyphRunes: make(map[*parser.Glyph][][]rune)}
	},
}

// writeBufferPool manages the row buffers used by RenderTo
var writeBufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 256)
		return &buf
	},
}

// acquireSmusher gets a smusher from the pool reset to the font defaults.
func acquireSmusher(font *parser.Font) *Smusher {
	s, ok := smusherPool.Get().(*Smusher)
	if !ok {
		return NewSmusher(font)
	}
	s.reset(font)
	return s
}

// releaseSmusher returns a smusher to the pool.
func releaseSmusher(s *Smusher) {
	if s == nil {
		return
	}
	s.debug = nil
	if len(s.glyphRunes) > maxRetainGlyphCache {
		s.glyphRunes = make(map[*parser.Glyph][][]rune)
	}
	smusherPool.Put(s)
}

// acquireWriteBuffer gets a write buffer from the pool
func acquireWriteBuffer() []byte {
	bufPtr, ok := writeBufferPool.Get().(*[]byte)
	if !ok {
		return make([]byte, 0, 256)
	}
	return (*bufPtr)[:0]
}

// releaseWriteBuffer returns a write buffer to the pool
func releaseWriteBuffer(buf []byte) {
	if buf == nil || cap(buf) < 128 || cap(buf) > maxRetainWriteBuffer {
		return
	}
	writeBufferPool.Put(&buf)
}
