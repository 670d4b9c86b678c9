package pathutil

import (
	"strconv"
	"strings"
	"sync"
)

// maxPooledDepth bounds the segment capacity kept by released pointers.
const maxPooledDepth = 32

var pointers sync.Pool

// Pointer provides incremental JSON Pointer construction.
// Segments are stored unescaped and escaped once in String().
type Pointer struct {
	segments []string
}

// Push adds a segment to the pointer.
func (p *Pointer) Push(segment string) {
	p.segments = append(p.segments, segment)
}

// PushIndex adds an array index segment.
func (p *Pointer) PushIndex(i int) {
	p.segments = append(p.segments, strconv.Itoa(i))
}

// Pop removes the last segment.
func (p *Pointer) Pop() {
	if len(p.segments) == 0 {
		return
	}
	p.segments = p.segments[:len(p.segments)-1]
}

// Acquire returns a pointer holding segments, reusing a released one when
// available. Callers hand it back with Release.
func Acquire(segments ...string) *Pointer {
	p, _ := pointers.Get().(*Pointer)
	if p == nil {
		p = &Pointer{segments: make([]string, 0, 8)}
	}
	p.segments = append(p.segments[:0], segments...)
	return p
}

// Release returns p to the pool; p must not be used afterwards. Segments are
// cleared so released pointers do not keep document strings alive.
func (p *Pointer) Release() {
	if p == nil || cap(p.segments) > maxPooledDepth {
		return
	}
	clear(p.segments[:cap(p.segments)])
	p.segments = p.segments[:0]
	pointers.Put(p)
}

// Reset clears the pointer for reuse.
func (p *Pointer) Reset() {
	p.segments = p.segments[:0]
}

// Len returns the number of segments.
func (p *Pointer) Len() int {
	return len(p.segments)
}

// String materializes the pointer as a "#/..." fragment.
func (p *Pointer) String() string {
	return Join(p.segments...)
}

// Join escapes each token and joins them into a "#/..." fragment.
// Join() with no tokens returns "#".
func Join(tokens ...string) string {
	var b strings.Builder
	b.WriteByte('#')
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(tok))
	}
	return b.String()
}

// EscapeToken escapes a single reference token.
// Per RFC 6901, ~ becomes ~0 and / becomes ~1.
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapeToken reverses EscapeToken.
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// Split breaks a local "#/..." reference into unescaped tokens.
// ok is false for refs that do not point into the current document.
func Split(ref string) (tokens []string, ok bool) {
	if ref == "#" || ref == "#/" {
		return nil, true
	}
	if !strings.HasPrefix(ref, "#/") {
		return nil, false
	}
	parts := strings.Split(ref[2:], "/")
	for i, part := range parts {
		parts[i] = UnescapeToken(part)
	}
	return parts, true
}
