// Package bitio provides the byte-aligned, MSB-first streaming bit sink and
// source used by the arithmetic coder. Both types are thin adapters around
// github.com/icza/bitio, which already implements bit-exact MSB-first I/O;
// the adapter layer exists only to pin the two contracts the coder depends
// on: Finish emits a single terminating bit, and reads past the end of a
// source silently return 0 instead of an error.
package bitio

import (
	"bytes"

	"github.com/icza/bitio"
)

// Sink appends bits MSB-first to an in-memory byte buffer.
type Sink struct {
	buf *bytes.Buffer
	w   *bitio.Writer
}

// NewSink returns an empty Sink.
func NewSink() *Sink {
	buf := new(bytes.Buffer)
	return &Sink{buf: buf, w: bitio.NewWriter(buf)}
}

// WriteBit appends a single bit (0 or 1) to the sink.
func (s *Sink) WriteBit(b uint8) error {
	return s.w.WriteBits(uint64(b&1), 1)
}

// Finish emits a single terminating 1 bit, zero-pads the remainder of the
// final byte, and returns the completed byte sequence. The terminator
// guarantees at least one bit exists after the coder's last meaningful
// interval bit, which is what lets the decoder's zero-padded reads safely
// wind down past the end of the buffer.
func (s *Sink) Finish() ([]byte, error) {
	if err := s.WriteBit(1); err != nil {
		return nil, err
	}
	if _, err := s.w.Align(); err != nil {
		return nil, err
	}
	if err := s.w.Close(); err != nil {
		return nil, err
	}
	return s.buf.Bytes(), nil
}

// Source reads bits MSB-first from a fixed byte slice. Reads past the end of
// the slice return 0 rather than an error: the decoder is initialized by
// shifting in 64 bits and keeps requesting bits while winding down the final
// interval, well past the physical end of a short payload.
type Source struct {
	r        *bitio.Reader
	size     int
	bitsRead int
}

// NewSource returns a Source reading from data. data is not retained beyond
// what the underlying reader buffers; callers must not mutate it while the
// Source is in use.
func NewSource(data []byte) *Source {
	return &Source{r: bitio.NewReader(bytes.NewReader(data)), size: len(data)}
}

// ReadBit returns the next bit, or 0 if the source is exhausted.
func (s *Source) ReadBit() uint8 {
	s.bitsRead++
	bit, err := s.r.ReadBits(1)
	if err != nil {
		return 0
	}
	return uint8(bit)
}

// BytesConsumed returns how many bytes of the source have been read so far,
// capped at the source's length. Driven by a running count of ReadBit calls
// rather than the underlying reader's position, since bits read past the
// end of the buffer (the zero-padding every decoder relies on while winding
// down its final interval) must not inflate it past the payload size.
func (s *Source) BytesConsumed() int {
	n := s.bitsRead / 8
	if n > s.size {
		n = s.size
	}
	return n
}
