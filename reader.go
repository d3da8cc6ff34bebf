/*

Reader implementation.

*/

package lsbitio

import (
	"io"

	"github.com/pkg/errors"
)

// MaxReadWidth is the largest bit width accepted by Reader.ReadBits and Reader.PeekBits.
const MaxReadWidth = 16

// byteReader adapts an io.Reader to io.ByteReader.
// Unlike bufio.Reader it never reads ahead, so the input is left
// right after the last byte the Reader has cached.
type byteReader struct {
	io.Reader
	b [1]byte
}

func (r *byteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(r.Reader, r.b[:]); err != nil {
		return 0, err
	}
	return r.b[0], nil
}

// Reader is an LSB-first bit reader.
// Bytes are read from the input one at a time, only when the cached bits
// are not enough to serve a read or peek.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	in     io.Reader     // underlying input, as passed to NewReader
	bin    io.ByteReader // in, or an adapter of it
	cache  uint32        // last read bytes, the newest one in the highest 8 bits
	offset uint8         // number of low bits of cache already consumed
}

// NewReader returns a new Reader using the specified io.Reader as the input (source).
func NewReader(in io.Reader) *Reader {
	r := &Reader{in: in, offset: 32}
	var ok bool
	if r.bin, ok = in.(io.ByteReader); !ok {
		r.bin = &byteReader{Reader: in}
	}
	return r
}

// ReadBit reads the next bit, and returns true if it is 1.
func (r *Reader) ReadBit() (bool, error) {
	u, err := r.ReadBits(1)
	return u != 0, err
}

// ReadBits reads n bits and returns them as the lowest n bits of u.
// The first bit of the stream is the lowest bit of u.
func (r *Reader) ReadBits(n uint8) (u uint16, err error) {
	if u, err = r.PeekBits(n); err != nil {
		return 0, err
	}
	r.offset += n
	return u, nil
}

// PeekBits returns the next n bits like ReadBits, without consuming them.
// It reads from the input only if fewer than n bits are cached.
//
// If the input ends before n bits could be cached, io.EOF is returned
// if no bits were cached at all, io.ErrUnexpectedEOF otherwise.
// Nothing is consumed in either case.
func (r *Reader) PeekBits(n uint8) (uint16, error) {
	if r.in == nil {
		return 0, ErrDetached
	}
	if n > MaxReadWidth {
		return 0, widthError(n, MaxReadWidth)
	}
	for 32-r.offset < n {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}
	return uint16(r.cache>>r.offset) & (1<<n - 1), nil
}

// SkipBits consumes n cached bits. It never reads from the input:
// if fewer than n bits are cached, ErrNotBuffered is returned and nothing is consumed.
// Use PeekBits first to make sure the bits are cached.
func (r *Reader) SkipBits(n uint8) error {
	if r.in == nil {
		return ErrDetached
	}
	if cached := 32 - r.offset; n > cached {
		return errors.Wrapf(ErrNotBuffered, "skip %d, cached %d", n, cached)
	}
	r.offset += n
	return nil
}

// fill reads the next byte into the highest 8 bits of cache.
// Only called with offset >= 8, which PeekBits guarantees as n <= 16.
func (r *Reader) fill() error {
	b, err := r.bin.ReadByte()
	if err != nil {
		if err == io.EOF && r.offset < 32 {
			err = io.ErrUnexpectedEOF
		}
		return err
	}
	r.cache = r.cache>>8 | uint32(b)<<24
	r.offset -= 8
	return nil
}

// Reset drops all cached bits. The next read continues with the next byte
// of the input; the input itself is not rewound.
func (r *Reader) Reset() {
	r.offset = 32
}

// Buffered returns the number of cached bits not yet consumed.
func (r *Reader) Buffered() int {
	return int(32 - r.offset)
}

// Reader returns the underlying input.
func (r *Reader) Reader() io.Reader {
	return r.in
}

// Unwrap returns the underlying input and detaches it from r.
// Cached bits are dropped. All further reads on r return ErrDetached.
func (r *Reader) Unwrap() io.Reader {
	in := r.in
	*r = Reader{offset: 32}
	return in
}
