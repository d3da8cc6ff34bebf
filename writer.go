/*

Writer implementation.

*/

package lsbitio

import (
	"io"

	"github.com/pkg/errors"
)

const (
	// MaxWriteWidth is the largest bit width accepted by Writer.WriteBits.
	MaxWriteWidth = 15

	// flushThreshold is the number of buffered bits at which 2 bytes are written out.
	flushThreshold = 16
)

// Flusher is implemented by outputs that buffer data internally,
// such as *bufio.Writer. Writer.Flush calls it after writing out cached bits.
type Flusher interface {
	Flush() error
}

// byteWriter adapts an io.Writer to io.ByteWriter without buffering anything.
type byteWriter struct {
	io.Writer
	b [1]byte
}

func (w *byteWriter) WriteByte(b byte) error {
	w.b[0] = b
	n, err := w.Write(w.b[:])
	if err == nil && n != 1 {
		err = io.ErrShortWrite
	}
	return err
}

// Writer is an LSB-first bit writer.
// Must be flushed in order to write out cached data.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	out   io.Writer     // underlying output, as passed to NewWriter
	bout  io.ByteWriter // out, or an adapter of it
	cache uint32        // unwritten bits are stored here, from the lowest bit
	bits  uint8         // number of unwritten bits in cache
	pair  [2]byte
}

// NewWriter returns a new Writer using the specified io.Writer as the output.
func NewWriter(out io.Writer) *Writer {
	w := &Writer{out: out}
	var ok bool
	if w.bout, ok = out.(io.ByteWriter); !ok {
		w.bout = &byteWriter{Writer: out}
	}
	return w
}

// WriteBit writes one bit: 1 if param is true, 0 otherwise.
func (w *Writer) WriteBit(b bool) error {
	var v uint16
	if b {
		v = 1
	}
	return w.WriteBits(1, v)
}

// WriteBits writes out the n lowest bits of v, lowest bit first.
// n must not be greater than MaxWriteWidth. Bits of v above n are ignored.
//
// Whenever 16 or more bits are cached, 2 bytes are written to the output.
func (w *Writer) WriteBits(n uint8, v uint16) error {
	if w.out == nil {
		return ErrDetached
	}
	if n > MaxWriteWidth {
		return widthError(n, MaxWriteWidth)
	}
	if w.bits+n > 32 {
		return errors.Wrapf(ErrOverflow, "%d bits cached, %d more", w.bits, n)
	}

	w.cache |= uint32(v&(1<<n-1)) << w.bits
	w.bits += n

	if w.bits >= flushThreshold {
		w.pair[0], w.pair[1] = byte(w.cache), byte(w.cache>>8)
		nw, err := w.out.Write(w.pair[:])
		if err == nil && nw != len(w.pair) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return err
		}
		w.cache >>= 16
		w.bits -= 16
	}
	return nil
}

// Flush writes out all cached bits, padding the last byte with zeros,
// then flushes the output if it implements Flusher.
// Flushing with no cached bits writes no bytes.
func (w *Writer) Flush() error {
	if w.out == nil {
		return ErrDetached
	}
	for w.bits > 0 {
		if err := w.bout.WriteByte(byte(w.cache)); err != nil {
			return err
		}
		w.cache >>= 8
		if w.bits < 8 {
			w.bits = 0
		} else {
			w.bits -= 8
		}
	}
	if f, ok := w.out.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Buffered returns the number of bits cached but not yet written to the output.
func (w *Writer) Buffered() int {
	return int(w.bits)
}

// Writer returns the underlying output.
func (w *Writer) Writer() io.Writer {
	return w.out
}

// Unwrap returns the underlying output and detaches it from w.
// Cached bits are dropped, call Flush first to keep them.
// All further calls on w return ErrDetached.
func (w *Writer) Unwrap() io.Writer {
	out := w.out
	*w = Writer{}
	return out
}
