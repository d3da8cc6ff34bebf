package lsbitio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"
)

func TestWriter(t *testing.T) {
	b := &bytes.Buffer{}

	w := NewWriter(b)

	expected := []byte{0xa5, 0x55, 0x01}

	errs := []error{}
	errs = append(errs, w.WriteBit(true))
	errs = append(errs, w.WriteBits(3, 0x02))
	errs = append(errs, w.WriteBits(11, 0x55a))
	errs = append(errs, w.Flush())
	errs = append(errs, w.WriteBit(true))
	errs = append(errs, w.Flush())

	for _, v := range errs {
		if v != nil {
			t.Error("Got error:", v)
		}
	}

	if !bytes.Equal(b.Bytes(), expected) {
		t.Errorf("Got: %x, want: %x", b.Bytes(), expected)
	}
}

func TestWriterIgnoresHighBits(t *testing.T) {
	b := &bytes.Buffer{}
	w := NewWriter(b)

	if err := w.WriteBits(4, 0xfff3); err != nil {
		t.Error("Got error:", err)
	}
	if err := w.WriteBits(4, 0xfffa); err != nil {
		t.Error("Got error:", err)
	}
	if err := w.Flush(); err != nil {
		t.Error("Got error:", err)
	}

	if !bytes.Equal(b.Bytes(), []byte{0xa3}) {
		t.Errorf("Got: %x, want: %x", b.Bytes(), []byte{0xa3})
	}
}

func TestReader(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xa5, 0xd5}))

	if b, err := r.ReadBit(); !b || err != nil {
		t.Errorf("Got %v, want %v, error: %v", b, true, err)
	}
	if b, err := r.ReadBit(); b || err != nil {
		t.Errorf("Got %v, want %v, error: %v", b, false, err)
	}
	if u, err := r.ReadBits(8); u != 0x69 || err != nil {
		t.Errorf("Got %x, want %x, error: %v", u, 0x69, err)
	}
	for i := 0; i < 2; i++ {
		if u, err := r.PeekBits(3); u != 0x5 || err != nil {
			t.Errorf("Got %x, want %x, error: %v", u, 0x5, err)
		}
	}
	if err := r.SkipBits(1); err != nil {
		t.Error("Got error:", err)
	}
	if u, err := r.PeekBits(3); u != 0x2 || err != nil {
		t.Errorf("Got %x, want %x, error: %v", u, 0x2, err)
	}
	if _, err := r.ReadBits(8); err != io.ErrUnexpectedEOF {
		t.Errorf("Got error: %v, want: %v", err, io.ErrUnexpectedEOF)
	}
}

func TestReaderWidths(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x34, 0x12, 0xff}))

	if u, err := r.ReadBits(0); u != 0 || err != nil {
		t.Errorf("Got %x, want %x, error: %v", u, 0, err)
	}
	if r.Buffered() != 0 {
		t.Errorf("Got %d buffered bits, want %d", r.Buffered(), 0)
	}
	if u, err := r.ReadBits(16); u != 0x1234 || err != nil {
		t.Errorf("Got %x, want %x, error: %v", u, 0x1234, err)
	}
	if u, err := r.ReadBits(8); u != 0xff || err != nil {
		t.Errorf("Got %x, want %x, error: %v", u, 0xff, err)
	}
	if _, err := r.ReadBits(1); err != io.EOF {
		t.Errorf("Got error: %v, want: %v", err, io.EOF)
	}
}

func TestPeekIdempotent(t *testing.T) {
	data := make([]byte, 64)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	rnd.Read(data)

	r := NewReader(bytes.NewReader(data))
	for {
		n := uint8(1 + rnd.Intn(MaxReadWidth))
		u1, err1 := r.PeekBits(n)
		u2, err2 := r.PeekBits(n)
		if u1 != u2 || err1 != err2 {
			t.Fatalf("Peek not repeatable: %x (%v) vs %x (%v)", u1, err1, u2, err2)
		}
		if err1 != nil {
			break
		}
		if u, err := r.ReadBits(n); u != u1 || err != nil {
			t.Fatalf("Got %x, want %x, error: %v", u, u1, err)
		}
	}
}

func TestReset(t *testing.T) {
	src := bytes.NewReader([]byte{0x0f, 0xaa, 0x55})
	r := NewReader(src)

	if u, err := r.ReadBits(4); u != 0xf || err != nil {
		t.Errorf("Got %x, want %x, error: %v", u, 0xf, err)
	}
	r.Reset()
	if r.Buffered() != 0 {
		t.Errorf("Got %d buffered bits, want %d", r.Buffered(), 0)
	}
	// The rest of 0x0f is dropped, reading continues with 0xaa.
	if u, err := r.ReadBits(8); u != 0xaa || err != nil {
		t.Errorf("Got %x, want %x, error: %v", u, 0xaa, err)
	}
	if src.Len() != 1 {
		t.Errorf("Got %d bytes left in source, want %d", src.Len(), 1)
	}
}

func TestFlushTwice(t *testing.T) {
	b := &bytes.Buffer{}
	w := NewWriter(b)

	if err := w.WriteBits(5, 0x1f); err != nil {
		t.Error("Got error:", err)
	}
	if err := w.Flush(); err != nil {
		t.Error("Got error:", err)
	}
	if err := w.Flush(); err != nil {
		t.Error("Got error:", err)
	}
	if !bytes.Equal(b.Bytes(), []byte{0x1f}) {
		t.Errorf("Got: %x, want: %x", b.Bytes(), []byte{0x1f})
	}
}

func TestFlushForwards(t *testing.T) {
	b := &bytes.Buffer{}
	bw := bufio.NewWriter(b)
	w := NewWriter(bw)

	if err := w.WriteBits(15, 0x7fff); err != nil {
		t.Error("Got error:", err)
	}
	if err := w.WriteBits(2, 0x1); err != nil {
		t.Error("Got error:", err)
	}
	if b.Len() != 0 {
		t.Errorf("Got %d bytes before Flush, want %d", b.Len(), 0)
	}
	if err := w.Flush(); err != nil {
		t.Error("Got error:", err)
	}
	if expected := []byte{0xff, 0xff, 0x00}; !bytes.Equal(b.Bytes(), expected) {
		t.Errorf("Got: %x, want: %x", b.Bytes(), expected)
	}
}

func TestUnwrap(t *testing.T) {
	b := &bytes.Buffer{}
	w := NewWriter(b)
	if w.Writer() != io.Writer(b) {
		t.Error("Writer() does not return the output")
	}
	if err := w.WriteBits(3, 0x5); err != nil {
		t.Error("Got error:", err)
	}
	if err := w.Flush(); err != nil {
		t.Error("Got error:", err)
	}
	if out := w.Unwrap(); out != io.Writer(b) {
		t.Error("Unwrap() does not return the output")
	}
	if err := w.WriteBit(true); err != ErrDetached {
		t.Errorf("Got error: %v, want: %v", err, ErrDetached)
	}
	if err := w.Flush(); err != ErrDetached {
		t.Errorf("Got error: %v, want: %v", err, ErrDetached)
	}

	src := bytes.NewReader([]byte{0x01, 0x02})
	r := NewReader(src)
	if r.Reader() != io.Reader(src) {
		t.Error("Reader() does not return the input")
	}
	if u, err := r.ReadBits(8); u != 0x01 || err != nil {
		t.Errorf("Got %x, want %x, error: %v", u, 0x01, err)
	}
	if in := r.Unwrap(); in != io.Reader(src) {
		t.Error("Unwrap() does not return the input")
	}
	if _, err := r.ReadBit(); err != ErrDetached {
		t.Errorf("Got error: %v, want: %v", err, ErrDetached)
	}
	if err := r.SkipBits(0); err != ErrDetached {
		t.Errorf("Got error: %v, want: %v", err, ErrDetached)
	}
	if src.Len() != 1 {
		t.Errorf("Got %d bytes left in source, want %d", src.Len(), 1)
	}
}

func TestContractErrors(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	if err := w.WriteBits(16, 0); !errors.Is(err, ErrBitWidth) {
		t.Errorf("Got error: %v, want: %v", err, ErrBitWidth)
	}
	if w.Buffered() != 0 {
		t.Errorf("Got %d buffered bits, want %d", w.Buffered(), 0)
	}

	r := NewReader(bytes.NewReader([]byte{0xff, 0xff, 0xff}))
	if _, err := r.PeekBits(17); !errors.Is(err, ErrBitWidth) {
		t.Errorf("Got error: %v, want: %v", err, ErrBitWidth)
	}
	if err := r.SkipBits(1); !errors.Is(err, ErrNotBuffered) {
		t.Errorf("Got error: %v, want: %v", err, ErrNotBuffered)
	}
	if _, err := r.PeekBits(4); err != nil {
		t.Error("Got error:", err)
	}
	if err := r.SkipBits(9); !errors.Is(err, ErrNotBuffered) {
		t.Errorf("Got error: %v, want: %v", err, ErrNotBuffered)
	}
	if err := r.SkipBits(8); err != nil {
		t.Error("Got error:", err)
	}
}

func TestChain(t *testing.T) {
	b := &bytes.Buffer{}
	w := NewWriter(b)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	expected := make([]uint16, 100000)
	bits := make([]uint8, len(expected))

	// Writing (generating)
	for i := range expected {
		bits[i] = uint8(1 + rnd.Intn(MaxWriteWidth))
		expected[i] = uint16(rnd.Intn(1 << 16))
		if err := w.WriteBits(bits[i], expected[i]); err != nil {
			t.Fatal("Got error:", err)
		}
		expected[i] &= 1<<bits[i] - 1
	}
	if err := w.Flush(); err != nil {
		t.Error("Got error:", err)
	}

	r := NewReader(bytes.NewReader(b.Bytes()))

	// Reading (verifying)
	for i, v := range expected {
		if u, err := r.ReadBits(bits[i]); u != v || err != nil {
			t.Errorf("Idx: %d, Got: %x, want: %x, bits: %d, error: %v", i, u, v, bits[i], err)
		}
	}
}
