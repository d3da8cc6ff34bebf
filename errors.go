package lsbitio

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrBitWidth is returned when a bit width is out of the supported range:
	// 0..15 for writes, 0..16 for reads and peeks.
	ErrBitWidth = errors.New("lsbitio: bit width out of range")

	// ErrOverflow is returned when a write would not fit in the bit buffer.
	ErrOverflow = errors.New("lsbitio: bit buffer overflow")

	// ErrNotBuffered is returned by Reader.SkipBits when fewer bits are buffered than asked for.
	ErrNotBuffered = errors.New("lsbitio: not enough buffered bits")

	// ErrDetached is returned by a Reader or Writer whose underlying stream was taken by Unwrap.
	ErrDetached = errors.New("lsbitio: underlying stream detached")
)

// IsEndOfStream tells if err reports that the source ran out of data,
// either on a byte boundary (io.EOF) or in the middle of a value (io.ErrUnexpectedEOF).
func IsEndOfStream(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

func widthError(n, max uint8) error {
	return errors.Wrapf(ErrBitWidth, "width %d, max %d", n, max)
}
