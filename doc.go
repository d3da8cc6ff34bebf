/*

Package lsbitio provides a bit-level Reader and Writer for LSB-first bit streams.

You can use Writer.WriteBits() to write the lowest n bits (up to 15) of a value to an io.Writer,
and Reader.ReadBits() to read up to 16 bits at a time from an io.Reader.
Reader also supports looking ahead with Reader.PeekBits() and discarding already buffered
bits with Reader.SkipBits(), which is what table-driven decoders (Huffman for example) need.

These are the building blocks of entropy coded formats such as DEFLATE. They don't do any
value encoding, framing or seeking themselves.

Bit order

The least-significant-bit-first order is used: the whole byte stream is treated as one
contiguous little-endian bit sequence. So for example if the input provides the bytes 0xa5 and 0xd5:

    HEXA    a    5     d    5
    BINARY  1010 0101  1101 0101
            cccc cbba  dddd dddc

Then ReadBits will return the following values:

    r := NewReader(bytes.NewReader([]byte{0xa5, 0xd5}))
    a, err := r.ReadBits(1) //          1 = 0x01
    b, err := r.ReadBits(2) //         10 = 0x02
    c, err := r.ReadBits(6) //     110100 = 0x34
    d, err := r.ReadBits(7) //    1101010 = 0x6a

Writing the above values would result in the same sequence of bytes:

    b := &bytes.Buffer{}
    w := NewWriter(b)
    err := w.WriteBits(1, 0x01)
    err = w.WriteBits(2, 0x02)
    err = w.WriteBits(6, 0x34)
    err = w.WriteBits(7, 0x6a)
    err = w.Flush()
    // b will hold the bytes: 0xa5 and 0xd5

Writer must be flushed, else up to 15 buffered bits never reach the output.

*/
package lsbitio
