package main

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/icza/lsbitio"
)

// groupsPerLine is the number of bit groups dump prints in a line.
const groupsPerLine = 8

func (a *app) dumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the bits of a stream in stream order",
		Long: `Dump prints the bits of the input as 0 and 1 characters in the order
a bit reader sees them: the lowest bit of each byte first.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			group := a.v.GetInt("group")
			if group < 1 || group > lsbitio.MaxReadWidth {
				return errors.Errorf("group %d not in 1..%d", group, lsbitio.MaxReadWidth)
			}
			in, closeIn, err := a.openInput(a.v.GetBool("zstd"))
			if err != nil {
				return err
			}
			defer closeIn()
			out, closeOut, err := a.openOutput(false)
			if err != nil {
				return err
			}
			if err := dump(in, out, uint8(group)); err != nil {
				a.discardOutput(closeOut)
				return err
			}
			if err := closeOut(); err != nil {
				a.removeOutput()
				return err
			}
			return nil
		},
	}
	cmd.Flags().Int("group", 8, "number of bits per group (1..16)")
	return cmd
}

// dump writes the bits of in to out, group bits per space separated group.
func dump(in io.Reader, out io.Writer, group uint8) error {
	r := lsbitio.NewReader(in)
	bw := bufio.NewWriter(out)
	buf := make([]byte, 0, lsbitio.MaxReadWidth+1)

	groups := 0
	for {
		n := group
		u, err := r.PeekBits(n)
		if err == io.ErrUnexpectedEOF {
			// Print what is left; those bits are cached, so this peek can't fail.
			n = uint8(r.Buffered())
			u, err = r.PeekBits(n)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		buf = buf[:0]
		if groups > 0 {
			if groups%groupsPerLine == 0 {
				buf = append(buf, '\n')
			} else {
				buf = append(buf, ' ')
			}
		}
		for i := uint8(0); i < n; i++ {
			buf = append(buf, '0'+byte(u>>i&1))
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
		if err := r.SkipBits(n); err != nil {
			return err
		}
		groups++
		if n < group {
			break
		}
	}
	if groups > 0 {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
