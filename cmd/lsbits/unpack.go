package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/icza/lsbitio"
)

func (a *app) unpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack",
		Short: "Unpack a bit stream into WIDTH VALUE text records",
		Long: `Unpack reads fields from the bit stream, cycling through the given widths,
and prints them as "WIDTH VALUE" records which pack accepts.
Reading stops after --count fields, or when the stream ends.
Without --count, zero padding at the end of the stream may show up as extra zero fields.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			widths, err := parseWidths(a.v.GetStringSlice("widths"))
			if err != nil {
				return err
			}
			count := a.v.GetInt("count")

			in, closeIn, err := a.openInput(a.v.GetBool("zstd"))
			if err != nil {
				return err
			}
			defer closeIn()
			out, closeOut, err := a.openOutput(false)
			if err != nil {
				return err
			}

			records, err := unpack(in, out, widths, count, a.log)
			if err != nil {
				a.discardOutput(closeOut)
				return err
			}
			if err := closeOut(); err != nil {
				a.removeOutput()
				return err
			}
			a.log.Info("unpacked", zap.Int("records", records))
			return nil
		},
	}
	cmd.Flags().StringSlice("widths", nil, "field widths (1..16), used cyclically")
	cmd.Flags().Int("count", 0, "number of fields to read (0: until the stream ends)")
	return cmd
}

// unpack reads fields of the given widths from in, writing them to out as text records.
// It returns the number of records written.
func unpack(in io.Reader, out io.Writer, widths []uint8, count int, log *zap.Logger) (records int, err error) {
	r := lsbitio.NewReader(in)
	bw := bufio.NewWriter(out)
	for ; count <= 0 || records < count; records++ {
		width := widths[records%len(widths)]
		u, err := r.ReadBits(width)
		if lsbitio.IsEndOfStream(err) {
			log.Debug("end of stream", zap.Error(err), zap.Int("buffered", r.Buffered()))
			break
		}
		if err != nil {
			return records, err
		}
		if _, err := fmt.Fprintln(bw, record{width: width, value: u}); err != nil {
			return records, err
		}
	}
	return records, bw.Flush()
}
