package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/icza/lsbitio"
)

func (a *app) packCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack",
		Short: "Pack WIDTH VALUE text records into a bit stream",
		Long: `Pack reads text records of the form "WIDTH VALUE", one per line,
and writes the lowest WIDTH bits of each VALUE to the output, least significant bit first.
WIDTH is 1..15, VALUE may be given in decimal, 0x hexadecimal, 0o octal or 0b binary.
Text after # is ignored. If packing fails, the --out file is removed.`,
		Args: cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			in, closeIn, err := a.openInput(false)
			if err != nil {
				return err
			}
			defer closeIn()
			out, closeOut, err := a.openOutput(a.v.GetBool("zstd"))
			if err != nil {
				return err
			}

			records, bits, err := pack(in, out, a.log)
			if err != nil {
				a.discardOutput(closeOut)
				return err
			}
			if err := closeOut(); err != nil {
				a.removeOutput()
				return err
			}
			a.log.Info("packed", zap.Int("records", records), zap.Int("bits", bits))
			return nil
		},
	}
}

// pack writes the records read from in to out as a bit stream.
// It returns the number of records and bits written.
func pack(in io.Reader, out io.Writer, log *zap.Logger) (records, bits int, err error) {
	w := lsbitio.NewWriter(out)
	err = scanRecords(in, func(rec record) error {
		var err error
		if rec.width == 1 {
			err = w.WriteBit(rec.value != 0)
		} else {
			err = w.WriteBits(rec.width, rec.value)
		}
		if err != nil {
			return err
		}
		records++
		bits += int(rec.width)
		log.Debug("record written", zap.Stringer("record", rec), zap.Int("buffered", w.Buffered()))
		return nil
	})
	if err != nil {
		return records, bits, err
	}
	return records, bits, w.Flush()
}
