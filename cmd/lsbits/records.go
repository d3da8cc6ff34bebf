package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/icza/lsbitio"
)

// record is one bit field: the lowest width bits of value.
type record struct {
	width uint8
	value uint16
}

func (r record) String() string {
	return fmt.Sprintf("%d %d", r.width, r.value)
}

// parseRecord parses a "WIDTH VALUE" line. ok is false for blank and comment lines.
func parseRecord(line string) (rec record, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return rec, false, nil
	}
	if len(fields) != 2 {
		return rec, false, errors.Errorf("want WIDTH VALUE, got %d fields", len(fields))
	}

	width, err := strconv.ParseUint(fields[0], 10, 8)
	if err != nil {
		return rec, false, errors.Wrap(err, "width")
	}
	if width < 1 || width > lsbitio.MaxWriteWidth {
		return rec, false, errors.Errorf("width %d not in 1..%d", width, lsbitio.MaxWriteWidth)
	}
	value, err := strconv.ParseUint(fields[1], 0, 16)
	if err != nil {
		return rec, false, errors.Wrap(err, "value")
	}
	if value >= 1<<width {
		return rec, false, errors.Errorf("value %d does not fit in %d bits", value, width)
	}
	return record{width: uint8(width), value: uint16(value)}, true, nil
}

// scanRecords calls fn for each record read from r.
func scanRecords(r io.Reader, fn func(record) error) error {
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		rec, ok, err := parseRecord(s.Text())
		if err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		if !ok {
			continue
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return s.Err()
}

// parseWidths parses the widths given to unpack, either as separate values
// or comma separated lists.
func parseWidths(items []string) ([]uint8, error) {
	var widths []uint8
	for _, item := range items {
		for _, f := range strings.Split(item, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			w, err := strconv.ParseUint(f, 10, 8)
			if err != nil {
				return nil, errors.Wrapf(err, "width %q", f)
			}
			if w < 1 || w > lsbitio.MaxReadWidth {
				return nil, errors.Errorf("width %d not in 1..%d", w, lsbitio.MaxReadWidth)
			}
			widths = append(widths, uint8(w))
		}
	}
	if len(widths) == 0 {
		return nil, errors.New("no widths given")
	}
	return widths, nil
}
