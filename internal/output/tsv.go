package output

import (
	"fmt"
	"io"

	"paneval-core/engine"
)

// WriteTSV writes products as a tab-delimited table.
func WriteTSV(w io.Writer, list []engine.Product, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for _, p := range list {
		if _, err := fmt.Fprintln(w, FormatRowTSV(p)); err != nil {
			return err
		}
	}
	return nil
}

// StreamTSV writes one row per product as they arrive.
func StreamTSV(w io.Writer, in <-chan engine.Product, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
			return err
		}
	}
	for p := range in {
		if _, err := fmt.Fprintln(w, FormatRowTSV(p)); err != nil {
			return err
		}
	}
	return nil
}
