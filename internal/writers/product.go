// Package writers runs output encoding on dedicated goroutines so the
// scanning pipeline never blocks on slow consumers.
package writers

import (
	"fmt"
	"io"

	"paneval-core/engine"
	"paneval/internal/common"
	"paneval/internal/output"
)

// StartProductWriter spins up a writer goroutine for engine.Product items.
// Supported formats: "tsv", "json", "jsonl", "fasta". Sorting buffers the
// whole stream; without it tsv and fasta stream row by row.
func StartProductWriter(out io.Writer, format string, sort, header bool, bufSize int) (chan<- engine.Product, <-chan error) {
	if format == "jsonl" {
		return StartProductJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan engine.Product, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case "json":
			var buf []engine.Product
			for p := range in {
				buf = append(buf, p)
			}
			if sort {
				common.SortProducts(buf)
			}
			err = output.WriteJSON(out, buf)

		case "fasta":
			if sort {
				var buf []engine.Product
				for p := range in {
					buf = append(buf, p)
				}
				common.SortProducts(buf)
				err = output.WriteFASTA(out, buf)
			} else {
				err = output.StreamFASTA(out, in)
			}

		case "tsv", "text":
			if sort {
				var buf []engine.Product
				for p := range in {
					buf = append(buf, p)
				}
				common.SortProducts(buf)
				err = output.WriteTSV(out, buf, header)
			} else {
				err = output.StreamTSV(out, in, header)
			}

		default:
			for range in {
			}
			err = fmt.Errorf("unsupported output %q", format)
		}
		if IsBrokenPipe(err) {
			err = nil
		}
		errCh <- err
	}()

	return in, errCh
}
