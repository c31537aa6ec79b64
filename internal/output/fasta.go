package output

import (
	"fmt"
	"io"

	"paneval-core/engine"
)

// StreamFASTA streams FASTA records from a channel to the writer.
func StreamFASTA(w io.Writer, in <-chan engine.Product) error {
	idx := 1
	for p := range in {
		if p.Seq == "" {
			continue
		}
		if _, err := fmt.Fprintf(
			w,
			">%s_%d start=%d end=%d len=%d source_file=%s\n%s\n",
			p.PairID, idx, p.Start, p.End, p.Length, p.SourceFile, p.Seq,
		); err != nil {
			return err
		}
		idx++
	}
	return nil
}

// WriteFASTA writes a slice of products as FASTA records to the writer.
func WriteFASTA(w io.Writer, list []engine.Product) error {
	for i, p := range list {
		if p.Seq == "" {
			continue
		}
		if _, err := fmt.Fprintf(
			w,
			">%s_%d start=%d end=%d len=%d source_file=%s\n%s\n",
			p.PairID, i+1, p.Start, p.End, p.Length, p.SourceFile, p.Seq,
		); err != nil {
			return err
		}
	}
	return nil
}
