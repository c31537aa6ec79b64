package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is a parsed FASTA sequence, or a chunk of one. Chunked records carry
// an "id:start-end" identifier so products can be mapped back to reference
// coordinates.
type Record struct {
	ID  string
	Seq []byte
}

// allow chromosome-scale single-line sequences
const maxLine = 64 * 1024 * 1024

// StreamChunksPathCtx opens path, scans FASTA, and emits records. When
// chunkSize > 0, each record is emitted as overlapped windows of chunkSize
// bases stepping by chunkSize-overlap; otherwise whole records are emitted.
// Cancellation is honored between lines and between chunks.
func StreamChunksPathCtx(ctx context.Context, path string, chunkSize, overlap int, emit func(Record) error) error {
	if overlap < 0 {
		overlap = 0
	}
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		id  string
		seq = make([]byte, 0, 1<<20)
	)

	flush := func() error {
		if id == "" {
			return nil
		}
		step := chunkSize - overlap
		if chunkSize <= 0 || chunkSize >= len(seq) || step <= 0 {
			return emit(Record{ID: id, Seq: append([]byte(nil), seq...)})
		}
		for off := 0; off < len(seq); off += step {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			end := off + chunkSize
			if end > len(seq) {
				end = len(seq)
			}
			chID := fmt.Sprintf("%s:%d-%d", id, off, end)
			if err := emit(Record{ID: chID, Seq: append([]byte(nil), seq[off:end]...)}); err != nil {
				return err
			}
			if end == len(seq) {
				break
			}
		}
		return nil
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if id != "" {
				if err := flush(); err != nil {
					return err
				}
				seq = seq[:0]
			}
			id = parseHeaderID(line[1:])
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("fasta scan: %w", err)
	}
	if id != "" || len(seq) > 0 {
		if err := flush(); err != nil {
			return err
		}
	}
	return nil
}

// ReadAll slurps every record of a FASTA file into memory. Meant for
// reference panels and test fixtures, not chromosome-scale scans.
func ReadAll(path string) ([]Record, error) {
	var out []Record
	err := StreamChunksPathCtx(context.Background(), path, 0, 0, func(r Record) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func parseHeaderID(hdr []byte) string {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i])
	}
	return string(hdr)
}
