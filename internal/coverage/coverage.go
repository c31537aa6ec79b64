// Package coverage loads observed sequencing coverage per panel target,
// the ground truth predictions are scored against.
package coverage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Target is one panel amplicon with its observed read support.
// Coordinates are 0-based half-open on the named reference sequence.
type Target struct {
	Name       string
	SequenceID string
	Start      int
	End        int
	Reads      float64
}

// Load reads a coverage table from path. Expected columns, tab-separated:
// target, sequence_id, start, end, reads. Lines starting with '#' and a
// header row naming the first column "target" are skipped.
func Load(path string) ([]Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open coverage table: %w", err)
	}
	defer f.Close()
	ts, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ts, nil
}

// Parse reads a coverage table from r.
func Parse(r io.Reader) ([]Target, error) {
	var out []Target
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	first := true
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) < 5 {
			return nil, fmt.Errorf("line %d: want 5 columns, got %d", line, len(fields))
		}
		if first {
			first = false
			if strings.EqualFold(fields[0], "target") {
				continue
			}
		}
		start, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad start %q", line, fields[2])
		}
		end, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad end %q", line, fields[3])
		}
		if start < 0 || end <= start {
			return nil, fmt.Errorf("line %d: bad interval %d-%d", line, start, end)
		}
		reads, err := strconv.ParseFloat(fields[4], 64)
		if err != nil || reads < 0 {
			return nil, fmt.Errorf("line %d: bad read count %q", line, fields[4])
		}
		out = append(out, Target{
			Name:       fields[0],
			SequenceID: fields[1],
			Start:      start,
			End:        end,
			Reads:      reads,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
