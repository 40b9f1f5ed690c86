package dataset

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/apcluster/graph"
)

// CSV reads a textual relation from r: one "source,target,similarity"
// triple per line. Blank lines and lines starting with '#' are skipped.
//
// The reader is consumed on Read; a CSV handle is good for one run only.
func CSV(r io.Reader) Reader {
	return ReaderFunc(func(ctx context.Context) ([]graph.Similarity, error) {
		return parseCSV(ctx, r)
	})
}

func parseCSV(ctx context.Context, r io.Reader) ([]graph.Similarity, error) {
	var sims []graph.Similarity

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		s, err := parseTriple(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sims = append(sims, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return sims, nil
}

func parseTriple(text string) (graph.Similarity, error) {
	parts := strings.Split(text, ",")
	if len(parts) != 3 {
		return graph.Similarity{}, fmt.Errorf("expected 3 fields, got %d", len(parts))
	}

	source, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return graph.Similarity{}, fmt.Errorf("source id: %w", err)
	}
	target, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return graph.Similarity{}, fmt.Errorf("target id: %w", err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil {
		return graph.Similarity{}, fmt.Errorf("similarity: %w", err)
	}

	return graph.Similarity{Source: source, Target: target, Value: value}, nil
}
