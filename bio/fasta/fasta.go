// Package fasta parses FASTA-formatted nucleotide files directly into a
// source.Builder's event stream: '>' introduces a header whose first
// whitespace-delimited token is the sequence name; the body is IUPAC
// nucleotides, case-insensitive, whitespace-ignored.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bioaodp/oligosig/internal/apperr"
	"github.com/bioaodp/oligosig/source"
	"github.com/bioaodp/oligosig/symbol"
)

// Parse reads FASTA records from r (attributed to file in diagnostics)
// and feeds each into b, starting one fragment per record. A byte
// outside the IUPAC alphabet aborts the whole file with an
// apperr.InvalidInput error.
func Parse(r io.Reader, file string, b *source.Builder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var open bool
	line := 0

	flush := func() error {
		if open {
			open = false
			return b.EndFragment()
		}
		return nil
	}

	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		if text[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			name := firstToken(text[1:])
			if name == "" {
				return apperr.Newf(apperr.InvalidInput, "fasta: empty header at line %d", line)
			}
			if err := b.BeginFragment(name, file); err != nil {
				return err
			}
			open = true
			continue
		}
		if !open {
			return apperr.Newf(apperr.InvalidInput, "fasta: sequence data before header at line %d", line)
		}
		run, err := decodeRun(text)
		if err != nil {
			return fmt.Errorf("fasta: line %d: %w", line, err)
		}
		if err := b.AppendRun(run); err != nil {
			return err
		}
	}
	if err := flush(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("fasta: %w", err)
	}
	return nil
}

func firstToken(header string) string {
	header = strings.TrimSpace(header)
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func decodeRun(text string) ([]symbol.Symbol, error) {
	out := make([]symbol.Symbol, 0, len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' || c == '\t' || c == '\r' {
			continue
		}
		sym, ok := symbol.FromByte(c)
		if !ok {
			return nil, apperr.Newf(apperr.InvalidInput, "invalid symbol %q at offset %d", c, i)
		}
		out = append(out, sym)
	}
	return out, nil
}
