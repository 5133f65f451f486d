// Package host is a small reference runtime that drives a cmdlet through its
// lifecycle over a stream of records.
package host

import (
	"bufio"
	"context"
	"io"

	"go.uber.org/multierr"
)

// Lifecycle is the outer stage surface a host invokes. *cmdlet.Cmdlet[T]
// implements it.
type Lifecycle interface {
	BeginProcessing(ctx context.Context) error
	ProcessRecord(ctx context.Context, record any) error
	EndProcessing(ctx context.Context) error
	StopProcessing(ctx context.Context) error
}

// Source yields records. ok is false once the source is exhausted.
type Source interface {
	Next(ctx context.Context) (record any, ok bool, err error)
}

// Run calls Begin, then ProcessRecord for every record of src, then End.
//
// The first stage error aborts the run and is returned unchanged. If ctx is
// cancelled after Begin, Stop is invoked once instead of End and the result
// carries ctx.Err() together with any stop error.
func Run(ctx context.Context, lc Lifecycle, src Source) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := lc.BeginProcessing(ctx); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return stop(ctx, lc)
		}

		record, ok, err := src.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return stop(ctx, lc)
			}
			return err
		}
		if !ok {
			break
		}
		if err := lc.ProcessRecord(ctx, record); err != nil {
			return err
		}
	}

	return lc.EndProcessing(ctx)
}

func stop(ctx context.Context, lc Lifecycle) error {
	return multierr.Append(ctx.Err(), lc.StopProcessing(context.WithoutCancel(ctx)))
}

// SliceSource yields records from a slice.
type SliceSource struct {
	records []any
	next    int
}

// Records returns a Source over records.
func Records(records ...any) *SliceSource {
	return &SliceSource{records: records}
}

// Next implements Source.
func (s *SliceSource) Next(context.Context) (any, bool, error) {
	if s.next >= len(s.records) {
		return nil, false, nil
	}
	r := s.records[s.next]
	s.next++
	return r, true, nil
}

// LineSource yields each line of r as a string record, without the newline.
type LineSource struct {
	scanner *bufio.Scanner
}

func Lines(r io.Reader) *LineSource {
	return &LineSource{scanner: bufio.NewScanner(r)}
}

// Next implements Source.
func (s *LineSource) Next(ctx context.Context) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if !s.scanner.Scan() {
		return nil, false, s.scanner.Err()
	}
	return s.scanner.Text(), true, nil
}
