// Package gridtable maps a sheet's addressed cells onto a keyed table: a
// header read from row 1 and one record per data row below it.
//
// Every operation re-reads what it needs from the grid. Nothing is cached
// between calls, and the grid is assumed to have a single writer.
package gridtable

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ukaji3/gridtable-go/pkg/gridtable/grid"
	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// Sheet exposes table operations over a Grid.
type Sheet struct {
	grid grid.Grid
	opts Options
	log  *slog.Logger
}

// New creates a Sheet reading and writing through g.
func New(g grid.Grid, opts Options) *Sheet {
	opts = opts.withDefaults()
	return &Sheet{
		grid: g,
		opts: opts,
		log:  opts.Logger.With("sheet", opts.Sheet),
	}
}

// Options returns the resolved options of s.
func (s *Sheet) Options() Options {
	return s.opts
}

func (s *Sheet) fail(op string, err error) error {
	return &OpError{Sheet: s.opts.Sheet, Op: op, Err: err}
}

// FetchHeader reads row 1 and returns the header.
func (s *Sheet) FetchHeader(ctx context.Context) (models.Header, error) {
	header, _, _, err := s.header(ctx)
	if err != nil {
		return nil, s.fail("header", err)
	}
	return header, nil
}

// header resolves the header along with the grid's dimensions.
func (s *Sheet) header(ctx context.Context) (models.Header, int, int, error) {
	rows, cols, err := s.grid.Dimensions(ctx)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("grid dimensions: %w", err)
	}
	if rows < 1 || cols < 1 {
		return nil, rows, cols, ErrHeaderEmpty
	}

	cells, err := s.grid.FetchRange(ctx, models.RowRange(1, 1, cols), false)
	if err != nil {
		return nil, rows, cols, fmt.Errorf("fetch header: %w", err)
	}
	header, err := ResolveHeader(cells, s.opts.HeaderMode)
	if err != nil {
		return nil, rows, cols, err
	}
	return header, rows, cols, nil
}

// Fetch reads the whole grid and returns the table. Records end at the
// first fully blank row.
func (s *Sheet) Fetch(ctx context.Context) (*models.Table, error) {
	rows, cols, err := s.grid.Dimensions(ctx)
	if err != nil {
		return nil, s.fail("fetch", fmt.Errorf("grid dimensions: %w", err))
	}
	if rows < 1 || cols < 1 {
		return nil, s.fail("fetch", ErrHeaderEmpty)
	}

	if rows == 1 {
		header, _, _, err := s.header(ctx)
		if err != nil {
			return nil, s.fail("fetch", err)
		}
		return &models.Table{Sheet: s.opts.Sheet, Header: header, Rows: []models.Record{}}, nil
	}

	cells, err := s.grid.FetchRange(ctx, models.Range{R1: 1, C1: 1, R2: rows, C2: cols}, false)
	if err != nil {
		return nil, s.fail("fetch", fmt.Errorf("fetch cells: %w", err))
	}

	header, err := ResolveHeader(cells, s.opts.HeaderMode)
	if err != nil {
		return nil, s.fail("fetch", err)
	}
	records, err := AssembleRecords(cells, header, s.opts.Assembly)
	if err != nil {
		return nil, s.fail("fetch", err)
	}

	s.log.DebugContext(ctx, "table fetched", "cells", len(cells), "records", len(records))
	return &models.Table{Sheet: s.opts.Sheet, Header: header, Rows: records}, nil
}
