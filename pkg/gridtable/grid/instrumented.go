package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/ukaji3/gridtable-go/pkg/gridtable/models"
)

// Instrumented wraps a Grid and records call counts, cell volumes and
// latencies in a metrics set.
type Instrumented struct {
	next Grid

	fetches       *metrics.Counter
	fetchErrors   *metrics.Counter
	cellsFetched  *metrics.Counter
	writes        *metrics.Counter
	writeErrors   *metrics.Counter
	cellsWritten  *metrics.Counter
	fetchDuration *metrics.Histogram
	writeDuration *metrics.Histogram
}

// Instrument wraps next, registering its metrics in set labelled by sheet.
// A nil set uses the process-wide default set.
func Instrument(next Grid, set *metrics.Set, sheet string) *Instrumented {
	name := func(metric string) string {
		return fmt.Sprintf(`gridtable_%s{sheet=%q}`, metric, sheet)
	}
	counter := func(metric string) *metrics.Counter {
		if set == nil {
			return metrics.GetOrCreateCounter(name(metric))
		}
		return set.GetOrCreateCounter(name(metric))
	}
	histogram := func(metric string) *metrics.Histogram {
		if set == nil {
			return metrics.GetOrCreateHistogram(name(metric))
		}
		return set.GetOrCreateHistogram(name(metric))
	}

	return &Instrumented{
		next:          next,
		fetches:       counter("fetch_total"),
		fetchErrors:   counter("fetch_errors_total"),
		cellsFetched:  counter("cells_fetched_total"),
		writes:        counter("write_batches_total"),
		writeErrors:   counter("write_errors_total"),
		cellsWritten:  counter("cells_written_total"),
		fetchDuration: histogram("fetch_duration_seconds"),
		writeDuration: histogram("write_duration_seconds"),
	}
}

// Dimensions implements Grid.
func (g *Instrumented) Dimensions(ctx context.Context) (int, int, error) {
	return g.next.Dimensions(ctx)
}

// FetchRange implements Grid.
func (g *Instrumented) FetchRange(ctx context.Context, r models.Range, includeEmpty bool) ([]models.Cell, error) {
	start := time.Now()
	cells, err := g.next.FetchRange(ctx, r, includeEmpty)
	g.fetchDuration.UpdateDuration(start)
	g.fetches.Inc()
	if err != nil {
		g.fetchErrors.Inc()
		return nil, err
	}
	g.cellsFetched.Add(len(cells))
	return cells, nil
}

// WriteBatch implements Grid.
func (g *Instrumented) WriteBatch(ctx context.Context, cells []models.Cell) error {
	start := time.Now()
	err := g.next.WriteBatch(ctx, cells)
	g.writeDuration.UpdateDuration(start)
	g.writes.Inc()
	if err != nil {
		g.writeErrors.Inc()
		return err
	}
	g.cellsWritten.Add(len(cells))
	return nil
}

// CellsWritten returns the number of cells written through g so far.
func (g *Instrumented) CellsWritten() uint64 {
	return g.cellsWritten.Get()
}

// WriteBatches returns the number of WriteBatch calls made through g.
func (g *Instrumented) WriteBatches() uint64 {
	return g.writes.Get()
}
