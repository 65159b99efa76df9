// Package report writes engine output summaries to CSV, the mirror
// image of the ingest package.
package report

import (
	"encoding/csv"
	"io"
	"iter"
	"sort"
	"strconv"

	"github.com/luxfi/ledger/account"
)

//go:generate go run go.uber.org/mock/mockgen -destination=reportmock/mock_sink.go -package=reportmock github.com/luxfi/ledger/report Sink

// Sink is the interface cmd/ledger depends on for emitting the final
// account summaries.
type Sink interface {
	Write(w io.Writer, summaries iter.Seq[account.Summary]) error
}

var header = []string{"client", "available", "held", "total", "locked"}

// CSVSink writes account.Summary rows as CSV: a header row, one data
// row per client, available/held/total rendered with money.Money.Text
// (fixed 4 decimal places, never the lossy ToOutputNumber float).
type CSVSink struct {
	// SortByClient, when true, buffers all summaries and emits them in
	// ascending client-id order instead of Output()'s unspecified
	// iteration order. Off by default to keep the common case streaming.
	SortByClient bool
}

// NewCSVSink returns a CSVSink with default (unsorted, streaming) output.
func NewCSVSink() *CSVSink {
	return &CSVSink{}
}

func (s *CSVSink) Write(w io.Writer, summaries iter.Seq[account.Summary]) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(header); err != nil {
		return err
	}

	if !s.SortByClient {
		for summary := range summaries {
			if err := cw.Write(row(summary)); err != nil {
				return err
			}
		}
		return cw.Error()
	}

	rows := make([]account.Summary, 0, 64)
	for summary := range summaries {
		rows = append(rows, summary)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Client < rows[j].Client })
	for _, summary := range rows {
		if err := cw.Write(row(summary)); err != nil {
			return err
		}
	}
	return cw.Error()
}

func row(s account.Summary) []string {
	return []string{
		strconv.FormatUint(uint64(s.Client), 10),
		s.Available.Text(),
		s.Held.Text(),
		s.Total.Text(),
		strconv.FormatBool(s.Locked),
	}
}

var _ Sink = (*CSVSink)(nil)
