// Package ingest adapts an input CSV file into the iter.Seq2 stream the
// engine package consumes. Grounded on the CSV-processing idiom seen in
// the pack's kraken-ledger converter: encoding/csv over a buffered
// reader, one pass, tolerant of short or malformed rows by reporting
// rather than panicking.
package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/luxfi/ledger/event"
	"github.com/luxfi/ledger/internal/support"
	"github.com/luxfi/ledger/money"
)

// header is the expected first row. Case-insensitive, whitespace-
// tolerant; any non-empty input must start with it so a reordered or
// truncated export fails fast instead of silently misreading columns.
// Completely empty input yields an empty stream.
var header = []string{"type", "client", "tx", "amount"}

// Source reads ledger events from r. amountCache memoizes money.Parse
// results (client-supplied amounts repeat heavily in realistic
// exports — ties and partial-fills echo the same literal many times)
// to skip re-running decimal parsing and banker's rounding on a hit.
type Source struct {
	amountCache support.Cacher[string, money.Money]
}

// NewSource returns a Source with a bounded LRU amount-parse cache.
func NewSource() *Source {
	return &Source{amountCache: support.NewLRUCache[string, money.Money](4096)}
}

// NewSourceWithCache returns a Source using an arbitrary Cacher,
// primarily so tests can inject support.EmptyCache to force every
// amount through Parse.
func NewSourceWithCache(cache support.Cacher[string, money.Money]) *Source {
	return &Source{amountCache: cache}
}

// Read returns a lazy iter.Seq2 over r's rows. The CSV header is
// validated eagerly (before the returned sequence's first yield) so a
// malformed file is reported before any event is produced; each
// subsequent row is parsed on demand as the engine pulls from the
// sequence.
//
// A non-nil error yielded by the sequence is terminal: per the
// engine's parse-error policy, the caller is expected to stop
// iterating once it sees one.
func (s *Source) Read(r io.Reader) (iter.Seq2[event.Incoming, error], error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1 // rows may omit the trailing amount column
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err == io.EOF {
		return func(func(event.Incoming, error) bool) {}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: reading header: %w", err)
	}
	if !sameHeader(first, header) {
		return nil, fmt.Errorf("ingest: unexpected header %v, want %v", first, header)
	}

	return func(yield func(event.Incoming, error) bool) {
		row := 1 // header was row 1
		for {
			record, err := cr.Read()
			if err == io.EOF {
				return
			}
			row++
			if err != nil {
				yield(event.Incoming{}, fmt.Errorf("ingest: row %d: %w", row, err))
				return
			}
			ev, perr := s.parseRow(record)
			if perr != nil {
				yield(event.Incoming{}, fmt.Errorf("ingest: row %d: %w", row, perr))
				return
			}
			if !yield(ev, nil) {
				return
			}
		}
	}, nil
}

func sameHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if !strings.EqualFold(strings.TrimSpace(got[i]), want[i]) {
			return false
		}
	}
	return true
}

func (s *Source) parseRow(record []string) (event.Incoming, error) {
	if len(record) < 3 {
		return event.Incoming{}, fmt.Errorf("short row: %v", record)
	}

	typ, ok := event.ParseType(strings.ToLower(strings.TrimSpace(record[0])))
	if !ok {
		return event.Incoming{}, fmt.Errorf("unrecognized type %q", record[0])
	}

	client, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return event.Incoming{}, fmt.Errorf("invalid client id %q: %w", record[1], err)
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return event.Incoming{}, fmt.Errorf("invalid tx id %q: %w", record[2], err)
	}

	ev := event.Incoming{Type: typ, Client: uint16(client), Tx: uint32(tx)}

	if len(record) >= 4 {
		raw := strings.TrimSpace(record[3])
		if raw != "" {
			amount, err := s.parseAmount(raw)
			if err != nil {
				return event.Incoming{}, fmt.Errorf("invalid amount %q: %w", raw, err)
			}
			ev.Amount = amount
			ev.HasAmount = true
		}
	}

	return ev, nil
}

func (s *Source) parseAmount(raw string) (money.Money, error) {
	if cached, ok := s.amountCache.Get(raw); ok {
		return cached, nil
	}
	amount, err := money.Parse(raw)
	if err != nil {
		return money.Money{}, err
	}
	s.amountCache.Put(raw, amount)
	return amount, nil
}
