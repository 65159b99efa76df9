package ingest

import (
	"io"
	"iter"

	"github.com/luxfi/ledger/event"
)

//go:generate go run go.uber.org/mock/mockgen -destination=ingestmock/mock_source.go -package=ingestmock github.com/luxfi/ledger/ingest EventSource

// EventSource is the interface cmd/ledger depends on, so the CLI's
// wiring can be exercised with a test double (see ingestmock) instead
// of a real file on disk.
type EventSource interface {
	Read(r io.Reader) (iter.Seq2[event.Incoming, error], error)
}

var _ EventSource = (*Source)(nil)
