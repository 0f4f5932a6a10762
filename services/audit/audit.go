// Package audit appends History rows asynchronously. History is write-only
// from the application's point of view and strictly best-effort: a failed
// append surfaces a warning but never unwinds the mutation it describes.
package audit

import (
	"context"
	"time"

	"travel-backoffice/logger"
	"travel-backoffice/models/history"
	"travel-backoffice/notify"
	"travel-backoffice/sheets"
)

// Appender queues audit entries onto a buffered channel and writes them from
// a single background goroutine started by ProcessEntries.
type Appender struct {
	store    sheets.Store
	notifier notify.Notifier
	channel  chan history.Entry
}

func NewAppender(store sheets.Store, notifier notify.Notifier) *Appender {
	return &Appender{
		store:    store,
		notifier: notifier,
		channel:  make(chan history.Entry, 100),
	}
}

// ProcessEntries drains the queue; run it as a goroutine from main.
func (a *Appender) ProcessEntries() {
	logger.Info("Starting audit history appender...")

	for entry := range a.channel {
		a.Append(entry)
	}
}

// Append writes one entry synchronously.
func (a *Appender) Append(entry history.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := a.store.Append(ctx, sheets.HistoryAppendRange, [][]string{entry.ToRow()})
	if err != nil {
		logger.Error("Failed to append history entry", err)
		a.notifier.Notify("History could not be recorded: "+entry.Details, notify.LevelError)
		return
	}
	logger.Debug("Appended history entry: " + entry.Details)
}

// Record queues an audit entry for the background writer. It never blocks a
// mutation: when the queue is full the entry is written inline instead.
func (a *Appender) Record(name, pnr, details string) {
	entry := history.Entry{
		Date:    time.Now().Format("01/02/2006"),
		Name:    name,
		PNR:     pnr,
		Details: details,
	}
	select {
	case a.channel <- entry:
	default:
		a.Append(entry)
	}
}
