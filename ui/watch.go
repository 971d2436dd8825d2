package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/acrmon/acrmon/domain"
	"github.com/acrmon/acrmon/library"
)

// WatchConfig holds configuration for creating a Watch view.
type WatchConfig struct {
	// Results is the parsed feed of the monitored stream.
	Results library.Results
	// StreamID is shown in the status pane.
	StreamID string
	// Interval between polls. If zero, 30 seconds.
	Interval time.Duration
	// History caps the number of rows kept in the table. If zero, 50.
	History int
	// Logger is used for structured logging. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Watch is a terminal view that polls a stream monitor and renders the
// recognitions it has seen this session in a table, newest first.
type Watch struct {
	application *tview.Application
	table       *tview.Table
	statusBar   *tview.TextView
	keys        *KeyBindingManager

	results  library.Results
	streamID string
	interval time.Duration
	history  int
	logger   *slog.Logger

	// rows is only touched from the tview event loop (poll results are
	// applied via QueueUpdateDraw), so no lock is needed.
	rows []domain.Result
}

// NewWatch creates the watch view.
func NewWatch(config WatchConfig) *Watch {
	interval := config.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	history := config.History
	if history <= 0 {
		history = 50
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watch{
		application: tview.NewApplication(),
		results:     config.Results,
		streamID:    config.StreamID,
		interval:    interval,
		history:     history,
		logger:      logger,
		keys:        NewKeyBindingManager(),
	}
	w.buildLayout()
	w.bindKeys()
	return w
}

func (w *Watch) buildLayout() {
	w.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true)
	w.statusBar.SetBorder(false)

	w.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	w.table.SetBorder(false)
	w.table.SetSelectedStyle(tcell.StyleDefault.
		Background(tcell.ColorDarkGreen).
		Foreground(tcell.ColorWhite))

	w.table.SetSelectionChangedFunc(func(row, column int) {
		if row > 0 && row-1 < len(w.rows) {
			w.statusBar.SetText(FormatTrackInfo(w.rows[row-1], row-1))
		}
	})

	layout := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(w.statusBar, 0, 1, false).
		AddItem(w.table, 0, 2, true)
	w.application.SetRoot(layout, true)

	w.statusBar.SetText(CreateWelcomeMessage(w.streamID, w.interval.String()))
}

func (w *Watch) bindKeys() {
	w.keys.RegisterKeyBinding(
		NewKeyAction("quit", func() { w.application.Stop() }),
		[]tcell.Key{tcell.KeyEsc, tcell.KeyCtrlC},
		[]rune{'q'},
	)
	w.keys.RegisterKeyBinding(
		NewKeyAction("refresh", func() { go w.pollOnce() }),
		nil,
		[]rune{'r'},
	)
	w.keys.RegisterKeyBinding(
		NewKeyAction("down", func() { w.moveSelection(1) }),
		nil,
		[]rune{'j'},
	)
	w.keys.RegisterKeyBinding(
		NewKeyAction("up", func() { w.moveSelection(-1) }),
		nil,
		[]rune{'k'},
	)
	w.keys.RegisterKeyBinding(
		NewKeyAction("goEnd", func() { w.selectRow(len(w.rows)) }),
		nil,
		[]rune{'G'},
	)
	w.keys.RegisterSequence("gg", NewKeyAction("goStart", func() { w.selectRow(1) }))

	w.application.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if w.keys.HandleKey(event) {
			return nil
		}
		return event
	})
}

func (w *Watch) moveSelection(delta int) {
	row, _ := w.table.GetSelection()
	w.selectRow(row + delta)
}

func (w *Watch) selectRow(row int) {
	if row < 1 {
		row = 1
	}
	if last := w.table.GetRowCount() - 1; row > last {
		row = last
	}
	if row >= 1 {
		w.table.Select(row, 0)
	}
}

// Run starts the poll loop and the terminal application. It blocks until
// the user quits or ctx is cancelled.
func (w *Watch) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go w.pollLoop(ctx)
	go func() {
		<-ctx.Done()
		w.application.QueueUpdateDraw(func() {})
		w.application.Stop()
	}()

	if err := w.application.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func (w *Watch) pollLoop(ctx context.Context) {
	w.pollOnce()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			w.pollOnce()
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watch) pollOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	result, err := w.results.Last(ctx)
	if err != nil {
		w.logger.Warn("poll failed", "stream", w.streamID, "error", err)
		w.application.QueueUpdateDraw(func() {
			w.statusBar.SetText(fmt.Sprintf("[red]poll failed: %v", err))
		})
		return
	}

	w.application.QueueUpdateDraw(func() {
		w.applyResult(result)
	})
}

// applyResult prepends the result when it is new and re-renders. Runs in
// the tview event loop.
func (w *Watch) applyResult(result domain.Result) {
	if len(w.rows) > 0 && sameResult(w.rows[0], result) {
		return
	}
	w.rows = append([]domain.Result{result}, w.rows...)
	if len(w.rows) > w.history {
		w.rows = w.rows[:w.history]
	}
	w.renderTable()
	w.statusBar.SetText(FormatTrackInfo(w.rows[0], 0))
}

func sameResult(a, b domain.Result) bool {
	if a.Timestamp != b.Timestamp {
		return false
	}
	bestA, okA := a.Best()
	bestB, okB := b.Best()
	return okA == okB && bestA.ACRID == bestB.ACRID
}

func (w *Watch) renderTable() {
	for i := w.table.GetRowCount() - 1; i > 0; i-- {
		w.table.RemoveRow(i)
	}

	headerStyle := tcell.StyleDefault.Foreground(tcell.ColorGray).Attributes(tcell.AttrBold)
	for column, title := range []string{"", "Title", "Artist", "Score", "Heard", "Time"} {
		w.table.SetCell(0, column, tview.NewTableCell(title).SetStyle(headerStyle).SetSelectable(false))
	}

	rowStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, result := range w.rows {
		row := i + 1
		title, artists, score, heard := "no result", "-", "-", "-"
		if track, ok := result.Best(); ok {
			title = track.Title
			artists = FormatArtists(track.Artists)
			score = FormatScore(track.Score)
			heard = FormatDuration(track.PlayedDuration)
		}

		w.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d:", row)).
			SetStyle(rowStyle.Foreground(tcell.ColorLightGreen)).
			SetAlign(tview.AlignRight))
		w.table.SetCell(row, 1, tview.NewTableCell(title).
			SetStyle(rowStyle).
			SetExpansion(1))
		w.table.SetCell(row, 2, tview.NewTableCell(artists).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)).
			SetMaxWidth(25))
		w.table.SetCell(row, 3, tview.NewTableCell(score).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)).
			SetAlign(tview.AlignRight))
		w.table.SetCell(row, 4, tview.NewTableCell(heard).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)).
			SetAlign(tview.AlignRight))
		w.table.SetCell(row, 5, tview.NewTableCell(result.Timestamp).
			SetStyle(rowStyle.Foreground(tcell.ColorGray)))
	}

	if w.table.GetRowCount() > 1 {
		w.table.Select(1, 0)
	}
}
