package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/ExactwareSolution/booktimez-app/internal/pkg/errs"
	"github.com/ExactwareSolution/booktimez-app/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

const runTimeout = time.Minute

// Completer periodically flips booked appointments whose end time has
// passed to completed.
type Completer struct {
	booking  commands.BookingCommands
	schedule string
	cron     *cron.Cron
}

func NewCompleter(booking commands.BookingCommands, schedule string) *Completer {
	return &Completer{
		booking:  booking,
		schedule: schedule,
		cron:     cron.New(),
	}
}

func (w *Completer) Start() error {
	if _, err := w.cron.AddFunc(w.schedule, w.runOnce); err != nil {
		return errs.Wrap(err, "invalid completer schedule")
	}
	w.cron.Start()
	slog.Info("appointment completer started", "schedule", w.schedule)
	return nil
}

// Stop waits for an in-flight run to finish.
func (w *Completer) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	slog.Info("appointment completer stopped")
}

func (w *Completer) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	n, err := w.booking.CompletePastAppointments(ctx)
	if err != nil {
		slog.Error("completer run failed", "error", err.Error())
		return
	}
	if n > 0 {
		slog.Info("completed past appointments", "count", n)
	}
}
