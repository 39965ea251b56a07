// Package reminder runs the daily due-date sweep. It is a thin wrapper
// around robfig/cron: one entry fires per the configured spec, finds
// unpaid cards whose due date falls within their reminder lead time and
// hands them to a Notifier.
package reminder

import (
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nfransec/twocents/pkg/config"
	"github.com/nfransec/twocents/pkg/domain/card"
	"github.com/nfransec/twocents/pkg/service"
)

// Notifier delivers a due-date reminder for one card. Email and push
// transports plug in here; the default implementation only logs.
type Notifier interface {
	Notify(c *card.Card) error
}

// LogNotifier writes reminders to the structured log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Notify(c *card.Card) error {
	n.Logger.Info("payment reminder",
		"cardID", c.ID,
		"userID", c.UserID,
		"card", c.CardName,
		"bank", c.BankName,
		"dueDate", c.DueDate,
		"outstanding", c.OutstandingAmount,
		"channel", c.ReminderChannel,
	)
	return nil
}

// Scheduler owns the cron instance. Start and Stop are called by the
// composition root.
type Scheduler struct {
	cron     *cron.Cron
	cardSvc  *service.CardService
	notifier Notifier
	logger   *slog.Logger
}

// New creates a scheduler with the given sweep spec.
func New(
	cfg *config.Reminder,
	cardSvc *service.CardService,
	notifier Notifier,
	logger *slog.Logger,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		cardSvc:  cardSvc,
		notifier: notifier,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(cfg.Spec, s.Sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running sweeps per the cron spec.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("reminder scheduler started")
}

// Stop halts the scheduler, waiting for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("reminder scheduler stopped")
}

// Sweep notifies owners of unpaid cards due within their reminder lead
// time. Notification failures are logged and do not stop the sweep.
func (s *Scheduler) Sweep() {
	today := time.Now().UTC().Format("2006-01-02")
	cards, err := s.cardSvc.DueForReminder(today)
	if err != nil {
		s.logger.Error("reminder sweep failed", "error", err)
		return
	}
	for _, c := range cards {
		if err := s.notifier.Notify(c); err != nil {
			s.logger.Error("reminder delivery failed", "cardID", c.ID, "error", err)
		}
	}
	s.logger.Info("reminder sweep complete", "due", len(cards))
}
