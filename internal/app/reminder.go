package app

import (
	"context"
	"time"

	"github.com/uoyyy/salon-krasotok/internal/service"
	"go.uber.org/zap"
)

// Reminder фоновый цикл напоминаний о скорых записях
type Reminder struct {
	recordService *service.RecordService
	interval      time.Duration
	logger        *zap.Logger
	stopChan      chan struct{}
}

// NewReminder создаёт цикл напоминаний с периодом interval
func NewReminder(recordService *service.RecordService, interval time.Duration, logger *zap.Logger) *Reminder {
	return &Reminder{
		recordService: recordService,
		interval:      interval,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Start запускает фоновый цикл
func (r *Reminder) Start(ctx context.Context) {
	r.logger.Info("Starting reminder loop", zap.Duration("interval", r.interval))
	go r.run(ctx)
}

// Stop останавливает фоновый цикл
func (r *Reminder) Stop() {
	r.logger.Info("Stopping reminder loop")
	close(r.stopChan)
}

func (r *Reminder) run(ctx context.Context) {
	// Первый проход сразу при старте
	r.tick(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.tick(ctx)
		case <-r.stopChan:
			r.logger.Info("Reminder loop stopped")
			return
		case <-ctx.Done():
			r.logger.Info("Reminder loop cancelled")
			return
		}
	}
}

func (r *Reminder) tick(ctx context.Context) {
	if err := r.recordService.SendDueReminders(ctx); err != nil {
		r.logger.Error("Failed to send reminders", zap.Error(err))
	}
}
