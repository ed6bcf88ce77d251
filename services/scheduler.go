package services

import (
	"context"
	"time"

	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

const (
	MailDrainInterval      = time.Minute
	PromotionSweepInterval = time.Hour
	mailDrainBatch         = 50
)

// DrainMailQueue delivers up to one batch of queued emails
func DrainMailQueue(ctx context.Context, queue *utils.MailQueue, mailer utils.Mailer) {
	if queue == nil || mailer == nil {
		return
	}
	sent, err := queue.Drain(ctx, mailer, mailDrainBatch)
	if err != nil {
		utils.LogError("[Scheduler] Mail queue drain failed: %v", err)
		return
	}
	if sent > 0 {
		utils.LogInfo("[Scheduler] Delivered %d queued emails", sent)
	}
}

// SweepPromotions soft deletes promotions whose end date has passed
func SweepPromotions(db *gorm.DB) {
	n, err := SweepExpiredPromotions(db, time.Now())
	if err != nil {
		utils.LogError("[Scheduler] Promotion sweep failed: %v", err)
		return
	}
	if n > 0 {
		utils.LogInfo("[Scheduler] Retired %d expired promotions", n)
	}
}

// StartScheduler starts the background jobs. The caller owns Shutdown.
func StartScheduler(db *gorm.DB, queue *utils.MailQueue, mailer utils.Mailer) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	if queue != nil && mailer != nil {
		_, err = sched.NewJob(
			gocron.DurationJob(MailDrainInterval),
			gocron.NewTask(func() {
				ctx, cancel := context.WithTimeout(context.Background(), MailDrainInterval)
				defer cancel()
				DrainMailQueue(ctx, queue, mailer)
			}),
			gocron.WithName("drain-mail-queue"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return nil, err
		}
	}

	_, err = sched.NewJob(
		gocron.DurationJob(PromotionSweepInterval),
		gocron.NewTask(func() { SweepPromotions(db) }),
		gocron.WithName("sweep-expired-promotions"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	utils.LogInfo("[Scheduler] Started with %d jobs", len(sched.Jobs()))
	return sched, nil
}
