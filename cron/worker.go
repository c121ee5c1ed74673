package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"nyayamitra/config"
	caseRepo "nyayamitra/database/repository/caserepo"
	userRepo "nyayamitra/database/repository/user"
	"nyayamitra/services/mailer"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const (
	TypeTrialScan     = "trial:scan"
	TypeTrialReminder = "trial:reminder"
)

// trialReminderPayload identifies one family mail to send.
type trialReminderPayload struct {
	CaseNumber  int    `json:"caseNumber"`
	FamilyEmail string `json:"familyEmail"`
	TrialDate   string `json:"trialDate"`
}

// InitReminderWorker runs the async worker and the daily scan schedule in
// background. The scan finds cases heard tomorrow and fans out one reminder
// task per family contact.
func InitReminderWorker(cases caseRepo.CaseRepository, users userRepo.UserRepository, mail mailer.Mailer) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	client := asynq.NewClient(redisOpts)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeTrialScan, handleTrialScan(cases, users, client))
	mux.HandleFunc(TypeTrialReminder, handleTrialReminder(mail))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.Local})
	if _, err := scheduler.Register("0 7 * * *", asynq.NewTask(TypeTrialScan, nil)); err != nil {
		log.Printf("[ReminderWorker] Failed to register trial scan schedule: %v", err)
	}

	go monitorRedisConnection()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[ReminderWorker] Scheduler stopped: %v", err)
		}
	}()

	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleTrialScan enqueues a reminder for every case heard tomorrow whose
// prisoner has a family contact.
func handleTrialScan(cases caseRepo.CaseRepository, users userRepo.UserRepository, client *asynq.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		tomorrow := time.Now().AddDate(0, 0, 1).Truncate(24 * time.Hour)
		dayAfter := tomorrow.AddDate(0, 0, 1)

		due, err := cases.GetWithTrialDateBetween(tomorrow, dayAfter)
		if err != nil {
			log.Printf("[TrialScan] Failed to query upcoming trials: %v", err)
			return err
		}

		for _, cs := range due {
			prisoner, err := users.GetByEmail(cs.SubmittedBy)
			if err != nil {
				log.Printf("[TrialScan] Failed to fetch prisoner %s: %v", cs.SubmittedBy, err)
				continue
			}
			if prisoner == nil || prisoner.FamilyEmail == "" {
				continue
			}

			payload, err := json.Marshal(trialReminderPayload{
				CaseNumber:  cs.CaseNumber,
				FamilyEmail: prisoner.FamilyEmail,
				TrialDate:   cs.TrialDate.Format(time.RFC3339),
			})
			if err != nil {
				continue
			}
			if _, err := client.EnqueueContext(ctx, asynq.NewTask(TypeTrialReminder, payload)); err != nil {
				log.Printf("[TrialScan] Failed to enqueue reminder for case %d: %v", cs.CaseNumber, err)
			}
		}
		return nil
	}
}

// handleTrialReminder sends one family reminder mail.
func handleTrialReminder(mail mailer.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p trialReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[TrialReminder] Invalid payload: %v", err)
			return err
		}

		trialDate, err := time.Parse(time.RFC3339, p.TrialDate)
		if err != nil {
			log.Printf("[TrialReminder] Invalid trial date %q: %v", p.TrialDate, err)
			return err
		}

		if err := mail.TrialReminder(p.FamilyEmail, p.CaseNumber, trialDate); err != nil {
			log.Printf("[TrialReminder] Failed to send reminder for case %d: %v", p.CaseNumber, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
