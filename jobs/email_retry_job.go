package jobs

import (
	"log"
	"time"

	"servicelink-server/services"
)

// EmailRetryJob drains the email outbox, retrying deliveries that failed
// their immediate attempt
type EmailRetryJob struct {
	notifications *services.NotificationService
	stopChan      chan bool
}

// NewEmailRetryJob creates a new email retry job
func NewEmailRetryJob(notifications *services.NotificationService) *EmailRetryJob {
	return &EmailRetryJob{
		notifications: notifications,
		stopChan:      make(chan bool),
	}
}

// Start begins the email retry job
func (j *EmailRetryJob) Start() {
	go j.run()
	log.Println("🚀 Email retry job started")
}

// Stop stops the email retry job
func (j *EmailRetryJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Email retry job stopped")
}

func (j *EmailRetryJob) run() {
	ticker := time.NewTicker(2 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if sent := j.notifications.DispatchPendingEmails(50); sent > 0 {
				log.Printf("📧 Delivered %d queued emails", sent)
			}
		case <-j.stopChan:
			return
		}
	}
}
