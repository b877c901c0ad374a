package services

import (
	"log"
	"time"

	"servicelink-server/config"
	"servicelink-server/database"
	"servicelink-server/models"
)

// NotificationPusher pushes a notification to a connected user in realtime.
// Implemented by the websocket hub.
type NotificationPusher interface {
	PushNotification(userID uint, notification *models.Notification)
}

// NotificationService creates in-app notifications, pushes them over the
// websocket hub and queues the email leg in the outbox
type NotificationService struct {
	pusher NotificationPusher
	email  *EmailService
}

// NewNotificationService creates a new notification service. The pusher may
// be nil when no realtime hub is running (tests, one-off tools).
func NewNotificationService(pusher NotificationPusher) *NotificationService {
	return &NotificationService{
		pusher: pusher,
		email:  NewEmailService(),
	}
}

// Create inserts a notification row and pushes it to the user if connected
func (ns *NotificationService) Create(userID uint, title, message, notificationType string, relatedID *uint) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		RelatedID: relatedID,
	}

	if err := database.DB.Create(notification).Error; err != nil {
		return nil, err
	}

	if ns.pusher != nil {
		ns.pusher.PushNotification(userID, notification)
	}

	return notification, nil
}

// CreateWithTransactionEmail creates a notification and queues a wallet
// transfer email for the user. Email failure never fails the caller; the
// outbox row is retried by the background job until the attempt limit.
func (ns *NotificationService) CreateWithTransactionEmail(user models.Profile, title, message, notificationType string, relatedID *uint, amount float64, description string, kind TransactionEmailKind) (*models.Notification, error) {
	notification, err := ns.Create(user.ID, title, message, notificationType, relatedID)
	if err != nil {
		return nil, err
	}

	subject, html := BuildTransactionEmail(amount, description, kind)
	outbox := &models.EmailMessage{
		NotificationID: &notification.ID,
		ToEmail:        user.Email,
		Subject:        subject,
		HTML:           html,
	}
	if err := database.DB.Create(outbox).Error; err != nil {
		log.Printf("❌ Failed to queue transaction email for user %d: %v", user.ID, err)
		return notification, nil
	}

	if ns.email.Enabled() {
		go ns.dispatch(outbox.ID)
	}

	return notification, nil
}

// DispatchPendingEmails attempts delivery of queued outbox rows. Returns
// how many were delivered.
func (ns *NotificationService) DispatchPendingEmails(limit int) int {
	if !ns.email.Enabled() {
		return 0
	}

	var pending []models.EmailMessage
	err := database.DB.
		Where("sent_at IS NULL AND attempts < ?", config.AppConfig.Email.MaxAttempts).
		Order("created_at ASC").
		Limit(limit).
		Find(&pending).Error
	if err != nil {
		log.Printf("❌ Error loading email outbox: %v", err)
		return 0
	}

	sent := 0
	for _, msg := range pending {
		if ns.deliver(&msg) {
			sent++
		}
	}
	return sent
}

// dispatch delivers one outbox row by id, used for the immediate async
// attempt after queueing
func (ns *NotificationService) dispatch(outboxID uint) {
	var msg models.EmailMessage
	if err := database.DB.First(&msg, outboxID).Error; err != nil {
		return
	}
	if msg.SentAt != nil {
		return
	}
	ns.deliver(&msg)
}

// deliver performs a single send attempt and records the result
func (ns *NotificationService) deliver(msg *models.EmailMessage) bool {
	msg.Attempts++

	if err := ns.email.Send(msg.ToEmail, msg.Subject, msg.HTML); err != nil {
		msg.LastError = err.Error()
		database.DB.Save(msg)
		log.Printf("⚠️ Email delivery attempt %d failed for outbox %d: %v", msg.Attempts, msg.ID, err)
		return false
	}

	now := time.Now()
	msg.SentAt = &now
	msg.LastError = ""
	database.DB.Save(msg)

	if msg.NotificationID != nil {
		database.DB.Model(&models.Notification{}).
			Where("id = ?", *msg.NotificationID).
			Update("email_sent", true)
	}

	log.Printf("✅ Email delivered to %s (outbox %d)", msg.ToEmail, msg.ID)
	return true
}
