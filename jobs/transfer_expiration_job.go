package jobs

import (
	"log"
	"time"

	"servicelink-server/config"
	"servicelink-server/services"
)

// TransferExpirationJob refunds unclaimed link and QR transfers once their
// claim window has passed
type TransferExpirationJob struct {
	wallet   *services.WalletService
	stopChan chan bool
}

// NewTransferExpirationJob creates a new transfer expiration job
func NewTransferExpirationJob(wallet *services.WalletService) *TransferExpirationJob {
	return &TransferExpirationJob{
		wallet:   wallet,
		stopChan: make(chan bool),
	}
}

// Start begins the transfer expiration job
func (j *TransferExpirationJob) Start() {
	go j.run()
	log.Println("🚀 Transfer expiration job started")
}

// Stop stops the transfer expiration job
func (j *TransferExpirationJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Transfer expiration job stopped")
}

func (j *TransferExpirationJob) run() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.refundExpiredTransfers()
		case <-j.stopChan:
			return
		}
	}
}

func (j *TransferExpirationJob) refundExpiredTransfers() {
	ttl := time.Duration(config.AppConfig.Wallet.ClaimTTLHours) * time.Hour

	if refunded := j.wallet.RefundExpired(ttl); refunded > 0 {
		log.Printf("⏰ Refunded %d expired transfers", refunded)
	}
}
