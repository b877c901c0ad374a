package models

import (
	"testing"
)

func TestServiceRequestTransitions(t *testing.T) {
	tests := []struct {
		status      ServiceRequestStatus
		canAccept   bool
		canReject   bool
		canComplete bool
		terminal    bool
	}{
		{RequestStatusPending, true, true, false, false},
		{RequestStatusAccepted, false, false, true, false},
		{RequestStatusRejected, false, false, false, true},
		{RequestStatusCompleted, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			r := ServiceRequest{Status: tt.status}
			if got := r.CanAccept(); got != tt.canAccept {
				t.Errorf("CanAccept() = %v, want %v", got, tt.canAccept)
			}
			if got := r.CanReject(); got != tt.canReject {
				t.Errorf("CanReject() = %v, want %v", got, tt.canReject)
			}
			if got := r.CanComplete(); got != tt.canComplete {
				t.Errorf("CanComplete() = %v, want %v", got, tt.canComplete)
			}
			if got := r.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestBookingTransitions(t *testing.T) {
	tests := []struct {
		status      BookingStatus
		canCancel   bool
		canComplete bool
	}{
		{BookingStatusConfirmed, true, true},
		{BookingStatusCompleted, false, false},
		{BookingStatusCancelled, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := Booking{Status: tt.status}
			if got := b.CanCancel(); got != tt.canCancel {
				t.Errorf("CanCancel() = %v, want %v", got, tt.canCancel)
			}
			if got := b.CanComplete(); got != tt.canComplete {
				t.Errorf("CanComplete() = %v, want %v", got, tt.canComplete)
			}
		})
	}
}

func TestInternalTransactionIsClaimable(t *testing.T) {
	receiver := uint(7)

	tests := []struct {
		name     string
		transfer InternalTransaction
		want     bool
	}{
		{"pending without receiver", InternalTransaction{Status: TransferStatusPending}, true},
		{"pending with receiver", InternalTransaction{Status: TransferStatusPending, ReceiverID: &receiver}, false},
		{"completed", InternalTransaction{Status: TransferStatusCompleted, ReceiverID: &receiver}, false},
		{"refunded", InternalTransaction{Status: TransferStatusRefunded}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.transfer.IsClaimable(); got != tt.want {
				t.Errorf("IsClaimable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfileDefaultsToClient(t *testing.T) {
	p := Profile{Email: "a@b.c", FullName: "A"}
	if err := p.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if p.UserType != UserTypeClient {
		t.Errorf("UserType = %q, want %q", p.UserType, UserTypeClient)
	}
	if !p.IsClient() || p.IsProvider() {
		t.Errorf("expected client profile, got IsClient=%v IsProvider=%v", p.IsClient(), p.IsProvider())
	}
}
