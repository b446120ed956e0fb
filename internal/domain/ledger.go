package domain

import "time"

// CreditModification is one append-only ledger entry for a user's credit
// balance. Entries are never updated or deleted; the balance is always the
// sum of all amounts.
type CreditModification struct {
	UID        int64     `json:"uid" db:"uid"`
	ClientID   string    `json:"clientID" db:"client_id"`
	Amount     int64     `json:"amount" db:"amount"`
	ModifyDate time.Time `json:"modifyDate" db:"modify_date"`
	Reason     string    `json:"reason" db:"reason"`
}

// Invite records that one user referred another. Append-only.
type Invite struct {
	UID         int64     `json:"uid" db:"uid"`
	InviterID   string    `json:"inviterId" db:"inviter_id"`
	InvitedID   string    `json:"invitedId" db:"invited_id"`
	InvitedDate time.Time `json:"invitedDate" db:"invited_date"`
}

// RedeemStatus is the state of a payout request.
type RedeemStatus string

const (
	RedeemStatusPending  RedeemStatus = "PENDING"
	RedeemStatusApproved RedeemStatus = "APPROVED"
	RedeemStatusRejected RedeemStatus = "REJECTED"
)

// Valid reports whether s is one of the known redeem states.
func (s RedeemStatus) Valid() bool {
	switch s {
	case RedeemStatusPending, RedeemStatusApproved, RedeemStatusRejected:
		return true
	}
	return false
}

// Redeem is a payout request made by a user. Only the status field is
// mutable after insertion.
type Redeem struct {
	UID          int64        `json:"uid" db:"uid"`
	ClientID     string       `json:"clientID" db:"client_id"`
	RedeemedDate time.Time    `json:"redeemedDate" db:"redeemed_date"`
	PaidAmount   int          `json:"paidAmount" db:"paid_amount"`
	Status       RedeemStatus `json:"status" db:"status"`
	Message      *string      `json:"message" db:"message"`
}
