package dto

import (
	"fmt"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
)

const (
	avatarURLFormat     = "https://cdn.discordapp.com/avatars/%s/%s.png"
	decorationURLFormat = "https://cdn.discordapp.com/avatar-decoration-presets/%s.png"
)

// PublicProfile is the externally safe projection of a user. It carries no
// credential fields and is rebuilt from the ledger tables whenever the user
// changes, so TotalCredits can never go stale.
type PublicProfile struct {
	ClientID            string         `json:"clientID"`
	Username            string         `json:"userName"`
	AvatarURL           string         `json:"avatarURL"`
	AvatarDecorationURL *string        `json:"avatarDecorationURL,omitempty"`
	InviteCode          string         `json:"inviteCode"`
	JoinDate            int64          `json:"joinDate"`
	CreditModifications []PublicCredit `json:"creditModifications"`
	InviteTimestamps    []int64        `json:"inviteTimestamps"`
	Redeems             []PublicRedeem `json:"redeems"`
	TotalCredits        int64          `json:"totalCredits"`
}

// PublicCredit is one credit ledger entry as exposed to the client.
type PublicCredit struct {
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
	Reason    string `json:"reason"`
}

// PublicRedeem is one payout request as exposed to the client.
type PublicRedeem struct {
	RedeemedDate int64               `json:"redeemedDate"`
	PaidAmount   int                 `json:"paidAmount"`
	Status       domain.RedeemStatus `json:"status"`
	Message      *string             `json:"message,omitempty"`
}

// NewPublicProfile derives the public view of user from its ledger rows.
// TotalCredits is the sum of all credit amounts at construction time.
func NewPublicProfile(user *domain.User, credits []*domain.CreditModification, invites []*domain.Invite, redeems []*domain.Redeem) *PublicProfile {
	profile := &PublicProfile{
		ClientID:            user.ClientID,
		Username:            user.Username,
		AvatarURL:           fmt.Sprintf(avatarURLFormat, user.ClientID, user.Avatar),
		InviteCode:          user.InviteCode,
		JoinDate:            user.JoinDate.UnixMilli(),
		CreditModifications: make([]PublicCredit, 0, len(credits)),
		InviteTimestamps:    make([]int64, 0, len(invites)),
		Redeems:             make([]PublicRedeem, 0, len(redeems)),
	}

	if user.AvatarDecoration != nil {
		url := fmt.Sprintf(decorationURLFormat, *user.AvatarDecoration)
		profile.AvatarDecorationURL = &url
	}

	for _, credit := range credits {
		profile.CreditModifications = append(profile.CreditModifications, PublicCredit{
			Amount:    credit.Amount,
			Timestamp: credit.ModifyDate.UnixMilli(),
			Reason:    credit.Reason,
		})
		profile.TotalCredits += credit.Amount
	}

	for _, invite := range invites {
		profile.InviteTimestamps = append(profile.InviteTimestamps, invite.InvitedDate.UnixMilli())
	}

	for _, redeem := range redeems {
		profile.Redeems = append(profile.Redeems, PublicRedeem{
			RedeemedDate: redeem.RedeemedDate.UnixMilli(),
			PaidAmount:   redeem.PaidAmount,
			Status:       redeem.Status,
			Message:      redeem.Message,
		})
	}

	return profile
}
