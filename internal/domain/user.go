package domain

import "time"

// User represents a Discord account known to the service. The Discord
// client ID is the primary key; display fields and the access packet are
// replaced wholesale on every login while invite code and join date are
// preserved.
type User struct {
	ClientID         string  `json:"clientID" db:"client_id"`
	Username         string  `json:"userName" db:"user_name"`
	Email            *string `json:"email" db:"email"`
	Avatar           string  `json:"avatar" db:"avatar"`
	AvatarDecoration *string `json:"avatarDecoration" db:"avatar_decoration"`

	AccessPacket AccessPacket `json:"accessPacket"`

	InviteCode string    `json:"inviteCode" db:"invite_code"`
	JoinDate   time.Time `json:"joinDate" db:"join_date"`
}
