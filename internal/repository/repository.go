package repository

import (
	"github.com/Nitro4Friends/Nitro4Friends-Backend/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User   UserRepository
	Credit CreditRepository
	Invite InviteRepository
	Redeem RedeemRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:   NewUserRepository(db),
		Credit: NewCreditRepository(db),
		Invite: NewInviteRepository(db),
		Redeem: NewRedeemRepository(db),
	}
}
