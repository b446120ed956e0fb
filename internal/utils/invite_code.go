package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// InviteCodeLength is the fixed length of generated invite codes.
const InviteCodeLength = 24

// GenerateInviteCode returns a random mixed-case alphanumeric code of
// InviteCodeLength characters, generated once per user at first login.
func GenerateInviteCode() (string, error) {
	code := make([]byte, InviteCodeLength)
	max := big.NewInt(int64(len(inviteCodeAlphabet)))

	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		code[i] = inviteCodeAlphabet[n.Int64()]
	}

	return string(code), nil
}
