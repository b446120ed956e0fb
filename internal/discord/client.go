package discord

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/domain"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://discord.com/api/v10"

// User is the portion of Discord's /users/@me response the service consumes.
// Discord returns a much larger object; only these fields are unmarshalled.
type User struct {
	ID                   string                `json:"id"`
	Username             string                `json:"username"`
	Email                *string               `json:"email"`
	Avatar               string                `json:"avatar"`
	AvatarDecorationData *AvatarDecorationData `json:"avatar_decoration_data"`
}

// AvatarDecorationData describes an avatar decoration asset.
type AvatarDecorationData struct {
	Asset string `json:"asset"`
	SkuID string `json:"sku_id"`
}

// Client performs the two outbound calls of the OAuth2 authorization-code
// flow against Discord: code-for-token exchange and bearer profile fetch.
// Both calls run under a bounded timeout; a failure of either is terminal
// for the triggering login, never retried here.
type Client struct {
	config  *oauth2.Config
	http    *http.Client
	baseURL string
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API base, used by tests to
// target a local stand-in for Discord.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
		c.config.Endpoint = oauth2.Endpoint{
			AuthURL:  baseURL + "/oauth2/authorize",
			TokenURL: baseURL + "/oauth2/token",
		}
	}
}

// NewClient creates a Discord OAuth2 client. redirectURL must match the
// redirect URI registered for the application exactly.
func NewClient(applicationID, applicationSecret, redirectURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		config: &oauth2.Config{
			ClientID:     applicationID,
			ClientSecret: applicationSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"identify", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  defaultBaseURL + "/oauth2/authorize",
				TokenURL: defaultBaseURL + "/oauth2/token",
			},
		},
		http:    &http.Client{},
		baseURL: defaultBaseURL,
		timeout: timeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AuthURL returns the consent-page URL the browser is sent to. state is the
// caller-chosen correlation token Discord echoes back on the redirect.
func (c *Client) AuthURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for an access packet. The
// exchange is a server-to-server form POST carrying the application secret;
// the token never passes through the browser.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*domain.AccessPacket, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("discord: exchanging authorization code: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("discord: token endpoint returned an empty access token")
	}

	packet := &domain.AccessPacket{
		AccessToken:  token.AccessToken,
		ExpiresAt:    token.Expiry,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		packet.Scope = scope
	}

	return packet, nil
}

// FetchUser retrieves the authenticated user's profile with the packet's
// bearer credential.
func (c *Client) FetchUser(ctx context.Context, packet *domain.AccessPacket) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/@me", nil)
	if err != nil {
		return nil, fmt.Errorf("discord: building /users/@me request: %w", err)
	}
	req.Header.Set("Authorization", packet.AuthorizationValue())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discord: calling /users/@me: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("discord: /users/@me returned status %d: %s", resp.StatusCode, body)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("discord: decoding /users/@me response: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("discord: /users/@me returned a user without an id")
	}

	return &user, nil
}
