package acceptance

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Nitro4Friends/Nitro4Friends-Backend/internal/dto"
	"github.com/google/uuid"
)

// noRedirectClient keeps the 302 response instead of following it.
var noRedirectClient = &http.Client{
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// login drives the full callback flow and returns the state token the
// session is stored under.
func (s *Suite) login() string {
	state := uuid.NewString()

	resp, err := noRedirectClient.Get(fmt.Sprintf("%s/redirect?code=valid-code&state=%s", s.BaseURL, state))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusFound, resp.StatusCode)
	s.Equal(testAuthURL, resp.Header.Get("Location"))

	return state
}

func (s *Suite) TestCallback_Success() {
	s.login()

	var userName, inviteCode string
	var email sql.NullString
	err := s.Postgres.DB.QueryRow(
		"SELECT user_name, email, invite_code FROM users WHERE client_id = $1",
		testClientID,
	).Scan(&userName, &email, &inviteCode)
	s.Require().NoError(err, "User row should exist after login")

	s.Equal("acceptancetester", userName)
	s.True(email.Valid)
	s.Equal("tester@example.com", email.String)
	s.Len(inviteCode, 24)
}

func (s *Suite) TestCallback_MissingParams() {
	resp, err := http.Get(s.BaseURL + "/redirect?code=valid-code")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestCallback_UpstreamRejectsCode() {
	resp, err := noRedirectClient.Get(s.BaseURL + "/redirect?code=invalid-code&state=" + uuid.NewString())
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusInternalServerError, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("Internal server error", errResp.Error)
}

func (s *Suite) TestCallback_SecondLoginKeepsInviteCode() {
	s.login()

	var firstCode string
	err := s.Postgres.DB.QueryRow("SELECT invite_code FROM users WHERE client_id = $1", testClientID).Scan(&firstCode)
	s.Require().NoError(err)

	s.login()

	var secondCode string
	err = s.Postgres.DB.QueryRow("SELECT invite_code FROM users WHERE client_id = $1", testClientID).Scan(&secondCode)
	s.Require().NoError(err)

	s.Equal(firstCode, secondCode, "Invite code must survive repeat logins")

	var count int
	err = s.Postgres.DB.QueryRow("SELECT count(*) FROM users WHERE client_id = $1", testClientID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *Suite) TestGetMe_Success() {
	state := s.login()

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/redirect/@me", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+state)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var profile dto.PublicProfile
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&profile))

	s.Equal(testClientID, profile.ClientID)
	s.Equal("acceptancetester", profile.Username)
	s.Len(profile.InviteCode, 24)
	s.Contains(profile.AvatarURL, testClientID)
	s.NotNil(profile.CreditModifications)
	s.NotNil(profile.InviteTimestamps)
	s.NotNil(profile.Redeems)
	s.Zero(profile.TotalCredits)
}

func (s *Suite) TestGetMe_ReflectsLedger() {
	s.login()

	_, err := s.Postgres.DB.Exec(
		"INSERT INTO credits (client_id, amount, reason) VALUES ($1, 25, 'ad-banner'), ($1, -10, 'redeem')",
		testClientID,
	)
	s.Require().NoError(err)

	// The cached view was derived at login; a fresh login rebuilds it.
	state := s.login()

	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/redirect/@me", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+state)

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var profile dto.PublicProfile
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&profile))

	s.Equal(int64(15), profile.TotalCredits)
	s.Len(profile.CreditModifications, 2)
}

func (s *Suite) TestGetMe_NoToken() {
	resp, err := http.Get(s.BaseURL + "/redirect/@me")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestGetMe_UnknownToken() {
	req, err := http.NewRequest(http.MethodGet, s.BaseURL+"/redirect/@me", nil)
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+uuid.NewString())

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusForbidden, resp.StatusCode)
}
