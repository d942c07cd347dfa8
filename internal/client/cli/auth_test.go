package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/client/client"
	"github.com/dmitrijs2005/userdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

func TestLogin_OnlineSuccess(t *testing.T) {
	ta := newTestApp(t, "")
	ta.auth.onlineAcc = models.Account{Username: "admin", Role: "admin"}
	ta.auth.onlineTok = "T1"
	ta.api.listRet = []models.User{bob, amy}

	pw := []byte("secret")
	stubInputs(t, "admin", pw)

	require.NoError(t, ta.Login(context.Background()))

	assert.Equal(t, "admin", ta.auth.onlineUser)
	assert.Equal(t, []byte("secret"), ta.auth.onlinePass)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0}, pw, "password must be wiped")

	assert.True(t, ta.isLoggedIn())
	assert.Equal(t, ModeOnline, ta.Mode())
	assert.Equal(t, "T1", ta.api.token)
	assert.Equal(t, "T1", ta.holder.Token())
	assert.Len(t, ta.holder.Users(), 2, "login fetches the collection")
	assert.Contains(t, ta.out.String(), "Welcome, admin!")

	flag, err := ta.store.Get(context.Background(), "isAuthenticated")
	require.NoError(t, err)
	assert.Equal(t, "true", string(flag))
}

func TestLogin_FallsBackToOffline(t *testing.T) {
	ta := newTestApp(t, "")
	ta.auth.onlineErr = client.ErrUnavailable
	ta.auth.offlineAcc = models.Account{Username: "admin", Role: "admin"}
	stubInputs(t, "admin", []byte("pw"))

	require.NoError(t, ta.Login(context.Background()))

	assert.Equal(t, "admin", ta.auth.offlineUser)
	assert.True(t, ta.isLoggedIn())
	assert.Equal(t, ModeOffline, ta.Mode())
	assert.Empty(t, ta.api.token)
}

func TestLogin_BothFail_Disabled(t *testing.T) {
	ta := newTestApp(t, "")
	ta.auth.onlineErr = client.ErrUnavailable
	ta.auth.offlineErr = client.ErrLocalDataNotAvailable
	stubInputs(t, "admin", []byte("pw"))

	err := ta.Login(context.Background())
	require.ErrorIs(t, err, client.ErrLocalDataNotAvailable)
	assert.False(t, ta.isLoggedIn())
	assert.Equal(t, ModeDisabled, ta.Mode())
}

func TestLogin_BadCredentials_NoOfflineAttempt(t *testing.T) {
	ta := newTestApp(t, "")
	ta.auth.onlineErr = client.ErrUnauthorized
	stubInputs(t, "admin", []byte("wrong"))

	err := ta.Login(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, ta.auth.offlineUser)
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "Login failed: invalid credentials")
}

func TestLogin_OtherOnlineErrorIsReportedAsIs(t *testing.T) {
	ta := newTestApp(t, "")
	storeErr := errors.New("failed to set metadata[offlineVerifier]: disk full")
	ta.auth.onlineErr = storeErr
	stubInputs(t, "admin", []byte("secret"))

	err := ta.Login(context.Background())
	require.ErrorIs(t, err, storeErr)
	assert.Empty(t, ta.auth.offlineUser)
	assert.False(t, ta.isLoggedIn())
	assert.NotContains(t, ta.out.String(), "invalid credentials")
	assert.Contains(t, ta.out.String(), "Login failed: failed to set metadata[offlineVerifier]: disk full")
}

func TestLogin_InputError(t *testing.T) {
	ta := newTestApp(t, "")
	origST := getSimpleText
	t.Cleanup(func() { getSimpleText = origST })
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return "", io.EOF }

	require.ErrorIs(t, ta.Login(context.Background()), io.EOF)
	assert.Empty(t, ta.auth.onlineUser)
}

func TestLogout_ClearsSessionAndToken(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn(t, bob)
	ta.api.SetToken("tok")
	ta.view.Query = "bob"

	require.NoError(t, ta.Logout(context.Background()))
	assert.False(t, ta.isLoggedIn())
	assert.Empty(t, ta.api.token)
	assert.Empty(t, ta.view.Query)
	assert.Contains(t, ta.out.String(), "Logged out")
}

func TestHandleAPIError_UnauthorizedLogsOut(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn(t, bob)

	err := ta.handleAPIError(context.Background(), "fetch users", client.ErrUnauthorized)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "Session expired")
}

func TestHandleAPIError_OtherErrorsKeepSession(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn(t, bob)

	boom := errors.New("boom")
	require.ErrorIs(t, ta.handleAPIError(context.Background(), "fetch users", boom), boom)
	assert.True(t, ta.isLoggedIn())
	assert.Contains(t, ta.out.String(), "Error: fetch users failed: boom")
}

func TestForget(t *testing.T) {
	ta := newTestApp(t, "")
	ta.signIn(t)

	require.NoError(t, ta.Forget(context.Background()))
	assert.Equal(t, 1, ta.auth.clearCalls)
	assert.True(t, ta.isLoggedIn(), "session is kept")
	assert.Contains(t, ta.out.String(), "Offline credentials removed")

	ta.auth.clearErr = errors.New("disk full")
	require.Error(t, ta.Forget(context.Background()))
	assert.Contains(t, ta.out.String(), "Error: forget failed: disk full")
}
