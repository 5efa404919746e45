package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{
		URL:        server.URL,
		AnonKey:    "test-anon-key",
		HTTPClient: server.Client(),
	})
}

func TestSignInWithPassword_Success(t *testing.T) {
	userID := uuid.New().String()
	email := gofakeit.Email()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "test-anon-key", r.Header.Get("apikey"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, email, body["email"])
		assert.Equal(t, "secret123", body["password"])

		json.NewEncoder(w).Encode(Session{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    3600,
			User:         User{ID: userID, Email: email},
		})
	})

	sess, err := client.SignInWithPassword(context.Background(), email, "secret123")
	require.NoError(t, err)
	assert.Equal(t, "access-token", sess.AccessToken)
	assert.Equal(t, "refresh-token", sess.RefreshToken)
	assert.Equal(t, userID, sess.User.ID)
}

func TestSignInWithPassword_InvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	sess, err := client.SignInWithPassword(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	assert.Nil(t, sess)

	// The service's message must survive verbatim, it is shown to the user.
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestSignUp_ReturnsSessionWhenConfirmationDisabled(t *testing.T) {
	userID := uuid.New().String()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		data, ok := body["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ada Lovelace", data["full_name"])

		json.NewEncoder(w).Encode(Session{
			AccessToken:  "fresh-token",
			RefreshToken: "fresh-refresh",
			User:         User{ID: userID, Email: "ada@example.com"},
		})
	})

	result, err := client.SignUp(context.Background(), "ada@example.com", "secret123", map[string]any{"full_name": "Ada Lovelace"})
	require.NoError(t, err)
	require.NotNil(t, result.Session)
	assert.Equal(t, "fresh-token", result.Session.AccessToken)
	assert.Equal(t, userID, result.User.ID)
}

func TestSignUp_ReturnsUserWhenConfirmationPending(t *testing.T) {
	userID := uuid.New().String()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(User{ID: userID, Email: "ada@example.com"})
	})

	result, err := client.SignUp(context.Background(), "ada@example.com", "secret123", nil)
	require.NoError(t, err)
	assert.Nil(t, result.Session)
	assert.Equal(t, userID, result.User.ID)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"code":422,"msg":"User already registered"}`))
	})

	result, err := client.SignUp(context.Background(), "dup@example.com", "secret123", nil)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.EqualError(t, err, "User already registered")
}

func TestRefreshSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "old-refresh", body["refresh_token"])

		json.NewEncoder(w).Encode(Session{
			AccessToken:  "rotated-access",
			RefreshToken: "rotated-refresh",
			ExpiresIn:    3600,
		})
	})

	sess, err := client.RefreshSession(context.Background(), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "rotated-access", sess.AccessToken)
	assert.Equal(t, "rotated-refresh", sess.RefreshToken)
}

func TestRefreshSession_Revoked(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid Refresh Token"}`))
	})

	sess, err := client.RefreshSession(context.Background(), "revoked")
	require.Error(t, err)
	assert.Nil(t, sess)
}

func TestSignOut(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.SignOut(context.Background(), "user-token"))
	assert.Equal(t, "Bearer user-token", gotAuth)
}

func TestGetUser(t *testing.T) {
	userID := uuid.New().String()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(User{ID: userID, Email: "ada@example.com"})
	})

	user, err := client.GetUser(context.Background(), "user-token")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "ada@example.com", user.Email)
}
