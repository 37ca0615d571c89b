package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gathersplit/internal/auth"
	"gathersplit/internal/storage/sqlite"
)

// testEnv spins up the full router against a throwaway SQLite database so
// handler tests exercise the same stack as production requests.
type testEnv struct {
	t       *testing.T
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	return &testEnv{
		t:       t,
		handler: NewRouter(store, authenticator, jwtManager),
	}
}

// do sends a request through the router and returns the recorded response.
// A non-empty token is attached as a bearer credential.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(e.t, err, "failed to marshal request body")
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON response into out.
func (e *testEnv) decode(rec *httptest.ResponseRecorder, out any) {
	e.t.Helper()
	require.NoError(e.t, json.Unmarshal(rec.Body.Bytes(), out), "failed to decode response: %s", rec.Body.String())
}

// registerUser creates an account via the public endpoint, sets the
// preference flags, and returns the user ID and a session token.
func (e *testEnv) registerUser(name string, vegan, herb bool) (string, string) {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"email":    name + "@example.com",
		"name":     name,
		"password": "correct-horse",
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, "register %s: %s", name, rec.Body.String())

	var session struct {
		User  userResponse `json:"user"`
		Token string       `json:"token"`
	}
	e.decode(rec, &session)

	if vegan || herb {
		rec = e.do(http.MethodPut, "/api/v1/users/"+session.User.ID, session.Token, map[string]any{
			"name":               name,
			"isVegan":            vegan,
			"participatesInHerb": herb,
		})
		require.Equal(e.t, http.StatusOK, rec.Code, "update prefs for %s: %s", name, rec.Body.String())
	}

	return session.User.ID, session.Token
}

// createGathering creates a gathering with the given participants and
// returns its ID.
func (e *testEnv) createGathering(token, title string, participants []string) string {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/api/v1/gatherings", token, map[string]any{
		"title":        title,
		"date":         time.Now().Unix(),
		"participants": participants,
	})
	require.Equal(e.t, http.StatusCreated, rec.Code, "create gathering: %s", rec.Body.String())

	var resp gatheringResponse
	e.decode(rec, &resp)
	return resp.ID
}

// addExpense posts an expense to a gathering and returns the response
// recorder so callers can assert on rejections too.
func (e *testEnv) addExpense(token, gatheringID string, body map[string]any) *httptest.ResponseRecorder {
	e.t.Helper()
	return e.do(http.MethodPost, "/api/v1/gatherings/"+gatheringID+"/expenses", token, body)
}
