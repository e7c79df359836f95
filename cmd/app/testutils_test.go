package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/mediaservice"
	"github.com/sushihentaime/inkwell/internal/postservice"
	"github.com/sushihentaime/inkwell/internal/socialservice"
	"github.com/sushihentaime/inkwell/internal/tagservice"
	"github.com/sushihentaime/inkwell/internal/userservice"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Test_1234!"

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

type testDeps struct {
	store  *mediaservice.MockObjectStore
	images *mediaservice.MockImageSearcher
}

func newTestApplication(t *testing.T) (*application, *sql.DB, *testDeps) {
	db := common.TestDB("file://../../migrations", t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	rabbitURI := common.TestRabbitMQ(t)
	rabbitmq, err := common.NewMessageBroker(rabbitURI)
	require.NoError(t, err)
	t.Cleanup(func() { rabbitmq.Close() })

	err = common.SetupUserExchange(rabbitmq)
	require.NoError(t, err)

	cfg := &Config{
		Environment:    "test",
		Version:        "test",
		TrustedOrigins: []string{"http://localhost:3000"},
	}

	deps := &testDeps{
		store:  new(mediaservice.MockObjectStore),
		images: new(mediaservice.MockImageSearcher),
	}

	userService := userservice.NewUserService(db, rabbitmq)

	app := &application{
		config:        cfg,
		logger:        logger,
		metrics:       newMetrics(),
		userService:   userService,
		postService:   postservice.NewPostService(db),
		tagService:    tagservice.NewTagService(db),
		socialService: socialservice.NewSocialService(db),
		mediaService:  mediaservice.NewMediaService(deps.store, userService, deps.images, common.NewCache(5*time.Minute, 10*time.Minute)),
		broker:        rabbitmq,
	}

	return app, db, deps
}

// testSession creates an activated user with the post:write permission and returns its id and access token.
func testSession(t *testing.T, app *application, db *sql.DB, username string) (int, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	var id int
	err = db.QueryRow(`
		INSERT INTO users (username, name, email, password, activated)
		VALUES ($1, $2, $3, $4, true)
		RETURNING id`, username, "Name "+username, username+"@example.com", hash).Scan(&id)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO user_permissions (user_id, permission) VALUES ($1, $2)", id, userservice.PermissionWritePost)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	token, err := app.userService.LoginUser(ctx, username, testPassword)
	require.NoError(t, err)

	return id, token.AccessTokenPlain
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) get(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) put(t *testing.T, path, token string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path, token string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}
