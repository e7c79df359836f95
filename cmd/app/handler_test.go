package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckHandler(t *testing.T) {
	app := newBareApplication(&Config{Environment: "test", Version: "1.2.3"})
	ts := newTestServer(t, app.routes())

	status, headers, body := ts.get(t, "/v1/healthcheck", "")
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, headers.Get("X-Request-ID"))
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, map[string]any{"environment": "test", "version": "1.2.3"}, body["system_info"])

	status, _, body = ts.get(t, "/v1/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "resource not found", body["error"])
}

func TestUserHandlers(t *testing.T) {
	app, db, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	registerCases := []struct {
		name       string
		payload    any
		wantStatus int
		wantError  any
	}{
		{
			name:       "Valid Request",
			payload:    map[string]any{"username": "testuser", "name": "Test User", "email": "testuser@example.com", "password": testPassword},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Invalid Email",
			payload:    map[string]any{"username": "otheruser", "email": "test", "password": testPassword},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  map[string]any{"email": "must be a valid email address"},
		},
		{
			name:       "Duplicate Email",
			payload:    map[string]any{"username": "otheruser", "email": "testuser@example.com", "password": testPassword},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  map[string]any{"email": "a user with this email address already exists"},
		},
		{
			name:       "Duplicate Username",
			payload:    map[string]any{"username": "testuser", "email": "other@example.com", "password": testPassword},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  map[string]any{"username": "this username is already taken"},
		},
		{
			name:       "Unknown Field",
			payload:    map[string]any{"username": "otheruser", "admin": true},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range registerCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/v1/users/register", "", tc.payload)
			assert.Equal(t, tc.wantStatus, status)
			if tc.wantError != nil {
				assert.Equal(t, tc.wantError, body["error"])
			}
		})
	}

	t.Run("Activate With Unknown Token", func(t *testing.T) {
		status, _, body := ts.put(t, "/v1/users/activate", "", map[string]any{"token": strings.Repeat("A", 26)})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, map[string]any{"token": "invalid or expired activation token"}, body["error"])
	})

	t.Run("Inactive Account", func(t *testing.T) {
		token, err := app.userService.LoginUser(context.Background(), "testuser", testPassword)
		require.NoError(t, err)

		status, _, _ := ts.get(t, "/v1/users/me", token.AccessTokenPlain)
		assert.Equal(t, http.StatusForbidden, status)
	})

	_, token := testSession(t, app, db, "alice")

	loginCases := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{name: "Valid Credentials", payload: map[string]any{"username": "alice", "password": testPassword}, wantStatus: http.StatusOK},
		{name: "Unknown Username", payload: map[string]any{"username": "nobody", "password": testPassword}, wantStatus: http.StatusUnauthorized},
		{name: "Wrong Password", payload: map[string]any{"username": "alice", "password": "Wrong_1234!"}, wantStatus: http.StatusUnauthorized},
		{name: "Empty Payload", payload: map[string]any{}, wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tc := range loginCases {
		t.Run(tc.name, func(t *testing.T) {
			status, _, body := ts.post(t, "/v1/users/login", "", tc.payload)
			assert.Equal(t, tc.wantStatus, status)
			if status == http.StatusOK {
				require.IsType(t, map[string]any{}, body["token"])
				token = body["token"].(map[string]any)["access_token"].(string)
			}
		})
	}

	status, _, body := ts.get(t, "/v1/users/me", token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["user"].(map[string]any)["username"])

	status, _, body = ts.get(t, "/v1/profiles/alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["profile"].(map[string]any)["username"])

	status, _, _ = ts.get(t, "/v1/profiles/nobody", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = ts.post(t, "/v1/users/logout", token, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.get(t, "/v1/users/me", token)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func postPayload(title string, tagIDs ...int) map[string]any {
	return map[string]any{
		"title":       title,
		"description": strings.Repeat("A short summary of the post. ", 3),
		"html":        "<p>" + strings.Repeat("Body text of the post. ", 6) + "</p><script>alert(1)</script>",
		"tag_ids":     tagIDs,
	}
}

func TestPostHandlers(t *testing.T) {
	app, db, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	aliceID, alice := testSession(t, app, db, "alice")
	bobID, bob := testSession(t, app, db, "bob")

	// tags
	status, _, body := ts.post(t, "/v1/tags", alice, map[string]any{"name": "Golang", "description": "Posts about the Go language"})
	require.Equal(t, http.StatusCreated, status)
	tag := body["tag"].(map[string]any)
	assert.Equal(t, "golang", tag["slug"])
	tagID := int(tag["id"].(float64))

	status, _, _ = ts.post(t, "/v1/tags", alice, map[string]any{"name": "Golang", "description": "Posts about the Go language"})
	assert.Equal(t, http.StatusConflict, status)

	status, _, _ = ts.get(t, "/v1/tags", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, body = ts.get(t, "/v1/tags", bob)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["tags"], 1)

	// create
	status, _, _ = ts.post(t, "/v1/posts", "", postPayload("Concurrency in Go"))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, body = ts.post(t, "/v1/posts", alice, postPayload("Short"))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body["error"], "title")

	status, _, body = ts.post(t, "/v1/posts", alice, postPayload("Concurrency in Go", tagID+100))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]any{"tag_ids": "must only reference existing tags"}, body["error"])

	status, _, body = ts.post(t, "/v1/posts", alice, postPayload("Concurrency in Go", tagID, tagID))
	require.Equal(t, http.StatusCreated, status)
	post := body["post"].(map[string]any)
	assert.Equal(t, "concurrency-in-go", post["slug"])
	assert.NotContains(t, post["html"], "<script>")
	postPath := fmt.Sprintf("/v1/posts/%d", int(post["id"].(float64)))

	status, _, _ = ts.post(t, "/v1/posts", alice, postPayload("Concurrency in Go"))
	assert.Equal(t, http.StatusConflict, status)

	// read
	status, _, body = ts.get(t, "/v1/slugs/concurrency-in-go", "")
	require.Equal(t, http.StatusOK, status)
	detail := body["post"].(map[string]any)
	assert.Len(t, detail["tags"], 1)
	assert.Equal(t, float64(0), detail["like_count"])

	status, _, _ = ts.get(t, "/v1/slugs/missing-post", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _, body = ts.get(t, "/v1/posts", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"], 1)
	assert.NotContains(t, body, "next_cursor")

	status, _, _ = ts.get(t, "/v1/posts?cursor=abc", "")
	assert.Equal(t, http.StatusBadRequest, status)

	// edit permissions
	update := postPayload("Concurrency in Go, revisited", tagID)

	status, _, _ = ts.put(t, postPath, bob, update)
	assert.Equal(t, http.StatusForbidden, status)

	status, _, body = ts.post(t, postPath+"/authors", alice, map[string]any{"user_id": bobID})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, float64(bobID), body["author"].(map[string]any)["author_id"])

	status, _, _ = ts.post(t, postPath+"/authors", alice, map[string]any{"user_id": bobID})
	assert.Equal(t, http.StatusConflict, status)

	status, _, _ = ts.post(t, postPath+"/authors", alice, map[string]any{"user_id": aliceID})
	assert.Equal(t, http.StatusConflict, status)

	status, _, body = ts.put(t, postPath, bob, update)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Concurrency in Go, revisited", body["post"].(map[string]any)["title"])
	assert.Equal(t, "concurrency-in-go", body["post"].(map[string]any)["slug"])

	status, _, body = ts.put(t, postPath+"/featured-image", bob, map[string]any{"image_url": "https://images.example.com/gopher.png"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://images.example.com/gopher.png", body["post"].(map[string]any)["featured_image"])

	status, _, _ = ts.put(t, postPath+"/featured-image", bob, map[string]any{"image_url": "not a url"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	// engagement
	status, _, _ = ts.post(t, postPath+"/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = ts.post(t, postPath+"/like", bob, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.post(t, postPath+"/like", bob, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _, body = ts.get(t, postPath+"/likes", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["likes"])

	status, _, _ = ts.delete(t, postPath+"/like", bob)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.delete(t, postPath+"/like", bob)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = ts.get(t, "/v1/posts/9999/likes", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = ts.post(t, postPath+"/bookmark", alice, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.post(t, postPath+"/bookmark", alice, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _, body = ts.get(t, "/v1/reading-list", alice)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["bookmarks"], 1)

	status, _, body = ts.get(t, "/v1/posts", alice)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["posts"].([]any)[0].(map[string]any)["bookmarked"])

	status, _, _ = ts.delete(t, postPath+"/bookmark", alice)
	assert.Equal(t, http.StatusOK, status)

	// comments
	status, _, _ = ts.post(t, postPath+"/comments", bob, map[string]any{"text": "ok"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _, body = ts.post(t, postPath+"/comments", bob, map[string]any{"text": "Great write-up!"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "bob", body["comment"].(map[string]any)["user"].(map[string]any)["username"])

	status, _, body = ts.get(t, postPath+"/comments", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["comments"], 1)

	status, _, _ = ts.get(t, "/v1/posts/9999/comments", "")
	assert.Equal(t, http.StatusNotFound, status)

	// listings
	status, _, body = ts.get(t, "/v1/profiles/alice/posts", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"], 1)

	status, _, body = ts.get(t, "/v1/profiles/bob/posts", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"], 0)

	status, _, body = ts.get(t, "/v1/tags/golang/posts", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"], 1)

	// co-author removal and delete
	status, _, body = ts.delete(t, fmt.Sprintf("%s/authors/%d", postPath, bobID), alice)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])

	status, _, _ = ts.delete(t, fmt.Sprintf("%s/authors/%d", postPath, bobID), bob)
	assert.Equal(t, http.StatusForbidden, status)

	status, _, _ = ts.delete(t, postPath, bob)
	assert.Equal(t, http.StatusForbidden, status)

	status, _, _ = ts.delete(t, postPath, alice)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.get(t, "/v1/slugs/concurrency-in-go", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _, _ = ts.delete(t, "/v1/posts/0", alice)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSocialHandlers(t *testing.T) {
	app, db, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	aliceID, alice := testSession(t, app, db, "alice")
	bobID, bob := testSession(t, app, db, "bob")

	follow := func(id int) string { return fmt.Sprintf("/v1/follows/%d", id) }

	status, _, _ := ts.post(t, follow(bobID), "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _, _ = ts.post(t, follow(bobID), alice, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.post(t, follow(bobID), alice, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, _, _ = ts.post(t, follow(aliceID), alice, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = ts.post(t, follow(bobID+100), alice, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _, body := ts.get(t, follow(bobID)+"/followers", bob)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["followers"], 1)
	follower := body["followers"].([]any)[0].(map[string]any)
	assert.Equal(t, "alice", follower["username"])
	assert.Equal(t, false, follower["followed_by_viewer"])

	status, _, body = ts.get(t, follow(aliceID)+"/following", bob)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["following"], 1)

	status, _, body = ts.get(t, "/v1/profiles/bob", alice)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["profile"].(map[string]any)["follower_count"])
	assert.Equal(t, true, body["profile"].(map[string]any)["followed_by_viewer"])

	status, _, body = ts.get(t, "/v1/suggestions", alice)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["suggestions"], 0)

	status, _, _ = ts.delete(t, follow(bobID), alice)
	assert.Equal(t, http.StatusOK, status)

	status, _, body = ts.get(t, follow(bobID)+"/followers", bob)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["followers"], 0)
}

func TestMediaHandlers(t *testing.T) {
	app, db, deps := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, alice := testSession(t, app, db, "alice")
	_, bob := testSession(t, app, db, "bob")

	image := "data:image/png;base64,iVBORw0KGgo="

	deps.store.On("Put", "avatars/alice.png", "image/png", mock.Anything).Return(nil)
	deps.store.On("Put", "avatars/bob.png", "image/png", mock.Anything).Return(errors.New("connection refused"))

	status, _, body := ts.post(t, "/v1/users/avatar", alice, map[string]any{"image_as_data_uri": image, "mimetype": "image/png", "username": "alice"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "http://localhost:9000/publicavatar/avatars/alice.png", body["image"])

	status, _, body = ts.get(t, "/v1/profiles/alice", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "http://localhost:9000/publicavatar/avatars/alice.png", body["profile"].(map[string]any)["image"])

	status, _, _ = ts.post(t, "/v1/users/avatar", alice, map[string]any{"image_as_data_uri": image, "username": "bob"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _, body = ts.post(t, "/v1/users/avatar", bob, map[string]any{"image_as_data_uri": image, "username": "bob"})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "avatar upload failed", body["error"])

	deps.images.On("SearchPhotos", "mountains").Return(json.RawMessage(`{"total":1,"results":[{"id":"abc"}]}`), nil).Once()
	deps.images.On("SearchPhotos", "oceans").Return(nil, errors.New("rate limited"))

	for i := 0; i < 2; i++ {
		status, _, body = ts.get(t, "/v1/images/search?q=mountains", alice)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(1), body["images"].(map[string]any)["total"])
	}

	status, _, _ = ts.get(t, "/v1/images/search?q=sea", alice)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, _, body = ts.get(t, "/v1/images/search?q=oceans", alice)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "image search is not available", body["error"])

	status, _, _ = ts.get(t, "/v1/images/search?q=mountains", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	deps.store.AssertExpectations(t)
	deps.images.AssertExpectations(t)
}
