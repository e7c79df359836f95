package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sushihentaime/inkwell/internal/userservice"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)
	router.Handler(http.MethodGet, "/metrics", app.metrics.handler())

	// users
	router.HandlerFunc(http.MethodPost, "/v1/users/register", app.registerUserHandler)
	router.HandlerFunc(http.MethodPut, "/v1/users/activate", app.activateUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/login", app.loginUserHandler)
	router.HandlerFunc(http.MethodPost, "/v1/users/logout", app.requireAuthUser(app.logoutUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/users/me", app.requireActivatedUser(app.currentUserHandler))
	router.HandlerFunc(http.MethodPost, "/v1/users/avatar", app.requireActivatedUser(app.uploadAvatarHandler))
	router.HandlerFunc(http.MethodPost, "/v1/follows/:id", app.requireActivatedUser(app.followUserHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/follows/:id", app.requireActivatedUser(app.unfollowUserHandler))
	router.HandlerFunc(http.MethodGet, "/v1/follows/:id/followers", app.requireActivatedUser(app.getFollowersHandler))
	router.HandlerFunc(http.MethodGet, "/v1/follows/:id/following", app.requireActivatedUser(app.getFollowingHandler))

	router.HandlerFunc(http.MethodGet, "/v1/profiles/:username", app.getProfileHandler)
	router.HandlerFunc(http.MethodGet, "/v1/profiles/:username/posts", app.getUserPostsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/suggestions", app.requireActivatedUser(app.getSuggestionsHandler))
	router.HandlerFunc(http.MethodGet, "/v1/reading-list", app.requireActivatedUser(app.getReadingListHandler))

	// posts
	router.HandlerFunc(http.MethodGet, "/v1/posts", app.getPostsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts", app.requirePermission(app.createPostHandler, userservice.PermissionWritePost))
	router.HandlerFunc(http.MethodGet, "/v1/slugs/:slug", app.getPostHandler)
	router.HandlerFunc(http.MethodPut, "/v1/posts/:id", app.requireActivatedUser(app.updatePostHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/posts/:id", app.requireActivatedUser(app.deletePostHandler))
	router.HandlerFunc(http.MethodPut, "/v1/posts/:id/featured-image", app.requireActivatedUser(app.updateFeaturedImageHandler))
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/authors", app.requireActivatedUser(app.addAuthorHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/posts/:id/authors/:userid", app.requireActivatedUser(app.removeAuthorHandler))
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id/likes", app.getLikesHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/like", app.requireActivatedUser(app.likePostHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/posts/:id/like", app.requireActivatedUser(app.dislikePostHandler))
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/bookmark", app.requireActivatedUser(app.bookmarkPostHandler))
	router.HandlerFunc(http.MethodDelete, "/v1/posts/:id/bookmark", app.requireActivatedUser(app.removeBookmarkHandler))
	router.HandlerFunc(http.MethodGet, "/v1/posts/:id/comments", app.getCommentsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/posts/:id/comments", app.requireActivatedUser(app.submitCommentHandler))

	// tags
	router.HandlerFunc(http.MethodGet, "/v1/tags", app.requireActivatedUser(app.getTagsHandler))
	router.HandlerFunc(http.MethodPost, "/v1/tags", app.requireActivatedUser(app.createTagHandler))
	router.HandlerFunc(http.MethodGet, "/v1/tags/:slug/posts", app.getTagPostsHandler)

	router.HandlerFunc(http.MethodGet, "/v1/images/search", app.requireActivatedUser(app.searchImagesHandler))

	return app.recoverPanic(app.metricsMiddleware(app.logRequest(app.enableCORS(app.rateLimit(app.authenticate(router))))))
}
