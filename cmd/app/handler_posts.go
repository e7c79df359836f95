package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/postservice"
)

// postErrorResponse maps the post service conflicts before the shared mapping.
func (app *application) postErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, postservice.ErrDuplicateSlug),
		errors.Is(err, postservice.ErrDuplicateLike),
		errors.Is(err, postservice.ErrDuplicateBookmark),
		errors.Is(err, postservice.ErrDuplicateAuthor):
		app.conflictErrorResponse(w, r, err)
	default:
		app.serviceErrorResponse(w, r, err)
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input postservice.CreatePostRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.AuthorID = app.viewerID(r)

	post, err := app.postService.CreatePost(r.Context(), &input)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getPostsHandler(w http.ResponseWriter, r *http.Request) {
	cursor, err := app.readCursorParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	feed, err := app.postService.GetPosts(r.Context(), cursor, app.viewerID(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	env := envelope{"posts": feed.Posts}
	if feed.NextCursor != nil {
		env["next_cursor"] = *feed.NextCursor
	}

	err = app.writeJSON(w, http.StatusOK, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getPostHandler(w http.ResponseWriter, r *http.Request) {
	post, err := app.postService.GetPost(r.Context(), app.readStringParam(r, "slug"), app.viewerID(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updatePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input postservice.UpdatePostRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.PostID = id
	input.ActorID = app.viewerID(r)

	post, err := app.postService.UpdatePost(r.Context(), &input)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.postService.DeletePost(r.Context(), id, app.viewerID(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "post deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type featuredImageRequest struct {
	ImageURL string `json:"image_url"`
}

func (app *application) updateFeaturedImageHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input featuredImageRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	post, err := app.postService.UpdateFeaturedImage(r.Context(), id, app.viewerID(r), input.ImageURL)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"post": post}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type addAuthorRequest struct {
	UserID int `json:"user_id"`
}

func (app *application) addAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input addAuthorRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	author, err := app.postService.AddAuthor(r.Context(), id, app.viewerID(r), input.UserID)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"author": author}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// removeAuthorHandler reports storage failures in the body with a 200 status.
func (app *application) removeAuthorHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	userID, err := app.readIDParam(r, "userid")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var validationErr common.ValidationError

	err = app.postService.RemoveAuthor(r.Context(), id, app.viewerID(r), userID)
	switch {
	case err == nil:
		err = app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "author removed"}, nil)
	case errors.As(err, &validationErr),
		errors.Is(err, common.ErrRecordNotFound),
		errors.Is(err, common.ErrForbidden):
		app.serviceErrorResponse(w, r, err)
		return
	default:
		app.logError(r, err)
		err = app.writeJSON(w, http.StatusOK, envelope{"success": false, "error": "could not remove the author"}, nil)
	}

	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.GetPostsByUsername(r.Context(), app.readStringParam(r, "username"), app.viewerID(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getTagPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := app.postService.GetPostsByTag(r.Context(), app.readStringParam(r, "slug"), app.viewerID(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
