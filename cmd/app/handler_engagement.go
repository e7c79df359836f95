package main

import (
	"context"
	"net/http"
)

// postAction runs a like or bookmark mutation for the session user on the :id post.
func (app *application) postAction(fn func(ctx context.Context, userID, postID int) error, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := app.readIDParam(r, "id")
		if err != nil {
			app.badRequestErrorResponse(w, r, err)
			return
		}

		err = fn(r.Context(), app.viewerID(r), id)
		if err != nil {
			app.postErrorResponse(w, r, err)
			return
		}

		err = app.writeJSON(w, http.StatusOK, envelope{"message": message}, nil)
		if err != nil {
			app.serverErrorResponse(w, r, err)
		}
	}
}

func (app *application) likePostHandler(w http.ResponseWriter, r *http.Request) {
	app.postAction(app.postService.LikePost, "post liked")(w, r)
}

func (app *application) dislikePostHandler(w http.ResponseWriter, r *http.Request) {
	app.postAction(app.postService.DislikePost, "post disliked")(w, r)
}

func (app *application) bookmarkPostHandler(w http.ResponseWriter, r *http.Request) {
	app.postAction(app.postService.BookmarkPost, "post bookmarked")(w, r)
}

func (app *application) removeBookmarkHandler(w http.ResponseWriter, r *http.Request) {
	app.postAction(app.postService.RemoveBookmark, "bookmark removed")(w, r)
}

func (app *application) getLikesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	count, err := app.postService.GetLikeCount(r.Context(), id)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"likes": count}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getReadingListHandler(w http.ResponseWriter, r *http.Request) {
	list, err := app.postService.GetReadingList(r.Context(), app.viewerID(r))
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"bookmarks": list}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type submitCommentRequest struct {
	Text string `json:"text"`
}

func (app *application) submitCommentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input submitCommentRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comment, err := app.postService.SubmitComment(r.Context(), app.viewerID(r), id, input.Text)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getCommentsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	comments, err := app.postService.GetComments(r.Context(), id)
	if err != nil {
		app.postErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
