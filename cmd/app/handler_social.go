package main

import (
	"errors"
	"net/http"

	"github.com/sushihentaime/inkwell/internal/socialservice"
	"github.com/sushihentaime/inkwell/internal/tagservice"
)

func (app *application) followUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.socialService.Follow(r.Context(), app.viewerID(r), id)
	if err != nil {
		switch {
		case errors.Is(err, socialservice.ErrSelfFollow):
			app.badRequestErrorResponse(w, r, err)
		case errors.Is(err, socialservice.ErrAlreadyFollowing):
			app.conflictErrorResponse(w, r, err)
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "user followed"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.socialService.Unfollow(r.Context(), app.viewerID(r), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "user unfollowed"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getFollowersHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	followers, err := app.socialService.GetFollowers(r.Context(), id, app.viewerID(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"followers": followers}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getFollowingHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	following, err := app.socialService.GetFollowing(r.Context(), id)
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"following": following}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	users, err := app.socialService.GetSuggestions(r.Context(), app.viewerID(r))
	if err != nil {
		app.serviceErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"suggestions": users}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

type createTagRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (app *application) createTagHandler(w http.ResponseWriter, r *http.Request) {
	var input createTagRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	tag, err := app.tagService.CreateTag(r.Context(), input.Name, input.Description)
	if err != nil {
		switch {
		case errors.Is(err, tagservice.ErrDuplicateTag):
			app.conflictErrorResponse(w, r, err)
		default:
			app.serviceErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"tag": tag}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := app.tagService.GetTags(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"tags": tags}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
