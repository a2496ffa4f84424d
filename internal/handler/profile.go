package handler

import (
	"context"
	"net/http"

	"github.com/forgo/gigbook/internal/model"
)

// ProfileService is the profile surface the handler needs
type ProfileService interface {
	Get(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, actorID, profileID string, patch model.ProfilePatch) (*model.Profile, error)
	Search(ctx context.Context, filter model.ProfileFilter, page model.Pagination) (*model.Page[*model.Profile], error)
}

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Search handles GET /v1/profiles?q=&user_type=&city=&state=&limit=&offset=
func (h *ProfileHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePagination(r)
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid pagination"))
		return
	}

	filter := model.ProfileFilter{
		Query: r.URL.Query().Get("q"),
		City:  optionalQuery(r, "city"),
		State: optionalQuery(r, "state"),
	}
	if v := optionalQuery(r, "user_type"); v != nil {
		userType := model.UserType(*v)
		if !userType.Valid() {
			WriteError(w, model.NewValidationError([]model.FieldError{{Field: "user_type", Message: "must be client or professional"}}))
			return
		}
		filter.UserType = &userType
	}

	result, err := h.profileService.Search(r.Context(), filter, page)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "search profiles"))
		return
	}

	WritePage(w, result, page, "/v1/profiles")
}

// Get handles GET /v1/profiles/{profileId}
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID, ok := pathID(w, r, "profileId")
	if !ok {
		return
	}

	profile, err := h.profileService.Get(r.Context(), profileID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, profile, map[string]string{
		"self":      "/v1/profiles/" + profileID,
		"reviews":   "/v1/professionals/" + profileID + "/reviews",
		"portfolio": "/v1/professionals/" + profileID + "/portfolio",
	})
}

// Update handles PATCH /v1/profiles/{profileId}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	profileID, ok := pathID(w, r, "profileId")
	if !ok {
		return
	}

	var patch model.ProfilePatch
	if err := DecodeJSON(r, &patch); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	profile, err := h.profileService.Update(r.Context(), userID, profileID, patch)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update profile"))
		return
	}

	WriteData(w, http.StatusOK, profile, map[string]string{
		"self": "/v1/profiles/" + profileID,
	})
}
