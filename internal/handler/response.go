package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/forgo/gigbook/internal/middleware"
	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/service"
)

// DataResponse wraps a successful response with optional HATEOAS links
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// CollectionResponse wraps a collection response with pagination
type CollectionResponse struct {
	Data       interface{}       `json:"data"`
	Pagination *PaginationInfo   `json:"pagination,omitempty"`
	Links      map[string]string `json:"_links,omitempty"`
}

// PaginationInfo describes the offset window a collection was cut from
type PaginationInfo struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, DataResponse{Data: data, Links: links})
}

// WriteCollection writes a collection response with pagination
func WriteCollection(w http.ResponseWriter, status int, data interface{}, pagination *PaginationInfo, links map[string]string) {
	WriteJSON(w, status, CollectionResponse{Data: data, Pagination: pagination, Links: links})
}

// WritePage writes one page of a listing
func WritePage[T any](w http.ResponseWriter, page *model.Page[T], window model.Pagination, self string) {
	window = window.Normalize()
	WriteCollection(w, http.StatusOK, page.Items, &PaginationInfo{
		Limit:   window.Limit,
		Offset:  window.Offset,
		Total:   page.Total,
		HasMore: window.Offset+len(page.Items) < page.Total,
	}, map[string]string{"self": self})
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteNoContent writes a 204 No Content response
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// requireUser returns the authenticated identity id or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return "", false
	}
	return userID, true
}

// pathID returns a path value or writes a 400
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id := r.PathValue(name)
	if id == "" {
		WriteError(w, model.NewBadRequestError(name+" required"))
		return "", false
	}
	return id, true
}

// parsePagination reads limit and offset query parameters
func parsePagination(r *http.Request) (model.Pagination, error) {
	var page model.Pagination
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, err
		}
		page.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, err
		}
		page.Offset = n
	}
	return page, nil
}

// parseDateRange reads the from and to query parameters
func parseDateRange(r *http.Request) model.DateRange {
	var dates model.DateRange
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		dates.From = &v
	}
	if v := q.Get("to"); v != "" {
		dates.To = &v
	}
	return dates
}

// parseListRequest reads the party listing parameters shared by bookings,
// quote requests and proposals
func parseListRequest(r *http.Request) (service.ListRequest, error) {
	page, err := parsePagination(r)
	if err != nil {
		return service.ListRequest{}, err
	}
	q := r.URL.Query()
	req := service.ListRequest{
		Role:  model.PartyRole(q.Get("role")),
		Dates: parseDateRange(r),
		Page:  page,
	}
	if v := q.Get("status"); v != "" {
		status := model.Status(v)
		req.Status = &status
	}
	return req, nil
}

func optionalQuery(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}
