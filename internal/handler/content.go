package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"cfahub/internal/contentkind"
	"cfahub/internal/domain/models"
	"cfahub/internal/domain/services"
	"cfahub/internal/httputil"
)

// ContentHandler handles the content item HTTP surface shared by the three
// kinds: listing, detail, creation, deletion, settings and tag assignment.
// The kind comes from the path ({kind} is documents, flashcards or quizzes).
type ContentHandler struct {
	kinds          *contentkind.Registry
	contentService services.ContentService
	sharingService services.SharingService
	tagService     services.TagService
	defaultLocale  string
	logger         *slog.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(
	kinds *contentkind.Registry,
	contentService services.ContentService,
	sharingService services.SharingService,
	tagService services.TagService,
	defaultLocale string,
	logger *slog.Logger,
) *ContentHandler {
	return &ContentHandler{
		kinds:          kinds,
		contentService: contentService,
		sharingService: sharingService,
		tagService:     tagService,
		defaultLocale:  defaultLocale,
		logger:         logger,
	}
}

// kind parses the {kind} path segment. An unknown kind reads as an unknown
// collection, so the caller gets a 404.
func (h *ContentHandler) kind(w http.ResponseWriter, r *http.Request) (contentkind.Kind, bool) {
	kind, err := h.kinds.Parse(r.PathValue("kind"))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return kind, true
}

// List assembles the library page for one kind.
// GET /api/content/{kind}?scope=&q=&tags=&locale=
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}
	userID := httputil.GetUserID(r)

	q := r.URL.Query()
	locale := q.Get("locale")
	if locale == "" {
		locale = h.defaultLocale
	}
	req := &services.ListLibraryRequest{
		Scope:      models.NormalizeScope(q.Get("scope")),
		TitleQuery: q.Get("q"),
		Locale:     locale,
	}
	if raw := q.Get("tags"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.TagIDs = append(req.TagIDs, id)
			}
		}
	}

	listing, err := h.contentService.ListLibrary(r.Context(), userID, kind, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// Get retrieves one item with the caller's computed access.
// GET /api/content/{kind}/{id}
func (h *ContentHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	detail, err := h.contentService.GetItem(r.Context(), httputil.GetUserID(r), kind, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, detail)
}

// Create creates an item of the kind.
// POST /api/content/{kind}
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	var req models.CreateContentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.OwnerID = httputil.GetUserID(r)

	item, err := h.contentService.CreateItem(r.Context(), kind, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// Delete deletes an item the caller owns.
// DELETE /api/content/{kind}/{id}
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	if err := h.contentService.DeleteItem(r.Context(), httputil.GetUserID(r), kind, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SaveSettings applies the owner-only settings mutation.
// PATCH /api/content/{kind}/{id}/settings
func (h *ContentHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	var req models.SaveSettingsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.sharingService.SaveSettings(r.Context(), httputil.GetUserID(r), kind, r.PathValue("id"), &req); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetTags replaces the item's tag assignment.
// PUT /api/content/{kind}/{id}/tags
func (h *ContentHandler) SetTags(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kind(w, r)
	if !ok {
		return
	}

	var req struct {
		TagIDs []string `json:"tag_ids"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.tagService.SetItemTags(r.Context(), httputil.GetUserID(r), kind, r.PathValue("id"), req.TagIDs); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
