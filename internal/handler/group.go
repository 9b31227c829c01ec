package handler

import (
	"log/slog"
	"net/http"

	"cfahub/internal/domain/services"
	"cfahub/internal/httputil"
)

// GroupHandler handles study group and membership HTTP requests
type GroupHandler struct {
	groupService services.GroupService
	logger       *slog.Logger
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groupService services.GroupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
		logger:       logger,
	}
}

// Create creates a group and makes the caller its first member.
// POST /api/groups
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(r.Context(), httputil.GetUserID(r), req.Name)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, group)
}

// Join joins the group behind an invite code. Re-joining is a no-op that
// still returns the group.
// POST /api/groups/join
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InviteCode string `json:"invite_code"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	group, err := h.groupService.JoinGroup(r.Context(), httputil.GetUserID(r), req.InviteCode)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, group)
}

// List lists the caller's memberships with the joined group rows.
// GET /api/groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	memberships, err := h.groupService.ListMemberships(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, memberships)
}

// GetActiveGroup returns the caller's preselected share target.
// GET /api/users/me/active-group
func (h *GroupHandler) GetActiveGroup(w http.ResponseWriter, r *http.Request) {
	profile, err := h.groupService.GetActiveGroup(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, profile)
}

// SetActiveGroup updates the preselected share target; null clears it.
// PUT /api/users/me/active-group
func (h *GroupHandler) SetActiveGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GroupID *string `json:"group_id"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.groupService.SetActiveGroup(r.Context(), httputil.GetUserID(r), req.GroupID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
