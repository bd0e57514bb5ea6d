package controllers

import (
	"log/slog"
	"net/http"

	"vacationbooking/internal/delivery/http/helpers"
	"vacationbooking/internal/delivery/http/middleware"
	"vacationbooking/internal/domain"
)

// InviteRequest is the request body for POST /vacations/{vacationID}/invitations.
type InviteRequest struct {
	UserIDs []string `json:"user_ids"`
}

func (req InviteRequest) Validate() []string {
	if len(req.UserIDs) == 0 {
		return []string{"user_ids must not be empty"}
	}
	return nil
}

// InvitationListResponse wraps a page of invitations with pagination metadata.
type InvitationListResponse struct {
	Invitations []*domain.Invitation   `json:"invitations"`
	Pagination  helpers.PaginationMeta `json:"pagination"`
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// Invite godoc
// @Summary Invite users to a vacation
// @Description Creates pending invitations for the given users. Users already invited or already members are skipped. Members only, draft vacations only.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vacationID path string true "Vacation ID"
// @Param invitees body InviteRequest true "User IDs to invite"
// @Success 201 {object} helpers.APIResponse "data contains the newly created invitations"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: published"
// @Router /vacations/{vacationID}/invitations [post]
func (c *InvitationController) Invite(w http.ResponseWriter, r *http.Request) {
	vacationID := r.PathValue("vacationID")
	if vacationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing vacationID")
		return
	}
	var req InviteRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	invitations, err := c.Service.Invite(r.Context(), vacationID, actorID, req.UserIDs)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, invitations)
}

// Accept godoc
// @Summary Accept an invitation
// @Description The invitee joins the vacation. Accepting an already accepted invitation is a no-op. Fails once the vacation is published.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param invitationID path string true "Invitation ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: published"
// @Router /invitations/{invitationID}/accept [post]
func (c *InvitationController) Accept(w http.ResponseWriter, r *http.Request) {
	invitationID := r.PathValue("invitationID")
	if invitationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing invitationID")
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Accept(r.Context(), invitationID, actorID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"accepted": true})
}

// List godoc
// @Summary List a vacation's invitations
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param vacationID path string true "Vacation ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains invitations and pagination metadata"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vacations/{vacationID}/invitations [get]
func (c *InvitationController) List(w http.ResponseWriter, r *http.Request) {
	vacationID := r.PathValue("vacationID")
	if vacationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing vacationID")
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	invitations, total, err := c.Service.ListForVacation(r.Context(), vacationID, actorID, params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, InvitationListResponse{
		Invitations: invitations,
		Pagination:  helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}
