package controllers

import (
	"log/slog"
	"net/http"

	"vacationbooking/internal/delivery/http/helpers"
	"vacationbooking/internal/delivery/http/middleware"
	"vacationbooking/internal/domain"
)

// CreateVacationRequest is the request body for POST /vacations. Dates use
// dd/MM/yyyy and times HH:mm.
type CreateVacationRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Place       string  `json:"place"`
	Country     string  `json:"country"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DateBegin   string  `json:"date_begin"`
	TimeBegin   string  `json:"time_begin"`
	DateEnd     string  `json:"date_end"`
	TimeEnd     string  `json:"time_end"`
	PicturePath *string `json:"picture_path"`
}

// Validate implements Validator. Field-length and period rules live in the
// domain; this only rejects missing fields early.
func (req CreateVacationRequest) Validate() []string {
	var errs []string
	if req.Title == "" {
		errs = append(errs, "title is required")
	}
	if req.DateBegin == "" || req.TimeBegin == "" {
		errs = append(errs, "date_begin and time_begin are required")
	}
	if req.DateEnd == "" || req.TimeEnd == "" {
		errs = append(errs, "date_end and time_end are required")
	}
	return errs
}

type VacationController struct {
	Logger  *slog.Logger
	Service domain.VacationService
}

func NewVacationController(logger *slog.Logger, svc domain.VacationService) *VacationController {
	return &VacationController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a vacation
// @Description Creates a draft vacation for the authenticated user. The period must be free of the owner's other vacations.
// @Tags vacations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vacation body CreateVacationRequest true "Vacation data"
// @Success 201 {object} helpers.APIResponse "data contains the created vacation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /vacations [post]
func (c *VacationController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVacationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	vacation, err := c.Service.Create(r.Context(), domain.CreateVacationArgs{
		Title:       req.Title,
		Description: req.Description,
		Place:       req.Place,
		Country:     req.Country,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		DateBegin:   req.DateBegin,
		TimeBegin:   req.TimeBegin,
		DateEnd:     req.DateEnd,
		TimeEnd:     req.TimeEnd,
		PicturePath: req.PicturePath,
		OwnerID:     actorID,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, vacation)
}

// GetByID godoc
// @Summary Get a vacation by ID
// @Description Drafts are visible to the owner and accepted invitees only; published vacations to anyone.
// @Tags vacations
// @Produce json
// @Security BearerAuth
// @Param vacationID path string true "Vacation ID"
// @Success 200 {object} helpers.APIResponse "data contains the vacation"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vacations/{vacationID} [get]
func (c *VacationController) GetByID(w http.ResponseWriter, r *http.Request) {
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
	vacation, err := c.Service.GetByID(r.Context(), vacationID, actorID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vacation)
}

// List godoc
// @Summary List the authenticated user's vacations
// @Description Returns vacations owned by the user plus those joined through an accepted invitation.
// @Tags vacations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the vacations"
// @Router /vacations [get]
func (c *VacationController) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	vacations, err := c.Service.ListForUser(r.Context(), actorID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, vacations)
}

// Publish godoc
// @Summary Publish a vacation
// @Description One-way transition. Freezes the vacation's activities and invitations. Owner only.
// @Tags vacations
// @Produce json
// @Security BearerAuth
// @Param vacationID path string true "Vacation ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already published)"
// @Router /vacations/{vacationID}/publish [post]
func (c *VacationController) Publish(w http.ResponseWriter, r *http.Request) {
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
	if err := c.Service.Publish(r.Context(), vacationID, actorID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]bool{"published": true})
}

// Members godoc
// @Summary List a vacation's members
// @Description Returns the owner plus accepted invitees.
// @Tags vacations
// @Produce json
// @Security BearerAuth
// @Param vacationID path string true "Vacation ID"
// @Success 200 {object} helpers.APIResponse "data contains the member users"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vacations/{vacationID}/members [get]
func (c *VacationController) Members(w http.ResponseWriter, r *http.Request) {
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
	members, err := c.Service.ListMembers(r.Context(), vacationID, actorID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}

// Headcount godoc
// @Summary Count travellers per country on a date
// @Description Counts owners plus invitees of vacations covering the given day (dd/MM/yyyy).
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (dd/MM/yyyy)"
// @Success 200 {object} helpers.APIResponse "data contains per-country counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /stats/headcount [get]
func (c *VacationController) Headcount(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing date")
		return
	}
	counts, err := c.Service.HeadcountByCountry(r.Context(), date)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, counts)
}
