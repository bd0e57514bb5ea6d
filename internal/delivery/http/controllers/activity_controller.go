package controllers

import (
	"log/slog"
	"net/http"

	"vacationbooking/internal/delivery/http/helpers"
	"vacationbooking/internal/delivery/http/middleware"
	"vacationbooking/internal/domain"
)

// AddActivitiesRequest is the request body for POST /vacations/{vacationID}/activities.
// The whole batch is accepted or rejected atomically.
type AddActivitiesRequest struct {
	Activities []ActivityInput `json:"activities"`
}

type ActivityInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Place       string  `json:"place"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

func (req AddActivitiesRequest) Validate() []string {
	if len(req.Activities) == 0 {
		return []string{"activities must not be empty"}
	}
	return nil
}

// PlanActivityRequest is the request body for POST /activities/{activityID}/plan.
type PlanActivityRequest struct {
	DateBegin string `json:"date_begin"`
	TimeBegin string `json:"time_begin"`
	DateEnd   string `json:"date_end"`
	TimeEnd   string `json:"time_end"`
}

func (req PlanActivityRequest) Validate() []string {
	var errs []string
	if req.DateBegin == "" || req.TimeBegin == "" {
		errs = append(errs, "date_begin and time_begin are required")
	}
	if req.DateEnd == "" || req.TimeEnd == "" {
		errs = append(errs, "date_end and time_end are required")
	}
	return errs
}

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{
		Logger:  logger,
		Service: svc,
	}
}

// AddBatch godoc
// @Summary Add activities to a vacation
// @Description Adds a batch of unplanned activities. All-or-nothing: any invalid entry rejects the batch. Members only, draft vacations only.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vacationID path string true "Vacation ID"
// @Param activities body AddActivitiesRequest true "Activities to add"
// @Success 201 {object} helpers.APIResponse "data contains the created activities"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: published or conflict"
// @Router /vacations/{vacationID}/activities [post]
func (c *ActivityController) AddBatch(w http.ResponseWriter, r *http.Request) {
	vacationID := r.PathValue("vacationID")
	if vacationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing vacationID")
		return
	}
	var req AddActivitiesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	items := make([]domain.NewActivityInput, 0, len(req.Activities))
	for _, in := range req.Activities {
		items = append(items, domain.NewActivityInput{
			Name:        in.Name,
			Description: in.Description,
			Place:       in.Place,
			Latitude:    in.Latitude,
			Longitude:   in.Longitude,
		})
	}
	activities, err := c.Service.AddBatch(r.Context(), vacationID, items, actorID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, activities)
}

// List godoc
// @Summary List a vacation's activities
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param vacationID path string true "Vacation ID"
// @Success 200 {object} helpers.APIResponse "data contains the activities"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vacations/{vacationID}/activities [get]
func (c *ActivityController) List(w http.ResponseWriter, r *http.Request) {
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
	activities, err := c.Service.ListForVacation(r.Context(), vacationID, actorID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activities)
}

// Planning godoc
// @Summary List a vacation's planned activities
// @Description Returns only activities that have been given a time slot, ordered by start time.
// @Tags activities
// @Produce json
// @Security BearerAuth
// @Param vacationID path string true "Vacation ID"
// @Success 200 {object} helpers.APIResponse "data contains the planned activities"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /vacations/{vacationID}/planning [get]
func (c *ActivityController) Planning(w http.ResponseWriter, r *http.Request) {
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
	activities, err := c.Service.Planning(r.Context(), vacationID, actorID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activities)
}

// Plan godoc
// @Summary Assign a time slot to an activity
// @Description Gives an activity a begin and end. The slot must not overlap other planned activities of the same vacation. Members only, draft vacations only.
// @Tags activities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param activityID path string true "Activity ID"
// @Param slot body PlanActivityRequest true "Time slot"
// @Success 200 {object} helpers.APIResponse "data contains the planned activity"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: published or conflict"
// @Router /activities/{activityID}/plan [post]
func (c *ActivityController) Plan(w http.ResponseWriter, r *http.Request) {
	activityID := r.PathValue("activityID")
	if activityID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing activityID")
		return
	}
	var req PlanActivityRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	activity, err := c.Service.Plan(r.Context(), activityID, domain.PlanActivityArgs{
		DateBegin: req.DateBegin,
		TimeBegin: req.TimeBegin,
		DateEnd:   req.DateEnd,
		TimeEnd:   req.TimeEnd,
	}, actorID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, activity)
}
