package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
	"librarysystem/internal/validation"
)

// ActivityStore defines database operations for the activity log.
type ActivityStore interface {
	List(opts database.ListOptions) ([]entities.Activity, int64, error)
	GetByID(id uint) (*entities.Activity, error)
	Create(activity *entities.Activity) error
	Update(activity *entities.Activity) error
	Delete(id uint) error
	ExistsByID(id uint) (bool, error)
}

type ActivitiesController struct {
	store ActivityStore
}

func NewActivitiesController(store ActivityStore) *ActivitiesController {
	return &ActivitiesController{store: store}
}

// List returns a page of activity entries.
// GET /api/activities
func (controller *ActivitiesController) List(c *gin.Context) {
	rows, total, err := controller.store.List(listOptionsFromQuery(c))
	if err != nil {
		respondInternalError(c, err, "list activities")
		return
	}
	respondRecords(c, rows, total)
}

// Get returns a single activity entry.
// GET /api/activities/:id
func (controller *ActivitiesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	activity, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "get activity")
		return
	}
	c.JSON(http.StatusOK, activity)
}

// Create validates the payload and inserts a new activity entry.
// POST /api/activities
func (controller *ActivitiesController) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.CreateActivitySchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	activity := activityFromPayload(payload)
	if err := controller.store.Create(activity); err != nil {
		respondInternalError(c, err, "create activity")
		return
	}

	respondMsg(c, http.StatusCreated, "Activity created successfully")
}

// Update replaces the fields of an existing activity entry.
// PUT /api/activities/:id
func (controller *ActivitiesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.UpdateActivitySchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	activity, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "update activity")
		return
	}

	updated := activityFromPayload(payload)
	updated.ID = activity.ID
	updated.CreatedAt = activity.CreatedAt

	if err := controller.store.Update(updated); err != nil {
		respondInternalError(c, err, "update activity")
		return
	}

	respondMsg(c, http.StatusOK, "Activity updated successfully")
}

// Delete removes an activity entry.
// DELETE /api/activities/:id
func (controller *ActivitiesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete activity")
		return
	}
	respondMsg(c, http.StatusOK, "Activity deleted successfully")
}

func activityFromPayload(payload map[string]any) *entities.Activity {
	return &entities.Activity{
		AccountID: stringField(payload, "account_id"),
		Activity:  stringField(payload, "activity"),
	}
}
