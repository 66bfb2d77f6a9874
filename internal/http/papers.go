package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
	"librarysystem/internal/validation"
)

// PaperStore defines database operations for academic paper management.
type PaperStore interface {
	List(opts database.ListOptions) ([]entities.AcademicPaper, int64, error)
	GetByID(id uint) (*entities.AcademicPaper, error)
	Create(paper *entities.AcademicPaper) error
	Update(paper *entities.AcademicPaper) error
	Delete(id uint) error
	ExistsByID(id uint) (bool, error)
}

type PapersController struct {
	store PaperStore
}

func NewPapersController(store PaperStore) *PapersController {
	return &PapersController{store: store}
}

// List returns a page of academic papers.
// GET /api/academic-papers
func (controller *PapersController) List(c *gin.Context) {
	rows, total, err := controller.store.List(listOptionsFromQuery(c))
	if err != nil {
		respondInternalError(c, err, "list academic papers")
		return
	}
	respondRecords(c, rows, total)
}

// Get returns a single academic paper row.
// GET /api/academic-papers/:id
func (controller *PapersController) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	paper, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "get academic paper")
		return
	}
	c.JSON(http.StatusOK, paper)
}

// Create validates the payload and inserts a new academic paper.
// POST /api/academic-papers
func (controller *PapersController) Create(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.CreateAcademicPaperSchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	paper := paperFromPayload(payload)
	if err := controller.store.Create(paper); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			respondMsg(c, http.StatusBadRequest,
				fmt.Sprintf("check if id of %s already exists", paper.AcadpID))
			return
		}
		respondInternalError(c, err, "create academic paper")
		return
	}

	respondMsg(c, http.StatusCreated, "Academic paper created successfully")
}

// Upload bulk-inserts a JSON array of academic papers with per-row errors.
// POST /api/academic-papers/upload
func (controller *PapersController) Upload(c *gin.Context) {
	var payloads []map[string]any
	if err := c.ShouldBindJSON(&payloads); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	inserted := 0
	var rowErrors []string
	for i, payload := range payloads {
		if errs := validation.CreateAcademicPaperSchema.Validate(payload); len(errs) > 0 {
			for _, msg := range errs {
				rowErrors = append(rowErrors, fmt.Sprintf("row %d: %s", i+1, msg))
			}
			continue
		}

		paper := paperFromPayload(payload)
		if err := controller.store.Create(paper); err != nil {
			if errors.Is(err, database.ErrDuplicateKey) {
				rowErrors = append(rowErrors,
					fmt.Sprintf("row %d: check if id of %s already exists", i+1, paper.AcadpID))
				continue
			}
			respondInternalError(c, err, "upload academic papers")
			return
		}
		inserted++
	}

	status := http.StatusCreated
	if inserted == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"msg":    fmt.Sprintf("%d academic papers uploaded", inserted),
		"errors": rowErrors,
	})
}

// Update replaces all mutable fields of an existing academic paper.
// PUT /api/academic-papers/:id
func (controller *PapersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMsg(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := validation.UpdateAcademicPaperSchema.Validate(payload); len(errs) > 0 {
		respondValidationErrors(c, errs)
		return
	}

	paper, err := controller.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "update academic paper")
		return
	}

	updated := paperFromPayload(payload)
	updated.ID = paper.ID
	updated.CreatedAt = paper.CreatedAt

	if err := controller.store.Update(updated); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			respondMsg(c, http.StatusBadRequest,
				fmt.Sprintf("check if id of %s already exists", updated.AcadpID))
			return
		}
		respondInternalError(c, err, "update academic paper")
		return
	}

	respondMsg(c, http.StatusOK, "Academic paper updated successfully")
}

// Delete removes an academic paper row.
// DELETE /api/academic-papers/:id
func (controller *PapersController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := controller.store.Delete(id); err != nil {
		respondInternalError(c, err, "delete academic paper")
		return
	}
	respondMsg(c, http.StatusOK, "Academic paper deleted successfully")
}

func paperFromPayload(payload map[string]any) *entities.AcademicPaper {
	return &entities.AcademicPaper{
		AcadpID:      stringField(payload, "acadp_id"),
		AuthorName:   stringField(payload, "author_name"),
		TitleName:    stringField(payload, "title_name"),
		Status:       stringField(payload, "status"),
		AcademicYear: intField(payload, "academic_year"),
		Course:       stringField(payload, "course"),
		Type:         stringField(payload, "type"),
	}
}
