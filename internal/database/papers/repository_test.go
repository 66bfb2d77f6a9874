package papers

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"librarysystem/internal/database"
	"librarysystem/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_papers_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AcademicPaper{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func newPaper(acadpID, title string, year int) *entities.AcademicPaper {
	return &entities.AcademicPaper{
		AcadpID:      acadpID,
		AuthorName:   "Dela Cruz",
		TitleName:    title,
		Status:       string(entities.ItemStatusAvailable),
		AcademicYear: year,
		Course:       "BSCS",
		Type:         string(entities.PaperTypeThesis),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	paper := newPaper("AP-001", "Traffic Prediction", 2023)
	err := repo.Create(paper)

	require.NoError(t, err)
	assert.NotZero(t, paper.ID)
}

func TestRepository_Create_DuplicateAcadpID(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newPaper("AP-001", "Traffic Prediction", 2023)))

	err := repo.Create(newPaper("AP-001", "Another Study", 2024))
	assert.ErrorIs(t, err, database.ErrDuplicateKey)
}

func TestRepository_List_Search(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newPaper("AP-001", "Traffic Prediction", 2023)))
	require.NoError(t, repo.Create(newPaper("AP-002", "Crop Monitoring", 2024)))

	rows, total, err := repo.List(database.ListOptions{Search: "traffic"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "AP-001", rows[0].AcadpID)
}

func TestRepository_List_SortByAcademicYear(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(newPaper("AP-001", "Older", 2021)))
	require.NoError(t, repo.Create(newPaper("AP-002", "Newer", 2024)))

	rows, _, err := repo.List(database.ListOptions{SortBy: "academic_year", Order: "DESC"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2024, rows[0].AcademicYear)
}

func TestRepository_List_KeyFilter(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	capstone := newPaper("AP-001", "Traffic Prediction", 2023)
	capstone.Type = string(entities.PaperTypeCapstone)
	require.NoError(t, repo.Create(capstone))
	require.NoError(t, repo.Create(newPaper("AP-002", "Crop Monitoring", 2024)))

	rows, total, err := repo.List(database.ListOptions{SearchKey: "type", SearchValue: "capstone"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "AP-001", rows[0].AcadpID)
}

func TestRepository_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	paper := newPaper("AP-001", "Traffic Prediction", 2023)
	require.NoError(t, repo.Create(paper))

	paper.Status = string(entities.ItemStatusArchived)
	require.NoError(t, repo.Update(paper))

	found, err := repo.GetByID(paper.ID)
	require.NoError(t, err)
	assert.Equal(t, "archived", found.Status)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	paper := newPaper("AP-001", "Traffic Prediction", 2023)
	require.NoError(t, repo.Create(paper))

	require.NoError(t, repo.Delete(paper.ID))

	exists, err := repo.ExistsByID(paper.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
