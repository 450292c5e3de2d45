package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type boardTestEnv struct {
	db      *gorm.DB
	service *BoardService
	user    *models.User
	project *models.Project
}

func setupBoardTestEnv(t *testing.T) boardTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Column{},
		&models.Content{},
		&models.Attachment{},
	)
	require.NoError(t, err)

	user := &models.User{
		Username:     "board-user",
		Email:        "board@example.com",
		DisplayName:  "Board User",
		PasswordHash: "hashed",
		Role:         models.RoleProducer,
	}
	require.NoError(t, db.Create(user).Error)

	projectRepo := repository.NewProjectRepository(db)
	project := &models.Project{Name: "Board Project", CreatedBy: user.ID}
	require.NoError(t, projectRepo.Create(project))

	service := NewBoardService(repository.NewBoardRepository(db), projectRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return boardTestEnv{
		db:      db,
		service: service,
		user:    user,
		project: project,
	}
}

func (env boardTestEnv) createColumn(t *testing.T, name string) *models.Column {
	t.Helper()
	column, err := env.service.CreateColumn(CreateColumnInput{
		ProjectID: env.project.ID,
		Name:      name,
	})
	require.NoError(t, err)
	return column
}

func (env boardTestEnv) createContent(t *testing.T, columnID uint64, title string) *models.Content {
	t.Helper()
	content, err := env.service.CreateContent(&models.Content{
		ColumnID:  columnID,
		ProjectID: env.project.ID,
		Title:     title,
		CreatedBy: env.user.ID,
	})
	require.NoError(t, err)
	return content
}

// columnPositions returns the card positions of a column ordered by
// position.
func columnPositions(t *testing.T, db *gorm.DB, columnID uint64) []int {
	t.Helper()
	var contents []models.Content
	require.NoError(t, db.Where("column_id = ?", columnID).Order("position").Find(&contents).Error)
	positions := make([]int, len(contents))
	for i, content := range contents {
		positions[i] = content.Position
	}
	return positions
}

func TestBoardService_CreateColumnAppends(t *testing.T) {
	env := setupBoardTestEnv(t)

	first := env.createColumn(t, "Todo")
	second := env.createColumn(t, "Doing")
	third := env.createColumn(t, "Done")

	require.Equal(t, 0, first.Position)
	require.Equal(t, 1, second.Position)
	require.Equal(t, 2, third.Position)
}

func TestBoardService_CreateContentAppends(t *testing.T) {
	env := setupBoardTestEnv(t)

	column := env.createColumn(t, "Todo")

	first := env.createContent(t, column.ID, "First")
	second := env.createContent(t, column.ID, "Second")

	require.Equal(t, 0, first.Position)
	require.Equal(t, 1, second.Position)
}

func TestBoardService_MoveContentWithinColumn(t *testing.T) {
	env := setupBoardTestEnv(t)

	column := env.createColumn(t, "Todo")
	a := env.createContent(t, column.ID, "A")
	b := env.createContent(t, column.ID, "B")
	c := env.createContent(t, column.ID, "C")

	moved, err := env.service.MoveContent(c.ID, column.ID, 0)
	require.NoError(t, err)
	require.Equal(t, 0, moved.Position)

	require.Equal(t, []int{0, 1, 2}, columnPositions(t, env.db, column.ID))

	var reloadedA, reloadedB models.Content
	require.NoError(t, env.db.First(&reloadedA, a.ID).Error)
	require.NoError(t, env.db.First(&reloadedB, b.ID).Error)
	require.Equal(t, 1, reloadedA.Position)
	require.Equal(t, 2, reloadedB.Position)
}

func TestBoardService_MoveContentAcrossColumns(t *testing.T) {
	env := setupBoardTestEnv(t)

	source := env.createColumn(t, "Todo")
	dest := env.createColumn(t, "Doing")

	a := env.createContent(t, source.ID, "A")
	b := env.createContent(t, source.ID, "B")
	c := env.createContent(t, source.ID, "C")
	x := env.createContent(t, dest.ID, "X")

	moved, err := env.service.MoveContent(b.ID, dest.ID, 0)
	require.NoError(t, err)
	require.Equal(t, dest.ID, moved.ColumnID)
	require.Equal(t, 0, moved.Position)

	// Both columns stay contiguous from zero.
	require.Equal(t, []int{0, 1}, columnPositions(t, env.db, source.ID))
	require.Equal(t, []int{0, 1}, columnPositions(t, env.db, dest.ID))

	var reloadedA, reloadedC, reloadedX models.Content
	require.NoError(t, env.db.First(&reloadedA, a.ID).Error)
	require.NoError(t, env.db.First(&reloadedC, c.ID).Error)
	require.NoError(t, env.db.First(&reloadedX, x.ID).Error)
	require.Equal(t, 0, reloadedA.Position)
	require.Equal(t, 1, reloadedC.Position)
	require.Equal(t, 1, reloadedX.Position)
}

func TestBoardService_MoveContentClampsPosition(t *testing.T) {
	env := setupBoardTestEnv(t)

	source := env.createColumn(t, "Todo")
	dest := env.createColumn(t, "Doing")

	a := env.createContent(t, source.ID, "A")
	env.createContent(t, dest.ID, "X")

	// A position past the end lands at the end.
	moved, err := env.service.MoveContent(a.ID, dest.ID, 99)
	require.NoError(t, err)
	require.Equal(t, 1, moved.Position)
}

func TestBoardService_MoveContentRejectsForeignColumn(t *testing.T) {
	env := setupBoardTestEnv(t)

	column := env.createColumn(t, "Todo")
	content := env.createContent(t, column.ID, "A")

	other := &models.Project{Name: "Other", CreatedBy: env.user.ID}
	require.NoError(t, env.db.Create(other).Error)
	foreign := &models.Column{ProjectID: other.ID, Name: "Elsewhere"}
	require.NoError(t, env.db.Create(foreign).Error)

	_, err := env.service.MoveContent(content.ID, foreign.ID, 0)
	require.ErrorIs(t, err, ErrColumnProjectMix)
}

func TestBoardService_DeleteContentCompactsPositions(t *testing.T) {
	env := setupBoardTestEnv(t)

	column := env.createColumn(t, "Todo")
	env.createContent(t, column.ID, "A")
	b := env.createContent(t, column.ID, "B")
	env.createContent(t, column.ID, "C")

	require.NoError(t, env.service.DeleteContent(b.ID))

	require.Equal(t, []int{0, 1}, columnPositions(t, env.db, column.ID))
}

func TestBoardService_CreateContentValidation(t *testing.T) {
	env := setupBoardTestEnv(t)

	column := env.createColumn(t, "Todo")

	_, err := env.service.CreateContent(&models.Content{
		ColumnID:  column.ID,
		ProjectID: env.project.ID,
		Title:     "Overdone",
		Progress:  101,
		CreatedBy: env.user.ID,
	})
	require.ErrorIs(t, err, ErrInvalidProgress)

	outsiderID := uint64(999)
	_, err = env.service.CreateContent(&models.Content{
		ColumnID:   column.ID,
		ProjectID:  env.project.ID,
		Title:      "Unassignable",
		AssignedTo: &outsiderID,
		CreatedBy:  env.user.ID,
	})
	require.ErrorIs(t, err, ErrInvalidAssignee)
}

func TestBoardService_DeleteAttachmentScopedToCard(t *testing.T) {
	env := setupBoardTestEnv(t)

	column := env.createColumn(t, "Todo")
	card := env.createContent(t, column.ID, "Card")
	other := env.createContent(t, column.ID, "Other")

	attachment, err := env.service.AddAttachment(&models.Attachment{
		ContentID: card.ID,
		Name:      "storyboard.pdf",
		URL:       "/storage/storyboard",
		CreatedBy: env.user.ID,
	})
	require.NoError(t, err)

	// Deleting through a different card must fail and keep the row.
	err = env.service.DeleteAttachment(other.ID, attachment.ID)
	require.ErrorIs(t, err, ErrAttachmentNotFound)

	var count int64
	env.db.Model(&models.Attachment{}).Count(&count)
	require.Equal(t, int64(1), count)

	require.ErrorIs(t, env.service.DeleteAttachment(card.ID, 999), ErrAttachmentNotFound)

	require.NoError(t, env.service.DeleteAttachment(card.ID, attachment.ID))
	env.db.Model(&models.Attachment{}).Count(&count)
	require.Equal(t, int64(0), count)
}
