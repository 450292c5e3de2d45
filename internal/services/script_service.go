package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrScriptNotFound      = errors.New("script not found")
	ErrCorrelationNotFound = errors.New("correlation not found")
	ErrSelectionNotFound   = errors.New("selected text not found in script")
	ErrSelectionEmpty      = errors.New("selected text is required")
)

// ScriptService handles per-project script content and shot correlation.
type ScriptService struct {
	scriptRepo repository.ScriptRepository
}

// NewScriptService creates a new ScriptService.
func NewScriptService(scriptRepo repository.ScriptRepository) *ScriptService {
	return &ScriptService{
		scriptRepo: scriptRepo,
	}
}

// GetScript returns the project's script with its correlations. A project
// without a script yet gets an empty one.
func (s *ScriptService) GetScript(projectID uint64) (*models.ScriptData, error) {
	script, err := s.scriptRepo.FindByProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.ScriptData{ProjectID: projectID}, nil
		}
		return nil, fmt.Errorf("failed to find script: %w", err)
	}
	return script, nil
}

// SaveScript creates or replaces the project's script content.
func (s *ScriptService) SaveScript(projectID, actorID uint64, htmlContent string) (*models.ScriptData, error) {
	script := &models.ScriptData{
		ProjectID:   projectID,
		HTMLContent: htmlContent,
		UpdatedBy:   actorID,
	}
	if err := s.scriptRepo.Upsert(script); err != nil {
		return nil, fmt.Errorf("failed to save script: %w", err)
	}
	return script, nil
}

// Correlate associates the selected text with a shot number by wrapping
// its first occurrence in the stored HTML with an annotated span.
//
// The match is position-agnostic substring replacement: when the same
// text appears more than once, the earliest occurrence is annotated, not
// necessarily the one the user selected.
func (s *ScriptService) Correlate(projectID, actorID uint64, shotID int, selection string) (*models.ScriptData, error) {
	if strings.TrimSpace(selection) == "" {
		return nil, ErrSelectionEmpty
	}

	script, err := s.scriptRepo.FindByProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScriptNotFound
		}
		return nil, fmt.Errorf("failed to find script: %w", err)
	}

	if !strings.Contains(script.HTMLContent, selection) {
		return nil, ErrSelectionNotFound
	}

	wrapped := fmt.Sprintf(`<span class="shot-ref" data-shot="%d">%s</span>`, shotID, selection)
	script.HTMLContent = strings.Replace(script.HTMLContent, selection, wrapped, 1)
	script.UpdatedBy = actorID

	if err := s.scriptRepo.Update(script); err != nil {
		return nil, fmt.Errorf("failed to update script: %w", err)
	}

	correlation := &models.ScriptCorrelation{
		ScriptID:  script.ID,
		ShotID:    shotID,
		Text:      selection,
		CreatedBy: actorID,
	}
	if err := s.scriptRepo.AddCorrelation(correlation); err != nil {
		return nil, fmt.Errorf("failed to add correlation: %w", err)
	}

	return s.scriptRepo.FindByProject(projectID)
}

// RemoveCorrelation deletes a stored correlation. The span annotation in
// the HTML is left in place; the client strips it on its next save.
func (s *ScriptService) RemoveCorrelation(projectID, correlationID uint64) error {
	script, err := s.scriptRepo.FindByProject(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScriptNotFound
		}
		return fmt.Errorf("failed to find script: %w", err)
	}

	found := false
	for _, c := range script.Correlations {
		if c.ID == correlationID {
			found = true
			break
		}
	}
	if !found {
		return ErrCorrelationNotFound
	}

	if err := s.scriptRepo.DeleteCorrelation(correlationID); err != nil {
		return fmt.Errorf("failed to delete correlation: %w", err)
	}
	return nil
}
