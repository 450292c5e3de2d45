package dto

import (
	"time"

	"github.com/crewdeck/crewdeck-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedBy   uint64    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	Creator     *UserDTO  `json:"creator,omitempty"`
	Members     []UserDTO `json:"members,omitempty"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Type:        project.Type,
		CreatedBy:   project.CreatedBy,
		CreatedAt:   project.CreatedAt,
	}

	// Include creator if preloaded
	if project.Creator.ID != 0 {
		creator := ToUserDTO(project.Creator)
		dto.Creator = &creator
	}

	// Include members if preloaded
	if len(project.Members) > 0 {
		dto.Members = make([]UserDTO, len(project.Members))
		for i, member := range project.Members {
			dto.Members[i] = ToUserDTO(member.User)
		}
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}
