package services

import (
	"errors"
	"fmt"

	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound   = errors.New("project not found")
	ErrNotProjectMember  = errors.New("user is not a member of the project")
	ErrNotProjectOwner   = errors.New("only the project creator or an admin can perform this action")
	ErrAlreadyMember     = errors.New("user is already a member of the project")
	ErrMemberNotFound    = errors.New("user is not a member of the project")
	ErrCannotRemoveOwner = errors.New("the project creator cannot be removed")
)

// ProjectService handles project business logic.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents input for creating a project.
type CreateProjectInput struct {
	Name        string
	Description string
	Type        string
	CreatorID   uint64
}

// CreateProject creates a project; the creator becomes its first member.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		CreatedBy:   input.CreatorID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "Creator", "Members", "Members.User")
}

// GetProject returns a project with its members.
func (s *ProjectService) GetProject(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Creator", "Members", "Members.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects lists projects the user belongs to.
func (s *ProjectService) ListProjects(userID uint64) ([]models.Project, error) {
	projects, err := s.projectRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpdateProjectInput represents input for updating a project.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Type        *string
}

// UpdateProject updates a project if the actor owns it or is an admin.
func (s *ProjectService) UpdateProject(projectID uint64, actor *models.User, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.findForWrite(projectID, actor)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Type != nil {
		project.Type = *input.Type
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.projectRepo.FindByID(project.ID, "Creator", "Members", "Members.User")
}

// DeleteProject removes a project and everything it owns. Only the
// creator or an admin may delete.
func (s *ProjectService) DeleteProject(projectID uint64, actor *models.User) error {
	if _, err := s.findForWrite(projectID, actor); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// AddMember adds a user to the project.
func (s *ProjectService) AddMember(projectID uint64, actor *models.User, userID uint64) error {
	if _, err := s.findForWrite(projectID, actor); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.projectRepo.FindMember(projectID, userID); err == nil {
		return ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check membership: %w", err)
	}

	member := &models.ProjectMember{ProjectID: projectID, UserID: userID}
	if err := s.projectRepo.AddMember(member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// RemoveMember removes a user from the project. The creator cannot be
// removed.
func (s *ProjectService) RemoveMember(projectID uint64, actor *models.User, userID uint64) error {
	project, err := s.findForWrite(projectID, actor)
	if err != nil {
		return err
	}

	if userID == project.CreatedBy {
		return ErrCannotRemoveOwner
	}

	if _, err := s.projectRepo.FindMember(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to check membership: %w", err)
	}

	if err := s.projectRepo.RemoveMember(projectID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}

// findForWrite loads the project and enforces the owner-or-admin rule.
func (s *ProjectService) findForWrite(projectID uint64, actor *models.User) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if project.CreatedBy != actor.ID && !actor.IsAdmin() {
		return nil, ErrNotProjectOwner
	}

	return project, nil
}
