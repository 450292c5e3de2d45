package repository

import (
	"time"

	"github.com/crewdeck/crewdeck-api/internal/models"
	"github.com/crewdeck/crewdeck-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// List returns a page of users ordered by display name, with the
	// total user count
	List(params utils.PaginationParams) ([]models.User, int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create creates a project and its creator membership atomically
	Create(project *models.Project) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListForUser lists projects the user is a member of
	ListForUser(userID uint64) ([]models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete removes a project and all dependent rows in one transaction
	Delete(id uint64) error

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(projectID, userID uint64) error

	// FindMember finds a specific project member
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembers lists all members of a project with their users
	ListMembers(projectID uint64) ([]models.ProjectMember, error)
}

// BoardRepository defines the interface for Kanban board data access:
// columns, content cards, and card attachments.
type BoardRepository interface {
	// CreateColumn appends a column at the end of the project's board
	CreateColumn(column *models.Column) error

	// FindColumn finds a column by ID
	FindColumn(id uint64) (*models.Column, error)

	// ListColumns lists a project's columns in board order, each with its
	// contents and their assignees
	ListColumns(projectID uint64) ([]models.Column, error)

	// UpdateColumn updates a column
	UpdateColumn(column *models.Column) error

	// DeleteColumn removes a column, its cards and their attachments, and
	// compacts the remaining column positions
	DeleteColumn(id uint64) error

	// CreateContent appends a card at the end of its column
	CreateContent(content *models.Content) error

	// FindContent finds a card by ID with optional preloading
	FindContent(id uint64, preload ...string) (*models.Content, error)

	// UpdateContent updates a card
	UpdateContent(content *models.Content) error

	// DeleteContent removes a card and its attachments and compacts the
	// column's card positions
	DeleteContent(id uint64) error

	// MoveContent moves a card to a slot in a (possibly different) column,
	// re-indexing both source and destination inside one transaction
	MoveContent(id, toColumnID uint64, toPosition int) error

	// CreateAttachment creates a card attachment
	CreateAttachment(attachment *models.Attachment) error

	// FindAttachment finds an attachment by ID
	FindAttachment(id uint64) (*models.Attachment, error)

	// ListAttachments lists a card's attachments
	ListAttachments(contentID uint64) ([]models.Attachment, error)

	// DeleteAttachment deletes an attachment
	DeleteAttachment(id uint64) error
}

// LibraryRepository defines the interface for project file storage,
// YouTube video metadata and published finals.
type LibraryRepository interface {
	CreateFolder(folder *models.ProjectFolder) error
	FindFolder(id uint64) (*models.ProjectFolder, error)
	ListFolders(projectID uint64) ([]models.ProjectFolder, error)
	DeleteFolder(id uint64) error

	CreateFile(file *models.ProjectFile) error
	FindFile(id uint64) (*models.ProjectFile, error)
	ListFiles(projectID uint64, folderID *uint64) ([]models.ProjectFile, error)
	DeleteFile(id uint64) error

	CreateVideo(video *models.YoutubeVideo) error
	FindVideo(id uint64) (*models.YoutubeVideo, error)
	ListVideos(projectID uint64) ([]models.YoutubeVideo, error)
	DeleteVideo(id uint64) error

	CreateFinal(final *models.PublishedFinal) error
	FindFinal(id uint64) (*models.PublishedFinal, error)
	ListFinals(projectID uint64) ([]models.PublishedFinal, error)
	DeleteFinal(id uint64) error
}

// ScriptRepository defines the interface for per-project script data
type ScriptRepository interface {
	// FindByProject returns the project's script with its correlations
	FindByProject(projectID uint64) (*models.ScriptData, error)

	// Upsert creates or replaces the script content for a project
	Upsert(script *models.ScriptData) error

	// Update saves script content changes
	Update(script *models.ScriptData) error

	// AddCorrelation stores a shot correlation
	AddCorrelation(correlation *models.ScriptCorrelation) error

	// DeleteCorrelation removes a shot correlation
	DeleteCorrelation(id uint64) error
}

// ScheduleRepository defines the interface for calendar events
type ScheduleRepository interface {
	Create(event *models.ScheduleEvent) error
	FindByID(id uint64) (*models.ScheduleEvent, error)
	ListByProject(projectID uint64, from, to *time.Time) ([]models.ScheduleEvent, error)
	ListForUser(userID uint64, from, to *time.Time) ([]models.ScheduleEvent, error)
	Update(event *models.ScheduleEvent) error
	Delete(id uint64) error
}

// ChatRepository defines the interface for chat channels, memberships
// and messages.
type ChatRepository interface {
	// CreateChannel creates a channel and its creator membership atomically
	CreateChannel(channel *models.ChatChannel) error

	// FindChannel finds a channel by ID
	FindChannel(id uint64) (*models.ChatChannel, error)

	// ListChannelsForUser lists channels the user is a member of
	ListChannelsForUser(userID uint64) ([]models.ChatChannel, error)

	// DeleteChannel removes a channel, its members and messages atomically
	DeleteChannel(id uint64) error

	// FindDirectChannel finds the DM channel shared by exactly two users
	FindDirectChannel(userA, userB uint64) (*models.ChatChannel, error)

	// AddMember adds a member to a channel
	AddMember(member *models.ChatChannelMember) error

	// RemoveMember removes a member from a channel
	RemoveMember(channelID, userID uint64) error

	// FindMember finds a specific channel member
	FindMember(channelID, userID uint64) (*models.ChatChannelMember, error)

	// ListMembers lists channel members with their users
	ListMembers(channelID uint64) ([]models.ChatChannelMember, error)

	// ListMemberIDs lists the user IDs of a channel's members
	ListMemberIDs(channelID uint64) ([]uint64, error)

	// CreateMessage persists a message and reloads it with its sender
	CreateMessage(message *models.ChatMessage) error

	// ListMessages returns a channel's messages in chronological order.
	// A limit of zero returns the full history.
	ListMessages(channelID uint64, limit int) ([]models.ChatMessage, error)
}
