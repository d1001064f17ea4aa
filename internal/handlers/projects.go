package handlers

import (
	"github.com/denotehq/denote/internal/middleware"
	"github.com/denotehq/denote/internal/services"
	"github.com/denotehq/denote/internal/storage"
	"github.com/denotehq/denote/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProjectHandler handles project routes
type ProjectHandler struct {
	DB    *gorm.DB
	Store storage.FolderStore
}

// ListProjects handles GET /api/projects
// @Summary List projects
// @Description List every project row
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects := services.ListProjects(h.DB, middleware.CallerEmail(c))
	return utils.SuccessResponse(c, projects, fiber.StatusOK)
}

// CreateProject handles POST /api/projects
// @Summary Create a project
// @Description Create a project row plus its matching folder tree
// @Tags Projects
// @Accept json
// @Produce json
// @Param body body object true "Project name"
// @Success 201 {object} models.Project
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}

	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "records.project.validation")
	}

	caller := middleware.CallerEmail(c)

	project, err := services.CreateProject(h.DB, h.Store, caller, body.Name)
	if err != nil {
		return respondError(c, err, "createProject")
	}

	services.LogActivity(h.DB, services.ActivityInput{
		UserEmail:    caller,
		ProjectID:    project.ProjectID,
		ActivityType: services.ActivityCreateProject,
		Details:      "Created project " + project.ProjectName,
	})

	return utils.SuccessResponse(c, project, fiber.StatusCreated)
}
