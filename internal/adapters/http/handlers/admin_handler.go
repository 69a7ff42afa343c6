package handlers

import (
	"errors"

	"wealthdesk/internal/adapters/persistence/repositories"
	"wealthdesk/internal/core/domain"
	"wealthdesk/internal/core/services"
	"wealthdesk/internal/pkg/pagination"
	"wealthdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminHandler handles admin-only endpoints
type AdminHandler struct {
	userRepo       repositories.UserRepository
	profileService *services.ProfileService
	authService    *services.AuthService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userRepo repositories.UserRepository, profileService *services.ProfileService, authService *services.AuthService) *AdminHandler {
	return &AdminHandler{
		userRepo:       userRepo,
		profileService: profileService,
		authService:    authService,
	}
}

// ListInvestors returns a paginated list of investor accounts
// @Summary List investors
// @Description Paginated list of investor accounts
// @Tags Admin
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/investors [get]
func (h *AdminHandler) ListInvestors(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.userRepo.List(c.Context(), string(domain.RoleInvestor), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list investors")
	}

	items := make([]interface{}, 0, len(users))
	for _, u := range users {
		items = append(items, u.ToResponse())
	}

	return response.Success(c, "Investors retrieved successfully", pagination.NewResponse(items, params, total))
}

// ListSubmissions returns a paginated list of investor profiles
// @Summary List submissions
// @Description Paginated list of investor profiles filtered by status
// @Tags Admin
// @Produce json
// @Param status query string false "Profile status (in_progress or submitted)"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	profiles, total, err := h.profileService.List(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list submissions")
	}

	return response.Success(c, "Submissions retrieved successfully", pagination.NewResponse(profiles, params, total))
}

// GetInvestorProfile returns a single investor's saved form data
// @Summary Get investor profile
// @Description One investor's account and saved form aggregate
// @Tags Admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/investors/{id} [get]
func (h *AdminHandler) GetInvestorProfile(c *fiber.Ctx) error {
	userID := c.Params("id")
	if userID == "" {
		return response.BadRequest(c, "id is required")
	}

	user, err := h.authService.GetUserByID(c.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "Investor not found")
		}
		return response.InternalServerError(c, "Failed to load investor")
	}

	var progress *services.Progress
	if p, err := h.profileService.GetProgress(c.Context(), userID); err == nil {
		progress = p
	} else if !errors.Is(err, domain.ErrProfileNotFound) {
		return response.InternalServerError(c, "Failed to load investor profile")
	}

	return response.Success(c, "Investor retrieved successfully", fiber.Map{
		"user":     user.ToResponse(),
		"progress": progress,
	})
}
