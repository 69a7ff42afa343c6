package handlers

import (
	"errors"

	"wealthdesk/internal/core/domain"
	"wealthdesk/internal/core/services"
	"wealthdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// InvestorHandler handles the investor form-wizard endpoints
type InvestorHandler struct {
	profileService *services.ProfileService
	wizardService  *services.WizardService
}

// NewInvestorHandler creates a new investor handler
func NewInvestorHandler(profileService *services.ProfileService, wizardService *services.WizardService) *InvestorHandler {
	return &InvestorHandler{
		profileService: profileService,
		wizardService:  wizardService,
	}
}

// SaveProgressRequest represents a checkpoint request body
type SaveProgressRequest struct {
	UserID       string                `json:"userId"`
	InvestorData *domain.FormAggregate `json:"investorData"`
	CurrentStep  int                   `json:"currentStep"`
}

// SaveDetailsRequest represents a final submission body
type SaveDetailsRequest struct {
	UserID       string                `json:"userId"`
	InvestorData *domain.FormAggregate `json:"investorData"`
}

// ValidateStepRequest represents a step validation body
type ValidateStepRequest struct {
	Step         int                   `json:"step"`
	InvestorData *domain.FormAggregate `json:"investorData"`
}

// TotalsRequest carries an aggregate for derived-total computation
type TotalsRequest struct {
	InvestorData *domain.FormAggregate `json:"investorData"`
}

// GetProgress returns a user's stored form aggregate
// @Summary Get saved progress
// @Description Load the checkpointed form aggregate for a user
// @Tags Investor
// @Produce json
// @Param userId query string true "User ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /investor/get-progress [get]
func (h *InvestorHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Query("userId")
	if userID == "" {
		return response.BadRequest(c, "userId is required")
	}
	if err := h.authorizeSubject(c, userID); err != nil {
		return err
	}

	progress, err := h.profileService.GetProgress(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return response.NotFound(c, "No saved progress found")
		}
		return response.InternalServerError(c, "Failed to load progress")
	}

	return response.Success(c, "Progress retrieved successfully", progress)
}

// SaveProgress checkpoints a user's form aggregate
// @Summary Save progress
// @Description Checkpoint the form aggregate with its current step
// @Tags Investor
// @Accept json
// @Produce json
// @Param body body SaveProgressRequest true "Checkpoint data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /investor/save-progress [post]
func (h *InvestorHandler) SaveProgress(c *fiber.Ctx) error {
	var req SaveProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserID == "" {
		return response.BadRequest(c, "userId is required")
	}
	if req.InvestorData == nil {
		return response.BadRequest(c, "investorData is required")
	}
	if err := h.authorizeSubject(c, req.UserID); err != nil {
		return err
	}

	err := h.profileService.Checkpoint(c.Context(), req.UserID, req.InvestorData, req.CurrentStep)
	if err != nil {
		if errors.Is(err, domain.ErrStepOutOfRange) {
			return response.BadRequest(c, "currentStep must be between 1 and 6")
		}
		return response.InternalServerError(c, "Failed to save progress")
	}

	return response.Success(c, "Progress saved successfully", fiber.Map{
		"currentStep": req.CurrentStep,
	})
}

// SaveDetails finalizes a user's submission. Every input step must pass
// validation before the profile is marked submitted.
// @Summary Submit profile
// @Description Final submission of the form aggregate
// @Tags Investor
// @Accept json
// @Produce json
// @Param body body SaveDetailsRequest true "Final submission data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /investor/save-details [post]
func (h *InvestorHandler) SaveDetails(c *fiber.Ctx) error {
	var req SaveDetailsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserID == "" {
		return response.BadRequest(c, "userId is required")
	}
	if req.InvestorData == nil {
		return response.BadRequest(c, "investorData is required")
	}
	if err := h.authorizeSubject(c, req.UserID); err != nil {
		return err
	}

	for step := domain.MinStep; step <= domain.MaxStep; step++ {
		result, err := h.wizardService.ValidateStep(step, req.InvestorData)
		if err != nil {
			return response.InternalServerError(c, "Failed to validate submission")
		}
		if !result.Valid {
			return response.UnprocessableEntity(c, "Submission has validation errors", result.FieldErrors)
		}
	}

	if err := h.profileService.Finalize(c.Context(), req.UserID, req.InvestorData); err != nil {
		return response.InternalServerError(c, "Failed to save details")
	}

	return response.Success(c, "Profile submitted successfully", nil)
}

// ValidateStep validates one wizard step of a submitted aggregate
// @Summary Validate one step
// @Description Validate only the sections belonging to the given step
// @Tags Investor
// @Accept json
// @Produce json
// @Param body body ValidateStepRequest true "Step and data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /investor/validate-step [post]
func (h *InvestorHandler) ValidateStep(c *fiber.Ctx) error {
	var req ValidateStepRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.InvestorData == nil {
		return response.BadRequest(c, "investorData is required")
	}

	result, err := h.wizardService.ValidateStep(req.Step, req.InvestorData)
	if err != nil {
		if errors.Is(err, domain.ErrStepOutOfRange) {
			return response.BadRequest(c, "step must be between 1 and 6")
		}
		return response.InternalServerError(c, "Failed to validate step")
	}

	return response.Success(c, "Step validated", result)
}

// Totals computes the derived totals for a submitted aggregate
// @Summary Compute derived totals
// @Description Income, expense and allocation totals for the aggregate
// @Tags Investor
// @Accept json
// @Produce json
// @Param body body TotalsRequest true "Aggregate data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /investor/totals [post]
func (h *InvestorHandler) Totals(c *fiber.Ctx) error {
	var req TotalsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.InvestorData == nil {
		return response.BadRequest(c, "investorData is required")
	}

	return response.Success(c, "Totals computed", services.ComputeTotals(req.InvestorData))
}

// authorizeSubject ensures an investor only touches their own record.
// Admins may access any record.
func (h *InvestorHandler) authorizeSubject(c *fiber.Ctx, userID string) error {
	role, _ := c.Locals("role").(string)
	if role == string(domain.RoleAdmin) {
		return nil
	}
	subject, _ := c.Locals("userID").(string)
	if subject != userID {
		return response.Forbidden(c, "You don't have permission to access this resource")
	}
	return nil
}
