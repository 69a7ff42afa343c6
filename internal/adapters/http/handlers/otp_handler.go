package handlers

import (
	"errors"
	"strings"

	"wealthdesk/internal/core/services"
	"wealthdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OTPHandler handles OTP request and verification endpoints
type OTPHandler struct {
	otpService *services.OTPService
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(otpService *services.OTPService) *OTPHandler {
	return &OTPHandler{otpService: otpService}
}

// RequestOTPRequest represents an OTP request body
type RequestOTPRequest struct {
	Target  string `json:"target"`
	Channel string `json:"channel"`
}

// VerifyOTPRequest represents an OTP verification body
type VerifyOTPRequest struct {
	Target string `json:"target"`
	Code   string `json:"code"`
}

// Request sends a one-time password to the given target
// @Summary Request OTP
// @Description Generate and dispatch a 6-digit OTP over email or SMS
// @Tags OTP
// @Accept json
// @Produce json
// @Param body body RequestOTPRequest true "OTP target"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /otp/request [post]
func (h *OTPHandler) Request(c *fiber.Ctx) error {
	var req RequestOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Target = strings.TrimSpace(req.Target)
	if req.Target == "" {
		return response.BadRequest(c, "target is required")
	}
	if req.Channel != "email" && req.Channel != "sms" {
		return response.BadRequest(c, "channel must be email or sms")
	}

	if err := h.otpService.Request(c.Context(), req.Target, req.Target, req.Channel); err != nil {
		if errors.Is(err, services.ErrOTPTooFrequent) {
			return response.Error(c, fiber.StatusTooManyRequests, err.Error())
		}
		return response.InternalServerError(c, "Failed to send OTP")
	}

	return response.Success(c, "OTP sent successfully", nil)
}

// Verify checks a submitted one-time password
// @Summary Verify OTP
// @Description Verify a previously requested OTP
// @Tags OTP
// @Accept json
// @Produce json
// @Param body body VerifyOTPRequest true "OTP code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /otp/verify [post]
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Target = strings.TrimSpace(req.Target)
	if req.Target == "" || req.Code == "" {
		return response.BadRequest(c, "target and code are required")
	}

	if err := h.otpService.Verify(c.Context(), req.Target, req.Code); err != nil {
		switch {
		case errors.Is(err, services.ErrOTPNotFound),
			errors.Is(err, services.ErrOTPExpired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrOTPMismatch),
			errors.Is(err, services.ErrOTPMaxAttempts):
			return response.Unauthorized(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to verify OTP")
		}
	}

	return response.Success(c, "OTP verified successfully", nil)
}
