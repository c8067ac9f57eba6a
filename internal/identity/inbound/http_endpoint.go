package inbound

import (
	"github.com/drivelaw/backend/internal/identity/usecase"
	"github.com/drivelaw/backend/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for authentication, onboarding, and
// driver administration workflows.
type HTTPEndpoint struct {
	uc      uc
	cookies cookieSettings
}

// SendOTP issues a one-time verification code to an email or phone contact.
// @Summary Send verification code
// @Description Sends a one-time code to the provided email address or phone number. Unknown contacts get a new driver account.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body SendOTPRequest true "Send code payload"
// @Success 200 {object} router.successResponse{data=SendOTPResponse} "Delivery result"
// @Failure 400 {object} router.errorResponse "Invalid contact"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 403 {object} router.errorResponse "Contact locked out"
// @Failure 500 {object} router.errorResponse "Delivery failed or internal error"
// @Router /api/v1/auth/send-otp [post]
func (h *HTTPEndpoint) SendOTP(r *router.Request) (any, error) {
	var req SendOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.SendOTP(r.Context(), usecase.SendOTPInput{Contact: req.Contact})
	if err != nil {
		return nil, err
	}

	return SendOTPResponse{
		Contact:          resp.Contact,
		Channel:          resp.Channel.String(),
		ExpiresInSeconds: int64(resp.ExpiresIn.Seconds()),
	}, nil
}

// VerifyOTP exchanges a valid code for a session token.
// @Summary Verify code
// @Description Checks the submitted code, activates the account, and issues a session token as both payload and HTTP-only cookie.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verify code payload"
// @Success 200 {object} router.successResponse{data=VerifyOTPResponse} "Session issued"
// @Failure 400 {object} router.errorResponse "Invalid or expired code"
// @Failure 404 {object} router.errorResponse "No pending verification"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 403 {object} router.errorResponse "Contact locked out"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/verify-otp [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{
		Contact:  req.Contact,
		Code:     req.Code,
		Remember: req.Remember,
	})
	if err != nil {
		return nil, err
	}

	return VerifyOTPResponse{
		Token:      resp.Token,
		ExpiresAt:  resp.ExpiresAt,
		UserID:     resp.UserID,
		Role:       resp.Role.String(),
		Onboarding: resp.Onboarding,
		cookies:    h.cookies,
	}, nil
}

// Me returns the authenticated user's profile.
// @Summary Current session user
// @Description Returns the profile and onboarding state for the session's user.
// @Tags Identity, Authentication
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=MeResponse} "Current user"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	resp, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return MeResponse{
		ID:            resp.ID,
		FullName:      resp.FullName,
		Email:         resp.Email,
		Phone:         resp.Phone,
		Role:          resp.Role.String(),
		Status:        resp.Status.String(),
		LicenseNumber: resp.LicenseNumber,
		Region:        resp.Region,
		DrivingScore:  resp.DrivingScore,
		Onboarding:    resp.Onboarding,
	}, nil
}

// Logout ends the session and clears the session cookie.
// @Summary Logout
// @Description Clears the session cookie. Tokens already issued simply age out.
// @Tags Identity, Authentication
// @Produce json
// @Success 200 {object} router.successResponse "Logged out"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context()); err != nil {
		return nil, err
	}

	return LogoutResponse{cookies: h.cookies}, nil
}

// Onboarding completes first-login profile setup.
// @Summary Complete onboarding
// @Description Records the driver's name, license number, and region, then refreshes the session token.
// @Tags Identity, Authentication
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body OnboardingRequest true "Onboarding payload"
// @Success 200 {object} router.successResponse{data=OnboardingResponse} "Onboarding completed"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 409 {object} router.errorResponse "Onboarding already completed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/auth/onboarding [post]
func (h *HTTPEndpoint) Onboarding(r *router.Request) (any, error) {
	var req OnboardingRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Onboarding(r.Context(), usecase.OnboardingInput{
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		Region:        req.Region,
	})
	if err != nil {
		return nil, err
	}

	return OnboardingResponse{
		Token:     resp.Token,
		ExpiresAt: resp.ExpiresAt,
		cookies:   h.cookies,
	}, nil
}

// DriverList returns the driver directory with optional filters.
// @Summary List drivers
// @Description Returns a paginated driver list with optional search and status filters.
// @Tags Identity, Management Drivers
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name, contact, or license number"
// @Param status query string false "Filter by status (unverified|active|suspended|inactive)"
// @Param page query int false "Pagination page"
// @Param limit query int false "Pagination limit"
// @Success 200 {object} router.successResponse{data=DriversResponse} "Driver list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/drivers [get]
func (h *HTTPEndpoint) DriverList(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.DriverList(r.Context(), usecase.DriverListInput{
		Search: r.GetQuery("search"),
		Status: r.GetQuery("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	drivers := make([]DriverResponse, 0, len(resp.Drivers))
	for _, item := range resp.Drivers {
		drivers = append(drivers, DriverResponse{
			ID:              item.ID,
			FullName:        item.FullName,
			Email:           item.Email,
			Phone:           item.Phone,
			Status:          item.Status.String(),
			LicenseNumber:   item.LicenseNumber,
			LicenseVerified: item.LicenseVerified,
			Region:          item.Region,
			DrivingScore:    item.DrivingScore,
			CreatedAt:       item.CreatedAt,
			UpdatedAt:       item.UpdatedAt,
		})
	}

	return DriversResponse{
		Drivers: drivers,
		total:   resp.Total,
		limit:   resp.Limit,
		page:    resp.Page,
	}, nil
}

// @Summary Get driver detail
// @Description Returns one driver's record, including soft-deleted drivers.
// @Tags Identity, Management Drivers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Driver ID"
// @Success 200 {object} router.successResponse{data=DriverDetailResponse} "Driver detail"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Driver not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/drivers/{id} [get]
func (h *HTTPEndpoint) DriverDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.DriverDetail(r.Context(), usecase.DriverDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return DriverDetailResponse{Driver: DriverResponse{
		ID:              resp.Driver.ID,
		FullName:        resp.Driver.FullName,
		Email:           resp.Driver.Email,
		Phone:           resp.Driver.Phone,
		Status:          resp.Driver.Status.String(),
		LicenseNumber:   resp.Driver.LicenseNumber,
		LicenseVerified: resp.Driver.LicenseVerified,
		Region:          resp.Driver.Region,
		DrivingScore:    resp.Driver.DrivingScore,
		CreatedAt:       resp.Driver.CreatedAt,
		UpdatedAt:       resp.Driver.UpdatedAt,
		DeletedAt:       resp.Driver.DeletedAt,
	}}, nil
}

// @Summary Update driver
// @Description Patches a driver's profile and status.
// @Tags Identity, Management Drivers
// @Security BearerAuth
// @Accept json
// @Param id path int true "Driver ID"
// @Param request body DriverUpdateRequest true "Driver update payload"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Driver not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/drivers/{id} [put]
func (h *HTTPEndpoint) DriverUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req DriverUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.DriverUpdate(r.Context(), usecase.DriverUpdateInput{
		ID:            id,
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		Region:        req.Region,
		Language:      req.Language,
		Status:        req.Status,
	})
}

// @Summary Delete driver
// @Description Soft deletes a driver by ID.
// @Tags Identity, Management Drivers
// @Security BearerAuth
// @Param id path int true "Driver ID"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Driver not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/drivers/{id} [delete]
func (h *HTTPEndpoint) DriverDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.DriverDelete(r.Context(), usecase.DriverDeleteInput{ID: id})
}

// LicenseAction applies an administrative action to a driver's license.
// @Summary Apply license action
// @Description Suspends, reinstates, verifies, or activates a driver's license standing.
// @Tags Identity, Management Drivers
// @Security BearerAuth
// @Accept json
// @Param id path int true "Driver ID"
// @Param request body LicenseActionRequest true "License action payload"
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Driver not found or not eligible"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/drivers/{id}/license [post]
func (h *HTTPEndpoint) LicenseAction(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req LicenseActionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.LicenseAction(r.Context(), usecase.LicenseActionInput{
		ID:     id,
		Action: req.Action,
	})
}
