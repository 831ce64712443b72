package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rifas-online/rifas-api/internal/api/handler/v1/request"
	"github.com/rifas-online/rifas-api/internal/api/handler/v1/response"
	"github.com/rifas-online/rifas-api/internal/api/middleware"
	"github.com/rifas-online/rifas-api/internal/config"
	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/pkg/jwthelper"
	"github.com/rifas-online/rifas-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Admin, error)
	ChangePassword(ctx context.Context, adminID uint, currentPassword, newPassword string) error
	Setup(ctx context.Context) (domain.Admin, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Authenticate an admin
// @Tags         admin
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	admin, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(service.ErrWrongCredentials))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), admin.ID, admin.Username)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Message: "authentication successful",
		User: response.AdminUser{
			ID:       admin.ID,
			Username: admin.Username,
			Name:     admin.Name,
		},
		Token: token,
	})
}

// HandleVerify godoc
// @Summary      Verify the bearer token
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200      {object}   response.VerifyResponse
// @Failure      401      {object}   response.Err
// @Router       /admin/verify [get]
func (h *AuthHandler) HandleVerify(ctx *gin.Context) {
	adminID := ctx.GetUint(middleware.CtxKeyAdminID)
	username := ctx.GetString(middleware.CtxKeyUsername)

	ctx.JSON(http.StatusOK, response.VerifyResponse{
		Valid: true,
		User: response.AdminUser{
			ID:       adminID,
			Username: username,
		},
	})
}

// HandleChangePassword godoc
// @Summary      Change the authenticated admin's password
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        request   body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/password [put]
func (h *AuthHandler) HandleChangePassword(ctx *gin.Context) {
	var req request.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	adminID := ctx.GetUint(middleware.CtxKeyAdminID)
	if err := h.svc.ChangePassword(ctx.Request.Context(), adminID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(service.ErrWrongCredentials))

			return
		}

		err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "password updated"})
}

// HandleSetup godoc
// @Summary      Create the initial admin account
// @Description  Only allowed while no admin account exists yet.
// @Tags         admin
// @Produce      json
// @Success      201      {object}   response.SetupResponse
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admin/setup [post]
func (h *AuthHandler) HandleSetup(ctx *gin.Context) {
	admin, err := h.svc.Setup(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrAdminExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrAdminExists))

			return
		}

		err = fmt.Errorf("v1.HandleSetup -> h.svc.Setup -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.SetupResponse{
		Message: "admin account created",
		Admin: response.AdminUser{
			ID:       admin.ID,
			Username: admin.Username,
			Name:     admin.Name,
		},
	})
}
