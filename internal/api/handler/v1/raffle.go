package v1

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rifas-online/rifas-api/internal/api/handler/v1/request"
	"github.com/rifas-online/rifas-api/internal/api/handler/v1/response"
	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/service"
)

type RaffleService interface {
	CreateRaffle(ctx context.Context, raffle domain.Raffle) (domain.Raffle, error)
	GetRaffle(ctx context.Context, id uint) (domain.Raffle, error)
	ListRaffles(ctx context.Context, page, limit int, filter string) ([]domain.Raffle, error)
	CountRaffles(ctx context.Context, filter string) (int64, error)
	UpdateRaffle(ctx context.Context, id uint, update domain.RaffleUpdate) (domain.Raffle, error)
	DeleteRaffle(ctx context.Context, id uint) (bool, error)
}

type RaffleHandler struct {
	svc RaffleService
}

func NewRaffleHandler(svc RaffleService) *RaffleHandler {
	return &RaffleHandler{
		svc: svc,
	}
}

// HandleListRaffles godoc
// @Summary      List raffles
// @Description  Paginated, newest first. A status literal in "filter" restricts by status, anything else matches the title.
// @Tags         raffles
// @Produce      json
// @Param        page     query     int     false "page, defaults to 1"
// @Param        limit    query     int     false "page size, defaults to 10"
// @Param        filter   query     string  false "status literal or title substring"
// @Success      200      {object}  response.RaffleListResponse
// @Failure      500      {object}  response.Err
// @Router       /raffles [get]
func (h *RaffleHandler) HandleListRaffles(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = service.DefaultPage
	}
	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit < 1 {
		limit = service.DefaultLimit
	}
	filter := ctx.Query("filter")

	raffles, err := h.svc.ListRaffles(ctx.Request.Context(), page, limit, filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRaffles -> h.svc.ListRaffles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	total, err := h.svc.CountRaffles(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListRaffles -> h.svc.CountRaffles -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.RaffleListResponse{
		Data: raffles,
		Pagination: response.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	})
}

// HandleGetRaffle godoc
// @Summary      Get a raffle
// @Tags         raffles
// @Produce      json
// @Param        raffleID   path      int  true "raffle ID"
// @Success      200      {object}   domain.Raffle
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffles/{raffleID} [get]
func (h *RaffleHandler) HandleGetRaffle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "raffleID")
	if !ok {
		return
	}

	raffle, err := h.svc.GetRaffle(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))

			return
		}

		err = fmt.Errorf("v1.HandleGetRaffle -> h.svc.GetRaffle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, raffle)
}

// HandleCreateRaffle godoc
// @Summary      Create a raffle
// @Tags         raffles
// @Produce      json
// @Security     BearerAuth
// @Param        request   body      request.CreateRaffleRequest true "request body"
// @Success      201      {object}   domain.Raffle
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffles [post]
func (h *RaffleHandler) HandleCreateRaffle(ctx *gin.Context) {
	var req request.CreateRaffleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raffle, err := h.svc.CreateRaffle(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateRaffle -> h.svc.CreateRaffle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, raffle)
}

// HandleUpdateRaffle godoc
// @Summary      Update a raffle
// @Description  Partial update; absent fields are left untouched.
// @Tags         raffles
// @Produce      json
// @Security     BearerAuth
// @Param        raffleID   path      int  true "raffle ID"
// @Param        request   body      request.UpdateRaffleRequest true "request body"
// @Success      200      {object}   domain.Raffle
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffles/{raffleID} [put]
func (h *RaffleHandler) HandleUpdateRaffle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "raffleID")
	if !ok {
		return
	}

	var req request.UpdateRaffleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	raffle, err := h.svc.UpdateRaffle(ctx.Request.Context(), id, req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRaffleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))
		case errors.Is(err, service.ErrTotalTicketsBelowSold):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTotalTicketsBelowSold))
		default:
			err = fmt.Errorf("v1.HandleUpdateRaffle -> h.svc.UpdateRaffle -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, raffle)
}

// HandleDeleteRaffle godoc
// @Summary      Delete a raffle
// @Description  Hard delete; the raffle's tickets go with it.
// @Tags         raffles
// @Produce      json
// @Security     BearerAuth
// @Param        raffleID   path      int  true "raffle ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffles/{raffleID} [delete]
func (h *RaffleHandler) HandleDeleteRaffle(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "raffleID")
	if !ok {
		return
	}

	deleted, err := h.svc.DeleteRaffle(ctx.Request.Context(), id)
	if err != nil {
		err = fmt.Errorf("v1.HandleDeleteRaffle -> h.svc.DeleteRaffle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	if !deleted {
		response.RenderErr(ctx, response.ErrNotFound("raffle not found"))

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "raffle deleted"})
}

// parseIDParam reads a positive integer path parameter, rendering a 400
// on malformed input.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid %v", name)))

		return 0, false
	}

	return uint(id), true
}
