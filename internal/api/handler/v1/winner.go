package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rifas-online/rifas-api/internal/api/handler/v1/request"
	"github.com/rifas-online/rifas-api/internal/api/handler/v1/response"
	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/service"
)

type WinnerService interface {
	RegisterWinner(ctx context.Context, winner domain.Winner) (domain.Winner, error)
	MarkClaimed(ctx context.Context, id uint) (domain.Winner, error)
	ListWinners(ctx context.Context) ([]domain.Winner, error)
	ListWinnersForRaffle(ctx context.Context, raffleID uint) ([]domain.Winner, error)
}

type WinnerHandler struct {
	svc WinnerService
}

func NewWinnerHandler(svc WinnerService) *WinnerHandler {
	return &WinnerHandler{
		svc: svc,
	}
}

// HandleListWinners godoc
// @Summary      List winners
// @Description  Most recent announcement first.
// @Tags         winners
// @Produce      json
// @Success      200      {array}    domain.Winner
// @Failure      500      {object}   response.Err
// @Router       /winners [get]
func (h *WinnerHandler) HandleListWinners(ctx *gin.Context) {
	winners, err := h.svc.ListWinners(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListWinners -> h.svc.ListWinners -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, winners)
}

// HandleListRaffleWinners godoc
// @Summary      Winners of a raffle
// @Tags         winners
// @Produce      json
// @Param        raffleID   path      int  true "raffle ID"
// @Success      200      {array}    domain.Winner
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffles/{raffleID}/winners [get]
func (h *WinnerHandler) HandleListRaffleWinners(ctx *gin.Context) {
	raffleID, ok := parseIDParam(ctx, "raffleID")
	if !ok {
		return
	}

	winners, err := h.svc.ListWinnersForRaffle(ctx.Request.Context(), raffleID)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))

			return
		}

		err = fmt.Errorf("v1.HandleListRaffleWinners -> h.svc.ListWinnersForRaffle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, winners)
}

// HandleRegisterWinner godoc
// @Summary      Register a winner
// @Description  Records the drawn ticket number, holder name and prize for a raffle.
// @Tags         winners
// @Produce      json
// @Security     BearerAuth
// @Param        request   body      request.RegisterWinnerRequest true "request body"
// @Success      201      {object}   domain.Winner
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /winners [post]
func (h *WinnerHandler) HandleRegisterWinner(ctx *gin.Context) {
	var req request.RegisterWinnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	winner, err := h.svc.RegisterWinner(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))

			return
		}

		err = fmt.Errorf("v1.HandleRegisterWinner -> h.svc.RegisterWinner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, winner)
}

// HandleMarkClaimed godoc
// @Summary      Mark a winner's prize as claimed
// @Description  Irreversible.
// @Tags         winners
// @Produce      json
// @Security     BearerAuth
// @Param        winnerID   path      int  true "winner ID"
// @Success      200      {object}   domain.Winner
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /winners/{winnerID}/claim [patch]
func (h *WinnerHandler) HandleMarkClaimed(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "winnerID")
	if !ok {
		return
	}

	winner, err := h.svc.MarkClaimed(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrWinnerNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("winner not found"))

			return
		}

		err = fmt.Errorf("v1.HandleMarkClaimed -> h.svc.MarkClaimed -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, winner)
}
