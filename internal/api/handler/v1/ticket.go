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

type TicketService interface {
	GetAvailableNumbers(ctx context.Context, raffleID uint) ([]int, error)
	ReserveTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	ReleaseTicket(ctx context.Context, id uint) (bool, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status string) (domain.Ticket, error)
	GetTicket(ctx context.Context, id uint) (domain.Ticket, error)
	ListTicketsForRaffle(ctx context.Context, raffleID uint) ([]domain.Ticket, error)
	ListAllTickets(ctx context.Context) ([]domain.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandleGetAvailableNumbers godoc
// @Summary      Available numbers of a raffle
// @Description  Fresh snapshot; a reported number can be taken by someone else before you reserve it.
// @Tags         tickets
// @Produce      json
// @Param        raffleID   path      int  true "raffle ID"
// @Success      200      {object}   response.AvailableNumbersResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffles/{raffleID}/available-numbers [get]
func (h *TicketHandler) HandleGetAvailableNumbers(ctx *gin.Context) {
	raffleID, ok := parseIDParam(ctx, "raffleID")
	if !ok {
		return
	}

	numbers, err := h.svc.GetAvailableNumbers(ctx.Request.Context(), raffleID)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))

			return
		}

		err = fmt.Errorf("v1.HandleGetAvailableNumbers -> h.svc.GetAvailableNumbers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.AvailableNumbersResponse{AvailableNumbers: numbers})
}

// HandleListRaffleTickets godoc
// @Summary      Tickets of a raffle
// @Tags         tickets
// @Produce      json
// @Param        raffleID   path      int  true "raffle ID"
// @Success      200      {array}    domain.Ticket
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /raffles/{raffleID}/tickets [get]
func (h *TicketHandler) HandleListRaffleTickets(ctx *gin.Context) {
	raffleID, ok := parseIDParam(ctx, "raffleID")
	if !ok {
		return
	}

	tickets, err := h.svc.ListTicketsForRaffle(ctx.Request.Context(), raffleID)
	if err != nil {
		if errors.Is(err, service.ErrRaffleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))

			return
		}

		err = fmt.Errorf("v1.HandleListRaffleTickets -> h.svc.ListTicketsForRaffle -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleListAllTickets godoc
// @Summary      All tickets across raffles
// @Tags         tickets
// @Produce      json
// @Success      200      {array}    domain.Ticket
// @Failure      500      {object}   response.Err
// @Router       /tickets [get]
func (h *TicketHandler) HandleListAllTickets(ctx *gin.Context) {
	tickets, err := h.svc.ListAllTickets(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListAllTickets -> h.svc.ListAllTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleGetTicket godoc
// @Summary      Get a ticket
// @Tags         tickets
// @Produce      json
// @Param        ticketID   path      int  true "ticket ID"
// @Success      200      {object}   domain.Ticket
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/{ticketID} [get]
func (h *TicketHandler) HandleGetTicket(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "ticketID")
	if !ok {
		return
	}

	ticket, err := h.svc.GetTicket(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket not found"))

			return
		}

		err = fmt.Errorf("v1.HandleGetTicket -> h.svc.GetTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}

// HandleReserveTicket godoc
// @Summary      Reserve a numbered ticket
// @Description  One number, one holder. A number taken in the meantime returns 409; re-fetch availability and retry.
// @Tags         tickets
// @Produce      json
// @Param        request   body      request.ReserveTicketRequest true "request body"
// @Success      201      {object}   domain.Ticket
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets [post]
func (h *TicketHandler) HandleReserveTicket(ctx *gin.Context) {
	var req request.ReserveTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.ReserveTicket(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRaffleNotFound):
			response.RenderErr(ctx, response.ErrNotFound("raffle not found"))
		case errors.Is(err, service.ErrTicketNumberOutOfRange):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrTicketNumberOutOfRange))
		case errors.Is(err, service.ErrTicketNumberTaken):
			response.RenderErr(ctx, response.ErrConflict(service.ErrTicketNumberTaken))
		default:
			err = fmt.Errorf("v1.HandleReserveTicket -> h.svc.ReserveTicket -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, ticket)
}

// HandleReleaseTicket godoc
// @Summary      Release a ticket
// @Description  Deletes the ticket and returns its number to the pool.
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        ticketID   path      int  true "ticket ID"
// @Success      200      {object}   response.MessageResponse
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/{ticketID} [delete]
func (h *TicketHandler) HandleReleaseTicket(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "ticketID")
	if !ok {
		return
	}

	released, err := h.svc.ReleaseTicket(ctx.Request.Context(), id)
	if err != nil {
		err = fmt.Errorf("v1.HandleReleaseTicket -> h.svc.ReleaseTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}
	if !released {
		response.RenderErr(ctx, response.ErrNotFound("ticket not found"))

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "ticket released"})
}

// HandleUpdatePaymentStatus godoc
// @Summary      Update a ticket's payment status
// @Description  Moving to pagado stamps the payment date; moving away keeps it.
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        ticketID   path      int  true "ticket ID"
// @Param        request   body      request.UpdatePaymentStatusRequest true "request body"
// @Success      200      {object}   domain.Ticket
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/{ticketID}/payment-status [patch]
func (h *TicketHandler) HandleUpdatePaymentStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "ticketID")
	if !ok {
		return
	}

	var req request.UpdatePaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.UpdatePaymentStatus(ctx.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTicketNotFound):
			response.RenderErr(ctx, response.ErrNotFound("ticket not found"))
		case errors.Is(err, service.ErrInvalidPaymentStatus):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrInvalidPaymentStatus))
		default:
			err = fmt.Errorf("v1.HandleUpdatePaymentStatus -> h.svc.UpdatePaymentStatus -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}
