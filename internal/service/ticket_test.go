package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifas-online/rifas-api/internal/domain"
)

func newTicketServiceFixture(t *testing.T, totalTickets int) (*TicketService, *fakeStore, domain.Raffle) {
	t.Helper()

	store := newFakeStore()
	raffleRepo := &fakeRaffleRepo{store: store}
	svc := NewTicketService(&fakeTicketRepo{store: store}, raffleRepo)

	raffle, err := raffleRepo.Create(context.Background(), domain.Raffle{
		Title:        "Rifa Navidad",
		Price:        5,
		TotalTickets: totalTickets,
		EndDate:      time.Now().Add(72 * time.Hour),
		Status:       domain.RaffleStatusActive,
	})
	require.NoError(t, err)

	return svc, store, raffle
}

func reserve(t *testing.T, svc *TicketService, raffleID uint, number int) domain.Ticket {
	t.Helper()

	ticket, err := svc.ReserveTicket(context.Background(), domain.Ticket{
		RaffleID: raffleID,
		Number:   number,
		Cedula:   "V-12345678",
		Name:     "Maria Perez",
		Email:    "maria@example.com",
		Phone:    "+58 412 5551234",
	})
	require.NoError(t, err)

	return ticket
}

func TestTicketService_GetAvailableNumbers(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 5)
	ctx := context.Background()

	available, err := svc.GetAvailableNumbers(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, available)

	reserve(t, svc, raffle.ID, 2)
	reserve(t, svc, raffle.ID, 4)

	available, err = svc.GetAvailableNumbers(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 5}, available)

	// Available and sold always partition the full range.
	sold, err := svc.ListTicketsForRaffle(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Len(t, available, raffle.TotalTickets-len(sold))
	for _, ticket := range sold {
		assert.NotContains(t, available, ticket.Number)
	}
}

func TestTicketService_GetAvailableNumbers_MoreSoldThanTotal(t *testing.T) {
	svc, store, raffle := newTicketServiceFixture(t, 10)
	ctx := context.Background()

	for n := 1; n <= 5; n++ {
		reserve(t, svc, raffle.ID, n)
	}

	// Rows from before the shrink guard existed can hold more sold
	// numbers than the current total. Availability must cope.
	shrunk := store.raffles[raffle.ID]
	shrunk.TotalTickets = 3
	store.raffles[raffle.ID] = shrunk

	available, err := svc.GetAvailableNumbers(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestTicketService_GetAvailableNumbers_RaffleNotFound(t *testing.T) {
	svc, _, _ := newTicketServiceFixture(t, 5)

	_, err := svc.GetAvailableNumbers(context.Background(), 999)
	assert.ErrorIs(t, err, ErrRaffleNotFound)
}

func TestTicketService_ReserveTicket(t *testing.T) {
	svc, store, raffle := newTicketServiceFixture(t, 10)

	ticket := reserve(t, svc, raffle.ID, 7)
	assert.Equal(t, raffle.ID, ticket.RaffleID)
	assert.Equal(t, 7, ticket.Number)
	assert.Equal(t, domain.PaymentStatusPending, ticket.PaymentStatus)
	assert.False(t, ticket.ReservationDate.IsZero())
	assert.Nil(t, ticket.PaymentDate)

	assert.Equal(t, 1, store.raffles[raffle.ID].SoldTickets)
}

func TestTicketService_ReserveTicket_NumberTaken(t *testing.T) {
	svc, store, raffle := newTicketServiceFixture(t, 10)
	ctx := context.Background()

	reserve(t, svc, raffle.ID, 7)

	_, err := svc.ReserveTicket(ctx, domain.Ticket{
		RaffleID: raffle.ID,
		Number:   7,
		Cedula:   "V-87654321",
		Name:     "Jose Gomez",
		Email:    "jose@example.com",
		Phone:    "+58 414 5554321",
	})
	assert.ErrorIs(t, err, ErrTicketNumberTaken)

	// The losing attempt leaves no trace: one ticket, counter at one.
	tickets, err := svc.ListTicketsForRaffle(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
	assert.Equal(t, "Maria Perez", tickets[0].Name)
	assert.Equal(t, 1, store.raffles[raffle.ID].SoldTickets)
}

func TestTicketService_ReserveTicket_NumberOutOfRange(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 10)
	ctx := context.Background()

	for _, number := range []int{0, -3, 11} {
		_, err := svc.ReserveTicket(ctx, domain.Ticket{
			RaffleID: raffle.ID,
			Number:   number,
			Cedula:   "V-12345678",
			Name:     "Maria Perez",
			Email:    "maria@example.com",
			Phone:    "+58 412 5551234",
		})
		assert.ErrorIs(t, err, ErrTicketNumberOutOfRange, "number %d", number)
	}
}

func TestTicketService_ReserveTicket_RaffleNotFound(t *testing.T) {
	svc, _, _ := newTicketServiceFixture(t, 10)

	_, err := svc.ReserveTicket(context.Background(), domain.Ticket{
		RaffleID: 999,
		Number:   1,
		Cedula:   "V-12345678",
		Name:     "Maria Perez",
		Email:    "maria@example.com",
		Phone:    "+58 412 5551234",
	})
	assert.ErrorIs(t, err, ErrRaffleNotFound)
}

func TestTicketService_ReserveTicket_InvalidPaymentStatus(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 10)

	_, err := svc.ReserveTicket(context.Background(), domain.Ticket{
		RaffleID:      raffle.ID,
		Number:        1,
		Cedula:        "V-12345678",
		Name:          "Maria Perez",
		Email:         "maria@example.com",
		Phone:         "+58 412 5551234",
		PaymentStatus: "gratis",
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestTicketService_ReleaseTicket(t *testing.T) {
	svc, store, raffle := newTicketServiceFixture(t, 10)
	ctx := context.Background()

	ticket := reserve(t, svc, raffle.ID, 3)
	require.Equal(t, 1, store.raffles[raffle.ID].SoldTickets)

	deleted, err := svc.ReleaseTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, 0, store.raffles[raffle.ID].SoldTickets)

	// The number is back in the pool and can be reserved again.
	available, err := svc.GetAvailableNumbers(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Contains(t, available, 3)
	reserve(t, svc, raffle.ID, 3)

	// A second release of the original id is a no-op, not an error,
	// and must not decrement the counter again.
	deleted, err = svc.ReleaseTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Equal(t, 1, store.raffles[raffle.ID].SoldTickets)
}

func TestTicketService_ReserveAllThenRelease(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 5)
	ctx := context.Background()

	tickets := make([]domain.Ticket, 0, raffle.TotalTickets)
	for n := 1; n <= raffle.TotalTickets; n++ {
		tickets = append(tickets, reserve(t, svc, raffle.ID, n))
	}

	available, err := svc.GetAvailableNumbers(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Empty(t, available)

	deleted, err := svc.ReleaseTicket(ctx, tickets[2].ID)
	require.NoError(t, err)
	require.True(t, deleted)

	available, err = svc.GetAvailableNumbers(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{tickets[2].Number}, available)
}

func TestTicketService_UpdatePaymentStatus(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 10)
	ctx := context.Background()

	ticket := reserve(t, svc, raffle.ID, 1)
	require.Nil(t, ticket.PaymentDate)

	paid, err := svc.UpdatePaymentStatus(ctx, ticket.ID, domain.PaymentStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)

	// Moving away from paid keeps the stamped date.
	paidAt := *paid.PaymentDate
	back, err := svc.UpdatePaymentStatus(ctx, ticket.ID, domain.PaymentStatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPending, back.PaymentStatus)
	require.NotNil(t, back.PaymentDate)
	assert.Equal(t, paidAt, *back.PaymentDate)
}

func TestTicketService_UpdatePaymentStatus_Pending_NoDate(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 10)
	ctx := context.Background()

	ticket := reserve(t, svc, raffle.ID, 1)

	updated, err := svc.UpdatePaymentStatus(ctx, ticket.ID, domain.PaymentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCancelled, updated.PaymentStatus)
	assert.Nil(t, updated.PaymentDate)
}

func TestTicketService_UpdatePaymentStatus_Invalid(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 10)

	ticket := reserve(t, svc, raffle.ID, 1)

	_, err := svc.UpdatePaymentStatus(context.Background(), ticket.ID, "gratis")
	assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
}

func TestTicketService_UpdatePaymentStatus_NotFound(t *testing.T) {
	svc, _, _ := newTicketServiceFixture(t, 10)

	_, err := svc.UpdatePaymentStatus(context.Background(), 999, domain.PaymentStatusPaid)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestTicketService_GetTicket(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 10)
	ctx := context.Background()

	ticket := reserve(t, svc, raffle.ID, 9)

	found, err := svc.GetTicket(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket, found)

	_, err = svc.GetTicket(ctx, 999)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestTicketService_ListTicketsForRaffle(t *testing.T) {
	svc, _, raffle := newTicketServiceFixture(t, 10)
	ctx := context.Background()

	reserve(t, svc, raffle.ID, 8)
	reserve(t, svc, raffle.ID, 2)
	reserve(t, svc, raffle.ID, 5)

	tickets, err := svc.ListTicketsForRaffle(ctx, raffle.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
	assert.Equal(t, []int{2, 5, 8}, []int{tickets[0].Number, tickets[1].Number, tickets[2].Number})

	_, err = svc.ListTicketsForRaffle(ctx, 999)
	assert.ErrorIs(t, err, ErrRaffleNotFound)
}
