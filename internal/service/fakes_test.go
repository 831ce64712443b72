package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rifas-online/rifas-api/internal/domain"
	"github.com/rifas-online/rifas-api/internal/repository"
)

// fakeStore mimics the postgres-backed repositories in memory,
// including the (raffle, number) uniqueness guarantee and the
// transactional sold-count maintenance the DAO layer provides.
type fakeStore struct {
	mu      sync.Mutex
	raffles map[uint]domain.Raffle
	tickets map[uint]domain.Ticket
	winners map[uint]domain.Winner
	admins  map[uint]domain.Admin
	nextID  uint
	clock   time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		raffles: map[uint]domain.Raffle{},
		tickets: map[uint]domain.Ticket{},
		winners: map[uint]domain.Winner{},
		admins:  map[uint]domain.Admin{},
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++

	return s.nextID
}

// tick returns a strictly increasing timestamp so creation-order
// assertions are deterministic.
func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)

	return s.clock
}

type fakeRaffleRepo struct {
	store *fakeStore
}

func (r *fakeRaffleRepo) Create(_ context.Context, raffle domain.Raffle) (domain.Raffle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	raffle.ID = r.store.id()
	raffle.CreatedAt = r.store.tick()
	r.store.raffles[raffle.ID] = raffle

	return raffle, nil
}

func (r *fakeRaffleRepo) FindByID(_ context.Context, id uint) (domain.Raffle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	raffle, ok := r.store.raffles[id]
	if !ok {
		return domain.Raffle{}, repository.ErrRaffleNotFound
	}

	return raffle, nil
}

func (r *fakeRaffleRepo) matching(filter string) []domain.Raffle {
	var raffles []domain.Raffle
	for _, raffle := range r.store.raffles {
		switch filter {
		case "":
			raffles = append(raffles, raffle)
		case domain.RaffleStatusActive, domain.RaffleStatusUpcoming, domain.RaffleStatusFinished:
			if raffle.Status == filter {
				raffles = append(raffles, raffle)
			}
		default:
			if strings.Contains(raffle.Title, filter) {
				raffles = append(raffles, raffle)
			}
		}
	}

	sort.Slice(raffles, func(i, j int) bool {
		return raffles[i].CreatedAt.After(raffles[j].CreatedAt)
	})

	return raffles
}

func (r *fakeRaffleRepo) FindAll(_ context.Context, page, limit int, filter string) ([]domain.Raffle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	raffles := r.matching(filter)

	offset := (page - 1) * limit
	if offset >= len(raffles) {
		return []domain.Raffle{}, nil
	}
	end := offset + limit
	if end > len(raffles) {
		end = len(raffles)
	}

	return raffles[offset:end], nil
}

func (r *fakeRaffleRepo) Count(_ context.Context, filter string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return int64(len(r.matching(filter))), nil
}

func (r *fakeRaffleRepo) Update(_ context.Context, id uint, update domain.RaffleUpdate) (domain.Raffle, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	raffle, ok := r.store.raffles[id]
	if !ok {
		return domain.Raffle{}, repository.ErrRaffleNotFound
	}

	if update.Title != nil {
		raffle.Title = *update.Title
	}
	if update.Description != nil {
		raffle.Description = *update.Description
	}
	if update.Price != nil {
		raffle.Price = *update.Price
	}
	if update.TotalTickets != nil {
		raffle.TotalTickets = *update.TotalTickets
	}
	if update.ImageURL != nil {
		raffle.ImageURL = *update.ImageURL
	}
	if update.PrizeID != nil {
		raffle.PrizeID = *update.PrizeID
	}
	if update.EndDate != nil {
		raffle.EndDate = *update.EndDate
	}
	if update.Status != nil {
		raffle.Status = *update.Status
	}

	r.store.raffles[id] = raffle

	return raffle, nil
}

func (r *fakeRaffleRepo) Delete(_ context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.raffles[id]; !ok {
		return false, nil
	}

	delete(r.store.raffles, id)
	for ticketID, ticket := range r.store.tickets {
		if ticket.RaffleID == id {
			delete(r.store.tickets, ticketID)
		}
	}

	return true, nil
}

type fakeTicketRepo struct {
	store *fakeStore
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.tickets {
		if existing.RaffleID == ticket.RaffleID && existing.Number == ticket.Number {
			return domain.Ticket{}, repository.ErrTicketNumberTaken
		}
	}

	ticket.ID = r.store.id()
	ticket.ReservationDate = r.store.tick()
	r.store.tickets[ticket.ID] = ticket

	raffle := r.store.raffles[ticket.RaffleID]
	raffle.SoldTickets++
	r.store.raffles[ticket.RaffleID] = raffle

	return ticket, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ticket, ok := r.store.tickets[id]
	if !ok {
		return false, nil
	}

	delete(r.store.tickets, id)

	raffle, ok := r.store.raffles[ticket.RaffleID]
	if ok && raffle.SoldTickets > 0 {
		raffle.SoldTickets--
		r.store.raffles[ticket.RaffleID] = raffle
	}

	return true, nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id uint) (domain.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ticket, ok := r.store.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}

	return ticket, nil
}

func (r *fakeTicketRepo) FindByRaffleID(_ context.Context, raffleID uint) ([]domain.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tickets := []domain.Ticket{}
	for _, ticket := range r.store.tickets {
		if ticket.RaffleID == raffleID {
			tickets = append(tickets, ticket)
		}
	}
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].Number < tickets[j].Number
	})

	return tickets, nil
}

func (r *fakeTicketRepo) FindAll(_ context.Context) ([]domain.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	tickets := []domain.Ticket{}
	for _, ticket := range r.store.tickets {
		tickets = append(tickets, ticket)
	}
	sort.Slice(tickets, func(i, j int) bool {
		return tickets[i].ReservationDate.After(tickets[j].ReservationDate)
	})

	return tickets, nil
}

func (r *fakeTicketRepo) FindNumbersByRaffleID(ctx context.Context, raffleID uint) ([]int, error) {
	tickets, err := r.FindByRaffleID(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	numbers := make([]int, 0, len(tickets))
	for _, ticket := range tickets {
		numbers = append(numbers, ticket.Number)
	}

	return numbers, nil
}

func (r *fakeTicketRepo) UpdatePaymentStatus(_ context.Context, id uint, status string, paymentDate *time.Time) (domain.Ticket, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ticket, ok := r.store.tickets[id]
	if !ok {
		return domain.Ticket{}, repository.ErrTicketNotFound
	}

	ticket.PaymentStatus = status
	if paymentDate != nil {
		ticket.PaymentDate = paymentDate
	}
	r.store.tickets[id] = ticket

	return ticket, nil
}

type fakeWinnerRepo struct {
	store *fakeStore
}

func (r *fakeWinnerRepo) Create(_ context.Context, winner domain.Winner) (domain.Winner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	winner.ID = r.store.id()
	winner.AnnouncedDate = r.store.tick()
	winner.Claimed = false
	r.store.winners[winner.ID] = winner

	return winner, nil
}

func (r *fakeWinnerRepo) FindAll(_ context.Context) ([]domain.Winner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	winners := []domain.Winner{}
	for _, winner := range r.store.winners {
		winners = append(winners, winner)
	}
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].AnnouncedDate.After(winners[j].AnnouncedDate)
	})

	return winners, nil
}

func (r *fakeWinnerRepo) FindByRaffleID(ctx context.Context, raffleID uint) ([]domain.Winner, error) {
	winners, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := []domain.Winner{}
	for _, winner := range winners {
		if winner.RaffleID == raffleID {
			matched = append(matched, winner)
		}
	}

	return matched, nil
}

func (r *fakeWinnerRepo) MarkClaimed(_ context.Context, id uint) (domain.Winner, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	winner, ok := r.store.winners[id]
	if !ok {
		return domain.Winner{}, repository.ErrWinnerNotFound
	}

	winner.Claimed = true
	r.store.winners[id] = winner

	return winner, nil
}

type fakeAdminRepo struct {
	store *fakeStore
}

func (r *fakeAdminRepo) Create(_ context.Context, admin domain.Admin) (domain.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.admins {
		if existing.Username == admin.Username {
			return domain.Admin{}, repository.ErrAdminUsernameExists
		}
	}

	admin.ID = r.store.id()
	admin.CreatedAt = r.store.tick()
	r.store.admins[admin.ID] = admin

	return admin, nil
}

func (r *fakeAdminRepo) FindByID(_ context.Context, id uint) (domain.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	admin, ok := r.store.admins[id]
	if !ok {
		return domain.Admin{}, repository.ErrAdminNotFound
	}

	return admin, nil
}

func (r *fakeAdminRepo) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	admin, ok := r.store.admins[id]
	if !ok {
		return repository.ErrAdminNotFound
	}

	admin.Password = passwordHash
	r.store.admins[id] = admin

	return nil
}

func (r *fakeAdminRepo) FindByUsername(_ context.Context, username string) (domain.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, admin := range r.store.admins {
		if admin.Username == username {
			return admin, nil
		}
	}

	return domain.Admin{}, repository.ErrAdminNotFound
}

func (r *fakeAdminRepo) Count(_ context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return int64(len(r.store.admins)), nil
}
