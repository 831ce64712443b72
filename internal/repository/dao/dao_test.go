package dao_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rifas-online/rifas-api/internal/repository/dao"
)

var testDB *gorm.DB

// TestMain spins up a throwaway postgres container for the DAO tests.
// Without a reachable docker daemon the whole package is skipped.
func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Printf("skipping dao tests, docker is not available: %v", err)

		return
	}
	if err = pool.Client.Ping(); err != nil {
		log.Printf("skipping dao tests, docker is not available: %v", err)

		return
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=rifas",
			"POSTGRES_PASSWORD=rifas",
			"POSTGRES_DB=rifas_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=rifas password=rifas dbname=rifas_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	pool.MaxWait = 2 * time.Minute
	if err = pool.Retry(func() error {
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres container: %v", err)
	}

	if err = dao.InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Printf("could not purge postgres container: %v", err)
	}

	os.Exit(code)
}

func truncateTables(t *testing.T) {
	t.Helper()

	for _, table := range []string{"tickets", "winners", "raffles", "admins"} {
		require.NoError(t, testDB.Exec("TRUNCATE TABLE "+table+" RESTART IDENTITY CASCADE").Error)
	}
}

func insertRaffle(t *testing.T, totalTickets int) dao.Raffle {
	t.Helper()

	raffle, err := dao.NewRaffleDAO(testDB).Insert(context.Background(), dao.Raffle{
		Title:        "Rifa Navidad",
		Description:  "Cesta navidena",
		Price:        5,
		TotalTickets: totalTickets,
		ImageURL:     "https://example.com/rifa.jpg",
		EndDate:      time.Now().Add(72 * time.Hour),
		Status:       "activa",
	})
	require.NoError(t, err)

	return raffle
}

func newTicket(raffleID uint, number int) dao.Ticket {
	return dao.Ticket{
		RaffleID:        raffleID,
		Number:          number,
		Cedula:          "V-12345678",
		Name:            "Maria Perez",
		Email:           "maria@example.com",
		Phone:           "+58 412 5551234",
		ReservationDate: time.Now(),
		PaymentStatus:   "pendiente",
	}
}

func TestTicketDAO_Insert_UniqueNumber(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()

	raffleDAO := dao.NewRaffleDAO(testDB)
	ticketDAO := dao.NewTicketDAO(testDB)
	raffle := insertRaffle(t, 100)

	first, err := ticketDAO.Insert(ctx, newTicket(raffle.ID, 7))
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	// Same number, same raffle: the unique index rejects it and the
	// sold counter is untouched by the failed insert.
	_, err = ticketDAO.Insert(ctx, newTicket(raffle.ID, 7))
	assert.ErrorIs(t, err, dao.ErrTicketNumberTaken)

	stored, err := raffleDAO.FindByID(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.SoldTickets)

	// Same number on another raffle is fine.
	other := insertRaffle(t, 100)
	_, err = ticketDAO.Insert(ctx, newTicket(other.ID, 7))
	assert.NoError(t, err)
}

func TestTicketDAO_Insert_ConcurrentSameNumber(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()

	raffleDAO := dao.NewRaffleDAO(testDB)
	ticketDAO := dao.NewTicketDAO(testDB)
	raffle := insertRaffle(t, 100)

	// Two buyers race for the same number. The unique index must let
	// exactly one through, whichever order the database picks.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ticketDAO.Insert(ctx, newTicket(raffle.ID, 13))
		}(i)
	}
	wg.Wait()

	if errs[0] == nil {
		assert.ErrorIs(t, errs[1], dao.ErrTicketNumberTaken)
	} else {
		assert.ErrorIs(t, errs[0], dao.ErrTicketNumberTaken)
		assert.NoError(t, errs[1])
	}

	tickets, err := ticketDAO.FindByRaffleID(ctx, raffle.ID)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, 13, tickets[0].Number)

	stored, err := raffleDAO.FindByID(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.SoldTickets)
}

func TestTicketDAO_Delete_SyncsSoldCount(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()

	raffleDAO := dao.NewRaffleDAO(testDB)
	ticketDAO := dao.NewTicketDAO(testDB)
	raffle := insertRaffle(t, 100)

	ticket, err := ticketDAO.Insert(ctx, newTicket(raffle.ID, 3))
	require.NoError(t, err)

	deleted, err := ticketDAO.Delete(ctx, ticket.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	stored, err := raffleDAO.FindByID(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.SoldTickets)

	// Deleting again reports false and leaves the counter at zero.
	deleted, err = ticketDAO.Delete(ctx, ticket.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	stored, err = raffleDAO.FindByID(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.SoldTickets)

	// The freed number can be reserved again.
	_, err = ticketDAO.Insert(ctx, newTicket(raffle.ID, 3))
	assert.NoError(t, err)
}

func TestTicketDAO_FindNumbersByRaffleID(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()

	ticketDAO := dao.NewTicketDAO(testDB)
	raffle := insertRaffle(t, 100)

	for _, n := range []int{9, 1, 5} {
		_, err := ticketDAO.Insert(ctx, newTicket(raffle.ID, n))
		require.NoError(t, err)
	}

	numbers, err := ticketDAO.FindNumbersByRaffleID(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 9}, numbers)
}

func TestTicketDAO_UpdatePaymentStatus(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()

	ticketDAO := dao.NewTicketDAO(testDB)
	raffle := insertRaffle(t, 100)

	ticket, err := ticketDAO.Insert(ctx, newTicket(raffle.ID, 1))
	require.NoError(t, err)

	now := time.Now()
	paid, err := ticketDAO.UpdatePaymentStatus(ctx, ticket.ID, "pagado", &now)
	require.NoError(t, err)
	assert.Equal(t, "pagado", paid.PaymentStatus)
	require.NotNil(t, paid.PaymentDate)

	// A nil date leaves the stamped one alone.
	back, err := ticketDAO.UpdatePaymentStatus(ctx, ticket.ID, "pendiente", nil)
	require.NoError(t, err)
	assert.Equal(t, "pendiente", back.PaymentStatus)
	assert.NotNil(t, back.PaymentDate)

	_, err = ticketDAO.UpdatePaymentStatus(ctx, 999, "pagado", &now)
	assert.ErrorIs(t, err, dao.ErrTicketNotFound)
}

func TestRaffleDAO_Delete_CascadesTickets(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()

	raffleDAO := dao.NewRaffleDAO(testDB)
	ticketDAO := dao.NewTicketDAO(testDB)
	raffle := insertRaffle(t, 100)

	_, err := ticketDAO.Insert(ctx, newTicket(raffle.ID, 1))
	require.NoError(t, err)
	_, err = ticketDAO.Insert(ctx, newTicket(raffle.ID, 2))
	require.NoError(t, err)

	deleted, err := raffleDAO.Delete(ctx, raffle.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	tickets, err := ticketDAO.FindByRaffleID(ctx, raffle.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)

	deleted, err = raffleDAO.Delete(ctx, raffle.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestRaffleDAO_FinishEnded(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()

	raffleDAO := dao.NewRaffleDAO(testDB)

	ended, err := raffleDAO.Insert(ctx, dao.Raffle{
		Title:        "Rifa Vencida",
		Description:  "Ya termino",
		Price:        5,
		TotalTickets: 100,
		ImageURL:     "https://example.com/rifa.jpg",
		EndDate:      time.Now().Add(-time.Hour),
		Status:       "activa",
	})
	require.NoError(t, err)
	running := insertRaffle(t, 100)

	finished, err := raffleDAO.FinishEnded(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), finished)

	stored, err := raffleDAO.FindByID(ctx, ended.ID)
	require.NoError(t, err)
	assert.Equal(t, "finalizada", stored.Status)

	stored, err = raffleDAO.FindByID(ctx, running.ID)
	require.NoError(t, err)
	assert.Equal(t, "activa", stored.Status)
}

func TestAdminDAO_UniqueUsername(t *testing.T) {
	truncateTables(t)
	ctx := context.Background()

	adminDAO := dao.NewAdminDAO(testDB)

	_, err := adminDAO.Insert(ctx, dao.Admin{
		Username: "admin",
		Password: "$2a$10$notarealhashnotarealhashnotarealhashnotarealha",
		Name:     "Administrador",
	})
	require.NoError(t, err)

	_, err = adminDAO.Insert(ctx, dao.Admin{
		Username: "admin",
		Password: "$2a$10$notarealhashnotarealhashnotarealhashnotarealha",
		Name:     "Otro",
	})
	assert.ErrorIs(t, err, dao.ErrAdminUsernameExists)

	total, err := adminDAO.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
