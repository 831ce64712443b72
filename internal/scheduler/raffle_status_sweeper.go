package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rifas-online/rifas-api/internal/repository/dao"
)

const defaultSweepInterval = 10 * time.Minute

// RaffleStatusSweeper periodically moves active raffles whose end date
// has passed to finalizada. Core operations never depend on it; it only
// keeps the listed status in step with the clock.
type RaffleStatusSweeper struct {
	scheduler gocron.Scheduler
	raffleDAO *dao.RaffleDAO
}

func NewRaffleStatusSweeper(db *gorm.DB, interval time.Duration) (*RaffleStatusSweeper, error) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("gocron.NewScheduler -> %w", err)
	}

	sweeper := &RaffleStatusSweeper{
		scheduler: s,
		raffleDAO: dao.NewRaffleDAO(db),
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sweeper.sweep),
	)
	if err != nil {
		return nil, fmt.Errorf("s.NewJob -> %w", err)
	}

	return sweeper, nil
}

func (s *RaffleStatusSweeper) Start() {
	s.scheduler.Start()
}

func (s *RaffleStatusSweeper) Stop() {
	if err := s.scheduler.Shutdown(); err != nil {
		zap.L().Warn("failed to shut down raffle status sweeper", zap.Error(err))
	}
}

func (s *RaffleStatusSweeper) sweep() {
	updated, err := s.raffleDAO.FinishEnded(context.Background(), time.Now())
	if err != nil {
		zap.L().Error("raffle status sweep failed", zap.Error(err))

		return
	}

	if updated > 0 {
		zap.L().Info("raffle status sweep finished raffles", zap.Int64("count", updated))
	}
}
