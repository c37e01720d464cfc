package metrics

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Collector refreshes the gauge metrics from the database on an interval.
type Collector struct {
	db       *gorm.DB
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	done     chan struct{}
	stopped  chan struct{}
}

func NewCollector(db *gorm.DB, metrics *Metrics, logger *zap.Logger, interval time.Duration) *Collector {
	return &Collector{
		db:       db,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start begins collecting metrics
func (c *Collector) Start() {
	go func() {
		defer close(c.stopped)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.Collect()
		for {
			select {
			case <-ticker.C:
				c.Collect()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop ends the collection loop and waits for it to exit.
func (c *Collector) Stop() {
	close(c.done)
	<-c.stopped
}

// Collect takes one sample of the pool statistics and table counts.
func (c *Collector) Collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in metrics collection", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sqlDB, err := c.db.DB(); err == nil {
		c.metrics.UpdateDBStats(sqlDB.Stats())
	}

	var boards int64
	if err := c.db.WithContext(ctx).Table("boards").Count(&boards).Error; err != nil {
		c.logger.Error("Failed to count boards", zap.Error(err))
	} else {
		c.metrics.SetBoardsTotal(boards)
	}

	var cards int64
	if err := c.db.WithContext(ctx).Table("cards").Count(&cards).Error; err != nil {
		c.logger.Error("Failed to count cards", zap.Error(err))
	} else {
		c.metrics.SetCardsTotal(cards)
	}
}
