package metrics

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultCollectTimeout = 5 * time.Second

// ConfigurationCounts is what the collector publishes as gauges
type ConfigurationCounts struct {
	Total    int64
	Locked   int64
	Orphaned int64
}

// CountsSource reads the current configuration counts
type CountsSource func(ctx context.Context) (*ConfigurationCounts, error)

// BusinessMetricsCollector refreshes the configuration gauges on an interval
type BusinessMetricsCollector struct {
	source   CountsSource
	metrics  *Metrics
	logger   *zap.Logger
	interval time.Duration
	timeout  time.Duration

	started  atomic.Bool
	stopOnce sync.Once
	stop     chan struct{}
	stopped  chan struct{}
}

// NewBusinessMetricsCollector creates a collector; nothing runs until Start
func NewBusinessMetricsCollector(source CountsSource, metrics *Metrics, logger *zap.Logger, interval time.Duration) *BusinessMetricsCollector {
	return &BusinessMetricsCollector{
		source:   source,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		timeout:  defaultCollectTimeout,
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

// Start collects once right away and then on every tick. Calling it twice is a no-op.
func (c *BusinessMetricsCollector) Start() {
	if !c.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(c.stopped)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop ends the loop and waits for a running collection to finish
func (c *BusinessMetricsCollector) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	if c.started.Load() {
		<-c.stopped
	}
}

func (c *BusinessMetricsCollector) collect() {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("Panic in business metrics collection", zap.Any("panic", r))
		}
	}()

	timeout := c.timeout
	if timeout <= 0 {
		timeout = defaultCollectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	counts, err := c.source(ctx)
	if err != nil {
		c.logger.Warn("Failed to count configurations, keeping previous gauges", zap.Error(err))
		return
	}

	c.metrics.SetConfigurationsTotal(counts.Total)
	c.metrics.SetConfigurationsLocked(counts.Locked)
	c.metrics.SetOrphanedSelections(counts.Orphaned)
}
