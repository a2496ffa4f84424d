package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is one run of a periodic job
type Task func(ctx context.Context) error

// Periodic runs a task on a fixed interval until stopped
type Periodic struct {
	name    string
	task    Task
	delay   time.Duration
	timeout time.Duration
	logger  *zap.Logger

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// PeriodicConfig holds configuration for a periodic job
type PeriodicConfig struct {
	Name         string
	Task         Task
	Interval     time.Duration // Default: 1 minute
	InitialDelay time.Duration // Delay before the first run
	Timeout      time.Duration // Per-run deadline. Default: 2 minutes
	Logger       *zap.Logger
}

// NewPeriodic creates a periodic job
func NewPeriodic(cfg PeriodicConfig) *Periodic {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Periodic{
		name:     cfg.Name,
		task:     cfg.Task,
		delay:    cfg.InitialDelay,
		timeout:  cfg.Timeout,
		interval: cfg.Interval,
		logger:   cfg.Logger.Named("jobs").With(zap.String("job", cfg.Name)),
		stopCh:   make(chan struct{}),
	}
}

// Start begins running the job in the background
func (p *Periodic) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	p.logger.Info("job started", zap.Duration("interval", p.interval))
}

// Stop halts the job and waits for an in-flight run to finish
func (p *Periodic) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	p.logger.Info("job stopped")
}

// IsRunning returns whether the job is running
func (p *Periodic) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// RunOnce runs the task once (for testing or manual trigger)
func (p *Periodic) RunOnce(ctx context.Context) error {
	return p.task(ctx)
}

func (p *Periodic) run() {
	defer p.wg.Done()

	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-p.stopCh:
			return
		}
	}
	p.tick()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.tick()
		case <-p.stopCh:
			return
		}
	}
}

func (p *Periodic) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.task(ctx); err != nil {
		p.logger.Error("job run failed", zap.Error(err))
	}
}
