package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MJE43/monty-hall-sim/internal/engine"
	"github.com/MJE43/monty-hall-sim/internal/games"
)

// Mode selects how each batch of rounds gets its randomness.
type Mode string

const (
	// ModePCG seeds a PCG stream per batch from Request.Seed.
	ModePCG Mode = "pcg"

	// ModeProvablyFair derives each round from HMAC-SHA256 over the request
	// seeds, using the 1-based round number as nonce.
	ModeProvablyFair Mode = "fair"
)

const defaultBatchSize = 8192

// Request describes a parallel simulation.
type Request struct {
	Doors     int          `json:"doors"`
	Rounds    int          `json:"rounds"`
	Mode      Mode         `json:"mode"`
	Seed      uint64       `json:"seed,omitempty"`
	Seeds     engine.Seeds `json:"-"`
	TimeoutMs int          `json:"timeout_ms,omitempty"`

	// OnProgress is called on the goroutine running Run after every merged
	// batch.
	OnProgress func(done, total int64) `json:"-"`
}

// Result is the output of Simulator.Run.
type Result struct {
	RunID      string        `json:"run_id"`
	Statistics Statistics    `json:"-"`
	Mode       Mode          `json:"mode"`
	Workers    int           `json:"workers"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Simulator splits a run into batches and plays them on a worker pool. Every
// batch owns its random stream, so statistics for a given request do not
// depend on the worker count.
type Simulator struct {
	workerCount int
	batchSize   int
	logger      *log.Logger
}

type Option func(*Simulator)

// WithWorkers sets the worker count; values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workerCount = n
		}
	}
}

// WithBatchSize sets how many rounds a worker plays per job.
func WithBatchSize(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSimulator creates a simulator with one worker per available CPU.
func NewSimulator(opts ...Option) *Simulator {
	s := &Simulator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   defaultBatchSize,
		logger:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulator) Workers() int {
	return s.workerCount
}

// batch is a half-open range [start, end) of 0-based round indexes.
type batch struct {
	start int
	end   int
}

// Run plays req.Rounds rounds. If ctx is cancelled or the request timeout
// fires, Run returns the statistics of the rounds completed so far, marked
// Interrupted, together with ErrInterrupted or ErrTimeout.
func (s *Simulator) Run(ctx context.Context, req Request) (*Result, error) {
	table, err := games.NewTable(req.Doors)
	if err != nil {
		return nil, err
	}
	if err := validateRounds(req.Rounds); err != nil {
		return nil, err
	}
	if req.Mode == "" {
		req.Mode = ModePCG
	}
	if req.Mode != ModePCG && req.Mode != ModeProvablyFair {
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, req.Mode)
	}

	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	runID := uuid.NewString()
	start := time.Now()
	logger := s.logger.With("run_id", runID)

	fields := []any{"doors", req.Doors, "rounds", req.Rounds, "mode", req.Mode, "workers", s.workerCount}
	if req.Mode == ModeProvablyFair {
		fields = append(fields,
			"server_hash", engine.HashSeed(req.Seeds.Server),
			"client_hash", engine.HashSeed(req.Seeds.Client))
	} else {
		fields = append(fields, "seed", req.Seed)
	}
	logger.Info("simulation started", fields...)

	jobs := make(chan batch, s.workerCount*2)
	tallies := make(chan *Tally, s.workerCount)

	var g errgroup.Group
	g.Go(func() error {
		return s.generateJobs(ctx, jobs, req.Rounds)
	})
	for i := 0; i < s.workerCount; i++ {
		w := &worker{
			id:      i,
			table:   table,
			req:     req,
			jobs:    jobs,
			tallies: tallies,
		}
		g.Go(func() error {
			return w.run(ctx)
		})
	}

	var waitErr error
	go func() {
		waitErr = g.Wait()
		close(tallies)
	}()

	total := NewTally(req.Doors)
	for t := range tallies {
		total.Merge(t)
		if req.OnProgress != nil {
			req.OnProgress(total.Games(), int64(req.Rounds))
		}
	}

	stats := total.Statistics()
	result := &Result{
		RunID:   runID,
		Mode:    req.Mode,
		Workers: s.workerCount,
		Elapsed: time.Since(start),
	}

	if total.Games() < int64(req.Rounds) {
		stats.Interrupted = true
		result.Statistics = stats

		reason := ErrInterrupted
		if errors.Is(waitErr, context.DeadlineExceeded) {
			reason = ErrTimeout
		}
		logger.Warn("simulation stopped early", "completed", total.Games(), "rounds", req.Rounds, "err", waitErr)

		if total.Games() == 0 {
			return nil, fmt.Errorf("%w: no round completed", reason)
		}
		return result, fmt.Errorf("%w after %d of %d rounds", reason, total.Games(), req.Rounds)
	}

	result.Statistics = stats
	logger.Info("simulation finished",
		"games", stats.TotalGames,
		"switch_rate", stats.SwitchRate,
		"stay_rate", stats.StayRate,
		"elapsed", result.Elapsed)
	return result, nil
}

// generateJobs slices [0, rounds) into batches.
func (s *Simulator) generateJobs(ctx context.Context, jobs chan<- batch, rounds int) error {
	defer close(jobs)

	for current := 0; current < rounds; {
		end := min(current+s.batchSize, rounds)
		select {
		case jobs <- batch{start: current, end: end}:
			current = end
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

type worker struct {
	id      int
	table   games.Table
	req     Request
	jobs    <-chan batch
	tallies chan<- *Tally

	floats []float64
	stream engine.FloatStream
}

func (w *worker) run(ctx context.Context) error {
	for {
		select {
		case job, ok := <-w.jobs:
			if !ok {
				return nil
			}
			if err := w.process(ctx, job); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// process plays one batch and always publishes what it completed, even when
// cancelled midway.
func (w *worker) process(ctx context.Context, job batch) error {
	tally := NewTally(w.table.Doors())
	defer func() {
		if tally.Games() > 0 {
			w.tallies <- tally
		}
	}()

	var pcg engine.Source
	if w.req.Mode == ModePCG {
		pcg = engine.NewPCGSource(w.req.Seed, uint64(job.start))
	}

	for round := job.start; round < job.end; round++ {
		if round&0xff == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if pcg != nil {
			tally.Add(w.table.Play(pcg))
			continue
		}

		nonce := uint64(round) + 1
		w.floats = engine.FloatsInto(w.floats, w.req.Seeds.Server, w.req.Seeds.Client, nonce, 0, games.RoundFloats)
		w.stream.Reset(w.floats)
		tally.Add(w.table.Play(&w.stream))
	}
	return nil
}
