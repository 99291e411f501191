package worker

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/nurgulresearch/irec/internal/model"
)

// Validator validates one document on disk
type Validator interface {
	ValidateFile(ctx context.Context, path string, attachments []string) (*model.Report, error)
}

// Task is one document queued for validation
type Task struct {
	Index       int // Submission order, used to sort outcomes
	Path        string
	Attachments []string
}

// Outcome is the result of one task
type Outcome struct {
	Index   int
	Path    string
	Report  *model.Report
	Err     error
	Elapsed time.Duration
}

// Pool validates documents on a fixed number of workers. Outcomes are
// collected while tasks are still being submitted, so Submit never waits on
// an unread result.
type Pool struct {
	workers   int
	validator Validator
	tasks     chan Task
	outcomes  chan Outcome
	collector *OutcomeCollector
	wg        sync.WaitGroup
	collected chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool bound to ctx. Fewer than one worker means one.
func NewPool(ctx context.Context, validator Validator, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:   workers,
		validator: validator,
		tasks:     make(chan Task, workers*2),
		outcomes:  make(chan Outcome, workers*2),
		collector: NewOutcomeCollector(),
		collected: make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start launches the workers and the outcome collector
func (p *Pool) Start() {
	go func() {
		defer close(p.collected)
		for o := range p.outcomes {
			p.collector.Add(o)
		}
	}()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case task, ok := <-p.tasks:
			if !ok {
				return
			}
			p.outcomes <- p.run(task)
		}
	}
}

func (p *Pool) run(task Task) Outcome {
	start := time.Now()
	report, err := p.validator.ValidateFile(p.ctx, task.Path, task.Attachments)
	return Outcome{
		Index:   task.Index,
		Path:    task.Path,
		Report:  report,
		Err:     err,
		Elapsed: time.Since(start),
	}
}

// Submit queues a task. It returns false once the pool is cancelled.
func (p *Pool) Submit(task Task) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.tasks <- task:
		return true
	}
}

// Wait stops accepting tasks, waits for the queue to drain and returns the
// outcomes in submission order
func (p *Pool) Wait() []Outcome {
	close(p.tasks)
	p.finish()
	p.cancel()
	return p.collector.Sorted()
}

// Shutdown cancels in-flight work and returns whatever finished
func (p *Pool) Shutdown() []Outcome {
	p.cancel()
	p.finish()
	return p.collector.Sorted()
}

func (p *Pool) finish() {
	p.wg.Wait()
	p.closeOnce.Do(func() {
		close(p.outcomes)
	})
	<-p.collected
}

// OutcomeCollector gathers outcomes from concurrent workers
type OutcomeCollector struct {
	outcomes []Outcome
	mu       sync.Mutex
}

// NewOutcomeCollector creates an empty collector
func NewOutcomeCollector() *OutcomeCollector {
	return &OutcomeCollector{
		outcomes: make([]Outcome, 0),
	}
}

// Add records an outcome (thread-safe)
func (c *OutcomeCollector) Add(o Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outcomes = append(c.outcomes, o)
}

// Sorted returns a copy of the outcomes ordered by task index
func (c *OutcomeCollector) Sorted() []Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := slices.Clone(c.outcomes)
	slices.SortFunc(out, func(a, b Outcome) int {
		return a.Index - b.Index
	})
	return out
}
