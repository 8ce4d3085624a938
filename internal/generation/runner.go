package generation

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrInProgress задача того же типа для этого чата ещё выполняется
var ErrInProgress = errors.New("generation already in progress")

// Outcome итог задачи, доставляется не более одного раза
type Outcome struct {
	Request Request
	Result  Result
	Err     error
}

// Observer получает длительность и результат каждой задачи
type Observer interface {
	ObserveGeneration(kind string, seconds float64, err error)
}

type jobKey struct {
	owner int64
	kind  Kind
}

type job struct {
	cancel context.CancelFunc
}

// Runner запускает генерации в фоне, не более одной на (чат, тип)
type Runner struct {
	gen      Generator
	logger   *zap.Logger
	observer Observer

	mu   sync.Mutex
	jobs map[jobKey]*job
	wg   sync.WaitGroup
}

func NewRunner(gen Generator, observer Observer, logger *zap.Logger) *Runner {
	return &Runner{
		gen:      gen,
		logger:   logger,
		observer: observer,
		jobs:     make(map[jobKey]*job),
	}
}

// Start запускает задачу. done вызывается из горутины задачи,
// если задачу не отменили через Cancel.
func (r *Runner) Start(ctx context.Context, req Request, done func(Outcome)) error {
	key := jobKey{owner: req.Owner, kind: req.Kind}

	r.mu.Lock()
	if _, busy := r.jobs[key]; busy {
		r.mu.Unlock()
		return ErrInProgress
	}
	jobCtx, cancel := context.WithCancel(ctx)
	j := &job{cancel: cancel}
	r.jobs[key] = j
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer cancel()

		started := time.Now()
		res, err := r.gen.Generate(jobCtx, req)
		if r.observer != nil {
			r.observer.ObserveGeneration(string(req.Kind), time.Since(started).Seconds(), err)
		}

		r.mu.Lock()
		current, ok := r.jobs[key]
		if ok && current == j {
			delete(r.jobs, key)
		}
		r.mu.Unlock()

		// Задачу отменили: результат никому не нужен
		if !ok || current != j {
			r.logger.Debug("Generation discarded",
				zap.Int64("owner", req.Owner),
				zap.String("kind", string(req.Kind)),
			)
			return
		}

		if err != nil {
			r.logger.Warn("Generation failed",
				zap.Int64("owner", req.Owner),
				zap.String("kind", string(req.Kind)),
				zap.Error(err),
			)
		}

		if done != nil {
			done(Outcome{Request: req, Result: res, Err: err})
		}
	}()

	return nil
}

// Running показывает, выполняется ли задача данного типа для чата
func (r *Runner) Running(owner int64, kind Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.jobs[jobKey{owner: owner, kind: kind}]
	return ok
}

// Cancel отменяет все задачи чата и возвращает их количество
func (r *Runner) Cancel(owner int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cancelled := 0
	for key, j := range r.jobs {
		if key.owner == owner {
			j.cancel()
			delete(r.jobs, key)
			cancelled++
		}
	}
	return cancelled
}

// Shutdown отменяет все задачи и ждёт завершения горутин
func (r *Runner) Shutdown() {
	r.mu.Lock()
	for key, j := range r.jobs {
		j.cancel()
		delete(r.jobs, key)
	}
	r.mu.Unlock()

	r.wg.Wait()
}
