package outlet

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Task is a periodic background task owned by a plugin. Tasks run once as
// soon as the gateway reports ready and then on every Interval tick, until
// the bot shuts down.
type Task struct {
	Name     string
	Interval time.Duration

	// CancelPrevious cancels a still-running previous invocation before the
	// next one starts
	CancelPrevious bool

	Run func(context.Context) error
}

type taskRunner struct {
	mu     sync.Mutex
	tasks  []Task
	cancel context.CancelFunc
	wg     sync.WaitGroup

	log *zerolog.Logger
}

func newTaskRunner(log *zerolog.Logger) *taskRunner {
	return &taskRunner{log: log}
}

func (tr *taskRunner) Add(t Task) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	tr.tasks = append(tr.tasks, t)
}

// Start launches every registered task. A set still running from an earlier
// ready event is cancelled first; the gateway fires ready again after a
// reconnect.
func (tr *taskRunner) Start(ctx context.Context) {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if tr.cancel != nil {
		tr.log.Info().Msg("cancelling running background tasks")
		tr.cancel()
		tr.wg.Wait()
	}

	ctx, tr.cancel = context.WithCancel(ctx)

	for _, t := range tr.tasks {
		tr.log.Debug().Str("task", t.Name).Msg("starting background task")
		tr.wg.Add(1)
		go tr.loop(ctx, t)
	}
}

// Stop cancels all running tasks and waits for them to return.
func (tr *taskRunner) Stop() {
	tr.mu.Lock()
	if tr.cancel != nil {
		tr.cancel()
		tr.cancel = nil
	}
	tr.mu.Unlock()

	tr.wg.Wait()
}

func (tr *taskRunner) loop(ctx context.Context, t Task) {
	defer tr.wg.Done()

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()

	var prev context.CancelFunc

	run := func() {
		runCtx, cancel := context.WithCancel(ctx)

		if t.CancelPrevious {
			if prev != nil {
				prev()
			}
			prev = cancel
		}

		tr.wg.Add(1)
		go func() {
			defer tr.wg.Done()
			defer cancel()

			if err := t.Run(runCtx); err != nil {
				tr.log.Error().Err(err).Str("task", t.Name).Msg("background task failed")
			}
		}()
	}

	run()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
