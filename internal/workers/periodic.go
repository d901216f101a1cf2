// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/MKhiriev/go-chat-core/internal/logger"
)

// JobFunc is one run of a periodic job. now is the tick time.
type JobFunc func(ctx context.Context, now time.Time) error

// PeriodicJob calls a JobFunc on a ticker. Runs never overlap: a run that
// takes longer than the interval delays the next one.
type PeriodicJob struct {
	name     string
	interval time.Duration
	fn       JobFunc
	logger   *logger.Logger
}

// NewPeriodicJob returns a job running fn every interval. A non-positive
// interval falls back to one hour.
func NewPeriodicJob(name string, interval time.Duration, fn JobFunc, log *logger.Logger) *PeriodicJob {
	if interval <= 0 {
		interval = time.Hour
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PeriodicJob{name: name, interval: interval, fn: fn, logger: log}
}

func (j *PeriodicJob) Name() string {
	return j.name
}

// Run implements [Worker]. The first run happens one interval after start.
func (j *PeriodicJob) Run(ctx context.Context) {
	t := time.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			j.runOnce(ctx, now)
		}
	}
}

func (j *PeriodicJob) runOnce(ctx context.Context, now time.Time) {
	log := j.logger.With().Str("job", j.name).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("func", "*PeriodicJob.runOnce").Str("panic", fmt.Sprint(r)).Bytes("stack", debug.Stack()).Msg("job panicked")
		}
	}()

	if err := j.fn(log.WithContext(ctx), now); err != nil {
		log.Err(err).Str("func", "*PeriodicJob.runOnce").Msg("job run failed")
		return
	}
	log.Debug().Str("func", "*PeriodicJob.runOnce").Dur("took", time.Since(now)).Msg("job run finished")
}
