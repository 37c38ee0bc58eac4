package ecs

import (
	"context"
	"time"
)

// SchedulerStats provides statistics about frame execution.
type SchedulerStats struct {
	PhaseCount      int
	TotalExecutions int64
	Phases          []PhaseStats
}

// PhaseStats provides execution statistics for a single frame phase.
type PhaseStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type phase struct {
	run   func()
	stats *phaseStatsInternal
}

// Scheduler drives a runtime's non-render frame phases: update, post-update
// and clean. Rendering is left to the host's draw callback.
type Scheduler struct {
	runtime *Runtime
	phases  []phase
}

// NewScheduler creates a new scheduler for the given runtime.
func NewScheduler(rt *Runtime) *Scheduler {
	s := &Scheduler{runtime: rt}
	s.addPhase("Update", rt.Update)
	s.addPhase("PostUpdate", rt.PostUpdate)
	s.addPhase("Clean", rt.Clean)
	return s
}

func (s *Scheduler) addPhase(name string, run func()) {
	s.phases = append(s.phases, phase{
		run: run,
		stats: &phaseStatsInternal{
			name:        name,
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

// Runtime returns the driven runtime.
func (s *Scheduler) Runtime() *Runtime {
	return s.runtime
}

// Once advances the runtime by one frame of dt seconds. The runtime is created
// first if that has not happened yet. Any error recorded through Runtime.Fail
// during the frame is returned.
func (s *Scheduler) Once(dt float64) error {
	rt := s.runtime
	if !rt.Created() {
		rt.Create()
	}
	rt.Advance(dt)

	for _, p := range s.phases {
		start := time.Now()
		p.run()
		duration := time.Since(start)

		stats := p.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	return rt.Err()
}

// Run advances the runtime at the given interval until the context is
// cancelled or a frame fails.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// GetStats returns statistics about phase execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		PhaseCount: len(s.phases),
		Phases:     make([]PhaseStats, len(s.phases)),
	}

	var totalExecs int64
	for i, p := range s.phases {
		internal := p.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Phases[i] = PhaseStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
