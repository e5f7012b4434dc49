package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	PopulationHistory    []float64

	historyLimit int
}

// NewStats keeps up to historyLimit population samples, 0 means unlimited
func NewStats(historyLimit int) *Stats {
	return &Stats{StartTime: time.Now(), historyLimit: historyLimit}
}

func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}

	s.PopulationHistory = append(s.PopulationHistory, float64(population))
	if s.historyLimit > 0 && len(s.PopulationHistory) > s.historyLimit {
		s.PopulationHistory = s.PopulationHistory[len(s.PopulationHistory)-s.historyLimit:]
	}
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
