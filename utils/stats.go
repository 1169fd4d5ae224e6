package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Population           int
	Dying                int
	Restarts             int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one rendered generation. duration is the time spent since
// the previous frame.
func (s *Stats) Update(generation, population, dying int, duration time.Duration) {
	s.TotalGenerations = generation
	s.Population = population
	s.Dying = dying
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Density returns the alive fraction of a board with the given cell count.
func (s *Stats) Density(cells int) float64 {
	if cells <= 0 {
		return 0
	}
	return float64(s.Population) / float64(cells)
}

// Runtime reports how long the run has been going.
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
