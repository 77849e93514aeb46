package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/wanomaly/weather-anomaly/internal/analysis"
	"github.com/wanomaly/weather-anomaly/internal/dataset"
	"github.com/wanomaly/weather-anomaly/internal/season"
	"github.com/wanomaly/weather-anomaly/internal/weather"
)

// Monitor periodically fetches the live temperature for the configured
// cities and logs their classification against the most recently uploaded
// dataset.
type Monitor struct {
	scheduler *gocron.Scheduler
	store     *dataset.Store
	fetcher   weather.Fetcher
	clock     season.Clock
	cities    []string
	interval  time.Duration
}

// New creates a new Monitor.
func New(cities []string, interval time.Duration, store *dataset.Store, fetcher weather.Fetcher, clock season.Clock) *Monitor {
	s := gocron.NewScheduler(time.UTC)
	return &Monitor{
		scheduler: s,
		store:     store,
		fetcher:   fetcher,
		clock:     clock,
		cities:    cities,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (m *Monitor) Start() error {
	if len(m.cities) == 0 {
		log.Println("monitor: no cities configured; nothing to schedule")
		return nil
	}

	minutes := int(m.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := m.scheduler.Every(minutes).Minutes().Do(func() {
		ds, err := m.store.Latest()
		if err != nil {
			log.Println("monitor: no dataset uploaded yet; skipping run")
			return
		}

		var wg sync.WaitGroup
		for _, city := range m.cities {
			city := city
			wg.Add(1)
			go func() {
				defer wg.Done()

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				m.checkCity(ctx, ds, city)
			}()
		}
		wg.Wait()
	})
	if err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

func (m *Monitor) checkCity(ctx context.Context, ds *dataset.Dataset, city string) {
	baselines, err := analysis.ComputeBaselines(ds.Observations, city)
	if err != nil {
		log.Printf("monitor: %s: %v", city, err)
		return
	}

	temperature, err := m.fetcher.FetchTemperature(ctx, city)
	if err != nil {
		log.Printf("monitor: %s: fetch failed: %v", city, err)
		return
	}

	result, err := analysis.Classify(temperature, city, baselines, m.clock)
	if err != nil {
		log.Printf("monitor: %s: %v", city, err)
		return
	}

	log.Printf("monitor: %s: %.1f°C is %s for %s (bounds [%.1f, %.1f])",
		city, result.Temperature, result.Verdict, result.Season,
		result.LowerBound, result.UpperBound)
}

// Stop stops the scheduler and cancels any future jobs.
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}
