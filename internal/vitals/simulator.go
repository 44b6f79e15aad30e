package vitals

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"care-companion/internal/platform/logger"
)

// Umbrales de alerta. Fuera de estos rangos el snapshot se marca en alerta.
const (
	minHeartRate = 50
	maxHeartRate = 120
	minSpO2      = 92
)

// Snapshot es la última lectura simulada de signos vitales.
type Snapshot struct {
	HeartRate   int       `json:"heart_rate"`
	SpO2        int       `json:"spo2"`
	Temperature float64   `json:"temperature"`
	Alert       bool      `json:"alert"`
	Timestamp   time.Time `json:"timestamp"`
}

// Simulator produce lecturas periódicas y retiene sólo la más reciente.
type Simulator struct {
	interval time.Duration
	log      logger.Logger
	rnd      *rand.Rand

	mu     sync.RWMutex
	latest Snapshot
}

func NewSimulator(interval time.Duration, log logger.Logger) *Simulator {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &Simulator{
		interval: interval,
		log:      log,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.latest = s.read(time.Now())
	return s
}

// Run genera lecturas hasta que el contexto se cancele.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			snap := s.read(now)

			s.mu.Lock()
			s.latest = snap
			s.mu.Unlock()

			if snap.Alert {
				s.log.Warn("lectura de vitales fuera de rango", map[string]any{
					"heart_rate": snap.HeartRate,
					"spo2":       snap.SpO2,
				})
			}
		}
	}
}

// Latest devuelve la lectura más reciente.
func (s *Simulator) Latest() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Simulator) read(now time.Time) Snapshot {
	snap := Snapshot{
		HeartRate:   65 + s.rnd.Intn(25),
		SpO2:        95 + s.rnd.Intn(5),
		Temperature: 36.2 + s.rnd.Float64()*1.2,
		Timestamp:   now,
	}

	// Anomalía ocasional para que el panel tenga algo que mostrar.
	if s.rnd.Intn(20) == 0 {
		if s.rnd.Intn(2) == 0 {
			snap.HeartRate = 125 + s.rnd.Intn(20)
		} else {
			snap.SpO2 = 85 + s.rnd.Intn(6)
		}
	}

	snap.Alert = snap.HeartRate < minHeartRate ||
		snap.HeartRate > maxHeartRate ||
		snap.SpO2 < minSpO2
	return snap
}
