// Package scheduler owns the periodic side jobs: the weather poll and the
// daily digest. Neither job reads or writes task state directly; the digest
// receives a callback from app wiring.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	rcron "github.com/robfig/cron/v3"

	"github.com/NormalEdition/Planify/internal/utils"
)

const weatherPollSpec = "@every 10m"

type Service struct {
	weather    *utils.WeatherClient
	digestSpec string
	onDigest   func() error

	cron *rcron.Cron

	mu       sync.Mutex
	lastTemp string
}

// NewService builds the scheduler. weather may be nil (no poll registered);
// onDigest may be nil (no digest job registered).
func NewService(weather *utils.WeatherClient, digestSpec string, onDigest func() error) *Service {
	return &Service{
		weather:    weather,
		digestSpec: digestSpec,
		onDigest:   onDigest,
		lastTemp:   "N/A",
	}
}

func (s *Service) Start() error {
	s.cron = rcron.New(rcron.WithSeconds())

	if s.weather != nil {
		if _, err := s.cron.AddFunc(weatherPollSpec, s.pollWeather); err != nil {
			return fmt.Errorf("register weather poll: %w", err)
		}
	}
	if s.onDigest != nil && s.digestSpec != "" {
		_, err := s.cron.AddFunc(s.digestSpec, func() {
			log.Printf("[cron] executing daily digest")
			if err := s.onDigest(); err != nil {
				log.Printf("[cron] digest error: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("register digest job (%q): %w", s.digestSpec, err)
		}
	}

	s.cron.Start()
	log.Printf("[cron] started with %d jobs", len(s.cron.Entries()))

	// Prime the temperature right away instead of waiting out the first tick.
	if s.weather != nil {
		go s.pollWeather()
	}
	return nil
}

func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		log.Printf("[cron] stopped")
	}
}

func (s *Service) pollWeather() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	temp, err := s.weather.CurrentTemperature(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		log.Printf("[weather][err] %v", err)
		s.lastTemp = "N/A"
		return
	}
	s.lastTemp = fmt.Sprintf("%.1f°C", temp)
	log.Printf("[weather][ok] %s", s.lastTemp)
}

// Temperature returns the most recent reading, or "N/A" before the first
// successful poll.
func (s *Service) Temperature() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTemp
}
