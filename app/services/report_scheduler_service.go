package services

import (
	"fmt"
	"log"
	"time"

	"RetailApp/app/config"
)

// ReportSchedulerService runs the daily Google Sheets export at the
// configured time of day.
type ReportSchedulerService struct {
	cfg      *config.AppConfig
	sheets   *SheetsService
	ticker   *time.Ticker
	stopChan chan bool
	running  bool
}

func NewReportSchedulerService(cfg *config.AppConfig, sheets *SheetsService) *ReportSchedulerService {
	return &ReportSchedulerService{
		cfg:      cfg,
		sheets:   sheets,
		stopChan: make(chan bool),
	}
}

// Start begins the scheduler
func (s *ReportSchedulerService) Start() error {
	if s.running {
		return fmt.Errorf("scheduler is already running")
	}

	if !s.cfg.Sheets.Enabled {
		log.Println("Google Sheets export is disabled")
		return nil
	}

	s.running = true
	go s.run()

	log.Println("Report scheduler started")
	return nil
}

// Stop stops the scheduler
func (s *ReportSchedulerService) Stop() {
	if !s.running {
		return
	}

	s.stopChan <- true
	s.running = false

	if s.ticker != nil {
		s.ticker.Stop()
	}

	log.Println("Report scheduler stopped")
}

// run is the main scheduler loop
func (s *ReportSchedulerService) run() {
	for {
		duration := s.timeUntilDailySync(s.cfg.Sheets.SyncTime)
		log.Printf("Next Google Sheets sync scheduled in %v", duration)

		s.ticker = time.NewTicker(duration)

		select {
		case <-s.ticker.C:
			log.Println("Starting scheduled Google Sheets sync...")
			if err := s.executeSync(); err != nil {
				log.Printf("Scheduled sync failed: %v", err)
			} else {
				log.Println("Scheduled sync completed successfully")
			}
			s.ticker.Stop()

		case <-s.stopChan:
			log.Println("Scheduler stop signal received")
			if s.ticker != nil {
				s.ticker.Stop()
			}
			return
		}
	}
}

// timeUntilDailySync calculates duration until the configured daily sync time
func (s *ReportSchedulerService) timeUntilDailySync(syncTime string) time.Duration {
	now := time.Now()

	targetTime, err := time.Parse("15:04", syncTime)
	if err != nil {
		log.Printf("Invalid sync time format: %s, using 21:00", syncTime)
		targetTime, _ = time.Parse("15:04", "21:00")
	}

	target := time.Date(
		now.Year(), now.Month(), now.Day(),
		targetTime.Hour(), targetTime.Minute(),
		0, 0, now.Location(),
	)

	// Already passed today, schedule for tomorrow
	if now.After(target) {
		target = target.Add(24 * time.Hour)
	}

	return target.Sub(now)
}

// executeSync exports the completed previous day.
func (s *ReportSchedulerService) executeSync() error {
	yesterday := time.Now().AddDate(0, 0, -1)
	report := s.sheets.GenerateDailyReport(yesterday)
	if err := s.sheets.SendReport(report); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

// Restart stops and starts the scheduler (useful after config changes)
func (s *ReportSchedulerService) Restart() error {
	s.Stop()
	time.Sleep(1 * time.Second)
	return s.Start()
}
