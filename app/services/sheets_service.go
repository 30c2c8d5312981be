package services

import (
	"context"
	"fmt"
	"time"

	"RetailApp/app/config"
	"RetailApp/app/models"
	"RetailApp/app/store"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsService exports daily sales summaries to a Google Sheets
// spreadsheet using a service account.
type SheetsService struct {
	store *store.Store
	cfg   *config.AppConfig
}

func NewSheetsService(st *store.Store, cfg *config.AppConfig) *SheetsService {
	return &SheetsService{store: st, cfg: cfg}
}

// DailyReport is one spreadsheet row: the sales summary of a calendar day.
type DailyReport struct {
	Date          string  `json:"date"`
	TotalSales    float64 `json:"total_sales"`
	SalesCount    int     `json:"sales_count"`
	ItemsSold     int     `json:"items_sold"`
	AverageTicket float64 `json:"average_ticket"`
	Receivables   float64 `json:"receivables_open"`
}

// TestConnection validates the configured credentials against the
// spreadsheet.
func (s *SheetsService) TestConnection() error {
	if s.cfg.Sheets.ServiceAccountKey == "" || s.cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("missing credentials or spreadsheet ID")
	}

	ctx := context.Background()
	srv, err := s.newService(ctx)
	if err != nil {
		return err
	}

	if _, err := srv.Spreadsheets.Get(s.cfg.Sheets.SpreadsheetID).Do(); err != nil {
		return fmt.Errorf("unable to access spreadsheet: %w", err)
	}
	return nil
}

// GenerateDailyReport summarizes the sales of one calendar day from the
// engine state.
func (s *SheetsService) GenerateDailyReport(date time.Time) *DailyReport {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	report := &DailyReport{
		Date:       store.FormatDate(date),
		TotalSales: s.store.SaleTotalOn(date),
	}

	for _, sale := range s.store.Sales() {
		if sale.CreatedAt.Before(startOfDay) || !sale.CreatedAt.Before(endOfDay) {
			continue
		}
		report.SalesCount++
		for _, item := range sale.Items {
			report.ItemsSold += item.Quantity
		}
	}
	if report.SalesCount > 0 {
		report.AverageTicket = store.RoundMoney(report.TotalSales / float64(report.SalesCount))
	}

	var open float64
	for _, r := range s.store.Receivables() {
		if r.Status != models.FinancePaid {
			open += r.Amount
		}
	}
	report.Receivables = store.RoundMoney(open)

	return report
}

// SendReport writes a daily report to the spreadsheet: the row for the
// same date is updated in place, new dates are appended.
func (s *SheetsService) SendReport(report *DailyReport) error {
	if !s.cfg.Sheets.Enabled {
		return fmt.Errorf("Google Sheets integration is disabled")
	}
	if s.cfg.Sheets.ServiceAccountKey == "" || s.cfg.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("missing credentials or spreadsheet ID")
	}

	ctx := context.Background()
	srv, err := s.newService(ctx)
	if err != nil {
		return err
	}

	if err := s.ensureHeaders(srv); err != nil {
		return fmt.Errorf("failed to ensure headers: %w", err)
	}

	row := []interface{}{
		report.Date,
		report.TotalSales,
		report.SalesCount,
		report.ItemsSold,
		report.AverageTicket,
		report.Receivables,
	}
	valueRange := &sheets.ValueRange{Values: [][]interface{}{row}}

	rowIndex, err := s.findExistingRowIndex(srv, report.Date)
	if err != nil {
		return fmt.Errorf("failed to check existing row: %w", err)
	}

	if rowIndex > 0 {
		sheetRange := fmt.Sprintf("%s!A%d:F%d", s.cfg.Sheets.SheetName, rowIndex, rowIndex)
		_, err = srv.Spreadsheets.Values.Update(s.cfg.Sheets.SpreadsheetID, sheetRange, valueRange).
			ValueInputOption("USER_ENTERED").
			Do()
		if err != nil {
			return fmt.Errorf("unable to update data: %w", err)
		}
	} else {
		sheetRange := fmt.Sprintf("%s!A:F", s.cfg.Sheets.SheetName)
		_, err = srv.Spreadsheets.Values.Append(s.cfg.Sheets.SpreadsheetID, sheetRange, valueRange).
			ValueInputOption("USER_ENTERED").
			Do()
		if err != nil {
			return fmt.Errorf("unable to append data: %w", err)
		}
	}

	return nil
}

// SyncNow generates and sends today's report.
func (s *SheetsService) SyncNow() error {
	if !s.cfg.Sheets.Enabled {
		return fmt.Errorf("Google Sheets integration is disabled")
	}
	report := s.GenerateDailyReport(time.Now())
	if err := s.SendReport(report); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

func (s *SheetsService) newService(ctx context.Context) (*sheets.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx,
		[]byte(s.cfg.Sheets.ServiceAccountKey), sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	return srv, nil
}

// findExistingRowIndex finds the 1-indexed row holding the given date,
// or -1 when absent.
func (s *SheetsService) findExistingRowIndex(srv *sheets.Service, date string) (int, error) {
	sheetRange := fmt.Sprintf("%s!A:A", s.cfg.Sheets.SheetName)
	resp, err := srv.Spreadsheets.Values.Get(s.cfg.Sheets.SpreadsheetID, sheetRange).Do()
	if err != nil {
		return -1, err
	}

	for i, row := range resp.Values {
		if len(row) > 0 {
			if dateStr, ok := row[0].(string); ok && dateStr == date {
				return i + 1, nil
			}
		}
	}
	return -1, nil
}

// ensureHeaders writes the header row when the sheet is empty.
func (s *SheetsService) ensureHeaders(srv *sheets.Service) error {
	sheetRange := fmt.Sprintf("%s!A1:F1", s.cfg.Sheets.SheetName)
	resp, err := srv.Spreadsheets.Values.Get(s.cfg.Sheets.SpreadsheetID, sheetRange).Do()
	if err != nil {
		return err
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) < 6 {
		headers := []interface{}{
			"date",
			"total_sales",
			"sales_count",
			"items_sold",
			"average_ticket",
			"receivables_open",
		}
		valueRange := &sheets.ValueRange{Values: [][]interface{}{headers}}

		_, err := srv.Spreadsheets.Values.Update(s.cfg.Sheets.SpreadsheetID, sheetRange, valueRange).
			ValueInputOption("USER_ENTERED").
			Do()
		return err
	}

	return nil
}
