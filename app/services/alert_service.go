package services

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"RetailApp/app/config"
	"RetailApp/app/models"
	"RetailApp/app/store"
)

// AlertType identifies what an alert is about.
type AlertType string

const (
	AlertLowStock      AlertType = "low_stock"
	AlertConsumption   AlertType = "customer_consumption"
	AlertReceivableDue AlertType = "receivable_due"
	AlertPayableDue    AlertType = "payable_due"
)

// AlertPriority orders alerts on screen.
type AlertPriority string

const (
	PriorityCritical AlertPriority = "critical"
	PriorityWarning  AlertPriority = "warning"
	PriorityInfo     AlertPriority = "info"
)

// Alert is one entry of the alert feed. Alerts are a read-only projection
// over the engine state; computing them never mutates anything.
type Alert struct {
	ID         string        `json:"id"`
	Type       AlertType     `json:"type"`
	Priority   AlertPriority `json:"priority"`
	Title      string        `json:"title"`
	Message    string        `json:"message"`
	Date       time.Time     `json:"date"`
	DaysLeft   int           `json:"days_left"`
	ProductID  string        `json:"product_id,omitempty"`
	CustomerID string        `json:"customer_id,omitempty"`
	RecordID   string        `json:"record_id,omitempty"`
	Read       bool          `json:"read"`
}

// AlertService computes the alert feed and tracks per-alert dismissed and
// read marks. Marks expire after 45 days so persistent conditions
// resurface.
type AlertService struct {
	mu    sync.Mutex
	store *store.Store
	cfg   *config.AppConfig
	state alertState
	now   func() time.Time
}

// NewAlertService creates the alert service and loads the persisted
// dismissed/read state.
func NewAlertService(st *store.Store, cfg *config.AppConfig) *AlertService {
	now := time.Now
	return &AlertService{
		store: st,
		cfg:   cfg,
		state: loadAlertState(now()),
		now:   now,
	}
}

// Compute builds the current alert feed: low stock, customer consumption
// forecasts and due financial records, critical first, most urgent first
// within the same priority. Dismissed alerts are filtered out.
func (s *AlertService) Compute() []Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	var alerts []Alert
	alerts = append(alerts, s.lowStockAlerts()...)
	alerts = append(alerts, s.consumptionAlerts()...)
	alerts = append(alerts, s.receivableAlerts()...)
	alerts = append(alerts, s.payableAlerts()...)

	filtered := alerts[:0]
	for _, a := range alerts {
		if hasMark(s.state.Dismissed, a.ID) {
			continue
		}
		a.Read = hasMark(s.state.Read, a.ID)
		filtered = append(filtered, a)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		pi, pj := priorityRank(filtered[i].Priority), priorityRank(filtered[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return filtered[i].DaysLeft < filtered[j].DaysLeft
	})
	return filtered
}

// Dismiss hides an alert. A dismissed alert reappears after 45 days if its
// condition still holds.
func (s *AlertService) Dismiss(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Dismissed = upsertMark(s.state.Dismissed, id, s.now())
	return saveAlertState(s.state)
}

// MarkRead flags an alert as read without hiding it.
func (s *AlertService) MarkRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hasMark(s.state.Read, id) {
		return nil
	}
	s.state.Read = upsertMark(s.state.Read, id, s.now())
	return saveAlertState(s.state)
}

// MarkAllRead flags every given alert as read.
func (s *AlertService) MarkAllRead(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, id := range ids {
		if !hasMark(s.state.Read, id) {
			s.state.Read = append(s.state.Read, alertMark{ID: id, At: now})
		}
	}
	return saveAlertState(s.state)
}

// DismissAll hides every given alert.
func (s *AlertService) DismissAll(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for _, id := range ids {
		s.state.Dismissed = upsertMark(s.state.Dismissed, id, now)
	}
	return saveAlertState(s.state)
}

func priorityRank(p AlertPriority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityWarning:
		return 1
	default:
		return 2
	}
}

// lowStockAlerts flags simple products at or below their minimum quantity.
func (s *AlertService) lowStockAlerts() []Alert {
	if !s.cfg.Alerts.LowStockEnabled {
		return nil
	}

	var alerts []Alert
	for _, p := range s.store.Products() {
		if p.Kind != models.KindSimple || p.StockQty > p.MinQty {
			continue
		}
		priority := PriorityWarning
		if p.StockQty == 0 {
			priority = PriorityCritical
		}
		alerts = append(alerts, Alert{
			ID:       fmt.Sprintf("stock_%s", p.ID),
			Type:     AlertLowStock,
			Priority: priority,
			Title:    "Low stock",
			Message: fmt.Sprintf("%q is running low. Current: %d | Minimum: %d",
				p.Name, p.StockQty, p.MinQty),
			Date:      s.now(),
			DaysLeft:  p.StockQty - p.MinQty,
			ProductID: p.ID,
		})
	}
	return alerts
}

// consumptionAlerts forecasts when each customer's last purchase of a
// tracked product runs out, based on the product's average consumption
// period.
func (s *AlertService) consumptionAlerts() []Alert {
	if !s.cfg.Alerts.ConsumptionEnabled {
		return nil
	}

	leadDays := s.cfg.Alerts.DueSoonDays
	sales := s.store.Sales()
	customers := s.store.Customers()

	customerByID := make(map[string]models.Customer, len(customers))
	for _, c := range customers {
		customerByID[c.ID] = c
	}

	var alerts []Alert
	for _, p := range s.store.Products() {
		if p.AvgConsumptionDays <= 0 {
			continue
		}

		// Latest sale containing this product, per customer.
		latest := make(map[string]models.Sale)
		for _, sale := range sales {
			found := false
			for _, item := range sale.Items {
				if item.ProductID == p.ID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
			if prev, ok := latest[sale.CustomerID]; !ok || sale.CreatedAt.After(prev.CreatedAt) {
				latest[sale.CustomerID] = sale
			}
		}

		for customerID, lastSale := range latest {
			customer, ok := customerByID[customerID]
			if !ok {
				continue
			}

			runOut := midnight(lastSale.CreatedAt).AddDate(0, 0, p.AvgConsumptionDays)
			daysLeft := daysBetween(midnight(s.now()), runOut)
			if daysLeft > leadDays {
				continue
			}

			priority := PriorityInfo
			if daysLeft <= 0 {
				priority = PriorityCritical
			} else if daysLeft <= 3 {
				priority = PriorityWarning
			}

			alerts = append(alerts, Alert{
				ID:       fmt.Sprintf("consumption_%s_%s", p.ID, customerID),
				Type:     AlertConsumption,
				Priority: priority,
				Title:    "Customer running out",
				Message: fmt.Sprintf("%s may be running out of %q. Last purchase: %s. Expected to run out: %s.",
					customer.Name, p.Name,
					store.FormatDate(lastSale.CreatedAt), store.FormatDate(runOut)),
				Date:       runOut,
				DaysLeft:   daysLeft,
				ProductID:  p.ID,
				CustomerID: customerID,
			})
		}
	}
	return alerts
}

// receivableAlerts flags unpaid receivables near or past their due date.
func (s *AlertService) receivableAlerts() []Alert {
	if !s.cfg.Alerts.DueDatesEnabled {
		return nil
	}

	leadDays := s.cfg.Alerts.DueSoonDays
	customers := s.store.Customers()
	customerName := func(id string) string {
		for _, c := range customers {
			if c.ID == id {
				return c.Name
			}
		}
		return "Customer"
	}

	var alerts []Alert
	for _, r := range s.store.Receivables() {
		if r.Status == models.FinancePaid {
			continue
		}
		daysLeft := daysBetween(midnight(s.now()), midnight(r.DueDate))
		if daysLeft > leadDays {
			continue
		}

		name := customerName(r.CustomerID)
		amount := s.formatAmount(r.Amount)

		var priority AlertPriority
		var message string
		switch {
		case daysLeft < 0:
			priority = PriorityCritical
			message = fmt.Sprintf("%s has an OVERDUE charge of %s (%dd ago)", name, amount, -daysLeft)
		case daysLeft == 0:
			priority = PriorityWarning
			message = fmt.Sprintf("%s has a charge of %s due TODAY", name, amount)
		default:
			priority = PriorityInfo
			message = fmt.Sprintf("%s has a charge of %s due in %dd", name, amount, daysLeft)
		}

		alerts = append(alerts, Alert{
			ID:         fmt.Sprintf("receivable_%s", r.ID),
			Type:       AlertReceivableDue,
			Priority:   priority,
			Title:      "Receivable due",
			Message:    message,
			Date:       r.DueDate,
			DaysLeft:   daysLeft,
			CustomerID: r.CustomerID,
			RecordID:   r.ID,
		})
	}
	return alerts
}

// payableAlerts flags unpaid payables near or past their due date.
func (s *AlertService) payableAlerts() []Alert {
	if !s.cfg.Alerts.DueDatesEnabled {
		return nil
	}

	leadDays := s.cfg.Alerts.DueSoonDays

	var alerts []Alert
	for _, p := range s.store.Payables() {
		if p.Status == models.FinancePaid {
			continue
		}
		daysLeft := daysBetween(midnight(s.now()), midnight(p.DueDate))
		if daysLeft > leadDays {
			continue
		}

		amount := s.formatAmount(p.Amount)

		var priority AlertPriority
		var message string
		switch {
		case daysLeft < 0:
			priority = PriorityCritical
			message = fmt.Sprintf("Bill for %s of %s is OVERDUE (%dd ago)", p.Supplier, amount, -daysLeft)
		case daysLeft == 0:
			priority = PriorityWarning
			message = fmt.Sprintf("Bill for %s of %s is due TODAY", p.Supplier, amount)
		default:
			priority = PriorityInfo
			message = fmt.Sprintf("Bill for %s of %s is due in %dd", p.Supplier, amount, daysLeft)
		}

		alerts = append(alerts, Alert{
			ID:       fmt.Sprintf("payable_%s", p.ID),
			Type:     AlertPayableDue,
			Priority: priority,
			Title:    "Payable due",
			Message:  message,
			Date:     p.DueDate,
			DaysLeft: daysLeft,
			RecordID: p.ID,
		})
	}
	return alerts
}

func (s *AlertService) formatAmount(v float64) string {
	switch s.cfg.Business.CurrencyCode {
	case "BRL":
		return fmt.Sprintf("R$ %.2f", v)
	case "USD":
		return fmt.Sprintf("$ %.2f", v)
	default:
		return fmt.Sprintf("%s %.2f", s.cfg.Business.CurrencyCode, v)
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysBetween counts whole calendar days from a to b, negative when b is
// in the past.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Round(24*time.Hour) / (24 * time.Hour))
}
