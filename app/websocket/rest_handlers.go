package websocket

import (
	"encoding/json"
	"net/http"
	"time"
)

// Read-only REST snapshots for companion apps. Mutations stay on the
// desktop side; a phone gets to look, not touch.

func (s *Server) registerRESTHandlers(mux *http.ServeMux) {
	if s.store == nil {
		return
	}
	mux.HandleFunc("/api/products", s.handleGetProducts)
	mux.HandleFunc("/api/customers", s.handleGetCustomers)
	mux.HandleFunc("/api/sales/today", s.handleGetTodaySales)
	mux.HandleFunc("/api/stock-moves", s.handleGetStockMoves)
	mux.HandleFunc("/api/receivables", s.handleGetReceivables)
	mux.HandleFunc("/api/payables", s.handleGetPayables)
	if s.alerts != nil {
		mux.HandleFunc("/api/alerts", s.handleGetAlerts)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func (s *Server) handleGetProducts(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.store.Products())
}

func (s *Server) handleGetCustomers(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.store.Customers())
}

func (s *Server) handleGetTodaySales(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	sales := s.store.Sales()
	today := sales[:0]
	for _, sale := range sales {
		if !sale.CreatedAt.Before(start) {
			today = append(today, sale)
		}
	}

	writeJSON(w, map[string]interface{}{
		"total": s.store.SaleTotalOn(now),
		"count": len(today),
		"sales": today,
	})
}

func (s *Server) handleGetStockMoves(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.store.StockMoves())
}

func (s *Server) handleGetReceivables(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.store.Receivables())
}

func (s *Server) handleGetPayables(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.store.Payables())
}

func (s *Server) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, s.alerts.Compute())
}
