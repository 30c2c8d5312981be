package store

import (
	"fmt"
	"strings"

	"RetailApp/app/models"
)

// ManualPayableInput registers a payable by hand (a bank slip, a tax, a
// fixed cost), outside the stock-entry flow.
type ManualPayableInput struct {
	Type        models.PayableType `json:"type"`
	Reference   string             `json:"reference"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	DueDate     string             `json:"due_date"` // YYYY-MM-DD
}

// PayableUpdate edits an existing payable.
type PayableUpdate struct {
	ID          string  `json:"id"`
	Supplier    string  `json:"supplier"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"due_date"` // YYYY-MM-DD
}

// AddManualPayable registers a manual payable. The supplier field stores
// the type label, suffixed with the reference when one was given.
func (s *Store) AddManualPayable(in ManualPayableInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(in.Description) == "" {
		return reject(ErrValidation, "Payable description is required.")
	}
	if in.Amount <= 0 {
		return reject(ErrInvalidAmount, "Amount must be greater than zero.")
	}
	due, ok := ParseDueDate(in.DueDate)
	if !ok {
		return reject(ErrInvalidDate, "Invalid due date. Use the YYYY-MM-DD format.")
	}

	supplier := in.Type.Label()
	if ref := strings.TrimSpace(in.Reference); ref != "" {
		supplier = fmt.Sprintf("%s - %s", supplier, ref)
	}

	payable := models.Payable{
		ID:          s.newID(),
		Supplier:    supplier,
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		DueDate:     due,
		Status:      models.FinancePending,
		CreatedAt:   s.now(),
	}
	s.payables = append(s.payables, payable)
	s.persist("create payable", s.db.CreatePayable(payable))
	s.notify(EntityPayables)
	return nil
}

// UpdatePayable edits a pending payable. Payables already marked paid are
// refused rather than silently mutated.
func (s *Store) UpdatePayable(in PayableUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(in.Description) == "" {
		return reject(ErrValidation, "Payable description is required.")
	}
	if in.Amount <= 0 {
		return reject(ErrInvalidAmount, "Amount must be greater than zero.")
	}
	due, ok := ParseDueDate(in.DueDate)
	if !ok {
		return reject(ErrInvalidDate, "Invalid due date. Use the YYYY-MM-DD format.")
	}

	for i := range s.payables {
		if s.payables[i].ID != in.ID {
			continue
		}
		if s.payables[i].Status == models.FinancePaid {
			return reject(ErrValidation, "A paid payable cannot be edited.")
		}
		if supplier := strings.TrimSpace(in.Supplier); supplier != "" {
			s.payables[i].Supplier = supplier
		}
		s.payables[i].Description = strings.TrimSpace(in.Description)
		s.payables[i].Amount = in.Amount
		s.payables[i].DueDate = due
		s.persist("update payable", s.db.UpdatePayable(s.payables[i]))
		s.notify(EntityPayables)
		return nil
	}
	return reject(ErrNotFound, "Payable not found.")
}

// MarkReceivablePaid transitions a receivable to paid and stamps the
// payment time. Calling it again re-stamps the timestamp; there is no
// guard against double payment.
func (s *Store) MarkReceivablePaid(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.receivables {
		if s.receivables[i].ID != id {
			continue
		}
		paidAt := s.now()
		s.receivables[i].Status = models.FinancePaid
		s.receivables[i].PaidAt = &paidAt
		s.persist("update receivable", s.db.UpdateReceivable(s.receivables[i]))
		s.notify(EntityReceivables)
		return nil
	}
	return reject(ErrNotFound, "Receivable not found.")
}

// MarkPayablePaid transitions a payable to paid, with the same re-stamp
// behavior as MarkReceivablePaid.
func (s *Store) MarkPayablePaid(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.payables {
		if s.payables[i].ID != id {
			continue
		}
		paidAt := s.now()
		s.payables[i].Status = models.FinancePaid
		s.payables[i].PaidAt = &paidAt
		s.persist("update payable", s.db.UpdatePayable(s.payables[i]))
		s.notify(EntityPayables)
		return nil
	}
	return reject(ErrNotFound, "Payable not found.")
}

// RemoveReceivable deletes a receivable unconditionally.
func (s *Store) RemoveReceivable(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.receivables[:0]
	for _, r := range s.receivables {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	s.receivables = kept
	s.persist("delete receivable", s.db.DeleteReceivable(id))
	s.notify(EntityReceivables)
	return nil
}

// RemovePayable deletes a payable unconditionally.
func (s *Store) RemovePayable(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.payables[:0]
	for _, p := range s.payables {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.payables = kept
	s.persist("delete payable", s.db.DeletePayable(id))
	s.notify(EntityPayables)
	return nil
}
