package store

import (
	"fmt"
	"strings"
	"time"

	"RetailApp/app/models"
)

// SaleLine is one requested line of a sale. Lines may repeat a product;
// the engine coalesces duplicates before validating.
type SaleLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// InstallmentPlan configures a credit sale. Count 1 uses the explicit
// FirstDueDate; larger counts use DueDay as the day-of-month for every
// installment.
type InstallmentPlan struct {
	Count        int     `json:"count"` // 1, 3, 4 or 6
	DownPayment  float64 `json:"down_payment"`
	FirstDueDate string  `json:"first_due_date,omitempty"` // YYYY-MM-DD, single installment only
	DueDay       int     `json:"due_day,omitempty"`        // 1..31, multi-installment only
}

// SalePayload is the full input of RegisterSale.
type SalePayload struct {
	CustomerID   string             `json:"customer_id"`
	Lines        []SaleLine         `json:"lines"`
	Mode         models.PaymentMode `json:"mode"`
	Installments *InstallmentPlan   `json:"installments,omitempty"`
}

// resolvedLine is a coalesced sale line with its product and the unit
// price snapshotted at registration time.
type resolvedLine struct {
	product   models.Product
	quantity  int
	unitPrice float64
}

// deduction accumulates the flattened per-simple-product quantity that a
// sale removes from stock, after expanding bundle lines into components.
type deduction struct {
	productID string
	quantity  int
}

// RegisterSale runs the full sale transaction: coalesce and validate the
// lines, expand bundles into base-product deductions, check stock, compute
// the total, then - only after every check has passed - deduct stock,
// append the stock-move ledger entries, create the immutable sale record
// and generate the installment receivables. A rejected sale leaves no
// partial effects behind.
func (s *Store) RegisterSale(payload SalePayload) (models.Sale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(payload.Lines) == 0 {
		return models.Sale{}, reject(ErrEmptyOrder, "Add at least one item to the sale.")
	}

	// Coalesce duplicate product lines, preserving first-seen order.
	quantities := make(map[string]int, len(payload.Lines))
	order := make([]string, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		if line.Quantity <= 0 {
			return models.Sale{}, reject(ErrInvalidQuantity, "Quantity must be greater than zero.")
		}
		if _, seen := quantities[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	lines := make([]resolvedLine, 0, len(order))
	for _, id := range order {
		idx, ok := s.findProduct(id)
		if !ok {
			return models.Sale{}, reject(ErrUnknownProduct, "One of the selected products does not exist.")
		}
		lines = append(lines, resolvedLine{
			product:   s.products[idx],
			quantity:  quantities[id],
			unitPrice: s.products[idx].SalePrice,
		})
	}

	// Expand bundle lines into base-product deductions so a sale holding
	// both a bundle and one of its raw components sums into a single
	// deduction per simple product.
	deductions, err := s.expandDeductions(lines)
	if err != nil {
		return models.Sale{}, err
	}
	for _, d := range deductions {
		idx, _ := s.findProduct(d.productID)
		if s.products[idx].StockQty < d.quantity {
			return models.Sale{}, reject(ErrInsufficientStock, "Insufficient stock for %s.", s.products[idx].Name)
		}
	}

	// The total uses the original lines - a bundle is priced by its own
	// sale price, never by the sum of its components.
	var total float64
	for _, line := range lines {
		total += line.unitPrice * float64(line.quantity)
	}
	total = RoundMoney(total)

	var downPayment float64
	var receivables []models.Receivable
	if payload.Mode == models.PaymentInstallment {
		plan := payload.Installments
		if plan == nil {
			return models.Sale{}, reject(ErrMissingInstallmentConfig, "Installment configuration is required for credit sales.")
		}
		receivables, downPayment, err = s.buildReceivables(payload.CustomerID, lines, total, plan)
		if err != nil {
			return models.Sale{}, err
		}
	}

	// All validations passed; mutate state.
	for _, d := range deductions {
		idx, _ := s.findProduct(d.productID)
		s.products[idx].StockQty -= d.quantity
		s.persist("update stock", s.db.UpdateStock(d.productID, s.products[idx].StockQty))
	}

	moves := s.buildSaleMoves(lines)
	s.stockMoves = append(s.stockMoves, moves...)
	s.persist("create stock moves", s.db.CreateStockMoves(moves))

	sale := models.Sale{
		ID:          s.newID(),
		CustomerID:  payload.CustomerID,
		Total:       total,
		DownPayment: downPayment,
		PaymentMode: payload.Mode,
		CreatedAt:   s.now(),
	}
	for _, line := range lines {
		sale.Items = append(sale.Items, models.SaleItem{
			SaleID:    sale.ID,
			ProductID: line.product.ID,
			Quantity:  line.quantity,
			UnitPrice: line.unitPrice,
		})
	}
	s.sales = append(s.sales, sale)
	s.persist("create sale", s.db.CreateSale(sale))

	if len(receivables) > 0 {
		s.receivables = append(s.receivables, receivables...)
		s.persist("create receivables", s.db.CreateReceivables(receivables))
		s.notify(EntityReceivables)
	}

	s.notify(EntityProducts)
	s.notify(EntityStockMoves)
	s.notify(EntitySales)
	return sale, nil
}

// expandDeductions flattens the resolved lines into one accumulated
// deduction per simple product. Caller must hold the mutex.
func (s *Store) expandDeductions(lines []resolvedLine) ([]deduction, error) {
	index := make(map[string]int)
	var out []deduction

	add := func(productID string, qty int) {
		if i, ok := index[productID]; ok {
			out[i].quantity += qty
			return
		}
		index[productID] = len(out)
		out = append(out, deduction{productID: productID, quantity: qty})
	}

	for _, line := range lines {
		if line.product.Kind == models.KindSimple {
			add(line.product.ID, line.quantity)
			continue
		}
		for _, item := range line.product.KitItems {
			add(item.ProductID, item.Quantity*line.quantity)
		}
	}

	for _, d := range out {
		idx, ok := s.findProduct(d.productID)
		if !ok || s.products[idx].Kind != models.KindSimple {
			return nil, reject(ErrInvalidComponent, "Invalid base product in the sale composition.")
		}
	}
	return out, nil
}

// buildSaleMoves creates the outbound ledger entries for a sale: one per
// simple line, one per component of each bundle line.
func (s *Store) buildSaleMoves(lines []resolvedLine) []models.StockMove {
	var moves []models.StockMove
	for _, line := range lines {
		if line.product.Kind == models.KindSimple {
			moves = append(moves, models.StockMove{
				ID:        s.newID(),
				ProductID: line.product.ID,
				Direction: models.MoveOut,
				Quantity:  line.quantity,
				Origin:    "Sale",
				CreatedAt: s.now(),
			})
			continue
		}
		for _, item := range line.product.KitItems {
			moves = append(moves, models.StockMove{
				ID:        s.newID(),
				ProductID: item.ProductID,
				Direction: models.MoveOut,
				Quantity:  item.Quantity * line.quantity,
				Origin:    fmt.Sprintf("Sale of kit %s", line.product.Name),
				CreatedAt: s.now(),
			})
		}
	}
	return moves
}

// buildReceivables validates the installment plan and produces the
// receivable schedule. The financed amount is split in integer cents with
// the remainder front-loaded, so the installments always sum exactly to
// the financed total.
func (s *Store) buildReceivables(customerID string, lines []resolvedLine, total float64, plan *InstallmentPlan) ([]models.Receivable, float64, error) {
	switch plan.Count {
	case 1, 3, 4, 6:
	default:
		return nil, 0, reject(ErrValidation, "Installment count must be 1, 3, 4 or 6.")
	}

	if plan.DownPayment < 0 {
		return nil, 0, reject(ErrDownPaymentExceedsTotal, "Down payment cannot be negative.")
	}
	downPayment := RoundMoney(plan.DownPayment)
	if downPayment > total {
		return nil, 0, reject(ErrDownPaymentExceedsTotal, "Down payment cannot exceed the sale total.")
	}

	financed := RoundMoney(total - downPayment)
	if financed == 0 {
		// Fully paid up front; a credit sale with no receivables is valid.
		return nil, downPayment, nil
	}

	names := make([]string, len(lines))
	for i, line := range lines {
		names[i] = line.product.Name
	}
	saleDesc := strings.Join(names, ", ")

	if plan.Count == 1 {
		if plan.FirstDueDate == "" {
			return nil, 0, reject(ErrMissingDueDate, "A due date is required for a single installment.")
		}
		due, ok := ParseDueDate(plan.FirstDueDate)
		if !ok {
			return nil, 0, reject(ErrInvalidDate, "Invalid due date. Use the YYYY-MM-DD format.")
		}
		return []models.Receivable{{
			ID:          s.newID(),
			CustomerID:  customerID,
			Description: fmt.Sprintf("Sale (%s) (1/1)", saleDesc),
			Amount:      financed,
			DueDate:     due,
			Status:      models.FinancePending,
			CreatedAt:   s.now(),
		}}, downPayment, nil
	}

	if plan.DueDay < 1 || plan.DueDay > 31 {
		return nil, 0, reject(ErrInvalidDueDay, "Enter a valid due day (1-31).")
	}

	saleDate := s.now()
	amounts := SplitInstallments(financed, plan.Count)
	receivables := make([]models.Receivable, len(amounts))
	for i, amount := range amounts {
		receivables[i] = models.Receivable{
			ID:          s.newID(),
			CustomerID:  customerID,
			Description: fmt.Sprintf("Sale (%s) (%d/%d)", saleDesc, i+1, plan.Count),
			Amount:      amount,
			DueDate:     installmentDueDate(saleDate, i, plan.DueDay),
			Status:      models.FinancePending,
			CreatedAt:   s.now(),
		}
	}
	return receivables, downPayment, nil
}

// SaleTotalOn reports the summed total of sales registered on the given
// calendar day. Used by the reporting collaborators.
func (s *Store) SaleTotalOn(day time.Time) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var total float64
	for _, sale := range s.sales {
		if !sale.CreatedAt.Before(start) && sale.CreatedAt.Before(end) {
			total += sale.Total
		}
	}
	return RoundMoney(total)
}
