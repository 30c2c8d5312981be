package store

import (
	"testing"
	"time"

	"RetailApp/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCashSale(t *testing.T) {
	s, db, _ := newTestStore()
	p := addSimpleProduct(s, "Eau de Parfum", 350, 20)
	listener := &recordingListener{}
	s.Subscribe(listener)

	sale, err := s.RegisterSale(SalePayload{
		CustomerID: "cust-1",
		Lines:      []SaleLine{{ProductID: p.ID, Quantity: 3}},
		Mode:       models.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 1050.0, sale.Total)
	assert.Equal(t, models.PaymentCash, sale.PaymentMode)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, 3, sale.Items[0].Quantity)
	assert.Equal(t, 350.0, sale.Items[0].UnitPrice)

	assert.Equal(t, 17, s.ProductStock(p.ID))
	assert.Equal(t, 17, db.stockUpdates[p.ID])

	moves := s.StockMoves()
	require.Len(t, moves, 1)
	assert.Equal(t, models.MoveOut, moves[0].Direction)
	assert.Equal(t, 3, moves[0].Quantity)
	assert.Equal(t, "Sale", moves[0].Origin)

	assert.Empty(t, s.Receivables(), "a cash sale creates no receivables")
	require.Len(t, db.sales, 1)
	assert.True(t, listener.saw(EntitySales))
	assert.True(t, listener.saw(EntityProducts))
	assert.True(t, listener.saw(EntityStockMoves))
}

func TestRegisterSaleCoalescesDuplicateLines(t *testing.T) {
	s, _, _ := newTestStore()
	p := addSimpleProduct(s, "Shampoo", 34.9, 10)

	sale, err := s.RegisterSale(SalePayload{
		Lines: []SaleLine{
			{ProductID: p.ID, Quantity: 2},
			{ProductID: p.ID, Quantity: 1},
		},
		Mode: models.PaymentCash,
	})
	require.NoError(t, err)

	require.Len(t, sale.Items, 1, "duplicate lines coalesce into one")
	assert.Equal(t, 3, sale.Items[0].Quantity)
	assert.Equal(t, RoundMoney(3*34.9), sale.Total)
	assert.Equal(t, 7, s.ProductStock(p.ID))
}

func TestRegisterSaleSnapshotsUnitPrice(t *testing.T) {
	s, _, _ := newTestStore()
	p := addSimpleProduct(s, "Shampoo", 34.9, 10)

	sale, err := s.RegisterSale(SalePayload{
		Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}},
		Mode:  models.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 34.9, sale.Items[0].UnitPrice)
}

func TestRegisterSaleRejectionsLeaveNoPartialEffects(t *testing.T) {
	s, db, _ := newTestStore()
	p := addSimpleProduct(s, "Shampoo", 34.9, 2)

	cases := []struct {
		name    string
		payload SalePayload
		want    ErrorKind
	}{
		{"empty order", SalePayload{Mode: models.PaymentCash}, ErrEmptyOrder},
		{"zero quantity", SalePayload{
			Lines: []SaleLine{{ProductID: p.ID, Quantity: 0}},
			Mode:  models.PaymentCash,
		}, ErrInvalidQuantity},
		{"unknown product", SalePayload{
			Lines: []SaleLine{{ProductID: "missing", Quantity: 1}},
			Mode:  models.PaymentCash,
		}, ErrUnknownProduct},
		{"insufficient stock", SalePayload{
			Lines: []SaleLine{{ProductID: p.ID, Quantity: 5}},
			Mode:  models.PaymentCash,
		}, ErrInsufficientStock},
		{"coalesced lines exceed stock", SalePayload{
			Lines: []SaleLine{
				{ProductID: p.ID, Quantity: 1},
				{ProductID: p.ID, Quantity: 2},
			},
			Mode: models.PaymentCash,
		}, ErrInsufficientStock},
		{"missing installment config", SalePayload{
			Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}},
			Mode:  models.PaymentInstallment,
		}, ErrMissingInstallmentConfig},
		{"invalid installment count", SalePayload{
			Lines:        []SaleLine{{ProductID: p.ID, Quantity: 1}},
			Mode:         models.PaymentInstallment,
			Installments: &InstallmentPlan{Count: 2, DueDay: 10},
		}, ErrValidation},
		{"negative down payment", SalePayload{
			Lines:        []SaleLine{{ProductID: p.ID, Quantity: 1}},
			Mode:         models.PaymentInstallment,
			Installments: &InstallmentPlan{Count: 3, DownPayment: -1, DueDay: 10},
		}, ErrDownPaymentExceedsTotal},
		{"down payment above total", SalePayload{
			Lines:        []SaleLine{{ProductID: p.ID, Quantity: 1}},
			Mode:         models.PaymentInstallment,
			Installments: &InstallmentPlan{Count: 3, DownPayment: 100, DueDay: 10},
		}, ErrDownPaymentExceedsTotal},
		{"single installment without due date", SalePayload{
			Lines:        []SaleLine{{ProductID: p.ID, Quantity: 1}},
			Mode:         models.PaymentInstallment,
			Installments: &InstallmentPlan{Count: 1},
		}, ErrMissingDueDate},
		{"single installment with bad date", SalePayload{
			Lines:        []SaleLine{{ProductID: p.ID, Quantity: 1}},
			Mode:         models.PaymentInstallment,
			Installments: &InstallmentPlan{Count: 1, FirstDueDate: "10/04/2026"},
		}, ErrInvalidDate},
		{"invalid due day", SalePayload{
			Lines:        []SaleLine{{ProductID: p.ID, Quantity: 1}},
			Mode:         models.PaymentInstallment,
			Installments: &InstallmentPlan{Count: 3, DueDay: 0},
		}, ErrInvalidDueDay},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.RegisterSale(tc.payload)
			assert.Equal(t, tc.want, KindOf(err))

			// No partial effects: stock, ledger, sales and receivables
			// all untouched.
			assert.Equal(t, 2, s.ProductStock(p.ID))
			assert.Empty(t, s.StockMoves())
			assert.Empty(t, s.Sales())
			assert.Empty(t, s.Receivables())
			assert.Empty(t, db.sales)
			assert.Empty(t, db.stockMoves)
		})
	}
}

func TestRegisterBundleSale(t *testing.T) {
	s, db, _ := newTestStore()
	shampoo := addSimpleProduct(s, "Shampoo", 34.9, 10)
	conditioner := addSimpleProduct(s, "Conditioner", 29.9, 6)
	kit, err := s.AddKit(KitInput{
		Name: "Hair Kit", Category: "Hair", Brand: "House", SalePrice: 55,
		Components: []KitComponent{
			{ProductID: shampoo.ID, Quantity: 2},
			{ProductID: conditioner.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	sale, err := s.RegisterSale(SalePayload{
		Lines: []SaleLine{{ProductID: kit.ID, Quantity: 2}},
		Mode:  models.PaymentCash,
	})
	require.NoError(t, err)

	// The bundle is priced by its own sale price.
	assert.Equal(t, 110.0, sale.Total)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, kit.ID, sale.Items[0].ProductID)

	// Components are deducted, never the bundle itself.
	assert.Equal(t, 6, s.ProductStock(shampoo.ID))
	assert.Equal(t, 4, s.ProductStock(conditioner.ID))
	assert.Equal(t, 6, db.stockUpdates[shampoo.ID])
	assert.Equal(t, 4, db.stockUpdates[conditioner.ID])

	moves := s.StockMoves()
	require.Len(t, moves, 2, "one ledger entry per component")
	assert.Equal(t, shampoo.ID, moves[0].ProductID)
	assert.Equal(t, 4, moves[0].Quantity)
	assert.Equal(t, "Sale of kit Hair Kit", moves[0].Origin)
	assert.Equal(t, conditioner.ID, moves[1].ProductID)
	assert.Equal(t, 2, moves[1].Quantity)
}

func TestRegisterSaleBundleAndComponentShareStock(t *testing.T) {
	s, _, _ := newTestStore()
	shampoo := addSimpleProduct(s, "Shampoo", 34.9, 5)
	kit, err := s.AddKit(KitInput{
		Name: "Duo", Category: "Hair", Brand: "House", SalePrice: 60,
		Components: []KitComponent{{ProductID: shampoo.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// 2 kits (4 units) + 2 loose units = 6 > 5 in stock.
	_, err = s.RegisterSale(SalePayload{
		Lines: []SaleLine{
			{ProductID: kit.ID, Quantity: 2},
			{ProductID: shampoo.ID, Quantity: 2},
		},
		Mode: models.PaymentCash,
	})
	assert.Equal(t, ErrInsufficientStock, KindOf(err))
	assert.Equal(t, 5, s.ProductStock(shampoo.ID))

	// 2 kits + 1 loose unit = exactly 5: allowed.
	_, err = s.RegisterSale(SalePayload{
		Lines: []SaleLine{
			{ProductID: kit.ID, Quantity: 2},
			{ProductID: shampoo.ID, Quantity: 1},
		},
		Mode: models.PaymentCash,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, s.ProductStock(shampoo.ID))
}

func TestRegisterInstallmentSaleSchedule(t *testing.T) {
	s, db, clock := newTestStore()
	clock.now = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.Local)
	p := addSimpleProduct(s, "Eau de Parfum", 350, 20)

	sale, err := s.RegisterSale(SalePayload{
		CustomerID: "cust-1",
		Lines:      []SaleLine{{ProductID: p.ID, Quantity: 3}},
		Mode:       models.PaymentInstallment,
		Installments: &InstallmentPlan{
			Count:       3,
			DownPayment: 150,
			DueDay:      31,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1050.0, sale.Total)
	assert.Equal(t, 150.0, sale.DownPayment)

	receivables := s.Receivables()
	require.Len(t, receivables, 3)

	// Financed 900 splits evenly across the three installments.
	for _, r := range receivables {
		assert.Equal(t, "cust-1", r.CustomerID)
		assert.Equal(t, models.FinancePending, r.Status)
		assert.Equal(t, 300.0, r.Amount)
	}

	assert.Equal(t, "Sale (Eau de Parfum) (1/3)", receivables[0].Description)
	assert.Equal(t, "Sale (Eau de Parfum) (2/3)", receivables[1].Description)
	assert.Equal(t, "Sale (Eau de Parfum) (3/3)", receivables[2].Description)

	// Day 31 is clamped per month: Feb 28, Mar 31, Apr 30.
	assert.Equal(t, "2026-02-28", FormatDate(receivables[0].DueDate))
	assert.Equal(t, "2026-03-31", FormatDate(receivables[1].DueDate))
	assert.Equal(t, "2026-04-30", FormatDate(receivables[2].DueDate))

	require.Len(t, db.receivables, 3, "receivables are persisted in one batch")
}

func TestRegisterInstallmentSaleCentsSumExactly(t *testing.T) {
	s, _, _ := newTestStore()
	p := addSimpleProduct(s, "Lipstick", 33.35, 10)

	_, err := s.RegisterSale(SalePayload{
		Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}},
		Mode:  models.PaymentInstallment,
		Installments: &InstallmentPlan{
			Count:  3,
			DueDay: 10,
		},
	})
	require.NoError(t, err)

	receivables := s.Receivables()
	require.Len(t, receivables, 3)

	var cents int64
	for _, r := range receivables {
		cents += toCents(r.Amount)
	}
	assert.Equal(t, toCents(33.35), cents)
	// Remainder front-loaded: 11.12, 11.12, 11.11.
	assert.Equal(t, 11.12, receivables[0].Amount)
	assert.Equal(t, 11.12, receivables[1].Amount)
	assert.Equal(t, 11.11, receivables[2].Amount)
}

func TestRegisterSingleInstallmentUsesExplicitDueDate(t *testing.T) {
	s, _, _ := newTestStore()
	p := addSimpleProduct(s, "Eau de Parfum", 350, 20)

	_, err := s.RegisterSale(SalePayload{
		Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}},
		Mode:  models.PaymentInstallment,
		Installments: &InstallmentPlan{
			Count:        1,
			FirstDueDate: "2026-04-10",
		},
	})
	require.NoError(t, err)

	receivables := s.Receivables()
	require.Len(t, receivables, 1)
	assert.Equal(t, "2026-04-10", FormatDate(receivables[0].DueDate))
	assert.Equal(t, 350.0, receivables[0].Amount)
	assert.Equal(t, "Sale (Eau de Parfum) (1/1)", receivables[0].Description)
}

func TestRegisterInstallmentSaleFullyPaidUpFront(t *testing.T) {
	s, _, _ := newTestStore()
	p := addSimpleProduct(s, "Eau de Parfum", 350, 20)

	sale, err := s.RegisterSale(SalePayload{
		Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}},
		Mode:  models.PaymentInstallment,
		Installments: &InstallmentPlan{
			Count:       3,
			DownPayment: 350,
			DueDay:      10,
		},
	})
	require.NoError(t, err, "a down payment equal to the total is a valid credit sale")
	assert.Equal(t, 350.0, sale.DownPayment)
	assert.Empty(t, s.Receivables(), "nothing financed, nothing receivable")
	assert.Equal(t, 19, s.ProductStock(p.ID), "the sale itself still goes through")
}

func TestRegisterSaleMultiProductDescription(t *testing.T) {
	s, _, _ := newTestStore()
	shampoo := addSimpleProduct(s, "Shampoo", 30, 10)
	conditioner := addSimpleProduct(s, "Conditioner", 20, 10)

	_, err := s.RegisterSale(SalePayload{
		Lines: []SaleLine{
			{ProductID: shampoo.ID, Quantity: 1},
			{ProductID: conditioner.ID, Quantity: 1},
		},
		Mode:         models.PaymentInstallment,
		Installments: &InstallmentPlan{Count: 3, DueDay: 10},
	})
	require.NoError(t, err)

	receivables := s.Receivables()
	require.Len(t, receivables, 3)
	assert.Equal(t, "Sale (Shampoo, Conditioner) (1/3)", receivables[0].Description,
		"products are listed in first-seen line order")
}

func TestSaleTotalOn(t *testing.T) {
	s, _, clock := newTestStore()
	p := addSimpleProduct(s, "Shampoo", 100, 50)

	today := clock.Now()
	_, err := s.RegisterSale(SalePayload{
		Lines: []SaleLine{{ProductID: p.ID, Quantity: 2}},
		Mode:  models.PaymentCash,
	})
	require.NoError(t, err)

	clock.Advance(48 * time.Hour)
	_, err = s.RegisterSale(SalePayload{
		Lines: []SaleLine{{ProductID: p.ID, Quantity: 1}},
		Mode:  models.PaymentCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 200.0, s.SaleTotalOn(today))
	assert.Equal(t, 100.0, s.SaleTotalOn(clock.Now()))
	assert.Equal(t, 0.0, s.SaleTotalOn(today.AddDate(0, 0, 1)))
}
