package store

import (
	"strings"

	"RetailApp/app/models"
)

// ProductInput is the payload for registering a simple product.
type ProductInput struct {
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Brand              string  `json:"brand"`
	StockQty           int     `json:"stock_qty"`
	MinQty             int     `json:"min_qty"`
	SalePrice          float64 `json:"sale_price"`
	AvgConsumptionDays int     `json:"avg_consumption_days"`
	Barcode            string  `json:"barcode"`
}

// KitComponent is one component reference in a kit payload.
type KitComponent struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// KitInput is the payload for registering a bundle product.
type KitInput struct {
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Brand      string         `json:"brand"`
	MinQty     int            `json:"min_qty"`
	SalePrice  float64        `json:"sale_price"`
	Components []KitComponent `json:"components"`
}

// CustomerInput is the payload for registering a customer.
type CustomerInput struct {
	Name   string                `json:"name"`
	Phone  string                `json:"phone"`
	Status models.CustomerStatus `json:"status"`
	Notes  string                `json:"notes"`
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

// AddCategory registers a new category name. Names are trimmed and must be
// unique case-insensitively.
func (s *Store) AddCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return reject(ErrValidation, "Category name is required.")
	}
	if containsFold(s.categories, normalized) {
		return reject(ErrDuplicate, "Category %q is already registered.", normalized)
	}

	s.categories = append(s.categories, normalized)
	s.persist("create category", s.db.CreateCategory(normalized))
	s.notify(EntityCategories)
	return nil
}

// AddBrand registers a new brand name under the same rules as AddCategory.
func (s *Store) AddBrand(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return reject(ErrValidation, "Brand name is required.")
	}
	if containsFold(s.brands, normalized) {
		return reject(ErrDuplicate, "Brand %q is already registered.", normalized)
	}

	s.brands = append(s.brands, normalized)
	s.persist("create brand", s.db.CreateBrand(normalized))
	s.notify(EntityBrands)
	return nil
}

// RenameCategory renames a category and rewrites the category field of
// every product that referenced the old name. Products store the name by
// value, so this is a full cascading update.
func (s *Store) RenameCategory(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := strings.TrimSpace(newName)
	if normalized == "" {
		return reject(ErrValidation, "Category name is required.")
	}
	for _, c := range s.categories {
		if strings.EqualFold(c, normalized) && c != oldName {
			return reject(ErrDuplicate, "Category %q is already registered.", normalized)
		}
	}

	for i, c := range s.categories {
		if c == oldName {
			s.categories[i] = normalized
		}
	}
	for i := range s.products {
		if s.products[i].Category == oldName {
			s.products[i].Category = normalized
		}
	}
	s.persist("rename category", s.db.RenameCategory(oldName, normalized))
	s.notify(EntityCategories)
	s.notify(EntityProducts)
	return nil
}

// RenameBrand renames a brand with the same cascade as RenameCategory.
func (s *Store) RenameBrand(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalized := strings.TrimSpace(newName)
	if normalized == "" {
		return reject(ErrValidation, "Brand name is required.")
	}
	for _, b := range s.brands {
		if strings.EqualFold(b, normalized) && b != oldName {
			return reject(ErrDuplicate, "Brand %q is already registered.", normalized)
		}
	}

	for i, b := range s.brands {
		if b == oldName {
			s.brands[i] = normalized
		}
	}
	for i := range s.products {
		if s.products[i].Brand == oldName {
			s.products[i].Brand = normalized
		}
	}
	s.persist("rename brand", s.db.RenameBrand(oldName, normalized))
	s.notify(EntityBrands)
	s.notify(EntityProducts)
	return nil
}

// RemoveCategory deletes a category unconditionally. Products referencing
// it keep the stale name; referential integrity is deliberately not
// enforced here.
func (s *Store) RemoveCategory(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.categories[:0]
	for _, c := range s.categories {
		if c != name {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.persist("delete category", s.db.DeleteCategory(name))
	s.notify(EntityCategories)
	return nil
}

// RemoveBrand deletes a brand unconditionally, same rules as RemoveCategory.
func (s *Store) RemoveBrand(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.brands[:0]
	for _, b := range s.brands {
		if b != name {
			kept = append(kept, b)
		}
	}
	s.brands = kept
	s.persist("delete brand", s.db.DeleteBrand(name))
	s.notify(EntityBrands)
	return nil
}

// AddProduct registers a simple product.
func (s *Store) AddProduct(in ProductInput) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" {
		return models.Product{}, reject(ErrValidation, "Product name is required.")
	}
	if strings.TrimSpace(in.Category) == "" {
		return models.Product{}, reject(ErrValidation, "Select a category for the product.")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return models.Product{}, reject(ErrValidation, "Select a brand for the product.")
	}
	if in.SalePrice <= 0 {
		return models.Product{}, reject(ErrInvalidAmount, "Sale price must be greater than zero.")
	}
	if in.StockQty < 0 || in.MinQty < 0 {
		return models.Product{}, reject(ErrNegativeQuantity, "Stock cannot be negative.")
	}

	product := models.Product{
		ID:                 s.newID(),
		Name:               strings.TrimSpace(in.Name),
		Kind:               models.KindSimple,
		Category:           strings.TrimSpace(in.Category),
		Brand:              strings.TrimSpace(in.Brand),
		StockQty:           in.StockQty,
		MinQty:             in.MinQty,
		SalePrice:          in.SalePrice,
		AvgConsumptionDays: in.AvgConsumptionDays,
		Barcode:            strings.TrimSpace(in.Barcode),
		CreatedAt:          s.now(),
	}

	s.products = append(s.products, product)
	s.persist("create product", s.db.CreateProduct(product))
	s.notify(EntityProducts)
	return product, nil
}

// AddKit registers a bundle product. The bundle's own stock field is fixed
// at zero; its sellable quantity is always derived from component stock.
func (s *Store) AddKit(in KitInput) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" {
		return models.Product{}, reject(ErrValidation, "Kit name is required.")
	}
	if strings.TrimSpace(in.Category) == "" {
		return models.Product{}, reject(ErrValidation, "Select a category for the kit.")
	}
	if strings.TrimSpace(in.Brand) == "" {
		return models.Product{}, reject(ErrValidation, "Select a brand for the kit.")
	}
	if in.SalePrice <= 0 {
		return models.Product{}, reject(ErrInvalidAmount, "Sale price must be greater than zero.")
	}
	if len(in.Components) == 0 {
		return models.Product{}, reject(ErrEmptyComposition, "Add at least one product to the kit.")
	}
	for _, c := range in.Components {
		idx, ok := s.findProduct(c.ProductID)
		if !ok || s.products[idx].Kind != models.KindSimple || c.Quantity <= 0 {
			return models.Product{}, reject(ErrInvalidComponent, "Kit contains an invalid product.")
		}
	}

	kit := models.Product{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		Kind:      models.KindBundle,
		Category:  strings.TrimSpace(in.Category),
		Brand:     strings.TrimSpace(in.Brand),
		StockQty:  0,
		MinQty:    in.MinQty,
		SalePrice: in.SalePrice,
		CreatedAt: s.now(),
	}
	for _, c := range in.Components {
		kit.KitItems = append(kit.KitItems, models.KitItem{
			KitID:     kit.ID,
			ProductID: c.ProductID,
			Quantity:  c.Quantity,
		})
	}

	s.products = append(s.products, kit)
	s.persist("create kit", s.db.CreateProduct(kit))
	s.notify(EntityProducts)
	return kit, nil
}

// RemoveProduct deletes a product unconditionally. Historical sales and
// stock moves keep their references; orphans are tolerated.
func (s *Store) RemoveProduct(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.persist("delete product", s.db.DeleteProduct(id))
	s.notify(EntityProducts)
	return nil
}

// ProductByBarcode looks a product up by its barcode.
func (s *Store) ProductByBarcode(code string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.products {
		if p.Barcode != "" && p.Barcode == code {
			return p, true
		}
	}
	return models.Product{}, false
}

// AddCustomer registers a customer. A blank phone is stored as the
// "Not informed" sentinel.
func (s *Store) AddCustomer(in CustomerInput) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" {
		return models.Customer{}, reject(ErrValidation, "Customer name is required.")
	}

	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		phone = models.PhoneNotInformed
	}

	customer := models.Customer{
		ID:        s.newID(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     phone,
		Status:    in.Status,
		Notes:     in.Notes,
		CreatedAt: s.now(),
	}

	s.customers = append(s.customers, customer)
	s.persist("create customer", s.db.CreateCustomer(customer))
	s.notify(EntityCustomers)
	return customer, nil
}

// RemoveCustomer deletes a customer unconditionally.
func (s *Store) RemoveCustomer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.customers[:0]
	for _, c := range s.customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.customers = kept
	s.persist("delete customer", s.db.DeleteCustomer(id))
	s.notify(EntityCustomers)
	return nil
}
