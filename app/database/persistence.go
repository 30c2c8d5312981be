package database

import (
	"RetailApp/app/models"

	"gorm.io/gorm"
)

// The methods below implement store.Persistence. Reads hydrate the full
// in-memory state at startup; writes mirror individual engine mutations.

// --- Catalog ---

func (d *DB) GetProducts() ([]models.Product, error) {
	var products []models.Product
	err := d.gorm.Preload("KitItems").Order("created_at").Find(&products).Error
	return products, err
}

// CreateProduct inserts a product together with its kit components in one
// transaction.
func (d *DB) CreateProduct(p models.Product) error {
	return d.gorm.Create(&p).Error
}

// DeleteProduct removes a product and its kit components.
func (d *DB) DeleteProduct(id string) error {
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kit_id = ?", id).Delete(&models.KitItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}

// UpdateStock writes only the on-hand quantity, skipping a full product
// update. Sales and stock entries hit this path constantly.
func (d *DB) UpdateStock(productID string, qty int) error {
	return d.gorm.Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock_qty", qty).Error
}

func (d *DB) GetCategories() ([]string, error) {
	var categories []models.Category
	if err := d.gorm.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.Name
	}
	return names, nil
}

func (d *DB) CreateCategory(name string) error {
	return d.gorm.Create(&models.Category{Name: name}).Error
}

// RenameCategory renames the category row and cascades the new name over
// every product that referenced the old one.
func (d *DB) RenameCategory(oldName, newName string) error {
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Category{}, "name = ?", oldName).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Category{Name: newName}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("category = ?", oldName).
			Update("category", newName).Error
	})
}

func (d *DB) DeleteCategory(name string) error {
	return d.gorm.Delete(&models.Category{}, "name = ?", name).Error
}

func (d *DB) GetBrands() ([]string, error) {
	var brands []models.Brand
	if err := d.gorm.Order("name").Find(&brands).Error; err != nil {
		return nil, err
	}
	names := make([]string, len(brands))
	for i, b := range brands {
		names[i] = b.Name
	}
	return names, nil
}

func (d *DB) CreateBrand(name string) error {
	return d.gorm.Create(&models.Brand{Name: name}).Error
}

func (d *DB) RenameBrand(oldName, newName string) error {
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Brand{}, "name = ?", oldName).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Brand{Name: newName}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("brand = ?", oldName).
			Update("brand", newName).Error
	})
}

func (d *DB) DeleteBrand(name string) error {
	return d.gorm.Delete(&models.Brand{}, "name = ?", name).Error
}

// --- Customers ---

func (d *DB) GetCustomers() ([]models.Customer, error) {
	var customers []models.Customer
	err := d.gorm.Order("created_at").Find(&customers).Error
	return customers, err
}

func (d *DB) CreateCustomer(c models.Customer) error {
	return d.gorm.Create(&c).Error
}

func (d *DB) DeleteCustomer(id string) error {
	return d.gorm.Delete(&models.Customer{}, "id = ?", id).Error
}

// --- Sales and stock ledger ---

func (d *DB) GetSales() ([]models.Sale, error) {
	var sales []models.Sale
	err := d.gorm.Preload("Items").Order("created_at").Find(&sales).Error
	return sales, err
}

func (d *DB) CreateSale(s models.Sale) error {
	return d.gorm.Create(&s).Error
}

func (d *DB) GetStockMoves() ([]models.StockMove, error) {
	var moves []models.StockMove
	err := d.gorm.Order("created_at").Find(&moves).Error
	return moves, err
}

func (d *DB) CreateStockMove(m models.StockMove) error {
	return d.gorm.Create(&m).Error
}

// CreateStockMoves inserts the ledger entries of one sale in a single batch.
func (d *DB) CreateStockMoves(ms []models.StockMove) error {
	if len(ms) == 0 {
		return nil
	}
	return d.gorm.Create(&ms).Error
}

// --- Financial records ---

func (d *DB) GetReceivables() ([]models.Receivable, error) {
	var receivables []models.Receivable
	err := d.gorm.Order("due_date").Find(&receivables).Error
	return receivables, err
}

// CreateReceivables inserts the installment schedule of one sale in a
// single batch.
func (d *DB) CreateReceivables(rs []models.Receivable) error {
	if len(rs) == 0 {
		return nil
	}
	return d.gorm.Create(&rs).Error
}

func (d *DB) UpdateReceivable(r models.Receivable) error {
	return d.gorm.Save(&r).Error
}

func (d *DB) DeleteReceivable(id string) error {
	return d.gorm.Delete(&models.Receivable{}, "id = ?", id).Error
}

func (d *DB) GetPayables() ([]models.Payable, error) {
	var payables []models.Payable
	err := d.gorm.Order("due_date").Find(&payables).Error
	return payables, err
}

func (d *DB) CreatePayable(p models.Payable) error {
	return d.gorm.Create(&p).Error
}

func (d *DB) UpdatePayable(p models.Payable) error {
	return d.gorm.Save(&p).Error
}

func (d *DB) DeletePayable(id string) error {
	return d.gorm.Delete(&models.Payable{}, "id = ?", id).Error
}

// --- Purchase orders ---

func (d *DB) GetDraftItems() ([]models.PurchaseDraftItem, error) {
	var items []models.PurchaseDraftItem
	err := d.gorm.Order("created_at").Find(&items).Error
	return items, err
}

func (d *DB) CreateDraftItem(item models.PurchaseDraftItem) error {
	return d.gorm.Create(&item).Error
}

func (d *DB) UpdateDraftItem(item models.PurchaseDraftItem) error {
	return d.gorm.Save(&item).Error
}

func (d *DB) DeleteDraftItem(id string) error {
	return d.gorm.Delete(&models.PurchaseDraftItem{}, "id = ?", id).Error
}

func (d *DB) GetPurchaseOrders() ([]models.PurchaseOrder, error) {
	var orders []models.PurchaseOrder
	err := d.gorm.Preload("Items").Order("created_at").Find(&orders).Error
	return orders, err
}

// FinalizePurchaseOrder atomically creates the consolidated order and
// removes the draft items it consumed.
func (d *DB) FinalizePurchaseOrder(order models.PurchaseOrder, draftIDs []string) error {
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if len(draftIDs) == 0 {
			return nil
		}
		return tx.Delete(&models.PurchaseDraftItem{}, "id IN ?", draftIDs).Error
	})
}

func (d *DB) DeletePurchaseOrder(id string) error {
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.PurchaseOrder{}, "id = ?", id).Error
	})
}
