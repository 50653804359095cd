package server

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"facture/model"
)

// Extraction is the persisted summary of one processed document.
type Extraction struct {
	gorm.Model
	Filename      string
	InvoiceNumber string
	InvoiceDate   string
	SupplierName  string
	BuyerName     string
	Phone         string
	TotalTTC      string
	RowCount      int
	TableError    string
}

// Store persists extraction summaries in Postgres.
type Store struct {
	db *gorm.DB
}

// OpenStore connects to the database and migrates the schema.
func OpenStore(databaseURL string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Extraction{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Save stores one extraction summary.
func (s *Store) Save(e Extraction) error {
	return s.db.Create(&e).Error
}

// List returns all stored summaries, newest first.
func (s *Store) List() ([]Extraction, error) {
	var extractions []Extraction
	err := s.db.Order("created_at desc").Find(&extractions).Error
	return extractions, err
}

// newExtraction flattens an extraction result into its stored summary.
func newExtraction(filename string, result *model.ExtractionResult) Extraction {
	return Extraction{
		Filename:      filename,
		InvoiceNumber: result.Fields["invoice_number"],
		InvoiceDate:   result.Fields["invoice_date"],
		SupplierName:  result.Fields["supplier_name"],
		BuyerName:     result.Fields["buyer_name"],
		Phone:         result.Fields["phone"],
		TotalTTC:      result.Fields["total_ttc"],
		RowCount:      len(result.Table.Rows),
		TableError:    result.Table.Error,
	}
}
