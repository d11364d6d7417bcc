package directory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"outage-notifier/internal/models"

	"gorm.io/gorm"
)

var requiredColumns = []string{"phone", "area", "account_id"}

// ImportCSV replaces the customer table with the contents of a CSV file.
// Required columns: phone, area, account_id. Optional: name. Headers are
// case-insensitive and values are trimmed.
func ImportCSV(db *gorm.DB, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	customers, err := readCustomers(f)
	if err != nil {
		return 0, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Customer{}).Error; err != nil {
			return err
		}
		if len(customers) == 0 {
			return nil
		}
		return tx.CreateInBatches(customers, 500).Error
	})
	if err != nil {
		return 0, fmt.Errorf("import customers: %w", err)
	}
	return len(customers), nil
}

func readCustomers(r io.Reader) ([]models.Customer, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV missing required columns: %s", strings.Join(missing, ", "))
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var customers []models.Customer
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		c := models.Customer{
			Phone:     field(record, "phone"),
			Area:      field(record, "area"),
			Name:      field(record, "name"),
			AccountID: field(record, "account_id"),
		}
		if c.Phone == "" || c.Area == "" {
			continue
		}
		customers = append(customers, c)
	}
	return customers, nil
}
