package directory

import (
	"errors"
	"fmt"

	"outage-notifier/internal/models"
	"outage-notifier/internal/notify"

	"gorm.io/gorm"
)

// Service answers area and recipient questions from the customer table.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Areas returns the sorted list of area names that have customers.
func (s *Service) Areas() ([]string, error) {
	var areas []string
	err := s.db.Model(&models.Customer{}).
		Distinct("area").
		Where("area <> ''").
		Order("area").
		Pluck("area", &areas).Error
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	if areas == nil {
		areas = []string{}
	}
	return areas, nil
}

// Counts returns the recipient count per area.
func (s *Service) Counts() (map[string]int, error) {
	type row struct {
		Area string
		N    int
	}
	var rows []row
	err := s.db.Model(&models.Customer{}).
		Select("area, count(*) as n").
		Group("area").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count recipients: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Area] = r.N
	}
	return counts, nil
}

// CustomersByArea returns every customer record grouped by area, for the
// composer's representative samples.
func (s *Service) CustomersByArea() (map[string][]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.Order("area, id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	grouped := make(map[string][]models.Customer)
	for _, c := range customers {
		grouped[c.Area] = append(grouped[c.Area], c)
	}
	return grouped, nil
}

// Recipients returns the phone numbers for an area.
func (s *Service) Recipients(area string) ([]string, error) {
	var phones []string
	err := s.db.Model(&models.Customer{}).
		Where("area = ?", area).
		Order("id").
		Pluck("phone", &phones).Error
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	return phones, nil
}

// Sample returns the representative customer for an area. For an area with
// no customers it returns a zero sample and ok=false; the composer then
// substitutes its placeholders.
func (s *Service) Sample(area string) (notify.RecipientSample, bool, error) {
	var c models.Customer
	err := s.db.Where("area = ?", area).Order("id").First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notify.RecipientSample{}, false, nil
	}
	if err != nil {
		return notify.RecipientSample{}, false, fmt.Errorf("sample customer: %w", err)
	}
	return notify.RecipientSample{Name: c.Name, AccountID: c.AccountID}, true, nil
}
