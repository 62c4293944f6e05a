package addressControllers

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/sn0wstorm20202/blinkit-clone/models"
)

var ErrNotFound = errors.New("address not found")

// CreateInput carries a full address. All string fields are trimmed before
// storage; Line2 collapses to NULL when blank.
type CreateInput struct {
	FullName     string
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	IsDefault    bool
}

// UpdateInput is a partial patch: nil fields are left untouched.
type UpdateInput struct {
	FullName     *string
	PhoneNumber  *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	PostalCode   *string
	IsDefault    *bool
}

// MissingFields lists the required create fields that are absent.
func (in CreateInput) MissingFields() []string {
	var missing []string
	required := map[string]string{
		"full_name":     in.FullName,
		"phone_number":  in.PhoneNumber,
		"address_line1": in.AddressLine1,
		"city":          in.City,
		"state":         in.State,
		"postal_code":   in.PostalCode,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// List returns the user's addresses, default first, then newest.
func List(db *gorm.DB, userID string) ([]models.Address, error) {
	addresses := []models.Address{}
	err := db.Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at DESC").
		Find(&addresses).Error
	return addresses, err
}

// Create stores a new address. When IsDefault is set, every other address
// of the user is cleared first; both statements run in one transaction so
// the single-default invariant holds even across a crash.
func Create(db *gorm.DB, userID string, input CreateInput) (*models.Address, error) {
	address := &models.Address{
		UserID:       userID,
		FullName:     strings.TrimSpace(input.FullName),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		AddressLine1: strings.TrimSpace(input.AddressLine1),
		AddressLine2: trimmedOrNil(input.AddressLine2),
		City:         strings.TrimSpace(input.City),
		State:        strings.TrimSpace(input.State),
		PostalCode:   strings.TrimSpace(input.PostalCode),
		IsDefault:    input.IsDefault,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault {
			if err := clearDefault(tx, userID); err != nil {
				return err
			}
		}
		return tx.Create(address).Error
	})
	if err != nil {
		return nil, err
	}
	return address, nil
}

// Update applies a partial patch to an owned address. A valid id owned by
// someone else reports ErrNotFound, deliberately indistinguishable from a
// missing row.
func Update(db *gorm.DB, userID string, id uint, input UpdateInput) (*models.Address, error) {
	address, err := owned(db, userID, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.FullName != nil {
		updates["full_name"] = strings.TrimSpace(*input.FullName)
	}
	if input.PhoneNumber != nil {
		updates["phone_number"] = strings.TrimSpace(*input.PhoneNumber)
	}
	if input.AddressLine1 != nil {
		updates["address_line1"] = strings.TrimSpace(*input.AddressLine1)
	}
	if input.AddressLine2 != nil {
		updates["address_line2"] = trimmedOrNil(*input.AddressLine2)
	}
	if input.City != nil {
		updates["city"] = strings.TrimSpace(*input.City)
	}
	if input.State != nil {
		updates["state"] = strings.TrimSpace(*input.State)
	}
	if input.PostalCode != nil {
		updates["postal_code"] = strings.TrimSpace(*input.PostalCode)
	}
	if input.IsDefault != nil {
		updates["is_default"] = *input.IsDefault
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault != nil && *input.IsDefault {
			if err := clearDefault(tx, userID); err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(address).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if err := db.First(address, address.ID).Error; err != nil {
		return nil, err
	}
	return address, nil
}

// Delete removes an owned address.
func Delete(db *gorm.DB, userID string, id uint) error {
	address, err := owned(db, userID, id)
	if err != nil {
		return err
	}
	return db.Delete(&models.Address{}, address.ID).Error
}

// SetDefault makes the owned address the single default: clear-then-set in
// one transaction.
func SetDefault(db *gorm.DB, userID string, id uint) (*models.Address, error) {
	address, err := owned(db, userID, id)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := clearDefault(tx, userID); err != nil {
			return err
		}
		return tx.Model(address).Update("is_default", true).Error
	})
	if err != nil {
		return nil, err
	}

	address.IsDefault = true
	return address, nil
}

func owned(db *gorm.DB, userID string, id uint) (*models.Address, error) {
	var address models.Address
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func clearDefault(tx *gorm.DB, userID string) error {
	return tx.Model(&models.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}

func trimmedOrNil(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
