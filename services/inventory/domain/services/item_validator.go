// Package services contains stateless domain services for the inventory bounded
// context: validation, the stock update rules, status classification, usage
// analytics and CSV export. They operate on plain models and never touch
// storage, so they are unit-tested without a database.
package services

import (
	"errors"
	"unicode"

	"github.com/ghuser/stocktracker/services/inventory/domain"
	"github.com/ghuser/stocktracker/services/inventory/domain/models"
)

// Field names used in ValidationError. They match the JSON/GraphQL field names.
const (
	FieldName         = "name"
	FieldQuantity     = "quantity"
	FieldMinThreshold = "minThreshold"
	FieldCategory     = "category"
)

// ValidateName builds an ItemName from raw input and applies business rules
// beyond length: control characters are rejected.
func ValidateName(raw string) (models.ItemName, error) {
	name, err := models.NewItemName(raw)
	if err != nil {
		return "", err
	}
	for _, r := range name.String() {
		if unicode.IsControl(r) {
			return "", errors.New("Name must not contain control characters")
		}
	}
	return name, nil
}

// ValidateCreate checks every field of a create-or-merge input and returns a
// candidate Item. All field problems are reported together.
func ValidateCreate(in models.CreateItemInput) (*models.Item, error) {
	ve := domain.NewValidationError()

	name, err := ValidateName(in.Name)
	if err != nil {
		ve.Add(FieldName, err.Error())
	}
	if in.Quantity < 0 {
		ve.Add(FieldQuantity, "Quantity cannot be negative")
	}
	if in.MinThreshold < 0 {
		ve.Add(FieldMinThreshold, "Minimum threshold cannot be negative")
	}
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		if in.Category == "" {
			ve.Add(FieldCategory, "Please provide a category")
		} else {
			ve.Add(FieldCategory, err.Error())
		}
	}

	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return models.NewItem(name, in.Quantity, in.MinThreshold, category), nil
}

// ItemChanges is an ItemPatch whose provided fields passed validation.
type ItemChanges = models.ItemChanges

// ValidatePatch applies the creation constraints to each provided field.
func ValidatePatch(p models.ItemPatch) (ItemChanges, error) {
	ve := domain.NewValidationError()
	var ch ItemChanges

	if p.Name != nil {
		name, err := ValidateName(*p.Name)
		if err != nil {
			ve.Add(FieldName, err.Error())
		} else {
			ch.Name = &name
		}
	}
	if p.Quantity != nil {
		if *p.Quantity < 0 {
			ve.Add(FieldQuantity, "Quantity cannot be negative")
		} else {
			q := *p.Quantity
			ch.Quantity = &q
		}
	}
	if p.MinThreshold != nil {
		if *p.MinThreshold < 0 {
			ve.Add(FieldMinThreshold, "Minimum threshold cannot be negative")
		} else {
			t := *p.MinThreshold
			ch.MinThreshold = &t
		}
	}
	if p.Category != nil {
		c, err := models.ParseCategory(*p.Category)
		if err != nil {
			ve.Add(FieldCategory, err.Error())
		} else {
			ch.Category = &c
		}
	}

	if err := ve.OrNil(); err != nil {
		return ItemChanges{}, err
	}
	return ch, nil
}
