package models

import (
	"fmt"
	"strings"
)

// Category is the fixed set of item categories.
type Category string

const (
	CategoryFood     Category = "FOOD"
	CategoryBeverage Category = "BEVERAGE"
	CategorySupplies Category = "SUPPLIES"
	CategoryOther    Category = "OTHER"
)

// Categories lists every valid Category in display order.
var Categories = []Category{CategoryFood, CategoryBeverage, CategorySupplies, CategoryOther}

// ParseCategory accepts the canonical upper-case form, surrounding whitespace
// allowed.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("%s is not a valid category", s)
	}
	return c, nil
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryBeverage, CategorySupplies, CategoryOther:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
