package models

// StockStatus is the derived display status of an item. It is never stored.
type StockStatus string

const (
	StockStatusLow    StockStatus = "LOW"
	StockStatusMedium StockStatus = "MEDIUM"
	StockStatusGood   StockStatus = "GOOD"
)

func (s StockStatus) String() string {
	return string(s)
}
