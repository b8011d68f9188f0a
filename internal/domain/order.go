package domain

// Order represents one submitted order. The ID is assigned by the store
// on insert and is zero before that; all other fields are set by the
// client and immutable afterwards.
type Order struct {
	ID        int64
	Symbol    string
	Price     float64
	Quantity  int64
	OrderType string
}
