package entity

// SupplierProfile holds supplier-specific details and owns a set of products.
type SupplierProfile struct {
	ID            int64
	Name          string
	ContactNumber string
	Address       string

	// UserID is the owning account, nil for suppliers imported without one.
	UserID *int64

	ProductIDs []int64
}
