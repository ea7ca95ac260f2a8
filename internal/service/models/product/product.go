package product

// Product represents a catalog item referenced by orders.
// Ids are assigned externally, the service never generates them.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"productName"`
	Description *string `json:"productDescription"`
}
