package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	IDs    []int64
	Limit  int
	Offset int
}
