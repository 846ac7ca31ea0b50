package entities

import "fmt"

// Batch represents a sub-quantity of an order's total units, scheduled and
// tracked as one unit of work.
type Batch struct {
	ID       string
	Quantity int
	Index    int
}

// BatchID formats a 1-based batch counter as a stable identifier (B01, B02, ...).
func BatchID(counter int) string {
	return fmt.Sprintf("B%02d", counter)
}
