package models

// Procedure categories of the treatment catalog.
const (
	CategoryGeneral      = "General"
	CategoryOrthodontics = "Orthodontics"
	CategorySurgery      = "Surgery"
	CategoryCosmetic     = "Cosmetic"
)

// Procedure is a billable catalog item.
type Procedure struct {
	ID int64

	// Name is the display name (e.g., "Routine Cleaning").
	Name string

	// Code is the billing code (e.g., "D1110").
	Code string

	// UnitPrice is the non-negative price of one unit.
	UnitPrice Money

	// Category is one of the Category* constants.
	Category string
}

// LineItem is one procedure on an invoice with its quantity. Quantity is always >= 1;
// an item whose quantity would drop to zero is removed instead.
type LineItem struct {
	Procedure Procedure
	Quantity  int
}

// Amount is UnitPrice x Quantity.
func (li LineItem) Amount() Money {
	return li.Procedure.UnitPrice * Money(li.Quantity)
}

// InsuredPatient is a patient that an invoice can be billed to.
type InsuredPatient struct {
	ID      int64
	Name    string
	Insurer string
}

// CartSession is the invoice being built in one dashboard view.
// Each session is owned by exactly one view; sessions never share items.
type CartSession struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// PatientID references the InsuredPatient being billed. Zero means none selected.
	PatientID int64

	// Items are the line items in insertion order.
	Items []LineItem

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64
	UpdatedAt int64
}
