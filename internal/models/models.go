package models

// Party holds the name and address block of either side of an order
// (the restaurant or the customer). Address, City and PostalCode are
// always derived together from the same list of address lines.
type Party struct {
	Name       *string
	Address    *string
	City       *string
	PostalCode *string
	Phone      *string
}

// LineItem is a single purchased article on the receipt.
type LineItem struct {
	Quantity *int
	Name     *string
	Options  []string
	Price    *float64
}

// Totals is the labeled money ledger at the bottom of the receipt.
type Totals struct {
	Subtotal    *float64
	DeliveryFee *float64
	Tip         *float64
	Credit      *float64
	Total       *float64
}

// OrderDate is the timestamp recovered from the receipt's filename.
type OrderDate struct {
	Raw     string // "2006-01-02 15:04:05"
	Date    string // "2006-01-02"
	Time    string // "15:04:05"
	Weekday string // weekday token as it appeared in the filename
}

// Order is the fully assembled record for one receipt document.
type Order struct {
	Number     *string
	Date       *OrderDate
	Restaurant Party
	Customer   Party
	Items      []LineItem
	Totals     Totals
	SourceFile string
}

// Quote is a single citation scraped from the quotes site.
type Quote struct {
	Text   string
	Author string
	Tags   []string
}

// --- JSON output shapes ---

// PartyJSON is the export shape shared by restaurant and customer.
type PartyJSON struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	Phone      *string `json:"phone_number"`
}

// OrderHeaderJSON carries the order-level fields.
type OrderHeaderJSON struct {
	Number      *string  `json:"number"`
	TotalPaid   *float64 `json:"total_paid"`
	DeliveryFee *float64 `json:"delivery_fee"`
	Datetime    *string  `json:"datetime"`
}

// OrderItemJSON is the export shape of one line item.
type OrderItemJSON struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
}

// OrderJSON is the export shape of one order document.
type OrderJSON struct {
	Order      OrderHeaderJSON `json:"Order"`
	Items      []OrderItemJSON `json:"Order Items"`
	Restaurant PartyJSON       `json:"Restaurant"`
	Customer   PartyJSON       `json:"Customer"`
}

// OrderBatch is the combined output of a batch run.
type OrderBatch struct {
	Orders []OrderJSON `json:"orders"`
}

// JSON converts an Order to its export shape. Missing fields stay null.
func (o Order) JSON() OrderJSON {
	out := OrderJSON{
		Order: OrderHeaderJSON{
			Number:      o.Number,
			TotalPaid:   o.Totals.Total,
			DeliveryFee: o.Totals.DeliveryFee,
		},
		Items: make([]OrderItemJSON, 0, len(o.Items)),
		Restaurant: PartyJSON{
			Name:       o.Restaurant.Name,
			Address:    o.Restaurant.Address,
			City:       o.Restaurant.City,
			PostalCode: o.Restaurant.PostalCode,
			Phone:      o.Restaurant.Phone,
		},
		Customer: PartyJSON{
			Name:       o.Customer.Name,
			Address:    o.Customer.Address,
			City:       o.Customer.City,
			PostalCode: o.Customer.PostalCode,
			Phone:      o.Customer.Phone,
		},
	}
	if o.Date != nil {
		raw := o.Date.Raw
		out.Order.Datetime = &raw
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItemJSON{
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	return out
}
