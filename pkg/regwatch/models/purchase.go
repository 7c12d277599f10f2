package models

// StatusInactive replaces the status of a record that left the active set.
const StatusInactive = "неактуально"

// Purchase represents one registry row.
type Purchase struct {
	// RegistryNumber is the unique purchase number, used as the diff key.
	RegistryNumber string `json:"registry_number"`
	// Subject is the free-text purchase subject.
	Subject string `json:"purchase_subject"`
	// Region is the customer region.
	Region string `json:"region"`
	// CustomerType is the customer category.
	CustomerType string `json:"customer_type"`
	// PurchaseForm is the procurement procedure (auction, tender, ...).
	PurchaseForm string `json:"purchase_form"`
	// Platform is the electronic trading platform.
	Platform string `json:"platform"`
	// Participants lists the bidders.
	Participants string `json:"participants"`
	// Winner is the winning bidder.
	Winner string `json:"winner"`
	// MaxPrice is the initial maximum contract price.
	MaxPrice float64 `json:"max_price"`
	// Estimation is the internally estimated price.
	Estimation float64 `json:"estimation"`
	// BidGuarantee is the bid security amount.
	BidGuarantee float64 `json:"bid_guarantee"`
	// ContractGuarantee is the contract security amount.
	ContractGuarantee float64 `json:"contract_guarantee"`
	// WinnerPrice is the winning lot amount.
	WinnerPrice float64 `json:"winner_price"`
	// CollectionDeadline is the end of bid collection (empty if unknown).
	CollectionDeadline string `json:"collection_deadline"`
	// ApprovalDeadline is the end of bid review (empty if unknown).
	ApprovalDeadline string `json:"approval_deadline"`
	// BiddingDateTime is the auction or tender date-time (empty if unknown).
	BiddingDateTime string `json:"bidding_datetime"`
	// Status is the registry status label.
	Status string `json:"status"`
}

// Equal reports whether p and o are the same for change detection.
// Prices are compared by their integer part; the subject, customer type,
// purchase form, platform, estimation and guarantees are not compared.
func (p Purchase) Equal(o Purchase) bool {
	return p.RegistryNumber == o.RegistryNumber &&
		p.CollectionDeadline == o.CollectionDeadline &&
		p.ApprovalDeadline == o.ApprovalDeadline &&
		p.BiddingDateTime == o.BiddingDateTime &&
		p.Region == o.Region &&
		p.Status == o.Status &&
		p.Participants == o.Participants &&
		p.Winner == o.Winner &&
		int64(p.MaxPrice) == int64(o.MaxPrice) &&
		int64(p.WinnerPrice) == int64(o.WinnerPrice)
}
