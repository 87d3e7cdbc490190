package domain

import "time"

// PaymentStatus tracks whether a budget request's approved amounts have
// been disbursed.
type PaymentStatus string

const (
	Unpaid PaymentStatus = "unpaid"
	Paid   PaymentStatus = "paid"
)

// BudgetRequest is the payment-relevant payload a proposal carries when it
// asks for funds on behalf of a team.
type BudgetRequest struct {
	Team           *ID
	RequestAmounts map[string]float64 // token -> amount
	StartDate      *time.Time
	EndDate        *time.Time
	PaymentStatus  *PaymentStatus
}

// NewBudgetRequest constructs a request, validating that amounts are
// present and positive and that the date range (if both given) is ordered.
// A fresh request carries no payment status.
func NewBudgetRequest(team *ID, amounts map[string]float64, start, end *time.Time) (*BudgetRequest, error) {
	const op = "NewBudgetRequest"
	if len(amounts) == 0 {
		return nil, InvalidArgument(op, "request amounts cannot be empty")
	}
	for token, amount := range amounts {
		if amount <= 0 {
			return nil, InvalidArgument(op, "request amount for %q must be positive, got %v", token, amount)
		}
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, InvalidArgument(op, "start date must be before or equal to end date")
	}
	copied := make(map[string]float64, len(amounts))
	for token, amount := range amounts {
		copied[token] = amount
	}
	return &BudgetRequest{
		Team:           team,
		RequestAmounts: copied,
		StartDate:      start,
		EndDate:        end,
	}, nil
}

// IsPaid reports whether the request has been marked Paid.
func (b *BudgetRequest) IsPaid() bool {
	return b.PaymentStatus != nil && *b.PaymentStatus == Paid
}

// TotalRequestAmount sums every token amount in the request.
func (b *BudgetRequest) TotalRequestAmount() float64 {
	var total float64
	for _, amount := range b.RequestAmounts {
		total += amount
	}
	return total
}

// MarkPaid flips the payment status to Paid. Callers must already have
// checked that the owning proposal is Approved (spec §4.5.2).
func (b *BudgetRequest) MarkPaid() {
	paid := Paid
	b.PaymentStatus = &paid
}

// SetDates replaces the date range, re-validating ordering.
func (b *BudgetRequest) SetDates(start, end *time.Time) error {
	if start != nil && end != nil && start.After(*end) {
		return InvalidArgument("BudgetRequest.SetDates", "start date cannot be after end date")
	}
	b.StartDate = start
	b.EndDate = end
	return nil
}
