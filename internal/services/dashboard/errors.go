package dashboard

import (
	"context"
	"errors"
	"time"
)

// ErrQueryFailed matches every *QueryError via errors.Is.
var ErrQueryFailed = errors.New("dashboard query failed")

// QueryError is returned by every Service method when the store fails.
// It carries a fixed message per operation; the store error is logged, not
// wrapped.
type QueryError struct {
	Operation string
	Message   string
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailed
}

type operation struct {
	name    string
	message string
}

var (
	opFetchRevenue           = operation{"fetch_revenue", "Failed to fetch revenue data."}
	opFetchLatestInvoices    = operation{"fetch_latest_invoices", "Failed to fetch the latest invoices."}
	opFetchCardData          = operation{"fetch_card_data", "Failed to fetch card data."}
	opFetchFilteredInvoices  = operation{"fetch_filtered_invoices", "Failed to fetch invoices."}
	opFetchInvoicesPages     = operation{"fetch_invoices_pages", "Failed to fetch total number of invoices."}
	opFetchInvoiceByID       = operation{"fetch_invoice_by_id", "Failed to fetch invoice."}
	opFetchCustomers         = operation{"fetch_customers", "Failed to fetch all customers."}
	opFetchFilteredCustomers = operation{"fetch_filtered_customers", "Failed to fetch customer table."}
)

// guard runs fn, records metrics and replaces any error with the
// operation's QueryError after logging the cause.
func guard[T any](ctx context.Context, s *Service, op operation, fn func() (T, error)) (T, error) {
	start := time.Now()
	v, err := fn()
	s.metrics.Observe(op.name, start, err)
	if err != nil {
		s.logger.ErrorContext(ctx, "Database Error:", "operation", op.name, "error", err)
		var zero T
		return zero, &QueryError{Operation: op.name, Message: op.message}
	}
	return v, nil
}
