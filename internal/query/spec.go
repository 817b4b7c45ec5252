// Package query describes store reads as plain values: a set of OR'd
// predicates, sort keys and an optional pagination window. Store adapters
// translate a Spec into whatever their backend speaks.
package query

import (
	"strconv"
	"strings"
)

type Field string

const (
	FieldCustomerName  Field = "customer.name"
	FieldCustomerEmail Field = "customer.email"
	FieldInvoiceAmount Field = "invoice.amount"
	FieldInvoiceStatus Field = "invoice.status"
	FieldInvoiceDate   Field = "invoice.date"
)

type Op int

const (
	// OpContains is a case-insensitive substring match on a string field.
	OpContains Op = iota
	// OpEquals is an exact match on an integer field.
	OpEquals
)

type Predicate struct {
	Field Field
	Op    Op
	Value any
}

func Contains(f Field, s string) Predicate {
	return Predicate{Field: f, Op: OpContains, Value: s}
}

func Equals(f Field, n int64) Predicate {
	return Predicate{Field: f, Op: OpEquals, Value: n}
}

type Order struct {
	Field Field
	Desc  bool
}

type Window struct {
	Offset int
	Limit  int
}

// Spec matches every record when AnyOf is empty, otherwise records matching
// at least one predicate.
type Spec struct {
	AnyOf   []Predicate
	OrderBy []Order
	Window  *Window
}

// PageWindow returns the window for a 1-indexed page. Pages below 1 are
// treated as the first page.
func PageWindow(page, size int) *Window {
	if page < 1 {
		page = 1
	}
	return &Window{Offset: (page - 1) * size, Limit: size}
}

// ParseAmount parses a search term as a base-10 integer amount.
func ParseAmount(q string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(q), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// InvoiceSearch matches invoices whose customer name or email, or whose
// status, contains q. When q is an integer it also matches invoices with
// that exact amount in cents.
func InvoiceSearch(q string) []Predicate {
	preds := []Predicate{
		Contains(FieldCustomerName, q),
		Contains(FieldCustomerEmail, q),
	}
	if amount, ok := ParseAmount(q); ok {
		preds = append(preds, Equals(FieldInvoiceAmount, amount))
	}
	return append(preds, Contains(FieldInvoiceStatus, q))
}

// CustomerSearch matches customers whose name or email contains q.
func CustomerSearch(q string) []Predicate {
	return []Predicate{
		Contains(FieldCustomerName, q),
		Contains(FieldCustomerEmail, q),
	}
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
