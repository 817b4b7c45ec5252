package repository

import (
	"fmt"
	"strings"

	"invoice-dashboard-backend/internal/query"

	"gorm.io/gorm"
)

var columns = map[query.Field]string{
	query.FieldCustomerName:  "customers.name",
	query.FieldCustomerEmail: "customers.email",
	query.FieldInvoiceAmount: "invoices.amount",
	query.FieldInvoiceStatus: "invoices.status",
	query.FieldInvoiceDate:   "invoices.date",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func column(f query.Field) (string, error) {
	col, ok := columns[f]
	if !ok {
		return "", fmt.Errorf("unsupported field %q", f)
	}
	return col, nil
}

// applyFilter ORs the predicates into a single WHERE group.
func applyFilter(db *gorm.DB, preds []query.Predicate) (*gorm.DB, error) {
	if len(preds) == 0 {
		return db, nil
	}

	clauses := make([]string, 0, len(preds))
	args := make([]any, 0, len(preds))
	for _, p := range preds {
		col, err := column(p.Field)
		if err != nil {
			return nil, err
		}
		switch p.Op {
		case query.OpContains:
			s, ok := p.Value.(string)
			if !ok {
				return nil, fmt.Errorf("contains on %s needs a string, got %T", col, p.Value)
			}
			clauses = append(clauses, "LOWER("+col+`) LIKE ? ESCAPE '\'`)
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(s))+"%")
		case query.OpEquals:
			clauses = append(clauses, col+" = ?")
			args = append(args, p.Value)
		default:
			return nil, fmt.Errorf("unsupported operator %d on %s", p.Op, col)
		}
	}

	return db.Where("("+strings.Join(clauses, " OR ")+")", args...), nil
}

func applyOrder(db *gorm.DB, orders []query.Order) (*gorm.DB, error) {
	for _, o := range orders {
		col, err := column(o.Field)
		if err != nil {
			return nil, err
		}
		if o.Desc {
			db = db.Order(col + " DESC")
		} else {
			db = db.Order(col + " ASC")
		}
	}
	return db, nil
}

func applyWindow(db *gorm.DB, w *query.Window) *gorm.DB {
	if w == nil {
		return db
	}
	return db.Offset(w.Offset).Limit(w.Limit)
}

// applySpec applies filter, order and window in that order.
func applySpec(db *gorm.DB, spec query.Spec) (*gorm.DB, error) {
	db, err := applyFilter(db, spec.AnyOf)
	if err != nil {
		return nil, err
	}
	db, err = applyOrder(db, spec.OrderBy)
	if err != nil {
		return nil, err
	}
	return applyWindow(db, spec.Window), nil
}
