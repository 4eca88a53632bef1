package discount

import (
	"context"
	"database/sql"
	"fmt"

	"go-cart-api/internal/shared/database/helper"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=discount_repo.go -destination=../mock/discount/discount_repo_mock.go -package=mock
type Repository interface {
	ListByProductIDs(ctx context.Context, productIDs []string) ([]Record, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const listDiscountsByProductIDs = `
SELECT product_id, discount_type, discount_value, valid_from, valid_to
FROM product_discounts
WHERE product_id = ANY($1)
ORDER BY id
`

func (r *repository) ListByProductIDs(ctx context.Context, productIDs []string) ([]Record, error) {
	if len(productIDs) == 0 {
		return []Record{}, nil
	}

	rows, err := r.db.QueryContext(ctx, listDiscountsByProductIDs, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("query discounts: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var (
			rec       Record
			rawType   string
			value     decimal.NullDecimal
			validFrom sql.NullTime
			validTo   sql.NullTime
		)
		if err := rows.Scan(&rec.ProductID, &rawType, &value, &validFrom, &validTo); err != nil {
			return nil, fmt.Errorf("scan discount: %w", err)
		}

		// unknown labels stay as-is so the resolver reports them as data errors
		rec.Type, _ = ParseType(rawType)
		rec.Value = helper.NullDecimalValue(value)
		rec.ValidFrom = helper.NullTimePtr(validFrom)
		rec.ValidTo = helper.NullTimePtr(validTo)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discounts: %w", err)
	}

	return records, nil
}

type staticRepository struct {
	records []Record
}

// NewStaticRepository serves a fixed record list, keeping list order.
func NewStaticRepository(records []Record) Repository {
	return &staticRepository{records: records}
}

func (r *staticRepository) ListByProductIDs(_ context.Context, productIDs []string) ([]Record, error) {
	want := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		want[id] = struct{}{}
	}

	out := make([]Record, 0)
	for _, rec := range r.records {
		if _, ok := want[rec.ProductID]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}
