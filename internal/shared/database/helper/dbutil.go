package helper

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// NullTimePtr maps a nullable timestamp column to an optional time.
func NullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// NullDecimalValue maps a nullable numeric column, NULL becoming zero.
func NullDecimalValue(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}

func TimeToNull(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
