package helper

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseAmount parses a monetary value submitted by a client. Only finite,
// non-negative decimals are accepted.
func ParseAmount(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid decimal %q: %w", value, err)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("negative amount %q", value)
	}
	return d, nil
}

// DecimalFromDecimal128 converts a stored Decimal128 into a shopspring decimal
// for exact comparison. Special values (NaN, Infinity) are rejected.
func DecimalFromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	if d.IsNaN() || d.IsInf() != 0 {
		return decimal.Decimal{}, errors.New("decimal128 is NaN or Infinity")
	}
	result, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to parse decimal128 %q: %w", d.String(), err)
	}
	return result, nil
}

// Decimal128FromDecimal converts a shopspring decimal into the Decimal128
// representation used for storage.
func Decimal128FromDecimal(d decimal.Decimal) (primitive.Decimal128, error) {
	result, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("failed to convert %q to decimal128: %w", d.String(), err)
	}
	return result, nil
}

// CompareDecimal128 compares two stored amounts exactly. It returns -1, 0 or 1.
func CompareDecimal128(d1, d2 primitive.Decimal128) (int, error) {
	f1, err := DecimalFromDecimal128(d1)
	if err != nil {
		return 0, err
	}
	f2, err := DecimalFromDecimal128(d2)
	if err != nil {
		return 0, err
	}
	return f1.Cmp(f2), nil
}

// ConvertStringsToObjectID parses a non-empty slice of hex ids, failing on the
// first invalid entry.
func ConvertStringsToObjectID(s []string) ([]primitive.ObjectID, error) {
	if len(s) == 0 {
		return nil, errors.New("empty id list")
	}

	ids := make([]primitive.ObjectID, 0, len(s))
	for _, v := range s {
		oid, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			return nil, fmt.Errorf("invalid object id %q: %w", v, err)
		}
		ids = append(ids, oid)
	}
	return ids, nil
}
