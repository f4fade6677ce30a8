package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Price is a decimal amount stored as BSON Decimal128 and rendered as a JSON number.
type Price struct {
	decimal.Decimal
}

func NewPrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}
	return Price{Decimal: d}, nil
}

func MustPrice(s string) Price {
	p, err := NewPrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

func (p *Price) UnmarshalJSON(data []byte) error {
	return p.Decimal.UnmarshalJSON(data)
}

func (p Price) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(p.Decimal.String())
	if err != nil {
		return 0, nil, fmt.Errorf("price %s: %w", p.Decimal.String(), err)
	}
	return bson.MarshalValue(d)
}

// UnmarshalBSONValue also accepts doubles, integers and strings written by older clients.
func (p *Price) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Decimal128:
		d, err := decimal.NewFromString(raw.Decimal128().String())
		if err != nil {
			return err
		}
		p.Decimal = d
	case bsontype.Double:
		p.Decimal = decimal.NewFromFloat(raw.Double())
	case bsontype.Int32:
		p.Decimal = decimal.NewFromInt32(raw.Int32())
	case bsontype.Int64:
		p.Decimal = decimal.NewFromInt(raw.Int64())
	case bsontype.String:
		d, err := decimal.NewFromString(raw.StringValue())
		if err != nil {
			return err
		}
		p.Decimal = d
	case bsontype.Null:
		p.Decimal = decimal.Zero
	default:
		return fmt.Errorf("cannot decode %s into price", t)
	}
	return nil
}

// Float64 is used where a plain number is enough (validation, bestseller view).
func (p Price) Float64() float64 {
	f, _ := p.Decimal.Float64()
	return f
}
