package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/xerrors"
)

type SortDir int8

const (
	SortDirAsc  SortDir = 1
	SortDirDesc SortDir = -1
)

// Table names a journal collection in the backing store
type Table string

const (
	TableEvents Table = "events"
)

// Address is a lowercased hex account address
type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0 || a.ToLower() == EmptyAddress
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// CollectionId is a sequential collection identifier allocated by the factory
type CollectionId uint64

// TokenId is a sequential token identifier unique within its collection
type TokenId uint64

func (i TokenId) String() string {
	return fmt.Sprintf("%d", uint64(i))
}

// TokenRef addresses one token across all collections
type TokenRef struct {
	CollectionId CollectionId `json:"collectionId" bson:"collectionId" param:"collectionId"`
	TokenId      TokenId      `json:"tokenId" bson:"tokenId" param:"tokenId"`
}

func (r TokenRef) String() string {
	return fmt.Sprintf("%d:%d", uint64(r.CollectionId), uint64(r.TokenId))
}

// DisplayAmount renders a wei-like integer amount as a decimal string in
// whole units, 18 decimals, for the journal and API responses. Settlement
// math never touches this representation.
func DisplayAmount(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, -18).String()
}

// ParseAmount parses a base-10 integer amount in wei-like units.
// Negative and non-integer inputs are rejected.
func ParseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, xerrors.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}
	if v.Sign() < 0 {
		return nil, xerrors.Errorf("parse amount %q: %w", s, ErrInvalidAmount)
	}
	return v, nil
}
