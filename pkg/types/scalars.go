package types

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ethereum/go-ethereum/common/math"
)

var null = []byte("null")

// unquote strips the quotes the subgraph puts around BigInt values. Bare numbers pass through.
func unquote(input []byte) string {
	if len(input) >= 2 && input[0] == '"' && input[len(input)-1] == '"' {
		return string(input[1 : len(input)-1])
	}
	return string(input)
}

// BigInt is a signed subgraph BigInt. A null or absent value leaves Int nil.
type BigInt struct {
	*big.Int
}

func NewBigInt(v int64) BigInt {
	return BigInt{big.NewInt(v)}
}

func (b *BigInt) UnmarshalJSON(input []byte) error {
	if bytes.Equal(input, null) {
		return nil
	}
	s := unquote(input)
	if s == "" {
		return fmt.Errorf("invalid BigInt %s", input)
	}
	v, ok := math.ParseBig256(s)
	if !ok {
		return fmt.Errorf("invalid BigInt %s", input)
	}
	b.Int = v
	return nil
}

func (b BigInt) MarshalJSON() ([]byte, error) {
	if b.Int == nil {
		return null, nil
	}
	return []byte(strconv.Quote(b.Int.String())), nil
}

// Uint64 is an unsigned subgraph BigInt or Int used for block numbers and timestamps.
type Uint64 uint64

func (u *Uint64) UnmarshalJSON(input []byte) error {
	if bytes.Equal(input, null) {
		return nil
	}
	s := unquote(input)
	if s == "" {
		return fmt.Errorf("invalid Uint64 %s", input)
	}
	v, ok := math.ParseUint64(s)
	if !ok {
		return fmt.Errorf("invalid Uint64 %s", input)
	}
	*u = Uint64(v)
	return nil
}

func (u Uint64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatUint(uint64(u), 10))), nil
}
