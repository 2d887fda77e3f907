package types

import (
	"encoding/json"
	"errors"
	"math/big"
)

// User is the snapshot owner as returned by the subgraph.
type User struct {
	ID string `json:"id"`
}

// Token is the supplied ERC20 token as returned by the subgraph.
type Token struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Snapshot is one observation of a user's net supplied amount of a token at a block.
type Snapshot struct {
	BlockNumber Uint64 `json:"blockNumber"`
	NetSupplied BigInt `json:"netSupplied"`
	Timestamp   Uint64 `json:"timestamp"`
	User        User   `json:"user"`
	Token       Token  `json:"token"`
}

// UnmarshalJSON rejects snapshots whose blockNumber or timestamp is absent or null,
// since both would otherwise decode as zero.
func (s *Snapshot) UnmarshalJSON(input []byte) error {
	type snapshot Snapshot
	dec := struct {
		*snapshot
		BlockNumber *Uint64 `json:"blockNumber"`
		Timestamp   *Uint64 `json:"timestamp"`
	}{snapshot: (*snapshot)(s)}
	if err := json.Unmarshal(input, &dec); err != nil {
		return err
	}
	if dec.BlockNumber == nil {
		return errors.New("missing blockNumber")
	}
	if dec.Timestamp == nil {
		return errors.New("missing timestamp")
	}
	s.BlockNumber = *dec.BlockNumber
	s.Timestamp = *dec.Timestamp
	return nil
}

// Validate reports the first required field missing from the snapshot.
func (s *Snapshot) Validate() error {
	switch {
	case s.NetSupplied.Int == nil:
		return errors.New("missing netSupplied")
	case s.User.ID == "":
		return errors.New("missing user.id")
	case s.Token.ID == "":
		return errors.New("missing token.id")
	case s.Token.Symbol == "":
		return errors.New("missing token.symbol")
	}
	return nil
}

// SnapshotRecord is one exported csv row.
// Addresses stay strings so the subgraph ids are written as returned, without checksum casing.
type SnapshotRecord struct {
	BlockNumber  uint64   `csv:"block_number"`
	Timestamp    string   `csv:"timestamp"`
	OwnerAddress string   `csv:"owner_address"`
	TokenSymbol  string   `csv:"token_symbol"`
	TokenAddress string   `csv:"token_address"`
	TokenAmount  *big.Int `csv:"token_amount"`
}
