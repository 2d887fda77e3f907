package export

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gocarina/gocsv"

	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/types"
	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/utils"
)

// Header is the column line of every export.
var Header = []string{"block_number", "timestamp", "owner_address", "token_symbol", "token_address", "token_amount"}

// ToRecord maps a snapshot to a csv row, rendering its timestamp in loc.
func ToRecord(s types.Snapshot, loc *time.Location) types.SnapshotRecord {
	amount := new(big.Int)
	if s.NetSupplied.Int != nil {
		amount.Set(s.NetSupplied.Int)
	}
	return types.SnapshotRecord{
		BlockNumber:  uint64(s.BlockNumber),
		Timestamp:    utils.FormatTimestamp(uint64(s.Timestamp), loc),
		OwnerAddress: s.User.ID,
		TokenSymbol:  s.Token.Symbol,
		TokenAddress: s.Token.ID,
		TokenAmount:  amount,
	}
}

// ToRecords maps snapshots to rows keeping fetch order.
func ToRecords(snapshots []types.Snapshot, loc *time.Location) []*types.SnapshotRecord {
	records := make([]*types.SnapshotRecord, 0, len(snapshots))
	for _, s := range snapshots {
		r := ToRecord(s, loc)
		records = append(records, &r)
	}
	return records
}

// CountNonAddressRows counts rows whose owner or token is not a 20 byte hex address.
func CountNonAddressRows(records []*types.SnapshotRecord) int {
	var n int
	for _, r := range records {
		if !common.IsHexAddress(r.OwnerAddress) || !common.IsHexAddress(r.TokenAddress) {
			n++
		}
	}
	return n
}

// WriteCSV writes records with a header line to path, creating missing parent directories.
// It returns the number of rows written.
func WriteCSV(path string, records []*types.SnapshotRecord) (n int, err error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("could not create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("could not create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			n, err = 0, fmt.Errorf("could not close output file: %w", cerr)
		}
	}()

	if len(records) == 0 {
		writer := gocsv.DefaultCSVWriter(f)
		if err := writer.Write(Header); err != nil {
			return 0, fmt.Errorf("could not write csv header: %w", err)
		}
		writer.Flush()
		if err := writer.Error(); err != nil {
			return 0, fmt.Errorf("could not write csv header: %w", err)
		}
		return 0, nil
	}
	if err := gocsv.MarshalFile(&records, f); err != nil {
		return 0, fmt.Errorf("could not write csv: %w", err)
	}
	return len(records), nil
}

// ReadCSV reads rows previously written by WriteCSV.
func ReadCSV(path string) ([]*types.SnapshotRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []*types.SnapshotRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, err
	}
	return records, nil
}
