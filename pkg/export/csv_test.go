package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KyberNetwork/supplied-snapshot-exporter/pkg/types"
)

var (
	owner = "0x1111111111111111111111111111111111111111"
	token = "0x4200000000000000000000000000000000000006"
)

func snapshot(block, timestamp uint64, amount int64) types.Snapshot {
	return types.Snapshot{
		BlockNumber: types.Uint64(block),
		NetSupplied: types.NewBigInt(amount),
		Timestamp:   types.Uint64(timestamp),
		User:        types.User{ID: owner},
		Token:       types.Token{ID: token, Name: "Wrapped Ether", Symbol: "WETH"},
	}
}

func TestToRecord(t *testing.T) {
	s := snapshot(19500001, 1712322245, -2500)
	got := ToRecord(s, time.UTC)

	assert.Equal(t, uint64(19500001), got.BlockNumber)
	assert.Equal(t, "2024-04-05 13:04:05", got.Timestamp)
	assert.Equal(t, owner, got.OwnerAddress)
	assert.Equal(t, "WETH", got.TokenSymbol)
	assert.Equal(t, token, got.TokenAddress)
	assert.Equal(t, "-2500", got.TokenAmount.String())

	// the row owns its amount
	got.TokenAmount.SetInt64(1)
	assert.Equal(t, "-2500", s.NetSupplied.String())
}

func TestToRecords_KeepsOrder(t *testing.T) {
	records := ToRecords([]types.Snapshot{snapshot(3, 30, 1), snapshot(1, 10, 2), snapshot(2, 20, 3)}, time.UTC)
	require.Len(t, records, 3)
	assert.Equal(t, uint64(3), records[0].BlockNumber)
	assert.Equal(t, uint64(1), records[1].BlockNumber)
	assert.Equal(t, uint64(2), records[2].BlockNumber)
}

func TestCountNonAddressRows(t *testing.T) {
	records := ToRecords([]types.Snapshot{snapshot(1, 1, 1), snapshot(2, 2, 2)}, time.UTC)
	assert.Equal(t, 0, CountNonAddressRows(records))

	records[1].OwnerAddress = "0x1111-0"
	assert.Equal(t, 1, CountNonAddressRows(records))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output", "output.csv")
	records := ToRecords([]types.Snapshot{
		snapshot(19500001, 1712322245, 1000000000000000000),
		snapshot(19500002, 1712322257, -42),
	}, time.UTC)

	n, err := WriteCSV(path, records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.Equal(t, "19500001,2024-04-05 13:04:05,"+owner+",WETH,"+token+",1000000000000000000", lines[1])
	assert.Equal(t, "19500002,2024-04-05 13:04:17,"+owner+",WETH,"+token+",-42", lines[2])

	read, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, records[1].TokenAmount.String(), read[1].TokenAmount.String())
	assert.Equal(t, records[1].Timestamp, read[1].Timestamp)
}

func TestWriteCSV_NoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	n, err := WriteCSV(path, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Header, ",")+"\n", string(raw))
}

func TestWriteCSV_FailedWriteReportsNoRows(t *testing.T) {
	const full = "/dev/full"
	if _, err := os.Stat(full); err != nil {
		t.Skip("no /dev/full on this platform")
	}
	records := ToRecords([]types.Snapshot{snapshot(1, 1, 1)}, time.UTC)

	n, err := WriteCSV(full, records)
	assert.Error(t, err)
	assert.Zero(t, n)

	n, err = WriteCSV(full, nil)
	assert.Error(t, err)
	assert.Zero(t, n)
}

func TestReadCSV_MissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
