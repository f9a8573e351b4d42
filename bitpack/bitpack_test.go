package bitpack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriteBitsWithinCell(t *testing.T) {
	cells := make([]uint64, 1)
	WriteBits(cells, 0b101, 3, 3)
	require.Equal(t, uint64(0b101), ReadBits(cells, 3, 3))
	require.Equal(t, uint64(0b101<<3), cells[0])
}

func TestWriteBitsPreservesSurroundingBits(t *testing.T) {
	cells := []uint64{^uint64(0)}
	WriteBits(cells, 0b00, 10, 2)
	require.Equal(t, uint64(0), ReadBits(cells, 10, 2))
	// bits outside [10,12) must remain set
	require.Equal(t, uint64(0b1111111111), ReadBits(cells, 0, 10))
	require.Equal(t, mask(50), ReadBits(cells, 12, 50))
}

func TestReadWriteBitsSpanningCellBoundary(t *testing.T) {
	cells := make([]uint64, 2)
	value := uint64(0x1F2F3F4F5F6F7F8F) & mask(40)
	WriteBits(cells, value, 60, 40)
	require.Equal(t, value, ReadBits(cells, 60, 40))
}

func TestReadWriteBitsFullWidth(t *testing.T) {
	cells := make([]uint64, 2)
	WriteBits(cells, ^uint64(0), 0, 64)
	require.Equal(t, ^uint64(0), cells[0])
	require.Equal(t, uint64(0), cells[1])
	require.Equal(t, ^uint64(0), ReadBits(cells, 0, 64))
}

func TestWriteBitsMasksHighBits(t *testing.T) {
	cells := make([]uint64, 1)
	WriteBits(cells, 0xFF, 0, 3)
	require.Equal(t, uint64(0b111), ReadBits(cells, 0, 3))
}

func TestReadWriteZeroLength(t *testing.T) {
	cells := make([]uint64, 1)
	require.Equal(t, uint64(0), ReadBits(cells, 5, 0))
	WriteBits(cells, 42, 5, 0)
	require.Equal(t, uint64(0), cells[0])
}

func TestReadBitsOutOfRangePanics(t *testing.T) {
	cells := make([]uint64, 1)
	require.Panics(t, func() { ReadBits(cells, 60, 10) })
}
