package oepl

import "hash/crc32"

// Sum8 returns the additive 8 bit checksum (sum of bytes modulo 256) used to
// protect individual block parts on the wire.
func Sum8(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Sum16 returns the additive 16 bit checksum (sum of bytes modulo 65536) used
// in the block data header.
func Sum16(data []byte) uint16 {
	var sum uint16
	for _, b := range data {
		sum += uint16(b)
	}
	return sum
}

// DataVersion computes the content version announced in AvailDataInfo: the
// IEEE CRC32 of the full payload, zero-extended into the 64 bit wire field.
// The device echoes it back in every BlockRequest.
func DataVersion(data []byte) uint64 {
	return uint64(crc32.ChecksumIEEE(data))
}
