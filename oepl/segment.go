package oepl

// Payloads travel as 4096 byte blocks, each wrapped with a 4 byte header and
// sliced into 233 byte parts. Parts are materialized on demand so a large
// firmware image never exists twice in memory.

const (
	BLOCK_DATA_SIZE      = 4096
	BLOCK_PART_DATA_SIZE = 230
	PARTS_PER_BLOCK      = 18
	BLOCK_HEADER_LEN     = 4
	BLOCK_PART_LEN       = 3 + BLOCK_PART_DATA_SIZE // sum8 + blockId + partId + data
)

// BlockCount returns ceil(dataSize / BLOCK_DATA_SIZE). A payload whose length
// is an exact multiple of the block size gets no trailing empty block.
func BlockCount(dataSize int) int {
	return (dataSize + BLOCK_DATA_SIZE - 1) / BLOCK_DATA_SIZE
}

// blockSpan returns the real payload bytes covered by a block.
func blockSpan(payload []byte, blockID int) []byte {
	start := blockID * BLOCK_DATA_SIZE
	if start >= len(payload) {
		return nil
	}
	end := start + BLOCK_DATA_SIZE
	if end > len(payload) {
		end = len(payload)
	}
	return payload[start:end]
}

// BlockPartCount returns how many parts carry real data for a block: the
// header plus the block span, in 230 byte slices.
func BlockPartCount(payload []byte, blockID int) int {
	span := blockSpan(payload, blockID)
	if span == nil {
		return 0
	}
	return (BLOCK_HEADER_LEN + len(span) + BLOCK_PART_DATA_SIZE - 1) / BLOCK_PART_DATA_SIZE
}

// BuildBlockPart builds the 233 byte payload of one SendBlockPart frame:
// sum8 CRC, block ID, part ID and 230 data bytes. Part 0 starts with the
// block header {length u16 LE, sum16 u16 LE}; the tail part is zero padded.
// Parts beyond the block's real data are all zero, the request mask decides
// whether they are ever asked for.
func BuildBlockPart(payload []byte, blockID, partID int) []byte {
	span := blockSpan(payload, blockID)

	part := make([]byte, BLOCK_PART_LEN)
	part[1] = byte(blockID)
	part[2] = byte(partID)
	data := part[3:]

	// The part's window into the header+span unit.
	offset := partID * BLOCK_PART_DATA_SIZE
	unitLen := BLOCK_HEADER_LEN + len(span)

	for i := 0; i < BLOCK_PART_DATA_SIZE && offset+i < unitLen; i++ {
		pos := offset + i
		if pos < BLOCK_HEADER_LEN {
			data[i] = blockHeaderByte(span, pos)
		} else {
			data[i] = span[pos-BLOCK_HEADER_LEN]
		}
	}

	part[0] = Sum8(part[1:])
	return part
}

func blockHeaderByte(span []byte, pos int) byte {
	length := uint16(len(span))
	crc := Sum16(span)
	switch pos {
	case 0:
		return byte(length)
	case 1:
		return byte(length >> 8)
	case 2:
		return byte(crc)
	default:
		return byte(crc >> 8)
	}
}

// PartsFromMask extracts the requested part IDs from an LSB first bitmask,
// in ascending order. Only the low PARTS_PER_BLOCK bits are meaningful.
func PartsFromMask(mask []byte) []int {
	var parts []int
	for partID := 0; partID < PARTS_PER_BLOCK; partID++ {
		byteIndex := partID / 8
		bitIndex := partID % 8
		if byteIndex < len(mask) && (mask[byteIndex]>>bitIndex)&0x01 == 1 {
			parts = append(parts, partID)
		}
	}
	return parts
}

// MaskFromParts is the inverse of PartsFromMask.
func MaskFromParts(parts []int) [6]byte {
	var mask [6]byte
	for _, partID := range parts {
		if partID >= 0 && partID < PARTS_PER_BLOCK {
			mask[partID/8] |= 1 << (partID % 8)
		}
	}
	return mask
}
