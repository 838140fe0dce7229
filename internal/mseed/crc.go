package mseed

import "hash/crc32"

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// recordCRC calculates the CRC-32C of a miniSEED 3 record as if its CRC field were zero.
func recordCRC(rec []byte) uint32 {
	var zero [4]byte

	crc := crc32.Update(0, castagnoli, rec[:ms3CRC])
	crc = crc32.Update(crc, castagnoli, zero[:])

	return crc32.Update(crc, castagnoli, rec[ms3CRC+4:])
}
