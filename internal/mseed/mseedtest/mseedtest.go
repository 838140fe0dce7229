// Package mseedtest builds miniSEED records for tests.
package mseedtest

import (
	"encoding/binary"
	"hash/crc32"
	"math"
	"strings"
	"time"

	"github.com/GeoNet/kit/seis/ms"
)

// MaxSamples2 is the most Integer32 samples a Record2 can hold.
const MaxSamples2 = (512 - 64) / 4

// Record2 returns a 512 byte big endian Integer32 miniSEED 2 record for the
// NET_STA_LOC_CHA stream id at rate samples per second.  start is stored to
// 100 microseconds.  Samples past MaxSamples2 are dropped.
func Record2(id string, start time.Time, rate int16, samples []int32) []byte {
	p := strings.Split(id, "_")
	for len(p) < 4 {
		p = append(p, "")
	}

	if len(samples) > MaxSamples2 {
		samples = samples[:MaxSamples2]
	}

	h := ms.RecordHeader{
		DataQualityIndicator:         'D',
		ReservedByte:                 ' ',
		NumberOfSamples:              uint16(len(samples)),
		SampleRateFactor:             rate,
		SampleRateMultiplier:         1,
		NumberOfBlockettesThatFollow: 1,
		BeginningOfData:              64,
		FirstBlockette:               ms.RecordHeaderSize,
	}
	h.SetSeqNumber(1)
	h.SetNetwork(p[0])
	h.SetStation(p[1])
	h.SetLocation(p[2])
	h.SetChannel(p[3])
	h.SetStartTime(start)

	b := make([]byte, 512)
	copy(b, ms.EncodeRecordHeader(h))
	copy(b[48:], ms.EncodeBlocketteHeader(ms.BlocketteHeader{BlocketteType: 1000}))
	copy(b[52:], ms.EncodeBlockette1000(ms.Blockette1000{Encoding: 3, WordOrder: 1, RecordLength: 9}))

	for i, v := range samples {
		binary.BigEndian.PutUint32(b[64+i*4:], uint32(v))
	}

	return b
}

// Record3 returns a little endian Integer32 miniSEED 3 record with a valid CRC.
func Record3(sid string, start time.Time, rate float64, samples []int32) []byte {
	t := start.UTC()

	b := make([]byte, 40+len(sid)+4*len(samples))

	b[0], b[1], b[2] = 'M', 'S', 3
	binary.LittleEndian.PutUint32(b[4:], uint32(t.Nanosecond()))
	binary.LittleEndian.PutUint16(b[8:], uint16(t.Year()))
	binary.LittleEndian.PutUint16(b[10:], uint16(t.YearDay()))
	b[12], b[13], b[14] = uint8(t.Hour()), uint8(t.Minute()), uint8(t.Second())
	b[15] = 3
	binary.LittleEndian.PutUint64(b[16:], math.Float64bits(rate))
	binary.LittleEndian.PutUint32(b[24:], uint32(len(samples)))
	b[32] = 1
	b[33] = uint8(len(sid))
	binary.LittleEndian.PutUint32(b[36:], uint32(4*len(samples)))

	copy(b[40:], sid)
	for i, v := range samples {
		binary.LittleEndian.PutUint32(b[40+len(sid)+i*4:], uint32(v))
	}

	binary.LittleEndian.PutUint32(b[28:], crc32.Checksum(b, crc32.MakeTable(crc32.Castagnoli)))

	return b
}

// Ramp returns n samples counting up from zero.
func Ramp(n int) []int32 {
	s := make([]int32, n)
	for i := range s {
		s[i] = int32(i)
	}
	return s
}
