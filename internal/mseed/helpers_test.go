package mseed_test

import (
	"encoding/binary"
	"hash/crc32"
	"math"
	"time"

	"github.com/GeoNet/kit/seis/ms"
)

// ms3 describes a miniSEED 3 record for building test fixtures.
type ms3 struct {
	flags      uint8
	year, yday uint16
	hour, min  uint8
	sec        uint8
	nsec       uint32
	encoding   uint8
	rate       float64
	count      uint32
	pubVersion uint8
	sid        string
	extra      string
	payload    []byte
}

// build returns the record bytes with a valid CRC.
func (m ms3) build() []byte {
	b := make([]byte, 40+len(m.sid)+len(m.extra)+len(m.payload))

	b[0], b[1], b[2] = 'M', 'S', 3
	b[3] = m.flags
	binary.LittleEndian.PutUint32(b[4:], m.nsec)
	binary.LittleEndian.PutUint16(b[8:], m.year)
	binary.LittleEndian.PutUint16(b[10:], m.yday)
	b[12], b[13], b[14] = m.hour, m.min, m.sec
	b[15] = m.encoding
	binary.LittleEndian.PutUint64(b[16:], math.Float64bits(m.rate))
	binary.LittleEndian.PutUint32(b[24:], m.count)
	b[32] = m.pubVersion
	b[33] = uint8(len(m.sid))
	binary.LittleEndian.PutUint16(b[34:], uint16(len(m.extra)))
	binary.LittleEndian.PutUint32(b[36:], uint32(len(m.payload)))

	n := copy(b[40:], m.sid)
	n += copy(b[40+n:], m.extra)
	copy(b[40+n:], m.payload)

	binary.LittleEndian.PutUint32(b[28:], crc32.Checksum(b, crc32.MakeTable(crc32.Castagnoli)))

	return b
}

// basic is an Integer32 record with three samples at 100 Hz.
func basic() ms3 {
	return ms3{
		year: 2024, yday: 60, hour: 1, min: 2, sec: 3, nsec: 456789000,
		encoding:   3,
		rate:       100,
		count:      3,
		pubVersion: 1,
		sid:        "FDSN:XX_STA01_00_B_H_Z",
		payload:    int32s(binary.LittleEndian, 1, -2, 3),
	}
}

func int32s(order binary.ByteOrder, v ...int32) []byte {
	b := make([]byte, 4*len(v))
	for i := range v {
		order.PutUint32(b[i*4:], uint32(v[i]))
	}
	return b
}

func uint16s(order binary.ByteOrder, v ...uint16) []byte {
	b := make([]byte, 2*len(v))
	for i := range v {
		order.PutUint16(b[i*2:], v[i])
	}
	return b
}

// frame returns a 64 byte big endian Steim frame holding words, zero filled.
func frame(words ...uint32) []byte {
	b := make([]byte, 64)
	for i, w := range words {
		binary.BigEndian.PutUint32(b[i*4:], w)
	}
	return b
}

// ms2 describes a miniSEED 2 record for building test fixtures.
type ms2 struct {
	start      time.Time
	quality    byte
	correction int32
	rate       int16
	count      uint16
	encoding   uint8
	wordOrder  uint8
	exp        uint8
	microSec   int8
	b100       float32
	noB1000    bool
	dataOffset uint16
	payload    []byte
}

// build returns a miniSEED 2 record: fixed header, optional blockette 100,
// blockette 1000, blockette 1001, then the payload at offset 64 (or 80 with
// blockette 100).
func (m ms2) build() []byte {
	h := ms.RecordHeader{
		DataQualityIndicator: m.quality,
		ReservedByte:         ' ',
		NumberOfSamples:      m.count,
		SampleRateFactor:     m.rate,
		SampleRateMultiplier: 1,
		TimeCorrection:       m.correction,
	}
	h.SetSeqNumber(1)
	h.SetNetwork("NZ")
	h.SetStation("ABAZ")
	h.SetLocation("10")
	h.SetChannel("EHE")
	h.SetStartTime(m.start)

	var blk []byte
	off := uint16(ms.RecordHeaderSize)

	if m.b100 != 0 {
		b := make([]byte, 12)
		binary.BigEndian.PutUint16(b[0:], 100)
		binary.BigEndian.PutUint16(b[2:], off+12)
		binary.BigEndian.PutUint32(b[4:], math.Float32bits(m.b100))
		blk = append(blk, b...)
		off += 12
		h.NumberOfBlockettesThatFollow++
	}

	if !m.noB1000 {
		blk = append(blk, ms.EncodeBlocketteHeader(ms.BlocketteHeader{BlocketteType: 1000, NextBlockette: off + 8})...)
		blk = append(blk, ms.EncodeBlockette1000(ms.Blockette1000{Encoding: m.encoding, WordOrder: m.wordOrder, RecordLength: m.exp})...)
		off += 8
		h.NumberOfBlockettesThatFollow++
	}

	blk = append(blk, ms.EncodeBlocketteHeader(ms.BlocketteHeader{BlocketteType: 1001})...)
	blk = append(blk, ms.EncodeBlockette1001(ms.Blockette1001{MicroSec: m.microSec})...)
	off += 8
	h.NumberOfBlockettesThatFollow++

	h.FirstBlockette = ms.RecordHeaderSize
	h.BeginningOfData = off
	if m.dataOffset != 0 {
		h.BeginningOfData = m.dataOffset
	}

	reclen := 512
	if m.exp != 0 && !m.noB1000 && m.exp < 20 {
		reclen = 1 << m.exp
	}

	b := make([]byte, reclen)
	copy(b, ms.EncodeRecordHeader(h))
	copy(b[ms.RecordHeaderSize:], blk)
	copy(b[off:], m.payload)

	return b
}

// steady is an Integer32 big endian miniSEED 2 record with three samples at 100 Hz.
func steady() ms2 {
	return ms2{
		start:     time.Date(2016, time.March, 19, 0, 0, 1, 968300000, time.UTC),
		quality:   'D',
		rate:      100,
		count:     3,
		encoding:  3,
		wordOrder: 1,
		exp:       9,
		microSec:  25,
		payload:   int32s(binary.BigEndian, 1, -2, 3),
	}
}
