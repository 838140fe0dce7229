package main

import (
	"bytes"
	"io"
	"path"
	"strings"

	"github.com/GeoNet/miniseed/internal/holdings"
	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// http://www.postgresql.org/docs/9.4/static/errcodes-appendix.html
const (
	errorUniqueViolation pq.ErrorCode = "23505"
)

const saveHoldingsSQL = `INSERT INTO mseed.holdings (streamPK, start_time, end_time, numsamples, numrecords, key, error_data, error_msg)
	SELECT streamPK, $5, $6, $7, $8, $9, $10, $11
	FROM mseed.stream
	WHERE network = $1
	AND station = $2
	AND channel = $3
	AND location = $4
	ON CONFLICT (streamPK, key) DO UPDATE SET
	start_time = EXCLUDED.start_time,
	end_time = EXCLUDED.end_time,
	numsamples = EXCLUDED.numsamples,
	numrecords = EXCLUDED.numrecords,
	error_data = EXCLUDED.error_data,
	error_msg = EXCLUDED.error_msg`

type holding struct {
	holdings.Holding
	key       string // the source key
	errorData bool   // the miniSEED file has errors
	errorMsg  string // the cause of the errors
}

// store saves holdings.
type store interface {
	save(h *holding) error
}

// loader summarises one miniSEED file and saves it.  Implements metrics.Processor.
type loader struct {
	src   source
	opts  mseed.Options
	store store
	h     holding
}

// Process loads the holding for the key in msg.  A file that does not decode is
// saved with the error rather than returning it, other errors are returned.
func (l *loader) Process(msg []byte) error {
	key := string(msg)

	var b bytes.Buffer

	if err := l.src.get(key, &b); err != nil {
		return errors.Wrapf(err, "fetching %s", key)
	}

	h, err := holdings.SingleStream(&b, l.opts)
	switch {
	case err == nil:
		l.h = holding{key: key, Holding: h}
	case isDecodeError(err):
		f, ok := fromKey(key)
		if !ok {
			return errors.Wrapf(err, "reading %s", key)
		}
		l.h = holding{key: key, Holding: f, errorData: true, errorMsg: err.Error()}
	default:
		return errors.Wrapf(err, "reading %s", key)
	}

	return l.store.save(&l.h)
}

// isDecodeError reports whether err is from bad miniSEED rather than reading it.
func isDecodeError(err error) bool {
	var e *mseed.Error
	return errors.As(err, &e) || errors.Is(err, io.ErrUnexpectedEOF)
}

// fromKey returns the stream for a key with an archive file name of the form
// NET.STA.LOC.CHA.TYPE.YEAR.DAY
func fromKey(key string) (holdings.Holding, bool) {
	p := strings.Split(path.Base(key), ".")
	if len(p) != 7 || p[0] == "" || p[1] == "" || p[3] == "" {
		return holdings.Holding{}, false
	}

	return holdings.Holding{Network: p[0], Station: p[1], Location: p[2], Channel: p[3]}, true
}

type dbStore struct{}

func (dbStore) save(h *holding) error {
	return h.save()
}

func (h *holding) save() error {
	r, err := h.saveHoldings()

	switch {
	case err != nil:
		return err
	case r == 1:
		return nil
	}

	_, err = h.saveStream()
	if err != nil {
		return err
	}

	_, err = h.saveHoldings()

	return err
}

func (h *holding) saveHoldings() (int64, error) {
	r, err := saveHoldings.Exec(h.Network, h.Station, h.Channel, h.Location, h.Start, h.End, h.NumSamples, h.Records, h.key, h.errorData, h.errorMsg)
	if err != nil {
		return 0, err
	}

	return r.RowsAffected()
}

func (h *holding) saveStream() (int64, error) {
	r, err := db.Exec(`INSERT INTO mseed.stream (network, station, channel, location) VALUES($1, $2, $3, $4)`,
		h.Network, h.Station, h.Channel, h.Location)
	if err != nil {
		if u, ok := err.(*pq.Error); ok && u.Code == errorUniqueViolation {
			return 1, nil
		}
		return 0, err
	}

	return r.RowsAffected()
}

func (h *holding) delete() error {
	_, err := db.Exec(`DELETE FROM mseed.holdings WHERE key = $1`, h.key)
	return err
}
