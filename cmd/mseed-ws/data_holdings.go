package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GeoNet/kit/weft"
	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/GeoNet/miniseed/internal/valid"
)

type holdingsQuery struct {
	Network  string       `schema:"network"`
	Station  string       `schema:"station"`
	Location string       `schema:"location"`
	Channel  string       `schema:"channel"`
	Start    mseed.NSTime `schema:"start"`
	End      mseed.NSTime `schema:"end"`
}

type holding struct {
	Key        string    `json:"key"`
	Network    string    `json:"network"`
	Station    string    `json:"station"`
	Location   string    `json:"location"`
	Channel    string    `json:"channel"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	NumSamples int       `json:"numSamples"`
	NumRecords int       `json:"numRecords"`
	Error      bool      `json:"error"`
	ErrorMsg   string    `json:"errorMsg,omitempty"`
}

var holdingsParams = []string{"network", "station", "location", "channel", "start", "end"}

func validHoldings(v url.Values) error {
	checks := map[string]valid.Validator{
		"network":  valid.Network,
		"station":  valid.Station,
		"location": valid.Location,
		"channel":  valid.Channel,
	}

	for k, fn := range checks {
		if s := v.Get(k); s != "" {
			if err := fn(s); err != nil {
				return err
			}
		}
	}

	return nil
}

// holdingsHandler serves the file holdings matching a stream and time query as JSON.
func holdingsHandler(r *http.Request, h http.Header, b *bytes.Buffer) error {
	v, err := weft.CheckQueryValid(r, []string{"GET"}, []string{}, holdingsParams, validHoldings)
	if err != nil {
		return err
	}

	q := holdingsQuery{End: mseed.FromTime(time.Now().UTC())}

	if err := decoder.Decode(&q, v); err != nil {
		return weft.StatusError{Code: http.StatusBadRequest, Err: err}
	}

	if q.End < q.Start {
		return weft.StatusError{Code: http.StatusBadRequest, Err: errors.New("end is before start")}
	}

	if db == nil {
		return weft.StatusError{Code: http.StatusServiceUnavailable, Err: errors.New("no holdings database configured")}
	}

	hs, err := holdingsSearch(q)
	if err != nil {
		return err
	}

	h.Set("Content-Type", "application/json")

	return json.NewEncoder(b).Encode(hs)
}

// holdingsSearch searches for files with data in the query time window.
// network, station, channel, and location are matched using POSIX regular expressions.
// https://www.postgresql.org/docs/9.3/static/functions-matching.html
func holdingsSearch(q holdingsQuery) ([]holding, error) {
	rows, err := db.Query(`WITH s AS (SELECT streamPK, network, station, channel, location
	FROM mseed.stream WHERE network ~ $1
	AND station ~ $2
	AND channel ~ $3
	AND location ~ $4)
	SELECT key, network, station, channel, location, start_time, end_time, numsamples, numrecords, error_data, error_msg
	FROM s JOIN mseed.holdings USING (streampk)
	WHERE end_time >= $5
	AND start_time <= $6
	ORDER BY key`,
		toPattern(q.Network), toPattern(q.Station), toPattern(q.Channel), toPattern(q.Location),
		q.Start.Time(), q.End.Time())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	h := []holding{}

	for rows.Next() {
		var v holding

		err = rows.Scan(&v.Key, &v.Network, &v.Station, &v.Channel, &v.Location, &v.Start, &v.End,
			&v.NumSamples, &v.NumRecords, &v.Error, &v.ErrorMsg)
		if err != nil {
			return nil, err
		}

		h = append(h, v)
	}

	return h, rows.Err()
}

// toPattern converts a query code with ? and * wildcards to an anchored regular expression.
// An empty code matches anything and -- matches an empty location.
func toPattern(s string) string {
	switch s {
	case "":
		return ".*"
	case "--":
		return "^$"
	}

	return "^" + strings.NewReplacer("*", ".*", "?", ".").Replace(s) + "$"
}
