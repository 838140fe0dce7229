package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GeoNet/kit/weft"
	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/GeoNet/miniseed/internal/valid"
)

type dataQuery struct {
	File  string       `schema:"file"`
	Start mseed.NSTime `schema:"start"`
	End   mseed.NSTime `schema:"end"`
}

// indexHandler serves the record index for a file as JSON.
func indexHandler(r *http.Request, h http.Header, b *bytes.Buffer) error {
	err := weft.CheckQuery(r, []string{"GET"}, []string{"file"}, []string{})
	if err != nil {
		return err
	}

	f := r.URL.Query().Get("file")

	if err := valid.Key(f); err != nil {
		return err
	}

	idx, err := cache.Index(f)
	switch {
	case err == errNotFound:
		return weft.StatusError{Code: http.StatusNotFound}
	case err != nil:
		return err
	}

	h.Set("Content-Type", "application/json")

	return json.NewEncoder(b).Encode(idx)
}

// dataHandler writes the records from a file that overlap the query time window.
func dataHandler(r *http.Request, w http.ResponseWriter) (int64, error) {
	err := weft.CheckQuery(r, []string{"GET"}, []string{"file", "start", "end"}, []string{})
	if err != nil {
		return 0, err
	}

	var q dataQuery

	if err := decoder.Decode(&q, r.URL.Query()); err != nil {
		return 0, weft.StatusError{Code: http.StatusBadRequest, Err: err}
	}

	if err := valid.Key(q.File); err != nil {
		return 0, err
	}

	if q.End < q.Start {
		return 0, weft.StatusError{Code: http.StatusBadRequest, Err: errors.New("end is before start")}
	}

	// the header is sent with the first write so a 204 still carries it.
	w.Header().Set("Content-Type", "application/vnd.fdsn.mseed")

	n, err := cache.Get(q.File, q.Start.Time(), q.End.Time(), w)
	switch {
	case err == errNotFound:
		return 0, weft.StatusError{Code: http.StatusNotFound}
	case err != nil:
		return n, err
	case n == 0:
		return 0, weft.StatusError{Code: http.StatusNoContent}
	}

	return n, nil
}
