package main

import (
	"bytes"
	"net/http"

	"github.com/GeoNet/kit/weft"
)

var mux *http.ServeMux

func init() {
	mux = http.NewServeMux()

	mux.HandleFunc("/", weft.MakeHandler(weft.NoMatch, weft.TextError))
	mux.HandleFunc("/soh/up", weft.MakeHandler(weft.Up, weft.TextError))
	mux.HandleFunc("/soh", weft.MakeHandler(soh, weft.TextError))

	mux.HandleFunc("/record", weft.MakeHandler(recordHandler, weft.TextError))
	mux.HandleFunc("/index", weft.MakeHandler(indexHandler, weft.TextError))
	mux.HandleFunc("/data", weft.MakeDirectHandler(dataHandler, weft.TextError))
	mux.HandleFunc("/holdings", weft.MakeHandler(holdingsHandler, weft.TextError))
}

// soh is for external service probes.  It checks the DB when one is configured.
func soh(r *http.Request, h http.Header, b *bytes.Buffer) error {
	err := weft.CheckQuery(r, []string{"GET"}, []string{}, []string{})
	if err != nil {
		return err
	}

	if db != nil {
		if err := db.Ping(); err != nil {
			return weft.StatusError{Code: http.StatusServiceUnavailable, Err: err}
		}
	}

	h.Set("Content-Type", "text/html; charset=utf-8")

	b.Write([]byte("<html><head></head><body>ok</body></html>"))

	return nil
}
