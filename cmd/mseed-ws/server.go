package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/GeoNet/kit/cfg"
	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/GeoNet/miniseed/internal/mseedcache"
	pcfg "github.com/GeoNet/miniseed/internal/platform/cfg"
	"github.com/gorilla/schema"
	_ "github.com/lib/pq"
)

var (
	db      *sql.DB
	decoder = newDecoder() // decoder for URL queries.
	cache   mseedcache.Cache
	opts    mseed.Options
)

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(false)
	return d
}

func main() {
	d, err := pcfg.DecoderEnv()
	if err != nil {
		log.Fatalf("error reading decoder config from the environment vars: %s", err)
	}
	opts = d.Options()

	s, err := pcfg.SourceEnv()
	if err != nil {
		log.Fatalf("error reading source config from the environment vars: %s", err)
	}

	f, err := newFiles(s)
	if err != nil {
		log.Fatal(err)
	}

	cache = mseedcache.InitCache("mseed-ws", 100000000, opts, f.get, f.modified, f.getRange)

	// the holdings query is only served when a DB is configured.
	if os.Getenv("DB_HOST") != "" {
		p, err := cfg.PostgresEnv()
		if err != nil {
			log.Fatalf("error reading DB config from the environment vars: %s", err)
		}

		// set a statement timeout to cancel any very long running DB queries.
		// Value is int milliseconds.
		db, err = sql.Open("postgres", p.Connection()+" statement_timeout=60000")
		if err != nil {
			log.Fatalf("error with DB config: %s", err)
		}
		defer db.Close()

		db.SetMaxIdleConns(p.MaxIdle)
		db.SetMaxOpenConns(p.MaxOpen)

		if err = db.Ping(); err != nil {
			log.Println("ERROR: problem pinging DB - is it up and contactable? 500s will be served")
		}
	}

	log.Println("starting server")
	server := &http.Server{
		Addr:         ":8080",
		Handler:      mux,
		ReadTimeout:  1 * time.Minute,
		WriteTimeout: 10 * time.Minute,
	}
	log.Fatal(server.ListenAndServe())
}
