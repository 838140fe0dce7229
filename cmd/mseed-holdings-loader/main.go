// mseed-holdings-loader indexes miniSEED files into the holdings tables.
// Files are listed from a directory (MSEED_DIR) or an S3 bucket (S3_BUCKET, S3_PREFIX)
// and summarised by a pool of workers.  Files that do not decode are saved with their error.
package main

import (
	"database/sql"
	"log"
	"sync"

	"github.com/GeoNet/kit/cfg"
	"github.com/GeoNet/kit/metrics"
	"github.com/GeoNet/miniseed/internal/mseed"
	pcfg "github.com/GeoNet/miniseed/internal/platform/cfg"
)

const workers = 10

var (
	db           *sql.DB
	saveHoldings *sql.Stmt
	opts         mseed.Options
)

func main() {
	p, err := cfg.PostgresEnv()
	if err != nil {
		log.Fatalf("error reading DB config from the environment vars: %s", err)
	}

	d, err := pcfg.DecoderEnv()
	if err != nil {
		log.Fatalf("error reading decoder config from the environment vars: %s", err)
	}
	opts = d.Options()

	s, err := pcfg.SourceEnv()
	if err != nil {
		log.Fatalf("error reading source config from the environment vars: %s", err)
	}

	src, err := newSource(s)
	if err != nil {
		log.Fatalf("error creating source: %s", err)
	}

	db, err = sql.Open("postgres", p.Connection())
	if err != nil {
		log.Fatalf("error with DB config: %s", err)
	}
	defer db.Close()

	db.SetMaxIdleConns(p.MaxIdle)
	db.SetMaxOpenConns(p.MaxOpen)

	if err = db.Ping(); err != nil {
		log.Fatalf("problem pinging DB: %s", err)
	}

	saveHoldings, err = db.Prepare(saveHoldingsSQL)
	if err != nil {
		log.Fatalf("preparing saveHoldings statement: %s", err)
	}

	keys, err := src.keys()
	if err != nil {
		log.Fatalf("listing miniSEED files: %s", err)
	}

	log.Printf("loading holdings for %d files", len(keys))

	in := make(chan string)

	go func() {
		defer close(in)

		for _, k := range keys {
			in <- k
		}
	}()

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			procKeys(src, in)
		}()
	}
	wg.Wait()

	log.Println("done")
}

func procKeys(src source, keys <-chan string) {
	for k := range keys {
		l := loader{src: src, opts: opts, store: dbStore{}}

		if err := metrics.DoProcess(&l, []byte(k)); err != nil {
			log.Printf("ERROR: %s: %s", k, err)
		}
	}
}
