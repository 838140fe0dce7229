// Package mseedcache provides a RAM cache indexing mechanism for accelerating access to miniSEED files.
package mseedcache

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/GeoNet/miniseed/internal/mseed"
	"github.com/golang/groupcache"
	"github.com/pkg/errors"
)

type Cache struct {
	getterFunc   GetterFunc
	modifiedFunc ModifiedFunc
	getRangeFunc GetRangeFunc
	opts         mseed.Options
	index        *groupcache.Group
}

// Record locates one miniSEED record in a file.
type Record struct {
	SID    string `json:"sid"`
	Offset int64  `json:"offset"`
	Length int    `json:"length"`
	Start  int64  `json:"start"` // Unix nanoseconds.
	End    int64  `json:"end"`   // Unix nanoseconds.
}

// Index is the record index for a miniSEED file.
type Index struct {
	File    string   `json:"file"`
	Records []Record `json:"records"`
}

// A GetterFunc provides access to the miniSEED file name.
type GetterFunc func(name string) (io.ReadCloser, error)

// A GetRangeFunc provides access to the miniSEED file name between the byte range from-to (exclusive).
type GetRangeFunc func(name string, from, to int64) (io.ReadCloser, error)

// ModifiedFunc returns the modification time for the miniSEED file name.
type ModifiedFunc func(name string) (time.Time, error)

// InitCache returns a Cache ready for use.
// indexSize is the max size of the RAM cache for miniSEED file indexes.  Records are
// parsed with opts, UnpackData is ignored.
func InitCache(name string, indexSize int64, opts mseed.Options, g GetterFunc, m ModifiedFunc, r GetRangeFunc) Cache {
	opts.UnpackData = false

	c := Cache{
		getterFunc:   g,
		modifiedFunc: m,
		getRangeFunc: r,
		opts:         opts,
	}

	c.index = groupcache.NewGroup(name+"index", indexSize, groupcache.GetterFunc(c.indexGetter))

	return c
}

// Index returns the record index for the file name.  The index is refreshed if the
// source file is modified.
func (c *Cache) Index(name string) (Index, error) {
	mod, err := c.modifiedFunc(name)
	if err != nil {
		return Index{}, err
	}

	var b []byte

	err = c.index.Get(nil, toIndexKey(name, mod), groupcache.AllocatingByteSliceSink(&b))
	if err != nil {
		return Index{}, err
	}

	var idx Index

	err = json.Unmarshal(b, &idx)

	return idx, err
}

// Get writes the records from the file name that overlap the time window start-end to w.
// Records between the first and last overlapping record are included.
//
// Returns the number of bytes written to w
func (c *Cache) Get(name string, start, end time.Time, w io.Writer) (int64, error) {
	idx, err := c.Index(name)
	if err != nil {
		return 0, err
	}

	s := start.UnixNano()
	e := end.UnixNano()

	first, last := -1, -1

	for i, v := range idx.Records {
		if v.End < s || v.Start > e {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
	}

	if first == -1 {
		return 0, nil
	}

	from := idx.Records[first].Offset
	to := idx.Records[last].Offset + int64(idx.Records[last].Length)

	in, err := c.getRangeFunc(name, from, to)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	return io.Copy(w, in)
}

func (c *Cache) indexGetter(ctx groupcache.Context, key string, dest groupcache.Sink) error {
	name, err := fromIndexKey(key)
	if err != nil {
		return err
	}

	in, err := c.getterFunc(name)
	if err != nil {
		return err
	}
	defer in.Close()

	idx := Index{File: name}

	r := mseed.NewReader(in, c.opts)

	for {
		off := r.Offset()

		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, name)
		}

		idx.Records = append(idx.Records, Record{
			SID:    rec.SIDLossy(),
			Offset: off,
			Length: rec.RecordLength(),
			Start:  int64(rec.StartTime()),
			End:    int64(rec.EndTime()),
		})
	}

	b, err := json.Marshal(&idx)
	if err != nil {
		return err
	}

	return dest.SetBytes(b)
}

func toIndexKey(name string, modificationTime time.Time) string {
	return fmt.Sprintf("%s@%d", name, modificationTime.UnixNano())
}

func fromIndexKey(key string) (string, error) {
	i := strings.LastIndex(key, "@")
	if i < 0 {
		return "", fmt.Errorf("no modification time in key %s", key)
	}

	if _, err := strconv.ParseInt(key[i+1:], 10, 64); err != nil {
		return "", errors.Wrapf(err, "modification time in key %s", key)
	}

	return key[:i], nil
}
