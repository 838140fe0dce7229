package main

import (
	"bytes"
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/GeoNet/kit/aws/s3"
	pcfg "github.com/GeoNet/miniseed/internal/platform/cfg"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
)

var errNotFound = errors.New("file not found")

// files provides the functions the record index cache reads miniSEED files with.
type files interface {
	get(name string) (io.ReadCloser, error)
	modified(name string) (time.Time, error)
	getRange(name string, from, to int64) (io.ReadCloser, error)
}

func newFiles(s pcfg.Source) (files, error) {
	if !s.S3() {
		return dirFiles{dir: s.Dir}, nil
	}

	c, err := s3.New()
	if err != nil {
		return nil, errors.Wrap(err, "creating S3 client")
	}

	return s3Files{client: &c, bucket: s.Bucket, prefix: s.Prefix}, nil
}

type dirFiles struct {
	dir string
}

func (d dirFiles) path(name string) string {
	return filepath.Join(d.dir, filepath.FromSlash(name))
}

func (d dirFiles) get(name string) (io.ReadCloser, error) {
	f, err := os.Open(d.path(name))
	if os.IsNotExist(err) {
		return nil, errNotFound
	}

	return f, err
}

func (d dirFiles) modified(name string) (time.Time, error) {
	fi, err := os.Stat(d.path(name))
	switch {
	case os.IsNotExist(err):
		return time.Time{}, errNotFound
	case err != nil:
		return time.Time{}, err
	case fi.IsDir():
		return time.Time{}, errNotFound
	}

	return fi.ModTime(), nil
}

func (d dirFiles) getRange(name string, from, to int64) (io.ReadCloser, error) {
	f, err := os.Open(d.path(name))
	if err != nil {
		return nil, err
	}

	if _, err := f.Seek(from, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}

	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(f, to-from), f}, nil
}

type s3Files struct {
	client         *s3.S3
	bucket, prefix string
}

func (s s3Files) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s s3Files) get(name string) (io.ReadCloser, error) {
	var b bytes.Buffer

	if err := s.client.Get(s.bucket, s.key(name), "", &b); err != nil {
		return nil, s.notFound(err)
	}

	return io.NopCloser(&b), nil
}

func (s s3Files) modified(name string) (time.Time, error) {
	t, err := s.client.LastModified(s.bucket, s.key(name), "")
	if err != nil {
		return time.Time{}, s.notFound(err)
	}

	return t, nil
}

// getRange fetches the whole object.  Files are day long so this is small.
func (s s3Files) getRange(name string, from, to int64) (io.ReadCloser, error) {
	var b bytes.Buffer

	if err := s.client.Get(s.bucket, s.key(name), "", &b); err != nil {
		return nil, s.notFound(err)
	}

	if to > int64(b.Len()) || from > to {
		return nil, errors.Errorf("range %d-%d outside %s", from, to, name)
	}

	return io.NopCloser(bytes.NewReader(b.Bytes()[from:to])), nil
}

func (s s3Files) notFound(err error) error {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return errNotFound
	}

	return errors.Wrap(err, s.bucket)
}
