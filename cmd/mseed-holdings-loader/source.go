package main

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/GeoNet/kit/aws/s3"
	pcfg "github.com/GeoNet/miniseed/internal/platform/cfg"
	"github.com/pkg/errors"
)

// source lists and fetches miniSEED files.
type source interface {
	keys() ([]string, error)
	get(key string, b *bytes.Buffer) error
}

func newSource(s pcfg.Source) (source, error) {
	if !s.S3() {
		return dirSource{dir: s.Dir}, nil
	}

	c, err := s3.New()
	if err != nil {
		return nil, errors.Wrap(err, "creating S3 client")
	}

	return s3Source{client: &c, bucket: s.Bucket, prefix: s.Prefix}, nil
}

type s3Source struct {
	client         *s3.S3
	bucket, prefix string
}

func (s s3Source) keys() ([]string, error) {
	k, err := s.client.ListAll(s.bucket, s.prefix)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s/%s", s.bucket, s.prefix)
	}

	return k, nil
}

func (s s3Source) get(key string, b *bytes.Buffer) error {
	return s.client.Get(s.bucket, key, "", b)
}

// dirSource is a directory tree of miniSEED files.  Keys are slash separated
// paths relative to dir.  Hidden files are skipped.
type dirSource struct {
	dir string
}

func (d dirSource) keys() ([]string, error) {
	var k []string

	err := filepath.WalkDir(d.dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(d.dir, path)
		if err != nil {
			return err
		}

		k = append(k, filepath.ToSlash(rel))

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", d.dir)
	}

	return k, nil
}

func (d dirSource) get(key string, b *bytes.Buffer) error {
	f, err := os.Open(filepath.Join(d.dir, filepath.FromSlash(key)))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = b.ReadFrom(f)

	return err
}
