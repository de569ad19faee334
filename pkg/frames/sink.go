package frames

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob" // gs:// buckets
	_ "gocloud.dev/blob/memblob" // mem:// buckets
)

// Sink stores numbered PNG frames under a key prefix of a blob bucket.
// It is safe for concurrent use.
type Sink struct {
	bucket *blob.Bucket
	prefix string

	mu  sync.Mutex
	seq int
}

// OpenSink opens the bucket at location. A plain directory path or a
// file:// URL is created if missing; any other URL is opened through the
// gocloud URL mux (mem://, gs://). An empty prefix is replaced
// by a random run ID.
func OpenSink(ctx context.Context, location, prefix string) (*Sink, error) {
	bucket, err := openBucket(ctx, location)
	if err != nil {
		return nil, err
	}
	return NewSink(bucket, prefix), nil
}

// NewSink wraps an open bucket. The sink takes ownership of the bucket.
func NewSink(bucket *blob.Bucket, prefix string) *Sink {
	if prefix == "" {
		prefix = uuid.NewString()
	}
	return &Sink{bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

func openBucket(ctx context.Context, location string) (*blob.Bucket, error) {
	dir := ""
	if !strings.Contains(location, "://") {
		dir = location
	} else if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		dir = filepath.FromSlash(u.Host + u.Path)
	}

	if dir == "" {
		bucket, err := blob.OpenBucket(ctx, location)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open bucket %s", location)
		}
		return bucket, nil
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid output directory %s", dir)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", abs)
	}
	bucket, err := fileblob.OpenBucket(abs, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open directory bucket %s", abs)
	}
	return bucket, nil
}

// Prefix returns the key prefix frames are written under
func (s *Sink) Prefix() string {
	return s.prefix
}

// Count returns the number of frames written so far
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// WriteFrame encodes the buffer as PNG and stores it as
// <prefix>/frame_<seq>.png, returning the key
func (s *Sink) WriteFrame(ctx context.Context, data []byte, width, height int) (string, error) {
	encoded, err := PNG(data, width, height)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	key := path.Join(s.prefix, fmt.Sprintf("frame_%04d.png", s.seq))
	s.seq++
	s.mu.Unlock()

	opts := &blob.WriterOptions{ContentType: "image/png"}
	if err := s.bucket.WriteAll(ctx, key, encoded, opts); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}
	return key, nil
}

// WriteJSON stores v as <prefix>/<name>
func (s *Sink) WriteJSON(ctx context.Context, name string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrapf(err, "failed to encode %s", name)
	}

	key := path.Join(s.prefix, name)
	opts := &blob.WriterOptions{ContentType: "application/json"}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", key)
	}
	return key, nil
}

// Close closes the underlying bucket
func (s *Sink) Close() error {
	return s.bucket.Close()
}
