package cladesum

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// IsGoogleStoragePath reports whether path names a gs:// object.
func IsGoogleStoragePath(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// Open opens a local file, or a Google Storage object when client is non-nil
// and path starts with gs://. A missing local file yields the *fs.PathError
// from os.Open, so errors.Is(err, fs.ErrNotExist) holds.
func Open(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if client != nil && IsGoogleStoragePath(path) {
		// Detect the bucket and the path to the actual file
		pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
		if len(pathParts) != 2 {
			return nil, fmt.Errorf("Tried to split your google storage path into 2 parts, but got %d: %v", len(pathParts), pathParts)
		}
		bucketName := pathParts[0]
		pathName := pathParts[1]

		rdr, err := client.Bucket(bucketName).Object(pathName).NewReader(ctx)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %s", path, err))
		}

		return rdr, nil
	}

	return os.Open(ExpandHome(path))
}

// OpenTable opens path with Open and transparently decompresses it.
func OpenTable(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	rc, err := Open(ctx, path, client)
	if err != nil {
		return nil, err
	}

	out, err := MaybeDecompress(rc)
	if err != nil {
		rc.Close()
		return nil, err
	}

	return out, nil
}
