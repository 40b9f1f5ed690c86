package dataset

import (
	"context"
	"fmt"

	"github.com/hupe1980/apcluster/blobstore"
	"github.com/hupe1980/apcluster/graph"
	"github.com/hupe1980/apcluster/persist"
)

// BlobFormat selects how a blob's bytes are decoded.
type BlobFormat uint8

const (
	// BlobCSV decodes the blob as textual triples (see CSV), optionally
	// decompressed first.
	BlobCSV BlobFormat = iota

	// BlobBinary decodes the blob as a persist container, which carries
	// its own compression codec.
	BlobBinary
)

// BlobOptions configures blob decoding.
type BlobOptions struct {
	// Format of the blob contents. Defaults to BlobCSV.
	Format BlobFormat

	// Compression applied on top of a CSV blob. Ignored for BlobBinary.
	// Defaults to none.
	Compression persist.Compression
}

// Blob reads a named blob from an object store.
func Blob(store blobstore.Store, name string, optFns ...func(*BlobOptions)) Reader {
	opts := BlobOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	return ReaderFunc(func(ctx context.Context) ([]graph.Similarity, error) {
		rc, err := store.Open(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("open blob %q: %w", name, err)
		}
		defer rc.Close()

		switch opts.Format {
		case BlobBinary:
			return persist.ReadSimilarities(rc)
		default:
			dr, err := opts.Compression.NewDecompressor(rc)
			if err != nil {
				return nil, err
			}
			defer dr.Close()

			return parseCSV(ctx, dr)
		}
	})
}
