package dataset

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/apcluster/blobstore"
	"github.com/hupe1980/apcluster/graph"
	"github.com/hupe1980/apcluster/persist"
)

func TestSlice(t *testing.T) {
	sims := []graph.Similarity{{Source: 1, Target: 2, Value: -1}}

	got, err := Slice(sims).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sims, got)
}

func TestCSV(t *testing.T) {
	input := `
# source,target,similarity
1,2,-0.5
2, 3, -1.5

3,3,2
`

	got, err := CSV(strings.NewReader(input)).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []graph.Similarity{
		{Source: 1, Target: 2, Value: -0.5},
		{Source: 2, Target: 3, Value: -1.5},
		{Source: 3, Target: 3, Value: 2},
	}, got)
}

func TestCSVErrors(t *testing.T) {
	cases := map[string]string{
		"missing field": "1,2",
		"bad source":    "x,2,3",
		"bad target":    "1,y,3",
		"bad value":     "1,2,z",
	}

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := CSV(strings.NewReader(input)).Read(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestBlobCSV(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemory()
	require.NoError(t, store.Put(ctx, "sims.csv", strings.NewReader("1,2,-0.5\n")))

	got, err := Blob(store, "sims.csv").Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []graph.Similarity{{Source: 1, Target: 2, Value: -0.5}}, got)
}

func TestBlobCSVCompressed(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemory()

	var buf bytes.Buffer
	cw, err := persist.CompressionZstd.NewCompressor(&buf)
	require.NoError(t, err)
	_, err = cw.Write([]byte("4,5,-2.5\n5,6,-3\n"))
	require.NoError(t, err)
	require.NoError(t, cw.Close())
	require.NoError(t, store.Put(ctx, "sims.csv.zst", &buf))

	got, err := Blob(store, "sims.csv.zst", func(o *BlobOptions) {
		o.Compression = persist.CompressionZstd
	}).Read(ctx)
	require.NoError(t, err)

	assert.Equal(t, []graph.Similarity{
		{Source: 4, Target: 5, Value: -2.5},
		{Source: 5, Target: 6, Value: -3},
	}, got)
}

func TestBlobBinary(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemory()

	sims := []graph.Similarity{{Source: 9, Target: 8, Value: 0.125}}
	var buf bytes.Buffer
	require.NoError(t, persist.WriteSimilarities(&buf, sims))
	require.NoError(t, store.Put(ctx, "sims.bin", &buf))

	got, err := Blob(store, "sims.bin", func(o *BlobOptions) {
		o.Format = BlobBinary
	}).Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, sims, got)
}

func TestBlobNotFound(t *testing.T) {
	_, err := Blob(blobstore.NewMemory(), "missing").Read(context.Background())
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestMerge(t *testing.T) {
	a := []graph.Similarity{{Source: 1, Target: 2, Value: -1}}
	b := []graph.Similarity{{Source: 3, Target: 4, Value: -2}}
	c := []graph.Similarity{{Source: 5, Target: 6, Value: -3}}

	got, err := Merge([]Reader{Slice(a), Slice(b), Slice(c)}, 2).Read(context.Background())
	require.NoError(t, err)

	// Reader order is preserved no matter which loads finish first.
	assert.Equal(t, []graph.Similarity{a[0], b[0], c[0]}, got)
}

func TestMergeEmpty(t *testing.T) {
	got, err := Merge(nil, 0).Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMergePropagatesError(t *testing.T) {
	failing := ReaderFunc(func(context.Context) ([]graph.Similarity, error) {
		return nil, assert.AnError
	})

	_, err := Merge([]Reader{Slice(nil), failing}, 4).Read(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
}
