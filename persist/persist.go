package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/hupe1980/apcluster/graph"
	"github.com/hupe1980/apcluster/model"
)

// Options configures serialization.
type Options struct {
	// Compression selects the payload codec. Defaults to zstd.
	Compression Compression
}

func defaultOptions() Options {
	return Options{Compression: CompressionZstd}
}

// WriteAssignments serializes an assignment relation to w.
func WriteAssignments(w io.Writer, rows []model.Assignment, optFns ...func(*Options)) error {
	payload := make([]byte, 0, 8+len(rows)*24)
	payload = binary.LittleEndian.AppendUint64(payload, uint64(len(rows)))
	for _, row := range rows {
		payload = binary.LittleEndian.AppendUint64(payload, uint64(row.ClusterID))
		payload = binary.LittleEndian.AppendUint64(payload, uint64(row.Exemplar))
		payload = binary.LittleEndian.AppendUint64(payload, uint64(row.Member))
	}

	return writeContainer(w, kindAssignments, payload, optFns)
}

// ReadAssignments deserializes an assignment relation from r.
func ReadAssignments(r io.Reader) ([]model.Assignment, error) {
	payload, err := readContainer(r, kindAssignments)
	if err != nil {
		return nil, err
	}

	count, payload, err := readCount(payload, 24)
	if err != nil {
		return nil, err
	}

	rows := make([]model.Assignment, count)
	for i := range rows {
		rows[i] = model.Assignment{
			ClusterID: int64(binary.LittleEndian.Uint64(payload[0:8])),
			Exemplar:  int64(binary.LittleEndian.Uint64(payload[8:16])),
			Member:    int64(binary.LittleEndian.Uint64(payload[16:24])),
		}
		payload = payload[24:]
	}

	return rows, nil
}

// SaveModel serializes a cluster model's assignment relation to w.
func SaveModel(w io.Writer, m *model.ClusterModel, optFns ...func(*Options)) error {
	return WriteAssignments(w, m.Assignments(), optFns...)
}

// LoadModel deserializes a cluster model from r.
func LoadModel(r io.Reader) (*model.ClusterModel, error) {
	rows, err := ReadAssignments(r)
	if err != nil {
		return nil, err
	}

	return model.New(rows), nil
}

// WriteSimilarities serializes a similarity relation to w.
func WriteSimilarities(w io.Writer, sims []graph.Similarity, optFns ...func(*Options)) error {
	payload := make([]byte, 0, 8+len(sims)*24)
	payload = binary.LittleEndian.AppendUint64(payload, uint64(len(sims)))
	for _, s := range sims {
		payload = binary.LittleEndian.AppendUint64(payload, uint64(s.Source))
		payload = binary.LittleEndian.AppendUint64(payload, uint64(s.Target))
		payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(s.Value))
	}

	return writeContainer(w, kindSimilarities, payload, optFns)
}

// ReadSimilarities deserializes a similarity relation from r.
func ReadSimilarities(r io.Reader) ([]graph.Similarity, error) {
	payload, err := readContainer(r, kindSimilarities)
	if err != nil {
		return nil, err
	}

	count, payload, err := readCount(payload, 24)
	if err != nil {
		return nil, err
	}

	sims := make([]graph.Similarity, count)
	for i := range sims {
		sims[i] = graph.Similarity{
			Source: int64(binary.LittleEndian.Uint64(payload[0:8])),
			Target: int64(binary.LittleEndian.Uint64(payload[8:16])),
			Value:  math.Float64frombits(binary.LittleEndian.Uint64(payload[16:24])),
		}
		payload = payload[24:]
	}

	return sims, nil
}

// writeContainer compresses payload and writes header, checksum, length and
// compressed bytes.
func writeContainer(w io.Writer, kind uint8, payload []byte, optFns []func(*Options)) error {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var compressed bytes.Buffer
	cw, err := opts.Compression.NewCompressor(&compressed)
	if err != nil {
		return err
	}
	if _, err := cw.Write(payload); err != nil {
		return err
	}
	if err := cw.Close(); err != nil {
		return err
	}

	header := make([]byte, 0, 20)
	header = binary.LittleEndian.AppendUint32(header, magic)
	header = binary.LittleEndian.AppendUint16(header, version)
	header = append(header, kind, uint8(opts.Compression))
	header = binary.LittleEndian.AppendUint32(header, crc32.ChecksumIEEE(compressed.Bytes()))
	header = binary.LittleEndian.AppendUint64(header, uint64(compressed.Len()))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(compressed.Bytes())

	return err
}

// readContainer validates the header and checksum and returns the
// decompressed payload.
func readContainer(r io.Reader, wantKind uint8) ([]byte, error) {
	header := make([]byte, 20)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	if got := binary.LittleEndian.Uint32(header[0:4]); got != magic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, got)
	}
	if got := binary.LittleEndian.Uint16(header[4:6]); got != version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, got)
	}
	if got := header[6]; got != wantKind {
		return nil, fmt.Errorf("%w: got kind %d, want %d", ErrKindMismatch, got, wantKind)
	}
	compression := Compression(header[7])
	checksum := binary.LittleEndian.Uint32(header[8:12])
	length := binary.LittleEndian.Uint64(header[12:20])

	compressed := make([]byte, length)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if got := crc32.ChecksumIEEE(compressed); got != checksum {
		return nil, fmt.Errorf("%w: got 0x%08x, want 0x%08x", ErrChecksumMismatch, got, checksum)
	}

	dr, err := compression.NewDecompressor(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer dr.Close()

	return io.ReadAll(dr)
}

// readCount pops the leading row count and verifies the payload holds
// count records of recordSize bytes.
func readCount(payload []byte, recordSize int) (uint64, []byte, error) {
	if len(payload) < 8 {
		return 0, nil, fmt.Errorf("%w: truncated payload", ErrCorruptPayload)
	}

	count := binary.LittleEndian.Uint64(payload[:8])
	payload = payload[8:]
	if uint64(len(payload)) != count*uint64(recordSize) {
		return 0, nil, fmt.Errorf("%w: payload length %d does not match %d records",
			ErrCorruptPayload, len(payload), count)
	}

	return count, payload, nil
}
