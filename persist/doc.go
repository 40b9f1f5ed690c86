// Package persist serializes assignment relations and similarity datasets
// to a compact, checksummed binary container.
//
// The container starts with a fixed header (magic "APC1", format version,
// record kind, compression codec) followed by a CRC32 of the compressed
// payload, its length, and the payload itself. Corruption is detected on
// load and surfaced as typed errors.
package persist
