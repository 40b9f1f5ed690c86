// Package blobstore abstracts named blob storage for bulk similarity
// datasets and exported models.
//
// Stores deal in whole, immutable artifacts accessed by name: a dataset is
// written once and read back as a stream. Memory and Local back tests and
// single-machine use; the s3 and minio subpackages talk to object storage.
package blobstore
