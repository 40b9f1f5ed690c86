// Package model holds the clustering result: the assignment relation
// produced by exemplar selection and the read-only query operations over it.
package model
