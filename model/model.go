package model

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// NotFound is the cluster id reported for vertices that never appeared in
// the input relation.
const NotFound int64 = -1

// Assignment is one row of the assignment relation: member belongs to the
// cluster identified by ClusterID, whose exemplar is Exemplar. Every member
// appears in exactly one row.
//
// Cluster ids are dense, zero-based, run-local labels. They group rows
// within a single run and carry no meaning across runs.
type Assignment struct {
	ClusterID int64
	Exemplar  int64
	Member    int64
}

// Cluster is one materialized cluster with its explicit member collection.
type Cluster struct {
	ID       int64
	Exemplar int64
	Members  []int64
}

// ClusterModel is the immutable query interface over an assignment relation.
type ClusterModel struct {
	assignments []Assignment

	byMember  map[int64]int64
	members   map[int64]*roaring64.Bitmap
	exemplars map[int64]int64
}

// New indexes the assignment relation for querying. The rows are copied;
// the caller's slice is not retained.
func New(assignments []Assignment) *ClusterModel {
	m := &ClusterModel{
		assignments: append([]Assignment(nil), assignments...),
		byMember:    make(map[int64]int64, len(assignments)),
		members:     make(map[int64]*roaring64.Bitmap),
		exemplars:   make(map[int64]int64),
	}

	for _, a := range m.assignments {
		m.byMember[a.Member] = a.ClusterID
		m.exemplars[a.ClusterID] = a.Exemplar

		set, ok := m.members[a.ClusterID]
		if !ok {
			set = roaring64.New()
			m.members[a.ClusterID] = set
		}
		set.Add(uint64(a.Member))
	}

	return m
}

// ClusterCount returns the number of distinct cluster ids.
func (m *ClusterModel) ClusterCount() int {
	return len(m.members)
}

// FindClusterID returns the cluster id of vertexID, or NotFound when the
// vertex never appeared in any assignment row.
func (m *ClusterModel) FindClusterID(vertexID int64) int64 {
	id, ok := m.byMember[vertexID]
	if !ok {
		return NotFound
	}

	return id
}

// FindCluster returns the member set of vertexID's cluster as a bitmap, or
// an empty bitmap when the vertex is unknown. The returned bitmap is a copy
// and may be mutated freely.
func (m *ClusterModel) FindCluster(vertexID int64) *roaring64.Bitmap {
	id, ok := m.byMember[vertexID]
	if !ok {
		return roaring64.New()
	}

	return m.members[id].Clone()
}

// MaterializeClusters expands every cluster into an explicit member slice,
// ordered by cluster id with members ascending.
//
// This is memory-heavy for large clusters: it allocates every member id of
// every cluster at once. Prefer FindCluster when only some clusters are
// needed and the output set is not known to be bounded.
func (m *ClusterModel) MaterializeClusters() []Cluster {
	ids := make([]int64, 0, len(m.members))
	for id := range m.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]Cluster, 0, len(ids))
	for _, id := range ids {
		set := m.members[id]
		members := make([]int64, 0, set.GetCardinality())
		it := set.Iterator()
		for it.HasNext() {
			members = append(members, int64(it.Next()))
		}
		out = append(out, Cluster{ID: id, Exemplar: m.exemplars[id], Members: members})
	}

	return out
}

// Assignments returns a copy of the underlying assignment relation.
func (m *ClusterModel) Assignments() []Assignment {
	return append([]Assignment(nil), m.assignments...)
}
