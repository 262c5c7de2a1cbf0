package state

import (
	"encoding/json"
	"fmt"
	"io"

	"DrawPad/internal/geom"
)

// Record is the ordered list of point groups that reproduces a drawing. It
// only grows while drawing; Reset is the only way to shrink it.
type Record struct {
	groups []PointGroup
}

// NewRecord creates a record holding copies of groups.
func NewRecord(groups []PointGroup) *Record {
	r := &Record{}
	r.Extend(groups)
	return r
}

// Len returns the number of groups.
func (r *Record) Len() int {
	return len(r.groups)
}

// Groups returns a deep copy of all groups.
func (r *Record) Groups() []PointGroup {
	return CloneGroups(r.groups)
}

// Open starts a new group and returns its index.
func (r *Record) Open(id string, style Style) int {
	r.groups = append(r.groups, PointGroup{ID: id, Style: style})
	return len(r.groups) - 1
}

// Group returns the group at idx.
func (r *Record) Group(idx int) (PointGroup, bool) {
	if idx < 0 || idx >= len(r.groups) {
		return PointGroup{}, false
	}
	return r.groups[idx], true
}

// LastPoint returns the most recent point of the group at idx.
func (r *Record) LastPoint(idx int) (geom.Point, bool) {
	if idx < 0 || idx >= len(r.groups) {
		return geom.Point{}, false
	}
	pts := r.groups[idx].Points
	if len(pts) == 0 {
		return geom.Point{}, false
	}
	return pts[len(pts)-1], true
}

// AppendPoint adds p to the group at idx.
func (r *Record) AppendPoint(idx int, p geom.Point) {
	if idx < 0 || idx >= len(r.groups) {
		return
	}
	r.groups[idx].Points = append(r.groups[idx].Points, p)
}

// Extend appends copies of groups.
func (r *Record) Extend(groups []PointGroup) {
	r.groups = append(r.groups, CloneGroups(groups)...)
}

// Reset empties the record.
func (r *Record) Reset() {
	r.groups = nil
}

// PointCount returns the total number of points across all groups.
func (r *Record) PointCount() int {
	n := 0
	for _, g := range r.groups {
		n += len(g.Points)
	}
	return n
}

// Save writes the record as indented JSON.
func (r *Record) Save(w io.Writer) error {
	groups := r.groups
	if groups == nil {
		groups = []PointGroup{}
	}
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

// Load reads point groups written by Save and validates them.
func Load(rd io.Reader) ([]PointGroup, error) {
	var groups []PointGroup
	if err := json.NewDecoder(rd).Decode(&groups); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	for i, g := range groups {
		if err := g.Validate(); err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
	}
	return groups, nil
}

// CloneGroups deep copies groups.
func CloneGroups(groups []PointGroup) []PointGroup {
	if groups == nil {
		return nil
	}
	out := make([]PointGroup, len(groups))
	for i, g := range groups {
		out[i] = g.Clone()
	}
	return out
}
