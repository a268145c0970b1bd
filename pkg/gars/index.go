package gars

import (
	"sort"

	"github.com/dhconnelly/rtreego"
)

// LabelIndex is an R-tree over grid labels for hit testing and viewport
// queries.
//
// Example:
//
//	idx := gars.NewLabelIndex(zg.LabelsForTile(tile))
//	if label, ok := idx.Containing(gars.Point{Lon: -77.03, Lat: 38.89}); ok {
//	    fmt.Println(label.Text)
//	}
type LabelIndex struct {
	rtree *rtreego.Rtree
	size  int
}

// indexedLabel adapts a GridLabel to rtreego.Spatial.
type indexedLabel struct {
	label GridLabel
}

// Bounds implements rtreego.Spatial.
func (l indexedLabel) Bounds() rtreego.Rect {
	return l.label.Bounds.rect()
}

// NewLabelIndex indexes the labels.
func NewLabelIndex(labels []GridLabel) *LabelIndex {
	// 2D, min=25 children, max=50 children
	rtree := rtreego.NewTree(2, 25, 50)
	for _, label := range labels {
		rtree.Insert(indexedLabel{label: label})
	}
	return &LabelIndex{rtree: rtree, size: len(labels)}
}

// Len returns the number of indexed labels.
func (idx *LabelIndex) Len() int {
	return idx.size
}

// Search returns the labels whose cells intersect the bounds, finest grid
// first, then by label text.
func (idx *LabelIndex) Search(bounds Bounds) []GridLabel {
	results := idx.rtree.SearchIntersect(bounds.rect())

	labels := make([]GridLabel, 0, len(results))
	for _, r := range results {
		label := r.(indexedLabel).label
		if label.Bounds.Intersects(bounds) {
			labels = append(labels, label)
		}
	}

	sortLabels(labels)
	return labels
}

// Containing returns the finest label whose cell contains the point.
func (idx *LabelIndex) Containing(p Point) (GridLabel, bool) {
	labels := idx.Search(BoundsOf(p.Lon, p.Lat, p.Lon, p.Lat))
	for _, label := range labels {
		if label.Bounds.Contains(p.Lon, p.Lat) {
			return label, true
		}
	}
	return GridLabel{}, false
}

func sortLabels(labels []GridLabel) {
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].GridType != labels[j].GridType {
			return labels[i].GridType > labels[j].GridType
		}
		return labels[i].Text < labels[j].Text
	})
}
