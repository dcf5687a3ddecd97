package layout

import (
	"sort"

	jsoniter "github.com/json-iterator/go"

	"l14layout/pkg/html"
)

// Rect is an absolute border-box rectangle in page pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NodeRect pairs a node with its flattened rectangle.
type NodeRect struct {
	ID   html.NodeID `json:"id"`
	Kind BoxKind     `json:"-"`
	Rect
}

// Snapshot is the immutable outcome of one layout pass. Consumers read it
// concurrently; nothing in it changes after the pass publishes it.
type Snapshot struct {
	results map[html.NodeID]LayoutResult
	rects   map[html.NodeID]Rect
	ids     []html.NodeID
	lines   []TextLine
}

// newSnapshot flattens formatting-context-relative offsets into page
// coordinates. roots maps each node to the box whose content origin its
// offset is relative to; InvalidNodeID is the page origin.
func newSnapshot(results map[html.NodeID]LayoutResult, roots map[html.NodeID]html.NodeID) *Snapshot {
	s := &Snapshot{
		results: results,
		rects:   make(map[html.NodeID]Rect, len(results)),
		ids:     make([]html.NodeID, 0, len(results)),
	}
	for id := range results {
		s.ids = append(s.ids, id)
	}
	sort.Slice(s.ids, func(i, j int) bool { return s.ids[i] < s.ids[j] })

	origins := make(map[html.NodeID][2]float64)
	var origin func(id html.NodeID, depth int) (float64, float64)
	var rect func(id html.NodeID, depth int) Rect

	origin = func(id html.NodeID, depth int) (float64, float64) {
		if id == html.InvalidNodeID || depth > len(results) {
			return 0, 0
		}
		if o, ok := origins[id]; ok {
			return o[0], o[1]
		}
		r := rect(id, depth+1)
		res := results[id]
		x := r.X + res.Border.Left + res.Padding.Left
		y := r.Y + res.Border.Top + res.Padding.Top
		origins[id] = [2]float64{x, y}
		return x, y
	}
	rect = func(id html.NodeID, depth int) Rect {
		if r, ok := s.rects[id]; ok {
			return r
		}
		res, ok := results[id]
		if !ok {
			return Rect{}
		}
		root, ok := roots[id]
		if !ok {
			root = html.InvalidNodeID
		}
		ox, oy := origin(root, depth)
		x, y, w, h := res.borderBox()
		r := Rect{X: ox + x, Y: oy + y, Width: w, Height: h}
		s.rects[id] = r
		return r
	}

	for _, id := range s.ids {
		rect(id, 0)
	}
	for _, id := range s.ids {
		res := s.results[id]
		if len(res.Lines) == 0 {
			continue
		}
		ox, oy := origin(roots[id], 0)
		for _, l := range res.Lines {
			l.X += ox
			l.Y += oy
			l.Baseline += oy
			s.lines = append(s.lines, l)
		}
	}
	return s
}

// Result returns the raw layout result of a node.
func (s *Snapshot) Result(id html.NodeID) (LayoutResult, bool) {
	r, ok := s.results[id]
	return r, ok
}

// Rect returns the absolute border box of a node.
func (s *Snapshot) Rect(id html.NodeID) (Rect, bool) {
	r, ok := s.rects[id]
	return r, ok
}

// Rects returns every laid-out node's rectangle, ordered by NodeID.
func (s *Snapshot) Rects() []NodeRect {
	out := make([]NodeRect, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, NodeRect{ID: id, Kind: s.results[id].Kind, Rect: s.rects[id]})
	}
	return out
}

// Lines returns every text fragment in page coordinates.
func (s *Snapshot) Lines() []TextLine {
	out := make([]TextLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Len is the number of nodes with a result.
func (s *Snapshot) Len() int {
	return len(s.ids)
}

type snapshotNode struct {
	ID       html.NodeID `json:"id"`
	Kind     string      `json:"kind"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Baseline *float64    `json:"baseline,omitempty"`
}

type snapshotLine struct {
	Node     html.NodeID `json:"node"`
	Text     string      `json:"text"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	FontSize float64     `json:"font_size"`
}

// MarshalJSON encodes the flattened rectangles and text lines.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	doc := struct {
		Nodes []snapshotNode `json:"nodes"`
		Lines []snapshotLine `json:"lines,omitempty"`
	}{Nodes: make([]snapshotNode, 0, len(s.ids))}

	for _, nr := range s.Rects() {
		n := snapshotNode{ID: nr.ID, Kind: nr.Kind.String(), X: nr.X, Y: nr.Y, Width: nr.Width, Height: nr.Height}
		if b, ok := s.results[nr.ID].Baseline.Get(); ok {
			v := b.ToPx()
			n.Baseline = &v
		}
		doc.Nodes = append(doc.Nodes, n)
	}
	for _, l := range s.lines {
		doc.Lines = append(doc.Lines, snapshotLine{
			Node: l.NodeID, Text: l.Text, X: l.X, Y: l.Y, Width: l.Width, Height: l.Height, FontSize: l.FontSize,
		})
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(doc)
}
