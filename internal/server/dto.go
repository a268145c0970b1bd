package server

import (
	"github.com/beetlebugorg/gars/pkg/gars"
)

// BBox is a west, south, east, north bounding box.
type BBox [4]float64

func newBBox(b gars.Bounds) BBox {
	return BBox{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat}
}

type PointResponse struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func newPointResponse(p gars.Point) PointResponse {
	return PointResponse{Lon: p.Lon, Lat: p.Lat}
}

// CoordinateResponse describes one GARS cell at a precision.
type CoordinateResponse struct {
	GARS          string        `json:"gars"`
	Precision     gars.GridType `json:"precision"`
	LongitudeBand int           `json:"longitude_band"`
	LatitudeBand  string        `json:"latitude_band"`
	Quadrant      int           `json:"quadrant,omitempty"`
	Keypad        int           `json:"keypad,omitempty"`
	Southwest     PointResponse `json:"southwest"`
	Bounds        BBox          `json:"bounds"`
}

func newCoordinateResponse(c gars.Coordinate, precision gars.GridType) CoordinateResponse {
	resp := CoordinateResponse{
		GARS:          c.Format(precision),
		Precision:     precision,
		LongitudeBand: c.Longitude(),
		LatitudeBand:  c.Latitude(),
		Bounds:        newBBox(c.Bounds(precision)),
	}
	resp.Southwest = PointResponse{Lon: resp.Bounds[0], Lat: resp.Bounds[1]}

	switch precision {
	case gars.FiveMinute:
		resp.Keypad = c.Keypad()
		fallthrough
	case gars.FifteenMinute:
		resp.Quadrant = c.Quadrant()
	}
	return resp
}

type LabelResponse struct {
	Text       string          `json:"text"`
	GridType   gars.GridType   `json:"grid_type"`
	Coordinate gars.Coordinate `json:"coordinate"`
	Center     PointResponse   `json:"center"`
	Bounds     BBox            `json:"bounds"`
}

func newLabelResponse(l gars.GridLabel) LabelResponse {
	return LabelResponse{
		Text:       l.Text,
		GridType:   l.GridType,
		Coordinate: l.Coordinate,
		Center:     newPointResponse(l.Center),
		Bounds:     newBBox(l.Bounds),
	}
}

func newLabelResponses(labels []gars.GridLabel) []LabelResponse {
	resp := make([]LabelResponse, 0, len(labels))
	for _, l := range labels {
		resp = append(resp, newLabelResponse(l))
	}
	return resp
}

type LineResponse struct {
	From     PointResponse `json:"from"`
	To       PointResponse `json:"to"`
	GridType gars.GridType `json:"grid_type"`
}

// LabelsResponse is the body of GET /v1/labels.
type LabelsResponse struct {
	GridType gars.GridType   `json:"grid_type"`
	Bounds   BBox            `json:"bounds"`
	Count    int             `json:"count"`
	Labels   []LabelResponse `json:"labels"`
}

// TileResponse is the body of GET /v1/tiles/:z/:x/:y.
type TileResponse struct {
	Zoom      int             `json:"zoom"`
	X         int             `json:"x"`
	Y         int             `json:"y"`
	Bounds    BBox            `json:"bounds"`
	Precision *gars.GridType  `json:"precision,omitempty"`
	Lines     []LineResponse  `json:"lines"`
	Labels    []LabelResponse `json:"labels"`
}

func newTileResponse(f gars.TileFeatures, precision *gars.GridType) TileResponse {
	lines := make([]LineResponse, 0, len(f.Lines))
	for _, l := range f.Lines {
		lines = append(lines, LineResponse{
			From:     newPointResponse(l.Point1),
			To:       newPointResponse(l.Point2),
			GridType: l.GridType,
		})
	}

	return TileResponse{
		Zoom:      f.Tile.Zoom,
		X:         f.Tile.X,
		Y:         f.Tile.Y,
		Bounds:    newBBox(f.Tile.Bounds()),
		Precision: precision,
		Lines:     lines,
		Labels:    newLabelResponses(f.Labels),
	}
}
