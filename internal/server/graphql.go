package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/beetlebugorg/gars/pkg/gars"
)

// buildSchema creates the GraphQL schema over the coordinate codec and the
// labeler.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	pointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Point",
		Fields: graphql.Fields{
			"lon": &graphql.Field{Type: graphql.Float},
			"lat": &graphql.Field{Type: graphql.Float},
		},
	})

	coordinateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Coordinate",
		Fields: graphql.Fields{
			"gars":           &graphql.Field{Type: graphql.String},
			"precision":      &graphql.Field{Type: graphql.String},
			"longitude_band": &graphql.Field{Type: graphql.Int},
			"latitude_band":  &graphql.Field{Type: graphql.String},
			"quadrant":       &graphql.Field{Type: graphql.Int},
			"keypad":         &graphql.Field{Type: graphql.Int},
			"southwest":      &graphql.Field{Type: pointType},
			"bounds":         &graphql.Field{Type: graphql.NewList(graphql.Float)},
		},
	})

	labelType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Label",
		Fields: graphql.Fields{
			"text":       &graphql.Field{Type: graphql.String},
			"grid_type":  &graphql.Field{Type: graphql.String},
			"coordinate": &graphql.Field{Type: graphql.String},
			"center":     &graphql.Field{Type: pointType},
			"bounds":     &graphql.Field{Type: graphql.NewList(graphql.Float)},
		},
	})

	labeler := gars.NewLabeler(0, gars.NoMaxZoom)

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"coordinate": &graphql.Field{
				Type:        coordinateType,
				Description: "Parse a GARS string",
				Args: graphql.FieldConfigArgument{
					"gars": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					value := p.Args["gars"].(string)
					c, err := gars.Parse(value)
					if err != nil {
						return nil, err
					}
					precision, err := gars.ParsePrecision(value)
					if err != nil {
						return nil, err
					}
					return coordinateMap(newCoordinateResponse(c, precision)), nil
				},
			},
			"encode": &graphql.Field{
				Type:        coordinateType,
				Description: "Encode a position as a GARS coordinate",
				Args: graphql.FieldConfigArgument{
					"lon":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lat":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"precision": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: gars.FiveMinute.String()},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					precision, err := gars.ParseGridType(p.Args["precision"].(string))
					if err != nil {
						return nil, err
					}
					if precision.IsDegree() {
						return nil, fmt.Errorf("precision %s has no GARS string", precision)
					}
					c := gars.From(p.Args["lon"].(float64), p.Args["lat"].(float64))
					return coordinateMap(newCoordinateResponse(c, precision)), nil
				},
			},
			"labels": &graphql.Field{
				Type:        graphql.NewList(labelType),
				Description: "Labels of one grid type inside a bounding box",
				Args: graphql.FieldConfigArgument{
					"minLon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"minLat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"maxLon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"maxLat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"type":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: gars.OneDegree.String()},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					gridType, err := gars.ParseGridType(p.Args["type"].(string))
					if err != nil {
						return nil, err
					}
					bounds := gars.BoundsOf(
						p.Args["minLon"].(float64), p.Args["minLat"].(float64),
						p.Args["maxLon"].(float64), p.Args["maxLat"].(float64))
					if err := checkBBox(bounds); err != nil {
						return nil, err
					}
					if n := estimateLabels(bounds, gridType); n > deps.maxLabels() {
						return nil, fmt.Errorf("bbox holds about %d %s labels, limit is %d", n, gridType, deps.maxLabels())
					}

					labels := labeler.Labels(bounds, gridType)
					result := make([]map[string]interface{}, 0, len(labels))
					for _, l := range labels {
						result = append(result, map[string]interface{}{
							"text":       l.Text,
							"grid_type":  l.GridType.String(),
							"coordinate": l.Coordinate.String(),
							"center":     pointMap(l.Center.Lon, l.Center.Lat),
							"bounds":     bboxList(newBBox(l.Bounds)),
						})
					}
					return result, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

func coordinateMap(r CoordinateResponse) map[string]interface{} {
	return map[string]interface{}{
		"gars":           r.GARS,
		"precision":      r.Precision.String(),
		"longitude_band": r.LongitudeBand,
		"latitude_band":  r.LatitudeBand,
		"quadrant":       r.Quadrant,
		"keypad":         r.Keypad,
		"southwest":      pointMap(r.Southwest.Lon, r.Southwest.Lat),
		"bounds":         bboxList(r.Bounds),
	}
}

func pointMap(lon, lat float64) map[string]interface{} {
	return map[string]interface{}{"lon": lon, "lat": lat}
}

func bboxList(b BBox) []float64 {
	return []float64{b[0], b[1], b[2], b[3]}
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Query == "" {
			return errBadRequest(c, "query is required")
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
