package http

import (
	"context"
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/core/usecases"
)

type summaryKey struct{}

// lazySummary loads the summary at most once per GraphQL request, however
// many top-level fields ask for it.
type lazySummary struct {
	once sync.Once
	sum  *domain.Summary
	err  error
}

func summaryFrom(ctx context.Context, deps *Dependencies) (*domain.Summary, error) {
	l, ok := ctx.Value(summaryKey{}).(*lazySummary)
	if !ok {
		return deps.Dashboard.Summary(ctx)
	}
	l.once.Do(func() { l.sum, l.err = deps.Dashboard.Summary(ctx) })
	return l.sum, l.err
}

// buildSchema creates the GraphQL schema wired to the dashboard service.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryCount",
		Fields: graphql.Fields{
			"access": &graphql.Field{Type: graphql.String},
			"label":  &graphql.Field{Type: graphql.String},
			"count":  &graphql.Field{Type: graphql.Int},
		},
	})

	bucketType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MileageBucket",
		Fields: graphql.Fields{
			"lower":    &graphql.Field{Type: graphql.Float},
			"upper":    &graphql.Field{Type: graphql.Float},
			"midpoint": &graphql.Field{Type: graphql.Float},
			"count":    &graphql.Field{Type: graphql.Int},
		},
	})

	activityType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ActivityTotal",
		Fields: graphql.Fields{
			"activity": &graphql.Field{Type: graphql.String},
			"label":    &graphql.Field{Type: graphql.String},
			"count":    &graphql.Field{Type: graphql.Int},
		},
	})

	trailType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Trail",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"name":         &graphql.Field{Type: graphql.String},
			"access":       &graphql.Field{Type: graphql.String},
			"access_label": &graphql.Field{Type: graphql.String},
			"mileage":      &graphql.Field{Type: graphql.Float},
			"difficulty":   &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"dogAccess": &graphql.Field{
				Type:        graphql.NewList(categoryType),
				Description: "Trail counts per dog-access category, largest first",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					sum, err := summaryFrom(p.Context, deps)
					if err != nil {
						return nil, err
					}
					return sum.DogAccess, nil
				},
			},
			"mileage": &graphql.Field{
				Type:        graphql.NewList(bucketType),
				Description: "Quantile buckets of trail mileage",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					sum, err := summaryFrom(p.Context, deps)
					if err != nil {
						return nil, err
					}
					return sum.Mileage, nil
				},
			},
			"activities": &graphql.Field{
				Type:        graphql.NewList(activityType),
				Description: "Trails allowing each activity",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					sum, err := summaryFrom(p.Context, deps)
					if err != nil {
						return nil, err
					}
					return sum.Activities, nil
				},
			},
			"trails": &graphql.Field{
				Type:        graphql.NewList(trailType),
				Description: "Classified trails, optionally filtered",
				Args: graphql.FieldConfigArgument{
					"access": &graphql.ArgumentConfig{Type: graphql.String},
					"name":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var f usecases.TrailFilter
					if raw, _ := p.Args["access"].(string); raw != "" {
						access, ok := usecases.ParseDogAccess(raw)
						if !ok {
							return nil, fmt.Errorf("unknown access %q", raw)
						}
						f.Access = access
					}
					f.Name, _ = p.Args["name"].(string)
					return deps.Dashboard.Trails(p.Context, f)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
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

		ctx := context.WithValue(c.UserContext(), summaryKey{}, &lazySummary{})
		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx,
		})

		c.Set(fiber.HeaderCacheControl, "private, max-age=0")
		return c.JSON(result)
	}
}
