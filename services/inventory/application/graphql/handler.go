// Package graphql exposes the inventory use cases over GraphQL.
package graphql

import (
	"net/http"

	graphqlgo "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	appsvcs "github.com/ghuser/stocktracker/services/inventory/application/services"
)

// NewHandler parses the schema against a resolver over svc and returns the
// POST handler. It fails only if the schema and resolvers disagree.
func NewHandler(svc *appsvcs.InventoryService, production bool) (http.Handler, error) {
	schema, err := ParseSchema(svc, production)
	if err != nil {
		return nil, err
	}
	return &relay.Handler{Schema: schema}, nil
}

// ParseSchema binds Schema to the root resolver.
func ParseSchema(svc *appsvcs.InventoryService, production bool) (*graphqlgo.Schema, error) {
	return graphqlgo.ParseSchema(Schema, NewResolver(svc, production), graphqlgo.MaxDepth(8))
}
