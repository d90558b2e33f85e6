package composables

import (
	"context"

	"github.com/xe-labs/ontoview/pkg/constants"
	"github.com/xe-labs/ontoview/pkg/routing"
)

// UseRouteClass returns the class assigned to the request path, UI when the
// router did not classify it.
func UseRouteClass(ctx context.Context) routing.RouteClass {
	if class, ok := ctx.Value(constants.RouteClassKey).(routing.RouteClass); ok {
		return class
	}
	return routing.RouteClassUI
}

func WithRouteClass(ctx context.Context, class routing.RouteClass) context.Context {
	return context.WithValue(ctx, constants.RouteClassKey, class)
}
