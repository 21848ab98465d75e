package gql

import (
	"context"

	"github.com/taskboard-api/services"
)

type actorKey struct{}
type correlationKey struct{}

// WithActor stores the authenticated caller on the request context.
// A nil actor marks the request as anonymous.
func WithActor(ctx context.Context, actor *services.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the caller stored on the context, or nil
func ActorFrom(ctx context.Context) *services.Actor {
	actor, _ := ctx.Value(actorKey{}).(*services.Actor)
	return actor
}

// WithCorrelationID stores the client correlation id on the request context
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFrom returns the correlation id stored on the context, or ""
func CorrelationIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
