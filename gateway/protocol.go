package gateway

import (
	"encoding/json"
	"errors"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// graphql-transport-ws message types (the subset the gateway speaks)
const (
	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgPing           = "ping"
	msgPong           = "pong"
	msgSubscribe      = "subscribe"
	msgNext           = "next"
	msgError          = "error"
	msgComplete       = "complete"
)

// Message is a graphql-transport-ws frame
type Message struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// subscribePayload is the payload of a subscribe frame
type subscribePayload struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// subscriptionField extracts the single subscription field name from the
// operation. The field name doubles as the bus topic, so no further
// translation or execution is needed to start relaying.
func subscriptionField(query string) (string, error) {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return "", err
	}

	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok || op.Operation != "subscription" {
			continue
		}
		for _, sel := range op.SelectionSet.Selections {
			if field, ok := sel.(*ast.Field); ok {
				return field.Name.Value, nil
			}
		}
	}
	return "", errors.New("operation must contain a subscription field")
}

func jsonUnmarshal(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("empty payload")
	}
	return json.Unmarshal(raw, v)
}

// errorPayload builds the payload of an error frame
func errorPayload(message string) json.RawMessage {
	raw, _ := json.Marshal([]map[string]string{{"message": message}})
	return raw
}

// nextPayload builds the payload of a next frame. The event payload sits
// under data.<field> like any GraphQL subscription result; the correlation
// id rides in extensions so originating clients can drop their own echo.
func nextPayload(field string, payload any, correlationID string) (json.RawMessage, error) {
	body := map[string]any{
		"data": map[string]any{field: payload},
	}
	if correlationID != "" {
		body["extensions"] = map[string]any{"correlationId": correlationID}
	}
	return json.Marshal(body)
}
