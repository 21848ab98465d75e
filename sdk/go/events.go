package taskboardsdk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/taskboard-api/events"
	"github.com/taskboard-api/models"
)

// DecodePayload unmarshals a subscription event payload into the entity
// type its topic implies.
func DecodePayload(topic string, raw json.RawMessage) (any, error) {
	switch {
	case strings.HasPrefix(topic, "project"):
		var p models.Project
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
		return p, nil
	case strings.HasPrefix(topic, "task"):
		var t models.Task
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		normalizeTask(&t)
		return t, nil
	case strings.HasPrefix(topic, "user"):
		var u models.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		return u, nil
	}
	return nil, fmt.Errorf("unknown topic %q", topic)
}

// decodeEvent builds a bus-shaped event from one field of a next frame
func decodeEvent(topic string, raw json.RawMessage, correlationID string) (events.Event, error) {
	payload, err := DecodePayload(topic, raw)
	if err != nil {
		return events.Event{}, err
	}
	return events.Event{Topic: topic, Payload: payload, CorrelationID: correlationID}, nil
}

// normalizeTask backfills foreign keys from resolved relations. GraphQL
// query results carry project/assignedTo objects rather than raw ids.
func normalizeTask(t *models.Task) {
	if t.ProjectID == "" && t.Project != nil {
		t.ProjectID = t.Project.ID
	}
	if t.UserID == nil && t.AssignedTo != nil {
		id := t.AssignedTo.ID
		t.UserID = &id
	}
}
