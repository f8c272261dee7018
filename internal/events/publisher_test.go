package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	if err := p.PublishStatusChange(context.Background(), StatusEvent{OrderRef: "ORD-1"}); err != nil {
		t.Fatalf("noop publish failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("noop close failed: %v", err)
	}
}

func TestStatusEventJSONShape(t *testing.T) {
	event := StatusEvent{
		OrderRef:   "ORD-1",
		UserID:     "user-1",
		Status:     "riderPickedUp",
		Step:       4,
		OccurredAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	body, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"orderRef", "userId", "status", "step", "occurredAt"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("missing %q in event payload: %s", key, body)
		}
	}
}
