package bus

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestInMemoryBusDispatchesToBoundQueue(t *testing.T) {
	b := NewInMemoryBus()

	var got []string
	err := b.Subscribe(context.Background(), "q1", "orders.submitted", func(ctx context.Context, body []byte) error {
		got = append(got, string(body))
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := b.Publish(context.Background(), "orders.submitted", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(got))
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(got[0]), &payload); err != nil {
		t.Fatalf("decode delivery: %v", err)
	}
	if payload["k"] != "v" {
		t.Errorf("unexpected payload: %v", payload)
	}
}

func TestInMemoryBusOneDeliveryPerQueue(t *testing.T) {
	b := NewInMemoryBus()

	deliveries := 0
	handler := func(ctx context.Context, body []byte) error {
		deliveries++
		return nil
	}

	// two competing consumers on the same queue name
	_ = b.Subscribe(context.Background(), "q1", "orders.submitted", handler)
	_ = b.Subscribe(context.Background(), "q1", "orders.submitted", handler)

	if err := b.Publish(context.Background(), "orders.submitted", "payload"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if deliveries != 1 {
		t.Errorf("expected exactly one delivery for competing consumers, got %d", deliveries)
	}
}

func TestInMemoryBusRoutesByExactKey(t *testing.T) {
	b := NewInMemoryBus()

	delivered := false
	_ = b.Subscribe(context.Background(), "q1", "orders.submitted", func(ctx context.Context, body []byte) error {
		delivered = true
		return nil
	})

	if err := b.Publish(context.Background(), "orders.decided", "payload"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if delivered {
		t.Error("expected no delivery for a different routing key")
	}
}

func TestInMemoryBusRecordsPublishedEvenWhenHandlerFails(t *testing.T) {
	b := NewInMemoryBus()

	_ = b.Subscribe(context.Background(), "q1", "orders.submitted", func(ctx context.Context, body []byte) error {
		return errors.New("poison")
	})

	if err := b.Publish(context.Background(), "orders.submitted", "payload"); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if len(b.Published("orders.submitted")) != 1 {
		t.Error("expected published payload to be recorded")
	}
}

func TestInMemoryBusPublishAfterClose(t *testing.T) {
	b := NewInMemoryBus()
	_ = b.Close()

	if err := b.Publish(context.Background(), "orders.submitted", "payload"); err == nil {
		t.Error("expected publish on closed bus to fail")
	}
}
