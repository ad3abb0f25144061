package events

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBusPublishSubscribe(t *testing.T) {
	b := NewBus(16)

	ch, cancel := b.Subscribe(Filter{})
	defer cancel()

	b.Publish(TypeProcessing, map[string]string{"fileName": "call.webm"})

	e := recv(t, ch)
	if e.Type != TypeProcessing {
		t.Errorf("type = %q, want %q", e.Type, TypeProcessing)
	}
	if e.ID == "" {
		t.Error("event ID is empty")
	}
	if string(e.Data) != `{"fileName":"call.webm"}` {
		t.Errorf("data = %s", e.Data)
	}
}

func TestBusFilter(t *testing.T) {
	b := NewBus(16)

	ch, cancel := b.Subscribe(Filter{Types: []string{TypeError}})
	defer cancel()

	b.Publish(TypeProcessing, nil)
	b.Publish(TypeError, map[string]string{"error": "processing failed"})

	e := recv(t, ch)
	if e.Type != TypeError {
		t.Errorf("type = %q, want %q", e.Type, TypeError)
	}
	select {
	case extra := <-ch:
		t.Errorf("unexpected extra event %+v", extra)
	default:
	}
}

func TestBusReplaySince(t *testing.T) {
	b := NewBus(16)

	b.Publish(TypeProcessing, map[string]int{"n": 1})
	b.Publish(TypeCompleted, map[string]int{"n": 2})
	b.Publish(TypeCompleted, map[string]int{"n": 3})

	all := b.ReplaySince("", Filter{})
	if len(all) != 3 {
		t.Fatalf("replay all = %d events, want 3", len(all))
	}

	since := b.ReplaySince(all[0].ID, Filter{})
	if len(since) != 2 {
		t.Fatalf("replay since first = %d events, want 2", len(since))
	}
	if since[0].ID != all[1].ID || since[1].ID != all[2].ID {
		t.Error("replayed events out of order")
	}

	filtered := b.ReplaySince("", Filter{Types: []string{TypeProcessing}})
	if len(filtered) != 1 {
		t.Errorf("filtered replay = %d events, want 1", len(filtered))
	}
}

func TestBusRingOverwrite(t *testing.T) {
	b := NewBus(4)
	for i := 0; i < 10; i++ {
		b.Publish(TypeCompleted, map[string]int{"n": i})
	}
	all := b.ReplaySince("", Filter{})
	if len(all) != 4 {
		t.Errorf("replay = %d events, want ring size 4", len(all))
	}
}

func TestBusCancelStopsDelivery(t *testing.T) {
	b := NewBus(16)
	ch, cancel := b.Subscribe(Filter{})
	cancel()

	b.Publish(TypeProcessing, nil)
	select {
	case e, ok := <-ch:
		if ok {
			t.Errorf("received event %+v after cancel", e)
		}
	default:
	}
}
