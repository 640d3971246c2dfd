package hub

import (
	"strings"
	"testing"

	"github.com/lumesync/lumesync/internal/light"
)

// recordingTap captures dispatched events.
type recordingTap struct {
	events []Event
}

func (t *recordingTap) StateChanged(ev Event) { t.events = append(t.events, ev) }

// panickingTap blows up on every event.
type panickingTap struct{}

func (panickingTap) StateChanged(Event) { panic("tap gone bad") }

func testEvent() Event {
	return Event{
		ServerID: "s1",
		DeviceID: "d1",
		Label:    "Desk",
		State:    light.State{On: true, Brightness: 75, Reachable: true, Label: "Desk"},
	}
}

func TestDispatchFanOut(t *testing.T) {
	var warnings []Warning
	tap := &recordingTap{}
	d := dispatcher{
		warn: func(w Warning) { warnings = append(warnings, w) },
		taps: []Tap{tap},
	}

	receiver := &recordingConsumer{}
	sink := &recordingConsumer{}
	d.dispatch(testEvent(), []subscriber{
		newSubscriber("r", receiver, true),
		newSubscriber("s", sink, false),
	})

	if len(tap.events) != 1 {
		t.Fatalf("tap events = %+v, want 1", tap.events)
	}

	got := receiver.all()
	if len(got) != 1 || got[0].State == nil {
		t.Fatalf("receiver updates = %+v, want one with state", got)
	}
	if got[0].Status != StatusOnline || got[0].State["brightness"] != 75.0 {
		t.Errorf("receiver update = %+v", got[0])
	}

	sunk := sink.all()
	if len(sunk) != 1 || sunk[0].State != nil {
		t.Errorf("sink updates = %+v, want one status-only", sunk)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", warnings)
	}
}

func TestDispatchIsolatesPanickingConsumer(t *testing.T) {
	var warnings []Warning
	d := dispatcher{warn: func(w Warning) { warnings = append(warnings, w) }}

	healthy := &recordingConsumer{}
	d.dispatch(testEvent(), []subscriber{
		newSubscriber("bad", panickingConsumer{}, true),
		newSubscriber("good", healthy, true),
	})

	if got := healthy.all(); len(got) != 1 {
		t.Errorf("healthy consumer got %+v, want 1", got)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnDelivery {
		t.Fatalf("warnings = %+v, want one delivery warning", warnings)
	}
	if !strings.Contains(warnings[0].Err.Error(), "bad") {
		t.Errorf("warning should name the consumer: %v", warnings[0].Err)
	}
}

func TestDispatchIsolatesPanickingTap(t *testing.T) {
	var warnings []Warning
	good := &recordingTap{}
	d := dispatcher{
		warn: func(w Warning) { warnings = append(warnings, w) },
		taps: []Tap{panickingTap{}, good},
	}

	consumer := &recordingConsumer{}
	d.dispatch(testEvent(), []subscriber{newSubscriber("c", consumer, true)})

	if len(good.events) != 1 {
		t.Errorf("healthy tap got %+v, want 1", good.events)
	}
	if got := consumer.all(); len(got) != 1 {
		t.Errorf("consumer got %+v, want 1", got)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnDelivery {
		t.Errorf("warnings = %+v, want one delivery warning", warnings)
	}
}

func TestDeliverDropsStaleUpdate(t *testing.T) {
	d := dispatcher{warn: func(Warning) {}}
	c := &recordingConsumer{}
	sub := newSubscriber("c1", c, true)

	d.deliver(sub, Update{DeviceID: "d1", Status: StatusOnline,
		State: map[string]any{"brightness": 90.0}}, 2)
	// A snapshot captured before the mutation above arrives late.
	d.deliver(sub, Update{DeviceID: "d1", Status: StatusOnline,
		State: map[string]any{"brightness": 30.0}}, 1)

	got := c.all()
	if len(got) != 1 {
		t.Fatalf("updates = %+v, want the stale push dropped", got)
	}
	if got[0].State["brightness"] != 90.0 {
		t.Errorf("surviving update = %+v, want the newer state", got[0])
	}
}

func TestStatusOf(t *testing.T) {
	if got := statusOf(light.State{Reachable: true}); got != StatusOnline {
		t.Errorf("reachable = %s, want online", got)
	}
	if got := statusOf(light.State{Reachable: false}); got != StatusOffline {
		t.Errorf("unreachable = %s, want offline", got)
	}
}
