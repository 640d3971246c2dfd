package hub

import "testing"

func TestSubscriptionsAddRemove(t *testing.T) {
	s := newSubscriptions()
	c := &recordingConsumer{}

	s.add("d1", "c1", c, true)
	s.add("d1", "c2", c, false)
	if got := s.count("d1"); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}

	s.remove("d1", "c1")
	if got := s.count("d1"); got != 1 {
		t.Fatalf("count after remove = %d, want 1", got)
	}

	// Removing the last registration drops the device bucket entirely.
	s.remove("d1", "c2")
	if len(s.byDevice) != 0 {
		t.Errorf("byDevice = %v, want empty after last removal", s.byDevice)
	}

	// Absent mappings are no-ops.
	s.remove("d1", "c1")
	s.remove("never", "c1")
}

func TestSubscriptionsReplaceSameConsumerID(t *testing.T) {
	s := newSubscriptions()
	a := &recordingConsumer{}
	b := &recordingConsumer{}

	s.add("d1", "c1", a, false)
	s.add("d1", "c1", b, true)

	subs := s.forDevice("d1")
	if len(subs) != 1 {
		t.Fatalf("subs = %+v, want the later registration only", subs)
	}
	if subs[0].consumer != b || !subs[0].receive {
		t.Errorf("registration not replaced: %+v", subs[0])
	}
}

func TestSubscriptionsForDeviceIsACopy(t *testing.T) {
	s := newSubscriptions()
	s.add("d1", "c1", &recordingConsumer{}, true)

	subs := s.forDevice("d1")
	subs[0] = subscriber{}

	fresh := s.forDevice("d1")
	if fresh[0].id != "c1" {
		t.Error("forDevice must return a copy, not the backing set")
	}

	if got := s.forDevice("unknown"); got != nil {
		t.Errorf("forDevice(unknown) = %+v, want nil", got)
	}
}
