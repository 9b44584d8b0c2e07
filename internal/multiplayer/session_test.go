package multiplayer

import "testing"

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s1", 2)

	for i := range 3 {
		if !s.Send(Event{Kind: EventStep, Data: []byte{byte(i)}}) {
			t.Fatalf("Send(%d) was refused", i)
		}
	}
	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", s.Dropped())
	}

	first := <-s.Events()
	second := <-s.Events()
	if first.Data[0] != 1 || second.Data[0] != 2 {
		t.Errorf("queued events = %v, %v; want 1 and 2", first.Data, second.Data)
	}
}

func TestChannelSessionClose(t *testing.T) {
	s := NewChannelSession("s1", 4)
	s.Close()
	s.Close()

	select {
	case <-s.Done():
	default:
		t.Fatal("Done() not closed")
	}
	if s.Send(Event{Kind: EventTurn}) {
		t.Error("closed session accepted an event")
	}
}

func TestSessionRegistryBroadcast(t *testing.T) {
	r := NewSessionRegistry()
	a := NewChannelSession("a", 4)
	b := NewChannelSession("b", 4)
	r.Register(a)
	r.Register(b)
	b.Close()

	if got := r.Broadcast(Event{Kind: EventSnapshot, Match: "m1"}); got != 1 {
		t.Errorf("Broadcast() reached %d sessions, want 1", got)
	}
	if evt := <-a.Events(); evt.Match != "m1" {
		t.Errorf("received %+v", evt)
	}

	r.Unregister("b")
	if r.Count() != 1 {
		t.Errorf("Count() = %d, want 1", r.Count())
	}
	if _, ok := r.Get("a"); !ok {
		t.Error("Get(a) failed")
	}

	var ids []SessionID
	r.Each(func(s SessionHandle) { ids = append(ids, s.ID()) })
	if len(ids) != 1 || ids[0] != "a" {
		t.Errorf("Each() visited %v", ids)
	}
}

func TestNewMatch(t *testing.T) {
	m := NewMatch("", MatchModeVsCPU, "s1")
	if m.ID() == "" {
		t.Error("NewMatch() left the ID empty")
	}
	if other := NewMatch("", MatchModeVsCPU); other.ID() == m.ID() {
		t.Error("match IDs collide")
	}
	if m.Mode().Opponent() != "cpu" || MatchModeHotSeat.Opponent() != "hotseat" {
		t.Error("unexpected opponent labels")
	}
	if len(m.Sessions()) != 1 || m.Sessions()[0] != "s1" {
		t.Errorf("Sessions() = %v", m.Sessions())
	}
}
