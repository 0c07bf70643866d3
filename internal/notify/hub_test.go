package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcheck/internal/platform/logger"
)

var hubNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func newTestHub(opts ...Option) *Hub {
	base := []Option{
		WithClock(func() time.Time { return hubNow }),
		WithLogger(logger.Discard()),
	}
	return NewHub(append(base, opts...)...)
}

func receive(t *testing.T, sub *Subscription) Message {
	t.Helper()
	select {
	case msg := <-sub.C:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHubPublishDelivers(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("emp-1")
	defer sub.Close()
	other := hub.Subscribe("emp-2")
	defer other.Close()

	delivered := hub.Publish("emp-1", Message{Kind: "apply_now", Title: "Apply"})
	assert.Equal(t, 1, delivered)

	msg := receive(t, sub)
	assert.Equal(t, "apply_now", msg.Kind)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, hubNow, msg.CreatedAt)

	select {
	case <-other.C:
		t.Fatal("message leaked to another employee")
	default:
	}
}

func TestHubPublishIgnoresEmpty(t *testing.T) {
	hub := newTestHub()
	assert.Equal(t, 0, hub.Publish("", Message{Kind: "x"}))
	assert.Equal(t, 0, hub.Publish("emp-1"))
	assert.Empty(t, hub.Recent("emp-1"))
}

func TestHubBacklogIsBounded(t *testing.T) {
	hub := newTestHub(WithBacklogSize(3))
	for i := 0; i < 5; i++ {
		hub.Publish("emp-1", Message{ID: fmt.Sprintf("m%d", i), Kind: "letter_available"})
	}

	recent := hub.Recent("emp-1")
	require.Len(t, recent, 3)
	assert.Equal(t, "m2", recent[0].ID)
	assert.Equal(t, "m4", recent[2].ID)

	recent[0].ID = "mutated"
	assert.Equal(t, "m2", hub.Recent("emp-1")[0].ID, "Recent returns a copy")
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := newTestHub(WithBufferSize(1))
	sub := hub.Subscribe("emp-1")
	defer sub.Close()

	done := make(chan int)
	go func() {
		done <- hub.Publish("emp-1", Message{Kind: "a"}, Message{Kind: "b"}, Message{Kind: "c"})
	}()

	select {
	case delivered := <-done:
		assert.Equal(t, 1, delivered)
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Len(t, hub.Recent("emp-1"), 3, "dropped messages stay in the backlog")
}

func TestHubAck(t *testing.T) {
	hub := newTestHub()
	hub.Publish("emp-1", Message{ID: "a"}, Message{ID: "b"}, Message{ID: "c"})

	assert.True(t, hub.Ack("emp-1", "b"))
	assert.False(t, hub.Ack("emp-1", "b"))
	assert.False(t, hub.Ack("emp-2", "a"))

	ids := []string{}
	for _, m := range hub.Recent("emp-1") {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"a", "c"}, ids)
}

func TestSubscriptionClose(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("emp-1")
	assert.Equal(t, 1, hub.Subscribers("emp-1"))

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, hub.Subscribers("emp-1"))

	_, ok := <-sub.C
	assert.False(t, ok, "channel is closed")
	assert.Equal(t, 0, hub.Publish("emp-1", Message{Kind: "x"}))
}

func TestHubPublishSkipsKnownIDs(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("emp-1")
	defer sub.Close()

	msg := Message{ID: "trip:abc:apply_now", Kind: "apply_now", Title: "Apply now"}
	assert.Equal(t, 1, hub.Publish("emp-1", msg))
	assert.Equal(t, 0, hub.Publish("emp-1", msg, msg))

	assert.Len(t, hub.Recent("emp-1"), 1)
	assert.Equal(t, "trip:abc:apply_now", receive(t, sub).ID)
	select {
	case extra := <-sub.C:
		t.Fatalf("duplicate delivered: %+v", extra)
	default:
	}

	assert.Equal(t, 1, hub.Publish("emp-2", msg), "ids are scoped per employee")

	require.True(t, hub.Ack("emp-1", msg.ID))
	assert.Equal(t, 1, hub.Publish("emp-1", msg), "an acknowledged notice can be raised again")
}

func TestHubSubscribeWithBacklog(t *testing.T) {
	hub := newTestHub()
	hub.Publish("emp-1", Message{ID: "n-1", Kind: "apply_now"})

	sub, backlog := hub.SubscribeWithBacklog("emp-1")
	defer sub.Close()
	require.Len(t, backlog, 1)
	assert.Equal(t, "n-1", backlog[0].ID)

	select {
	case msg := <-sub.C:
		t.Fatalf("backlog message %s also arrived on the channel", msg.ID)
	default:
	}

	hub.Publish("emp-1", Message{ID: "n-2", Kind: "letter_available"})
	assert.Equal(t, "n-2", receive(t, sub).ID)
	assert.Equal(t, 1, hub.Subscribers("emp-1"))
}

func TestHubSubscribeWithBacklogDuringPublish(t *testing.T) {
	const total = 50
	hub := newTestHub(WithBacklogSize(total), WithBufferSize(total))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range total {
			hub.Publish("emp-1", Message{ID: fmt.Sprintf("n-%d", i)})
		}
	}()

	sub, backlog := hub.SubscribeWithBacklog("emp-1")
	defer sub.Close()
	<-done

	seen := make(map[string]int, total)
	for _, m := range backlog {
		seen[m.ID]++
	}
	for len(sub.C) > 0 {
		seen[(<-sub.C).ID]++
	}

	assert.Len(t, seen, total)
	for id, n := range seen {
		assert.Equal(t, 1, n, "message %s seen %d times", id, n)
	}
}
