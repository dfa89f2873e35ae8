package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailboxPreservesSendOrder(t *testing.T) {
	m := NewMailbox()

	// Far more sends than any fixed channel buffer, before a single
	// receive: Send must never block on capacity.
	const n = 1000
	sent := make([]Task, 0, n)
	for i := 0; i < n; i++ {
		task := NewTask(constHandler(i), Low)
		sent = append(sent, task)
		require.NoError(t, m.Send(task))
	}
	m.Close()

	i := 0
	for task := range m.Receive() {
		require.Less(t, i, n)
		assert.Equal(t, sent[i].ID, task.ID, "FIFO order violated at %d", i)
		i++
	}
	assert.Equal(t, n, i)
}

func TestMailboxSendAfterClose(t *testing.T) {
	m := NewMailbox()
	m.Close()
	m.Close() // idempotent

	err := m.Send(NewTask(constHandler(0), High))
	assert.ErrorIs(t, err, ErrMailboxClosed)
}

func TestMailboxChannelClosesAfterDrain(t *testing.T) {
	m := NewMailbox()
	require.NoError(t, m.Send(NewTask(constHandler(1), High)))
	m.Close()

	task, ok := <-m.Receive()
	require.True(t, ok, "buffered task must still be delivered after Close")
	assert.NotNil(t, task.Handler)

	select {
	case _, ok := <-m.Receive():
		assert.False(t, ok, "channel must be closed once drained")
	case <-time.After(time.Second):
		t.Fatal("receive channel never closed")
	}
}

func TestMailboxLen(t *testing.T) {
	m := NewMailbox()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Send(NewTask(constHandler(i), Low)))
	}
	// The pump may have already handed one task to the channel.
	assert.GreaterOrEqual(t, m.Len(), 4)
	m.Close()
}
