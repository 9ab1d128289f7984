package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastAndUnicast(t *testing.T) {
	h := NewHub()
	userID := uuid.New()
	client := &Client{send: make(chan []byte, 2), userID: userID, role: "student"}
	h.clients[client] = true

	go h.Run()
	defer h.Stop()

	h.BroadcastMessage([]byte("broadcast"))
	select {
	case msg := <-client.send:
		assert.Equal(t, "broadcast", string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("expected broadcast message")
	}

	h.SendToUser(userID, []byte("private"))
	select {
	case msg := <-client.send:
		assert.Equal(t, "private", string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("expected unicast message")
	}
}

func TestHub_SendToUser_OnlyMatchingClientsReceive(t *testing.T) {
	h := NewHub()
	targetID := uuid.New()
	otherID := uuid.New()

	target := &Client{send: make(chan []byte, 1), userID: targetID}
	other := &Client{send: make(chan []byte, 1), userID: otherID}
	h.clients[target] = true
	h.clients[other] = true

	go h.Run()
	defer h.Stop()

	h.SendToUser(targetID, []byte("only-target"))

	select {
	case msg := <-target.send:
		assert.Equal(t, "only-target", string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("target did not receive message")
	}

	select {
	case <-other.send:
		t.Fatal("non-target client should not receive unicast")
	default:
	}
}

func TestHub_SendToRole_OnlyMatchingRolesReceive(t *testing.T) {
	h := NewHub()

	student := &Client{send: make(chan []byte, 1), userID: uuid.New(), role: "student"}
	faculty := &Client{send: make(chan []byte, 1), userID: uuid.New(), role: "faculty"}
	h.clients[student] = true
	h.clients[faculty] = true

	go h.Run()
	defer h.Stop()

	h.SendToRole("student", []byte("students-only"))

	select {
	case msg := <-student.send:
		assert.Equal(t, "students-only", string(msg))
	case <-time.After(2 * time.Second):
		t.Fatal("student did not receive role message")
	}

	select {
	case <-faculty.send:
		t.Fatal("faculty client should not receive student role message")
	default:
	}
}

func TestHub_SenderHelpers(t *testing.T) {
	h := NewHub()

	doneBroadcast := make(chan []byte, 1)
	go func() { doneBroadcast <- <-h.broadcast }()
	h.BroadcastMessage([]byte("x"))
	require.Equal(t, "x", string(<-doneBroadcast))

	doneUnicast := make(chan UnicastMessage, 1)
	go func() { doneUnicast <- <-h.unicast }()
	uid := uuid.New()
	h.SendToUser(uid, []byte("y"))
	got := <-doneUnicast
	require.Equal(t, uid, got.UserID)
	require.Equal(t, "y", string(got.Message))

	doneRolecast := make(chan RoleMessage, 1)
	go func() { doneRolecast <- <-h.rolecast }()
	h.SendToRole("admin", []byte("z"))
	gotRole := <-doneRolecast
	require.Equal(t, "admin", gotRole.Role)
	require.Equal(t, "z", string(gotRole.Message))
}

func TestHub_StopUnblocksSenders(t *testing.T) {
	h := NewHub()
	h.Stop()

	done := make(chan struct{})
	go func() {
		h.BroadcastMessage([]byte("dropped"))
		h.SendToUser(uuid.New(), []byte("dropped"))
		h.SendToRole("student", []byte("dropped"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("senders blocked after Stop")
	}
}
