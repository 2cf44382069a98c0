package app

import (
	"testing"

	"github.com/dkeye/Parley/internal/core"
	"github.com/dkeye/Parley/internal/domain"
)

func createGroup(t *testing.T, c *Coordinator, client core.ClientID, conn *fakeConn, name string) domain.GroupID {
	t.Helper()
	c.CreateGroup(client, name)
	ev := conn.last(t, "group-created")
	g := ev["group"].(map[string]any)
	return domain.GroupID(g["id"].(string))
}

func TestCreateGroup_CreatorIsOnlyMember(t *testing.T) {
	c := NewCoordinator(100)
	a, b := &fakeConn{}, &fakeConn{}
	c.Claim("ca", a, "Alice", "")
	c.Claim("cb", b, "Bob", "")

	c.CreateGroup("ca", "  book club ")

	// Announced to everyone, trimmed name, creator as sole member.
	for _, conn := range []*fakeConn{a, b} {
		g := conn.last(t, "group-created")["group"].(map[string]any)
		if g["name"] != "book club" {
			t.Errorf("expected trimmed name, got %q", g["name"])
		}
		if members := g["members"].([]any); len(members) != 1 {
			t.Errorf("expected 1 member, got %d", len(members))
		}
	}
}

func TestJoinGroup_SystemNoticeAndUpdate(t *testing.T) {
	c := NewCoordinator(100)
	a, b := &fakeConn{}, &fakeConn{}
	c.Claim("ca", a, "Alice", "")
	c.Claim("cb", b, "Bob", "")
	gid := createGroup(t, c, "ca", a, "g")

	c.JoinGroup("cb", gid)

	notice := a.last(t, "group-message")["message"].(map[string]any)
	sender := notice["sender"].(map[string]any)
	if sender["kind"] != "system" {
		t.Errorf("join notice should have a system sender, got %v", sender)
	}
	if notice["text"] != "Bob joined the group" {
		t.Errorf("unexpected notice text: %v", notice["text"])
	}
	g := a.last(t, "group-updated")["group"].(map[string]any)
	if members := g["members"].([]any); len(members) != 2 {
		t.Errorf("expected 2 members after join, got %d", len(members))
	}

	// Joining twice is silent.
	before := len(a.events(t, "group-message"))
	c.JoinGroup("cb", gid)
	if got := len(a.events(t, "group-message")); got != before {
		t.Error("double join produced another notice")
	}
}

func TestLeaveGroup_LastMemberDestroysGroup(t *testing.T) {
	c := NewCoordinator(100)
	a, b := &fakeConn{}, &fakeConn{}
	c.Claim("ca", a, "Alice", "")
	c.Claim("cb", b, "Bob", "")
	gid := createGroup(t, c, "ca", a, "g")
	c.PostGroup("ca", gid, "only me here", nil)

	c.LeaveGroup("ca", gid)

	ev := b.last(t, "group-deleted")
	if ev["groupId"] != string(gid) {
		t.Errorf("expected deletion of %s, got %v", gid, ev["groupId"])
	}
	// History for the dead group settles on empty, not an error.
	c.GroupHistory("cb", gid)
	if msgs := b.last(t, "group-history")["messages"].([]any); len(msgs) != 0 {
		t.Errorf("deleted group still has %d messages", len(msgs))
	}
	c.GroupList("cb")
	if groups := b.last(t, "group-list")["groups"].([]any); len(groups) != 0 {
		t.Errorf("deleted group still listed: %d", len(groups))
	}
}

func TestLeaveGroup_RemainingMembersGetNotice(t *testing.T) {
	c := NewCoordinator(100)
	a, b := &fakeConn{}, &fakeConn{}
	c.Claim("ca", a, "Alice", "")
	c.Claim("cb", b, "Bob", "")
	gid := createGroup(t, c, "ca", a, "g")
	c.JoinGroup("cb", gid)

	c.LeaveGroup("cb", gid)

	notice := a.last(t, "group-message")["message"].(map[string]any)
	if notice["text"] != "Bob left the group" {
		t.Errorf("unexpected notice: %v", notice["text"])
	}
	g := a.last(t, "group-updated")["group"].(map[string]any)
	if members := g["members"].([]any); len(members) != 1 {
		t.Errorf("expected 1 member after leave, got %d", len(members))
	}
}

func TestPostGroup_MembersOnlyFanout(t *testing.T) {
	c := NewCoordinator(100)
	a, b, d := &fakeConn{}, &fakeConn{}, &fakeConn{}
	c.Claim("ca", a, "Alice", "")
	c.Claim("cb", b, "Bob", "")
	c.Claim("cd", d, "Dora", "")
	gid := createGroup(t, c, "ca", a, "g")
	c.JoinGroup("cb", gid)

	c.PostGroup("cb", gid, "hello group", nil)

	for _, conn := range []*fakeConn{a, b} {
		msg := conn.last(t, "group-message")["message"].(map[string]any)
		if msg["text"] != "hello group" {
			t.Errorf("member missed the message: %v", msg)
		}
		if sender := msg["sender"].(map[string]any); sender["kind"] != "user" || sender["name"] != "Bob" {
			t.Errorf("unexpected sender: %v", sender)
		}
	}
	// Dora saw the join notice (broadcast) but not the user message.
	for _, ev := range d.events(t, "group-message") {
		msg := ev["message"].(map[string]any)
		if msg["sender"].(map[string]any)["kind"] != "system" {
			t.Errorf("non-member received a user message: %v", msg)
		}
	}
}

func TestPostGroup_NonMemberIsNoop(t *testing.T) {
	c := NewCoordinator(100)
	a, b := &fakeConn{}, &fakeConn{}
	c.Claim("ca", a, "Alice", "")
	c.Claim("cb", b, "Bob", "")
	gid := createGroup(t, c, "ca", a, "g")
	before := len(a.events(t, "group-message"))

	c.PostGroup("cb", gid, "let me in", nil)

	if got := len(a.events(t, "group-message")); got != before {
		t.Error("non-member message was delivered")
	}
	c.GroupHistory("ca", gid)
	if msgs := a.last(t, "group-history")["messages"].([]any); len(msgs) != 0 {
		t.Errorf("non-member message was stored: %d entries", len(msgs))
	}
}

func TestGroupHistory_GatedOnMembership(t *testing.T) {
	c := NewCoordinator(100)
	a, b := &fakeConn{}, &fakeConn{}
	c.Claim("ca", a, "Alice", "")
	c.Claim("cb", b, "Bob", "")
	gid := createGroup(t, c, "ca", a, "g")
	c.PostGroup("ca", gid, "secret", nil)

	c.GroupHistory("cb", gid)

	if evs := b.events(t, "group-history"); len(evs) != 0 {
		t.Errorf("non-member received group history: %d events", len(evs))
	}
}

func TestPostGroup_AttachmentCarriedVerbatim(t *testing.T) {
	c := NewCoordinator(100)
	a, b := &fakeConn{}, &fakeConn{}
	c.Claim("ca", a, "Alice", "")
	c.Claim("cb", b, "Bob", "")
	gid := createGroup(t, c, "ca", a, "photos")
	c.JoinGroup("cb", gid)

	att := &domain.Attachment{InlineData: "c25hcA==", FileName: "snap.jpg", MimeType: "image/jpeg"}
	c.PostGroup("ca", gid, "look", att)

	got := attachmentOf(t, b.last(t, "group-message"))
	if got["inlineData"] != "c25hcA==" || got["fileName"] != "snap.jpg" || got["mimeType"] != "image/jpeg" {
		t.Errorf("attachment mangled in delivery: %v", got)
	}

	c.GroupHistory("cb", gid)
	hist := b.last(t, "group-history")["messages"].([]any)
	var stored map[string]any
	for _, m := range hist {
		if att, ok := m.(map[string]any)["attachment"].(map[string]any); ok {
			stored = att
		}
	}
	if stored == nil || stored["fileName"] != "snap.jpg" {
		t.Errorf("attachment mangled in history: %v", stored)
	}
}
