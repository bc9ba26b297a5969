package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/model"
)

func TestMemoryAdminsCreateFindSave(t *testing.T) {
	ctx := context.Background()
	admins := NewMemoryStore().Admins()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, admins.Create(ctx, model.AdminIdentity{ID: "1", Username: "admin", PasswordHash: "h", Role: model.RoleAdmin, CreatedAt: now}))
	require.ErrorIs(t, admins.Create(ctx, model.AdminIdentity{Username: "admin"}), model.ErrIdentityExists)

	_, err := admins.FindByUsername(ctx, "Admin")
	require.ErrorIs(t, err, model.ErrIdentityNotFound, "usernames are case sensitive")

	found, err := admins.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Nil(t, found.LastLogin)

	later := now.Add(time.Hour)
	found.LastLogin = &later
	found.PasswordHash = "ignored"
	require.NoError(t, admins.Save(ctx, found))

	reloaded, err := admins.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLogin)
	assert.Equal(t, later, *reloaded.LastLogin)
	assert.Equal(t, "h", reloaded.PasswordHash, "save never touches the stored hash")

	require.NoError(t, admins.Delete(ctx, "admin"))
	require.ErrorIs(t, admins.Save(ctx, found), model.ErrIdentityNotFound)
}

func TestMemoryProjectsVisibilityAndOrder(t *testing.T) {
	ctx := context.Background()
	projects := NewMemoryStore().Projects()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, projects.Create(ctx, model.Project{ID: "old", Visible: true, CreatedAt: base}))
	require.NoError(t, projects.Create(ctx, model.Project{ID: "new", Visible: true, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, projects.Create(ctx, model.Project{ID: "hidden", Visible: false, CreatedAt: base.Add(2 * time.Hour)}))

	all, err := projects.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"hidden", "new", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})

	visible, err := projects.List(ctx, model.ListFilter{VisibleOnly: true})
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	require.ErrorIs(t, projects.Update(ctx, model.Project{ID: "missing"}), model.ErrNotFound)
	require.ErrorIs(t, projects.Delete(ctx, "missing"), model.ErrNotFound)

	n, err := projects.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMemoryProjectsReturnsCopies(t *testing.T) {
	ctx := context.Background()
	projects := NewMemoryStore().Projects()
	tech := []string{"Go"}
	require.NoError(t, projects.Create(ctx, model.Project{ID: "p", Tech: tech}))

	tech[0] = "mutated"
	got, err := projects.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, got.Tech)
}

func TestMemorySkillsOrderedByOrderField(t *testing.T) {
	ctx := context.Background()
	skills := NewMemoryStore().Skills()

	require.NoError(t, skills.Create(ctx, model.Skill{ID: "c", Order: 3}))
	require.NoError(t, skills.Create(ctx, model.Skill{ID: "a", Order: 1}))
	require.NoError(t, skills.Create(ctx, model.Skill{ID: "b", Order: 2}))

	list, err := skills.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestMemoryCertificatesOrderedByPriority(t *testing.T) {
	ctx := context.Background()
	certs := NewMemoryStore().Certificates()

	require.NoError(t, certs.Create(ctx, model.Certificate{ID: "low", Priority: 5, Visible: true}))
	require.NoError(t, certs.Create(ctx, model.Certificate{ID: "top", Priority: 1, Visible: true}))

	list, err := certs.List(ctx, model.ListFilter{VisibleOnly: true})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "top", list[0].ID)
}

func TestMemoryMessagesStatusCount(t *testing.T) {
	ctx := context.Background()
	messages := NewMemoryStore().Messages()

	require.NoError(t, messages.Create(ctx, model.Message{ID: "1", Status: model.MessageUnread}))
	require.NoError(t, messages.Create(ctx, model.Message{ID: "2", Status: model.MessageUnread}))
	require.NoError(t, messages.UpdateStatus(ctx, "2", model.MessageRead))
	require.ErrorIs(t, messages.UpdateStatus(ctx, "3", model.MessageRead), model.ErrNotFound)

	unread, err := messages.Count(ctx, model.MessageUnread)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	total, err := messages.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestMemoryAuditQueryFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	audit := NewMemoryStore().Audit()

	for i, action := range []string{"project.create", "project.delete", "project.create"} {
		require.NoError(t, audit.Log(ctx, model.AuditEntry{
			Action:     action,
			OccurredAt: time.Date(2025, 1, 1, i, 0, 0, 0, time.UTC).Format(time.RFC3339Nano),
			Actor:      model.AuditActor{Username: "admin"},
			Status:     "success",
		}))
	}

	entries, meta, err := audit.Query(ctx, model.AuditQuery{Action: "PROJECT.CREATE", Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, "2025-01-01T02:00:00Z", entries[0].OccurredAt)

	entries, _, err = audit.Query(ctx, model.AuditQuery{From: "2025-01-01T01:00:00Z", To: "2025-01-01T01:30:00Z"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "project.delete", entries[0].Action)

	entries, _, err = audit.Query(ctx, model.AuditQuery{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
