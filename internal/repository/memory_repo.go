package repository

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"portfolio-api/internal/model"
)

// MemoryStore keeps every collection in process memory. It backs tests and
// local runs without DATABASE_URL; contents are lost on restart.
type MemoryStore struct {
	mu           sync.RWMutex
	admins       map[string]model.AdminIdentity
	projects     map[string]model.Project
	skills       map[string]model.Skill
	certificates map[string]model.Certificate
	messages     map[string]model.Message
	audit        []model.AuditEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		admins:       make(map[string]model.AdminIdentity),
		projects:     make(map[string]model.Project),
		skills:       make(map[string]model.Skill),
		certificates: make(map[string]model.Certificate),
		messages:     make(map[string]model.Message),
	}
}

func (m *MemoryStore) Admins() *MemoryAdmins             { return &MemoryAdmins{m} }
func (m *MemoryStore) Projects() *MemoryProjects         { return &MemoryProjects{m} }
func (m *MemoryStore) Skills() *MemorySkills             { return &MemorySkills{m} }
func (m *MemoryStore) Certificates() *MemoryCertificates { return &MemoryCertificates{m} }
func (m *MemoryStore) Messages() *MemoryMessages         { return &MemoryMessages{m} }
func (m *MemoryStore) Audit() *MemoryAudit               { return &MemoryAudit{m} }

// Admins

type MemoryAdmins struct{ s *MemoryStore }

func (r *MemoryAdmins) FindByUsername(_ context.Context, username string) (model.AdminIdentity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.admins[username]
	if !ok {
		return model.AdminIdentity{}, model.ErrIdentityNotFound
	}
	return a, nil
}

func (r *MemoryAdmins) Create(_ context.Context, a model.AdminIdentity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.admins[a.Username]; ok {
		return model.ErrIdentityExists
	}
	r.s.admins[a.Username] = a
	return nil
}

func (r *MemoryAdmins) Save(_ context.Context, a model.AdminIdentity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.admins[a.Username]
	if !ok {
		return model.ErrIdentityNotFound
	}
	existing.Email = a.Email
	existing.Role = a.Role
	existing.LastLogin = a.LastLogin
	existing.UpdatedAt = a.UpdatedAt
	r.s.admins[a.Username] = existing
	return nil
}

// Delete removes an admin account. Only the memory store exposes it; tests
// use it to revoke an identity while its token is still valid.
func (r *MemoryAdmins) Delete(_ context.Context, username string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.admins[username]; !ok {
		return model.ErrIdentityNotFound
	}
	delete(r.s.admins, username)
	return nil
}

// Projects

type MemoryProjects struct{ s *MemoryStore }

func (r *MemoryProjects) List(_ context.Context, filter model.ListFilter) ([]model.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Project, 0, len(r.s.projects))
	for _, p := range r.s.projects {
		if filter.VisibleOnly && !p.Visible {
			continue
		}
		out = append(out, cloneProject(p))
	}
	slices.SortStableFunc(out, func(a, b model.Project) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *MemoryProjects) Get(_ context.Context, id string) (model.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return model.Project{}, model.ErrNotFound
	}
	return cloneProject(p), nil
}

func (r *MemoryProjects) Create(_ context.Context, p model.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *MemoryProjects) Update(_ context.Context, p model.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.projects[p.ID]
	if !ok {
		return model.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	r.s.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *MemoryProjects) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.s.projects, id)
	return nil
}

func (r *MemoryProjects) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.projects), nil
}

func cloneProject(p model.Project) model.Project {
	p.Tech = slices.Clone(p.Tech)
	p.Features = slices.Clone(p.Features)
	return p
}

// Skills

type MemorySkills struct{ s *MemoryStore }

func (r *MemorySkills) List(_ context.Context, filter model.ListFilter) ([]model.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Skill, 0, len(r.s.skills))
	for _, sk := range r.s.skills {
		if filter.VisibleOnly && !sk.Visible {
			continue
		}
		out = append(out, cloneSkill(sk))
	}
	slices.SortStableFunc(out, func(a, b model.Skill) int {
		return cmp.Or(cmp.Compare(a.Order, b.Order), a.CreatedAt.Compare(b.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *MemorySkills) Get(_ context.Context, id string) (model.Skill, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sk, ok := r.s.skills[id]
	if !ok {
		return model.Skill{}, model.ErrNotFound
	}
	return cloneSkill(sk), nil
}

func (r *MemorySkills) Create(_ context.Context, sk model.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.skills[sk.ID] = cloneSkill(sk)
	return nil
}

func (r *MemorySkills) Update(_ context.Context, sk model.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.skills[sk.ID]
	if !ok {
		return model.ErrNotFound
	}
	sk.CreatedAt = existing.CreatedAt
	r.s.skills[sk.ID] = cloneSkill(sk)
	return nil
}

func (r *MemorySkills) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.skills[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.s.skills, id)
	return nil
}

func (r *MemorySkills) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.skills), nil
}

func cloneSkill(sk model.Skill) model.Skill {
	sk.Projects = slices.Clone(sk.Projects)
	if sk.YearsOfExperience != nil {
		years := *sk.YearsOfExperience
		sk.YearsOfExperience = &years
	}
	return sk
}

// Certificates

type MemoryCertificates struct{ s *MemoryStore }

func (r *MemoryCertificates) List(_ context.Context, filter model.ListFilter) ([]model.Certificate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Certificate, 0, len(r.s.certificates))
	for _, c := range r.s.certificates {
		if filter.VisibleOnly && !c.Visible {
			continue
		}
		out = append(out, c)
	}
	slices.SortStableFunc(out, func(a, b model.Certificate) int {
		return cmp.Or(cmp.Compare(a.Priority, b.Priority), b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *MemoryCertificates) Get(_ context.Context, id string) (model.Certificate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.certificates[id]
	if !ok {
		return model.Certificate{}, model.ErrNotFound
	}
	return c, nil
}

func (r *MemoryCertificates) Create(_ context.Context, c model.Certificate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.certificates[c.ID] = c
	return nil
}

func (r *MemoryCertificates) Update(_ context.Context, c model.Certificate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.certificates[c.ID]
	if !ok {
		return model.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	r.s.certificates[c.ID] = c
	return nil
}

func (r *MemoryCertificates) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.certificates[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.s.certificates, id)
	return nil
}

func (r *MemoryCertificates) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.certificates), nil
}

// Messages

type MemoryMessages struct{ s *MemoryStore }

func (r *MemoryMessages) List(_ context.Context) ([]model.Message, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Message, 0, len(r.s.messages))
	for _, msg := range r.s.messages {
		out = append(out, msg)
	}
	slices.SortStableFunc(out, func(a, b model.Message) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *MemoryMessages) Create(_ context.Context, msg model.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages[msg.ID] = msg
	return nil
}

func (r *MemoryMessages) UpdateStatus(_ context.Context, id string, status string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	msg, ok := r.s.messages[id]
	if !ok {
		return model.ErrNotFound
	}
	msg.Status = status
	r.s.messages[id] = msg
	return nil
}

func (r *MemoryMessages) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.s.messages, id)
	return nil
}

func (r *MemoryMessages) Count(_ context.Context, status string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if status == "" {
		return len(r.s.messages), nil
	}
	n := 0
	for _, msg := range r.s.messages {
		if msg.Status == status {
			n++
		}
	}
	return n, nil
}

// Audit

type MemoryAudit struct{ s *MemoryStore }

func (r *MemoryAudit) Log(_ context.Context, entry model.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, entry)
	return nil
}

func (r *MemoryAudit) Query(_ context.Context, query model.AuditQuery) ([]model.AuditEntry, model.Meta, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}
	from := parseBound(query.From)
	to := parseBound(query.To)

	r.s.mu.RLock()
	matched := make([]model.AuditEntry, 0)
	// newest first; entries are appended in occurrence order
	for i := len(r.s.audit) - 1; i >= 0; i-- {
		e := r.s.audit[i]
		if query.Action != "" && !strings.EqualFold(e.Action, query.Action) {
			continue
		}
		if query.Username != "" && e.Actor.Username != query.Username {
			continue
		}
		if query.Status != "" && !strings.EqualFold(e.Status, query.Status) {
			continue
		}
		if query.Resource != "" && e.Resource != query.Resource {
			continue
		}
		if !from.IsZero() || !to.IsZero() {
			at := parseBound(e.OccurredAt)
			if !from.IsZero() && at.Before(from) {
				continue
			}
			if !to.IsZero() && at.After(to) {
				continue
			}
		}
		matched = append(matched, e)
	}
	r.s.mu.RUnlock()

	meta := pageMeta(query.Page, query.Limit, len(matched))
	start := min((query.Page-1)*query.Limit, len(matched))
	end := min(start+query.Limit, len(matched))
	return matched[start:end], meta, nil
}

func parseBound(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return t
}
