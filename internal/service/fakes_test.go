package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/repository"
)

// memDB backs the in-memory repositories used by service tests.
type memDB struct {
	mu        sync.Mutex
	seq       int
	cases     map[string]domain.Case
	media     map[string]domain.CaseMedia
	history   []domain.CaseHistory
	drafts    map[string]domain.Draft
	users     map[string]domain.User
	hospitals map[string]domain.Hospital

	failMediaCreate error
}

func newMemDB() *memDB {
	return &memDB{
		cases:     map[string]domain.Case{},
		media:     map[string]domain.CaseMedia{},
		drafts:    map[string]domain.Draft{},
		users:     map[string]domain.User{},
		hospitals: map[string]domain.Hospital{},
	}
}

func (db *memDB) nextID(prefix string) string {
	db.seq++
	return fmt.Sprintf("%s-%d", prefix, db.seq)
}

func (db *memDB) store() repository.CaseStore {
	return repository.CaseStore{
		Cases:   &memCaseRepo{db: db},
		Media:   &memMediaRepo{db: db},
		History: &memHistoryRepo{db: db},
	}
}

func cloneCase(c domain.Case) domain.Case {
	c.Victims = append([]domain.Victim(nil), c.Victims...)
	return c
}

// WithinTx restores every table when fn fails.
func (db *memDB) WithinTx(_ context.Context, fn func(repository.CaseStore) error) error {
	db.mu.Lock()
	cases := make(map[string]domain.Case, len(db.cases))
	for k, v := range db.cases {
		cases[k] = cloneCase(v)
	}
	media := make(map[string]domain.CaseMedia, len(db.media))
	for k, v := range db.media {
		media[k] = v
	}
	history := append([]domain.CaseHistory(nil), db.history...)
	db.mu.Unlock()

	if err := fn(db.store()); err != nil {
		db.mu.Lock()
		db.cases, db.media, db.history = cases, media, history
		db.mu.Unlock()
		return err
	}
	return nil
}

type memCaseRepo struct{ db *memDB }

func (r *memCaseRepo) Create(_ context.Context, c *domain.Case) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.cases {
		if existing.CaseNumber == c.CaseNumber {
			return errors.New("duplicate case number")
		}
	}
	c.ID = r.db.nextID("case")
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.db.cases[c.ID] = cloneCase(*c)
	return nil
}

func (r *memCaseRepo) Update(_ context.Context, c *domain.Case) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.cases[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	c.UpdatedAt = time.Now()
	r.db.cases[c.ID] = cloneCase(*c)
	return nil
}

func (r *memCaseRepo) GetByID(_ context.Context, id string) (*domain.Case, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.cases[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := cloneCase(c)
	return &out, nil
}

func (r *memCaseRepo) ExistsCaseNumber(_ context.Context, number string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.cases {
		if c.CaseNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCaseRepo) CountCaseNumbers(context.Context, string) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.cases)), nil
}

func (r *memCaseRepo) List(_ context.Context, filter repository.CaseFilter) ([]domain.Case, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Case
	for _, c := range r.db.cases {
		if filter.VisibleTo != nil && c.CreatedBy != *filter.VisibleTo &&
			(c.AssignedInspectorID == nil || *c.AssignedInspectorID != *filter.VisibleTo) {
			continue
		}
		if filter.HospitalID != nil && c.HospitalID != *filter.HospitalID {
			continue
		}
		out = append(out, cloneCase(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CaseNumber < out[j].CaseNumber })
	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type memMediaRepo struct{ db *memDB }

func (r *memMediaRepo) Create(_ context.Context, m *domain.CaseMedia) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if r.db.failMediaCreate != nil {
		return r.db.failMediaCreate
	}
	m.ID = r.db.nextID("media")
	m.CreatedAt = time.Now()
	r.db.media[m.ID] = *m
	return nil
}

func (r *memMediaRepo) ListByCase(_ context.Context, caseID string) ([]domain.CaseMedia, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.CaseMedia
	for _, m := range r.db.media {
		if m.CaseID == caseID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMediaRepo) GetByID(_ context.Context, id string) (*domain.CaseMedia, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.media[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &m, nil
}

func (r *memMediaRepo) UpdateVictimIndex(_ context.Context, id string, index int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	m, ok := r.db.media[id]
	if !ok {
		return pgx.ErrNoRows
	}
	m.VictimIndex = &index
	r.db.media[id] = m
	return nil
}

func (r *memMediaRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.media[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.db.media, id)
	return nil
}

type memHistoryRepo struct{ db *memDB }

func (r *memHistoryRepo) Create(_ context.Context, entry *domain.CaseHistory) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	entry.ID = r.db.nextID("history")
	entry.CreatedAt = time.Now()
	r.db.history = append(r.db.history, *entry)
	return nil
}

func (r *memHistoryRepo) ListByCase(_ context.Context, caseID string) ([]domain.CaseHistory, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.CaseHistory
	for _, h := range r.db.history {
		if h.CaseID == caseID {
			out = append(out, h)
		}
	}
	return out, nil
}

type memDraftRepo struct{ db *memDB }

func (r *memDraftRepo) Create(_ context.Context, d *domain.Draft) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d.ID = r.db.nextID("draft")
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	r.db.drafts[d.ID] = *d
	return nil
}

func (r *memDraftRepo) Update(_ context.Context, d *domain.Draft) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.drafts[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	d.UpdatedAt = time.Now()
	r.db.drafts[d.ID] = *d
	return nil
}

func (r *memDraftRepo) GetByID(_ context.Context, id string) (*domain.Draft, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	d, ok := r.db.drafts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &d, nil
}

func (r *memDraftRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Draft, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Draft
	for _, d := range r.db.drafts {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDraftRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.drafts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.db.drafts, id)
	return nil
}

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u.ID = r.db.nextID("user")
	r.db.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) Update(_ context.Context, u *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.db.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) List(_ context.Context, role *domain.Role) ([]domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.User
	for _, u := range r.db.users {
		if role == nil || u.Role == *role {
			out = append(out, u)
		}
	}
	return out, nil
}

type memHospitalRepo struct{ db *memDB }

func (r *memHospitalRepo) Create(_ context.Context, h *domain.Hospital) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	h.ID = r.db.nextID("hosp")
	r.db.hospitals[h.ID] = *h
	return nil
}

func (r *memHospitalRepo) Update(_ context.Context, h *domain.Hospital) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.hospitals[h.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.db.hospitals[h.ID] = *h
	return nil
}

func (r *memHospitalRepo) GetByID(_ context.Context, id string) (*domain.Hospital, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	h, ok := r.db.hospitals[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &h, nil
}

func (r *memHospitalRepo) List(_ context.Context, activeOnly bool) ([]domain.Hospital, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []domain.Hospital
	for _, h := range r.db.hospitals {
		if activeOnly && !h.Active {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// seqNumbers hands out AVA2501-00001, AVA2501-00002, ...
type seqNumbers struct {
	n int
}

func (g *seqNumbers) Next(context.Context, time.Time) (string, error) {
	g.n++
	return fmt.Sprintf("AVA2501-%05d", g.n), nil
}
