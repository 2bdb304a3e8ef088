package service

import (
	"context"
	"sync"

	"github.com/stepwise/process-tracker/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories mirroring the sqlite semantics
// ---------------------------------------------------------------------------

var testCodec = domain.NewTimeCodec(true)

type storedProcess struct {
	p      domain.Process
	owner  string
	editAt int64
}

type stubProcessRepo struct {
	rows      map[string]*storedProcess
	insertErr error // if set, Insert returns this error
}

func newStubProcessRepo() *stubProcessRepo {
	return &stubProcessRepo{rows: make(map[string]*storedProcess)}
}

func (r *stubProcessRepo) encode(p *domain.Process) (int64, error) {
	if _, err := testCodec.Encode(p.AssignedAt); err != nil {
		return 0, err
	}
	return testCodec.Encode(p.EditAt)
}

func (r *stubProcessRepo) put(p *domain.Process, owner string, editAt int64) {
	clone := *p
	clone.Steps = nil
	r.rows[p.ID] = &storedProcess{p: clone, owner: owner, editAt: editAt}
}

func (r *stubProcessRepo) Insert(_ context.Context, p *domain.Process, owner string) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	editAt, err := r.encode(p)
	if err != nil {
		return err
	}
	if _, exists := r.rows[p.ID]; exists {
		return domain.ErrProcessExists
	}
	r.put(p, owner, editAt)
	return nil
}

func (r *stubProcessRepo) Update(_ context.Context, p *domain.Process, owner string) error {
	editAt, err := r.encode(p)
	if err != nil {
		return err
	}
	if _, exists := r.rows[p.ID]; exists {
		r.put(p, owner, editAt)
	}
	return nil
}

func (r *stubProcessRepo) UpdateIfNewer(_ context.Context, p *domain.Process, owner string) (bool, error) {
	editAt, err := r.encode(p)
	if err != nil {
		return false, err
	}
	row, exists := r.rows[p.ID]
	if !exists || row.editAt >= editAt {
		return false, nil
	}
	r.put(p, owner, editAt)
	return true, nil
}

func (r *stubProcessRepo) Delete(_ context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

func (r *stubProcessRepo) FindByID(_ context.Context, id string) (*domain.Process, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	clone := row.p
	clone.Steps = []domain.Step{}
	return &clone, nil
}

func (r *stubProcessRepo) FindByOwner(_ context.Context, owner string) ([]domain.Process, error) {
	out := []domain.Process{}
	for _, row := range r.rows {
		if row.owner == owner {
			clone := row.p
			clone.Steps = []domain.Step{}
			out = append(out, clone)
		}
	}
	return out, nil
}

func (r *stubProcessRepo) EditSummaries(_ context.Context, owner string) ([]domain.EditSummary, error) {
	out := []domain.EditSummary{}
	for _, row := range r.rows {
		if row.owner == owner {
			out = append(out, domain.EditSummary{ID: row.p.ID, EditAt: testCodec.Decode(row.editAt)})
		}
	}
	return out, nil
}

type storedStep struct {
	s         domain.Step
	processID string
}

type stubStepRepo struct {
	rows map[string]*storedStep
}

func newStubStepRepo() *stubStepRepo {
	return &stubStepRepo{rows: make(map[string]*storedStep)}
}

func (r *stubStepRepo) Insert(_ context.Context, s *domain.Step, processID string) error {
	if _, exists := r.rows[s.ID]; exists {
		return domain.ErrStepExists
	}
	r.rows[s.ID] = &storedStep{s: *s, processID: processID}
	return nil
}

func (r *stubStepRepo) Update(_ context.Context, s *domain.Step, processID string) error {
	// mirrors the zero-rows no-op of the real UPDATE
	if _, exists := r.rows[s.ID]; exists {
		r.rows[s.ID] = &storedStep{s: *s, processID: processID}
	}
	return nil
}

func (r *stubStepRepo) FindByProcess(_ context.Context, processID string) ([]domain.Step, error) {
	out := []domain.Step{}
	for _, row := range r.rows {
		if row.processID == processID {
			out = append(out, row.s)
		}
	}
	return out, nil
}

func (r *stubStepRepo) DeleteByProcess(_ context.Context, processID string) error {
	for id, row := range r.rows {
		if row.processID == processID {
			delete(r.rows, id)
		}
	}
	return nil
}

func (r *stubStepRepo) DeleteByIDs(_ context.Context, ids []string) error {
	for _, id := range ids {
		delete(r.rows, id)
	}
	return nil
}

type stubTombstoneRepo struct {
	ids map[string]bool
}

func newStubTombstoneRepo() *stubTombstoneRepo {
	return &stubTombstoneRepo{ids: make(map[string]bool)}
}

func (r *stubTombstoneRepo) Insert(_ context.Context, id string) error {
	if r.ids[id] {
		return domain.ErrProcessDeleted
	}
	r.ids[id] = true
	return nil
}

func (r *stubTombstoneRepo) Contains(_ context.Context, id string) (bool, error) {
	return r.ids[id], nil
}

func (r *stubTombstoneRepo) ListIDs(_ context.Context) ([]string, error) {
	out := []string{}
	for id := range r.ids {
		out = append(out, id)
	}
	return out, nil
}

type stubUserRepo struct {
	users map[string]string
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]string)}
}

func (r *stubUserRepo) Insert(_ context.Context, username, password string) error {
	if _, exists := r.users[username]; exists {
		return domain.ErrUserExists
	}
	r.users[username] = password
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	pw, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{Username: username, Password: pw, Processes: []domain.Process{}}, nil
}

func (r *stubUserRepo) ListUsernames(_ context.Context) ([]string, error) {
	out := []string{}
	for name := range r.users {
		out = append(out, name)
	}
	return out, nil
}

type stubCache struct {
	data   map[string][]domain.EditSummary
	getErr error
	sets   int
}

func newStubCache() *stubCache {
	return &stubCache{data: make(map[string][]domain.EditSummary)}
}

func (c *stubCache) Get(_ context.Context, owner string) ([]domain.EditSummary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	items, ok := c.data[owner]
	return items, ok, nil
}

func (c *stubCache) Set(_ context.Context, owner string, items []domain.EditSummary) error {
	c.sets++
	c.data[owner] = items
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, owner string) error {
	if owner == "" {
		c.data = make(map[string][]domain.EditSummary)
		return nil
	}
	delete(c.data, owner)
	return nil
}

type stubInvalidator struct {
	mu     sync.Mutex
	owners []string
}

func (i *stubInvalidator) Enqueue(owner string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.owners = append(i.owners, owner)
}
