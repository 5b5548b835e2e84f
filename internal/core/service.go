package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/JonMunkholm/hrpanel/internal/logging"
)

// Store is the remote Record Store holding the authoritative employee data.
type Store interface {
	List(ctx context.Context) ([]Employee, error)
	Get(ctx context.Context, id ID) (Employee, error)
	Create(ctx context.Context, req CreateRequest) (Employee, error)
	Update(ctx context.Context, id ID, req UpdateRequest) (Employee, error)
	Delete(ctx context.Context, id ID) error
}

// SessionStore keeps one State per browser session.
type SessionStore interface {
	// Load returns the saved state and whether one existed.
	Load(ctx context.Context, id string) (State, bool, error)
	Save(ctx context.Context, id string, st State) error
	Delete(ctx context.Context, id string) error
}

// SubmittedNotice is shown after a successful create or update.
const SubmittedNotice = "Form Terkirim"

// Options tune a Service. Zero values pick defaults.
type Options struct {
	MaxImportSize        int64
	MaxConcurrentImports int
	ImportWait           time.Duration
	Now                  func() time.Time
}

// DefaultMaxImportSize is used when Options.MaxImportSize is zero (10MB).
const DefaultMaxImportSize = 10 << 20

// Service runs the employee operations for one browser session at a time:
// store calls happen first, then the resulting action is applied to the
// session state under a per-session lock.
type Service struct {
	store    Store
	sessions SessionStore
	limiter  *ImportLimiter

	maxImportSize int64
	now           func() time.Time

	locks sync.Map // session id -> *sync.Mutex
}

// NewService wires a Service.
func NewService(store Store, sessions SessionStore, opts Options) *Service {
	if opts.MaxImportSize <= 0 {
		opts.MaxImportSize = DefaultMaxImportSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:         store,
		sessions:      sessions,
		limiter:       NewImportLimiter(opts.MaxConcurrentImports, opts.ImportWait),
		maxImportSize: opts.MaxImportSize,
		now:           opts.Now,
	}
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.now() }

// lock serializes requests of one session. A mutex dropped by forgetLock
// while a caller waited on it is retried with a fresh one.
func (s *Service) lock(sid string) func() {
	for {
		v, _ := s.locks.LoadOrStore(sid, &sync.Mutex{})
		mu := v.(*sync.Mutex)
		mu.Lock()
		if cur, ok := s.locks.Load(sid); ok && cur == mu {
			return mu.Unlock
		}
		mu.Unlock()
	}
}

// forgetLock drops the mutex of a swept session. A mutex held by a request
// stays; that request saves the session again.
func (s *Service) forgetLock(sid string) {
	v, ok := s.locks.Load(sid)
	if !ok {
		return
	}
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return
	}
	s.locks.Delete(sid)
	mu.Unlock()
}

func (s *Service) load(ctx context.Context, sid string) (State, error) {
	st, ok, err := s.sessions.Load(ctx, sid)
	if err != nil {
		return State{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return NewState(), nil
	}
	return st, nil
}

// Dispatch applies actions to the session state in order and saves it.
func (s *Service) Dispatch(ctx context.Context, sid string, actions ...Action) (State, error) {
	unlock := s.lock(sid)
	defer unlock()

	st, err := s.load(ctx, sid)
	if err != nil {
		return State{}, err
	}
	for _, a := range actions {
		st = Reduce(st, a)
	}
	if err := s.sessions.Save(ctx, sid, st); err != nil {
		return State{}, fmt.Errorf("save session: %w", err)
	}
	return st, nil
}

// State returns the session state, fetching the list first if the session
// has not been mounted. A failed fetch is returned alongside the unchanged
// state, which is then marked mounted so only a user refresh re-fetches.
func (s *Service) State(ctx context.Context, sid string) (State, error) {
	st, err := s.load(ctx, sid)
	if err != nil {
		return State{}, err
	}
	if st.Mounted {
		return st, nil
	}
	return s.Refresh(ctx, sid)
}

// Refresh fetches the full list from the store and replaces the session list.
func (s *Service) Refresh(ctx context.Context, sid string) (State, error) {
	logger := logging.FromContext(ctx)

	employees, fetchErr := s.store.List(ctx)
	if fetchErr != nil {
		logger.Error("fetch employees failed", "error", fetchErr)
		st, err := s.Dispatch(ctx, sid, FetchFailed{})
		if err != nil {
			return State{}, errors.Join(fetchErr, err)
		}
		return st, fmt.Errorf("fetch employees: %w", fetchErr)
	}

	logger.Debug("employees fetched", "count", len(employees))
	return s.Dispatch(ctx, sid, Loaded{Employees: employees})
}

// Get looks up one record for the edit form.
func (s *Service) Get(ctx context.Context, id ID, local bool) (Employee, error) {
	if local {
		return Employee{}, ErrLocalRecord
	}
	e, err := s.store.Get(ctx, id)
	if err != nil {
		return Employee{}, fmt.Errorf("get employee %s: %w", id, err)
	}
	return e, nil
}

// Create stores a new employee, then invalidates and re-fetches the list.
func (s *Service) Create(ctx context.Context, sid string, in Input) (Employee, error) {
	created, err := s.store.Create(ctx, in.CreateRequest(s.now()))
	if err != nil {
		logging.FromContext(ctx).Error("create employee failed", "error", err)
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}
	logging.FromContext(ctx).Info("employee created", "id", created.ID)
	s.invalidate(ctx, sid)
	return created, nil
}

// Update stores changes to an existing employee, then invalidates and
// re-fetches the list. The employee number is not sent.
func (s *Service) Update(ctx context.Context, sid string, id ID, in Input) (Employee, error) {
	updated, err := s.store.Update(ctx, id, in.UpdateRequest(s.now()))
	if err != nil {
		logging.FromContext(ctx).Error("update employee failed", "id", id, "error", err)
		return Employee{}, fmt.Errorf("update employee %s: %w", id, err)
	}
	logging.FromContext(ctx).Info("employee updated", "id", id)
	s.invalidate(ctx, sid)
	return updated, nil
}

// invalidate marks the list stale and re-fetches it. A failed re-fetch is
// logged by Refresh and leaves the previous list in place.
func (s *Service) invalidate(ctx context.Context, sid string) {
	if _, err := s.Dispatch(ctx, sid, Invalidated{}, Notify{Message: SubmittedNotice}); err != nil {
		logging.FromContext(ctx).Error("invalidate session failed", "error", err)
		return
	}
	_, _ = s.Refresh(ctx, sid)
}

// Delete removes an employee from the store and then from the session list.
// Imported rows were never stored, so only the session list changes.
func (s *Service) Delete(ctx context.Context, sid string, id ID, local bool) (State, error) {
	if !local {
		if err := s.store.Delete(ctx, id); err != nil {
			logging.FromContext(ctx).Error("delete employee failed", "id", id, "error", err)
			return State{}, fmt.Errorf("delete employee %s: %w", id, err)
		}
	}
	logging.FromContext(ctx).Info("employee deleted", "id", id, "local", local)
	return s.Dispatch(ctx, sid, Deleted{ID: id, Local: local})
}

// Import parses an uploaded CSV file and appends its rows to the session
// list. The store is not contacted.
func (s *Service) Import(ctx context.Context, sid string, r io.Reader) (ImportResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return ImportResult{}, err
	}
	defer s.limiter.Release()

	raw, err := io.ReadAll(io.LimitReader(r, s.maxImportSize+1))
	if err != nil {
		return ImportResult{}, fmt.Errorf("read import: %w", err)
	}
	if int64(len(raw)) > s.maxImportSize {
		return ImportResult{}, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.maxImportSize)
	}
	data, err := io.ReadAll(NewImportReader(bytes.NewReader(raw)))
	if err != nil {
		return ImportResult{}, fmt.Errorf("decode import: %w", err)
	}

	// Mount first so a later fetch does not replace the imported rows.
	if _, err := s.State(ctx, sid); err != nil {
		logging.FromContext(ctx).Warn("importing into a list that failed to load", "error", err)
	}

	res := ParseImport(string(data))
	logger := logging.FromContext(ctx)
	if len(res.Malformed) > 0 {
		logger.Warn("import contains malformed rows", "lines", res.Malformed)
	}
	if _, err := s.Dispatch(ctx, sid, Imported{Rows: res.Rows}); err != nil {
		return ImportResult{}, err
	}
	logger.Info("employees imported", "rows", len(res.Rows), "malformed", len(res.Malformed))
	return res, nil
}

// ImportStatus reports the import limiter state.
func (s *Service) ImportStatus() ImportLimiterStatus {
	return s.limiter.Status()
}

// WaitForImports blocks until active imports finish or ctx is done.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}
