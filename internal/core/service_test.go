package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu        sync.Mutex
	employees []Employee
	nextID    int
	listErr   error
	lists     int
	deleted   []ID
	created   []CreateRequest
	updated   map[ID]UpdateRequest
}

func newFakeStore(es ...Employee) *fakeStore {
	return &fakeStore{employees: es, nextID: 100, updated: map[ID]UpdateRequest{}}
}

func (f *fakeStore) List(context.Context) ([]Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]Employee(nil), f.employees...), nil
}

func (f *fakeStore) Get(_ context.Context, id ID) (Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (f *fakeStore) Create(_ context.Context, req CreateRequest) (Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e := Employee{
		ID: ID(fmt.Sprint(f.nextID)), Name: req.Name, Number: req.Number, Position: req.Position,
		Department: Department(req.Department), DateJoined: req.DateJoined, Status: Status(req.Status), Photo: req.Photo,
	}
	f.employees = append(f.employees, e)
	f.created = append(f.created, req)
	return e, nil
}

func (f *fakeStore) Update(_ context.Context, id ID, req UpdateRequest) (Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.employees {
		if e.ID == id {
			e.Name, e.Position, e.Department = req.Name, req.Position, Department(req.Department)
			e.DateJoined, e.Status, e.Photo = req.DateJoined, Status(req.Status), req.Photo
			f.employees[i] = e
			f.updated[id] = req
			return e, nil
		}
	}
	return Employee{}, ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	for i, e := range f.employees {
		if e.ID == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// mapSessions is a SessionStore backed by a map.
type mapSessions struct {
	mu sync.Mutex
	m  map[string]State
}

func newMapSessions() *mapSessions { return &mapSessions{m: map[string]State{}} }

func (s *mapSessions) Load(_ context.Context, id string) (State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.m[id]
	return st, ok, nil
}

func (s *mapSessions) Save(_ context.Context, id string, st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = st
	return nil
}

func (s *mapSessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

var fixedNow = time.Date(2025, 3, 4, 5, 6, 7, 800_000_000, time.UTC)

func newTestService(store Store) *Service {
	return NewService(store, newMapSessions(), Options{
		MaxImportSize:        1 << 10,
		MaxConcurrentImports: 2,
		ImportWait:           100 * time.Millisecond,
		Now:                  func() time.Time { return fixedNow },
	})
}

func TestService_StateFetchesOnce(t *testing.T) {
	store := newFakeStore(Employee{ID: "1", Name: "Ani"})
	svc := newTestService(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		st, err := svc.State(ctx, "s1")
		if err != nil {
			t.Fatalf("State() error = %v", err)
		}
		if len(st.Employees) != 1 {
			t.Errorf("len(Employees) = %d, want 1", len(st.Employees))
		}
	}
	if store.lists != 1 {
		t.Errorf("store listed %d times, want 1", store.lists)
	}

	if _, err := svc.Refresh(ctx, "s1"); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if store.lists != 2 {
		t.Errorf("store listed %d times after refresh, want 2", store.lists)
	}
}

func TestService_FailedFetchLeavesEmptyMountedList(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("dial tcp: connect: connection refused")
	svc := newTestService(store)
	ctx := context.Background()

	st, err := svc.State(ctx, "s1")
	if err == nil {
		t.Fatal("State() error = nil, want fetch error")
	}
	if !st.Mounted || len(st.Employees) != 0 {
		t.Errorf("state = %+v, want mounted and empty", st)
	}

	// Mounted sessions do not retry on their own.
	if _, err := svc.State(ctx, "s1"); err != nil {
		t.Errorf("second State() error = %v, want nil", err)
	}
	if store.lists != 1 {
		t.Errorf("store listed %d times, want 1", store.lists)
	}
}

func TestService_CreateRefetchesAndNotifies(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	in := DefaultInput(fixedNow)
	in.Name = "Budi"
	in.Number = "E009"
	if _, err := svc.Create(ctx, "s1", in); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	st, err := svc.State(ctx, "s1")
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if len(st.Employees) != 1 || st.Employees[0].Name != "Budi" {
		t.Errorf("Employees = %+v, want Budi", st.Employees)
	}
	if st.Notice != SubmittedNotice {
		t.Errorf("Notice = %q, want %q", st.Notice, SubmittedNotice)
	}
	req := store.created[0]
	if req.Number != "E009" || req.Department != "IT" || req.Status != "Tetap" {
		t.Errorf("create request = %+v", req)
	}
	if req.DateJoined != "2025-03-04T05:06:07.800Z" {
		t.Errorf("DateJoined = %q", req.DateJoined)
	}
}

func TestService_UpdateSendsNoNumber(t *testing.T) {
	store := newFakeStore(Employee{ID: "5", Name: "Ani", Number: "E005", Department: "IT", Status: "Tetap"})
	svc := newTestService(store)
	ctx := context.Background()

	e, err := svc.Get(ctx, "5", false)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	in := InputFrom(e, fixedNow)
	in.Name = "Ani Baru"
	in.Number = "CHANGED"

	if _, err := svc.Update(ctx, "s1", "5", in); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := store.Get(ctx, "5")
	if got.Name != "Ani Baru" {
		t.Errorf("Name = %q, want Ani Baru", got.Name)
	}
	if got.Number != "E005" {
		t.Errorf("Number = %q, want E005 unchanged", got.Number)
	}
}

func TestService_GetLocalRecord(t *testing.T) {
	svc := newTestService(newFakeStore())
	if _, err := svc.Get(context.Background(), "1", true); !errors.Is(err, ErrLocalRecord) {
		t.Errorf("Get(local) error = %v, want ErrLocalRecord", err)
	}
}

func TestService_GetMissing(t *testing.T) {
	svc := newTestService(newFakeStore())
	if _, err := svc.Get(context.Background(), "404", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestService_Delete(t *testing.T) {
	store := newFakeStore(Employee{ID: "1", Name: "stored"})
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.Import(ctx, "s1", strings.NewReader("imported,,,,,,")); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	st, err := svc.Delete(ctx, "s1", "1", true)
	if err != nil {
		t.Fatalf("Delete(local) error = %v", err)
	}
	if len(store.deleted) != 0 {
		t.Errorf("store saw deletes %v for an imported row", store.deleted)
	}
	if len(st.Employees) != 1 || st.Employees[0].Name != "stored" {
		t.Errorf("after local delete Employees = %+v", st.Employees)
	}

	st, err = svc.Delete(ctx, "s1", "1", false)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(store.deleted) != 1 {
		t.Errorf("store deletes = %v, want [1]", store.deleted)
	}
	if len(st.Employees) != 0 {
		t.Errorf("after delete Employees = %+v, want none", st.Employees)
	}
}

func TestService_DeleteFailureKeepsRow(t *testing.T) {
	store := newFakeStore(Employee{ID: "1"})
	svc := newTestService(store)
	ctx := context.Background()
	if _, err := svc.State(ctx, "s1"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Delete(ctx, "s1", "99", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
	st, _ := svc.State(ctx, "s1")
	if len(st.Employees) != 1 {
		t.Errorf("len(Employees) = %d, want 1", len(st.Employees))
	}
}

func TestService_ImportSurvivesLaterViews(t *testing.T) {
	store := newFakeStore(Employee{ID: "1", Name: "stored"})
	svc := newTestService(store)
	ctx := context.Background()

	res, err := svc.Import(ctx, "s1", strings.NewReader("a,,,,,,\nb,,,,,,"))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(res.Rows) != 2 {
		t.Errorf("imported %d rows, want 2", len(res.Rows))
	}

	st, err := svc.State(ctx, "s1")
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	if len(st.Employees) != 3 {
		t.Errorf("len(Employees) = %d, want 3", len(st.Employees))
	}
}

func TestService_ImportTooLarge(t *testing.T) {
	svc := newTestService(newFakeStore())
	big := strings.Repeat("x", 2<<10)
	if _, err := svc.Import(context.Background(), "s1", strings.NewReader(big)); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Import() error = %v, want ErrFileTooLarge", err)
	}
	if got := svc.ImportStatus().Active; got != 0 {
		t.Errorf("active imports = %d, want 0", got)
	}
}

func TestService_SessionsAreIsolated(t *testing.T) {
	svc := newTestService(newFakeStore(Employee{ID: "1", Name: "Ani"}))
	ctx := context.Background()

	if _, err := svc.Dispatch(ctx, "a", SetDepartment{Department: "HR"}); err != nil {
		t.Fatal(err)
	}
	b, err := svc.State(ctx, "b")
	if err != nil {
		t.Fatal(err)
	}
	if b.Params.Department != FilterAll {
		t.Errorf("session b department = %q, want %q", b.Params.Department, FilterAll)
	}
}
