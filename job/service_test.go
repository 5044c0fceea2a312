package job

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestService_CreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo())

	valid := CreateParams{
		CategoryID:  "cat-1",
		Title:       "Shower screen",
		Description: "Fit a frameless shower screen",
		Location:    "Leeds",
		BudgetMin:   200,
		BudgetMax:   400,
		Timeline:    "Within 1 week",
	}

	if _, err := svc.Create(context.Background(), "user-1", valid); err != nil {
		t.Fatalf("valid create: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{"missing title", func(p *CreateParams) { p.Title = "" }},
		{"missing description", func(p *CreateParams) { p.Description = "" }},
		{"missing location", func(p *CreateParams) { p.Location = "" }},
		{"missing timeline", func(p *CreateParams) { p.Timeline = "" }},
		{"missing category", func(p *CreateParams) { p.CategoryID = "" }},
		{"negative budget", func(p *CreateParams) { p.BudgetMin = -1 }},
		{"inverted budget", func(p *CreateParams) { p.BudgetMin = 500 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := valid
			tc.mutate(&params)
			if _, err := svc.Create(context.Background(), "user-1", params); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestService_UpdateOwnership(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "owner", CreateParams{
		CategoryID:  "cat-1",
		Title:       "Splashback",
		Description: "Kitchen splashback",
		Location:    "York",
		BudgetMin:   100,
		BudgetMax:   150,
		Timeline:    "Flexible",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	title := "Changed"
	if _, err := svc.Update(context.Background(), "intruder", created.ID, UpdateParams{Title: &title}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if repo.jobs[created.ID].Title != "Splashback" {
		t.Fatalf("row changed despite denied update: %q", repo.jobs[created.ID].Title)
	}

	updated, err := svc.Update(context.Background(), "owner", created.ID, UpdateParams{Title: &title})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Title != "Changed" {
		t.Fatalf("expected updated title, got %q", updated.Title)
	}
	// Partial update keeps untouched columns.
	if updated.Location != "York" {
		t.Fatalf("expected location preserved, got %q", updated.Location)
	}
}

func TestService_UpdateStatusFreeForm(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, _ := svc.Create(context.Background(), "owner", CreateParams{
		CategoryID: "cat-1", Title: "t", Description: "d", Location: "l",
		BudgetMin: 1, BudgetMax: 2, Timeline: "tl",
	})

	// Any of the four values may overwrite any other, including backwards.
	for _, st := range []Status{StatusCompleted, StatusOpen, StatusCancelled, StatusInProgress} {
		st := st
		if _, err := svc.Update(context.Background(), "owner", created.ID, UpdateParams{Status: &st}); err != nil {
			t.Fatalf("set status %s: %v", st, err)
		}
	}

	bad := Status("archived")
	if _, err := svc.Update(context.Background(), "owner", created.ID, UpdateParams{Status: &bad}); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestService_DeleteOwnershipAndDependents(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	created, _ := svc.Create(context.Background(), "owner", CreateParams{
		CategoryID: "cat-1", Title: "t", Description: "d", Location: "l",
		BudgetMin: 1, BudgetMax: 2, Timeline: "tl",
	})

	if err := svc.Delete(context.Background(), "intruder", created.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}

	repo.dependents[created.ID] = true
	if err := svc.Delete(context.Background(), "owner", created.ID); !errors.Is(err, ErrHasDependents) {
		t.Fatalf("expected ErrHasDependents, got %v", err)
	}

	repo.dependents[created.ID] = false
	if err := svc.Delete(context.Background(), "owner", created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestService_ListDefaultsToOpen(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	open, _ := svc.Create(context.Background(), "owner", CreateParams{
		CategoryID: "cat-1", Title: "open job", Description: "d", Location: "l",
		BudgetMin: 1, BudgetMax: 2, Timeline: "tl",
	})
	done, _ := svc.Create(context.Background(), "owner", CreateParams{
		CategoryID: "cat-1", Title: "done job", Description: "d", Location: "l",
		BudgetMin: 1, BudgetMax: 2, Timeline: "tl",
	})
	st := StatusCompleted
	if _, err := svc.Update(context.Background(), "owner", done.ID, UpdateParams{Status: &st}); err != nil {
		t.Fatalf("update: %v", err)
	}

	jobs, err := svc.List(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != open.ID {
		t.Fatalf("expected only the open job, got %d rows", len(jobs))
	}

	if _, err := svc.List(context.Background(), Filters{Status: "bogus"}); err == nil {
		t.Fatal("expected error for unknown status filter")
	}
}

type fakeRepo struct {
	jobs       map[string]Job
	dependents map[string]bool
	nextID     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		jobs:       make(map[string]Job),
		dependents: make(map[string]bool),
		nextID:     1,
	}
}

func (f *fakeRepo) Create(ctx context.Context, userID string, params CreateParams) (Job, error) {
	id := fmt.Sprintf("job-%d", f.nextID)
	f.nextID++

	j := Job{
		ID:          id,
		UserID:      userID,
		CategoryID:  params.CategoryID,
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		BudgetMin:   params.BudgetMin,
		BudgetMax:   params.BudgetMax,
		Timeline:    params.Timeline,
		Images:      params.Images,
		Status:      StatusOpen,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	f.jobs[id] = j
	return j, nil
}

func (f *fakeRepo) List(ctx context.Context, filters Filters) ([]Job, error) {
	status := filters.Status
	if status == "" {
		status = StatusOpen
	}
	out := []Job{}
	for _, j := range f.jobs {
		if j.Status == status {
			out = append(out, j)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

func (f *fakeRepo) Update(ctx context.Context, id string, params UpdateParams) (Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	if params.Title != nil {
		j.Title = *params.Title
	}
	if params.Description != nil {
		j.Description = *params.Description
	}
	if params.CategoryID != nil {
		j.CategoryID = *params.CategoryID
	}
	if params.Location != nil {
		j.Location = *params.Location
	}
	if params.BudgetMin != nil {
		j.BudgetMin = *params.BudgetMin
	}
	if params.BudgetMax != nil {
		j.BudgetMax = *params.BudgetMax
	}
	if params.Timeline != nil {
		j.Timeline = *params.Timeline
	}
	if params.Images != nil {
		j.Images = params.Images
	}
	if params.Status != nil {
		j.Status = *params.Status
	}
	j.UpdatedAt = time.Now().UTC()
	f.jobs[id] = j
	return j, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.jobs[id]; !ok {
		return ErrNotFound
	}
	if f.dependents[id] {
		return ErrHasDependents
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID string) ([]Job, error) {
	out := []Job{}
	for _, j := range f.jobs {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}
