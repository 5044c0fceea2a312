package api_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"glasslink/application"
	"glasslink/auth"
	"glasslink/category"
	"glasslink/job"
	"glasslink/message"
	"glasslink/quote"
	"glasslink/tradesperson"
)

// The fakes below back a full router without a database. They mirror the
// constraints the real schema enforces: unique emails, one profile per user,
// one application per (job, tradesperson), restrict-on-delete for jobs with
// dependent rows.

type memStore struct {
	mu sync.Mutex

	users      map[string]auth.User
	profiles   map[string]tradesperson.Profile
	portfolio  map[string][]tradesperson.PortfolioItem
	reviews    map[string][]tradesperson.Review
	jobs       map[string]job.Job
	quotes     map[string][]quote.Quote
	apps       map[string]application.Application
	messages   []message.Message
	categories []category.Category
	seq        int
}

func newMemStore() *memStore {
	return &memStore{
		users:     make(map[string]auth.User),
		profiles:  make(map[string]tradesperson.Profile),
		portfolio: make(map[string][]tradesperson.PortfolioItem),
		reviews:   make(map[string][]tradesperson.Review),
		jobs:      make(map[string]job.Job),
		quotes:    make(map[string][]quote.Quote),
		apps:      make(map[string]application.Application),
		categories: []category.Category{
			{ID: "cat-1", Name: "Window Installation"},
			{ID: "cat-2", Name: "Glass Repair"},
		},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type fakeAuthRepo struct{ store *memStore }

func (f *fakeAuthRepo) CreateUser(ctx context.Context, params auth.CreateUserParams) (auth.User, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == params.Email {
			return auth.User{}, auth.ErrDuplicateEmail
		}
	}
	u := auth.User{
		ID:           s.nextID("user"),
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		Address:      params.Address,
		City:         params.City,
		Postcode:     params.Postcode,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (f *fakeAuthRepo) GetUserByEmail(ctx context.Context, email string) (auth.User, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrUserNotFound
}

func (f *fakeAuthRepo) GetUserByID(ctx context.Context, userID string) (auth.User, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeAuthRepo) GetPublicProfile(ctx context.Context, userID string) (auth.PublicProfile, error) {
	u, err := f.GetUserByID(ctx, userID)
	if err != nil {
		return auth.PublicProfile{}, err
	}
	return auth.PublicProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		City:      u.City,
		CreatedAt: u.CreatedAt,
	}, nil
}

func (f *fakeAuthRepo) UpdateProfile(ctx context.Context, userID string, params auth.UpdateProfileParams) (auth.User, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return auth.User{}, auth.ErrUserNotFound
	}
	u.FirstName = params.FirstName
	u.LastName = params.LastName
	u.Phone = params.Phone
	u.Address = params.Address
	u.City = params.City
	u.Postcode = params.Postcode
	u.ProfileImage = params.ProfileImage
	s.users[userID] = u
	return u, nil
}

type fakeCategoryRepo struct{ store *memStore }

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id string) (category.Category, error) {
	for _, c := range f.store.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return category.Category{}, category.ErrNotFound
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]category.Category, error) {
	return f.store.categories, nil
}

type fakeJobRepo struct{ store *memStore }

func (f *fakeJobRepo) Create(ctx context.Context, userID string, params job.CreateParams) (job.Job, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	j := job.Job{
		ID:          s.nextID("job"),
		UserID:      userID,
		CategoryID:  params.CategoryID,
		Title:       params.Title,
		Description: params.Description,
		Location:    params.Location,
		BudgetMin:   params.BudgetMin,
		BudgetMax:   params.BudgetMax,
		Timeline:    params.Timeline,
		Images:      params.Images,
		Status:      job.StatusOpen,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	s.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobRepo) List(ctx context.Context, filters job.Filters) ([]job.Job, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	status := filters.Status
	if status == "" {
		status = job.StatusOpen
	}
	out := []job.Job{}
	for _, j := range s.jobs {
		if j.Status != status {
			continue
		}
		if filters.CategoryID != "" && j.CategoryID != filters.CategoryID {
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id string) (job.Job, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) Update(ctx context.Context, id string, params job.UpdateParams) (job.Job, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return job.Job{}, job.ErrNotFound
	}
	if params.Title != nil {
		j.Title = *params.Title
	}
	if params.Description != nil {
		j.Description = *params.Description
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
	if params.CategoryID != nil {
		j.CategoryID = *params.CategoryID
	}
	if params.Images != nil {
		j.Images = params.Images
	}
	if params.Status != nil {
		j.Status = *params.Status
	}
	j.UpdatedAt = time.Now().UTC()
	s.jobs[id] = j
	return j, nil
}

func (f *fakeJobRepo) Delete(ctx context.Context, id string) error {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return job.ErrNotFound
	}
	for _, a := range s.apps {
		if a.JobID == id {
			return job.ErrHasDependents
		}
	}
	for _, qs := range s.quotes {
		for _, q := range qs {
			if q.JobID == id {
				return job.ErrHasDependents
			}
		}
	}
	for _, m := range s.messages {
		if m.JobID == id {
			return job.ErrHasDependents
		}
	}
	delete(s.jobs, id)
	return nil
}

func (f *fakeJobRepo) ListByUser(ctx context.Context, userID string) ([]job.Job, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []job.Job{}
	for _, j := range s.jobs {
		if j.UserID == userID {
			out = append(out, j)
		}
	}
	return out, nil
}

type fakeTradeRepo struct{ store *memStore }

func (f *fakeTradeRepo) CreateProfile(ctx context.Context, userID string, params tradesperson.RegisterParams) (tradesperson.Profile, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.UserID == userID {
			return tradesperson.Profile{}, tradesperson.ErrProfileExists
		}
	}
	p := tradesperson.Profile{
		ID:                     s.nextID("tp"),
		UserID:                 userID,
		BusinessName:           params.BusinessName,
		YearsExperience:        params.YearsExperience,
		Qualifications:         params.Qualifications,
		Specializations:        params.Specializations,
		ServiceCities:          params.ServiceCities,
		ServicePostcodes:       params.ServicePostcodes,
		HourlyRate:             params.HourlyRate,
		CalloutFee:             params.CalloutFee,
		EmergencyServices:      params.EmergencyServices,
		IdentityVerified:       true,
		QualificationsVerified: true,
		InsuranceVerified:      true,
		DBSVerified:            true,
		FinancialVerified:      true,
		OverallVerified:        true,
		IsActive:               true,
		CreatedAt:              time.Now().UTC(),
	}
	s.profiles[p.ID] = p
	return p, nil
}

func (f *fakeTradeRepo) GetByUserID(ctx context.Context, userID string) (tradesperson.Profile, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return tradesperson.Profile{}, tradesperson.ErrNotFound
}

func (f *fakeTradeRepo) GetByID(ctx context.Context, id string) (tradesperson.Profile, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return tradesperson.Profile{}, tradesperson.ErrNotFound
	}
	return p, nil
}

func (f *fakeTradeRepo) UpdateProfile(ctx context.Context, id string, params tradesperson.UpdateParams) (tradesperson.Profile, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return tradesperson.Profile{}, tradesperson.ErrNotFound
	}
	if params.BusinessName != nil {
		p.BusinessName = *params.BusinessName
	}
	if params.YearsExperience != nil {
		p.YearsExperience = *params.YearsExperience
	}
	if params.HourlyRate != nil {
		p.HourlyRate = params.HourlyRate
	}
	if params.IsActive != nil {
		p.IsActive = *params.IsActive
	}
	s.profiles[id] = p
	return p, nil
}

func (f *fakeTradeRepo) Search(ctx context.Context, criteria tradesperson.SearchCriteria) ([]tradesperson.Profile, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []tradesperson.Profile{}
	for _, p := range s.profiles {
		if !p.IsActive {
			continue
		}
		if criteria.Verified && !p.OverallVerified {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeTradeRepo) Featured(ctx context.Context, limit int) ([]tradesperson.Profile, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []tradesperson.Profile{}
	for _, p := range s.profiles {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeTradeRepo) AddPortfolioItem(ctx context.Context, tradespersonID string, params tradesperson.PortfolioParams) (tradesperson.PortfolioItem, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item := tradesperson.PortfolioItem{
		ID:             s.nextID("pf"),
		TradespersonID: tradespersonID,
		Title:          params.Title,
		Description:    params.Description,
		ProjectType:    params.ProjectType,
		CreatedAt:      time.Now().UTC(),
	}
	s.portfolio[tradespersonID] = append(s.portfolio[tradespersonID], item)
	return item, nil
}

func (f *fakeTradeRepo) GetPortfolio(ctx context.Context, tradespersonID string) ([]tradesperson.PortfolioItem, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return f.store.portfolio[tradespersonID], nil
}

func (f *fakeTradeRepo) AddReview(ctx context.Context, params tradesperson.ReviewParams) (tradesperson.Review, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rev := tradesperson.Review{
		ID:             s.nextID("rev"),
		TradespersonID: params.TradespersonID,
		CustomerID:     params.CustomerID,
		JobID:          params.JobID,
		Rating:         params.Rating,
		Comment:        params.Comment,
		CreatedAt:      time.Now().UTC(),
	}
	s.reviews[params.TradespersonID] = append(s.reviews[params.TradespersonID], rev)

	p := s.profiles[params.TradespersonID]
	total := 0
	for _, r := range s.reviews[params.TradespersonID] {
		total += r.Rating
	}
	p.TotalReviews = len(s.reviews[params.TradespersonID])
	p.OverallRating = float64(total) / float64(p.TotalReviews)
	s.profiles[params.TradespersonID] = p

	return rev, nil
}

func (f *fakeTradeRepo) GetReviews(ctx context.Context, tradespersonID string, limit int) ([]tradesperson.Review, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	revs := s.reviews[tradespersonID]
	if limit > 0 && len(revs) > limit {
		revs = revs[:limit]
	}
	return revs, nil
}

type fakeQuoteRepo struct{ store *memStore }

func (f *fakeQuoteRepo) Create(ctx context.Context, tradespersonID string, params quote.CreateParams) (quote.Quote, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[params.JobID]; !ok {
		return quote.Quote{}, quote.ErrJobNotFound
	}
	q := quote.Quote{
		ID:                     s.nextID("quote"),
		TradespersonID:         tradespersonID,
		JobID:                  params.JobID,
		QuoteAmount:            params.QuoteAmount,
		EstimatedDurationHours: params.EstimatedDurationHours,
		Status:                 "pending",
		CreatedAt:              time.Now().UTC(),
	}
	s.quotes[tradespersonID] = append(s.quotes[tradespersonID], q)
	return q, nil
}

func (f *fakeQuoteRepo) ListByTradesperson(ctx context.Context, tradespersonID string) ([]quote.Quote, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.quotes[tradespersonID], nil
}

type fakeAppRepo struct{ store *memStore }

func appKey(jobID, tradespersonID string) string {
	return jobID + "/" + tradespersonID
}

func (f *fakeAppRepo) Create(ctx context.Context, tradespersonID string, params application.ApplyParams) (application.Application, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[params.JobID]; !ok {
		return application.Application{}, application.ErrJobNotFound
	}
	k := appKey(params.JobID, tradespersonID)
	if _, exists := s.apps[k]; exists {
		return application.Application{}, application.ErrDuplicate
	}
	a := application.Application{
		ID:             s.nextID("app"),
		JobID:          params.JobID,
		TradespersonID: tradespersonID,
		Message:        params.Message,
		Status:         "pending",
		CreatedAt:      time.Now().UTC(),
	}
	s.apps[k] = a
	return a, nil
}

func (f *fakeAppRepo) Exists(ctx context.Context, jobID, tradespersonID string) (bool, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.apps[appKey(jobID, tradespersonID)]
	return exists, nil
}

func (f *fakeAppRepo) ListByTradesperson(ctx context.Context, tradespersonID string) ([]application.Application, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []application.Application{}
	for _, a := range s.apps {
		if a.TradespersonID == tradespersonID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeMessageRepo struct{ store *memStore }

func (f *fakeMessageRepo) Create(ctx context.Context, params message.SendParams) (message.Message, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[params.JobID]; !ok {
		return message.Message{}, message.ErrJobNotFound
	}
	m := message.Message{
		ID:             s.nextID("msg"),
		JobID:          params.JobID,
		TradespersonID: params.TradespersonID,
		HomeownerID:    params.HomeownerID,
		SenderID:       params.SenderID,
		SenderType:     params.SenderType,
		Body:           params.Body,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages = append(s.messages, m)
	return m, nil
}

func (f *fakeMessageRepo) ListForJob(ctx context.Context, jobID, userID string) ([]message.Message, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []message.Message{}
	for _, m := range s.messages {
		if m.JobID == jobID && (m.TradespersonID == userID || m.HomeownerID == userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) Conversations(ctx context.Context, userID string) ([]message.Conversation, error) {
	s := f.store
	s.mu.Lock()
	defer s.mu.Unlock()

	byJob := map[string]*message.Conversation{}
	for _, m := range s.messages {
		if m.TradespersonID != userID && m.HomeownerID != userID {
			continue
		}
		c, ok := byJob[m.JobID]
		if !ok {
			j := s.jobs[m.JobID]
			c = &message.Conversation{JobID: m.JobID, JobTitle: j.Title, JobStatus: string(j.Status)}
			byJob[m.JobID] = c
		}
		c.MessageCount++
		if m.CreatedAt.After(c.LastMessageAt) {
			c.LastMessageAt = m.CreatedAt
		}
	}

	out := []message.Conversation{}
	for _, c := range byJob {
		out = append(out, *c)
	}
	return out, nil
}
