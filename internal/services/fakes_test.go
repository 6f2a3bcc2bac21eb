package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campusevents/internal/domain"
)

// fakeRegistrationStore is an in-memory RegistrationStore whose
// transactions serialize on a mutex, matching the row-lock behavior of the
// real store.
type fakeRegistrationStore struct {
	mu            sync.Mutex
	events        map[string]*domain.EventSnapshot
	registrations map[string]*domain.Registration
	nextID        int
	beginErr      error
	insertErr     error
	collideTimes  int // first N inserts report a ticket collision
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{
		events:        make(map[string]*domain.EventSnapshot),
		registrations: make(map[string]*domain.Registration),
		nextID:        1,
	}
}

type fakeRegistrationTx struct {
	store     *fakeRegistrationStore
	pending   []*domain.Registration
	holdsLock bool
	done      bool
}

func (f *fakeRegistrationStore) Begin(ctx context.Context) (domain.RegistrationTx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return &fakeRegistrationTx{store: f}, nil
}

func (t *fakeRegistrationTx) LockEvent(ctx context.Context, eventID string) (*domain.EventSnapshot, error) {
	t.store.mu.Lock()
	t.holdsLock = true
	snap, ok := t.store.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *snap
	return &cp, nil
}

func (t *fakeRegistrationTx) CountActive(ctx context.Context, eventID string) (int, error) {
	count := 0
	for _, r := range t.store.registrations {
		if r.EventID == eventID && r.Status != domain.RegistrationStatusCancelled {
			count++
		}
	}
	return count, nil
}

func (t *fakeRegistrationTx) HasActive(ctx context.Context, eventID, userID string) (bool, error) {
	for _, r := range t.store.registrations {
		if r.EventID == eventID && r.UserID == userID && r.Status != domain.RegistrationStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (t *fakeRegistrationTx) Insert(ctx context.Context, r *domain.Registration) error {
	if t.store.insertErr != nil {
		return t.store.insertErr
	}
	if t.store.collideTimes > 0 {
		t.store.collideTimes--
		return domain.ErrTicketCollision
	}
	r.ID = fmt.Sprintf("reg-%d", t.store.nextID)
	t.store.nextID++
	t.pending = append(t.pending, r)
	return nil
}

func (t *fakeRegistrationTx) Commit() error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	for _, r := range t.pending {
		cp := *r
		t.store.registrations[r.ID] = &cp
	}
	t.finish()
	return nil
}

func (t *fakeRegistrationTx) Rollback() error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *fakeRegistrationTx) finish() {
	t.done = true
	t.pending = nil
	if t.holdsLock {
		t.holdsLock = false
		t.store.mu.Unlock()
	}
}

func (f *fakeRegistrationStore) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.registrations[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationStore) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.registrations {
		if r.EventID == eventID && r.UserID == userID && r.Status != domain.RegistrationStatusCancelled {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRegistrationStore) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.Registration{}
	for _, r := range f.registrations {
		if r.EventID == eventID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (f *fakeRegistrationStore) ListByUserID(ctx context.Context, userID string, params domain.PaginationParams) ([]*domain.RegistrationWithEvent, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*domain.RegistrationWithEvent{}
	for _, r := range f.registrations {
		if r.UserID == userID {
			out = append(out, &domain.RegistrationWithEvent{Registration: *r})
		}
	}
	return out, len(out), nil
}

func (f *fakeRegistrationStore) Cancel(ctx context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.registrations[id]
	if !ok || r.Status != domain.RegistrationStatusRegistered {
		return domain.ErrNotFound
	}
	r.Status = domain.RegistrationStatusCancelled
	r.CancelledAt = &at
	return nil
}

func (f *fakeRegistrationStore) MarkAttended(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.registrations[id]
	if !ok || r.Status != domain.RegistrationStatusRegistered {
		return domain.ErrNotFound
	}
	r.Status = domain.RegistrationStatusAttended
	return nil
}

func (f *fakeRegistrationStore) activeCount(eventID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, r := range f.registrations {
		if r.EventID == eventID && r.Status != domain.RegistrationStatusCancelled {
			count++
		}
	}
	return count
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	nextID int
	err    error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.nextID++
	f.byID[e.ID] = e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	out := []*domain.Event{}
	for _, e := range f.byID {
		if filter.CollegeID != "" && e.CollegeID != filter.CollegeID {
			continue
		}
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Status != nil {
		e.Status = *upd.Status
	}
	if upd.MaxParticipants != nil {
		e.MaxParticipants = upd.MaxParticipants
	}
	if upd.StartTime != nil {
		e.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		e.EndTime = *upd.EndTime
	}
	if upd.RegistrationDeadline != nil {
		e.RegistrationDeadline = upd.RegistrationDeadline
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[string]*domain.User
	tokens map[string]string // token -> userID
	nextID int
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:   make(map[string]*domain.User),
		tokens: make(map[string]string),
		nextID: 1,
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.nextID++
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, collegeID string, params domain.PaginationParams) ([]*domain.User, int, error) {
	out := []*domain.User{}
	for _, u := range f.byID {
		if collegeID != "" && (u.CollegeID == nil || *u.CollegeID != collegeID) {
			continue
		}
		out = append(out, u)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, upd domain.UserUpdate) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.CollegeID != nil {
		u.CollegeID = upd.CollegeID
	}
	if upd.DepartmentID != nil {
		u.DepartmentID = upd.DepartmentID
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) SaveVerificationToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeUserRepo) ConsumeVerificationToken(ctx context.Context, token string) (string, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	delete(f.tokens, token)
	return userID, nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, userID string) error {
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrNotFound
	}
	u.EmailVerified = true
	return nil
}

// fakeCollegeRepo is an in-memory CollegeRepository for tests.
type fakeCollegeRepo struct {
	byID   map[string]*domain.College
	nextID int
}

func newFakeCollegeRepo() *fakeCollegeRepo {
	return &fakeCollegeRepo{byID: make(map[string]*domain.College), nextID: 1}
}

func (f *fakeCollegeRepo) Create(ctx context.Context, c *domain.College) error {
	c.ID = fmt.Sprintf("col-%d", f.nextID)
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCollegeRepo) GetByID(ctx context.Context, id string) (*domain.College, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCollegeRepo) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.College, int, error) {
	out := []*domain.College{}
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeCollegeRepo) Update(ctx context.Context, id string, upd domain.CollegeUpdate) (*domain.College, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	return c, nil
}

func (f *fakeCollegeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeNotificationService records notifications without storage.
type fakeNotificationService struct {
	mu       sync.Mutex
	notified []*domain.Notification
	err      error
}

func (f *fakeNotificationService) Notify(ctx context.Context, n *domain.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, n)
	return nil
}

func (f *fakeNotificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool, params domain.PaginationParams) ([]*domain.Notification, int, error) {
	return nil, 0, nil
}

func (f *fakeNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	return nil
}

func (f *fakeNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return nil
}

func (f *fakeNotificationService) DeleteNotification(ctx context.Context, id, userID string) error {
	return nil
}

// fakeEmailService records outbound transactional emails.
type fakeEmailService struct {
	mu            sync.Mutex
	verifications []string // user IDs
	tickets       []string // registration IDs
	invites       []string // invite IDs
	err           error
}

func (f *fakeEmailService) SendVerificationEmail(ctx context.Context, user *domain.User, token string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifications = append(f.verifications, user.ID)
	return nil
}

func (f *fakeEmailService) SendTicketConfirmation(ctx context.Context, user *domain.User, event *domain.Event, reg *domain.Registration) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickets = append(f.tickets, reg.ID)
	return nil
}

func (f *fakeEmailService) SendInviteEmail(ctx context.Context, invite *domain.InviteToken) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invites = append(f.invites, invite.ID)
	return nil
}

// fakeMailer records raw outbound emails.
type fakeMailer struct {
	mu   sync.Mutex
	sent []*domain.Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, email *domain.Email) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, email)
	return nil
}

// fakeHasher is a transparent PasswordHasher for tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

// fakeIssuer mints predictable tokens.
type fakeIssuer struct{}

func (fakeIssuer) Issue(user *domain.User) (string, error) {
	return "token-" + user.ID, nil
}

// fakeInviteRepo is an in-memory InviteRepository for tests.
type fakeInviteRepo struct {
	byToken map[string]*domain.InviteToken
	nextID  int
}

func newFakeInviteRepo() *fakeInviteRepo {
	return &fakeInviteRepo{byToken: make(map[string]*domain.InviteToken), nextID: 1}
}

func (f *fakeInviteRepo) Create(ctx context.Context, inv *domain.InviteToken) error {
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	f.nextID++
	f.byToken[inv.Token] = inv
	return nil
}

func (f *fakeInviteRepo) GetByToken(ctx context.Context, token string) (*domain.InviteToken, error) {
	if inv, ok := f.byToken[token]; ok {
		return inv, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInviteRepo) GetByID(ctx context.Context, id string) (*domain.InviteToken, error) {
	for _, inv := range f.byToken {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeInviteRepo) MarkUsed(ctx context.Context, id string, at time.Time) error {
	for _, inv := range f.byToken {
		if inv.ID == id {
			if inv.UsedAt != nil {
				return domain.ErrInviteUsed
			}
			inv.UsedAt = &at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInviteRepo) Delete(ctx context.Context, id string) error {
	for token, inv := range f.byToken {
		if inv.ID == id {
			if inv.UsedAt != nil {
				return domain.ErrNotFound
			}
			delete(f.byToken, token)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeInviteRepo) ListByCreator(ctx context.Context, creatorID string, params domain.PaginationParams) ([]*domain.InviteToken, int, error) {
	out := []*domain.InviteToken{}
	for _, inv := range f.byToken {
		if inv.CreatedBy == creatorID {
			out = append(out, inv)
		}
	}
	return out, len(out), nil
}

// fakeTemplateRepo is an in-memory EmailTemplateRepository for tests.
type fakeTemplateRepo struct {
	byID   map[string]*domain.EmailTemplate
	nextID int
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{byID: make(map[string]*domain.EmailTemplate), nextID: 1}
}

func (f *fakeTemplateRepo) Create(ctx context.Context, t *domain.EmailTemplate) error {
	t.ID = fmt.Sprintf("tpl-%d", f.nextID)
	f.nextID++
	f.byID[t.ID] = t
	return nil
}

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	if t, ok := f.byID[id]; ok {
		return t, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeTemplateRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.EmailTemplate, int, error) {
	out := []*domain.EmailTemplate{}
	for _, t := range f.byID {
		out = append(out, t)
	}
	return out, len(out), nil
}

func (f *fakeTemplateRepo) Update(ctx context.Context, id string, upd domain.EmailTemplateUpdate) (*domain.EmailTemplate, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if upd.Subject != nil {
		t.Subject = *upd.Subject
	}
	return t, nil
}

func (f *fakeTemplateRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeCampaignRepo is an in-memory CampaignRepository for tests.
type fakeCampaignRepo struct {
	byID   map[string]*domain.Campaign
	nextID int
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{byID: make(map[string]*domain.Campaign), nextID: 1}
}

func (f *fakeCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	c.ID = fmt.Sprintf("cmp-%d", f.nextID)
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCampaignRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Campaign, int, error) {
	out := []*domain.Campaign{}
	for _, c := range f.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (f *fakeCampaignRepo) UpdateStatus(ctx context.Context, id, status string, sentCount, failCount int, sentAt *time.Time) error {
	c, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Status = status
	c.SentCount = sentCount
	c.FailCount = failCount
	c.SentAt = sentAt
	return nil
}
