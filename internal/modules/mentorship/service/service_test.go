package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/alumninet/alumninet/internal/entity"
	mentorDto "github.com/alumninet/alumninet/internal/modules/mentorship/dto"
	mentorRepo "github.com/alumninet/alumninet/internal/modules/mentorship/repository"
	userRepo "github.com/alumninet/alumninet/internal/modules/user/repository"
	"github.com/alumninet/alumninet/internal/ranking"
	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUsers) add(user *entity.User) *entity.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Status == "" {
		user.Status = entity.UserStatusActive
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUsers) Create(_ context.Context, user *entity.User) error {
	f.add(user)
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, _ string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) FindAll(_ context.Context, _ userRepo.ListUsersFilter) ([]*entity.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUsers) Count(_ context.Context) (int64, error) { return 0, nil }

type fakeNotifier struct {
	mu        sync.Mutex
	published []*entity.Notification
}

func (f *fakeNotifier) CreateNotification(_ context.Context, _ *entity.Notification) error {
	return nil
}

func (f *fakeNotifier) Publish(_ context.Context, n *entity.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, n)
}

func (f *fakeNotifier) GetNotifications(_ context.Context, _ uuid.UUID, _, _ int) ([]entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkAsRead(_ context.Context, _, _ uuid.UUID) error { return nil }

func (f *fakeNotifier) MarkAllAsRead(_ context.Context, _ uuid.UUID) error { return nil }

func (f *fakeNotifier) UnreadCount(_ context.Context, _ uuid.UUID) (int64, error) { return 0, nil }

// fakeMentorshipRepo mirrors the storage contract: one request per
// (mentor, mentee) pair ever, conditional status flips, counter bumped
// inside the accept.
type fakeMentorshipRepo struct {
	mu            sync.Mutex
	users         *fakeUsers
	mentors       map[uuid.UUID]*entity.Mentor
	requests      map[uuid.UUID]*entity.MentorshipRequest
	notifications []*entity.Notification
	lastFilter    mentorRepo.MentorFilter
}

func newFakeMentorshipRepo(users *fakeUsers) *fakeMentorshipRepo {
	return &fakeMentorshipRepo{
		users:    users,
		mentors:  make(map[uuid.UUID]*entity.Mentor),
		requests: make(map[uuid.UUID]*entity.MentorshipRequest),
	}
}

func (f *fakeMentorshipRepo) FindMentorByID(_ context.Context, id uuid.UUID) (*entity.Mentor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mentor, ok := f.mentors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *mentor
	copied.User = f.users.users[mentor.UserID]
	return &copied, nil
}

func (f *fakeMentorshipRepo) FindMentorByUserID(_ context.Context, userID uuid.UUID) (*entity.Mentor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, mentor := range f.mentors {
		if mentor.UserID == userID {
			copied := *mentor
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMentorshipRepo) EnableMentor(_ context.Context, user *entity.User, profile *entity.Mentor) (*entity.Mentor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if stored, ok := f.users.users[user.ID]; ok {
		stored.IsMentor = true
	}

	for _, mentor := range f.mentors {
		if mentor.UserID == user.ID {
			mentor.Status = entity.MentorStatusActive
			if profile != nil {
				if len(profile.Expertise) > 0 {
					mentor.Expertise = profile.Expertise
				}
				if profile.Availability != "" {
					mentor.Availability = profile.Availability
				}
				if profile.YearsExperience > 0 {
					mentor.YearsExperience = profile.YearsExperience
				}
			}
			copied := *mentor
			return &copied, nil
		}
	}

	mentor := &entity.Mentor{
		ID:     uuid.New(),
		UserID: user.ID,
		Status: entity.MentorStatusActive,
	}
	if profile != nil {
		mentor.Expertise = profile.Expertise
		mentor.Availability = profile.Availability
		mentor.YearsExperience = profile.YearsExperience
	}
	f.mentors[mentor.ID] = mentor
	copied := *mentor
	return &copied, nil
}

func (f *fakeMentorshipRepo) DisableMentor(_ context.Context, user *entity.User) (*entity.Mentor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if stored, ok := f.users.users[user.ID]; ok {
		stored.IsMentor = false
	}

	for _, mentor := range f.mentors {
		if mentor.UserID == user.ID {
			mentor.Status = entity.MentorStatusInactive
			copied := *mentor
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMentorshipRepo) CreateRequest(_ context.Context, request *entity.MentorshipRequest, notification *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.requests {
		if r.MentorID == request.MentorID && r.MenteeID == request.MenteeID {
			return apperror.ErrConflict
		}
	}

	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	stored := *request
	f.requests[request.ID] = &stored

	if notification != nil {
		f.notifications = append(f.notifications, notification)
	}
	return nil
}

func (f *fakeMentorshipRepo) FindRequestByID(_ context.Context, id uuid.UUID) (*entity.MentorshipRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	if mentor, ok := f.mentors[request.MentorID]; ok {
		mentorCopy := *mentor
		copied.Mentor = &mentorCopy
	}
	copied.Mentee = f.users.users[request.MenteeID]
	return &copied, nil
}

func (f *fakeMentorshipRepo) AcceptRequest(_ context.Context, requestID uuid.UUID, notification *entity.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[requestID]
	if !ok || request.Status != entity.RequestStatusPending {
		return apperror.ErrNotFound
	}

	request.Status = entity.RequestStatusAccepted
	if mentor, ok := f.mentors[request.MentorID]; ok {
		mentor.MenteesCount++
	}

	if notification != nil {
		notification.UserID = request.MenteeID
		f.notifications = append(f.notifications, notification)
	}
	return nil
}

func (f *fakeMentorshipRepo) RejectRequest(_ context.Context, requestID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	request, ok := f.requests[requestID]
	if !ok || request.Status != entity.RequestStatusPending {
		return apperror.ErrNotFound
	}
	request.Status = entity.RequestStatusRejected
	return nil
}

func (f *fakeMentorshipRepo) ListMentors(_ context.Context, filter mentorRepo.MentorFilter) ([]entity.Mentor, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter

	var result []entity.Mentor
	for _, mentor := range f.mentors {
		if !mentor.IsActive() {
			continue
		}
		user, ok := f.users.users[mentor.UserID]
		if !ok || !user.IsActive() {
			continue
		}
		if filter.UniversityID != nil {
			if user.UniversityID == nil || *user.UniversityID != *filter.UniversityID {
				continue
			}
		}
		copied := *mentor
		copied.User = user
		result = append(result, copied)
	}
	return result, int64(len(result)), nil
}

func (f *fakeMentorshipRepo) ListRequestsForMentor(_ context.Context, mentorID uuid.UUID) ([]entity.MentorshipRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []entity.MentorshipRequest
	for _, r := range f.requests {
		if r.MentorID != mentorID {
			continue
		}
		copied := *r
		copied.Mentee = f.users.users[r.MenteeID]
		result = append(result, copied)
	}
	return result, nil
}

func (f *fakeMentorshipRepo) ListRequestsForMentee(_ context.Context, menteeID uuid.UUID) ([]entity.MentorshipRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []entity.MentorshipRequest
	for _, r := range f.requests {
		if r.MenteeID != menteeID {
			continue
		}
		copied := *r
		if mentor, ok := f.mentors[r.MentorID]; ok {
			mentorCopy := *mentor
			mentorCopy.User = f.users.users[mentor.UserID]
			copied.Mentor = &mentorCopy
		}
		result = append(result, copied)
	}
	return result, nil
}

type mentorFixture struct {
	users    *fakeUsers
	repo     *fakeMentorshipRepo
	notifier *fakeNotifier
	service  MentorshipService
}

func newMentorFixture() *mentorFixture {
	users := newFakeUsers()
	repo := newFakeMentorshipRepo(users)
	notifier := &fakeNotifier{}
	return &mentorFixture{
		users:    users,
		repo:     repo,
		notifier: notifier,
		service:  NewMentorshipService(repo, users, notifier, nil, ranking.Fixed(66)),
	}
}

func (f *mentorFixture) addAlumni(name, universityID string) *entity.User {
	uni := universityID
	return f.users.add(&entity.User{
		Name:         name,
		Email:        name + "@example.edu",
		Role:         entity.RoleAlumni,
		UniversityID: &uni,
		Status:       entity.UserStatusActive,
	})
}

func (f *mentorFixture) enableMentor(t *testing.T, user *entity.User, input mentorDto.ToggleMentorInput) *entity.Mentor {
	t.Helper()
	mentor, err := f.service.ToggleMentor(context.Background(), actorFor(user), input)
	if err != nil {
		t.Fatalf("ToggleMentor: %v", err)
	}
	return mentor
}

func actorFor(user *entity.User) entity.Actor {
	return entity.Actor{ID: user.ID, Name: user.Name, Role: user.Role, UniversityID: user.UniversityID}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	return apperror.MapErrorToStatus(err)
}

func TestToggleMentorLifecycle(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")

	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{
		Expertise:       []string{"go", "distributed systems"},
		Availability:    "weekends",
		YearsExperience: 8,
	})
	if !mentor.IsActive() {
		t.Fatal("enabled mentor should be active")
	}
	if len(mentor.Expertise) != 2 || mentor.Availability != "weekends" {
		t.Fatalf("profile not stored: %+v", mentor)
	}

	stored, _ := f.users.FindByID(context.Background(), carol.ID)
	if !stored.IsMentor {
		t.Fatal("user flag should be set after enabling")
	}

	// Second toggle disables without deleting.
	disabled, err := f.service.ToggleMentor(context.Background(), actorFor(carol), mentorDto.ToggleMentorInput{})
	if err != nil {
		t.Fatalf("ToggleMentor disable: %v", err)
	}
	if disabled.IsActive() {
		t.Fatal("second toggle should deactivate the profile")
	}

	stored, _ = f.users.FindByID(context.Background(), carol.ID)
	if stored.IsMentor {
		t.Fatal("user flag should be cleared after disabling")
	}
}

func TestToggleMentorReactivationKeepsCounter(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	dave := f.addAlumni("dave", "mit")

	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{Expertise: []string{"go"}})

	request, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "please"})
	if err != nil {
		t.Fatalf("RequestMentorship: %v", err)
	}
	if err := f.service.AcceptRequest(context.Background(), actorFor(carol), request.ID); err != nil {
		t.Fatalf("AcceptRequest: %v", err)
	}

	if _, err := f.service.ToggleMentor(context.Background(), actorFor(carol), mentorDto.ToggleMentorInput{}); err != nil {
		t.Fatalf("disable: %v", err)
	}
	reactivated := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	if reactivated.ID != mentor.ID {
		t.Fatal("reactivation must reuse the existing profile")
	}
	if reactivated.MenteesCount != 1 {
		t.Fatalf("mentees count after reactivation = %d, want 1", reactivated.MenteesCount)
	}
	if len(reactivated.Expertise) != 1 || reactivated.Expertise[0] != "go" {
		t.Fatalf("expertise should survive reactivation, got %v", reactivated.Expertise)
	}
}

func TestRequestMentorshipFromSelf(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	_, err := f.service.RequestMentorship(context.Background(), actorFor(carol), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"})
	if !errors.Is(err, apperror.ErrInvalidOperation) {
		t.Fatalf("expected invalid operation, got %v", err)
	}
}

func TestRequestMentorshipUnknownOrInactiveMentor(t *testing.T) {
	f := newMentorFixture()
	dave := f.addAlumni("dave", "mit")

	_, err := f.service.RequestMentorship(context.Background(), actorFor(dave), uuid.New(), mentorDto.RequestMentorshipInput{Message: "hi"})
	if statusOf(t, err) != http.StatusNotFound {
		t.Fatalf("unknown mentor must map to 404, got %d", statusOf(t, err))
	}

	carol := f.addAlumni("carol", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})
	if _, err := f.service.ToggleMentor(context.Background(), actorFor(carol), mentorDto.ToggleMentorInput{}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	_, err = f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"})
	if statusOf(t, err) != http.StatusNotFound {
		t.Fatalf("deactivated mentor must map to 404, got %d", statusOf(t, err))
	}
}

func TestRequestMentorshipCrossTenant(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})
	outsider := f.addAlumni("outsider", "stanford")

	_, err := f.service.RequestMentorship(context.Background(), actorFor(outsider), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"})
	if statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("cross-tenant request must map to 403, got %d", statusOf(t, err))
	}
}

func TestRequestMentorshipDuplicate(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	dave := f.addAlumni("dave", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	if _, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"}); err != nil {
		t.Fatalf("first request: %v", err)
	}

	_, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "again"})
	if statusOf(t, err) != http.StatusConflict {
		t.Fatalf("duplicate request must map to 409, got %d", statusOf(t, err))
	}
}

func TestRejectedMentorshipBlocksRetry(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	dave := f.addAlumni("dave", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	request, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"})
	if err != nil {
		t.Fatalf("RequestMentorship: %v", err)
	}
	if err := f.service.RejectRequest(context.Background(), actorFor(carol), request.ID); err != nil {
		t.Fatalf("RejectRequest: %v", err)
	}

	_, err = f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "retry"})
	if statusOf(t, err) != http.StatusConflict {
		t.Fatalf("retry after reject must map to 409, got %d", statusOf(t, err))
	}
}

func TestAcceptMentorshipOwnershipAndCounter(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	dave := f.addAlumni("dave", "mit")
	eve := f.addAlumni("eve", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	request, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"})
	if err != nil {
		t.Fatalf("RequestMentorship: %v", err)
	}

	// Only the mentor's own user may resolve the request; others see 404.
	if err := f.service.AcceptRequest(context.Background(), actorFor(eve), request.ID); statusOf(t, err) != http.StatusNotFound {
		t.Fatalf("foreign accept must map to 404, got %d", statusOf(t, err))
	}

	if err := f.service.AcceptRequest(context.Background(), actorFor(carol), request.ID); err != nil {
		t.Fatalf("AcceptRequest: %v", err)
	}

	if got := f.repo.mentors[mentor.ID].MenteesCount; got != 1 {
		t.Fatalf("mentees count = %d, want 1", got)
	}

	// A second accept finds no pending row and the counter stays put.
	if err := f.service.AcceptRequest(context.Background(), actorFor(carol), request.ID); statusOf(t, err) != http.StatusNotFound {
		t.Fatalf("second accept must map to 404, got %d", statusOf(t, err))
	}
	if got := f.repo.mentors[mentor.ID].MenteesCount; got != 1 {
		t.Fatalf("mentees count after replay = %d, want 1", got)
	}

	// The acceptance notification goes to the mentee.
	last := f.repo.notifications[len(f.repo.notifications)-1]
	if last.Type != entity.NotificationMentorshipAccepted || last.UserID != dave.ID {
		t.Fatalf("acceptance notification = %+v", last)
	}
}

func TestAcceptMentorshipConcurrentSingleFire(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	dave := f.addAlumni("dave", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	request, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"})
	if err != nil {
		t.Fatalf("RequestMentorship: %v", err)
	}

	const attempts = 10
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- f.service.AcceptRequest(context.Background(), actorFor(carol), request.ID)
		}()
	}
	wg.Wait()
	close(errs)

	var successes int
	for err := range errs {
		if err == nil {
			successes++
		}
	}
	if successes != 1 {
		t.Fatalf("accept fired %d times, want exactly 1", successes)
	}
	if got := f.repo.mentors[mentor.ID].MenteesCount; got != 1 {
		t.Fatalf("mentees count = %d, want 1", got)
	}
}

func TestRequestMentorshipNotifiesMentor(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	dave := f.addAlumni("dave", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	if _, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"}); err != nil {
		t.Fatalf("RequestMentorship: %v", err)
	}

	if len(f.repo.notifications) != 1 {
		t.Fatalf("stored notifications = %d, want 1", len(f.repo.notifications))
	}
	n := f.repo.notifications[0]
	if n.UserID != carol.ID || n.Type != entity.NotificationMentorshipRequest {
		t.Fatalf("notification = %+v, want %s to %s", n, entity.NotificationMentorshipRequest, carol.ID)
	}
	if len(f.notifier.published) != 1 {
		t.Fatalf("published = %d, want 1", len(f.notifier.published))
	}
}

func TestListMentorsScopesTenantAndScores(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	f.enableMentor(t, carol, mentorDto.ToggleMentorInput{Expertise: []string{"go"}})

	outsider := f.addAlumni("outsider", "stanford")
	f.enableMentor(t, outsider, mentorDto.ToggleMentorInput{})

	dave := f.addAlumni("dave", "mit")
	mentors, err := f.service.ListMentors(context.Background(), actorFor(dave), mentorDto.ListMentorsQuery{})
	if err != nil {
		t.Fatalf("ListMentors: %v", err)
	}

	if f.repo.lastFilter.UniversityID == nil || *f.repo.lastFilter.UniversityID != "mit" {
		t.Fatalf("filter university = %v, want mit", f.repo.lastFilter.UniversityID)
	}
	if len(mentors) != 1 || mentors[0].User.ID != carol.ID {
		t.Fatalf("mentors = %+v, want only carol", mentors)
	}
	if mentors[0].MatchScore != 66 {
		t.Fatalf("match score = %f, want the strategy's 66", mentors[0].MatchScore)
	}
}

func TestListMentorsSuperadminAllUniversities(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})
	outsider := f.addAlumni("outsider", "stanford")
	f.enableMentor(t, outsider, mentorDto.ToggleMentorInput{})

	super := f.users.add(&entity.User{Name: "root", Email: "root@hq", Role: entity.RoleSuperadmin})

	mentors, err := f.service.ListMentors(context.Background(), actorFor(super), mentorDto.ListMentorsQuery{AllUniversities: true})
	if err != nil {
		t.Fatalf("ListMentors: %v", err)
	}
	if len(mentors) != 2 {
		t.Fatalf("superadmin spanning all tenants sees %d mentors, want 2", len(mentors))
	}
	if f.repo.lastFilter.UniversityID != nil {
		t.Fatalf("filter should be unscoped, got %v", *f.repo.lastFilter.UniversityID)
	}
}

func TestListRequestsDirections(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	dave := f.addAlumni("dave", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	if _, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{Message: "hi"}); err != nil {
		t.Fatalf("RequestMentorship: %v", err)
	}

	incoming, err := f.service.ListRequests(context.Background(), actorFor(carol), "")
	if err != nil {
		t.Fatalf("ListRequests mentor view: %v", err)
	}
	if len(incoming) != 1 || incoming[0].User.ID != dave.ID {
		t.Fatalf("mentor view = %+v, want dave's card", incoming)
	}

	outgoing, err := f.service.ListRequests(context.Background(), actorFor(dave), "outgoing")
	if err != nil {
		t.Fatalf("ListRequests mentee view: %v", err)
	}
	if len(outgoing) != 1 || outgoing[0].User.ID != carol.ID {
		t.Fatalf("mentee view = %+v, want carol's card", outgoing)
	}

	// A non-mentor asking for the mentor view gets an empty list.
	none, err := f.service.ListRequests(context.Background(), actorFor(dave), "")
	if err != nil {
		t.Fatalf("ListRequests non-mentor: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("non-mentor view = %+v, want empty", none)
	}
}

func TestMentorshipMessageSanitized(t *testing.T) {
	f := newMentorFixture()
	carol := f.addAlumni("carol", "mit")
	dave := f.addAlumni("dave", "mit")
	mentor := f.enableMentor(t, carol, mentorDto.ToggleMentorInput{})

	request, err := f.service.RequestMentorship(context.Background(), actorFor(dave), mentor.ID, mentorDto.RequestMentorshipInput{
		Message: `<script>alert(1)</script>be my mentor`,
	})
	if err != nil {
		t.Fatalf("RequestMentorship: %v", err)
	}
	if request.Message != "be my mentor" {
		t.Fatalf("message not sanitized: %q", request.Message)
	}
}
