package service

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/alumninet/alumninet/internal/modules/user/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUniversities struct {
	mu           sync.Mutex
	universities map[string]*entity.University
}

func newFakeUniversities(ids ...string) *fakeUniversities {
	f := &fakeUniversities{universities: make(map[string]*entity.University)}
	for _, id := range ids {
		f.universities[id] = &entity.University{ID: id, Name: id, Status: entity.UniversityStatusActive}
	}
	return f
}

func (f *fakeUniversities) Create(_ context.Context, university *entity.University) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.universities[university.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	f.universities[university.ID] = university
	return nil
}

func (f *fakeUniversities) FindByID(_ context.Context, id string) (*entity.University, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	university, ok := f.universities[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *university
	return &copied, nil
}

func (f *fakeUniversities) FindAll(_ context.Context) ([]*entity.University, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.University
	for _, u := range f.universities {
		copied := *u
		result = append(result, &copied)
	}
	return result, nil
}

func (f *fakeUniversities) Update(_ context.Context, university *entity.University) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.universities[university.ID] = university
	return nil
}

func adminActor(universityID string) entity.Actor {
	uni := universityID
	return entity.Actor{ID: uuid.New(), Name: "Admin", Role: entity.RoleAdmin, UniversityID: &uni}
}

func superadminActor() entity.Actor {
	return entity.Actor{ID: uuid.New(), Name: "Root", Role: entity.RoleSuperadmin}
}

func TestCreateUserDefaultsToAlumniInAdminTenant(t *testing.T) {
	users := newFakeUsers()
	svc := NewAdminService(users, newFakeUniversities("mit"))

	created, err := svc.CreateUser(context.Background(), adminActor("mit"), dto.CreateUserInput{
		Email:    "new@mit.edu",
		Password: "secret123",
		Name:     "New Alum",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.Role != entity.RoleAlumni {
		t.Fatalf("role = %s, want alumni", created.Role)
	}
	if created.UniversityID == nil || *created.UniversityID != "mit" {
		t.Fatalf("university = %v, want admin's tenant", created.UniversityID)
	}
	if created.PasswordHash == "secret123" || created.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
}

func TestCreateUserTenantAndRoleGates(t *testing.T) {
	users := newFakeUsers()
	svc := NewAdminService(users, newFakeUniversities("mit", "stanford"))
	stanford := "stanford"

	_, err := svc.CreateUser(context.Background(), adminActor("mit"), dto.CreateUserInput{
		Email:        "out@stanford.edu",
		Password:     "secret123",
		Name:         "Outsider",
		UniversityID: &stanford,
	})
	if statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("cross-tenant create must map to 403, got %d", statusOf(t, err))
	}

	_, err = svc.CreateUser(context.Background(), adminActor("mit"), dto.CreateUserInput{
		Email:    "peer@mit.edu",
		Password: "secret123",
		Name:     "Peer",
		Role:     entity.RoleAdmin,
	})
	if statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("admin creating admin must map to 403, got %d", statusOf(t, err))
	}

	// Superadmin may create admins in any tenant.
	if _, err := svc.CreateUser(context.Background(), superadminActor(), dto.CreateUserInput{
		Email:        "admin@stanford.edu",
		Password:     "secret123",
		Name:         "Stanford Admin",
		Role:         entity.RoleAdmin,
		UniversityID: &stanford,
	}); err != nil {
		t.Fatalf("superadmin create admin: %v", err)
	}
}

func TestCreateUserUnknownUniversity(t *testing.T) {
	users := newFakeUsers()
	svc := NewAdminService(users, newFakeUniversities("mit"))
	ghost := "ghost"

	_, err := svc.CreateUser(context.Background(), superadminActor(), dto.CreateUserInput{
		Email:        "x@ghost.edu",
		Password:     "secret123",
		Name:         "X",
		UniversityID: &ghost,
	})
	if statusOf(t, err) != http.StatusNotFound {
		t.Fatalf("unknown university must map to 404, got %d", statusOf(t, err))
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	users := newFakeUsers()
	svc := NewAdminService(users, newFakeUniversities("mit"))

	input := dto.CreateUserInput{Email: "dup@mit.edu", Password: "secret123", Name: "Dup"}
	if _, err := svc.CreateUser(context.Background(), adminActor("mit"), input); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.CreateUser(context.Background(), adminActor("mit"), input)
	if statusOf(t, err) != http.StatusConflict {
		t.Fatalf("duplicate email must map to 409, got %d", statusOf(t, err))
	}
}

func TestListUsersPinsAdminToOwnTenant(t *testing.T) {
	users := newFakeUsers()
	mit, stanford := "mit", "stanford"
	users.add(&entity.User{Email: "a@mit.edu", Role: entity.RoleAlumni, UniversityID: &mit})
	users.add(&entity.User{Email: "b@stanford.edu", Role: entity.RoleAlumni, UniversityID: &stanford})

	svc := NewAdminService(users, newFakeUniversities("mit", "stanford"))

	// The admin's university_id filter is ignored in favor of their tenant.
	res, err := svc.ListUsers(context.Background(), adminActor("mit"), dto.ListUsersQuery{UniversityID: "stanford"})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(res.Data) != 1 || *res.Data[0].UniversityID != "mit" {
		t.Fatalf("admin list = %+v, want only mit users", res.Data)
	}

	res, err = svc.ListUsers(context.Background(), superadminActor(), dto.ListUsersQuery{UniversityID: "stanford"})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(res.Data) != 1 || *res.Data[0].UniversityID != "stanford" {
		t.Fatalf("superadmin filtered list = %+v, want stanford users", res.Data)
	}
}

func TestDeactivateUserScope(t *testing.T) {
	users := newFakeUsers()
	mit, stanford := "mit", "stanford"
	target := users.add(&entity.User{Email: "a@mit.edu", Role: entity.RoleAlumni, UniversityID: &mit})
	outsider := users.add(&entity.User{Email: "b@stanford.edu", Role: entity.RoleAlumni, UniversityID: &stanford})
	peer := users.add(&entity.User{Email: "admin2@mit.edu", Role: entity.RoleAdmin, UniversityID: &mit})

	svc := NewAdminService(users, newFakeUniversities("mit", "stanford"))
	actor := adminActor("mit")

	if err := svc.DeactivateUser(context.Background(), actor, target.ID); err != nil {
		t.Fatalf("DeactivateUser: %v", err)
	}
	stored, _ := users.FindByID(context.Background(), target.ID)
	if stored.IsActive() {
		t.Fatal("target should be inactive")
	}

	if err := svc.DeactivateUser(context.Background(), actor, outsider.ID); statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("cross-tenant deactivate must map to 403, got %d", statusOf(t, err))
	}
	if err := svc.DeactivateUser(context.Background(), actor, peer.ID); statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("admin deactivating admin must map to 403, got %d", statusOf(t, err))
	}

	// Superadmin may manage any account.
	if err := svc.DeactivateUser(context.Background(), superadminActor(), peer.ID); err != nil {
		t.Fatalf("superadmin deactivate: %v", err)
	}
}

func TestUpdateUserRoleChangeSuperadminOnly(t *testing.T) {
	users := newFakeUsers()
	mit := "mit"
	target := users.add(&entity.User{Email: "a@mit.edu", Role: entity.RoleAlumni, UniversityID: &mit})

	svc := NewAdminService(users, newFakeUniversities("mit"))
	role := entity.RoleAdmin

	_, err := svc.UpdateUser(context.Background(), adminActor("mit"), target.ID, dto.UpdateUserInput{Role: &role})
	if statusOf(t, err) != http.StatusForbidden {
		t.Fatalf("admin role change must map to 403, got %d", statusOf(t, err))
	}

	updated, err := svc.UpdateUser(context.Background(), superadminActor(), target.ID, dto.UpdateUserInput{Role: &role})
	if err != nil {
		t.Fatalf("superadmin role change: %v", err)
	}
	if updated.Role != entity.RoleAdmin {
		t.Fatalf("role = %s, want admin", updated.Role)
	}
}
