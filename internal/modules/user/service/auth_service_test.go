package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/alumninet/alumninet/internal/entity"
	"github.com/alumninet/alumninet/internal/modules/user/dto"
	"github.com/alumninet/alumninet/internal/modules/user/repository"
	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
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
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
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

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) FindAll(_ context.Context, filter repository.ListUsersFilter) ([]*entity.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.User
	for _, user := range f.users {
		if filter.UniversityID != nil {
			if user.UniversityID == nil || *user.UniversityID != *filter.UniversityID {
				continue
			}
		}
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		copied := *user
		result = append(result, &copied)
	}
	return result, int64(len(result)), nil
}

func (f *fakeUsers) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

const testSecret = "test-secret"

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func activeUniversity(id string) *entity.University {
	return &entity.University{ID: id, Name: id, Status: entity.UniversityStatusActive}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	return apperror.MapErrorToStatus(err)
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUsers()
	uni := "mit"
	user := users.add(&entity.User{
		Email:        "alice@mit.edu",
		PasswordHash: hashOf(t, "secret123"),
		Name:         "Alice",
		Role:         entity.RoleAlumni,
		UniversityID: &uni,
		University:   activeUniversity("mit"),
	})

	svc := NewAuthService(users, testSecret, time.Hour)
	res, err := svc.Login(context.Background(), dto.LoginInput{Email: "alice@mit.edu", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.TokenType != "Bearer" || res.AccessToken == "" {
		t.Fatalf("unexpected auth response: %+v", res)
	}

	token, err := jwt.ParseWithClaims(res.AccessToken, &jwt.RegisteredClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := token.Claims.(*jwt.RegisteredClaims)
	if claims.Subject != user.ID.String() {
		t.Fatalf("token subject = %s, want %s", claims.Subject, user.ID)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	users := newFakeUsers()
	uni := "mit"
	users.add(&entity.User{
		Email:        "alice@mit.edu",
		PasswordHash: hashOf(t, "secret123"),
		Role:         entity.RoleAlumni,
		UniversityID: &uni,
		University:   activeUniversity("mit"),
	})

	svc := NewAuthService(users, testSecret, time.Hour)

	_, err := svc.Login(context.Background(), dto.LoginInput{Email: "alice@mit.edu", Password: "wrong"})
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Fatalf("wrong password must map to 401, got %d", statusOf(t, err))
	}

	_, err = svc.Login(context.Background(), dto.LoginInput{Email: "nobody@mit.edu", Password: "secret123"})
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Fatalf("unknown email must map to 401, got %d", statusOf(t, err))
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	users := newFakeUsers()
	uni := "mit"
	users.add(&entity.User{
		Email:        "alice@mit.edu",
		PasswordHash: hashOf(t, "secret123"),
		Role:         entity.RoleAlumni,
		UniversityID: &uni,
		University:   activeUniversity("mit"),
		Status:       entity.UserStatusInactive,
	})

	svc := NewAuthService(users, testSecret, time.Hour)
	_, err := svc.Login(context.Background(), dto.LoginInput{Email: "alice@mit.edu", Password: "secret123"})
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Fatalf("deactivated account must map to 401, got %d", statusOf(t, err))
	}
}

func TestLoginDisabledUniversity(t *testing.T) {
	users := newFakeUsers()
	uni := "mit"
	users.add(&entity.User{
		Email:        "alice@mit.edu",
		PasswordHash: hashOf(t, "secret123"),
		Role:         entity.RoleAlumni,
		UniversityID: &uni,
		University:   &entity.University{ID: "mit", Name: "MIT", Status: entity.UniversityStatusDisabled},
	})

	svc := NewAuthService(users, testSecret, time.Hour)
	_, err := svc.Login(context.Background(), dto.LoginInput{Email: "alice@mit.edu", Password: "secret123"})
	if statusOf(t, err) != http.StatusUnauthorized {
		t.Fatalf("disabled university must map to 401, got %d", statusOf(t, err))
	}
}

func TestLoginSuperadminWithoutUniversity(t *testing.T) {
	users := newFakeUsers()
	users.add(&entity.User{
		Email:        "root@hq",
		PasswordHash: hashOf(t, "secret123"),
		Role:         entity.RoleSuperadmin,
	})

	svc := NewAuthService(users, testSecret, time.Hour)
	if _, err := svc.Login(context.Background(), dto.LoginInput{Email: "root@hq", Password: "secret123"}); err != nil {
		t.Fatalf("superadmin without university must log in: %v", err)
	}
}
