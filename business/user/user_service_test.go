package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartCanteen/domain"
	"smartCanteen/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

const testVerificationKey = "0123456789abcdef0123456789abcdef"

type fakeUserRepo struct {
	byEmail  map[string]domain.User
	verified map[uint]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:  make(map[string]domain.User),
		verified: make(map[uint]bool),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = uint(len(f.byEmail) + 1)
	f.byEmail[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, errors.New("user not found")
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, errors.New("user not found")
	}
	return u, nil
}

func (f *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	f.verified[id] = isVerified
	return nil
}

type fakeNotifRepo struct {
	sent []string
}

func (f *fakeNotifRepo) SendEmail(toName, toEmail, subject, message string) error {
	f.sent = append(f.sent, toEmail)
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]string)}
}

func (f *fakeTokenRepo) StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error {
	f.tokens[token] = userID
	return nil
}

func (f *fakeTokenRepo) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, ok := f.tokens[token]
	if !ok {
		return "", errors.New("token not found or expired")
	}
	return userID, nil
}

func (f *fakeTokenRepo) DeleteToken(ctx context.Context, userID, token string) error {
	delete(f.tokens, token)
	return nil
}

func newTestService(repo *fakeUserRepo, notif *fakeNotifRepo, tokens *fakeTokenRepo) *UserService {
	utils.InitJWT("test-secret")
	return NewUserService(repo, validator.New(), notif, tokens, testVerificationKey, "http://localhost:8080")
}

func TestRegisterHashesPasswordAndSendsEmail(t *testing.T) {
	repo := newFakeUserRepo()
	notif := &fakeNotifRepo{}
	svc := newTestService(repo, notif, newFakeTokenRepo())

	user, err := svc.Register(context.Background(), &domain.User{
		FullName: "Budi",
		Email:    "Budi@Example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Password != "" {
		t.Error("password must not be returned")
	}
	if user.Role != RoleCustomer {
		t.Errorf("role = %q, want customer", user.Role)
	}

	stored := repo.byEmail["budi@example.com"]
	if stored.ID == 0 {
		t.Fatal("user not stored under lowercased email")
	}
	if stored.Password == "secret123" || stored.Password == "" {
		t.Error("stored password must be hashed")
	}
	if len(notif.sent) != 1 {
		t.Errorf("expected 1 verification email, got %d", len(notif.sent))
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeNotifRepo{}, newFakeTokenRepo())

	first := &domain.User{FullName: "Budi", Email: "budi@example.com", Password: "secret123"}
	if _, err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	second := &domain.User{FullName: "Budi 2", Email: "budi@example.com", Password: "secret456"}
	if _, err := svc.Register(context.Background(), second); err == nil {
		t.Error("expected duplicate email to be rejected")
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakeNotifRepo{}, newFakeTokenRepo())

	_, err := svc.Register(context.Background(), &domain.User{
		FullName: "Budi",
		Email:    "budi@example.com",
		Password: "abc",
	})
	if err == nil {
		t.Error("expected short password to be rejected")
	}
}

func TestLoginAndLogout(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	svc := newTestService(repo, &fakeNotifRepo{}, tokens)

	if _, err := svc.Register(context.Background(), &domain.User{
		FullName: "Budi",
		Email:    "budi@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "budi@example.com", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}

	userID, err := svc.ValidateTokenFromRedis(context.Background(), token)
	if err != nil || userID != "1" {
		t.Errorf("token not stored in session store: id=%q err=%v", userID, err)
	}

	if err := svc.Logout(context.Background(), user.ID, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.ValidateTokenFromRedis(context.Background(), token); err == nil {
		t.Error("token must be invalid after logout")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeNotifRepo{}, newFakeTokenRepo())

	if _, err := svc.Register(context.Background(), &domain.User{
		FullName: "Budi",
		Email:    "budi@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "budi@example.com", "wrong"); err == nil {
		t.Error("expected wrong password to be rejected")
	}
}

func TestVerifyEmailRoundtrip(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo, &fakeNotifRepo{}, newFakeTokenRepo())

	if _, err := svc.Register(context.Background(), &domain.User{
		FullName: "Budi",
		Email:    "budi@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	encrypted, err := goshortcute.AESCBCEncrypt([]byte("1|budi@example.com"), []byte(testVerificationKey))
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	code := goshortcute.StringtoBase64Encode(encrypted)

	if err := svc.VerifyEmail(context.Background(), code); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !repo.verified[1] {
		t.Error("user not marked verified")
	}
}

func TestVerifyEmailRejectsGarbage(t *testing.T) {
	svc := newTestService(newFakeUserRepo(), &fakeNotifRepo{}, newFakeTokenRepo())

	if err := svc.VerifyEmail(context.Background(), "not-a-real-code"); err == nil {
		t.Error("expected garbage code to be rejected")
	}
}
