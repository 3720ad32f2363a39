package auth

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockVerificationStore struct{ mock.Mock }

func (m *mockVerificationStore) Create(ctx context.Context, email, code string, expiresAt time.Time) error {
	return m.Called(ctx, email, code, expiresAt).Error(0)
}
func (m *mockVerificationStore) Claim(ctx context.Context, email, code string) (*domain.VerificationCode, error) {
	args := m.Called(ctx, email, code)
	if v, _ := args.Get(0).(*domain.VerificationCode); v != nil {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockVerificationStore) Delete(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) Upsert(ctx context.Context, newID, email string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, newID, email, now)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSessionStore struct{ mock.Mock }

func (m *mockSessionStore) Create(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *mockSigner) Expiry() time.Duration {
	return 30 * 24 * time.Hour
}

// --- builder ---

func newService(vs *mockVerificationStore, us *mockUserStore, ss *mockSessionStore, ml *mockMailer, sg *mockSigner) Service {
	return NewService(Deps{
		Verifications: vs,
		Users:         us,
		Sessions:      ss,
		Signer:        sg,
		Mailer:        ml,
		CodeTTL:       5 * time.Minute,
		Logger:        zerolog.Nop(),
	})
}

// --- RequestCode ---

func TestRequestCode_HappyPath(t *testing.T) {
	vs := &mockVerificationStore{}
	ml := &mockMailer{}

	var storedCode string
	var storedExpiry time.Time
	vs.On("Create", mock.Anything, "a@b.com", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) {
			storedCode = args.String(2)
			storedExpiry = args.Get(3).(time.Time)
		}).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(nil)

	svc := newService(vs, nil, nil, ml, nil)
	require.NoError(t, svc.RequestCode(context.Background(), "a@b.com"))

	require.Regexp(t, regexp.MustCompile(`^\d{6}$`), storedCode)
	n, err := strconv.Atoi(storedCode)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), storedExpiry, 5*time.Second)

	vs.AssertNumberOfCalls(t, "Create", 1)
	vs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	ml.AssertExpectations(t)
}

func TestRequestCode_MailFailureRollsBackCode(t *testing.T) {
	vs := &mockVerificationStore{}
	ml := &mockMailer{}

	var storedCode string
	vs.On("Create", mock.Anything, "a@b.com", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { storedCode = args.String(2) }).Return(nil)
	ml.On("SendEmail", "a@b.com", mock.Anything, mock.Anything).Return(errors.New("smtp down"))
	vs.On("Delete", mock.Anything, "a@b.com", mock.Anything).Return(nil)

	svc := newService(vs, nil, nil, ml, nil)
	err := svc.RequestCode(context.Background(), "a@b.com")

	require.Error(t, err)
	vs.AssertCalled(t, "Delete", mock.Anything, "a@b.com", storedCode)
}

func TestRequestCode_StoreFailure(t *testing.T) {
	vs := &mockVerificationStore{}
	ml := &mockMailer{}
	vs.On("Create", mock.Anything, "a@b.com", mock.Anything, mock.Anything).Return(errors.New("db down"))

	svc := newService(vs, nil, nil, ml, nil)
	err := svc.RequestCode(context.Background(), "a@b.com")

	require.Error(t, err)
	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

// --- VerifyCode ---

func TestVerifyCode_HappyPath(t *testing.T) {
	vs := &mockVerificationStore{}
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	sg := &mockSigner{}

	vs.On("Claim", mock.Anything, "a@b.com", "123456").
		Return(&domain.VerificationCode{ID: 1, Email: "a@b.com", Code: "123456", Used: true}, nil)
	us.On("Upsert", mock.Anything, mock.AnythingOfType("string"), "a@b.com", mock.Anything).
		Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	sg.On("Sign", "u1", "a@b.com").Return("signed-token", nil)

	var sess *domain.Session
	ss.On("Create", mock.Anything, mock.AnythingOfType("*domain.Session")).
		Run(func(args mock.Arguments) { sess = args.Get(1).(*domain.Session) }).Return(nil)

	svc := newService(vs, us, ss, nil, sg)
	user, token, err := svc.VerifyCode(context.Background(), "a@b.com", "123456")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, "signed-token", token)
	require.NotNil(t, sess)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "signed-token", sess.Token)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), sess.ExpiresAt, 5*time.Second)
}

func TestVerifyCode_NoMatchIsUnauthorized(t *testing.T) {
	vs := &mockVerificationStore{}
	us := &mockUserStore{}
	vs.On("Claim", mock.Anything, "a@b.com", "000000").Return(nil, domain.ErrNotFound)

	svc := newService(vs, us, nil, nil, nil)
	_, _, err := svc.VerifyCode(context.Background(), "a@b.com", "000000")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	us.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyCode_StoreFailureIsNotUnauthorized(t *testing.T) {
	vs := &mockVerificationStore{}
	us := &mockUserStore{}
	vs.On("Claim", mock.Anything, "a@b.com", "123456").Return(nil, errors.New("connection refused"))

	svc := newService(vs, us, nil, nil, nil)
	_, _, err := svc.VerifyCode(context.Background(), "a@b.com", "123456")

	require.Error(t, err)
	// A store outage is an internal failure, not a bad code.
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
	us.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyCode_SecondUseFails(t *testing.T) {
	vs := &mockVerificationStore{}
	us := &mockUserStore{}
	ss := &mockSessionStore{}
	sg := &mockSigner{}

	// First claim wins, the used flag flips, the second claim finds nothing.
	vs.On("Claim", mock.Anything, "a@b.com", "123456").
		Return(&domain.VerificationCode{ID: 1, Used: true}, nil).Once()
	vs.On("Claim", mock.Anything, "a@b.com", "123456").
		Return(nil, domain.ErrNotFound).Once()
	us.On("Upsert", mock.Anything, mock.Anything, "a@b.com", mock.Anything).
		Return(&domain.User{UserID: "u1", Email: "a@b.com"}, nil)
	sg.On("Sign", "u1", "a@b.com").Return("tok", nil)
	ss.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newService(vs, us, ss, nil, sg)

	_, _, err := svc.VerifyCode(context.Background(), "a@b.com", "123456")
	require.NoError(t, err)

	_, _, err = svc.VerifyCode(context.Background(), "a@b.com", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
