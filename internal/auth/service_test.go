package auth

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/edurede/school-registry/internal"
	userDatamodel "github.com/edurede/school-registry/internal/core/datamodel/user"
)

// Mock UserRepository for testing
type mockUserRepository struct {
	usersByEmail map[string]*userDatamodel.User
	nextID       int64
	failWith     error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByEmail: make(map[string]*userDatamodel.User),
		nextID:       1,
	}
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.usersByEmail[email], nil
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.failWith != nil {
		return m.failWith
	}
	u.ID = m.nextID
	m.nextID++
	m.usersByEmail[u.Email] = u
	return nil
}

func (m *mockUserRepository) seed(email, password, role string) *userDatamodel.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &userDatamodel.User{
		Name:         "Seeded",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	_ = m.Create(u)
	return u
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator("test-signing-secret-of-sufficient-len", time.Hour)
		service = NewService(mockRepo, tokenGen, bcrypt.MinCost, logger)
	})

	ginkgo.Describe("Register", func() {
		ginkgo.It("persists a new user with a hashed password and the view role", func() {
			err := service.Register(RegisterDTO{
				Name:     "Maria",
				Email:    "maria@example.com",
				Password: "secret1",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			stored := mockRepo.usersByEmail["maria@example.com"]
			gomega.Expect(stored).ToNot(gomega.BeNil())
			gomega.Expect(stored.Role).To(gomega.Equal("view"))
			gomega.Expect(stored.PasswordHash).ToNot(gomega.Equal("secret1"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1"))).To(gomega.Succeed())
		})

		ginkgo.It("rejects a malformed email", func() {
			err := service.Register(RegisterDTO{
				Name:     "Maria",
				Email:    "not-an-email",
				Password: "secret1",
			})

			gomega.Expect(err).To(gomega.HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(400))
		})

		ginkgo.It("rejects a password without a digit", func() {
			err := service.Register(RegisterDTO{
				Name:     "Maria",
				Email:    "maria@example.com",
				Password: "secrets",
			})

			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("at least one number"))
		})

		ginkgo.It("rejects a password shorter than six characters", func() {
			err := service.Register(RegisterDTO{
				Name:     "Maria",
				Email:    "maria@example.com",
				Password: "s1",
			})

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("reports a conflict for a duplicate email", func() {
			mockRepo.seed("taken@example.com", "secret1", "view")

			err := service.Register(RegisterDTO{
				Name:     "Maria",
				Email:    "taken@example.com",
				Password: "secret1",
			})

			gomega.Expect(err).To(gomega.Equal(internal.ErrEmailExists))
		})

		ginkgo.It("surfaces storage failures as internal errors", func() {
			mockRepo.failWith = errors.New("connection refused")

			err := service.Register(RegisterDTO{
				Name:     "Maria",
				Email:    "maria@example.com",
				Password: "secret1",
			})

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(500))
		})
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.It("issues a token whose claims carry the user id and role", func() {
			seeded := mockRepo.seed("edit@example.com", "secret1", "edit")

			resp, err := service.Authenticate(LoginDTO{Email: "edit@example.com", Password: "secret1"})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Token).ToNot(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(resp.Token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("1"))
			gomega.Expect(claims.Role).To(gomega.Equal("edit"))
			gomega.Expect(seeded.ID).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("round-trips register then login", func() {
			gomega.Expect(service.Register(RegisterDTO{
				Name:     "Maria",
				Email:    "maria@example.com",
				Password: "secret1",
			})).To(gomega.Succeed())

			resp, err := service.Authenticate(LoginDTO{Email: "maria@example.com", Password: "secret1"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(resp.Token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("1"))
			gomega.Expect(claims.Role).To(gomega.Equal("view"))
		})

		ginkgo.It("rejects a wrong password", func() {
			mockRepo.seed("edit@example.com", "secret1", "edit")

			_, err := service.Authenticate(LoginDTO{Email: "edit@example.com", Password: "wrong1"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
		})

		ginkgo.It("rejects an unknown email with the same error as a wrong password", func() {
			_, err := service.Authenticate(LoginDTO{Email: "ghost@example.com", Password: "secret1"})
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidCredentials))
		})

		ginkgo.It("issues the view role when the stored role is empty", func() {
			mockRepo.seed("legacy@example.com", "secret1", "")

			resp, err := service.Authenticate(LoginDTO{Email: "legacy@example.com", Password: "secret1"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(resp.Token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Role).To(gomega.Equal("view"))
		})

		ginkgo.It("requires email and password", func() {
			_, err := service.Authenticate(LoginDTO{Email: "", Password: "secret1"})
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(err.Error()).To(gomega.ContainSubstring("email is required"))
		})
	})

	ginkgo.Describe("token lifetime", func() {
		ginkgo.It("rejects an expired token", func() {
			expiredGen := &JWTTokenGenerator{
				Secret:   []byte("test-signing-secret-of-sufficient-len"),
				TokenTTL: -time.Minute,
			}
			token, err := expiredGen.GenerateToken(7, RoleAdmin)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(internal.ErrTokenExpired))
		})

		ginkgo.It("rejects a token signed with a different secret", func() {
			otherGen := NewJWTTokenGenerator("another-secret-entirely-goes-here-now", time.Hour)
			token, err := otherGen.GenerateToken(7, RoleAdmin)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			gomega.Expect(err).To(gomega.Equal(internal.ErrInvalidToken))
		})
	})
})
