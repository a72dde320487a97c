package auth

import (
	"log/slog"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/edurede/school-registry/internal"
)

var _ = ginkgo.Describe("Gate", func() {
	var (
		gate     *Gate
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		tokenGen = NewJWTTokenGenerator("test-signing-secret-of-sufficient-len", time.Hour)
		gate = NewGate(tokenGen, logger)
	})

	ginkgo.It("fails with a missing-token error when the header is absent or blank", func() {
		_, err := gate.Authenticate("")
		gomega.Expect(err).To(gomega.Equal(internal.ErrMissingToken))

		_, err = gate.Authenticate("   ")
		gomega.Expect(err).To(gomega.Equal(internal.ErrMissingToken))
	})

	ginkgo.It("accepts a bare token", func() {
		token, err := tokenGen.GenerateToken(42, RoleEdit)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		ident, err := gate.Authenticate(token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ident.UserID).To(gomega.Equal(int64(42)))
		gomega.Expect(ident.Role).To(gomega.Equal(RoleEdit))
	})

	ginkgo.It("accepts a Bearer-prefixed token", func() {
		token, err := tokenGen.GenerateToken(42, RoleAdmin)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		ident, err := gate.Authenticate("Bearer " + token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(ident.UserID).To(gomega.Equal(int64(42)))
		gomega.Expect(ident.Role).To(gomega.Equal(RoleAdmin))
	})

	ginkgo.It("rejects a tampered token and returns the raw value in the diagnostic details", func() {
		_, err := gate.Authenticate("garbage.token.value")

		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidToken))
		gomega.Expect(appErr.StatusCode).To(gomega.Equal(401))

		details, ok := appErr.Details.(map[string]string)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(details["token"]).To(gomega.Equal("garbage.token.value"))
	})

	ginkgo.It("rejects an expired token as unauthorized", func() {
		expiredGen := &JWTTokenGenerator{
			Secret:   []byte("test-signing-secret-of-sufficient-len"),
			TokenTTL: -time.Minute,
		}
		token, err := expiredGen.GenerateToken(42, RoleEdit)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = gate.Authenticate(token)
		appErr, ok := internal.IsAppError(err)
		gomega.Expect(ok).To(gomega.BeTrue())
		gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeTokenExpired))
	})

	ginkgo.It("rejects a valid signature whose payload lacks the identity claim", func() {
		claims := &Claims{
			Role: "edit",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenGen.Secret)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = gate.Authenticate(token)
		gomega.Expect(err).To(gomega.Equal(internal.ErrMalformedToken))
	})

	ginkgo.It("rejects a non-numeric identity claim", func() {
		claims := &Claims{
			UserID: "not-a-number",
			Role:   "edit",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tokenGen.Secret)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = gate.Authenticate(token)
		gomega.Expect(err).To(gomega.Equal(internal.ErrMalformedToken))
	})
})
