package auth_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/edurede/school-registry/internal/auth"
	authPostgres "github.com/edurede/school-registry/internal/auth/postgres"
	userDatamodel "github.com/edurede/school-registry/internal/core/datamodel/user"
)

var _ = ginkgo.Describe("Auth HTTP endpoints", func() {
	var (
		handler  *auth.Handler
		tokenGen *auth.JWTTokenGenerator
	)

	postJSON := func(h http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)
		return rec
	}

	ginkgo.BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(db.AutoMigrate(&userDatamodel.User{})).To(gomega.Succeed())

		repo := authPostgres.NewRepository(db)
		tokenGen = auth.NewJWTTokenGenerator("test-signing-secret-of-sufficient-len", time.Hour)
		service := auth.NewService(repo, tokenGen, 4, lg)
		gate := auth.NewGate(tokenGen, lg)
		handler = auth.NewHandler(service, gate)
	})

	ginkgo.Describe("POST /register", func() {
		payload := map[string]string{
			"user":     "Maria",
			"email":    "maria@gmail.com",
			"password": "Secret1",
		}

		ginkgo.It("registers a new user and answers 201", func() {
			rec := postJSON(handler.Register, payload)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))

			var body map[string]string
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body["message"]).To(gomega.Equal("user registered successfully"))
		})

		ginkgo.It("answers 409 when the email is already registered", func() {
			gomega.Expect(postJSON(handler.Register, payload).Code).To(gomega.Equal(http.StatusCreated))

			rec := postJSON(handler.Register, payload)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusConflict))
		})

		ginkgo.It("answers 400 for a malformed email", func() {
			rec := postJSON(handler.Register, map[string]string{
				"user":     "Maria",
				"email":    "not-an-email",
				"password": "Secret1",
			})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("answers 400 for an unparsable body", func() {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("POST /login", func() {
		ginkgo.BeforeEach(func() {
			rec := postJSON(handler.Register, map[string]string{
				"user":     "Maria",
				"email":    "maria@gmail.com",
				"password": "Secret1",
			})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
		})

		ginkgo.It("answers 200 with a usable token", func() {
			rec := postJSON(handler.Login, map[string]string{
				"email":    "maria@gmail.com",
				"password": "Secret1",
			})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var body auth.TokenResponse
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body.Token).ToNot(gomega.BeEmpty())

			claims, err := tokenGen.ValidateToken(body.Token)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.Role).To(gomega.Equal("view"))
		})

		ginkgo.It("answers 401 for a wrong password", func() {
			rec := postJSON(handler.Login, map[string]string{
				"email":    "maria@gmail.com",
				"password": "Wrong12",
			})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("answers 401 for an unknown email", func() {
			rec := postJSON(handler.Login, map[string]string{
				"email":    "ghost@gmail.com",
				"password": "Secret1",
			})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var protected http.Handler

		ginkgo.BeforeEach(func() {
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ident, ok := auth.IdentityFromContext(r.Context())
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(ident.UserID).To(gomega.Equal(int64(1)))
				w.Header().Set("X-User-ID", "seen")
				w.WriteHeader(http.StatusOK)
			}))
		})

		ginkgo.It("rejects a request without a token", func() {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("passes a request carrying a valid bearer token", func() {
			token, err := tokenGen.GenerateToken(1, auth.RoleAdmin)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Header().Get("X-User-ID")).To(gomega.Equal("seen"))
		})
	})
})
