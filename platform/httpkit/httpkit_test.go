package httpkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"phonenumber_backend/platform/apperr"
	"phonenumber_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

type testJWTConfig struct{}

func (testJWTConfig) GetJWTAccessSecret() string { return testSecret }
func (testJWTConfig) IsAuthEnabled() bool        { return true }

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleError_MapsAppErrors(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{err: apperr.Unprocessable("invalid region").WithCode("invalid_region"), wantStatus: http.StatusUnprocessableEntity, wantCode: "invalid_region"},
		{err: fmt.Errorf("wrapped: %w", apperr.NotFound("batch not found").WithCode("batch_not_found")), wantStatus: http.StatusNotFound, wantCode: "batch_not_found"},
		{err: apperr.Unavailable("batches disabled"), wantStatus: http.StatusServiceUnavailable},
		{err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)

		if !HandleError(c, tc.err) {
			t.Fatalf("expected %v to be handled", tc.err)
		}
		if rec.Code != tc.wantStatus {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.wantStatus, rec.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Code != tc.wantCode {
			t.Fatalf("%v: expected code %q, got %q", tc.err, tc.wantCode, body.Code)
		}
	}
}

func TestHandleError_Nil(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if HandleError(c, nil) {
		t.Fatal("nil error must not be handled")
	}
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2, logger.Nop())
	engine := gin.New()
	engine.Use(limiter.RateLimit())
	engine.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		engine.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	if statuses[0] != http.StatusNoContent || statuses[1] != http.StatusNoContent {
		t.Fatalf("expected burst of 2 to pass, got %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request to be limited, got %v", statuses)
	}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuthRequired(t *testing.T) {
	userID := uuid.New()
	engine := gin.New()
	engine.GET("/me", AuthRequired(testJWTConfig{}), func(c *gin.Context) {
		id := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"user": id.UserID().String(), "admin": id.HasRole("admin")})
	})

	valid := signToken(t, jwt.MapClaims{
		"sub":   userID.String(),
		"type":  "access",
		"roles": []string{"admin"},
		"exp":   time.Now().Add(time.Minute).Unix(),
	})
	refresh := signToken(t, jwt.MapClaims{
		"sub":  userID.String(),
		"type": "refresh",
		"exp":  time.Now().Add(time.Minute).Unix(),
	})

	cases := []struct {
		header     string
		wantStatus int
	}{
		{header: "", wantStatus: http.StatusUnauthorized},
		{header: "Bearer " + refresh, wantStatus: http.StatusUnauthorized},
		{header: "Bearer not-a-token", wantStatus: http.StatusUnauthorized},
		{header: "Bearer " + valid, wantStatus: http.StatusOK},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		engine.ServeHTTP(rec, req)
		if rec.Code != tc.wantStatus {
			t.Fatalf("header %q: expected %d, got %d", tc.header, tc.wantStatus, rec.Code)
		}
		if tc.wantStatus != http.StatusOK {
			continue
		}
		var body struct {
			User  string `json:"user"`
			Admin bool   `json:"admin"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.User != userID.String() || !body.Admin {
			t.Fatalf("unexpected identity: %+v", body)
		}
	}
}

func TestGetIdentity_Anonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if GetIdentity(c).IsAuthenticated() {
		t.Fatal("expected anonymous identity")
	}
}
