package batches

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"phonenumber_backend/internal/events"
	apphttp "phonenumber_backend/internal/http"
	"phonenumber_backend/internal/http/router"
	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/httpkit"
	"phonenumber_backend/platform/logger"
	"phonenumber_backend/platform/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const testSecret = "batch-test-secret"

type nopEnqueuer struct{}

func (nopEnqueuer) EnqueueBatch(context.Context, uuid.UUID) error { return nil }

func testConfig(secret string) *config.Config {
	return &config.Config{
		CORSAllowAll:    true,
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
		JWTAccessSecret: secret,
		RedisURL:        "redis://unused",
		BatchResultTTL:  time.Hour,
		BatchMaxNumbers: 10,
	}
}

func newEngine(cfg *config.Config, module *Module) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return router.New(&apphttp.App{
		Config:  cfg,
		Logger:  logger.Nop(),
		Modules: []apphttp.Module{module},
	})
}

func newEnabledModule(t *testing.T, cfg *config.Config) *Module {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logger.Nop()
	return NewModule(client, nopEnqueuer{}, events.NewInMemoryBus(log), cfg, validator.New(), log)
}

func accessToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  userID.String(),
		"type": "access",
		"exp":  time.Now().Add(time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func do(engine *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestDisabledModuleAnswers503(t *testing.T) {
	engine := newEngine(testConfig(""), NewDisabledModule(validator.New()))

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/batches"},
		{http.MethodGet, "/api/v1/batches"},
		{http.MethodGet, "/api/v1/batches/" + uuid.NewString()},
	} {
		rec := do(engine, tc.method, tc.path, "", gin.H{"numbers": []string{"+41446681800"}})
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s %s: expected 503, got %d", tc.method, tc.path, rec.Code)
		}
		var body httpkit.ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Code != "batches_unavailable" {
			t.Fatalf("expected batches_unavailable, got %q", body.Code)
		}
	}
}

func TestSubmitRequiresTokenWhenAuthEnabled(t *testing.T) {
	cfg := testConfig(testSecret)
	engine := newEngine(cfg, newEnabledModule(t, cfg))

	rec := do(engine, http.MethodPost, "/api/v1/batches", "", gin.H{"numbers": []string{"+41446681800"}})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSubmitAndFetch(t *testing.T) {
	cfg := testConfig(testSecret)
	module := newEnabledModule(t, cfg)
	engine := newEngine(cfg, module)
	userID := uuid.New()
	token := accessToken(t, userID)

	rec := do(engine, http.MethodPost, "/api/v1/batches", token, gin.H{
		"numbers": []string{"+41 44 668 1800", "nonsense"},
		"format":  "NATIONAL",
	})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var submitted struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if err := module.Service().Process(context.Background(), uuid.MustParse(submitted.ID)); err != nil {
		t.Fatalf("process: %v", err)
	}

	rec = do(engine, http.MethodGet, "/api/v1/batches/"+submitted.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var batch struct {
		Status      string `json:"status"`
		Valid       int    `json:"valid"`
		Failed      int    `json:"failed"`
		SubmittedBy string `json:"submittedBy"`
		Results     []struct {
			Formatted string `json:"formatted"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &batch); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if batch.Status != "completed" || batch.Valid != 1 || batch.Failed != 1 {
		t.Fatalf("unexpected batch: %+v", batch)
	}
	if batch.SubmittedBy != userID.String() {
		t.Fatalf("expected submitter %s, got %q", userID, batch.SubmittedBy)
	}
	if batch.Results[0].Formatted != "044 668 18 00" {
		t.Fatalf("unexpected national rendering: %q", batch.Results[0].Formatted)
	}
}

func TestSubmitValidation(t *testing.T) {
	cfg := testConfig("")
	engine := newEngine(cfg, newEnabledModule(t, cfg))

	cases := []gin.H{
		{"numbers": []string{}},
		{"numbers": []string{"+41446681800"}, "region": "XX"},
		{"numbers": []string{"+41446681800"}, "format": "e164"},
	}
	for _, body := range cases {
		rec := do(engine, http.MethodPost, "/api/v1/batches", "", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", body, rec.Code)
		}
	}

	rec := do(engine, http.MethodGet, "/api/v1/batches/not-a-uuid", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
	rec = do(engine, http.MethodGet, "/api/v1/batches/"+uuid.NewString(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", rec.Code)
	}
}
