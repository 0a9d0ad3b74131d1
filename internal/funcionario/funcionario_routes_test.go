package funcionario_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hr-service/internal/events"
	"hr-service/internal/funcionario"
	"hr-service/internal/middleware"
	"hr-service/internal/rbac"
	"hr-service/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const routesSecret = "routes-secret"

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.FuncionarioEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.FuncionarioEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) kinds() []events.EventKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.EventKind, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

func setupRoutes(t *testing.T) (*gin.Engine, *recordingPublisher) {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	rbacService := rbac.NewService(rbac.NewStaticRepository("ADMIN"), enforcer)
	assert.NoError(t, rbacService.LoadPolicy())

	publisher := &recordingPublisher{}
	svc := funcionario.NewService(nil, funcionario.NewMemoryRepository(), publisher)

	r := gin.New()
	r.Use(middleware.RequestID())
	funcionario.RegisterRoutes(r.Group("/api/v1"), funcionario.RouteDeps{
		Handler:     funcionario.NewHandler(svc),
		RBACService: rbacService,
		JWTSecret:   routesSecret,
	})
	return r, publisher
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": role,
	}).SignedString([]byte(routesSecret))
	assert.NoError(t, err)
	return "Bearer " + token
}

func call(r http.Handler, auth, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_FullLifecycle(t *testing.T) {
	r, publisher := setupRoutes(t)
	admin := bearer(t, "ADMIN")
	id := uuid.NewString()
	base := "/api/v1/funcionarios"

	body := `{"pessoaId":"` + id + `","admissionDate":"2023-01-01","department":"TI","role":"Developer","salary":5000.00}`

	w := call(r, admin, http.MethodPost, base, body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"active":true`)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	w = call(r, admin, http.MethodPost, base, body)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, admin, http.MethodPatch, base+"/"+id+"/desativar", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":false`)

	w = call(r, admin, http.MethodGet, base+"/"+id, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":false`)

	w = call(r, admin, http.MethodGet, base, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = call(r, admin, http.MethodDelete, base+"/"+id, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = call(r, admin, http.MethodGet, base+"/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, []events.EventKind{
		events.FuncionarioCreated,
		events.FuncionarioUpdated,
		events.FuncionarioDeleted,
	}, publisher.kinds())
}

func TestRoutes_AuthAndRBAC(t *testing.T) {
	r, _ := setupRoutes(t)
	base := "/api/v1/funcionarios"

	t.Run("no token", func(t *testing.T) {
		w := call(r, "", http.MethodGet, base, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		w := call(r, "Bearer not.a.jwt", http.MethodGet, base, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("role without grant", func(t *testing.T) {
		w := call(r, bearer(t, "USER"), http.MethodGet, base, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin with spring style prefix", func(t *testing.T) {
		w := call(r, bearer(t, "ROLE_ADMIN"), http.MethodGet, base, "")
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRoutes_UpdateFlow(t *testing.T) {
	r, publisher := setupRoutes(t)
	admin := bearer(t, "ADMIN")
	id := uuid.NewString()
	base := "/api/v1/funcionarios"

	w := call(r, admin, http.MethodPut, base+"/"+id,
		`{"pessoaId":"`+id+`","admissionDate":"2023-01-01","department":"TI","role":"Dev","salary":10}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(r, admin, http.MethodPost, base,
		`{"pessoaId":"`+id+`","admissionDate":"2023-01-01","department":"TI","role":"Dev","salary":10}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = call(r, admin, http.MethodPut, base+"/"+id,
		`{"pessoaId":"`+id+`","admissionDate":"2023-02-01","department":"RH","role":"Lead","salary":"12.50"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"department":"RH"`)
	assert.Contains(t, w.Body.String(), `"admissionDate":"2023-02-01"`)

	w = call(r, admin, http.MethodPut, base+"/"+id,
		`{"pessoaId":"`+id+`","admissionDate":"2023-02-01","department":"RH","role":"Lead","salary":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(r, admin, http.MethodGet, base+"/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, []events.EventKind{events.FuncionarioCreated, events.FuncionarioUpdated}, publisher.kinds())
}

func TestRoutes_ValidationPrecedence(t *testing.T) {
	r, publisher := setupRoutes(t)
	admin := bearer(t, "ADMIN")
	base := "/api/v1/funcionarios"
	nextYear := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")
	id := uuid.NewString()

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{
			name:      "bad pessoaId beats blank department",
			body:      `{"pessoaId":"not-a-uuid","admissionDate":"2023-01-01","department":"","role":"Dev","salary":10}`,
			wantField: "pessoaId",
		},
		{
			name:      "future admission date beats blank department",
			body:      `{"pessoaId":"` + id + `","admissionDate":"` + nextYear + `","department":"","role":"Dev","salary":10}`,
			wantField: "admissionDate",
		},
		{
			name:      "bad pessoaId beats missing salary",
			body:      `{"pessoaId":"not-a-uuid","admissionDate":"2023-01-01","department":"TI","role":"Dev"}`,
			wantField: "pessoaId",
		},
		{
			name:      "blank role beats low salary",
			body:      `{"pessoaId":"` + id + `","admissionDate":"2023-01-01","department":"TI","role":" ","salary":0}`,
			wantField: "role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(r, admin, http.MethodPost, base, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var env struct {
				Error struct {
					Code    string            `json:"code"`
					Details map[string]string `json:"details"`
				} `json:"error"`
			}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, "INVALID_INPUT", env.Error.Code)
			assert.Equal(t, tt.wantField, env.Error.Details["field"])
		})
	}

	assert.Empty(t, publisher.kinds())
}
