package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo-service/internal/controller"
	"todo-service/internal/models"
	"todo-service/internal/routes"
	"todo-service/internal/store"
)

func newRouter() http.Handler {
	return routes.Router(controller.New(store.NewMemory()))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIndexReturnsEmpty200(t *testing.T) {
	w := do(t, newRouter(), http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("got body %q, want empty", w.Body.String())
	}
}

func TestListEmptyReturnsJSONArray(t *testing.T) {
	w := do(t, newRouter(), http.MethodGet, "/todos", "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("got body %q, want []", got)
	}
}

func TestCreateGetToggleRoundTrip(t *testing.T) {
	h := newRouter()

	w := do(t, h, http.MethodPost, "/todos", `{"id":1,"text":"buy milk","completed":false}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: got %d, want 201", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("create: got body %q, want empty", w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/todos/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: got %d, want 200", w.Code)
	}
	var got models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := models.Todo{ID: 1, Text: "buy milk", Completed: false}
	if got != want {
		t.Fatalf("get: got %+v, want %+v", got, want)
	}

	w = do(t, h, http.MethodPost, "/toggle/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: got %d, want 200", w.Code)
	}
	var res models.ToggleResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode toggle: %v", err)
	}
	if !res.Completed || res.ID != 1 {
		t.Errorf("toggle: got %+v, want id 1 completed true", res)
	}

	w = do(t, h, http.MethodGet, "/todos/1", "")
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Completed {
		t.Error("get after toggle: completed still false")
	}
}

func TestListReflectsInsertionOrder(t *testing.T) {
	h := newRouter()
	for _, body := range []string{
		`{"id":7,"text":"first"}`,
		`{"id":3,"text":"second"}`,
		`{"id":5,"text":"third"}`,
	} {
		if w := do(t, h, http.MethodPost, "/todos", body); w.Code != http.StatusCreated {
			t.Fatalf("create: got %d, want 201", w.Code)
		}
	}
	w := do(t, h, http.MethodGet, "/todos", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list: got %d, want 200", w.Code)
	}
	var todos []models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &todos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	wantIDs := []uint32{7, 3, 5}
	if len(todos) != len(wantIDs) {
		t.Fatalf("got %d todos, want %d", len(todos), len(wantIDs))
	}
	for i, id := range wantIDs {
		if todos[i].ID != id {
			t.Errorf("position %d: got id %d, want %d", i, todos[i].ID, id)
		}
	}
}

func TestUpdateReplacesTodo(t *testing.T) {
	h := newRouter()
	do(t, h, http.MethodPost, "/todos", `{"id":1,"text":"old","completed":false}`)

	w := do(t, h, http.MethodPut, "/todos", `{"id":1,"text":"new","completed":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: got %d, want 200", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("update: got body %q, want empty", w.Body.String())
	}

	w = do(t, h, http.MethodGet, "/todos/1", "")
	var got models.Todo
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := models.Todo{ID: 1, Text: "new", Completed: true}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestClientErrorsReturn400(t *testing.T) {
	h := newRouter()
	do(t, h, http.MethodPost, "/todos", `{"id":1,"text":"taken"}`)

	cases := []struct {
		name, method, path, body string
	}{
		{"get missing id", http.MethodGet, "/todos/999", ""},
		{"get bad id", http.MethodGet, "/todos/abc", ""},
		{"toggle missing id", http.MethodPost, "/toggle/999", ""},
		{"toggle bad id", http.MethodPost, "/toggle/abc", ""},
		{"update missing id", http.MethodPut, "/todos", `{"id":999,"text":"ghost"}`},
		{"insert duplicate id", http.MethodPost, "/todos", `{"id":1,"text":"imposter"}`},
		{"malformed body", http.MethodPost, "/todos", `{"id":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, tc.method, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("got %d, want 400", w.Code)
			}
		})
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	w := do(t, newRouter(), http.MethodGet, "/nope", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("got %d, want 404", w.Code)
	}
}

func TestReadyReportsStoreHealth(t *testing.T) {
	w := do(t, newRouter(), http.MethodGet, "/ready", "")
	if w.Code != http.StatusOK {
		t.Errorf("got %d, want 200", w.Code)
	}
}
