package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/davlatp7-commits/render-restaurant/internal/models"
	"github.com/davlatp7-commits/render-restaurant/internal/store"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.NewStore(":memory:")
	require.NoError(t, err)
	s.DB.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.InitSchema())
	return s
}

func newClientEnv(t *testing.T) (*store.Store, *sessions.CookieStore, *http.ServeMux) {
	t.Helper()

	s := newTestStore(t)
	sessionStore := sessions.NewCookieStore([]byte("test-session-key"))
	h := &ClientHandler{
		Store:        s,
		Templates:    NewTemplateCache(),
		SessionStore: sessionStore,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /add_to_cart/{dish_id}", h.AddToCart)
	mux.HandleFunc("POST /submit_order", h.SubmitOrder)
	return s, sessionStore, mux
}

func postForm(t *testing.T, mux *http.ServeMux, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSubmitOrderCreatesOrderWithItems(t *testing.T) {
	s, _, mux := newClientEnv(t)

	rec := postForm(t, mux, "/submit_order", url.Values{
		"table_id":      {"5"},
		"comment":       {"window seat"},
		"quantities[3]": {"2"},
		"quantities[7]": {"1"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/order_status/5", rec.Header().Get("Location"))

	order, err := s.GetLatestOrderForTable(5)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, models.StatusNew, order.Status)
	assert.Equal(t, "window seat", order.Comment)
	require.Len(t, order.Items, 2)

	quantities := map[int]int{}
	for _, item := range order.Items {
		quantities[item.DishID] = item.Quantity
	}
	assert.Equal(t, map[int]int{3: 2, 7: 1}, quantities)
}

func TestSubmitOrderEmptyQuantities(t *testing.T) {
	s, _, mux := newClientEnv(t)

	rec := postForm(t, mux, "/submit_order", url.Values{
		"table_id": {"5"},
	}, nil)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	latest, err := s.GetLatestOrderID()
	require.NoError(t, err)
	assert.Zero(t, latest)
}

func TestSubmitOrderAllDishesRemoved(t *testing.T) {
	s, _, mux := newClientEnv(t)

	rec := postForm(t, mux, "/submit_order", url.Values{
		"table_id":      {"5"},
		"quantities[3]": {"2"},
		"remove[]":      {"3"},
	}, nil)

	assert.Equal(t, "/", rec.Header().Get("Location"))

	latest, err := s.GetLatestOrderID()
	require.NoError(t, err)
	assert.Zero(t, latest)
}

func TestSubmitOrderMissingTableID(t *testing.T) {
	s, _, mux := newClientEnv(t)

	rec := postForm(t, mux, "/submit_order", url.Values{
		"quantities[3]": {"2"},
	}, nil)

	assert.Equal(t, "/", rec.Header().Get("Location"))

	latest, err := s.GetLatestOrderID()
	require.NoError(t, err)
	assert.Zero(t, latest)
}

func TestSubmitOrderIgnoresNonNumericQuantities(t *testing.T) {
	s, _, mux := newClientEnv(t)

	postForm(t, mux, "/submit_order", url.Values{
		"table_id":      {"2"},
		"quantities[3]": {"abc"},
		"quantities[7]": {"1"},
	}, nil)

	order, err := s.GetLatestOrderForTable(2)
	require.NoError(t, err)
	require.NotNil(t, order)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 7, order.Items[0].DishID)
}

func TestParseQuantities(t *testing.T) {
	tests := []struct {
		name string
		form url.Values
		want map[int]int
	}{
		{
			name: "plain",
			form: url.Values{"quantities[1]": {"2"}, "quantities[4]": {"1"}},
			want: map[int]int{1: 2, 4: 1},
		},
		{
			name: "non-numeric value skipped",
			form: url.Values{"quantities[1]": {"two"}, "quantities[2]": {"3"}},
			want: map[int]int{2: 3},
		},
		{
			name: "non-numeric id skipped",
			form: url.Values{"quantities[abc]": {"2"}},
			want: map[int]int{},
		},
		{
			name: "zero and negative skipped",
			form: url.Values{"quantities[1]": {"0"}, "quantities[2]": {"-4"}},
			want: map[int]int{},
		},
		{
			name: "unrelated fields ignored",
			form: url.Values{"table_id": {"5"}, "comment": {"hi"}},
			want: map[int]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQuantities(tt.form))
		})
	}
}

func TestAddToCartAccumulates(t *testing.T) {
	_, sessionStore, mux := newClientEnv(t)

	rec := postForm(t, mux, "/add_to_cart/3", url.Values{"quantity": {"2"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	// Replay the session cookie and add the same dish again.
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	rec = postForm(t, mux, "/add_to_cart/3", nil, cookies)

	// Decode the final session cookie to inspect the cart.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	session, err := sessionStore.Get(req, clientSessionName)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"3": 3}, getCart(session))
}

func TestAddToCartDefaultsToOne(t *testing.T) {
	_, sessionStore, mux := newClientEnv(t)

	rec := postForm(t, mux, "/add_to_cart/9", url.Values{"quantity": {"bogus"}}, nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	session, err := sessionStore.Get(req, clientSessionName)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"9": 1}, getCart(session))
}

func TestSubmitOrderClearsCart(t *testing.T) {
	_, sessionStore, mux := newClientEnv(t)

	rec := postForm(t, mux, "/add_to_cart/3", url.Values{"quantity": {"2"}}, nil)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	rec = postForm(t, mux, "/submit_order", url.Values{
		"table_id":      {"5"},
		"quantities[3]": {"2"},
	}, cookies)
	assert.Equal(t, "/order_status/5", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	session, err := sessionStore.Get(req, clientSessionName)
	require.NoError(t, err)
	assert.Empty(t, getCart(session))
}

func TestSubmitOrderFailureKeepsCart(t *testing.T) {
	_, sessionStore, mux := newClientEnv(t)

	rec := postForm(t, mux, "/add_to_cart/3", url.Values{"quantity": {"2"}}, nil)
	cookies := rec.Result().Cookies()

	// Missing table id: the submission is a no-op and the response sets no
	// fresh session cookie, so the cart cookie stays as it was.
	rec = postForm(t, mux, "/submit_order", url.Values{
		"quantities[3]": {"2"},
	}, cookies)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	session, err := sessionStore.Get(req, clientSessionName)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"3": 2}, getCart(session))
}
