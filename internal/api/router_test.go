package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	recipeService "recipe-viewer/internal/core/recipe"
	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type fakeCatalog struct {
	summaries []recipeService.Summary
	expanded  []recipeService.Summary
	details   map[string]*recipeService.Detail
	err       error
}

func (f *fakeCatalog) List(context.Context) ([]recipeService.Summary, error) {
	return f.summaries, f.err
}

func (f *fakeCatalog) Overview(context.Context) ([]recipeService.Summary, error) {
	return f.expanded, f.err
}

func (f *fakeCatalog) Detail(_ context.Context, id string) (*recipeService.Detail, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, common.ErrRecipeNotFound.Wrap(errors.New(id))
	}
	return d, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:         config.AppConfig{Version: "test", Debug: false},
		Server:      config.ServerConfig{RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 16},
		Source:      config.SourceConfig{BaseURL: config.DefaultSourceURL, Workers: 1},
		RateLimit:   config.RateLimitConfig{Enabled: false},
		DedupWindow: time.Second,
	}
}

type RouterSuite struct {
	suite.Suite
	catalog *fakeCatalog
	router  *gin.Engine
}

func (s *RouterSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	name := "Harina"
	s.catalog = &fakeCatalog{
		summaries: []recipeService.Summary{{ID: "1", Name: "Pan", IngredientCount: 2, DominantIngredient: &name}},
		expanded:  []recipeService.Summary{{ID: "1", Name: "Pan", IngredientCount: 3, DominantIngredient: &name}},
		details: map[string]*recipeService.Detail{
			"1": {ID: "1", Name: "Pan", DominantIngredient: &name, Ingredients: []recipeService.IngredientView{
				{Name: "Harina", Quantity: "500", Unit: "g", Display: "500 g", Compact: "500g", Value: 500},
			}},
		},
	}
	s.router = NewRouter(testConfig(), s.catalog, nil)
}

func (s *RouterSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *RouterSuite) TestListRecipes() {
	rec := s.do(http.MethodGet, "/api/v1/recipes", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `[{"id":"1","name":"Pan","ingredient_count":2,"dominant_ingredient":"Harina"}]`, rec.Body.String())
	assert.NotEmpty(s.T(), rec.Header().Get("X-Request-ID"))
}

func (s *RouterSuite) TestListRecipesExpanded() {
	rec := s.do(http.MethodGet, "/api/v1/recipes?expand=true", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), `"ingredient_count":3`)
}

func (s *RouterSuite) TestRecipeDetail() {
	rec := s.do(http.MethodGet, "/api/v1/recipes/1", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)

	var detail recipeService.Detail
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(s.T(), "500 g", detail.Ingredients[0].Display)
	assert.Equal(s.T(), "Harina", *detail.DominantIngredient)
}

func (s *RouterSuite) TestRecipeDetailNotFound() {
	rec := s.do(http.MethodGet, "/api/v1/recipes/99", "")
	require.Equal(s.T(), http.StatusNotFound, rec.Code)

	var resp common.ErrorResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(s.T(), common.ErrCodeRecipeNotFound, resp.Code)
	assert.Empty(s.T(), resp.Details, "details are hidden outside debug mode")
}

func (s *RouterSuite) TestUpstreamFailure() {
	s.catalog.err = common.ErrUpstreamUnavailable.Wrap(errors.New("down"))
	rec := s.do(http.MethodGet, "/api/v1/recipes", "")
	assert.Equal(s.T(), http.StatusServiceUnavailable, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), common.ErrCodeUpstreamUnavailable)
}

func (s *RouterSuite) TestParseQuantities() {
	rec := s.do(http.MethodPost, "/api/v1/quantity/parse", `{"quantities": ["1 1/2", "1,5", "500g", "a gusto", "1/0", null, 2.5]}`)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `[
		{"raw":"1 1/2","value":1.5},
		{"raw":"1,5","value":1.5},
		{"raw":"500g","value":500},
		{"raw":"a gusto","value":0},
		{"raw":"1/0","value":1},
		{"raw":"","value":0},
		{"raw":"2.5","value":2.5}
	]`, rec.Body.String())
}

func (s *RouterSuite) TestFormatQuantities() {
	rec := s.do(http.MethodPost, "/api/v1/quantity/format", `{"items": [{"quantity": "100", "unit": "ml"}, {"quantity": 500, "unit": null}, {}]}`)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `[
		{"display":"100 ml","compact":"100ml","value":100},
		{"display":"500","compact":"500","value":500},
		{"display":"","compact":"","value":0}
	]`, rec.Body.String())
}

func (s *RouterSuite) TestDominant() {
	rec := s.do(http.MethodPost, "/api/v1/ingredients/dominant", `{"ingredients": [{"nombre": "A", "cantidad": "5"}, {"name": "B", "quantity": 5}]}`)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"dominant":"A"}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/ingredients/dominant", `{"ingredients": []}`)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.JSONEq(s.T(), `{"dominant":null}`, rec.Body.String())
}

func (s *RouterSuite) TestInvalidBody() {
	rec := s.do(http.MethodPost, "/api/v1/quantity/parse", `{"quantities": `)
	assert.Equal(s.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), common.ErrCodeInvalidRequest)
}

func (s *RouterSuite) TestBodyTooLarge() {
	body := `{"quantities": ["` + strings.Repeat("1", 1<<17) + `"]}`
	rec := s.do(http.MethodPost, "/api/v1/quantity/parse", body)
	assert.Equal(s.T(), http.StatusRequestEntityTooLarge, rec.Code)
}

func (s *RouterSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), `"version":"test"`)

	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/live", "").Code)
	assert.Equal(s.T(), http.StatusOK, s.do(http.MethodGet, "/ready", "").Code)
}

func (s *RouterSuite) TestMetrics() {
	s.do(http.MethodGet, "/api/v1/recipes", "")
	rec := s.do(http.MethodGet, "/metrics", "")
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "recipe_http_requests_total")
}

func (s *RouterSuite) TestNoRoute() {
	rec := s.do(http.MethodGet, "/nope", "")
	assert.Equal(s.T(), http.StatusNotFound, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), common.ErrCodeNotFound)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, Requests: 2, Window: time.Hour}
	router := NewRouter(cfg, &fakeCatalog{}, nil)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestIdenticalPostsReplayed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(testConfig(), &fakeCatalog{}, nil)

	send := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	const dominant = `{"ingredients": [{"nombre": "Harina", "cantidad": "500"}, {"nombre": "Sal", "cantidad": "5"}]}`
	first := send("/api/v1/ingredients/dominant", dominant)
	second := send("/api/v1/ingredients/dominant", dominant)

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, `{"dominant":"Harina"}`, first.Body.String())
	assert.Equal(t, first.Body.String(), second.Body.String())

	const parse = `{"quantities": ["1 1/2"]}`
	for i := 0; i < 3; i++ {
		rec := send("/api/v1/quantity/parse", parse)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"raw":"1 1/2","value":1.5}]`, rec.Body.String())
	}
}

type blockingCatalog struct{ fakeCatalog }

func (b *blockingCatalog) List(ctx context.Context) ([]recipeService.Summary, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRequestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.Server.RequestTimeout = 20 * time.Millisecond
	router := NewRouter(cfg, &blockingCatalog{}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Contains(t, rec.Body.String(), common.ErrCodeGatewayTimeout)
}
