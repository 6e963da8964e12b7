package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const detailPayload = `{"meals":[{
	"idMeal":"52940",
	"strMeal":"Brown Stew Chicken",
	"strCategory":"Chicken",
	"strInstructions":"Fry the chicken in a pot. Simmer for 30 minutes.",
	"strMealThumb":"https://example.test/brown-stew.jpg",
	"strIngredient1":"Chicken","strMeasure1":"1 whole",
	"strIngredient2":"","strMeasure2":"",
	"strIngredient3":" Tomato ","strMeasure3":"1 chopped",
	"strIngredient4":null,"strMeasure4":null,
	"strIngredient20":"Salt","strMeasure20":"pinch"
}]}`

func newCatalogServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt32(hits, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("i")))
		switch r.URL.Path {
		case "/filter.php":
			if c := r.URL.Query().Get("c"); c != "" {
				if c == "Dessert" {
					_, _ = w.Write([]byte(`{"meals":[{"strMeal":"Eton Mess","strMealThumb":"e.jpg","idMeal":"52791"}]}`))
					return
				}
				_, _ = w.Write([]byte(`{"meals":null}`))
				return
			}
			switch q {
			case "chicken":
				_, _ = w.Write([]byte(`{"meals":[
					{"idMeal":"52940","strMeal":"Brown Stew Chicken","strMealThumb":"a.jpg"},
					{"idMeal":"","strMeal":"Broken"},
					{"idMeal":"52846","strMeal":"Chicken & mushroom Hotpot","strMealThumb":"b.jpg"}]}`))
			case "garbage":
				_, _ = w.Write([]byte(`{"meals":"Invalid ingredient"}`))
			case "truncated":
				_, _ = w.Write([]byte(`{"meals":[{"idMeal":"1"`))
			case "boom":
				w.WriteHeader(http.StatusBadGateway)
			default:
				_, _ = w.Write([]byte(`{"meals":null}`))
			}
		case "/lookup.php":
			if q == "52940" {
				_, _ = w.Write([]byte(detailPayload))
				return
			}
			_, _ = w.Write([]byte(`{"meals":null}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{BaseURL: baseURL + "/", Timeout: 2 * time.Second}, zap.NewNop(), nil)
}

func TestClientLookupByIngredient(t *testing.T) {
	c := newTestClient(newCatalogServer(t, nil).URL)
	ctx := context.Background()

	meals, err := c.LookupByIngredient(ctx, "chicken")
	require.NoError(t, err)
	require.Len(t, meals, 2)
	assert.Equal(t, engine.CandidateMeal{ID: "52940", Name: "Brown Stew Chicken", Thumbnail: "a.jpg"}, meals[0])
	assert.Equal(t, "52846", meals[1].ID)

	meals, err = c.LookupByIngredient(ctx, "unobtainium")
	require.NoError(t, err)
	assert.Empty(t, meals)

	meals, err = c.LookupByIngredient(ctx, "garbage")
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Empty(t, meals)

	_, err = c.LookupByIngredient(ctx, "truncated")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = c.LookupByIngredient(ctx, "boom")
	assert.Error(t, err)
}

func TestClientLookupByCategory(t *testing.T) {
	c := newTestClient(newCatalogServer(t, nil).URL)

	meals, err := c.LookupByCategory(context.Background(), "Dessert")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, engine.CandidateMeal{ID: "52791", Name: "Eton Mess", Category: "Dessert", Thumbnail: "e.jpg"}, meals[0])

	meals, err = c.LookupByCategory(context.Background(), "Starter")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestClientLookupDetails(t *testing.T) {
	c := newTestClient(newCatalogServer(t, nil).URL)
	ctx := context.Background()

	m, err := c.LookupDetails(ctx, "52940")
	require.NoError(t, err)
	assert.Equal(t, "Chicken", m.Category)
	assert.Equal(t, []engine.CandidateIngredient{
		{Name: "Chicken", Measure: "1 whole"},
		{Name: "Tomato", Measure: "1 chopped"},
		{Name: "Salt", Measure: "pinch"},
	}, m.Ingredients)
	assert.Contains(t, m.Instructions, "Simmer")

	_, err = c.LookupDetails(ctx, "1")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.LookupByIngredient(ctx, "chicken")
	assert.Error(t, err)
}

func TestCachedCatalogFallsThroughOnCacheErrors(t *testing.T) {
	var hits int32
	inner := newTestClient(newCatalogServer(t, &hits).URL)
	cached := NewCachedCatalog(inner, testutil.UnreachableRedis(t), time.Hour, zap.NewNop(), nil)

	meals, err := cached.LookupByIngredient(context.Background(), "chicken")
	require.NoError(t, err)
	assert.Len(t, meals, 2)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCachedCatalogServesFromRedis(t *testing.T) {
	client := testutil.SetupRedis(t)

	var hits int32
	inner := newTestClient(newCatalogServer(t, &hits).URL)
	cached := NewCachedCatalog(inner, client, time.Hour, zap.NewNop(), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		meals, err := cached.LookupByIngredient(ctx, " Chicken")
		require.NoError(t, err)
		assert.Len(t, meals, 2)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	for i := 0; i < 2; i++ {
		m, err := cached.LookupDetails(ctx, "52940")
		require.NoError(t, err)
		assert.Equal(t, "Brown Stew Chicken", m.Name)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))

	_, err := cached.LookupDetails(ctx, "404")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cached.LookupDetails(ctx, "404")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(4), atomic.LoadInt32(&hits), "misses are not cached")

	ttl, err := client.TTL(ctx, "catalog:ingredient:chicken").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestCachedCatalogSkipsMalformedPayloads(t *testing.T) {
	client := testutil.SetupRedis(t)

	var hits int32
	inner := newTestClient(newCatalogServer(t, &hits).URL)
	cached := NewCachedCatalog(inner, client, time.Hour, zap.NewNop(), nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := cached.LookupByIngredient(ctx, "truncated")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits), "malformed payloads are fetched again")

	n, err := client.Exists(ctx, "catalog:ingredient:truncated").Result()
	require.NoError(t, err)
	assert.Zero(t, n)

	meals, err := cached.LookupByCategory(ctx, "Dessert")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	meals, err = cached.LookupByCategory(ctx, "dessert ")
	require.NoError(t, err)
	assert.Equal(t, "Dessert", meals[0].Category)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}
