package slider_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/features/slider"
	"github.com/dalemusser/estatehub/internal/domain/models"
	"github.com/dalemusser/estatehub/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

type env struct {
	router http.Handler
	token  string
	fx     *testutil.Fixtures
	store  *storage.Memory
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := storage.NewMemory(storage.MemoryConfig{BaseURL: "/files"})
	a := testutil.NewAuthenticator(t)
	h := slider.NewHandler(db, a, store, nil, errorsfeature.NewErrorLogger(zap.NewNop(), true), zap.NewNop())
	return env{router: slider.Routes(h), token: testutil.AdminToken(t, a), fx: testutil.NewFixtures(t, db), store: store}
}

func (e env) admin(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	return testutil.WithBearer(testutil.NewJSONRequest(t, method, target, body), e.token)
}

func list(t *testing.T, h http.Handler, req *http.Request) string {
	t.Helper()
	rec := testutil.Serve(h, req)
	testutil.AssertStatus(t, rec, http.StatusOK)
	var items []models.SliderImage
	testutil.DecodeEnvelope(t, rec, &items)
	out := make([]string, len(items))
	for i, img := range items {
		out[i] = img.Title
	}
	return strings.Join(out, ",")
}

func TestCreateAndList(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	e.fx.CreateSliderImage(ctx, "first", 0, true)
	e.fx.CreateSliderImage(ctx, "draft", 1, false)

	rec := testutil.Serve(e.router, e.admin(t, "POST", "/", map[string]any{"title": "second", "imageUrl": "/files/slider/b.jpg"}))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var img models.SliderImage
	testutil.DecodeEnvelope(t, rec, &img)
	if img.Order != 2 || !img.IsActive {
		t.Errorf("created order=%d active=%v, want 2/true", img.Order, img.IsActive)
	}

	if got := list(t, e.router, testutil.NewRequest("GET", "/")); got != "first,second" {
		t.Errorf("public list = %s, want first,second", got)
	}
	if got := list(t, e.router, e.admin(t, "GET", "/?includeInactive=true", nil)); got != "first,draft,second" {
		t.Errorf("admin list = %s, want first,draft,second", got)
	}

	rec = testutil.Serve(e.router, e.admin(t, "POST", "/", map[string]any{"title": "no image"}))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)

	rec = testutil.Serve(e.router, testutil.NewJSONRequest(t, "POST", "/", map[string]any{"imageUrl": "/x.jpg"}))
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}

func TestUpdateAndGet(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	img := e.fx.CreateSliderImage(ctx, "hero", 0, true)

	rec := testutil.Serve(e.router, e.admin(t, "PUT", "/"+img.ID.Hex(), map[string]any{"alt": "Sea view", "isActive": false}))
	testutil.AssertStatus(t, rec, http.StatusOK)

	rec = testutil.Serve(e.router, testutil.NewRequest("GET", "/"+img.ID.Hex()))
	testutil.AssertStatus(t, rec, http.StatusNotFound)

	rec = testutil.Serve(e.router, e.admin(t, "GET", "/"+img.ID.Hex(), nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var got models.SliderImage
	testutil.DecodeEnvelope(t, rec, &got)
	if got.Alt != "Sea view" || got.IsActive || got.Title != "hero" {
		t.Errorf("got %+v", got)
	}
}

func TestDelete_RemovesStoredFile(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := e.store.Put(context.Background(), "slider/abc-hero.jpg", strings.NewReader("img"), nil); err != nil {
		t.Fatalf("Put: %v", err)
	}
	rec := testutil.Serve(e.router, e.admin(t, "POST", "/", map[string]any{"title": "hero", "imageUrl": e.store.URL("slider/abc-hero.jpg")}))
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var img models.SliderImage
	testutil.DecodeEnvelope(t, rec, &img)

	rec = testutil.Serve(e.router, e.admin(t, "DELETE", "/"+img.ID.Hex(), nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if ok, _ := e.store.Exists(ctx, "slider/abc-hero.jpg"); ok {
		t.Error("stored file still exists after delete")
	}

	rec = testutil.Serve(e.router, e.admin(t, "DELETE", "/"+img.ID.Hex(), nil))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
}

func TestReorder(t *testing.T) {
	e := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	a := e.fx.CreateSliderImage(ctx, "a", 0, true)
	b := e.fx.CreateSliderImage(ctx, "b", 1, true)
	c := e.fx.CreateSliderImage(ctx, "c", 2, true)

	body := map[string]any{"imageIds": []string{b.ID.Hex(), a.ID.Hex(), c.ID.Hex()}}
	for i := 0; i < 2; i++ {
		rec := testutil.Serve(e.router, e.admin(t, "PUT", "/reorder", body))
		testutil.AssertStatus(t, rec, http.StatusOK)
		if got := list(t, e.router, testutil.NewRequest("GET", "/")); got != "b,a,c" {
			t.Fatalf("pass %d: order = %s, want b,a,c", i, got)
		}
	}

	rec := testutil.Serve(e.router, e.admin(t, "PUT", "/reorder", map[string]any{"imageIds": []string{a.ID.Hex(), "bogus"}}))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
	if got := list(t, e.router, testutil.NewRequest("GET", "/")); got != "b,a,c" {
		t.Errorf("after rejected reorder = %s, want b,a,c", got)
	}

	upper := []string{strings.ToUpper(c.ID.Hex()), strings.ToUpper(b.ID.Hex()), strings.ToUpper(a.ID.Hex())}
	rec = testutil.Serve(e.router, e.admin(t, "PUT", "/reorder", map[string]any{"imageIds": upper}))
	testutil.AssertStatus(t, rec, http.StatusOK)
	if got := list(t, e.router, testutil.NewRequest("GET", "/")); got != "c,b,a" {
		t.Errorf("after uppercase reorder = %s, want c,b,a", got)
	}
}
