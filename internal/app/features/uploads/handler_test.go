package uploads_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/features/uploads"
	"github.com/dalemusser/estatehub/internal/testutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.uber.org/zap"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

type env struct {
	router http.Handler
	token  string
	store  *storage.Memory
}

func setup(t *testing.T, maxBytes int64) env {
	t.Helper()
	store := storage.NewMemory(storage.MemoryConfig{BaseURL: "/files"})
	a := testutil.NewAuthenticator(t)
	h := uploads.NewHandler(store, maxBytes, a, nil, errorsfeature.NewErrorLogger(zap.NewNop(), true), zap.NewNop())
	return env{router: uploads.Routes(h), token: testutil.AdminToken(t, a), store: store}
}

func multipartRequest(t *testing.T, target, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest("POST", target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func (e env) upload(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()
	return testutil.WithBearer(multipartRequest(t, target, "image", filename, content), e.token)
}

func TestUpload_StoresImage(t *testing.T) {
	e := setup(t, 0)

	for _, tt := range []struct {
		target, folder string
	}{
		{"/image", "images"},
		{"/slider", "slider"},
	} {
		t.Run(tt.folder, func(t *testing.T) {
			req := e.upload(t, tt.target, "My Villa (1).png", pngBytes)
			rec := testutil.Serve(e.router, req)
			testutil.AssertStatus(t, rec, http.StatusCreated)

			var res uploads.Result
			testutil.DecodeEnvelope(t, rec, &res)
			if res.ContentType != "image/png" || res.Size != int64(len(pngBytes)) {
				t.Errorf("result = %+v", res)
			}
			if !strings.HasSuffix(res.Filename, "-My_Villa__1_.png") || len(res.Filename) != 9+len("My_Villa__1_.png") {
				t.Errorf("Filename = %q", res.Filename)
			}
			if res.URL != "/files/"+tt.folder+"/"+res.Filename {
				t.Errorf("URL = %q", res.URL)
			}
			ctx, cancel := testutil.TestContext()
			defer cancel()
			obj, info, err := e.store.GetWithInfo(ctx, tt.folder+"/"+res.Filename)
			if err != nil {
				t.Fatalf("GetWithInfo: %v", err)
			}
			defer obj.Close()
			got, _ := io.ReadAll(obj)
			if !bytes.Equal(got, pngBytes) {
				t.Error("stored file mismatch")
			}
			if info.ContentType != "image/png" {
				t.Errorf("stored ContentType = %q", info.ContentType)
			}
		})
	}
}

func TestUpload_Rejections(t *testing.T) {
	e := setup(t, 1024)

	req := e.upload(t, "/image", "notes.txt", []byte("just some text, not an image"))
	testutil.AssertStatus(t, testutil.Serve(e.router, req), http.StatusBadRequest)

	req = testutil.WithBearer(multipartRequest(t, "/image", "file", "a.png", pngBytes), e.token)
	testutil.AssertStatus(t, testutil.Serve(e.router, req), http.StatusBadRequest)

	big := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{1}, 2048)...)
	req = e.upload(t, "/image", "big.png", big)
	testutil.AssertStatus(t, testutil.Serve(e.router, req), http.StatusRequestEntityTooLarge)

	huge := append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{1}, 200<<10)...)
	req = e.upload(t, "/image", "huge.png", huge)
	testutil.AssertStatus(t, testutil.Serve(e.router, req), http.StatusRequestEntityTooLarge)

	req = multipartRequest(t, "/image", "image", "a.png", pngBytes)
	testutil.AssertStatus(t, testutil.Serve(e.router, req), http.StatusUnauthorized)
}

func TestDelete(t *testing.T) {
	e := setup(t, 0)

	req := e.upload(t, "/slider", "hero.png", pngBytes)
	rec := testutil.Serve(e.router, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)
	var res uploads.Result
	testutil.DecodeEnvelope(t, rec, &res)

	del := func(name string) int {
		return testutil.Serve(e.router, testutil.WithBearer(testutil.NewRequest("DELETE", "/"+name), e.token)).Code
	}
	if code := del(res.Filename); code != http.StatusOK {
		t.Fatalf("delete = %d, want 200", code)
	}
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if ok, _ := e.store.Exists(ctx, "slider/"+res.Filename); ok {
		t.Error("file still exists after delete")
	}
	if n := e.store.Count(); n != 0 {
		t.Errorf("store holds %d objects after delete, want 0", n)
	}
	if code := del(res.Filename); code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", code)
	}
	if code := del("..%2Fsecret"); code != http.StatusBadRequest {
		t.Errorf("traversal delete = %d, want 400", code)
	}
}
