package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	errorsfeature "github.com/dalemusser/estatehub/internal/app/features/errors"
	"github.com/dalemusser/estatehub/internal/app/system/apperr"
	"github.com/dalemusser/estatehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := errorsfeature.NewHandler()

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest("GET", "/nope", nil))
	testutil.AssertStatus(t, rec, http.StatusNotFound)
	env := testutil.DecodeEnvelope(t, rec, nil)
	if env.Success || env.Message != "Route not found: GET /nope" {
		t.Errorf("envelope = %+v", env)
	}

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest("PATCH", "/properties", nil))
	testutil.AssertStatus(t, rec, http.StatusMethodNotAllowed)
}

func TestRespond(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		dev        bool
		wantStatus int
		wantMsg    string
		wantDetail bool
		wantLogged bool
	}{
		{"no documents", mongo.ErrNoDocuments, false, 404, "Property not found", false, false},
		{"wrapped no documents", fmt.Errorf("load: %w", mongo.ErrNoDocuments), false, 404, "Property not found", false, false},
		{"validation", apperr.Invalid("title", "Title is required."), false, 400, "Title is required.", false, false},
		{"conflict", apperr.Conflict("in use"), false, 409, "in use", false, false},
		{"raw error prod", fmt.Errorf("socket closed"), false, 500, "Internal server error", false, true},
		{"raw error dev", fmt.Errorf("socket closed"), true, 500, "Internal server error", true, true},
		{"timeout", context.DeadlineExceeded, false, 500, "The request timed out. Try again.", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			l := errorsfeature.NewErrorLogger(zap.New(core), tt.dev)

			rec := httptest.NewRecorder()
			l.Respond(rec, httptest.NewRequest("GET", "/properties/x", nil), "property", tt.err)

			testutil.AssertStatus(t, rec, tt.wantStatus)
			env := testutil.DecodeEnvelope(t, rec, nil)
			if env.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", env.Message, tt.wantMsg)
			}
			if (env.Error != "") != tt.wantDetail {
				t.Errorf("error detail = %q, want present=%v", env.Error, tt.wantDetail)
			}
			errorLogs := logs.FilterLevelExact(zap.ErrorLevel).Len()
			if (errorLogs > 0) != tt.wantLogged {
				t.Errorf("error logs = %d, want logged=%v", errorLogs, tt.wantLogged)
			}
		})
	}
}
