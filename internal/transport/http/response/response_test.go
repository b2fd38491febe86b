package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phonebook-app/accounts-service/internal/domain"
)

func TestWriteError_DomainKindsMapToStatuses(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrMissingField("email"), http.StatusBadRequest, "missing_field"},
		{domain.ErrInvalidCredentials(), http.StatusUnauthorized, "invalid_credentials"},
		{domain.ErrUserNotFound(), http.StatusNotFound, "user_not_found"},
		{domain.ErrEmailAlreadyExists(), http.StatusConflict, "email_already_exists"},
		{domain.ErrAvatarProcessing(nil), http.StatusUnprocessableEntity, "avatar_processing_failed"},
		{domain.ErrInternal(nil), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)

		WriteError(rec, req, tc.err)

		if rec.Code != tc.status {
			t.Fatalf("%v: expected status %d, got %d", tc.err, tc.status, rec.Code)
		}

		var body ErrorBody
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Error.Code != tc.code {
			t.Fatalf("expected code %q, got %q", tc.code, body.Error.Code)
		}
	}
}

func TestWriteError_PlainErrorIsOpaque500(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	WriteError(rec, req, errPlain{})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "secret detail") {
		t.Fatalf("internal detail leaked: %s", rec.Body.String())
	}
}

type errPlain struct{}

func (errPlain) Error() string { return "secret detail" }

func TestDecodeJSON_RejectsTrailingValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"a":1}{"b":2}`))

	var dst map[string]int
	err := DecodeJSON(req, &dst)
	if !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
}

func TestDecodeJSON_OK(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"a":1}`))

	var dst map[string]int
	if err := DecodeJSON(req, &dst); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if dst["a"] != 1 {
		t.Fatalf("unexpected decode result: %v", dst)
	}
}

func TestOK_WrapsInDataEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, map[string]string{"k": "v"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var env map[string]map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env["data"]["k"] != "v" {
		t.Fatalf("unexpected envelope: %v", env)
	}
}
