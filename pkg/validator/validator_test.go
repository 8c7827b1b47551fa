package validator_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgvalidator "github.com/ghuser/stocktracker/pkg/validator"
)

type sampleStruct struct {
	ItemID   string `validate:"required,uuid"`
	Name     string `validate:"required,min=1,max=10"`
	Quantity int    `validate:"gte=0"`
	Category string `validate:"omitempty,oneof=FOOD BEVERAGE"`
}

func TestValidate_valid(t *testing.T) {
	s := sampleStruct{
		ItemID:   "550e8400-e29b-41d4-a716-446655440000",
		Name:     "hello",
		Category: "FOOD",
	}
	if err := pkgvalidator.Validate(&s); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidate_missingRequired(t *testing.T) {
	s := sampleStruct{}
	if err := pkgvalidator.Validate(&s); err == nil {
		t.Fatal("expected validation error for empty struct")
	}
}

func TestFormatValidationErrors(t *testing.T) {
	validID := "550e8400-e29b-41d4-a716-446655440000"
	tests := []struct {
		name  string
		in    sampleStruct
		field string
		want  string
	}{
		{"required", sampleStruct{Name: "ok"}, "ItemID", "This field is required"},
		{"uuid", sampleStruct{ItemID: "not-a-uuid", Name: "ok"}, "ItemID", "Must be a valid UUID"},
		{"max", sampleStruct{ItemID: validID, Name: "12345678901"}, "Name", "Maximum length is 10"},
		{"gte", sampleStruct{ItemID: validID, Name: "ok", Quantity: -1}, "Quantity", "Cannot be negative"},
		{"oneof", sampleStruct{ItemID: validID, Name: "ok", Category: "TOYS"}, "Category", "Must be one of: FOOD, BEVERAGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&tt.in))
			if m[tt.field] != tt.want {
				t.Errorf("%s: got %q, want %q", tt.field, m[tt.field], tt.want)
			}
		})
	}
}

func TestFormatValidationErrors_nonValidationError(t *testing.T) {
	m := pkgvalidator.FormatValidationErrors(http.ErrNoCookie)
	if len(m) != 0 {
		t.Errorf("expected empty map for non-validation error, got %v", m)
	}
}

// --- ValidateRequest ---

type adjustReq struct {
	Delta *int   `json:"delta"  validate:"required"`
	Note  string `json:"note"   validate:"max=20"`
}

func TestValidateRequest_valid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delta":-3}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	req, ok := pkgvalidator.ValidateRequest[adjustReq](w, r)
	if !ok {
		t.Fatalf("expected ok=true, got false. Response: %s", w.Body.String())
	}
	if req.Delta == nil || *req.Delta != -3 {
		t.Errorf("unexpected Delta: %v", req.Delta)
	}
}

func TestValidateRequest_zeroPointerIsPresent(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delta":0}`))
	w := httptest.NewRecorder()

	if _, ok := pkgvalidator.ValidateRequest[adjustReq](w, r); !ok {
		t.Fatalf("explicit zero should satisfy required on a pointer: %s", w.Body.String())
	}
}

func TestValidateRequest_invalidJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{bad json"))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[adjustReq](w, r)
	if ok {
		t.Fatal("expected ok=false for malformed JSON")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid JSON") {
		t.Errorf("expected 'Invalid JSON' in body, got: %s", w.Body.String())
	}
}

func TestValidateRequest_unknownField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"delta":1,"name":"x"}`))
	w := httptest.NewRecorder()

	if _, ok := pkgvalidator.ValidateRequest[adjustReq](w, r); ok {
		t.Fatal("expected ok=false for unknown field")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestValidateRequest_missingField(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"note":"restock"}`))
	w := httptest.NewRecorder()

	_, ok := pkgvalidator.ValidateRequest[adjustReq](w, r)
	if ok {
		t.Fatal("expected ok=false for missing delta")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Validation failed") || !strings.Contains(w.Body.String(), `"delta"`) {
		t.Errorf("expected field error for delta, got: %s", w.Body.String())
	}
}

func TestValidateRequest_bodyTooLarge(t *testing.T) {
	body := `{"delta":1,"note":"` + strings.Repeat("x", 64) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.Body = http.MaxBytesReader(w, r.Body, 16)

	if _, ok := pkgvalidator.ValidateRequest[adjustReq](w, r); ok {
		t.Fatal("expected ok=false for oversized body")
	}
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestValidateRequest_emptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	w := httptest.NewRecorder()

	if _, ok := pkgvalidator.ValidateRequest[adjustReq](w, r); ok {
		t.Fatal("expected ok=false for empty body")
	}
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Request body is required") {
		t.Errorf("unexpected response %d: %s", w.Code, w.Body.String())
	}
}

func TestDecode_returnsRequestError(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"note":"restock"}`))

	_, err := pkgvalidator.Decode[adjustReq](r)
	var re *pkgvalidator.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RequestError, got %T", err)
	}
	if re.Status != http.StatusUnprocessableEntity || re.Fields["delta"] != "This field is required" {
		t.Errorf("unexpected error: %+v", re)
	}
}

type shelfReq struct {
	Aisle *string `json:"aisle" validate:"omitempty,aisle"`
}

func TestRegisterTag(t *testing.T) {
	if err := pkgvalidator.RegisterTag("aisle", "Unknown aisle", func(s string) bool { return s == "A1" || s == "B2" }); err != nil {
		t.Fatalf("register: %v", err)
	}

	good, bad := "A1", "Z9"
	if err := pkgvalidator.Validate(&shelfReq{Aisle: &good}); err != nil {
		t.Errorf("expected A1 to pass, got %v", err)
	}
	if err := pkgvalidator.Validate(&shelfReq{}); err != nil {
		t.Errorf("omitted field should pass, got %v", err)
	}
	m := pkgvalidator.FormatValidationErrors(pkgvalidator.Validate(&shelfReq{Aisle: &bad}))
	if m["aisle"] != "Unknown aisle" {
		t.Errorf("aisle: got %q", m["aisle"])
	}
}
