package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestReturnHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		kind           ReturnKind
		method         string
		target         string
		form           url.Values
		expectedStatus int
		checkContent   []string
		absentContent  []string
	}{
		{
			name:           "success with transaction details",
			kind:           ReturnSuccess,
			method:         http.MethodGet,
			target:         "/success?tx=4XJ12345AB&st=Completed&amt=449.00&cc=EUR",
			expectedStatus: http.StatusOK,
			checkContent:   []string{"Vielen Dank für Ihre Bestellung!", "4XJ12345AB", "Completed", "449,00 €"},
		},
		{
			name:           "success without details",
			kind:           ReturnSuccess,
			method:         http.MethodGet,
			target:         "/success",
			expectedStatus: http.StatusOK,
			checkContent:   []string{"Vielen Dank"},
			absentContent:  []string{"Transaktion"},
		},
		{
			name:           "success posted by paypal",
			kind:           ReturnSuccess,
			method:         http.MethodPost,
			target:         "/success",
			form:           url.Values{"tx": {"POSTED0001"}, "amt": {"9.90"}},
			expectedStatus: http.StatusOK,
			checkContent:   []string{"POSTED0001", "9,90 €"},
		},
		{
			name:           "cancel",
			kind:           ReturnCancel,
			method:         http.MethodGet,
			target:         "/cancel",
			expectedStatus: http.StatusOK,
			checkContent:   []string{"Bestellung abgebrochen", "Warenkorb bei PayPal bleibt erhalten"},
		},
		{
			name:           "unparsable amount is shown verbatim",
			kind:           ReturnSuccess,
			method:         http.MethodGet,
			target:         "/success?tx=T1&amt=n/a",
			expectedStatus: http.StatusOK,
			checkContent:   []string{"n/a"},
		},
		{
			name:           "method not allowed - PUT",
			kind:           ReturnSuccess,
			method:         http.MethodPut,
			target:         "/success",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			shop := testShop()
			handler, err := NewReturnHandler(testTemplateDir, tt.kind, newTestChrome(shop), testLogger)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.form != nil {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}

			// WHEN
			w := serve(handler, req)

			// THEN
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			body := w.Body.String()
			for _, content := range tt.checkContent {
				if !strings.Contains(body, content) {
					t.Errorf("expected response to contain '%s'", content)
				}
			}
			for _, content := range tt.absentContent {
				if strings.Contains(body, content) {
					t.Errorf("expected response not to contain '%s'", content)
				}
			}
		})
	}
}

func TestNotFoundHandler(t *testing.T) {
	shop := testShop()
	handler, err := NewNotFoundHandler(testTemplateDir, newTestChrome(shop), testLogger)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	w := serve(handler, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Seite nicht gefunden") {
		t.Error("expected not found page")
	}
}
