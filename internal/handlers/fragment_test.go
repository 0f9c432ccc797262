package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFragmentHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		target         string
		expectedStatus int
		checkContent   []string
		emptyBody      bool
	}{
		{
			name:           "variant form with tracking option",
			method:         http.MethodGet,
			target:         "/fragments/purchase?item=ehive-one-nvme-256&qty=3",
			expectedStatus: http.StatusOK,
			checkContent: []string{
				`<form method="post" action="https://www.paypal.com/cgi-bin/webscr" target="_top">`,
				`name="hosted_button_id" value="ABC123XYZ"`,
				`name="quantity" value="3"`,
				`name="on0" value="variant"`,
				`name="os0"`,
			},
		},
		{
			name:           "quantity above range",
			method:         http.MethodGet,
			target:         "/fragments/purchase?item=ehive-one-base&qty=150",
			expectedStatus: http.StatusOK,
			checkContent:   []string{`name="quantity" value="99"`},
		},
		{
			name:           "non numeric quantity",
			method:         http.MethodGet,
			target:         "/fragments/purchase?item=ehive-one-base&qty=abc",
			expectedStatus: http.StatusOK,
			checkContent:   []string{`name="quantity" value="1"`},
		},
		{
			name:           "add-on placeholder warns",
			method:         http.MethodGet,
			target:         "/fragments/purchase?item=din-clip&qty=2",
			expectedStatus: http.StatusOK,
			checkContent:   []string{`<p class="note">PayPal Button-ID fehlt. Bitte in shop.yaml eintragen.</p>`},
		},
		{
			name:           "unknown item renders nothing",
			method:         http.MethodGet,
			target:         "/fragments/purchase?item=ehive-one&qty=1",
			expectedStatus: http.StatusOK,
			emptyBody:      true,
		},
		{
			name:           "missing item",
			method:         http.MethodGet,
			target:         "/fragments/purchase?qty=1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "method not allowed - POST",
			method:         http.MethodPost,
			target:         "/fragments/purchase?item=ehive-one-base",
			expectedStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			handler, err := NewFragmentHandler(testTemplateDir, newTestStorefront(testShop()), testLogger)
			if err != nil {
				t.Fatalf("Failed to create handler: %v", err)
			}

			// WHEN
			w := serve(handler, httptest.NewRequest(tt.method, tt.target, nil))

			// THEN
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			body := w.Body.String()
			for _, content := range tt.checkContent {
				if !strings.Contains(body, content) {
					t.Errorf("expected response to contain '%s', got %s", content, body)
				}
			}
			if tt.emptyBody && strings.TrimSpace(body) != "" {
				t.Errorf("expected empty fragment, got %q", body)
			}
			if tt.expectedStatus == http.StatusOK && strings.Contains(body, "<html") {
				t.Error("expected a fragment without layout")
			}
		})
	}
}

func TestFragmentHandler_NoCache(t *testing.T) {
	handler, err := NewFragmentHandler(testTemplateDir, newTestStorefront(testShop()), testLogger)
	if err != nil {
		t.Fatalf("Failed to create handler: %v", err)
	}

	w := serve(handler, httptest.NewRequest(http.MethodGet, "/fragments/purchase?item=ehive-one-base", nil))

	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected Cache-Control no-store, got %q", got)
	}
}

func TestNewFragmentHandler_InvalidTemplateDir(t *testing.T) {
	if _, err := NewFragmentHandler("/invalid/path", nil, testLogger); err == nil {
		t.Error("expected error but got none")
	}
}
