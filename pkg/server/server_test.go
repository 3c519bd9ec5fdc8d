package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spendlens/spendlens/pkg/api"
)

const sampleStatement = "Jan 5, 2024 Paid to Coffee Shop DEBIT ₹150.00\n9:15 am\n" +
	"Jan 5, 2024 Received from Employer CREDIT ₹50,000.00\n10:00 am\n"

func testServer(classification api.Classification) *Server {
	return New(Config{
		Classification: classification,
		Now:            func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) },
	}, nil)
}

func postStatement(t *testing.T, s *Server, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleStatement(t *testing.T) {
	rec := postStatement(t, testServer(nil), "/api/statement", sampleStatement)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body)
	}

	var resp struct {
		TransactionCount int    `json:"transaction_count"`
		Net              string `json:"net_total"`
		Debits           []struct {
			Retailer   string `json:"retailer"`
			TotalSpent string `json:"total_spent"`
		} `json:"retailers_debit"`
		Dates []struct {
			Date   string `json:"date"`
			Spent  string `json:"spent"`
			Earned string `json:"earned"`
			Net    string `json:"net"`
		} `json:"dates"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v\n%s", err, rec.Body)
	}

	if resp.TransactionCount != 2 {
		t.Errorf("transaction_count: got %d, want 2", resp.TransactionCount)
	}
	if len(resp.Debits) != 1 || resp.Debits[0].Retailer != "Coffee Shop" {
		t.Errorf("debits: %+v", resp.Debits)
	}
	if len(resp.Dates) != 1 || resp.Dates[0].Net != "49850.00" {
		t.Errorf("dates: %+v", resp.Dates)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Errorf("missing X-Request-ID header")
	}
}

func TestHandleStatementCategories(t *testing.T) {
	classification := api.Classification{"Coffee Shop": api.CategoryFood}
	rec := postStatement(t, testServer(classification), "/api/statement", sampleStatement)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body)
	}

	var resp struct {
		Categories []struct {
			Category string `json:"category"`
			Total    string `json:"total"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Categories) != 1 || resp.Categories[0].Category != api.CategoryFood {
		t.Errorf("categories: %+v", resp.Categories)
	}
}

func TestHandleStatementTrailingWindow(t *testing.T) {
	// Reference instant is fixed at 2024-01-10; a 3-day window drops both
	// Jan 5 transactions.
	rec := postStatement(t, testServer(nil), "/api/statement?days=3", sampleStatement)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body)
	}

	var resp struct {
		TransactionCount int `json:"transaction_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TransactionCount != 0 {
		t.Errorf("transaction_count: got %d, want 0", resp.TransactionCount)
	}

	// A window wide enough keeps them.
	rec = postStatement(t, testServer(nil), "/api/statement?days=7", sampleStatement)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TransactionCount != 2 {
		t.Errorf("transaction_count: got %d, want 2", resp.TransactionCount)
	}
}

func TestHandleStatementDefaultWindow(t *testing.T) {
	srv := New(Config{
		WindowDays: 3,
		Now:        func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) },
	}, nil)

	// Without a days parameter the configured window applies: 3 days back
	// from Jan 10 drops both Jan 5 transactions.
	rec := postStatement(t, srv, "/api/statement", sampleStatement)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body)
	}
	var resp struct {
		TransactionCount int `json:"transaction_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TransactionCount != 0 {
		t.Errorf("transaction_count: got %d, want 0", resp.TransactionCount)
	}

	// An explicit days parameter overrides the configured window.
	rec = postStatement(t, srv, "/api/statement?days=7", sampleStatement)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TransactionCount != 2 {
		t.Errorf("transaction_count: got %d, want 2", resp.TransactionCount)
	}

	// Explicitly requesting an invalid window still fails, even with a
	// default configured.
	rec = postStatement(t, srv, "/api/statement?days=0", sampleStatement)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("days=0 status: got %d, want 400", rec.Code)
	}
}

func TestHandleStatementBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"non-positive window", "/api/statement?days=-1"},
		{"zero window", "/api/statement?days=0"},
		{"non-numeric window", "/api/statement?days=week"},
		{"bad strict flag", "/api/statement?strict=maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := postStatement(t, testServer(nil), tc.target, sampleStatement)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleStatementNoMatches(t *testing.T) {
	rec := postStatement(t, testServer(nil), "/api/statement", "nothing here resembles a transaction")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body)
	}

	var resp struct {
		TransactionCount int `json:"transaction_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.TransactionCount != 0 {
		t.Errorf("transaction_count: got %d, want 0", resp.TransactionCount)
	}
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	testServer(nil).Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
}
