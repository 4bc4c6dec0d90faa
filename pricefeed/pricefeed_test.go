package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUSDRate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simple/price" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("ids"); got != "kpg-token" {
			t.Errorf("unexpected ids %q", got)
		}
		if got := r.URL.Query().Get("vs_currencies"); got != "usd" {
			t.Errorf("unexpected vs_currencies %q", got)
		}
		w.Write([]byte(`{"kpg-token":{"usd":0.25}}`))
	}))
	defer srv.Close()

	c := New("kpg-token", WithBaseURL(srv.URL))
	rate, err := c.USDRate(context.Background())
	if err != nil {
		t.Fatalf("USDRate failed: %v", err)
	}
	if rate != 0.25 {
		t.Errorf("expected 0.25, got %v", rate)
	}
}

func TestUSDRateDegrades(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := New("kpg-token", WithBaseURL(srv.URL))
		rate, err := c.USDRate(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		if rate != 0 {
			t.Errorf("failure must yield zero rate, got %v", rate)
		}
	})

	t.Run("asset missing from response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		c := New("kpg-token", WithBaseURL(srv.URL))
		if _, err := c.USDRate(context.Background()); err == nil {
			t.Fatal("expected error for missing asset")
		}
	})

	t.Run("unreachable host", func(t *testing.T) {
		c := New("kpg-token", WithBaseURL("http://127.0.0.1:1"))
		rate, err := c.USDRate(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		if rate != 0 {
			t.Errorf("failure must yield zero rate, got %v", rate)
		}
	})
}
