package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/btc-price" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("Unexpected Accept header: %s", accept)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price": 65000.7, "change24h": 1.2}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	payload, err := client.FetchPrice(context.Background())
	if err != nil {
		t.Fatalf("FetchPrice failed: %v", err)
	}

	if price, ok := payload["price"].(float64); !ok || price != 65000.7 {
		t.Errorf("Unexpected price: %v", payload["price"])
	}
	if change, ok := payload["change24h"].(float64); !ok || change != 1.2 {
		t.Errorf("Unexpected change24h: %v", payload["change24h"])
	}
}

func TestFetchSignal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/coinalyze-scalp" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"signal": "SHORT", "technicalData": {"entryPrice": 70000}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", 5*time.Second)
	payload, err := client.FetchSignal(context.Background())
	if err != nil {
		t.Fatalf("FetchSignal failed: %v", err)
	}

	if signal, ok := payload["signal"].(string); !ok || signal != "SHORT" {
		t.Errorf("Unexpected signal: %v", payload["signal"])
	}
	nested, ok := payload["technicalData"].(map[string]any)
	if !ok {
		t.Fatalf("Expected nested technicalData object, got %v", payload["technicalData"])
	}
	if entry, ok := nested["entryPrice"].(float64); !ok || entry != 70000 {
		t.Errorf("Unexpected nested entryPrice: %v", nested["entryPrice"])
	}
}

func TestFetchNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>")) //nolint:errcheck
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.FetchPrice(context.Background()); err == nil {
		t.Error("Expected error for non-JSON body, got nil")
	}
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if _, err := client.FetchSignal(context.Background()); err == nil {
		t.Error("Expected error for 500 response, got nil")
	}
}

func TestFetchNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, time.Second)
	if _, err := client.FetchPrice(context.Background()); err == nil {
		t.Error("Expected error for unreachable server, got nil")
	}
}
