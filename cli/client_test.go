package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOperatorCallsNeedToken(t *testing.T) {
	client := &ApiClient{httpClient: http.DefaultClient, BaseURL: "http://127.0.0.1:0"}
	if _, err := client.GetBar(); !errors.Is(err, ErrNoToken) {
		t.Errorf("expected ErrNoToken, got %v", err)
	}
}

func TestRegisterThenToggle(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/bars", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"bar":   Bar{ID: "b1", Name: "Tiki Hut"},
			"token": "tok",
		})
	})
	mux.HandleFunc("/api/v1/bar/inventory/Mint/toggle", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(Ingredient{Name: "Mint", Category: "Garnish"})
	})
	mux.HandleFunc("/api/v1/bar/inventory/Absinthe/toggle", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"ingredient not found"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &ApiClient{httpClient: srv.Client(), BaseURL: srv.URL}
	bar, err := client.RegisterBar("Tiki Hut")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if bar.Name != "Tiki Hut" || client.Token != "tok" {
		t.Errorf("unexpected registration %+v token %q", bar, client.Token)
	}

	item, err := client.Toggle("Mint")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if item.Available {
		t.Errorf("expected Mint out of stock")
	}

	if _, err := client.Toggle("Absinthe"); err == nil {
		t.Errorf("expected an error for an unknown ingredient")
	}
}

func TestParseAsk(t *testing.T) {
	req, err := parseAsk(" Gin , relaxed, date night, rooftop")
	if err != nil {
		t.Fatalf("parseAsk: %v", err)
	}
	if req.BaseSpirit != "Gin" || req.Mood != "relaxed" || req.Occasion != "date night, rooftop" {
		t.Errorf("unexpected request %+v", req)
	}
	if _, err := parseAsk("  "); err == nil {
		t.Errorf("expected an error without a spirit")
	}
}
