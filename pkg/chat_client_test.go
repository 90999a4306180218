package pkg

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestChatClientSend(t *testing.T) {
	var gotReq ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ChatResponse{Output: "try clearing your browser cache"})
	}))
	defer server.Close()

	client := NewChatClient(server.URL)
	output, err := client.Send("portal keeps logging me out", "u1")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if output != "try clearing your browser cache" {
		t.Errorf("output = %q", output)
	}
	if gotReq.Message != "portal keeps logging me out" || gotReq.UserID != "u1" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestChatClientMissingOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := NewChatClient(server.URL).Send("hello", "u1")
	if !errors.Is(err, ErrNoOutput) {
		t.Fatalf("err = %v, want ErrNoOutput", err)
	}
}

func TestChatClientMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not-json`))
	}))
	defer server.Close()

	_, err := NewChatClient(server.URL).Send("hello", "u1")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestChatClientHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewChatClient(server.URL).Send("hello", "u1")
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
	// An HTTP-level failure is neither a parse failure nor a missing field.
	if errors.Is(err, ErrInvalidResponse) || errors.Is(err, ErrNoOutput) {
		t.Fatalf("err = %v, want a plain transport error", err)
	}
}

func TestChatClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewChatClient(server.URL).Send("hello", "u1")
	if err == nil {
		t.Fatal("expected an error for a refused connection")
	}
}
