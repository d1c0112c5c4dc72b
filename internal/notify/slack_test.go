package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func TestSlack_OK(t *testing.T) {
	var got string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		got = payload["text"]
		w.WriteHeader(200)
	}))
	defer ts.Close()

	s := NewSlack(ts.URL)
	if s == nil {
		t.Fatal("expected slack client")
	}
	err := s.Send(context.Background(), "Keyword hit", "layoffs on https://example.com")
	if err != nil {
		t.Fatalf("send err: %v", err)
	}
	if !strings.HasPrefix(got, "*Keyword hit*") {
		t.Fatalf("payload not as expected: %q", got)
	}
}

func TestSlack_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer ts.Close()

	s := NewSlack(ts.URL)
	err := s.Send(context.Background(), "X", "Y")
	if err == nil {
		t.Fatalf("expected error on non-2xx")
	}
}

func TestNewSlack_EmptyWebhookDisabled(t *testing.T) {
	if s := NewSlack(""); s != nil {
		t.Fatalf("empty webhook should disable slack")
	}
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) Send(ctx context.Context, title, text string) error {
	f.calls++
	return f.err
}

func TestMulti_SendsToAllAndAggregatesErrors(t *testing.T) {
	ok := &fakeNotifier{}
	bad1 := &fakeNotifier{err: errors.New("one")}
	bad2 := &fakeNotifier{err: errors.New("two")}

	err := Multi{ok, nil, bad1, bad2}.Send(context.Background(), "t", "x")
	if ok.calls != 1 || bad1.calls != 1 || bad2.calls != 1 {
		t.Fatalf("not all notifiers called: %d %d %d", ok.calls, bad1.calls, bad2.calls)
	}
	if len(multierr.Errors(err)) != 2 {
		t.Fatalf("want both failures reported, got %v", err)
	}
}
