package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/mailer"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/presence"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/repository"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/service"
)

// spyMailer counts sends and can be told to fail.
type spyMailer struct {
	mu   sync.Mutex
	err  error
	sent []*mailer.Message
}

func (s *spyMailer) Send(ctx context.Context, msg *mailer.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return s.err
}

func (s *spyMailer) messages() []*mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*mailer.Message(nil), s.sent...)
}

func (s *spyMailer) Verify(ctx context.Context) error { return nil }

func newTestServer(t *testing.T, m mailer.Mailer) *httptest.Server {
	t.Helper()
	svc := service.NewContactService(m, repository.NopDeliveryRepository{}, "owner@example.com")
	src := &mockSnapshotSource{snap: presence.Fallback("968070307095150602", "bagas")}
	srv := httptest.NewServer(Routes(New(nil, &mailer.Status{}), NewContactHandler(svc), NewPresenceHandler(src)))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (int, model.RelayResult) {
	t.Helper()
	resp, err := http.Post(url+"/api/contact", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	var res model.RelayResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, res
}

func TestRoutes_Contact_MissingFieldsNoSend(t *testing.T) {
	bodies := []string{
		`{"email":"a@b.com","message":"hi"}`,
		`{"name":"A","message":"hi"}`,
		`{"name":"A","email":"a@b.com"}`,
		`{"name":"","email":"a@b.com","message":"hi"}`,
		`{"name":"A","email":null,"message":"hi"}`,
		`{"name":"A","email":"a@b.com","message":false}`,
		`{}`,
	}
	for _, body := range bodies {
		spy := &spyMailer{}
		srv := newTestServer(t, spy)

		code, res := post(t, srv.URL, body)
		if code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", body, code)
		}
		if res.Success || res.Message != model.RelayMessageFieldsRequired {
			t.Errorf("%s: unexpected result %+v", body, res)
		}
		if n := len(spy.messages()); n != 0 {
			t.Errorf("%s: expected 0 sends, got %d", body, n)
		}
	}
}

func TestRoutes_Contact_Success(t *testing.T) {
	spy := &spyMailer{}
	srv := newTestServer(t, spy)

	code, res := post(t, srv.URL, `{"name":"A","email":"a@b.com","message":"hi"}`)

	if code != http.StatusOK || !res.Success {
		t.Fatalf("expected 200 success, got %d %+v", code, res)
	}
	sent := spy.messages()
	if len(sent) != 1 {
		t.Fatalf("expected exactly one send, got %d", len(sent))
	}
	msg := sent[0]
	if msg.To != "owner@example.com" {
		t.Errorf("expected To=owner@example.com, got %q", msg.To)
	}
	if msg.Subject != service.ContactSubject {
		t.Errorf("expected fixed subject, got %q", msg.Subject)
	}
	if !strings.Contains(msg.Text, "hi") {
		t.Errorf("expected body to contain hi, got %q", msg.Text)
	}
}

func TestRoutes_Contact_TransportFailure(t *testing.T) {
	spy := &spyMailer{err: errors.New("dial tcp smtp.gmail.com:587: i/o timeout")}
	srv := newTestServer(t, spy)

	code, res := post(t, srv.URL, `{"name":"A","email":"a@b.com","message":"hi"}`)

	if code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
	if res.Success {
		t.Error("expected success=false")
	}
	if strings.Contains(res.Message, "i/o timeout") || strings.Contains(res.Message, "smtp.gmail.com") {
		t.Errorf("error detail leaked: %q", res.Message)
	}
}

func TestRoutes_CORSPreflightAndLiveness(t *testing.T) {
	srv := newTestServer(t, &spyMailer{})

	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/api/contact", nil)
	req.Header.Set("Origin", "https://portfolio.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected *, got %q", got)
	}

	resp, err = http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("get /: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 on /, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("get /nope: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on unknown path, got %d", resp.StatusCode)
	}
}

func TestRoutes_Presence(t *testing.T) {
	srv := newTestServer(t, &spyMailer{})

	resp, err := http.Get(srv.URL + "/api/presence")
	if err != nil {
		t.Fatalf("get presence: %v", err)
	}
	defer resp.Body.Close()
	var body presenceBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "offline" || body.UserID != "968070307095150602" {
		t.Errorf("unexpected presence %+v", body)
	}
}
