package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akeren/waitlist-api/internal/intake"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New("  "); !errors.Is(err, ErrMissingBaseURL) {
		t.Fatalf("New(blank) error = %v, want ErrMissingBaseURL", err)
	}

	c, err := New("http://example.test/")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c.BaseURL() != "http://example.test" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", c.BaseURL())
	}
}

func TestJoinWaitlist(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != WaitlistPath {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var req JoinRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(JoinResponse{ //nolint:errcheck
			Message: "Thank you for joining the waitlist!",
			User: &Entry{
				ID:          7,
				Name:        req.Name,
				Email:       req.Email,
				PhoneNumber: req.PhoneNumber,
				CreatedAt:   time.Now(),
			},
		})
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	resp, err := c.JoinWaitlist(context.Background(), JoinRequest{
		Name:        "Jane",
		Email:       "jane@example.com",
		PhoneNumber: "9876543210",
	})
	if err != nil {
		t.Fatalf("JoinWaitlist() error: %v", err)
	}
	if resp.User == nil || resp.User.ID != 7 {
		t.Fatalf("User = %+v, want id 7", resp.User)
	}
	if resp.User.PhoneNumber != "9876543210" {
		t.Errorf("PhoneNumber = %q, want %q", resp.User.PhoneNumber, "9876543210")
	}
}

func TestJoinWaitlist_SendsCamelCasePhone(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&raw) //nolint:errcheck
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":" ","user":{}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	if _, err := c.JoinWaitlist(context.Background(), JoinRequest{Name: "a", Email: "b", PhoneNumber: "c"}); err != nil {
		t.Fatalf("JoinWaitlist() error: %v", err)
	}
	if raw["phoneNumber"] != "c" {
		t.Errorf("body = %v, want phoneNumber key", raw)
	}
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "This email address is already on the waitlist."}) //nolint:errcheck
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.JoinWaitlist(context.Background(), JoinRequest{})
	if err == nil {
		t.Fatal("expected error for conflict")
	}
	if !IsStatus(err, http.StatusConflict) {
		t.Errorf("IsStatus(409) = false for %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "HTTP 409") {
		t.Errorf("error = %q, want it to contain 'HTTP 409'", got)
	}
}

func TestSubmitter(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantText   string
		wantReject bool
		wantErr    bool
	}{
		{name: "success", status: http.StatusCreated, body: `{"message":"welcome","user":{"id":1}}`},
		{name: "conflict", status: http.StatusConflict, body: `{"error":"This email address is already on the waitlist."}`,
			wantErr: true, wantReject: true, wantText: "This email address is already on the waitlist."},
		{name: "json without error field", status: http.StatusInternalServerError, body: `{}`,
			wantErr: true, wantReject: true, wantText: ""},
		{name: "html error page", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantErr: true},
		{name: "undecodable success", status: http.StatusCreated, body: `not json`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body)) //nolint:errcheck
			}))
			defer srv.Close()

			c, _ := New(srv.URL)
			res, err := NewSubmitter(c).Submit(context.Background(), intake.Submission{Name: "Jane"})

			if !tc.wantErr {
				if err != nil {
					t.Fatalf("Submit() error: %v", err)
				}
				if res.Message != "welcome" {
					t.Errorf("Message = %q, want %q", res.Message, "welcome")
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			var rejected *intake.SubmitError
			if errors.As(err, &rejected) != tc.wantReject {
				t.Fatalf("SubmitError = %v, want %v (err %v)", rejected != nil, tc.wantReject, err)
			}
			if tc.wantReject {
				if rejected.Text != tc.wantText {
					t.Errorf("Text = %q, want %q", rejected.Text, tc.wantText)
				}
				if rejected.StatusCode != tc.status {
					t.Errorf("StatusCode = %d, want %d", rejected.StatusCode, tc.status)
				}
			}
		})
	}
}

func TestSubmitter_DrivesController(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":" ","user":{"id":1}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	ctrl := intake.NewController(NewSubmitter(c), intake.WithManualReset())
	ctrl.SetName("Jane")
	ctrl.Advance(context.Background())
	ctrl.SetEmail("jane@example.com")
	ctrl.Advance(context.Background())
	ctrl.SetPhoneNumber("9876543210")

	if got := ctrl.Advance(context.Background()); got != intake.OutcomeJoined {
		t.Fatalf("Advance() = %v, want joined", got)
	}
	if got := ctrl.State().Message.Text; got != intake.MsgJoinedFallback {
		t.Errorf("Message = %q, want fallback text for blank server message", got)
	}
}

func TestSubmitter_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New(url, WithTimeout(time.Second))
	_, err := NewSubmitter(c).Submit(context.Background(), intake.Submission{})
	if err == nil {
		t.Fatal("expected transport error")
	}
	var rejected *intake.SubmitError
	if errors.As(err, &rejected) {
		t.Errorf("transport failure mapped to SubmitError: %v", err)
	}
}
