package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
	"github.com/aakash-73/Se2-Project-v1/pkg/logger"
	"github.com/aakash-73/Se2-Project-v1/pkg/metrics"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&config.BackendConfig{
		BaseURL:     srv.URL,
		Timeout:     5 * time.Second,
		ChatTimeout: 5 * time.Second,
	}, metrics.New(), zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_CapturesIdentityAndCookies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "prof1" || body["password"] != "Secret!23" {
			t.Errorf("unexpected login body %v", body)
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "backend-sid"})
		writeJSON(w, http.StatusOK, map[string]string{
			"message":   "Login successful",
			"username":  "prof1",
			"user_type": "professor",
		})
	})

	res, err := c.Login(context.Background(), "prof1", "Secret!23")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Message != "Login successful" || res.UserType != "professor" || res.Username != "prof1" {
		t.Errorf("unexpected result %+v", res)
	}
	if len(res.Cookies) != 1 || res.Cookies[0].Value != "backend-sid" {
		t.Errorf("expected backend cookie to be captured, got %+v", res.Cookies)
	}
}

func TestDo_ServiceErrorCarriesBackendMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	})

	_, err := c.Login(context.Background(), "x", "y")
	e, ok := errs.As(err)
	if !ok {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if e.Kind != errs.KindService || e.Status != http.StatusUnauthorized || e.Message != "Invalid credentials" {
		t.Errorf("unexpected error %+v", e)
	}
}

func TestDo_NotFoundIsRouteError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.ChatWithPDF(context.Background(), nil, "hi", "p1", "text")
	e, ok := errs.As(err)
	if !ok || !e.RouteNotFound() {
		t.Errorf("expected route-not-found service error, got %v", err)
	}
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(&config.BackendConfig{BaseURL: url, Timeout: time.Second}, nil, zap.NewNop())
	_, err := c.ListAll(context.Background(), nil)
	if !errs.IsKind(err, errs.KindNetwork) {
		t.Errorf("expected network error, got %v", err)
	}
}

func TestDo_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "<html>not json</html>")
	})

	_, err := c.ListAll(context.Background(), nil)
	if !errs.IsKind(err, errs.KindNetwork) {
		t.Errorf("expected malformed response to classify as network, got %v", err)
	}
}

func TestRegister_PendingStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusAccepted, map[string]string{"message": "Awaiting approval"})
	})

	res, err := c.Register(context.Background(), &RegisterPayload{Email: "a@b.co"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if res.Status != http.StatusAccepted || res.Message != "Awaiting approval" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestListOwn_SendsUsernameAndCookies(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/syllabi" || r.URL.Query().Get("username") != "prof1" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		ck, err := r.Cookie("session")
		if err != nil || ck.Value != "backend-sid" {
			t.Errorf("expected backend cookie on credentialed call")
		}
		writeJSON(w, http.StatusOK, []model.SyllabusRecord{{CourseID: "CS101", CourseName: "Intro", SyllabusPDF: "p1"}})
	})

	out, err := c.ListOwn(context.Background(), Credentials{{Name: "session", Value: "backend-sid"}}, "prof1")
	if err != nil {
		t.Fatalf("ListOwn failed: %v", err)
	}
	if len(out) != 1 || out[0].RecordID() != "p1" {
		t.Errorf("unexpected records %+v", out)
	}
}

func TestAdd_MultipartFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		for _, k := range []string{"course_id", "course_name", "department_id", "department_name", "syllabus_description"} {
			if r.FormValue(k) == "" {
				t.Errorf("missing field %s", k)
			}
		}
		f, hdr, err := r.FormFile("syllabus_pdf")
		if err != nil {
			t.Fatalf("missing syllabus_pdf part: %v", err)
		}
		defer f.Close()
		if hdr.Filename != "cs101.pdf" || hdr.Header.Get("Content-Type") != "application/pdf" {
			t.Errorf("unexpected file header %+v", hdr.Header)
		}
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Syllabus uploaded"})
	})

	msg, err := c.Add(context.Background(), nil, model.SyllabusMetadata{
		CourseID:            "CS101",
		CourseName:          "Intro",
		DepartmentID:        "CS",
		DepartmentName:      "Computer Science",
		SyllabusDescription: "Fall",
	}, &model.PDFFile{Name: "cs101.pdf", Data: []byte("%PDF-1.4")})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if msg != "Syllabus uploaded" {
		t.Errorf("expected backend message, got %q", msg)
	}
}

func TestChatWithPDF_Payload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["message"] != "what is the grading?" || body["pdfId"] != "p1" || body["pdfContent"] != "grading: 50% exams" {
			t.Errorf("unexpected chat payload %v", body)
		}
		writeJSON(w, http.StatusOK, map[string]string{"response": "Exams are **50%**."})
	})

	reply, err := c.ChatWithPDF(context.Background(), nil, "what is the grading?", "p1", "grading: 50% exams")
	if err != nil {
		t.Fatalf("ChatWithPDF failed: %v", err)
	}
	if reply != "Exams are **50%**." {
		t.Errorf("unexpected reply %q", reply)
	}
}

func TestPDF_UsesDispositionFilename(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `inline; filename="cs101.pdf"`)
		_, _ = io.WriteString(w, "%PDF-1.4 body")
	})

	f, err := c.PDF(context.Background(), nil, "p1")
	if err != nil {
		t.Fatalf("PDF failed: %v", err)
	}
	if f.Name != "cs101.pdf" || string(f.Data) != "%PDF-1.4 body" {
		t.Errorf("unexpected file %+v", f)
	}
}

func TestDecideRegistration_Path(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/registration_requests/r1/approve" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Approved"})
	})

	msg, err := c.DecideRegistration(context.Background(), nil, "r1", true)
	if err != nil || msg != "Approved" {
		t.Errorf("unexpected result %q, %v", msg, err)
	}
}

func TestDo_ForwardsRequestID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Request-ID"); got != "rid-42" {
			t.Errorf("X-Request-ID = %q", got)
		}
		writeJSON(w, http.StatusOK, []model.SyllabusRecord{})
	})

	ctx := logger.WithRequestID(context.Background(), "rid-42")
	if _, err := c.ListAll(ctx, nil); err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
}

func TestPDF_OversizedBodyIsAnError(t *testing.T) {
	payload := "%PDF-1.4 0123456789abcdef"
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, payload)
	})
	c.maxBody = 16

	f, err := c.PDF(context.Background(), nil, "pdf-1")
	if !errors.Is(err, ErrResponseTooLarge) {
		t.Fatalf("error = %v, want ErrResponseTooLarge", err)
	}
	if f != nil {
		t.Errorf("file = %+v, want nil", f)
	}

	c.maxBody = int64(len(payload))
	f, err = c.PDF(context.Background(), nil, "pdf-1")
	if err != nil {
		t.Fatalf("body at the limit: %v", err)
	}
	if string(f.Data) != payload {
		t.Errorf("data = %q", f.Data)
	}
}
