package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

func openChat(t *testing.T, env *testEnv, caller *Caller) *model.ChatExchange {
	t.Helper()
	ctx := context.Background()
	env.be.texts["pdf-1"] = "Week 1: recursion. Week 2: sorting."
	if _, err := env.svc.Chat.Select(ctx, caller, &dto.ChatSelectRequest{PDFID: "pdf-1", CourseName: "Intro to CS"}); err != nil {
		t.Fatalf("Select error: %v", err)
	}
	ex, err := env.svc.Chat.Open(ctx, caller)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	return ex
}

func TestChatSelect(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	env.be.texts["pdf-1"] = "content"

	res, err := env.svc.Chat.Select(context.Background(), stud, &dto.ChatSelectRequest{PDFID: "pdf-1"})
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if !res.Ready || res.ContentLength != len("content") || res.PDFSize != len(samplePDF) {
		t.Errorf("response = %+v", res)
	}
}

func TestChatSelect_EmptyContent(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	env.be.texts["pdf-1"] = "   "

	_, err := env.svc.Chat.Select(context.Background(), stud, &dto.ChatSelectRequest{PDFID: "pdf-1"})
	if !errs.IsKind(err, errs.KindContent) {
		t.Fatalf("error = %v, want content error", err)
	}
	if _, err := env.svc.Chat.Open(context.Background(), stud); !errors.Is(err, ErrNoChatSelection) {
		t.Errorf("Open error = %v, want ErrNoChatSelection", err)
	}
}

func TestChatSelect_DiscardsOpenExchange(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	openChat(t, env, stud)

	env.be.texts["pdf-2"] = "other"
	if _, err := env.svc.Chat.Select(context.Background(), stud, &dto.ChatSelectRequest{PDFID: "pdf-2"}); err != nil {
		t.Fatal(err)
	}
	if _, err := env.svc.Chat.Exchange(context.Background(), stud); !errors.Is(err, ErrNoChat) {
		t.Errorf("Exchange error = %v, want ErrNoChat", err)
	}
}

func TestChatSend_Success(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	openChat(t, env, stud)
	env.be.chatReply = "Week 1 covers **recursion**."

	ex, err := env.svc.Chat.Send(context.Background(), stud, "What is in week 1?")
	if err != nil {
		t.Fatalf("Send error: %v", err)
	}
	if len(ex.Turns) != 2 || ex.Turns[0].Sender != model.SenderUser || ex.Turns[1].Sender != model.SenderBot {
		t.Fatalf("turns = %+v", ex.Turns)
	}
	if !strings.Contains(ex.Turns[1].HTML, "<strong>recursion</strong>") {
		t.Errorf("HTML = %q", ex.Turns[1].HTML)
	}
	if ex.Pending || ex.Error != "" {
		t.Errorf("pending=%v error=%q", ex.Pending, ex.Error)
	}

	call := env.be.chatCalls[0]
	if call.PDFID != "pdf-1" || call.Content != "Week 1: recursion. Week 2: sorting." {
		t.Errorf("chat call = %+v", call)
	}
}

func TestChatSend_EscapesRawHTML(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	openChat(t, env, stud)
	env.be.chatReply = "<script>alert(1)</script>"

	ex, err := env.svc.Chat.Send(context.Background(), stud, "hi")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(ex.Turns[1].HTML, "<script>") {
		t.Errorf("raw HTML rendered: %q", ex.Turns[1].HTML)
	}
}

func TestChatSend_BlankIsNoop(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	openChat(t, env, stud)

	ex, err := env.svc.Chat.Send(context.Background(), stud, "   ")
	if err != nil {
		t.Fatal(err)
	}
	if len(ex.Turns) != 0 || len(env.be.chatCalls) != 0 {
		t.Errorf("blank message produced turns=%d calls=%d", len(ex.Turns), len(env.be.chatCalls))
	}
}

func TestChatSend_NoReply(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	openChat(t, env, stud)
	env.be.chatReply = ""

	ex, err := env.svc.Chat.Send(context.Background(), stud, "hello")
	if err != nil {
		t.Fatal(err)
	}
	if got := ex.Turns[len(ex.Turns)-1].Text; got != MsgNoBotResponse {
		t.Errorf("bot text = %q, want %q", got, MsgNoBotResponse)
	}
}

func TestChatSend_ErrorsInline(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not found", errs.Service("chat_with_pdf", http.StatusNotFound, "no route"), MsgChatNotFound},
		{"network", errs.Network("chat_with_pdf", fmt.Errorf("dial tcp: refused")), MsgChatNetwork},
		{"backend message", errs.Service("chat_with_pdf", http.StatusBadRequest, "PDF content missing"), "PDF content missing"},
		{"server error", errs.Service("chat_with_pdf", http.StatusInternalServerError, ""), MsgChatUnexpected},
		{"malformed", errs.Malformed("chat_with_pdf", fmt.Errorf("bad json")), MsgChatUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			stud := env.signIn("stud", model.RoleStudent)
			openChat(t, env, stud)
			env.be.chatErr = tt.err

			ex, err := env.svc.Chat.Send(context.Background(), stud, "question")
			if err != nil {
				t.Fatalf("Send error: %v", err)
			}
			if ex.Error != tt.want {
				t.Errorf("Error = %q, want %q", ex.Error, tt.want)
			}
			if len(ex.Turns) != 1 || ex.Turns[0].Text != "question" {
				t.Errorf("user turn not kept: %+v", ex.Turns)
			}
		})
	}
}

func TestChatSend_ClosedDuringRequest(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	openChat(t, env, stud)
	env.be.chatReply = "late answer"
	env.be.chatHook = func() {
		if err := env.svc.Chat.Close(context.Background(), stud); err != nil {
			t.Errorf("Close error: %v", err)
		}
	}

	if _, err := env.svc.Chat.Send(context.Background(), stud, "question"); !errors.Is(err, ErrNoChat) {
		t.Errorf("error = %v, want ErrNoChat", err)
	}
	if _, err := env.svc.Chat.Exchange(context.Background(), stud); !errors.Is(err, ErrNoChat) {
		t.Errorf("exchange resurrected: %v", err)
	}
}

func TestChatSend_ReplacedDuringRequest(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	first := openChat(t, env, stud)
	env.be.chatReply = "answer for the old chat"
	env.be.chatHook = func() {
		if _, err := env.svc.Chat.Open(context.Background(), stud); err != nil {
			t.Errorf("reopen error: %v", err)
		}
	}

	if _, err := env.svc.Chat.Send(context.Background(), stud, "question"); !errors.Is(err, ErrNoChat) {
		t.Errorf("error = %v, want ErrNoChat", err)
	}
	ex, err := env.svc.Chat.Exchange(context.Background(), stud)
	if err != nil {
		t.Fatal(err)
	}
	if ex.ID == first.ID || len(ex.Turns) != 0 {
		t.Errorf("new exchange polluted: %+v", ex)
	}
}

func TestChatSend_Validation(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)

	if _, err := env.svc.Chat.Send(context.Background(), stud, "hello"); !errors.Is(err, ErrNoChat) {
		t.Errorf("no chat error = %v, want ErrNoChat", err)
	}

	openChat(t, env, stud)
	long := strings.Repeat("a", 201)
	if _, err := env.svc.Chat.Send(context.Background(), stud, long); !errs.IsKind(err, errs.KindValidation) {
		t.Errorf("long message error = %v, want validation", err)
	}
}

func TestChatErrorMessage_PlainError(t *testing.T) {
	if got := ChatErrorMessage(errors.New("boom")); got != MsgChatUnexpected {
		t.Errorf("got %q", got)
	}
}

func TestChatSend_CredentialsFailureLeavesNoPendingTurn(t *testing.T) {
	env := newTestEnv()
	stud := env.signIn("stud", model.RoleStudent)
	openChat(t, env, stud)
	ctx := context.Background()

	// cookies that no longer decode
	if err := env.store.Put(ctx, stud.SessionID, session.FieldBackendCookies, "not-a-cookie-list", 0); err != nil {
		t.Fatal(err)
	}

	if _, err := env.svc.Chat.Send(ctx, stud, "hello"); err == nil {
		t.Fatal("Send succeeded without credentials")
	}
	if len(env.be.chatCalls) != 0 {
		t.Errorf("chat calls = %d, want 0", len(env.be.chatCalls))
	}

	ex, err := env.svc.Chat.Exchange(ctx, stud)
	if err != nil {
		t.Fatal(err)
	}
	if ex.Pending || len(ex.Turns) != 0 {
		t.Errorf("exchange = %+v, want no pending turn", ex)
	}
}
