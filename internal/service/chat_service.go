package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aakash-73/Se2-Project-v1/config"
	"github.com/aakash-73/Se2-Project-v1/internal/backend"
	"github.com/aakash-73/Se2-Project-v1/internal/dto"
	"github.com/aakash-73/Se2-Project-v1/internal/model"
	"github.com/aakash-73/Se2-Project-v1/internal/session"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

const (
	MsgNoBotResponse  = "No response from the bot."
	MsgChatNotFound   = "Endpoint not found (404). Please check the backend route."
	MsgChatNetwork    = "Network error. Please check your internet connection."
	MsgChatUnexpected = "An unexpected error occurred."
	MsgNoPDFContent   = "No text could be extracted from the selected PDF."
	msgChatLoadFailed = "Failed to load PDF"
	msgMessageTooLong = "Message must be at most %d characters."
)

// raw HTML in bot replies is escaped, WithUnsafe is not set
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// ChatService chat-with-PDF workflow
type ChatService interface {
	Courses(ctx context.Context, caller *Caller) (*dto.CoursesResponse, error)
	CourseSyllabi(ctx context.Context, caller *Caller, courseName string) (*dto.CourseSyllabiResponse, error)
	Select(ctx context.Context, caller *Caller, req *dto.ChatSelectRequest) (*dto.ChatSelectResponse, error)
	Open(ctx context.Context, caller *Caller) (*model.ChatExchange, error)
	Send(ctx context.Context, caller *Caller, message string) (*model.ChatExchange, error)
	Exchange(ctx context.Context, caller *Caller) (*model.ChatExchange, error)
	Close(ctx context.Context, caller *Caller) error
}

type chatService struct {
	cfg      config.ChatConfig
	syllabus backend.SyllabusAPI
	api      backend.ChatAPI
	catalog  CatalogService
	store    *session.Store
	ops      *Inflight
	now      func() time.Time
	logger   *zap.Logger
}

// NewChatService creates a ChatService
func NewChatService(
	cfg config.ChatConfig,
	syllabus backend.SyllabusAPI,
	api backend.ChatAPI,
	cat CatalogService,
	store *session.Store,
	ops *Inflight,
	logger *zap.Logger,
) ChatService {
	return &chatService{
		cfg:      cfg,
		syllabus: syllabus,
		api:      api,
		catalog:  cat,
		store:    store,
		ops:      ops,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *chatService) Courses(ctx context.Context, caller *Caller) (*dto.CoursesResponse, error) {
	return s.catalog.Courses(ctx, caller)
}

func (s *chatService) CourseSyllabi(ctx context.Context, caller *Caller, courseName string) (*dto.CourseSyllabiResponse, error) {
	return s.catalog.CourseSyllabi(ctx, caller, courseName)
}

// Select fetches the PDF and its extracted text in parallel; a new selection discards the open exchange
func (s *chatService) Select(ctx context.Context, caller *Caller, req *dto.ChatSelectRequest) (*dto.ChatSelectResponse, error) {
	s.ops.Cancel(caller.SessionID, OpChatSend, OpChatSelect)
	if err := s.store.Drop(ctx, caller.SessionID, session.FieldChat, session.FieldChatSelection); err != nil {
		return nil, err
	}

	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}

	opCtx, done := s.ops.Begin(ctx, caller.SessionID, OpChatSelect)
	defer done()

	var (
		pdf  *model.PDFFile
		text string
	)
	g, gctx := errgroup.WithContext(opCtx)
	g.Go(func() error {
		f, err := s.syllabus.PDF(gctx, creds, req.PDFID)
		pdf = f
		return err
	})
	g.Go(func() error {
		t, err := s.syllabus.PDFText(gctx, creds, req.PDFID)
		text = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errs.WithFallback(err, msgChatLoadFailed)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errs.Content(MsgNoPDFContent)
	}

	sel := model.ChatSelection{PDFID: req.PDFID, CourseName: req.CourseName, Content: text}
	if err := s.store.Put(ctx, caller.SessionID, session.FieldChatSelection, sel, 0); err != nil {
		return nil, err
	}

	return &dto.ChatSelectResponse{
		PDFID:         req.PDFID,
		CourseName:    req.CourseName,
		ContentLength: len(text),
		PDFSize:       pdf.Size(),
		Ready:         true,
	}, nil
}

func (s *chatService) selection(ctx context.Context, sid string) (*model.ChatSelection, error) {
	var sel model.ChatSelection
	ok, err := s.store.Get(ctx, sid, session.FieldChatSelection, &sel)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoChatSelection
	}
	return &sel, nil
}

func (s *chatService) exchange(ctx context.Context, sid string) (*model.ChatExchange, error) {
	var ex model.ChatExchange
	ok, err := s.store.Get(ctx, sid, session.FieldChat, &ex)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoChat
	}
	return &ex, nil
}

// Open starts an empty exchange for the selected PDF
func (s *chatService) Open(ctx context.Context, caller *Caller) (*model.ChatExchange, error) {
	unlock := s.store.Lock(caller.SessionID)
	defer unlock()

	sel, err := s.selection(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(sel.Content) == "" {
		return nil, errs.Content(MsgNoPDFContent)
	}

	ex := &model.ChatExchange{ID: uuid.NewString(), PDFID: sel.PDFID, Turns: []model.Turn{}}
	if err := s.store.Put(ctx, caller.SessionID, session.FieldChat, ex, 0); err != nil {
		return nil, err
	}
	return ex, nil
}

// Send stores the user turn before calling the backend. Failures become the
// exchange's inline error; a reply for a closed or replaced exchange is dropped.
func (s *chatService) Send(ctx context.Context, caller *Caller, message string) (*model.ChatExchange, error) {
	if strings.TrimSpace(message) == "" {
		return s.Exchange(ctx, caller)
	}
	if s.cfg.MaxMessageLen > 0 && len([]rune(message)) > s.cfg.MaxMessageLen {
		return nil, errs.Validation("message", fmt.Sprintf(msgMessageTooLong, s.cfg.MaxMessageLen))
	}

	// read before the user turn is stored so a failure leaves no pending turn
	creds, err := s.store.Credentials(ctx, caller.SessionID)
	if err != nil {
		return nil, err
	}

	unlock := s.store.Lock(caller.SessionID)
	ex, err := s.exchange(ctx, caller.SessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	sel, err := s.selection(ctx, caller.SessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	ex.Turns = append(ex.Turns, model.Turn{Sender: model.SenderUser, Text: message, At: s.now()})
	ex.Pending = true
	ex.Error = ""
	err = s.store.Put(ctx, caller.SessionID, session.FieldChat, ex, 0)
	unlock()
	if err != nil {
		return nil, err
	}
	exchangeID := ex.ID

	opCtx, done := s.ops.Begin(ctx, caller.SessionID, OpChatSend)
	reply, sendErr := s.api.ChatWithPDF(opCtx, creds, message, sel.PDFID, sel.Content)
	done()

	unlock = s.store.Lock(caller.SessionID)
	defer unlock()

	ex, err = s.exchange(ctx, caller.SessionID)
	if errors.Is(err, ErrNoChat) || (err == nil && ex.ID != exchangeID) {
		s.logger.Debug("dropping chat reply for a closed exchange", zap.String("exchange_id", exchangeID))
		return nil, ErrNoChat
	}
	if err != nil {
		return nil, err
	}

	ex.Pending = false
	switch {
	case sendErr != nil:
		s.logger.Warn("chat request failed", zap.String("pdf_id", sel.PDFID), zap.Error(sendErr))
		ex.Error = ChatErrorMessage(sendErr)
	default:
		if strings.TrimSpace(reply) == "" {
			reply = MsgNoBotResponse
		}
		ex.Turns = append(ex.Turns, model.Turn{
			Sender: model.SenderBot,
			Text:   reply,
			HTML:   renderMarkdown(reply, s.logger),
			At:     s.now(),
		})
	}

	if err := s.store.Put(ctx, caller.SessionID, session.FieldChat, ex, 0); err != nil {
		return nil, err
	}
	return ex, nil
}

// ChatErrorMessage inline error for a failed chat request
func ChatErrorMessage(err error) string {
	e, ok := errs.As(err)
	if !ok {
		return MsgChatUnexpected
	}
	switch {
	case e.RouteNotFound():
		return MsgChatNotFound
	case e.Kind == errs.KindNetwork && !e.Malformed():
		return MsgChatNetwork
	case e.Kind == errs.KindService && e.Message != "":
		return e.Message
	default:
		return MsgChatUnexpected
	}
}

func renderMarkdown(text string, logger *zap.Logger) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(text), &buf); err != nil {
		logger.Warn("render bot reply failed", zap.Error(err))
		return ""
	}
	return buf.String()
}

func (s *chatService) Exchange(ctx context.Context, caller *Caller) (*model.ChatExchange, error) {
	return s.exchange(ctx, caller.SessionID)
}

// Close discards the exchange and cancels any in-flight send
func (s *chatService) Close(ctx context.Context, caller *Caller) error {
	s.ops.Cancel(caller.SessionID, OpChatSend)

	unlock := s.store.Lock(caller.SessionID)
	defer unlock()
	return s.store.Drop(ctx, caller.SessionID, session.FieldChat)
}
