package backend

import (
	"context"
	"mime"
	"net/http"
	"net/url"
	"path"

	"github.com/aakash-73/Se2-Project-v1/internal/model"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

// ── auth ──

// Login POST /login
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	const op = "login"
	res, err := c.doJSON(ctx, call{op: op, method: http.MethodPost, path: "/login"}, map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var body struct {
		Message  string `json:"message"`
		Username string `json:"username"`
		UserType string `json:"user_type"`
	}
	if err := decode(op, res.body, &body); err != nil {
		return nil, err
	}

	out := &LoginResult{
		Message:  body.Message,
		Username: body.Username,
		UserType: body.UserType,
	}
	if out.Username == "" {
		out.Username = username
	}
	for _, ck := range res.cookies {
		out.Cookies = append(out.Cookies, Cookie{Name: ck.Name, Value: ck.Value})
	}
	return out, nil
}

// Register POST /register
func (c *Client) Register(ctx context.Context, payload *RegisterPayload) (*RegisterResult, error) {
	res, err := c.doJSON(ctx, call{op: "register", method: http.MethodPost, path: "/register"}, payload)
	if err != nil {
		return nil, err
	}
	return &RegisterResult{Status: res.status, Message: message(res.body)}, nil
}

// ── syllabi ──

// ListOwn GET /syllabi, optionally scoped to username
func (c *Client) ListOwn(ctx context.Context, creds Credentials, username string) ([]model.SyllabusRecord, error) {
	const op = "list_syllabi"
	var q url.Values
	if username != "" {
		q = url.Values{"username": {username}}
	}
	res, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/syllabi", query: q, creds: creds})
	if err != nil {
		return nil, err
	}
	var out []model.SyllabusRecord
	if err := decode(op, res.body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAll GET /syllabi/all
func (c *Client) ListAll(ctx context.Context, creds Credentials) ([]model.SyllabusRecord, error) {
	const op = "list_all_syllabi"
	res, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/syllabi/all", creds: creds})
	if err != nil {
		return nil, err
	}
	var out []model.SyllabusRecord
	if err := decode(op, res.body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get GET /syllabus/:id
func (c *Client) Get(ctx context.Context, creds Credentials, id string) (*model.SyllabusRecord, error) {
	const op = "get_syllabus"
	res, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/syllabus/" + url.PathEscape(id), creds: creds})
	if err != nil {
		return nil, err
	}
	var out model.SyllabusRecord
	if err := decode(op, res.body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Add POST /add_syllabus as multipart
func (c *Client) Add(ctx context.Context, creds Credentials, meta model.SyllabusMetadata, file *model.PDFFile) (string, error) {
	body, contentType, err := multipartBody(meta.Fields(), file)
	if err != nil {
		return "", err
	}
	res, err := c.do(ctx, call{
		op:          "add_syllabus",
		method:      http.MethodPost,
		path:        "/add_syllabus",
		creds:       creds,
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return message(res.body), nil
}

// Update PUT /update_syllabus/:id as multipart; fields may be a subset
func (c *Client) Update(ctx context.Context, creds Credentials, id string, fields [][2]string, file *model.PDFFile) (string, error) {
	body, contentType, err := multipartBody(fields, file)
	if err != nil {
		return "", err
	}
	res, err := c.do(ctx, call{
		op:          "update_syllabus",
		method:      http.MethodPut,
		path:        "/update_syllabus/" + url.PathEscape(id),
		creds:       creds,
		body:        body,
		contentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return message(res.body), nil
}

// Delete DELETE /delete_syllabus/:id
func (c *Client) Delete(ctx context.Context, creds Credentials, id string) (string, error) {
	res, err := c.do(ctx, call{op: "delete_syllabus", method: http.MethodDelete, path: "/delete_syllabus/" + url.PathEscape(id), creds: creds})
	if err != nil {
		return "", err
	}
	return message(res.body), nil
}

// PDF GET /get_pdf/:id
func (c *Client) PDF(ctx context.Context, creds Credentials, id string) (*model.PDFFile, error) {
	res, err := c.do(ctx, call{op: "get_pdf", method: http.MethodGet, path: "/get_pdf/" + url.PathEscape(id), creds: creds})
	if err != nil {
		return nil, err
	}

	name := path.Base(id) + ".pdf"
	if _, params, err := mime.ParseMediaType(res.header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	contentType := res.header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}
	return &model.PDFFile{Name: name, ContentType: contentType, Data: res.body}, nil
}

// PDFText GET /pdf_text/:id; an empty extraction is a content error
func (c *Client) PDFText(ctx context.Context, creds Credentials, id string) (string, error) {
	const op = "pdf_text"
	res, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/pdf_text/" + url.PathEscape(id), creds: creds})
	if err != nil {
		return "", err
	}
	var body struct {
		Text    string `json:"text"`
		Content string `json:"content"`
	}
	if err := decode(op, res.body, &body); err != nil {
		return "", err
	}
	if body.Text == "" {
		body.Text = body.Content
	}
	return body.Text, nil
}

// ── chat ──

// ChatWithPDF POST /chatbot/chat_with_pdf
func (c *Client) ChatWithPDF(ctx context.Context, creds Credentials, msg, pdfID, pdfContent string) (string, error) {
	const op = "chat_with_pdf"
	res, err := c.doJSON(ctx, call{
		op:      op,
		method:  http.MethodPost,
		path:    "/chatbot/chat_with_pdf",
		creds:   creds,
		timeout: c.chatTimeout,
	}, map[string]string{
		"message":    msg,
		"pdfId":      pdfID,
		"pdfContent": pdfContent,
	})
	if err != nil {
		return "", err
	}
	var body struct {
		Response string `json:"response"`
	}
	if err := decode(op, res.body, &body); err != nil {
		return "", err
	}
	return body.Response, nil
}

// ── admin ──

// ListProfessors GET /professors
func (c *Client) ListProfessors(ctx context.Context, creds Credentials) ([]model.UserSummary, error) {
	return c.listUsers(ctx, creds, "list_professors", "/professors")
}

// ListStudents GET /students
func (c *Client) ListStudents(ctx context.Context, creds Credentials) ([]model.UserSummary, error) {
	return c.listUsers(ctx, creds, "list_students", "/students")
}

func (c *Client) listUsers(ctx context.Context, creds Credentials, op, p string) ([]model.UserSummary, error) {
	res, err := c.do(ctx, call{op: op, method: http.MethodGet, path: p, creds: creds})
	if err != nil {
		return nil, err
	}
	var out []model.UserSummary
	if err := decode(op, res.body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateProfessor PUT /professors/:id
func (c *Client) UpdateProfessor(ctx context.Context, creds Credentials, id string, payload *ProfessorPayload) (string, error) {
	res, err := c.doJSON(ctx, call{op: "update_professor", method: http.MethodPut, path: "/professors/" + url.PathEscape(id), creds: creds}, payload)
	if err != nil {
		return "", err
	}
	return message(res.body), nil
}

// DeleteProfessor DELETE /professors/:id
func (c *Client) DeleteProfessor(ctx context.Context, creds Credentials, id string) (string, error) {
	res, err := c.do(ctx, call{op: "delete_professor", method: http.MethodDelete, path: "/professors/" + url.PathEscape(id), creds: creds})
	if err != nil {
		return "", err
	}
	return message(res.body), nil
}

// ListRegistrationRequests GET /registration_requests
func (c *Client) ListRegistrationRequests(ctx context.Context, creds Credentials) ([]model.RegistrationRequest, error) {
	const op = "list_registration_requests"
	res, err := c.do(ctx, call{op: op, method: http.MethodGet, path: "/registration_requests", creds: creds})
	if err != nil {
		return nil, err
	}
	var out []model.RegistrationRequest
	if err := decode(op, res.body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecideRegistration POST /registration_requests/:id/approve|reject
func (c *Client) DecideRegistration(ctx context.Context, creds Credentials, id string, approve bool) (string, error) {
	action := "reject"
	if approve {
		action = "approve"
	}
	res, err := c.do(ctx, call{
		op:     action + "_registration",
		method: http.MethodPost,
		path:   "/registration_requests/" + url.PathEscape(id) + "/" + action,
		creds:  creds,
	})
	if err != nil {
		return "", err
	}
	return message(res.body), nil
}

// ── landing ──

// LogEmail POST /log_email
func (c *Client) LogEmail(ctx context.Context, email string) error {
	_, err := c.doJSON(ctx, call{op: "log_email", method: http.MethodPost, path: "/log_email"}, map[string]string{"email": email})
	if err != nil {
		return errs.WithFallback(err, "Failed to log email.")
	}
	return nil
}
