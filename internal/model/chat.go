package model

import "time"

// Sender author of a chat turn
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Turn one message in an exchange
type Turn struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	HTML   string    `json:"html,omitempty"`
	At     time.Time `json:"at"`
}

// ChatSelection the PDF chosen for chatting together with its extracted text
type ChatSelection struct {
	PDFID      string `json:"pdf_id"`
	CourseName string `json:"course_name,omitempty"`
	Content    string `json:"content"`
}

// ChatExchange conversation scoped to one open chat for one PDF
type ChatExchange struct {
	ID      string `json:"id"`
	PDFID   string `json:"pdf_id"`
	Turns   []Turn `json:"turns"`
	Error   string `json:"error,omitempty"`
	Pending bool   `json:"pending"`
}
