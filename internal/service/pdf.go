package service

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/aakash-73/Se2-Project-v1/internal/model"
	errs "github.com/aakash-73/Se2-Project-v1/pkg/errors"
)

const (
	MsgInvalidPDF = "Please upload a valid PDF file."
	MsgSelectPDF  = "Please select a PDF file to upload."
)

// checkPDF accepts a file whose content sniffs as PDF and whose name ends in .pdf
func checkPDF(name string, data []byte, maxBytes int64) (*model.PDFFile, error) {
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errs.Validation("syllabus_pdf", fmt.Sprintf("File exceeds the %s limit.", sizeLabel(maxBytes)))
	}
	if len(data) == 0 || !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return nil, errs.Validation("syllabus_pdf", MsgInvalidPDF)
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		return nil, errs.Validation("syllabus_pdf", MsgInvalidPDF)
	}
	return &model.PDFFile{Name: name, ContentType: "application/pdf", Data: data}, nil
}

// sizeLabel whole MB when the limit is a megabyte multiple, KB or bytes otherwise
func sizeLabel(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
