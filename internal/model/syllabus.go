package model

// SyllabusRecord one catalog row as returned by the Syllabus Service
type SyllabusRecord struct {
	ID                  string `json:"id,omitempty"`
	CourseID            string `json:"course_id"`
	CourseName          string `json:"course_name"`
	DepartmentID        string `json:"department_id"`
	DepartmentName      string `json:"department_name"`
	Professor           string `json:"professor,omitempty"`
	SyllabusDescription string `json:"syllabus_description"`
	SyllabusPDF         string `json:"syllabus_pdf"`
}

// RecordID identifier used by modals and chat selection
func (r SyllabusRecord) RecordID() string {
	if r.SyllabusPDF != "" {
		return r.SyllabusPDF
	}
	return r.ID
}

// SyllabusMetadata the text fields of an upload or edit
type SyllabusMetadata struct {
	CourseID            string `json:"course_id"`
	CourseName          string `json:"course_name"`
	DepartmentID        string `json:"department_id"`
	DepartmentName      string `json:"department_name"`
	SyllabusDescription string `json:"syllabus_description"`
}

// Fields metadata as multipart form fields, in wire order
func (m SyllabusMetadata) Fields() [][2]string {
	return [][2]string{
		{"course_id", m.CourseID},
		{"course_name", m.CourseName},
		{"department_id", m.DepartmentID},
		{"department_name", m.DepartmentName},
		{"syllabus_description", m.SyllabusDescription},
	}
}

// PDFFile a PDF held in memory between staging and submission
type PDFFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Size byte length
func (f *PDFFile) Size() int { return len(f.Data) }
