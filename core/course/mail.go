package course

import (
	"net/mail"

	"github.com/lyceumacademy/lyceum/core"
)

const certificateTemplate = "course_completed"

// CertificateData feeds the "course_completed" email template.
type CertificateData struct {
	LearnerName    string
	CourseID       string
	CourseTitle    string
	Instructor     string
	CompletionDate string
}

// NewCertificateMessage returns the email congratulating learner for completing crs.
func NewCertificateMessage(crs Course, learner mail.Address) *core.EmailMessage {
	name := learner.Name
	if name == "" {
		name = learner.Address
	}
	return &core.EmailMessage{
		To:           []mail.Address{learner},
		Subject:      "You completed " + crs.Title,
		TemplateName: certificateTemplate,
		TemplateData: CertificateData{
			LearnerName:    name,
			CourseID:       crs.ID,
			CourseTitle:    crs.Title,
			Instructor:     crs.Instructor,
			CompletionDate: crs.CompletionDate,
		},
	}
}
