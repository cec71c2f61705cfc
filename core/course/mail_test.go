package course_test

import (
	"net/mail"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/core/course"
	"github.com/lyceumacademy/lyceum/fs"
	"github.com/lyceumacademy/lyceum/tests"
)

func TestNewCertificateMessage(t *testing.T) {
	conf := testutil.NewConfig()
	core.ParseEmailTemplates(appfs.FS, conf, new(testutil.Logger))

	crs := course.Sanitize(sampleCourse())
	crs.CompletionDate = "2024-05-17"

	tests := []struct {
		name     string
		learner  mail.Address
		wantName string
	}{
		{name: "named learner", learner: mail.Address{Name: "Ada", Address: "ada@lyceum.test"}, wantName: "Ada"},
		{name: "address only", learner: mail.Address{Address: "ada@lyceum.test"}, wantName: "ada@lyceum.test"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := course.NewCertificateMessage(crs, tt.learner)
			assert.Equal(t, []mail.Address{tt.learner}, msg.To)
			assert.Equal(t, "You completed Intro to Go", msg.Subject)

			require.NoError(t, msg.Render(conf))
			require.True(t, msg.HasContent())
			assert.Contains(t, msg.TextContent, "Congratulations "+tt.wantName)
			assert.Contains(t, msg.TextContent, "2024-05-17")
			assert.Contains(t, msg.TextContent, "https://lyceum.test/certificate/intro-to-go")
			assert.Contains(t, msg.HTMLContent, "Intro to Go")
		})
	}
}
