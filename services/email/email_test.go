package emailsvc

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyceumacademy/lyceum/core"
	"github.com/lyceumacademy/lyceum/tests"
)

func TestConsoleService_SendMessages(t *testing.T) {
	conf := testutil.NewConfig()
	logger := new(testutil.Logger)
	svc := NewConsoleServiceMock(conf, logger)

	svc.SendMessages(
		&core.EmailMessage{To: []mail.Address{{Address: "ada@lyceum.test"}}, Subject: "Hi", BodyStr: "hello"},
		&core.EmailMessage{Subject: "no recipient", BodyStr: "hello"},
		&core.EmailMessage{To: []mail.Address{{Address: "ada@lyceum.test"}}, Subject: "no content"},
	)

	sent := svc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "hello", sent[0].TextContent)
	assert.Empty(t, logger.Messages)
}

func TestConsoleService_format(t *testing.T) {
	svc := NewConsoleServiceMock(testutil.NewConfig(), new(testutil.Logger))
	body, err := svc.format(core.EmailMessage{
		To:          []mail.Address{{Name: "Ada", Address: "ada@lyceum.test"}},
		Subject:     "Hi",
		TextContent: "plain",
		HTMLContent: "<p>rich</p>",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "Subject: [Lyceum Academy] Hi\r\n")
	assert.Contains(t, body, `To: "Ada" <ada@lyceum.test>`)
	assert.NotContains(t, body, "CC:")
	assert.Contains(t, body, "multipart/alternative; boundary=")
	assert.True(t, strings.Index(body, "plain") < strings.Index(body, "<p>rich</p>"))
}

func TestSendgridService_prepare(t *testing.T) {
	svc := NewSendgridService(testutil.NewConfig(), new(testutil.Logger))
	m := svc.prepare(core.EmailMessage{
		To:          []mail.Address{{Name: "Ada", Address: "ada@lyceum.test"}},
		Cc:          []mail.Address{{Address: "staff@lyceum.test"}},
		Subject:     "Done",
		TextContent: "plain",
	})

	require.Len(t, m.Personalizations, 1)
	p := m.Personalizations[0]
	assert.Equal(t, "[Lyceum Academy] Done", p.Subject)
	require.Len(t, p.To, 1)
	assert.Equal(t, "ada@lyceum.test", p.To[0].Address)
	require.Len(t, p.CC, 1)
	require.Len(t, m.Content, 1, "no empty html part")
	assert.Equal(t, "text/plain", m.Content[0].Type)
}
