package mailservice

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/sushihentaime/inkwell/internal/common"
)

const (
	activationTemplate = "activation_email.html"
	maxRetries         = 5
	defaultBaseDelay   = 500 * time.Millisecond
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	// ActivationURL is the page that accepts the activation token, e.g. https://inkwell.dev/activate.
	ActivationURL string
}

type MailService struct {
	mb            common.MessageConsumer
	m             Mailer
	logger        MailLogger
	activationURL string
	baseDelay     time.Duration
	ctx           context.Context
	cancel        context.CancelFunc
}

type MailLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type Mail struct {
	mu     sync.Mutex
	dialer Dialer
	parser TemplateParser
	sender string
}

type Mailer interface {
	send(recipient string, data any, templateFile string) error
}

type Template struct{}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

type activationData struct {
	Username        string
	ActivationToken string
	ActivationURL   string
}
