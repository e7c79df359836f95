package mailservice

import (
	"context"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestMailService(mb *MockMessageConsumer, mailer *MockMailer, logger *MockLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:            mb,
		m:             mailer,
		logger:        logger,
		activationURL: "http://localhost:3000/activate",
		baseDelay:     time.Millisecond,
		ctx:           ctx,
		cancel:        cancel,
	}
}

const testEvent = `{"email": "test@example.com", "username": "tester", "token": "TESTTOKENTESTTOKENTESTTOKE"}`

func TestHandle(t *testing.T) {
	expected := activationData{
		Username:        "tester",
		ActivationToken: "TESTTOKENTESTTOKENTESTTOKE",
		ActivationURL:   "http://localhost:3000/activate",
	}

	testCases := []struct {
		name      string
		body      string
		setup     func(m *MockMailer)
		sent      bool
		sendCalls int
	}{
		{
			name: "sent on first attempt",
			body: testEvent,
			setup: func(m *MockMailer) {
				m.On("send", "test@example.com", expected, activationTemplate).Return(nil).Once()
			},
			sent:      true,
			sendCalls: 1,
		},
		{
			name: "sent after retries",
			body: testEvent,
			setup: func(m *MockMailer) {
				m.On("send", "test@example.com", expected, activationTemplate).Return(errors.New("smtp unavailable")).Twice()
				m.On("send", "test@example.com", expected, activationTemplate).Return(nil).Once()
			},
			sent:      true,
			sendCalls: 3,
		},
		{
			name: "gives up after max retries",
			body: testEvent,
			setup: func(m *MockMailer) {
				m.On("send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp unavailable"))
			},
			sent:      false,
			sendCalls: maxRetries,
		},
		{
			name:      "malformed message",
			body:      `{"email":`,
			setup:     func(m *MockMailer) {},
			sent:      false,
			sendCalls: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mailer := new(MockMailer)
			tc.setup(mailer)

			s := newTestMailService(&MockMessageConsumer{}, mailer, &MockLogger{})
			t.Cleanup(s.Close)

			assert.Equal(t, tc.sent, s.handle(amqp.Delivery{Body: []byte(tc.body)}))
			mailer.AssertNumberOfCalls(t, "send", tc.sendCalls)
		})
	}
}

func TestSendActivationEmail(t *testing.T) {
	mailer := new(MockMailer)
	mailer.On("send", "test@example.com", mock.Anything, activationTemplate).Return(nil)
	logger := &MockLogger{}

	s := newTestMailService(&MockMessageConsumer{Bodies: [][]byte{[]byte(testEvent)}}, mailer, logger)
	t.Cleanup(s.Close)

	s.SendActivationEmail()

	assert.Eventually(t, func() bool {
		for _, msg := range logger.Infos() {
			if msg == "activation email sent" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)

	mailer.AssertExpectations(t)
	assert.Empty(t, logger.Errors())
}
