package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/userservice"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, cfg Config, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:            mb,
		m:             NewMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Sender, NewTemplate()),
		logger:        logger,
		activationURL: cfg.ActivationURL,
		baseDelay:     defaultBaseDelay,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// SendActivationEmail consumes user.created events in the background until Close is called.
func (s *MailService) SendActivationEmail() {
	msgs, err := s.mb.Consume(common.UserCreatedKey, common.UserExchange, common.UserCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendActivationEmail due to context cancellation")
				return
			}
		}
	}()
}

// handle sends one activation email, retrying with exponential backoff and jitter.
// The delivery is acknowledged whether or not the email went out.
func (s *MailService) handle(msg amqp.Delivery) bool {
	defer msg.Ack(false)

	var event userservice.UserCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		return false
	}

	payload := activationData{
		Username:        event.Username,
		ActivationToken: event.Token,
		ActivationURL:   s.activationURL,
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.m.send(event.Email, payload, activationTemplate)
		if err == nil {
			s.logger.Info("activation email sent", slog.String("email", event.Email))
			return true
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying activation email", slog.String("email", event.Email), slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return false
		}
	}

	s.logger.Error("could not send activation email", slog.String("email", event.Email))
	return false
}

func (s *MailService) Close() {
	s.cancel()
}
