package service

import (
	"context"

	"go.uber.org/zap"
)

// SMSSender delivers one-time codes to a phone number. The real gateway
// integration lives behind this interface; the service never puts the
// code anywhere else unless OTP echo is enabled.
type SMSSender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSMSSender writes codes to the application log instead of a gateway.
// Used in deployments without an SMS provider.
type LogSMSSender struct {
	log *zap.Logger
}

// NewLogSMSSender creates a log-backed SMS sender
func NewLogSMSSender(log *zap.Logger) *LogSMSSender {
	return &LogSMSSender{log: log}
}

func (s *LogSMSSender) Send(ctx context.Context, phone, code string) error {
	s.log.Info("otp issued",
		zap.String("phone", phone),
		zap.String("code", code))
	return nil
}
