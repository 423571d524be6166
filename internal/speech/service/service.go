// Package service provides text-to-speech synthesis with a progress trace.
package service

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"kisan_backend/internal/speech/client"
	"kisan_backend/platform/apperr"
	"kisan_backend/platform/logger"
	"kisan_backend/platform/progress"
)

const (
	msgConfigureFailed = "Failed to configure TTS client"
	msgSynthesisFailed = "TTS synthesis failed"
)

// Synthesizer turns text into encoded audio.
type Synthesizer interface {
	Configure(ctx context.Context) error
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Service synthesizes speech.
type Service struct {
	synth   Synthesizer
	timeout time.Duration
	log     *logger.Logger
}

// New creates a speech service. A zero timeout adds no deadline.
func New(synth Synthesizer, timeout time.Duration, log *logger.Logger) *Service {
	return &Service{synth: synth, timeout: timeout, log: log}
}

// Synthesize returns the base64 encoded audio for text.
func (s *Service) Synthesize(ctx context.Context, text string, trace *progress.Trace) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.synth.Configure(ctx); err != nil {
		return "", apperr.Wrap(apperr.KindUpstreamUnavailable, msgConfigureFailed, err)
	}
	trace.Mark("Google TTS client configured.")

	audio, err := s.synth.Synthesize(ctx, text)
	if err != nil {
		var cfgErr *client.ConfigError
		if errors.As(err, &cfgErr) {
			return "", apperr.Wrap(apperr.KindUpstreamUnavailable, msgConfigureFailed, err)
		}
		return "", apperr.Upstream(msgSynthesisFailed, err)
	}
	trace.Mark("Speech synthesized.")

	return base64.StdEncoding.EncodeToString(audio), nil
}
