// Package client provides the Google Cloud Text-to-Speech client.
package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"kisan_backend/platform/config"
	"kisan_backend/platform/logger"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"google.golang.org/api/option"
)

// ConfigError reports that the client could not be configured.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Google synthesizes speech with a lazily dialled client that is reused for
// every later call.
type Google struct {
	cfg config.SpeechConfig
	log *logger.Logger

	mu     sync.Mutex
	client *texttospeech.Client
}

// New creates a speech client. No connection is made until first use.
func New(cfg config.SpeechConfig, log *logger.Logger) *Google {
	return &Google{cfg: cfg, log: log}
}

// Configure dials the client if it has not been dialled yet.
func (g *Google) Configure(ctx context.Context) error {
	_, err := g.dial(ctx)
	return err
}

// Synthesize renders text to audio with the configured voice and encoding.
func (g *Google) Synthesize(ctx context.Context, text string) ([]byte, error) {
	encoding, err := AudioEncoding(g.cfg.GetTTSAudioEncoding())
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	client, err := g.dial(ctx)
	if err != nil {
		return nil, err
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.cfg.GetTTSLanguageCode(),
			Name:         g.cfg.GetTTSVoiceName(),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: encoding,
		},
	}

	start := time.Now()
	resp, err := client.SynthesizeSpeech(ctx, req)
	g.log.WithContext(ctx).UpstreamCall("texttospeech", "synthesizeSpeech", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	return resp.GetAudioContent(), nil
}

// Close releases the underlying connection if one was dialled.
func (g *Google) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}

func (g *Google) dial(ctx context.Context) (*texttospeech.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}

	var opts []option.ClientOption
	if file := g.cfg.GetTTSCredentialsFile(); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, &ConfigError{Err: fmt.Errorf("create texttospeech client: %w", err)}
	}
	g.client = client
	return client, nil
}

// AudioEncoding maps a configured encoding name such as "MP3" or
// "ogg_opus" to the API enum.
func AudioEncoding(name string) (texttospeechpb.AudioEncoding, error) {
	value, ok := texttospeechpb.AudioEncoding_value[strings.ToUpper(strings.TrimSpace(name))]
	if !ok || value == int32(texttospeechpb.AudioEncoding_AUDIO_ENCODING_UNSPECIFIED) {
		return texttospeechpb.AudioEncoding_AUDIO_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported audio encoding %q", name)
	}
	return texttospeechpb.AudioEncoding(value), nil
}
