// Package service provides the crop diagnosis pipeline: directory lookup,
// prompt building, generation and doctor extraction.
package service

import (
	"context"
	"errors"
	"time"

	"kisan_backend/internal/diagnosis/client"
	"kisan_backend/internal/diagnosis/transport"
	"kisan_backend/internal/directory/repository"
	"kisan_backend/platform/apperr"
	"kisan_backend/platform/logger"
	"kisan_backend/platform/progress"
)

const (
	defaultMIMEType = "image/jpeg"

	msgDirectoryFailed = "Failed to load doctor directory"
	msgCallFailed      = "Failed to call Gemini API"
	msgParseFailed     = "Failed to parse Gemini response"
)

// Generator produces model text for an image and prompt.
type Generator interface {
	Generate(ctx context.Context, req client.GenerateRequest) (client.GenerateResult, error)
}

// Input is a received diagnosis request.
type Input struct {
	Image       []byte
	MIMEType    string
	Description string
}

// Options tunes the pipeline.
type Options struct {
	// Strict fails the request when the directory cannot be read instead of
	// continuing with an empty doctor list.
	Strict bool
	// Timeout bounds the generation call. Zero means no extra deadline.
	Timeout time.Duration
}

// Service runs diagnoses.
type Service struct {
	doctors   repository.DoctorReader
	generator Generator
	extractor Extractor
	opts      Options
	log       *logger.Logger
}

// New creates a diagnosis service. A nil extractor selects PatternExtractor.
func New(doctors repository.DoctorReader, generator Generator, extractor Extractor, opts Options, log *logger.Logger) *Service {
	if extractor == nil {
		extractor = PatternExtractor{}
	}
	return &Service{
		doctors:   doctors,
		generator: generator,
		extractor: extractor,
		opts:      opts,
		log:       log,
	}
}

// Diagnose builds the prompt from the directory, asks the model, and extracts
// the recommended doctor. Milestones are marked on trace as they complete.
func (s *Service) Diagnose(ctx context.Context, in Input, trace *progress.Trace) (transport.DiagnoseResponse, error) {
	doctors, err := s.loadDoctors(ctx)
	if err != nil {
		return transport.DiagnoseResponse{}, err
	}

	prompt := BuildPrompt(in.Description, doctors)
	trace.Mark("Prompt with doctors constructed.")

	mimeType := in.MIMEType
	if mimeType == "" {
		mimeType = defaultMIMEType
	}

	genCtx := ctx
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	result, err := s.generator.Generate(genCtx, client.GenerateRequest{
		Image:    in.Image,
		MIMEType: mimeType,
		Prompt:   prompt,
	})
	if err != nil {
		var shapeErr *client.ShapeError
		if errors.As(err, &shapeErr) {
			trace.Mark("Gemini API request sent.")
			return transport.DiagnoseResponse{}, apperr.UpstreamShape(msgParseFailed, shapeErr, shapeErr.Raw)
		}
		return transport.DiagnoseResponse{}, apperr.Upstream(msgCallFailed, err)
	}
	trace.Mark("Gemini API request sent.")
	trace.Mark("Diagnosis received from Gemini.")

	rec := s.extractor.Extract(result.Text)

	return transport.DiagnoseResponse{
		Diagnosis:        result.Text,
		DoctorName:       rec.Name,
		DoctorMobile:     rec.Mobile,
		DoctorMobileE164: rec.MobileE164,
	}, nil
}

func (s *Service) loadDoctors(ctx context.Context) ([]repository.Doctor, error) {
	doctors, err := s.doctors.ListDoctors(ctx)
	if err == nil {
		return doctors, nil
	}

	log := s.log.WithContext(ctx)
	log.DatabaseError("list_doctors", err)
	if s.opts.Strict {
		return nil, apperr.Upstream(msgDirectoryFailed, err)
	}
	log.Warn("continuing diagnosis without doctor directory")
	return []repository.Doctor{}, nil
}
