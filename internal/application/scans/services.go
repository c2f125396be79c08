package scans

import (
	"context"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"

	"github.com/bryanwahyu/glowscan/internal/application"
	domai "github.com/bryanwahyu/glowscan/internal/domain/ai"
	domerr "github.com/bryanwahyu/glowscan/internal/domain/scanerrors"
	domain "github.com/bryanwahyu/glowscan/internal/domain/scans"
)

// persistTimeout bounds the background save so a hung store cannot leak goroutines.
const persistTimeout = 30 * time.Second

// Service implements use-cases untuk label scans.
// Repo, Errors and Images may be nil when storage is not configured;
// analysis keeps working and persistence degrades to a logged no-op.
type Service struct {
	Repo   domain.Repository
	Errors domerr.Repository
	Images domain.ImageStore
	AI     domai.Client
	Clock  application.Clock
}

// Command untuk analyze satu label
type AnalyzeCommand struct {
	Image    string // base64-encoded bytes
	MIMEType string
	Filename string
}

// Analyze runs the full pipeline: intake validation, one multimodal AI call,
// response normalization. Persistence is dispatched in the background and
// never gates the returned result.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.AnalysisResult, error) {
	img, err := domain.AcceptImage(cmd.Image, cmd.MIMEType, cmd.Filename)
	if err != nil {
		return nil, err
	}

	if s.AI == nil {
		return nil, domai.ErrNotConfigured
	}

	raw, err := s.AI.Analyze(ctx, img.Base64, img.MIMEType)
	if err != nil {
		s.recordError("", "analyze", err.Error(), "")
		return nil, err
	}

	result, err := domain.ParseAnalysis(raw)
	if err != nil {
		// keep the raw output for operators; the user only sees the message
		s.recordError("", "analyze", err.Error(), raw)
		return nil, err
	}

	// 🚀 fire-and-forget: simpan di background, respons jalan terus
	id := domain.ScanID(uuid.New().String())
	go s.persist(id, *result, img)

	return result, nil
}

// persist uploads the label image and saves the scan row. Runs detached from
// the request with its own deadline; every failure is swallowed here.
func (s *Service) persist(id domain.ScanID, res domain.AnalysisResult, img *domain.Image) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	var imageURL string
	if s.Images != nil {
		key := "labels/" + string(id) + extForMIME(img.MIMEType)
		url, err := s.Images.UploadBytes(ctx, img.Bytes, key, img.MIMEType)
		if err != nil {
			log.Errorf("image upload failed for scan %s: %v", id, err)
			s.recordError(string(id), "upload", err.Error(), "")
		} else {
			imageURL = url
		}
	}

	if s.Repo == nil {
		return
	}
	scan := domain.NewScan(id, res, imageURL, s.Clock.Now())
	if err := s.Repo.Save(ctx, scan); err != nil {
		log.Errorf("saving scan %s failed: %v", id, err)
		s.recordError(string(id), "persist", err.Error(), "")
	}
}

// Recent returns the newest scans. A store failure degrades to an empty
// list, the reason is only logged for operators.
func (s *Service) Recent(ctx context.Context, limit int) []*domain.Scan {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if s.Repo == nil {
		return []*domain.Scan{}
	}
	list, err := s.Repo.Recent(ctx, limit)
	if err != nil {
		log.Errorf("fetching recent scans failed: %v", err)
		return []*domain.Scan{}
	}
	if list == nil {
		list = []*domain.Scan{}
	}
	return list
}

// recordError writes a diagnostics row, best effort.
func (s *Service) recordError(scanID, phase, message, rawOutput string) {
	if s.Errors == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		e := &domerr.ScanError{
			ScanID:    scanID,
			Phase:     phase,
			Message:   message,
			RawOutput: rawOutput,
			CreatedAt: s.Clock.Now(),
		}
		if err := s.Errors.Save(ctx, e); err != nil {
			log.Warnf("recording scan error failed: %v", err)
		}
	}()
}

func extForMIME(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/heic", "image/heif":
		return ".heic"
	default:
		return ".jpg"
	}
}
