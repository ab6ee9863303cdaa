package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"github.com/westosha-tf/team-portal/internal/storage"
	"github.com/westosha-tf/team-portal/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrFileRequired     = errors.New("file is required")
	ErrInvalidCategory  = errors.New("category must be Athletic Forms, Handbooks, Meet Day or Other")
	ErrFileTooLarge     = errors.New("file is too large")
)

// DocumentService owns document metadata together with the stored objects
// it points at.
type DocumentService struct {
	repo      repository.DocumentRepository
	store     storage.ObjectStore
	signer    *storage.URLSigner
	sanitizer *TextSanitizer
	log       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	repo repository.DocumentRepository,
	store storage.ObjectStore,
	signer *storage.URLSigner,
	sanitizer *TextSanitizer,
	log *zap.Logger,
) *DocumentService {
	return &DocumentService{
		repo:      repo,
		store:     store,
		signer:    signer,
		sanitizer: sanitizer,
		log:       log,
	}
}

// List returns live documents, required first. An empty category or "All"
// lists every category.
func (s *DocumentService) List(ctx context.Context, category string) ([]models.Document, error) {
	var filter *string
	if category = strings.TrimSpace(category); category != "" && category != "All" {
		if !models.IsDocumentCategory(category) {
			return nil, ErrInvalidCategory
		}
		filter = &category
	}

	docs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// UploadInput represents a coach's document upload
type UploadInput struct {
	Title       string
	Category    string
	Description *string
	IsRequired  bool
	File        io.Reader
	FileName    string
	MimeType    string
	Size        int64
	CreatedBy   string
}

// Upload stores the file and then its metadata row. If the row cannot be
// written the stored object is removed again and the insert error returned.
func (s *DocumentService) Upload(ctx context.Context, input UploadInput) (*models.Document, error) {
	title := s.sanitizer.Clean(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if input.File == nil || strings.TrimSpace(input.FileName) == "" {
		return nil, ErrFileRequired
	}
	if input.Size > constants.MaxUploadSize {
		return nil, ErrFileTooLarge
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = constants.DefaultCategory
	}
	if !models.IsDocumentCategory(category) {
		return nil, ErrInvalidCategory
	}

	key := utils.StorageKey(constants.DocumentUploadPrefix, input.FileName)
	if err := s.store.Put(ctx, key, input.File, input.Size, input.MimeType); err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := &models.Document{
		Title:       title,
		Category:    category,
		Description: s.sanitizer.CleanOptional(input.Description),
		IsRequired:  input.IsRequired,
		FilePath:    key,
		FileName:    input.FileName,
		FileSize:    input.Size,
		CreatedBy:   input.CreatedBy,
	}
	if input.MimeType != "" {
		mime := input.MimeType
		doc.MimeType = &mime
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.discardObject(key, err)
		return nil, fmt.Errorf("failed to save document: %w", err)
	}
	return doc, nil
}

// discardObject removes an object whose metadata insert failed. A failure
// here is logged and recorded for the reconciliation sweep, never returned.
func (s *DocumentService) discardObject(key string, cause error) {
	// The request context may already be cancelled; cleanup runs regardless.
	ctx := context.Background()
	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Error("failed to remove object after metadata insert failure",
			zap.String("key", key),
			zap.NamedError("insert_error", cause),
			zap.Error(err),
		)
		if rerr := s.repo.RecordOrphan(ctx, key, "metadata insert failed"); rerr != nil {
			s.log.Error("failed to record orphan object", zap.String("key", key), zap.Error(rerr))
		}
	}
}

// Delete hides the record, removes the object and then drops the record.
// If the object cannot be removed the record stays hidden and the error is
// returned; Reconcile finishes the job later.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to load document: %w", err)
	}

	if err := s.repo.SoftDelete(ctx, doc.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := s.store.Delete(ctx, doc.FilePath); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}

	if err := s.repo.HardDelete(ctx, doc.ID); err != nil {
		s.log.Warn("failed to purge deleted document", zap.String("document_id", doc.ID), zap.Error(err))
	}
	return nil
}

// SignedURL returns a download path for the document valid for one minute.
func (s *DocumentService) SignedURL(ctx context.Context, id string) (string, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("failed to load document: %w", err)
	}

	token, err := s.signer.Sign(doc.FilePath, constants.SignedURLTTL)
	if err != nil {
		return "", err
	}
	return constants.PathSignedFiles + "/" + token, nil
}

// Open resolves a signed token to the document and its content stream.
// The caller closes the returned reader.
func (s *DocumentService) Open(ctx context.Context, token string) (*models.Document, io.ReadCloser, error) {
	key, err := s.signer.Verify(token)
	if err != nil {
		return nil, nil, err
	}

	doc, err := s.repo.FindByFilePath(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDocumentNotFound
		}
		return nil, nil, fmt.Errorf("failed to load document: %w", err)
	}

	rc, err := s.store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, ErrDocumentNotFound
		}
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return doc, rc, nil
}

// ReconcileResult counts what a sweep removed.
type ReconcileResult struct {
	Documents int
	Orphans   int
}

// Reconcile retries object removal for soft-deleted documents and recorded
// orphans. Items that still fail are left for the next sweep.
func (s *DocumentService) Reconcile(ctx context.Context) (ReconcileResult, error) {
	var result ReconcileResult

	docs, err := s.repo.ListSoftDeleted(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list deleted documents: %w", err)
	}
	for _, doc := range docs {
		if err := s.store.Delete(ctx, doc.FilePath); err != nil {
			s.log.Warn("reconcile: object delete failed", zap.String("key", doc.FilePath), zap.Error(err))
			continue
		}
		if err := s.repo.HardDelete(ctx, doc.ID); err != nil {
			s.log.Warn("reconcile: purge failed", zap.String("document_id", doc.ID), zap.Error(err))
			continue
		}
		result.Documents++
	}

	orphans, err := s.repo.ListOrphans(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list orphan objects: %w", err)
	}
	for _, orphan := range orphans {
		if err := s.store.Delete(ctx, orphan.Key); err != nil {
			s.log.Warn("reconcile: orphan delete failed", zap.String("key", orphan.Key), zap.Error(err))
			continue
		}
		if err := s.repo.DeleteOrphan(ctx, orphan.Key); err != nil {
			s.log.Warn("reconcile: orphan purge failed", zap.String("key", orphan.Key), zap.Error(err))
			continue
		}
		result.Orphans++
	}

	return result, nil
}

// RunReconciler sweeps every interval until ctx is cancelled.
func (s *DocumentService) RunReconciler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := s.Reconcile(ctx)
			if err != nil {
				s.log.Error("document reconciliation failed", zap.Error(err))
				continue
			}
			if result.Documents > 0 || result.Orphans > 0 {
				s.log.Info("document reconciliation completed",
					zap.Int("documents", result.Documents),
					zap.Int("orphans", result.Orphans),
				)
			}
		}
	}
}
