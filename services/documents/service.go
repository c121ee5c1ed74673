package documents

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	caseRepo "nyayamitra/database/repository/caserepo"
	documentRepo "nyayamitra/database/repository/document"
	"nyayamitra/models"
	"nyayamitra/services/storage"
	"nyayamitra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const secureURLTTL = 15 * time.Minute

// DocumentService manages the evidence and paperwork attached to a case.
type DocumentService interface {
	// Upload stores a file for a case and records its metadata. The caller
	// must be a party to the case.
	Upload(ctx context.Context, uploaderEmail string, caseNumber int, localFilePath, fileName string) (*models.CaseDocument, error)
	// ListForCase returns a case's documents, newest first.
	ListForCase(caseNumber int) ([]models.CaseDocument, error)
	// DownloadURL returns a short-lived signed URL for a stored document.
	DownloadURL(ctx context.Context, documentID string) (string, error)
	// Remove deletes a document the caller uploaded.
	Remove(ctx context.Context, uploaderEmail, documentID string) error
}

// DefaultDocumentService is the production DocumentService implementation.
type DefaultDocumentService struct {
	DocumentRepo documentRepo.DocumentRepository
	CaseRepo     caseRepo.CaseRepository
	Storage      storage.StorageService
}

// resourceTypeFor classifies an upload by extension for URL construction.
func resourceTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return "image"
	case ".mp4", ".mov", ".webm":
		return "video"
	default:
		return "raw"
	}
}

// isCaseParty reports whether the email belongs to any party on the case.
func isCaseParty(cs *models.Case, email string) bool {
	return cs.SubmittedBy == email || cs.AidProvider == email || cs.JudgeAssigned == email
}

// Upload stores a file for a case and records its metadata.
func (s *DefaultDocumentService) Upload(ctx context.Context, uploaderEmail string, caseNumber int, localFilePath, fileName string) (*models.CaseDocument, error) {
	cs, err := s.CaseRepo.GetByNumber(caseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case %d: %w", caseNumber, err)
	}
	if cs == nil {
		return nil, fmt.Errorf("case %d not found", caseNumber)
	}
	if !isCaseParty(cs, uploaderEmail) {
		return nil, fmt.Errorf("uploader is not a party to case %d", caseNumber)
	}

	destFolder := fmt.Sprintf("cases/%d", caseNumber)
	publicID, err := s.Storage.UploadFile(ctx, localFilePath, destFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload document: %w", err)
	}

	doc := &models.CaseDocument{
		ID:           uuid.New().String(),
		CaseNumber:   caseNumber,
		UploadedBy:   uploaderEmail,
		FileName:     fileName,
		PublicID:     publicID,
		ResourceType: resourceTypeFor(fileName),
	}
	if err := s.DocumentRepo.Create(doc); err != nil {
		// Orphaned upload; remove it so storage does not drift from metadata.
		if delErr := s.Storage.DeleteFile(ctx, publicID); delErr != nil {
			utils.GetLogger().Error("Failed to clean up orphaned upload",
				zap.String("publicID", publicID), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	utils.GetLogger().Info("Document uploaded",
		zap.Int("caseNumber", caseNumber), zap.String("file", fileName))
	return doc, nil
}

// ListForCase returns a case's documents, newest first.
func (s *DefaultDocumentService) ListForCase(caseNumber int) ([]models.CaseDocument, error) {
	docs, err := s.DocumentRepo.GetByCase(caseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// DownloadURL returns a short-lived signed URL for a stored document.
func (s *DefaultDocumentService) DownloadURL(ctx context.Context, documentID string) (string, error) {
	doc, err := s.DocumentRepo.GetByID(documentID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch document: %w", err)
	}
	if doc == nil {
		return "", fmt.Errorf("document not found")
	}
	url, err := s.Storage.GetSecureDownloadURL(ctx, doc.ResourceType, doc.PublicID, secureURLTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign download URL: %w", err)
	}
	return url, nil
}

// Remove deletes a document the caller uploaded.
func (s *DefaultDocumentService) Remove(ctx context.Context, uploaderEmail, documentID string) error {
	doc, err := s.DocumentRepo.GetByID(documentID)
	if err != nil {
		return fmt.Errorf("failed to fetch document: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document not found")
	}
	if doc.UploadedBy != uploaderEmail {
		return fmt.Errorf("only the uploader can remove a document")
	}
	if err := s.Storage.DeleteFile(ctx, doc.PublicID); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	if err := s.DocumentRepo.Delete(documentID); err != nil {
		return fmt.Errorf("failed to delete document record: %w", err)
	}
	return nil
}
