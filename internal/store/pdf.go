// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"stockroom/internal/models"
)

// PdfStore manages the PDF library rows.
type PdfStore struct {
	db *sql.DB
}

// NewPdfStore returns a new PdfStore.
func NewPdfStore(db *sql.DB) *PdfStore {
	return &PdfStore{db: db}
}

const pdfColumns = `id, title, storage_path, file_path, public_url, uploaded_at, is_active`

func scanPdf(scanner interface{ Scan(...any) error }) (*models.PdfDocument, error) {
	var d models.PdfDocument
	err := scanner.Scan(&d.ID, &d.Title, &d.StoragePath, &d.FilePath, &d.PublicURL, &d.UploadedAt, &d.IsActive)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListActive returns active documents, newest upload first.
func (s *PdfStore) ListActive() ([]models.PdfDocument, error) {
	rows, err := s.db.Query(`
		SELECT `+pdfColumns+`
		FROM pdf_documents
		WHERE is_active
		ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list pdfs: %w", err)
	}
	defer rows.Close()

	docs := []models.PdfDocument{}
	for rows.Next() {
		d, err := scanPdf(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pdf: %w", err)
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// Create inserts an active document row. Both path columns receive the
// storage path.
func (s *PdfStore) Create(title, storagePath, publicURL string) (*models.PdfDocument, error) {
	row := s.db.QueryRow(`
		INSERT INTO pdf_documents (title, storage_path, file_path, public_url, is_active, uploaded_at)
		VALUES ($1, $2, $2, $3, TRUE, now())
		RETURNING `+pdfColumns,
		title, storagePath, publicURL,
	)
	d, err := scanPdf(row)
	if err != nil {
		return nil, fmt.Errorf("create pdf: %w", err)
	}
	return d, nil
}

// FindByID retrieves a document regardless of its active flag. Returns nil
// if not found.
func (s *PdfStore) FindByID(id int64) (*models.PdfDocument, error) {
	row := s.db.QueryRow(`SELECT `+pdfColumns+` FROM pdf_documents WHERE id = $1`, id)
	d, err := scanPdf(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pdf by id: %w", err)
	}
	return d, nil
}

// Deactivate soft-deletes a document.
func (s *PdfStore) Deactivate(id int64) error {
	if _, err := s.db.Exec(`UPDATE pdf_documents SET is_active = FALSE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deactivate pdf: %w", err)
	}
	return nil
}
