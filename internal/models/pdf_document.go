// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// PdfDocument is an entry of the shared PDF library. The object itself lives
// in the storage bucket under StoragePath; FilePath is the legacy column
// older rows were written with.
type PdfDocument struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	StoragePath *string   `json:"storage_path"`
	FilePath    *string   `json:"file_path,omitempty"`
	PublicURL   string    `json:"public_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
	IsActive    bool      `json:"is_active"`
}

// ObjectPath returns the storage key of the document, preferring
// StoragePath over the legacy FilePath. Empty when neither is set.
func (d *PdfDocument) ObjectPath() string {
	if d.StoragePath != nil && *d.StoragePath != "" {
		return *d.StoragePath
	}
	if d.FilePath != nil {
		return *d.FilePath
	}
	return ""
}
