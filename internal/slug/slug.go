// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns uploaded file names into safe object storage keys.
package slug

import (
	"fmt"
	"regexp"
	"time"
)

// unsafeRun matches any run of characters outside [A-Za-z0-9_.-].
var unsafeRun = regexp.MustCompile(`[^\w.\-]+`)

// PDFPrefix is the key prefix for library documents.
const PDFPrefix = "pdfs/"

// Filename replaces every run of unsafe characters with a single underscore.
// Example: "Shift rota (v2).pdf" → "Shift_rota_v2_.pdf"
func Filename(name string) string {
	return unsafeRun.ReplaceAllString(name, "_")
}

// PDFKey builds the storage key for an uploaded PDF:
// pdfs/<unix-ms>-<sanitized name>.
func PDFKey(name string, at time.Time) string {
	return fmt.Sprintf("%s%d-%s", PDFPrefix, at.UnixMilli(), Filename(name))
}
