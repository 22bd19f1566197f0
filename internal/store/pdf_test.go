package store

import (
	"testing"

	"stockroom/internal/models"
)

func TestPdfStoreLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewPdfStore(db)

	doc, err := s.Create("Wiring manual", "pdfs/1700000000000-wiring.pdf", "https://cdn.example.com/pdfs/wiring.pdf")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM pdf_documents WHERE id = $1", doc.ID) })

	if !doc.IsActive {
		t.Error("new document should be active")
	}
	if doc.ObjectPath() != "pdfs/1700000000000-wiring.pdf" {
		t.Errorf("ObjectPath = %q", doc.ObjectPath())
	}
	if doc.FilePath == nil || *doc.FilePath != *doc.StoragePath {
		t.Error("file_path should mirror storage_path")
	}

	list, err := s.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if !containsPdf(list, doc.ID) {
		t.Fatal("ListActive missing new document")
	}

	if err := s.Deactivate(doc.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	list, err = s.ListActive()
	if err != nil {
		t.Fatalf("ListActive after deactivate: %v", err)
	}
	if containsPdf(list, doc.ID) {
		t.Error("deactivated document still listed")
	}

	// The row survives the soft delete.
	found, err := s.FindByID(doc.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.IsActive {
		t.Errorf("FindByID after deactivate = %+v, want inactive row", found)
	}
}

func TestPdfStoreFindMissing(t *testing.T) {
	db := testDB(t)

	d, err := NewPdfStore(db).FindByID(-1)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if d != nil {
		t.Error("expected nil for missing document")
	}
}

func containsPdf(docs []models.PdfDocument, id int64) bool {
	for _, d := range docs {
		if d.ID == id {
			return true
		}
	}
	return false
}
