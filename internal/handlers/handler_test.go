// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared fakes for the handler tests. Every store,
// the procedure client and object storage sit behind small interfaces, so
// these tests run without PostgreSQL, Valkey or S3.
package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/pin"
	"stockroom/internal/procedures"
	"stockroom/internal/render"
	"stockroom/internal/session"
)

// fakeCategories implements CategoryLister and CategoryFinder.
type fakeCategories struct {
	top         []models.Category
	children    map[uuid.UUID][]models.Category
	byID        map[uuid.UUID]*models.Category
	err         error
	invalidated []uuid.UUID
}

func (f *fakeCategories) TopLevel(context.Context) ([]models.Category, error) {
	return f.top, f.err
}

func (f *fakeCategories) Children(_ context.Context, parentID uuid.UUID) ([]models.Category, error) {
	return f.children[parentID], f.err
}

func (f *fakeCategories) InvalidateParent(_ context.Context, parentID uuid.UUID) {
	f.invalidated = append(f.invalidated, parentID)
}

func (f *fakeCategories) FindByID(id uuid.UUID) (*models.Category, error) {
	return f.byID[id], nil
}

// fakeItems implements ItemFinder.
type fakeItems struct {
	bySub   map[uuid.UUID][]models.Item
	listErr error
}

func (f *fakeItems) ListBySubcategory(subcategoryID uuid.UUID) ([]models.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.bySub[subcategoryID], nil
}

func (f *fakeItems) FindByID(id uuid.UUID) (*models.Item, error) {
	for _, items := range f.bySub {
		if it := models.FindItem(items, id); it != nil {
			return it, nil
		}
	}
	return nil, nil
}

// fakeHistory implements HistoryFinder.
type fakeHistory struct {
	logs []models.StockLog
}

func (f *fakeHistory) RecentForItem(uuid.UUID) ([]models.StockLog, error) {
	return f.logs, nil
}

// fakeStaff implements StaffFinder.
type fakeStaff struct {
	names []models.StaffName
	uids  []models.StaffUIDRow
	err   error
	roles []models.StaffRole
}

func (f *fakeStaff) ActiveNames(role models.StaffRole) ([]models.StaffName, error) {
	f.roles = append(f.roles, role)
	return f.names, nil
}

func (f *fakeStaff) UIDs() ([]models.StaffUIDRow, error) {
	return f.uids, f.err
}

// fakeProcs implements Procedures, recording each call by procedure name.
type fakeProcs struct {
	err    error
	lookup []byte
	calls  []string
	last   any
}

func (f *fakeProcs) record(name string, p any) error {
	f.calls = append(f.calls, name)
	f.last = p
	return f.err
}

func (f *fakeProcs) UpdateStock(_ context.Context, p procedures.UpdateStock) error {
	return f.record(procedures.ProcUpdateStock, p)
}

func (f *fakeProcs) AddItem(_ context.Context, p procedures.NewItem) error {
	return f.record(procedures.ProcAddItem, p)
}

func (f *fakeProcs) AddItemWithBarcode(_ context.Context, p procedures.NewItem) error {
	return f.record(procedures.ProcAddItemWithBarcode, p)
}

func (f *fakeProcs) DeleteItem(_ context.Context, itemID uuid.UUID, _ string) error {
	return f.record(procedures.ProcDeleteItem, itemID)
}

func (f *fakeProcs) ChangeAdminPIN(_ context.Context, p procedures.ChangeAdminPIN) error {
	return f.record(procedures.ProcChangeAdminPIN, p)
}

func (f *fakeProcs) AddStaffName(_ context.Context, name, _ string) error {
	return f.record(procedures.ProcAddStaffName, name)
}

func (f *fakeProcs) DeleteStaffName(_ context.Context, name, _ string) error {
	return f.record(procedures.ProcDeleteStaffName, name)
}

func (f *fakeProcs) AddSubcategory(_ context.Context, parentID uuid.UUID, name, _ string) error {
	return f.record(procedures.ProcAddSubcategory, name)
}

func (f *fakeProcs) DeactivateSubcategory(_ context.Context, subcategoryID uuid.UUID, _ string) error {
	return f.record(procedures.ProcDeactivateSubcat, subcategoryID)
}

func (f *fakeProcs) LinkBarcode(_ context.Context, p procedures.BarcodeLink) error {
	return f.record(procedures.ProcLinkBarcode, p)
}

func (f *fakeProcs) UnlinkBarcode(_ context.Context, p procedures.BarcodeLink) error {
	return f.record(procedures.ProcUnlinkBarcode, p)
}

func (f *fakeProcs) ConsumeStock(_ context.Context, p procedures.ConsumeStock) error {
	return f.record(procedures.ProcConsumeStockWithUID, p)
}

func (f *fakeProcs) LookupBarcode(_ context.Context, code string) ([]byte, error) {
	f.calls = append(f.calls, procedures.ProcLookupBarcode)
	return f.lookup, f.err
}

// fakeVerifier implements PINVerifier with a fixed PIN, or a fixed error.
type fakeVerifier struct {
	pin   string
	err   error
	calls int
}

func (f *fakeVerifier) Verify(candidate string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	if candidate != f.pin {
		return pin.ErrInvalid
	}
	return nil
}

// fakePdfs implements PdfRepository in memory.
type fakePdfs struct {
	docs        map[int64]*models.PdfDocument
	nextID      int64
	listErr     error
	created     []models.PdfDocument
	deactivated []int64
}

func newFakePdfs(docs ...models.PdfDocument) *fakePdfs {
	f := &fakePdfs{docs: map[int64]*models.PdfDocument{}, nextID: 100}
	for i := range docs {
		d := docs[i]
		f.docs[d.ID] = &d
	}
	return f
}

func (f *fakePdfs) ListActive() ([]models.PdfDocument, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.PdfDocument{}
	for _, d := range f.docs {
		if d.IsActive {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakePdfs) Create(title, storagePath, publicURL string) (*models.PdfDocument, error) {
	f.nextID++
	d := models.PdfDocument{
		ID: f.nextID, Title: title, StoragePath: &storagePath, FilePath: &storagePath,
		PublicURL: publicURL, UploadedAt: time.Now(), IsActive: true,
	}
	f.docs[d.ID] = &d
	f.created = append(f.created, d)
	return &d, nil
}

func (f *fakePdfs) FindByID(id int64) (*models.PdfDocument, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakePdfs) Deactivate(id int64) error {
	f.deactivated = append(f.deactivated, id)
	if d, ok := f.docs[id]; ok {
		d.IsActive = false
	}
	return nil
}

// fakeObjects implements ObjectStore in memory.
type fakeObjects struct {
	uploaded  map[string][]byte
	deleted   []string
	deleteErr error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{uploaded: map[string][]byte{}}
}

func (f *fakeObjects) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.uploaded[key] = b
	return nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func (f *fakeObjects) FileURL(key string) string {
	return "https://files.example.com/pdfs/" + key
}

func (f *fakeObjects) KeyFromURL(rawURL string) (string, bool) {
	const prefix = "https://files.example.com/pdfs/"
	if len(rawURL) > len(prefix) && rawURL[:len(prefix)] == prefix {
		return rawURL[len(prefix):], true
	}
	return "", false
}

// fakeSessions implements AdminModeStore.
type fakeSessions struct {
	on    *bool
	err   error
	calls int
}

func (f *fakeSessions) SetAdminMode(_ context.Context, _ http.ResponseWriter, _ *http.Request, on bool) error {
	f.calls++
	f.on = &on
	return f.err
}

// testRenderer parses the embedded templates.
func testRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	rn, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	return rn
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, admin bool) context.Context {
	return middleware.WithSession(ctx, &session.Data{AdminMode: admin, CreatedAt: time.Now()})
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
