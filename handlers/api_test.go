package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sbfarm.id/api/config"
	"sbfarm.id/api/models"
	"sbfarm.id/api/routes"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func setupAPI(t *testing.T) *mux.Router {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrations(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := config.SeedRoles(db); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	config.DB = db

	r := mux.NewRouter()
	routes.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r *mux.Router, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %s %s: %v (body %s)", method, path, err, rec.Body.String())
		}
	}
	return rec, resp
}

func registerAndLogin(t *testing.T, r *mux.Router) string {
	t.Helper()
	rec, _ := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]any{
		"username": "petani",
		"email":    "petani@sbfarm.id",
		"password": "rahasia1",
		"nama":     "Petani Satu",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec, resp := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]any{
		"username": "petani",
		"password": "rahasia1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil || data.Token == "" {
		t.Fatalf("login returned no token: %s", rec.Body.String())
	}
	return data.Token
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	r := setupAPI(t)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/register", "", map[string]any{
		"username": "x",
		"email":    "not-an-email",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid register status = %d", rec.Code)
	}
	if resp.Errors["password"] == "" || resp.Errors["email"] == "" {
		t.Errorf("expected field errors for password and email, got %v", resp.Errors)
	}

	ok := map[string]any{
		"username": "petani",
		"email":    "petani@sbfarm.id",
		"password": "rahasia1",
		"nama":     "Petani Satu",
	}
	if rec, _ := doJSON(t, r, http.MethodPost, "/api/register", "", ok); rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec, resp = doJSON(t, r, http.MethodPost, "/api/register", "", ok)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate register status = %d", rec.Code)
	}
	if resp.Errors["username"] == "" {
		t.Errorf("expected username taken error, got %v", resp.Errors)
	}
}

func TestLoginAndMe(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	rec, _ := doJSON(t, r, http.MethodPost, "/api/login", "", map[string]any{
		"username": "petani",
		"password": "salah",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	rec, resp := doJSON(t, r, http.MethodGet, "/api/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", rec.Code, rec.Body.String())
	}
	var me struct {
		Username    string   `json:"username"`
		Roles       []string `json:"roles"`
		Permissions []string `json:"permissions"`
	}
	if err := json.Unmarshal(resp.Data, &me); err != nil {
		t.Fatal(err)
	}
	if me.Username != "petani" {
		t.Errorf("me username = %q", me.Username)
	}
	if len(me.Roles) != 1 || me.Roles[0] != "user" {
		t.Errorf("me roles = %v, want [user]", me.Roles)
	}
	hasAreas := false
	hasUsers := false
	for _, p := range me.Permissions {
		if p == "manage_areas" {
			hasAreas = true
		}
		if p == "manage_users" {
			hasUsers = true
		}
	}
	if !hasAreas || hasUsers {
		t.Errorf("me permissions = %v, want manage_areas without manage_users", me.Permissions)
	}

	// inactive accounts cannot log in
	if err := config.DB.Model(&models.User{}).Where("username = ?", "petani").
		Update("status", "nonaktif").Error; err != nil {
		t.Fatal(err)
	}
	rec, _ = doJSON(t, r, http.MethodPost, "/api/login", "", map[string]any{
		"username": "petani",
		"password": "rahasia1",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("inactive login status = %d, want 401", rec.Code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupAPI(t)

	rec, _ := doJSON(t, r, http.MethodGet, "/api/area-kebun", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rec.Code)
	}

	rec, _ = doJSON(t, r, http.MethodGet, "/api/area-kebun", "not-a-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", rec.Code)
	}
}

func TestAreaKebunLifecycle(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/area-kebun", token, map[string]any{
		"nama_area": "Area A",
		"luas_m2":   120.5,
		"status":    "aktif",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var area models.AreaKebun
	if err := json.Unmarshal(resp.Data, &area); err != nil {
		t.Fatal(err)
	}
	if area.ID == 0 || area.NamaArea != "Area A" {
		t.Fatalf("created area = %+v", area)
	}

	// the create is audited
	var audits int64
	config.DB.Model(&models.ActivityLog{}).
		Where("action = ? AND table_name = ?", "create", "area_kebun").
		Count(&audits)
	if audits != 1 {
		t.Errorf("audit rows after create = %d, want 1", audits)
	}

	// duplicate name rejected
	rec, resp = doJSON(t, r, http.MethodPost, "/api/area-kebun", token, map[string]any{
		"nama_area": "Area A",
		"status":    "aktif",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate status = %d", rec.Code)
	}
	if resp.Errors["nama_area"] == "" {
		t.Errorf("expected nama_area error, got %v", resp.Errors)
	}

	// update snapshots old and new state
	rec, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/area-kebun/%d", area.ID), token, map[string]any{
		"nama_area": "Area A1",
		"status":    "tidak_aktif",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}
	var updateLog models.ActivityLog
	if err := config.DB.Where("action = ? AND table_name = ?", "update", "area_kebun").
		First(&updateLog).Error; err != nil {
		t.Fatalf("update audit row missing: %v", err)
	}
	if len(updateLog.Snapshot) == 0 {
		t.Error("update audit row has no old/new snapshot")
	}

	// delete guard while a batch references the area
	rec, _ = doJSON(t, r, http.MethodPost, "/api/data-sayur", token, map[string]any{
		"tanggal_tanam": "2025-04-01",
		"jenis_sayur":   "selada",
		"area_id":       area.ID,
		"jumlah_bibit":  100,
		"status_panen":  "belum_panen",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create batch status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec, resp = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/area-kebun/%d", area.ID), token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("guarded delete status = %d, want 400", rec.Code)
	}
	if resp.Success {
		t.Error("guarded delete must not report success")
	}

	// unknown id is a 404
	rec, _ = doJSON(t, r, http.MethodGet, "/api/area-kebun/9999", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing area status = %d, want 404", rec.Code)
	}
}

func TestAreaKebunListPagination(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	for i := 1; i <= 3; i++ {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/area-kebun", token, map[string]any{
			"nama_area": fmt.Sprintf("Area %d", i),
			"status":    "aktif",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, rec.Code)
		}
	}

	rec, resp := doJSON(t, r, http.MethodGet, "/api/area-kebun?page=1&per_page=2", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var page struct {
		Items   []models.AreaKebun `json:"items"`
		Total   int64              `json:"total"`
		Page    int                `json:"page"`
		PerPage int                `json:"per_page"`
	}
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 3 || len(page.Items) != 2 || page.PerPage != 2 {
		t.Errorf("page = total %d items %d per_page %d, want 3/2/2", page.Total, len(page.Items), page.PerPage)
	}

	rec, resp = doJSON(t, r, http.MethodGet, "/api/area-kebun?page=2&per_page=2", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list page 2 status = %d", rec.Code)
	}
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 {
		t.Errorf("page 2 items = %d, want 1", len(page.Items))
	}
}

func TestPenjualanSayurComputesTotal(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/penjualan-sayur", token, map[string]any{
		"tanggal_penjualan": "2025-05-02",
		"nama_pembeli":      "Restoran Sehat",
		"tipe_pembeli":      "restoran",
		"jenis_sayur":       "pakcoy",
		"jumlah_kg":         12.5,
		"harga_per_kg":      8000,
		"total_harga":       1, // ignored
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create sale status = %d, body %s", rec.Code, rec.Body.String())
	}
	var sale models.PenjualanSayur
	if err := json.Unmarshal(resp.Data, &sale); err != nil {
		t.Fatal(err)
	}
	if sale.TotalHarga != 12.5*8000 {
		t.Errorf("total_harga = %v, want %v", sale.TotalHarga, 12.5*8000)
	}

	rec, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/penjualan-sayur/%d", sale.ID), token, map[string]any{
		"tanggal_penjualan": "2025-05-02",
		"nama_pembeli":      "Restoran Sehat",
		"tipe_pembeli":      "restoran",
		"jenis_sayur":       "pakcoy",
		"jumlah_kg":         10,
		"harga_per_kg":      9000,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update sale status = %d, body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(resp.Data, &sale); err != nil {
		t.Fatal(err)
	}
	if sale.TotalHarga != 90000 {
		t.Errorf("updated total_harga = %v, want 90000", sale.TotalHarga)
	}
}

func TestPenjualanDetailBatchUniquePair(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/area-kebun", token, map[string]any{
		"nama_area": "Area A", "status": "aktif",
	})
	if rec.Code != http.StatusCreated {
		t.Fatal("area create failed")
	}
	var area models.AreaKebun
	json.Unmarshal(resp.Data, &area)

	rec, resp = doJSON(t, r, http.MethodPost, "/api/data-sayur", token, map[string]any{
		"tanggal_tanam": "2025-03-01",
		"jenis_sayur":   "bayam",
		"area_id":       area.ID,
		"jumlah_bibit":  200,
		"status_panen":  "panen_sukses",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("batch create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var batch models.DataSayur
	json.Unmarshal(resp.Data, &batch)

	rec, resp = doJSON(t, r, http.MethodPost, "/api/penjualan-sayur", token, map[string]any{
		"tanggal_penjualan": "2025-05-02",
		"nama_pembeli":      "Pasar Induk",
		"tipe_pembeli":      "pasar",
		"jenis_sayur":       "bayam",
		"jumlah_kg":         5,
		"harga_per_kg":      6000,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("sale create status = %d", rec.Code)
	}
	var sale models.PenjualanSayur
	json.Unmarshal(resp.Data, &sale)

	alloc := map[string]any{
		"penjualan_id":  sale.ID,
		"data_sayur_id": batch.ID,
		"qty_kg":        5,
	}
	rec, _ = doJSON(t, r, http.MethodPost, "/api/penjualan-detail-batch", token, alloc)
	if rec.Code != http.StatusCreated {
		t.Fatalf("allocation create status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec, resp = doJSON(t, r, http.MethodPost, "/api/penjualan-detail-batch", token, alloc)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("duplicate allocation status = %d, want 422", rec.Code)
	}
	if resp.Success {
		t.Error("duplicate allocation must not report success")
	}
}

func TestNutrisiPupukDetailLifecycle(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/area-kebun", token, map[string]any{
		"nama_area": "Greenhouse 1", "status": "aktif",
	})
	if rec.Code != http.StatusCreated {
		t.Fatal("area create failed")
	}
	var area models.AreaKebun
	json.Unmarshal(resp.Data, &area)

	var tandonIDs []uint
	for i := 1; i <= 2; i++ {
		rec, resp = doJSON(t, r, http.MethodPost, "/api/tandon", token, map[string]any{
			"area_id":     area.ID,
			"kode_tandon": fmt.Sprintf("T-%d", i),
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("tandon create status = %d, body %s", rec.Code, rec.Body.String())
		}
		var tandon models.Tandon
		json.Unmarshal(resp.Data, &tandon)
		tandonIDs = append(tandonIDs, tandon.ID)
	}

	rec, resp = doJSON(t, r, http.MethodPost, "/api/nutrisi-pupuk", token, map[string]any{
		"tanggal_pencatatan": "2025-06-10",
		"area_id":            area.ID,
		"details": []map[string]any{
			{"tandon_id": tandonIDs[0], "ppm": 900, "ph": 6.1},
			{"tandon_id": tandonIDs[1], "ppm": 950, "ph": 6.0},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("mix create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var mix models.NutrisiPupuk
	json.Unmarshal(resp.Data, &mix)
	if !mix.HasDetail {
		t.Error("has_detail should be true when details were supplied")
	}
	if len(mix.Details) != 2 {
		t.Errorf("details = %d, want 2", len(mix.Details))
	}

	// update replaces the detail rows wholesale
	rec, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/nutrisi-pupuk/%d", mix.ID), token, map[string]any{
		"tanggal_pencatatan": "2025-06-10",
		"area_id":            area.ID,
		"details": []map[string]any{
			{"tandon_id": tandonIDs[0], "ppm": 1000},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("mix update status = %d, body %s", rec.Code, rec.Body.String())
	}
	json.Unmarshal(resp.Data, &mix)
	if len(mix.Details) != 1 {
		t.Errorf("details after replace = %d, want 1", len(mix.Details))
	}

	var detailCount int64
	config.DB.Model(&models.NutrisiPupukDetail{}).
		Where("nutrisi_pupuk_id = ?", mix.ID).
		Count(&detailCount)
	if detailCount != 1 {
		t.Errorf("stored detail rows = %d, want 1", detailCount)
	}

	// update without details clears the flag
	rec, resp = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/nutrisi-pupuk/%d", mix.ID), token, map[string]any{
		"tanggal_pencatatan": "2025-06-10",
		"area_id":            area.ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("mix clear status = %d", rec.Code)
	}
	json.Unmarshal(resp.Data, &mix)
	if mix.HasDetail {
		t.Error("has_detail should be false after details were removed")
	}
}

func TestBelanjaModalSeedDetails(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	// seed lines on a non-seed category are rejected
	rec, _ := doJSON(t, r, http.MethodPost, "/api/belanja-modal", token, map[string]any{
		"tanggal_belanja": "2025-07-01",
		"kategori":        "listrik",
		"deskripsi":       "token listrik",
		"jumlah":          250000,
		"pembelian_benih": []map[string]any{
			{"nama_benih": "selada", "qty": 10, "unit": "gram"},
		},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("seed lines on listrik status = %d, want 422", rec.Code)
	}

	rec, resp := doJSON(t, r, http.MethodPost, "/api/belanja-modal", token, map[string]any{
		"tanggal_belanja": "2025-07-01",
		"kategori":        "benih",
		"deskripsi":       "belanja benih bulanan",
		"jumlah":          150000,
		"pembelian_benih": []map[string]any{
			{"nama_benih": "selada", "qty": 10, "unit": "gram", "harga_per_unit": 5000},
			{"nama_benih": "pakcoy", "qty": 3, "unit": "pak"},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expense create status = %d, body %s", rec.Code, rec.Body.String())
	}
	var expense models.BelanjaModal
	json.Unmarshal(resp.Data, &expense)
	if len(expense.PembelianBenih) != 2 {
		t.Errorf("seed lines = %d, want 2", len(expense.PembelianBenih))
	}

	rec, resp = doJSON(t, r, http.MethodGet, "/api/belanja-modal/kategori", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("kategori status = %d", rec.Code)
	}
	var kategori []string
	json.Unmarshal(resp.Data, &kategori)
	if len(kategori) != len(models.BelanjaKategori) {
		t.Errorf("kategori = %v", kategori)
	}
}

func TestJenisPupukDeleteGuard(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/jenis-pupuk", token, map[string]any{
		"nama_pupuk": "AB Mix", "status": "aktif",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("jenis pupuk create status = %d", rec.Code)
	}
	var jp models.JenisPupuk
	json.Unmarshal(resp.Data, &jp)

	rec, _ = doJSON(t, r, http.MethodPost, "/api/pencatatan-pupuk", token, map[string]any{
		"tanggal":        "2025-08-01",
		"jenis_pupuk_id": jp.ID,
		"jumlah_pupuk":   2.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("pencatatan create status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/jenis-pupuk/%d", jp.ID), token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("guarded delete status = %d, want 400", rec.Code)
	}

	// referencing a missing type is a validation error
	rec, resp = doJSON(t, r, http.MethodPost, "/api/pencatatan-pupuk", token, map[string]any{
		"tanggal":        "2025-08-01",
		"jenis_pupuk_id": 9999,
		"jumlah_pupuk":   1,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing fk status = %d, want 422", rec.Code)
	}
	if resp.Errors["jenis_pupuk_id"] == "" {
		t.Errorf("expected jenis_pupuk_id error, got %v", resp.Errors)
	}
}

func TestSeedLogSatuanAndFilters(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	for _, satuan := range []string{"tray", "hampan", "gram", "lainnya"} {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/seed-log", token, map[string]any{
			"tanggal_semai": "2025-07-01",
			"nama_benih":    "Pakcoy Nauli",
			"varietas":      "nauli",
			"satuan":        satuan,
			"jumlah":        3,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create with satuan %q status = %d, body %s", satuan, rec.Code, rec.Body.String())
		}
	}

	rec, resp := doJSON(t, r, http.MethodPost, "/api/seed-log", token, map[string]any{
		"tanggal_semai": "2025-07-01",
		"nama_benih":    "Pakcoy Nauli",
		"satuan":        "karung",
		"jumlah":        3,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown satuan status = %d, want 422", rec.Code)
	}
	if resp.Errors["satuan"] == "" {
		t.Errorf("expected satuan error, got %v", resp.Errors)
	}

	var page struct {
		Items []models.SeedLog `json:"items"`
		Total int64            `json:"total"`
	}
	rec, resp = doJSON(t, r, http.MethodGet, "/api/seed-log?satuan=tray", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by satuan status = %d", rec.Code)
	}
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Satuan != "tray" {
		t.Errorf("satuan filter = total %d items %d, want exactly the tray row", page.Total, len(page.Items))
	}

	rec, resp = doJSON(t, r, http.MethodGet, "/api/seed-log?varietas=nau", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by varietas status = %d", rec.Code)
	}
	if err := json.Unmarshal(resp.Data, &page); err != nil {
		t.Fatal(err)
	}
	if page.Total != 4 {
		t.Errorf("varietas filter total = %d, want 4", page.Total)
	}
}

func TestNutrisiPupukKondisiCuacaEnum(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/area-kebun", token, map[string]any{
		"nama_area": "Greenhouse 2", "status": "aktif",
	})
	if rec.Code != http.StatusCreated {
		t.Fatal("area create failed")
	}
	var area models.AreaKebun
	json.Unmarshal(resp.Data, &area)

	rec, resp = doJSON(t, r, http.MethodPost, "/api/nutrisi-pupuk", token, map[string]any{
		"tanggal_pencatatan": "2025-06-11",
		"area_id":            area.ID,
		"kondisi_cuaca":      "gerimis",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown kondisi_cuaca status = %d, want 422", rec.Code)
	}
	if resp.Errors["kondisi_cuaca"] == "" {
		t.Errorf("expected kondisi_cuaca error, got %v", resp.Errors)
	}

	rec, _ = doJSON(t, r, http.MethodPost, "/api/nutrisi-pupuk", token, map[string]any{
		"tanggal_pencatatan": "2025-06-11",
		"area_id":            area.ID,
		"kondisi_cuaca":      "mendung",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("valid kondisi_cuaca status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestAreaSummaryStatusKeys(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	for i, status := range []string{"aktif", "aktif", "tidak_aktif"} {
		rec, _ := doJSON(t, r, http.MethodPost, "/api/area-kebun", token, map[string]any{
			"nama_area": fmt.Sprintf("Blok %d", i+1),
			"status":    status,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, rec.Code)
		}
	}

	rec, resp := doJSON(t, r, http.MethodGet, "/api/area-kebun/summary", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d, body %s", rec.Code, rec.Body.String())
	}
	var summary struct {
		TotalArea           int64 `json:"total_area"`
		TotalAreaAktif      int64 `json:"total_area_aktif"`
		TotalAreaTidakAktif int64 `json:"total_area_tidak_aktif"`
	}
	if err := json.Unmarshal(resp.Data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.TotalArea != 3 || summary.TotalAreaAktif != 2 || summary.TotalAreaTidakAktif != 1 {
		t.Errorf("summary = %d/%d/%d, want 3/2/1", summary.TotalArea, summary.TotalAreaAktif, summary.TotalAreaTidakAktif)
	}
}

func TestPenjualanSayurAllowsZeroAmounts(t *testing.T) {
	r := setupAPI(t)
	token := registerAndLogin(t, r)

	rec, resp := doJSON(t, r, http.MethodPost, "/api/penjualan-sayur", token, map[string]any{
		"tanggal_penjualan": "2025-05-03",
		"nama_pembeli":      "Panti Asuhan Kasih",
		"tipe_pembeli":      "lainnya",
		"jenis_sayur":       "selada",
		"jumlah_kg":         2,
		"harga_per_kg":      0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("zero-priced sale status = %d, body %s", rec.Code, rec.Body.String())
	}
	var sale models.PenjualanSayur
	if err := json.Unmarshal(resp.Data, &sale); err != nil {
		t.Fatal(err)
	}
	if sale.TotalHarga != 0 {
		t.Errorf("total_harga = %v, want 0", sale.TotalHarga)
	}

	rec, resp = doJSON(t, r, http.MethodPost, "/api/penjualan-sayur", token, map[string]any{
		"tanggal_penjualan": "2025-05-03",
		"nama_pembeli":      "Pasar Induk",
		"tipe_pembeli":      "pasar",
		"jenis_sayur":       "selada",
		"harga_per_kg":      5000,
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing jumlah_kg status = %d, want 422", rec.Code)
	}
	if resp.Errors["jumlah_kg"] == "" {
		t.Errorf("expected jumlah_kg error, got %v", resp.Errors)
	}
}
