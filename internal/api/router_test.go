package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/hotel-bookings-go/internal/config"
	"github.com/jengzang/hotel-bookings-go/internal/database"
	"github.com/jengzang/hotel-bookings-go/internal/dataset"
	"github.com/jengzang/hotel-bookings-go/internal/handler"
	"github.com/jengzang/hotel-bookings-go/internal/middleware"
	"github.com/jengzang/hotel-bookings-go/internal/repository"
	"github.com/jengzang/hotel-bookings-go/internal/service"
)

const bookingsCSV = "hotel,is_canceled,lead_time,arrival_date_year,arrival_date_month,arrival_date_day_of_month,stays_in_weekend_nights,stays_in_week_nights,adults,children,babies,country,market_segment,adr\n" +
	"City Hotel,1,120,2016,July,1,0,2,2,0,0,PRT,Online TA,100\n" +
	"City Hotel,0,5,2016,July,2,1,2,2,0,0,GBR,Online TA,80\n" +
	"Resort Hotel,0,0,2015,December,24,2,5,2,1,0,PRT,Direct,150\n" +
	"Resort Hotel,1,200,2017,February,30,0,1,1,0,0,ESP,Groups,60\n"

const testSecret = "router-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, dataPath string) *gin.Engine {
	t.Helper()

	db, err := database.Open(database.Config{Path: database.MemoryPath})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.NewMigrationManager(db).RunMigrations(); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	loads := repository.NewLoadRepository(db)
	cache := dataset.NewCache(dataPath, dataset.WithLoadHook(service.LoadRecorder(loads)))
	dashboard := service.NewDashboardService(cache, loads, 2)

	cfg := &config.Config{SampleSize: 2, AdminJWTSecret: testSecret}
	return SetupRouter(cfg, Handlers{
		Dashboard: handler.NewDashboardHandler(dashboard, service.NewExportService(dashboard)),
		Admin:     handler.NewAdminHandler(dashboard),
	})
}

func writeBookings(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotel_bookings.csv")
	if err := os.WriteFile(path, []byte(bookingsCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func do(t *testing.T, r *gin.Engine, method, target, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v", target, err)
		}
	}
	return w, env
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, writeBookings(t))
	w, _ := do(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	r := newTestRouter(t, writeBookings(t))

	w, env := do(t, r, http.MethodGet, "/api/v1/dashboard?hotel=City+Hotel&year=All", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var d struct {
		TotalRows    int                        `json:"total_rows"`
		FilteredRows int                        `json:"filtered_rows"`
		Charts       map[string]json.RawMessage `json:"charts"`
		Sample       []json.RawMessage          `json:"sample"`
	}
	if err := json.Unmarshal(env.Data, &d); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if d.TotalRows != 4 || d.FilteredRows != 2 {
		t.Errorf("rows = %d/%d, want 2/4", d.FilteredRows, d.TotalRows)
	}
	if _, ok := d.Charts["lead_time"]; !ok {
		t.Errorf("lead_time chart missing")
	}
	if len(d.Sample) != 2 {
		t.Errorf("sample has %d rows, want 2", len(d.Sample))
	}
}

func TestFilterValidation(t *testing.T) {
	r := newTestRouter(t, writeBookings(t))

	w, _ := do(t, r, http.MethodGet, "/api/v1/kpis?year=twenty", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid year status = %d, want 400", w.Code)
	}

	w, env := do(t, r, http.MethodGet, "/api/v1/kpis?country=ZZZ", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unknown country status = %d, want 200", w.Code)
	}
	var summary struct {
		FilteredRows int `json:"filtered_rows"`
	}
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode kpis: %v", err)
	}
	if summary.FilteredRows != 0 {
		t.Errorf("unknown country matched %d rows", summary.FilteredRows)
	}
}

func TestChartEndpoints(t *testing.T) {
	r := newTestRouter(t, writeBookings(t))

	w, env := do(t, r, http.MethodGet, "/api/v1/charts/countries", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var chart struct {
		Name string `json:"name"`
		Data []struct {
			Country string `json:"country"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &chart); err != nil {
		t.Fatalf("decode chart: %v", err)
	}
	if chart.Name != "countries" || len(chart.Data) != 3 || chart.Data[0].Country != "PRT" {
		t.Errorf("unexpected chart: %+v", chart)
	}

	w, _ = do(t, r, http.MethodGet, "/api/v1/charts/pie", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown chart status = %d, want 404", w.Code)
	}

	for _, path := range []string{"/api/v1/charts", "/api/v1/insights", "/api/v1/filters", "/api/v1/bookings/sample?limit=1"} {
		if w, _ := do(t, r, http.MethodGet, path, ""); w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
		}
	}
}

func TestExportEndpoint(t *testing.T) {
	r := newTestRouter(t, writeBookings(t))

	w, _ := do(t, r, http.MethodGet, "/api/v1/export.xlsx?hotel=Resort+Hotel", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Errorf("content type = %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Errorf("empty workbook")
	}
}

func TestMissingDatasetIsUnavailable(t *testing.T) {
	r := newTestRouter(t, filepath.Join(t.TempDir(), "missing.csv"))

	w, env := do(t, r, http.MethodGet, "/api/v1/dashboard", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if env.Error == "" || len(env.Data) != 0 {
		t.Errorf("load failure should carry an error and no data: %+v", env)
	}
}

func TestAdminEndpoints(t *testing.T) {
	r := newTestRouter(t, writeBookings(t))

	if w, _ := do(t, r, http.MethodPost, "/api/v1/admin/reload", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("reload without token status = %d, want 401", w.Code)
	}

	token, err := middleware.IssueAdminToken(testSecret, "ops", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	w, env := do(t, r, http.MethodPost, "/api/v1/admin/reload", token)
	if w.Code != http.StatusOK {
		t.Fatalf("reload status = %d: %s", w.Code, w.Body.String())
	}
	var report struct {
		RowsRead     int `json:"rows_read"`
		RowsRetained int `json:"rows_retained"`
	}
	if err := json.Unmarshal(env.Data, &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.RowsRead != 4 || report.RowsRetained != 4 {
		t.Errorf("unexpected report: %+v", report)
	}

	w, env = do(t, r, http.MethodGet, "/api/v1/admin/loads?limit=5", token)
	if w.Code != http.StatusOK {
		t.Fatalf("loads status = %d", w.Code)
	}
	var history struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if history.Total != 1 {
		t.Errorf("recorded loads = %d, want 1", history.Total)
	}
}
