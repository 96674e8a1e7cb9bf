package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jengzang/hotel-bookings-go/internal/models"
)

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestCacheMemoizesBySourceVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel_bookings.csv")
	writeSource(t, path, bookingsCSV)

	var reports []models.LoadReport
	cache := NewCache(path, WithLoadHook(func(r models.LoadReport) {
		reports = append(reports, r)
	}))

	first, err := cache.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := cache.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if first != second {
		t.Errorf("unchanged source should return the cached table")
	}
	if cache.Loads() != 1 || len(reports) != 1 {
		t.Fatalf("loads = %d, hook calls = %d, want 1 and 1", cache.Loads(), len(reports))
	}
	if reports[0].SizeBytes != int64(len(bookingsCSV)) {
		t.Errorf("report size = %d, want %d", reports[0].SizeBytes, len(bookingsCSV))
	}

	// A different size changes the source key even within one mtime tick
	writeSource(t, path, bookingsCSV+"City Hotel,0,3,2017,June,25,15,1,1,2,0,0,BB,PRT,Direct,70\n")
	third, err := cache.Get()
	if err != nil {
		t.Fatalf("Get after change failed: %v", err)
	}
	if third == first || third.Len() != first.Len()+1 {
		t.Errorf("changed source should reload, got len %d", third.Len())
	}

	cache.Invalidate()
	if cache.Cached() {
		t.Errorf("Cached() should be false after Invalidate")
	}
	if err := cache.Refresh(); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if cache.Loads() != 3 || len(reports) != 3 {
		t.Errorf("loads = %d, hook calls = %d, want 3 and 3", cache.Loads(), len(reports))
	}
}

func TestCacheFailedReloadDropsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel_bookings.csv")
	writeSource(t, path, bookingsCSV)

	cache := NewCache(path)
	if _, err := cache.Get(); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	writeSource(t, path, "hotel,adr\nCity Hotel,10\n")
	if table, err := cache.Get(); err == nil || table != nil {
		t.Fatalf("Get on a broken source = (%v, %v), want error and no table", table, err)
	}
	if cache.Cached() {
		t.Errorf("a failed reload must not keep serving the previous table")
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Get(); err == nil {
		t.Errorf("Get on a missing source should fail")
	}
}

func TestMonitorInvalidatesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotel_bookings.csv")
	writeSource(t, path, bookingsCSV)

	cache := NewCache(path)
	if _, err := cache.Get(); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	monitor, err := NewMonitor(cache)
	if err != nil {
		t.Fatalf("NewMonitor failed: %v", err)
	}
	defer monitor.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go monitor.Run(ctx)

	// Unrelated files in the same directory are ignored
	writeSource(t, filepath.Join(dir, "notes.txt"), "hello")
	time.Sleep(100 * time.Millisecond)
	if !cache.Cached() {
		t.Fatalf("writing another file should not invalidate the cache")
	}

	writeSource(t, path, bookingsCSV)
	deadline := time.Now().Add(3 * time.Second)
	for cache.Cached() {
		if time.Now().After(deadline) {
			t.Fatal("cache was not invalidated after the source changed")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestStartRefreshJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotel_bookings.csv")
	writeSource(t, path, bookingsCSV)
	cache := NewCache(path)

	if _, err := StartRefreshJob(cache, 0); err == nil {
		t.Errorf("zero interval should be rejected")
	}

	job, err := StartRefreshJob(cache, time.Second)
	if err != nil {
		t.Fatalf("StartRefreshJob failed: %v", err)
	}
	defer job.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for !cache.Cached() {
		if time.Now().After(deadline) {
			t.Fatal("refresh job never loaded the source")
		}
		time.Sleep(50 * time.Millisecond)
	}
}
