package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/jengzang/hotel-bookings-go/internal/analysis"
	"github.com/jengzang/hotel-bookings-go/internal/dataset"
	"github.com/jengzang/hotel-bookings-go/internal/models"
	"github.com/jengzang/hotel-bookings-go/internal/repository"
)

// ErrUnknownChart is returned for a chart name that is not registered
var ErrUnknownChart = errors.New("unknown chart")

// DashboardService computes dashboard views over the cached booking table
type DashboardService struct {
	cache      *dataset.Cache
	loads      *repository.LoadRepository
	sampleSize int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(cache *dataset.Cache, loads *repository.LoadRepository, sampleSize int) *DashboardService {
	return &DashboardService{
		cache:      cache,
		loads:      loads,
		sampleSize: sampleSize,
	}
}

// view loads the current table and applies the filter.
// Load failures are returned as-is so callers can report them without partial data.
func (s *DashboardService) view(filter models.BookingFilter) (*analysis.View, error) {
	table, err := s.cache.Get()
	if err != nil {
		return nil, err
	}
	return analysis.Filter(table, filter), nil
}

// Dashboard computes everything needed to render one interaction
func (s *DashboardService) Dashboard(filter models.BookingFilter) (*models.Dashboard, error) {
	v, err := s.view(filter)
	if err != nil {
		return nil, err
	}

	kpis := analysis.ComputeKPIs(v)
	return &models.Dashboard{
		Filter:       filter,
		TotalRows:    v.Table().Len(),
		FilteredRows: v.Len(),
		KPIs:         kpis,
		KPIDisplay:   FormatKPIs(kpis),
		Charts:       analysis.ComputeCharts(v),
		Insights:     analysis.GenerateInsights(v, kpis),
		Sample:       v.Head(s.sampleSize),
		LoadedAt:     v.Table().Report().LoadedAt,
	}, nil
}

// KPIs computes the headline metrics of a view
func (s *DashboardService) KPIs(filter models.BookingFilter) (*models.KPISummary, error) {
	v, err := s.view(filter)
	if err != nil {
		return nil, err
	}

	kpis := analysis.ComputeKPIs(v)
	return &models.KPISummary{
		Filter:       filter,
		FilteredRows: v.Len(),
		KPIs:         kpis,
		Display:      FormatKPIs(kpis),
	}, nil
}

// Charts computes every registered chart of a view
func (s *DashboardService) Charts(filter models.BookingFilter) (map[string]interface{}, error) {
	v, err := s.view(filter)
	if err != nil {
		return nil, err
	}
	return analysis.ComputeCharts(v), nil
}

// Chart computes a single chart by name
func (s *DashboardService) Chart(name string, filter models.BookingFilter) (interface{}, error) {
	chart, ok := analysis.GetChart(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownChart, name)
	}

	v, err := s.view(filter)
	if err != nil {
		return nil, err
	}
	return chart(v), nil
}

// Insights generates the insight remarks of a view
func (s *DashboardService) Insights(filter models.BookingFilter) ([]string, error) {
	v, err := s.view(filter)
	if err != nil {
		return nil, err
	}
	return analysis.GenerateInsights(v, analysis.ComputeKPIs(v)), nil
}

// Sample returns the first rows of a view, bounded by the configured sample size
func (s *DashboardService) Sample(filter models.BookingFilter, limit int) ([]models.Booking, error) {
	v, err := s.view(filter)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.sampleSize {
		limit = s.sampleSize
	}
	return v.Head(limit), nil
}

// FilterOptions lists the selectable filter values of the loaded table
func (s *DashboardService) FilterOptions() (*models.FilterOptions, error) {
	table, err := s.cache.Get()
	if err != nil {
		return nil, err
	}
	opts := analysis.BuildFilterOptions(table)
	return &opts, nil
}

// LoadHistory returns the most recent load reports
func (s *DashboardService) LoadHistory(limit int) ([]models.LoadReport, error) {
	if s.loads == nil {
		return []models.LoadReport{}, nil
	}
	return s.loads.Recent(limit)
}

// Reload forces a reload of the source and returns its report
func (s *DashboardService) Reload() (*models.LoadReport, error) {
	if err := s.cache.Refresh(); err != nil {
		return nil, err
	}
	table, err := s.cache.Get()
	if err != nil {
		return nil, err
	}

	report := table.Report()
	log.Printf("[Dashboard] Reloaded %s: %d rows", report.Source, report.RowsRetained)
	return &report, nil
}

// LoadRecorder returns a cache load hook that stores every load report
func LoadRecorder(loads *repository.LoadRepository) func(models.LoadReport) {
	return func(report models.LoadReport) {
		if _, err := loads.Record(report); err != nil {
			log.Printf("[Dashboard] Failed to record load of %s: %v", report.Source, err)
		}
	}
}
