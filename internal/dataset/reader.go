package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jengzang/hotel-bookings-go/internal/models"
)

// Source column names
const (
	ColHotel         = "hotel"
	ColIsCanceled    = "is_canceled"
	ColLeadTime      = "lead_time"
	ColArrivalYear   = "arrival_date_year"
	ColArrivalMonth  = "arrival_date_month"
	ColArrivalDay    = "arrival_date_day_of_month"
	ColWeekendNights = "stays_in_weekend_nights"
	ColWeekNights    = "stays_in_week_nights"
	ColAdults        = "adults"
	ColChildren      = "children"
	ColBabies        = "babies"
	ColADR           = "adr"
	ColCountry       = "country"
	ColMarketSegment = "market_segment"
)

// RequiredColumns is the fixed source schema; extra columns are ignored
var RequiredColumns = []string{
	ColHotel, ColIsCanceled, ColLeadTime,
	ColArrivalYear, ColArrivalMonth, ColArrivalDay,
	ColWeekendNights, ColWeekNights,
	ColAdults, ColChildren, ColBabies,
	ColADR, ColCountry, ColMarketSegment,
}

// naValues are the cell values read as missing
var naValues = []string{"", "NA", "NaN", "NULL", "null", "N/A", "n/a", "nan", "#N/A"}

var (
	// ErrMissingColumns is returned when the source lacks a required column
	ErrMissingColumns = errors.New("missing required columns")
	// ErrEmptySource is returned when the source holds no data rows
	ErrEmptySource = errors.New("source contains no booking rows")
)

// LoadError is a file-level load failure. It is fatal for the dashboard.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads and derives the booking table at path
func Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Source: path, Err: fmt.Errorf("%s is a directory", path)}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()

	table, err := LoadReader(f, path)
	if err != nil {
		return nil, err
	}

	table.report.ModTime = info.ModTime()
	table.report.SizeBytes = info.Size()
	return table, nil
}

// LoadReader parses a booking CSV from r. source only names the input in errors and reports.
func LoadReader(r io.Reader, source string) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("failed to read source: %w", err)}
	}
	if dataLines(data) == 0 {
		return nil, &LoadError{Source: source, Err: ErrEmptySource}
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("failed to parse csv: %w", df.Err)}
	}

	header := headerIndex(df.Names())
	if missing := missingColumns(header); len(missing) > 0 {
		return nil, &LoadError{
			Source: source,
			Err:    fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", ")),
		}
	}

	cols := make(map[string]series.Series, len(RequiredColumns))
	for _, name := range RequiredColumns {
		col := df.Col(header[name])
		if col.Err != nil {
			return nil, &LoadError{Source: source, Err: fmt.Errorf("failed to read column %s: %w", name, col.Err)}
		}
		cols[name] = col
	}

	builder := newTableBuilder(source, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		booking, missingGuests, err := parseRow(csvRow{cols: cols, index: i})
		if err != nil {
			builder.malformed()
			continue
		}
		if missingGuests {
			builder.report.MissingGuestCounts++
		}
		builder.add(booking)
	}

	return builder.build(time.Now()), nil
}

// dataLines counts the non-blank lines after the header
func dataLines(data []byte) int {
	n := 0
	for _, line := range bytes.Split(data, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	if n > 0 {
		n--
	}
	return n
}

// headerIndex maps trimmed column names to the names gota read from the header
func headerIndex(names []string) map[string]string {
	index := make(map[string]string, len(names))
	for _, n := range names {
		trimmed := strings.TrimSpace(n)
		if _, ok := index[trimmed]; !ok {
			index[trimmed] = n
		}
	}
	return index
}

func missingColumns(header map[string]string) []string {
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// parseRow converts one CSV row into a raw booking. missingGuests reports that
// children or babies were absent and counted as zero.
func parseRow(r csvRow) (b models.Booking, missingGuests bool, err error) {
	hotel, _ := r.text(ColHotel)
	if b.Hotel, err = models.ParseHotel(hotel); err != nil {
		return b, false, err
	}

	month, _ := r.text(ColArrivalMonth)
	if b.ArrivalMonth, err = models.ParseMonth(month); err != nil {
		return b, false, err
	}

	if b.IsCanceled, err = r.flag(ColIsCanceled); err != nil {
		return b, false, err
	}

	ints := []struct {
		col string
		dst *int
	}{
		{ColLeadTime, &b.LeadTime},
		{ColWeekendNights, &b.StaysInWeekendNights},
		{ColWeekNights, &b.StaysInWeekNights},
		{ColAdults, &b.Adults},
	}
	for _, f := range ints {
		if *f.dst, err = r.integer(f.col); err != nil {
			return b, false, err
		}
	}

	// A year or day that does not parse leaves the arrival date null, the row stays
	b.ArrivalYear, _ = r.integer(ColArrivalYear)
	b.ArrivalDayOfMonth, _ = r.integer(ColArrivalDay)

	if b.ADR, err = r.number(ColADR); err != nil {
		return b, false, err
	}

	for _, f := range []struct {
		col string
		dst *int
	}{{ColChildren, &b.Children}, {ColBabies, &b.Babies}} {
		if _, ok := r.text(f.col); !ok {
			missingGuests = true
			continue
		}
		if *f.dst, err = r.integer(f.col); err != nil {
			return b, false, err
		}
	}

	b.Country, _ = r.text(ColCountry)
	b.MarketSegment, _ = r.text(ColMarketSegment)
	return b, missingGuests, nil
}

// csvRow reads typed cells of one DataFrame row
type csvRow struct {
	cols  map[string]series.Series
	index int
}

func (r csvRow) text(col string) (string, bool) {
	e := r.cols[col].Elem(r.index)
	if e.IsNA() {
		return "", false
	}
	s := strings.TrimSpace(e.String())
	return s, s != ""
}

func (r csvRow) integer(col string) (int, error) {
	s, ok := r.text(col)
	if !ok {
		return 0, fmt.Errorf("row %d: %s is missing", r.index, col)
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	// Columns holding NA are often exported as floats ("2.0")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("row %d: %s=%q is not an integer", r.index, col, s)
	}
	return int(f), nil
}

func (r csvRow) number(col string) (float64, error) {
	s, ok := r.text(col)
	if !ok {
		return 0, fmt.Errorf("row %d: %s is missing", r.index, col)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("row %d: %s=%q is not a number", r.index, col, s)
	}
	return f, nil
}

func (r csvRow) flag(col string) (bool, error) {
	s, ok := r.text(col)
	if !ok {
		return false, fmt.Errorf("row %d: %s is missing", r.index, col)
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v, nil
	}
	n, err := r.integer(col)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}
