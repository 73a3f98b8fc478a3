package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"equitybridge/server/config"
	"equitybridge/server/internal/models"
	"equitybridge/server/internal/queue"
)

var reportMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Importer streams CSV archives of index observations into the batch queue.
// Expected columns: area_name, property_category, report_month, hpi_index
// and optionally benchmark_price. Column order follows the header row.
type Importer struct {
	queue     *queue.IndexQueue
	batchSize int
	logger    *logrus.Logger
}

func NewImporter(q *queue.IndexQueue, batchSize int, logger *logrus.Logger) *Importer {
	return &Importer{
		queue:     q,
		batchSize: batchSize,
		logger:    logger,
	}
}

// ImportFile reads one archive and pushes its rows in batches. Returns the
// number of rows queued. Rows that fail to parse are logged and skipped;
// a malformed header fails the whole file.
func (i *Importer) ImportFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	for _, required := range []string{"area_name", "property_category", "report_month", "hpi_index"} {
		if _, ok := columns[required]; !ok {
			return 0, fmt.Errorf("missing required column %q", required)
		}
	}

	var batch []*models.IndexRecord
	queued := 0
	line := 1

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			i.logger.WithError(err).WithField("line", line).Warn("Skipping unreadable row")
			continue
		}

		record, err := parseRow(row, columns)
		if err != nil {
			i.logger.WithError(err).WithField("line", line).Warn("Skipping invalid row")
			continue
		}

		batch = append(batch, record)
		if len(batch) >= i.batchSize {
			if err := i.pushBatch(batch); err != nil {
				return queued, err
			}
			queued += len(batch)
			batch = nil
		}
	}

	if len(batch) > 0 {
		if err := i.pushBatch(batch); err != nil {
			return queued, err
		}
		queued += len(batch)
	}

	i.logger.WithFields(logrus.Fields{
		"file": path,
		"rows": queued,
	}).Info("Queued archive for ingestion")
	return queued, nil
}

// pushBatch blocks until the queue accepts the batch, backing off briefly
// while the processors drain it.
func (i *Importer) pushBatch(batch []*models.IndexRecord) error {
	for {
		err := i.queue.Push(batch)
		if err == nil {
			return nil
		}
		if errors.Is(err, queue.ErrQueueFull) {
			time.Sleep(50 * time.Millisecond)
			continue
		}
		return err
	}
}

func parseRow(row []string, columns map[string]int) (*models.IndexRecord, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	// Older archives file areas under district codes; store the modern name.
	areaName := config.NormalizeAreaName(field("area_name"))
	if areaName == "" {
		return nil, errors.New("empty area_name")
	}

	category := config.CanonicalCategory(field("property_category"))
	if category == "" {
		return nil, errors.New("empty property_category")
	}

	reportMonth := field("report_month")
	if !reportMonthPattern.MatchString(reportMonth) {
		return nil, fmt.Errorf("invalid report_month %q", reportMonth)
	}

	indexValue, err := strconv.ParseFloat(field("hpi_index"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid hpi_index: %w", err)
	}
	if indexValue <= 0 {
		return nil, fmt.Errorf("non-positive hpi_index %v", indexValue)
	}

	record := &models.IndexRecord{
		AreaName:         areaName,
		PropertyCategory: category,
		ReportMonth:      reportMonth,
		IndexValue:       indexValue,
	}

	if raw := field("benchmark_price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid benchmark_price: %w", err)
		}
		record.BenchmarkPrice = &price
	}

	return record, nil
}
