package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/moment"
	"github.com/xuri/excelize/v2"
)

const (
	// MaxRows bounds the number of worksheet rows scanned.
	MaxRows = 7000
	// DefaultLookbackDays is the default recency window for bidding dates.
	DefaultLookbackDays = 16
	// registryMark is the ordinal sign some rows put before the number.
	registryMark = "№"
)

// ErrStatusColumnMissing indicates that the status column has no defined
// name, so no row can be recognised as active.
var ErrStatusColumnMissing = errors.New("status column is not defined")

// activeStatuses is the whitelist of in-progress registry states.
var activeStatuses = map[string]bool{
	"идем":      true,
	"допущены":  true,
	"заявлены":  true,
	"выиграли":  true,
	"проиграли": true,
	"расчет":    true,
}

// IsActiveStatus reports whether a status label marks an active row.
func IsActiveStatus(s string) bool {
	return activeStatuses[strings.TrimSpace(s)]
}

// ActiveStatuses returns the recognised active states.
func ActiveStatuses() []string {
	return []string{"идем", "допущены", "заявлены", "выиграли", "проиграли", "расчет"}
}

// RecordOptions controls row filtering and value conversion.
type RecordOptions struct {
	// Zone is appended to every formatted timestamp.
	Zone moment.Zone
	// Combine decides how separate time cells join their date cells.
	Combine moment.CombinePolicy
	// LookbackDays drops rows whose bidding date is older than Today minus
	// this many days. Zero disables the filter.
	LookbackDays int
	// Today is the serial date the look-back window is measured from.
	Today float64
	// MaxRows overrides the row limit when positive.
	MaxRows int
	// Warn receives row-level problems that do not stop extraction.
	Warn func(row int, msg string)
}

// DefaultRecordOptions returns the options used by the registry watcher.
func DefaultRecordOptions() RecordOptions {
	return RecordOptions{
		Zone:         moment.UTC,
		Combine:      moment.CombineSum,
		LookbackDays: DefaultLookbackDays,
	}
}

func (o RecordOptions) rowLimit() int {
	if o.MaxRows > 0 {
		return o.MaxRows
	}
	return MaxRows
}

func (o RecordOptions) warn(row int, format string, args ...any) {
	if o.Warn != nil {
		o.Warn(row, fmt.Sprintf(format, args...))
	}
}

// stale reports whether a bidding serial falls outside the look-back window.
// Rows without a bidding date are never stale.
func (o RecordOptions) stale(bidding float64) bool {
	if o.LookbackDays <= 0 || o.Today <= 0 || bidding <= 0 {
		return false
	}
	return bidding < o.Today-float64(o.LookbackDays)
}

// ExtractRecords scans a worksheet and returns the active purchase records.
// An empty result means no row is active. Rows without a registry number
// are skipped, and only the first row of a duplicated number is kept.
func ExtractRecords(f *excelize.File, sheet string, cols models.ColumnMap, opts RecordOptions) ([]models.Purchase, error) {
	statusCol, ok := cols.Column(models.FieldStatus)
	if !ok {
		return nil, ErrStatusColumnMissing
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reader := newCellReader(f, sheet)
	limit := opts.rowLimit()
	seen := make(map[string]int)

	var result []models.Purchase
	for rowNum := 1; rows.Next(); rowNum++ {
		if rowNum > limit {
			break
		}

		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if !IsActiveStatus(cellAt(cells, statusCol)) {
			continue
		}

		rec := rowRecord{reader: reader, cells: cells, row: rowNum, cols: cols}
		purchase, bidding, err := rec.purchase(opts)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if opts.stale(bidding) {
			continue
		}
		if purchase.RegistryNumber == "" {
			opts.warn(rowNum, "active row has no registry number")
			continue
		}
		if first, dup := seen[purchase.RegistryNumber]; dup {
			opts.warn(rowNum, "registry number %s already seen in row %d", purchase.RegistryNumber, first)
			continue
		}
		seen[purchase.RegistryNumber] = rowNum

		result = append(result, purchase)
	}

	if err := rows.Error(); err != nil {
		return nil, err
	}

	return result, nil
}

// rowRecord reads typed values from one worksheet row.
type rowRecord struct {
	reader *cellReader
	cells  []string
	row    int
	cols   models.ColumnMap
	err    error
}

func (r *rowRecord) cell(field models.Field) (cellKind, string) {
	col, ok := r.cols.Column(field)
	if !ok || r.err != nil {
		return kindEmpty, ""
	}
	kind, raw, err := r.reader.classify(r.cells, col, r.row)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", field, err)
		return kindEmpty, ""
	}
	return kind, raw
}

// text returns the cell text, or "" when the cell is not a string.
func (r *rowRecord) text(field models.Field) string {
	kind, raw := r.cell(field)
	if kind != kindText {
		return ""
	}
	return strings.TrimSpace(raw)
}

// number returns the numeric value, or 0 when the cell is not numeric.
func (r *rowRecord) number(field models.Field) float64 {
	kind, raw := r.cell(field)
	if kind != kindNumber && kind != kindDate {
		return 0
	}
	return parseFloat(raw)
}

// date returns the serial of a date-formatted cell, or 0.
func (r *rowRecord) date(field models.Field) float64 {
	kind, raw := r.cell(field)
	if kind != kindDate {
		return 0
	}
	return parseFloat(raw)
}

// registryNumber accepts text or plain numeric cells and strips the
// leading ordinal sign.
func (r *rowRecord) registryNumber() string {
	kind, raw := r.cell(models.FieldRegistryNumber)
	switch kind {
	case kindText:
	case kindNumber:
		raw = strconv.FormatFloat(parseFloat(raw), 'f', -1, 64)
	default:
		return ""
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, registryMark)
	return strings.TrimSpace(raw)
}

// timestamp joins a date field with its optional time field and formats
// the result. It also returns the combined serial, 0 when missing.
func (r *rowRecord) timestamp(dateField models.Field, timeField models.Field, hasTime bool, opts RecordOptions) (string, float64) {
	serial := r.date(dateField)
	if hasTime {
		serial = moment.Combine(serial, r.number(timeField), opts.Combine)
	}
	s, err := moment.FormatSerial(serial, opts.Zone)
	if err != nil {
		return "", 0
	}
	return s, serial
}

func (r *rowRecord) purchase(opts RecordOptions) (models.Purchase, float64, error) {
	collection, _ := r.timestamp(models.FieldCollectionDate, models.FieldCollectionTime, true, opts)
	approval, _ := r.timestamp(models.FieldApprovalDate, 0, false, opts)
	bidding, biddingSerial := r.timestamp(models.FieldBiddingDate, models.FieldBiddingTime, true, opts)

	p := models.Purchase{
		RegistryNumber:     r.registryNumber(),
		Subject:            r.text(models.FieldSubject),
		Region:             r.text(models.FieldRegion),
		CustomerType:       r.text(models.FieldCustomerType),
		PurchaseForm:       r.text(models.FieldPurchaseForm),
		Platform:           r.text(models.FieldPlatform),
		Participants:       r.text(models.FieldParticipants),
		Winner:             r.text(models.FieldWinner),
		MaxPrice:           r.number(models.FieldMaxPrice),
		Estimation:         r.number(models.FieldEstimation),
		BidGuarantee:       r.number(models.FieldBidGuarantee),
		ContractGuarantee:  r.number(models.FieldContractGuarantee),
		WinnerPrice:        r.number(models.FieldWinnerPrice),
		CollectionDeadline: collection,
		ApprovalDeadline:   approval,
		BiddingDateTime:    bidding,
		Status:             r.text(models.FieldStatus),
	}
	if r.err != nil {
		return models.Purchase{}, 0, r.err
	}
	return p, biddingSerial, nil
}
