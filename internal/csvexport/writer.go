package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/luxonlabs/luxon-tms/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Columns defines the CSV header row for load exports.
var Columns = []string{
	"Load Number",
	"Status",
	"Pickup Date",
	"Delivery Date",
	"Broker Company",
	"Broker Contact",
	"Contact Phone",
	"Phone Ext",
	"Contact Email",
	"Invoice Email",
	"Origin City",
	"Origin State",
	"Destination City",
	"Destination State",
	"Equipment",
	"Miles",
	"Posted Rate",
	"Booked Rate",
	"Rate Per Mile",
	"Shipper",
	"Receiver",
	"Broker MC",
	"Commodity",
	"Weight",
	"Notes",
	"Created At",
}

// Writer wraps csv.Writer for exporting loads as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteLoads converts a batch of loads to CSV rows and writes them.
func (w *Writer) WriteLoads(loads []domain.Load) error {
	for i := range loads {
		row := LoadToRow(&loads[i])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// LoadToRow converts a single load to a string slice matching Columns.
func LoadToRow(load *domain.Load) []string {
	return []string{
		load.LoadNumber,
		string(load.Status),
		load.PickupDate,
		load.DeliveryDate,
		load.BrokerCompany,
		load.BrokerContact,
		load.ContactPhone,
		load.PhoneExt,
		load.ContactEmail,
		load.InvoiceEmail,
		load.OriginCity,
		load.OriginState,
		load.DestCity,
		load.DestState,
		string(load.Equipment),
		formatMiles(load.Miles),
		formatMoney(load.PostedRate),
		formatMoney(load.BookedRate),
		formatRatePerMile(load.RatePerMile),
		load.Shipper,
		load.Receiver,
		load.BrokerMC,
		load.Commodity,
		load.Weight,
		load.Notes,
		load.CreatedAt.Format(time.RFC3339),
	}
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatMiles(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatRatePerMile(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_name}_{YYYY-MM-DD}.{ext}
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
