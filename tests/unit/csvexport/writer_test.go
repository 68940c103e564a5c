package csvexport_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/luxonlabs/luxon-tms/internal/csvexport"
	"github.com/luxonlabs/luxon-tms/internal/domain"
)

func sampleLoad() domain.Load {
	rpm := 3.61
	return domain.Load{
		LoadNumber:    "LD100",
		Status:        domain.LoadStatusBooked,
		PickupDate:    "2025-11-21",
		DeliveryDate:  "2025-11-22",
		BrokerCompany: "Acme Logistics",
		OriginCity:    "Johnston",
		OriginState:   "SC",
		DestCity:      "Charlotte",
		DestState:     "NC",
		Equipment:     domain.EquipmentVan,
		Miles:         180,
		PostedRate:    0,
		BookedRate:    650,
		RatePerMile:   &rpm,
		CreatedAt:     time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewWriter(&buf)

	assert.NoError(t, w.WriteHeader())
	assert.NoError(t, w.WriteLoads([]domain.Load{sampleLoad()}))
	w.Flush()
	assert.NoError(t, w.Error())

	records, err := csv.NewReader(&buf).ReadAll()
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, csvexport.Columns, records[0])

	row := records[1]
	assert.Len(t, row, len(csvexport.Columns))
	assert.Equal(t, "LD100", row[0])
	assert.Equal(t, "booked", row[1])
	assert.Equal(t, "2025-11-21", row[2])
	assert.Equal(t, "V", row[14])
	assert.Equal(t, "180", row[15])
	assert.Equal(t, "0.00", row[16])
	assert.Equal(t, "650.00", row[17])
	assert.Equal(t, "3.61", row[18])
}

func TestLoadToRow_NilRatePerMileIsEmpty(t *testing.T) {
	load := sampleLoad()
	load.RatePerMile = nil
	row := csvexport.LoadToRow(&load)
	assert.Equal(t, "", row[18])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_Loads_2025", csvexport.SanitizeFilename("My Loads (2025)"))
	assert.Equal(t, "a_b", csvexport.SanitizeFilename("a///b"))
	assert.Equal(t, "trimmed", csvexport.SanitizeFilename("__trimmed__"))
}

func TestBuildFilename(t *testing.T) {
	name := csvexport.BuildFilename("loads", "csv")
	assert.Regexp(t, `^loads_\d{4}-\d{2}-\d{2}\.csv$`, name)

	name = csvexport.BuildFilename("loads", "xlsx")
	assert.Regexp(t, `\.xlsx$`, name)
}
