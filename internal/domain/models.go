package domain

import (
	"time"

	"github.com/google/uuid"
)

// Load is the canonical record produced by the rate-confirmation extraction
// pipeline, plus persistence metadata. Dates are canonical YYYY-MM-DD strings;
// empty string means the source document did not carry the field.
type Load struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	UserID        string        `db:"user_id" json:"user_id"`
	FileID        *uuid.UUID    `db:"file_id" json:"file_id"`
	LoadNumber    string        `db:"load_number" json:"load_number"`
	PickupDate    string        `db:"pickup_date" json:"pickup_date"`
	DeliveryDate  string        `db:"delivery_date" json:"delivery_date"`
	BrokerCompany string        `db:"broker_company" json:"broker_company"`
	BrokerContact string        `db:"broker_contact" json:"broker_contact"`
	ContactPhone  string        `db:"contact_phone" json:"contact_phone"`
	PhoneExt      string        `db:"phone_ext" json:"phone_ext"`
	ContactEmail  string        `db:"contact_email" json:"contact_email"`
	InvoiceEmail  string        `db:"invoice_email" json:"invoice_email"`
	OriginCity    string        `db:"origin_city" json:"origin_city"`
	OriginState   string        `db:"origin_state" json:"origin_state"`
	DestCity      string        `db:"dest_city" json:"dest_city"`
	DestState     string        `db:"dest_state" json:"dest_state"`
	Equipment     EquipmentType `db:"equipment" json:"equipment"`
	Miles         float64       `db:"miles" json:"miles"`
	PostedRate    float64       `db:"posted_rate" json:"posted_rate"`
	BookedRate    float64       `db:"booked_rate" json:"booked_rate"`
	RatePerMile   *float64      `db:"rate_per_mile" json:"rate_per_mile"`
	Shipper       string        `db:"shipper" json:"shipper"`
	Receiver      string        `db:"receiver" json:"receiver"`
	BrokerMC      string        `db:"broker_mc" json:"broker_mc"`
	Commodity     string        `db:"commodity" json:"commodity"`
	Weight        string        `db:"weight" json:"weight"`
	Notes         string        `db:"notes" json:"notes"`
	RawLine       string        `db:"raw_line" json:"raw_line,omitempty"`
	Status        LoadStatus    `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// FileMeta stores metadata about an uploaded rate-confirmation document.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
