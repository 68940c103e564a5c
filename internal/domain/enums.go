package domain

// EquipmentType is the canonical equipment code for a load. The set of
// shorthand codes brokers use is open-ended, so unrecognized source text is
// carried verbatim rather than rejected; these constants cover the codes the
// rest of the system switches on.
type EquipmentType string

const (
	EquipmentVan         EquipmentType = "V"
	EquipmentReefer      EquipmentType = "R"
	EquipmentFlatbed     EquipmentType = "F"
	EquipmentVanOrReefer EquipmentType = "VR"
)

// LoadStatus represents the lifecycle of a booked load.
type LoadStatus string

const (
	LoadStatusBooked    LoadStatus = "booked"
	LoadStatusInTransit LoadStatus = "in_transit"
	LoadStatusDelivered LoadStatus = "delivered"
	LoadStatusInvoiced  LoadStatus = "invoiced"
	LoadStatusPaid      LoadStatus = "paid"
)

// ValidLoadStatuses is the set of accepted status values for transitions.
var ValidLoadStatuses = map[LoadStatus]bool{
	LoadStatusBooked:    true,
	LoadStatusInTransit: true,
	LoadStatusDelivered: true,
	LoadStatusInvoiced:  true,
	LoadStatusPaid:      true,
}

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// FileStatus represents the lifecycle of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "pending"
	FileStatusUploaded FileStatus = "uploaded"
	FileStatusFailed   FileStatus = "failed"
	FileStatusDeleted  FileStatus = "deleted"
)
