package service_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luxonlabs/luxon-tms/internal/config"
	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/port"
	"github.com/luxonlabs/luxon-tms/internal/service"
	"github.com/luxonlabs/luxon-tms/mocks"
)

func testS3Config() config.S3Config {
	return config.S3Config{
		Region:        "us-east-1",
		Bucket:        "test-bucket",
		MaxFileSizeMB: 50,
		PresignExpiry: 3600,
	}
}

// createMultipartFile creates a fake multipart file header and content for testing.
func createMultipartFile(filename string, content []byte, contentType string) (multipart.File, *multipart.FileHeader) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)

	part, _ := writer.CreatePart(h)
	_, _ = part.Write(content)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, _ := reader.ReadForm(int64(len(content) + 1024))
	file, _ := form.File["file"][0].Open()
	return file, form.File["file"][0]
}

// pdfContent returns minimal valid PDF bytes.
func pdfContent() []byte {
	return []byte("%PDF-1.4 test content that is at least a few bytes long for detection purposes")
}

func TestFileService_Upload_Success_PDF(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	userID := "user-123"

	file, header := createMultipartFile("ratecon.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(&port.UploadOutput{Location: "https://test-bucket.s3.amazonaws.com/test", ETag: "abc"}, nil)
	fileRepo.On("UpdateStatus", mock.Anything, userID, mock.AnythingOfType("uuid.UUID"), domain.FileStatusUploaded).Return(nil)

	meta, err := svc.Upload(context.Background(), service.FileUploadInput{
		UserID: userID,
		File:   file,
		Header: header,
	})

	assert.NoError(t, err)
	assert.Equal(t, userID, meta.UserID)
	assert.Equal(t, "ratecon.pdf", meta.OriginalName)
	assert.Equal(t, domain.FileTypePDF, meta.FileType)
	assert.Equal(t, "application/pdf", meta.ContentType)
	assert.Equal(t, domain.FileStatusUploaded, meta.Status)
	assert.Contains(t, meta.S3Key, "users/"+userID+"/files/")

	fileRepo.AssertExpectations(t)
	storage.AssertExpectations(t)
}

func TestFileService_Upload_UnsupportedExtension(t *testing.T) {
	svc := newFileService(t)

	file, header := createMultipartFile("notes.txt", []byte("plain text"), "text/plain")
	defer file.Close()

	_, err := svc.Upload(context.Background(), service.FileUploadInput{
		UserID: "u",
		File:   file,
		Header: header,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileService_Upload_ContentMismatch(t *testing.T) {
	svc := newFileService(t)

	// .pdf extension but plain-text bytes fails magic-byte detection
	file, header := createMultipartFile("fake.pdf", []byte("just some plain text content here"), "application/pdf")
	defer file.Close()

	_, err := svc.Upload(context.Background(), service.FileUploadInput{
		UserID: "u",
		File:   file,
		Header: header,
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestFileService_Upload_StorageFailureMarksFailed(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	file, header := createMultipartFile("ratecon.pdf", pdfContent(), "application/pdf")
	defer file.Close()

	fileRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.FileMeta")).Return(nil)
	storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).
		Return(nil, assert.AnError)
	fileRepo.On("UpdateStatus", mock.Anything, "u", mock.AnythingOfType("uuid.UUID"), domain.FileStatusFailed).Return(nil)

	_, err := svc.Upload(context.Background(), service.FileUploadInput{
		UserID: "u",
		File:   file,
		Header: header,
	})
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	fileRepo.AssertExpectations(t)
}

func TestFileService_GetDownloadURL(t *testing.T) {
	fileRepo := new(mocks.MockFileMetaRepo)
	storage := new(mocks.MockObjectStorage)
	cfg := testS3Config()
	svc := service.NewFileService(fileRepo, storage, &cfg)

	fileID := uuid.New()
	meta := &domain.FileMeta{ID: fileID, UserID: "u", S3Bucket: "test-bucket", S3Key: "users/u/files/x/ratecon.pdf"}
	fileRepo.On("GetByID", mock.Anything, "u", fileID).Return(meta, nil)
	storage.On("GetPresignedURL", mock.Anything, "test-bucket", meta.S3Key, int64(3600)).
		Return("https://signed.example/url", nil)

	url, err := svc.GetDownloadURL(context.Background(), "u", fileID)
	assert.NoError(t, err)
	assert.Equal(t, "https://signed.example/url", url)
}

func newFileService(t *testing.T) service.FileService {
	t.Helper()
	cfg := testS3Config()
	return service.NewFileService(new(mocks.MockFileMetaRepo), new(mocks.MockObjectStorage), &cfg)
}
