package strava

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/tommetge/stravakit/internal/httpx"
	"github.com/tommetge/stravakit/internal/jsonmap"
)

const (
	uploadsPath      = "/api/v3/uploads"
	uploadStatusPath = "/api/v3/uploads/:id"
)

// Upload data types accepted by the API.
const (
	DataTypeFit   = "fit"
	DataTypeFitGz = "fit.gz"
	DataTypeTCX   = "tcx"
	DataTypeTCXGz = "tcx.gz"
	DataTypeGPX   = "gpx"
	DataTypeGPXGz = "gpx.gz"
)

var uploadDataTypes = map[string]bool{
	DataTypeFit:   true,
	DataTypeFitGz: true,
	DataTypeTCX:   true,
	DataTypeTCXGz: true,
	DataTypeGPX:   true,
	DataTypeGPXGz: true,
}

// UploadRequest describes one activity file submission. Exactly one of Data
// and FilePath must be set.
type UploadRequest struct {
	// DataType is one of the DataType constants.
	DataType string
	// Data streams the file content directly.
	Data io.Reader
	// FilePath reads the file content from disk; also provides the default
	// FileName.
	FilePath string
	// FileName labels the multipart file part. Defaults to the FilePath base
	// name or "activity.<DataType>".
	FileName    string
	Name        string
	Description string
	// ExternalID correlates the upload with the caller's own records. A
	// generated identifier is used when empty.
	ExternalID string
	Trainer    bool
	Commute    bool
	Private    bool
}

// UploadStatus reports the server-side state of a submitted file.
type UploadStatus struct {
	ID         int64
	ExternalID string
	Status     string
	ActivityID int64
}

// newUploadStatus treats a structurally valid body whose "error" field is
// non-empty as a logical failure, even though the transport reported success.
func newUploadStatus(m jsonmap.Map) (*UploadStatus, error) {
	d := jsonmap.New(m)
	if msg := d.OptString("error"); msg != "" {
		return nil, &Error{Kind: KindUndefined, Message: msg}
	}

	s := &UploadStatus{
		Status: d.String("status"),
	}
	if err := d.Err(); err != nil {
		return nil, err
	}

	s.ID = d.OptInt64("id")
	s.ExternalID = d.OptString("external_id")
	s.ActivityID = d.OptInt64("activity_id")
	return s, nil
}

func (u *UploadRequest) content() (io.Reader, string, func(), error) {
	name := u.FileName
	cleanup := func() {}

	switch {
	case u.Data != nil && u.FilePath != "":
		return nil, "", cleanup, fmt.Errorf("set either Data or FilePath, not both")
	case u.Data != nil:
		if name == "" {
			name = "activity." + u.DataType
		}
		return u.Data, name, cleanup, nil
	case u.FilePath != "":
		f, err := os.Open(u.FilePath)
		if err != nil {
			return nil, "", cleanup, fmt.Errorf("open upload file: %w", err)
		}
		if name == "" {
			name = filepath.Base(u.FilePath)
		}
		return f, name, func() { _ = f.Close() }, nil
	}
	return nil, "", cleanup, fmt.Errorf("upload file content is required")
}

// UploadActivity submits an activity file as a multipart request and returns
// the initial processing status. Processing is asynchronous server-side; poll
// UploadStatusByID until the status settles.
func (c *Client) UploadActivity(ctx context.Context, upload UploadRequest) (*UploadStatus, error) {
	token := c.creds.Token()
	if token == "" {
		return nil, &Error{Kind: KindMissingCredentials, Message: "authenticated request without an access token"}
	}

	if !uploadDataTypes[upload.DataType] {
		return nil, fmt.Errorf("unsupported upload data type %q", upload.DataType)
	}

	content, fileName, cleanup, err := upload.content()
	if err != nil {
		return nil, err
	}
	defer cleanup()

	externalID := upload.ExternalID
	if externalID == "" {
		externalID = uuid.NewString()
	}

	fields := map[string]string{
		"data_type":   upload.DataType,
		"external_id": externalID,
	}
	if upload.Name != "" {
		fields["name"] = upload.Name
	}
	if upload.Description != "" {
		fields["description"] = upload.Description
	}
	if upload.Trainer {
		fields["trainer"] = "1"
	}
	if upload.Commute {
		fields["commute"] = "1"
	}
	if upload.Private {
		fields["private"] = "1"
	}

	target, err := c.buildURL(uploadsPath)
	if err != nil {
		return nil, err
	}

	req, err := httpx.NewMultipartRequest(ctx, target, fields, httpx.MultipartFile{
		FieldName: "file",
		FileName:  fileName,
		Content:   content,
	})
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}

	decoded, err := c.dispatch(req, token)
	if err != nil {
		return nil, err
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, &Error{Kind: KindInvalidResponse, Message: "expected a JSON object"}
	}
	return newUploadStatus(obj)
}

// UploadStatusByID checks the processing state of a prior upload.
func (c *Client) UploadStatusByID(ctx context.Context, id int64) (*UploadStatus, error) {
	m, err := c.object(ctx, http.MethodGet, replaceID(uploadStatusPath, id), true, nil)
	if err != nil {
		return nil, err
	}
	return newUploadStatus(m)
}
