package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Media struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	UploadedBy  uuid.UUID  `json:"uploaded_by" db:"uploaded_by"`
	FileName    string     `json:"file_name" db:"file_name"`
	FileSize    int64      `json:"file_size" db:"file_size"`
	MimeType    string     `json:"mime_type" db:"mime_type"`
	StoragePath string     `json:"-" db:"storage_path"`
	URL         string     `json:"url" db:"-"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

func (m *Media) Attachment() Attachment {
	return Attachment{
		ID:       m.ID,
		URL:      m.URL,
		FileName: m.FileName,
		MimeType: m.MimeType,
		Size:     m.FileSize,
	}
}

// Attachment is the reference stored on blogs and comments.
type Attachment struct {
	ID       uuid.UUID `json:"id"`
	URL      string    `json:"url" validate:"required,url"`
	FileName string    `json:"file_name"`
	MimeType string    `json:"mime_type"`
	Size     int64     `json:"size"`
}

// Attachments is stored as a jsonb column.
type Attachments []Attachment

func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

func (a *Attachments) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = Attachments{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("attachments: unsupported scan type")
	}
	return json.Unmarshal(data, a)
}

// UUIDList maps a postgres uuid[] column.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	strs := make(pq.StringArray, len(l))
	for i, id := range l {
		strs[i] = id.String()
	}
	return strs.Value()
}

func (l *UUIDList) Scan(src any) error {
	var strs pq.StringArray
	if err := strs.Scan(src); err != nil {
		return err
	}
	out := make(UUIDList, 0, len(strs))
	for _, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil {
			return err
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}
