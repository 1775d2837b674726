package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob keys. The values match the original localStorage keys so that
// exported data stays recognizable.
const (
	BlobKeyExpenses = "spendwise_expenses"
	BlobKeySettings = "spendwise_settings"
)

var ErrBlobNotFound = errors.New("blob not found")

// Blob is a single keyed blob of serialized application state. There is no
// schema versioning; readers must tolerate missing or extra JSON fields.
type Blob struct {
	Key       string    `json:"key" gorm:"primaryKey;column:key"`
	Value     []byte    `json:"value" gorm:"column:value"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName returns the table name for GORM
func (Blob) TableName() string {
	return "blobs"
}

// BlobStore reads and writes keyed state blobs in the local database.
type BlobStore struct {
	db *gorm.DB
}

func NewBlobStore(db *gorm.DB) *BlobStore {
	return &BlobStore{db: db}
}

// Get returns the stored value for key, or ErrBlobNotFound.
func (s *BlobStore) Get(key string) ([]byte, error) {
	var blob Blob
	err := s.db.Where("key = ?", key).First(&blob).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return blob.Value, nil
}

// Put stores value under key, replacing any previous value. Last write wins;
// concurrent writers from other processes are not guarded against.
func (s *BlobStore) Put(key string, value []byte) error {
	blob := Blob{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

// Delete removes the blob for key. Missing keys are a no-op.
func (s *BlobStore) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&Blob{}).Error
}
