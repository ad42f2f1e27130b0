package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ordergw/internal/telegram"
)

var (
	// ErrDuplicate 同一の文書番号・版数の電文が既に保存済み
	ErrDuplicate = errors.New("同一文書番号・版数の電文が既に登録されています")
	// ErrNotFound 指定IDのレコードが存在しない
	ErrNotFound = errors.New("指定された電文が見つかりません")
)

// Store は受理済み電文の永続化層
type Store struct {
	db *gorm.DB
}

// NewStore gorm ハンドルから Store を作る
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save は電文1件を保存する。(doc_id, doc_version) の重複は ErrDuplicate を返す
func (s *Store) Save(ctx context.Context, t *telegram.Telegram) (*Record, error) {
	rec, err := NewRecord(t)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("電文の保存に失敗しました: %w", err)
	}
	return rec, nil
}

// ListRow 一覧表示用の軽量ビュー (Raw を含まない)
type ListRow struct {
	ID          uint      `json:"id"`
	DocID       string    `json:"doc_id"`
	DocVersion  int       `json:"doc_version"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	OrderNo     string    `json:"order_no"`
	OrderDate   string    `json:"order_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// List は保存済み電文を新しい順に返す
func (s *Store) List(ctx context.Context, limit, offset int) ([]ListRow, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []ListRow
	err := s.db.WithContext(ctx).
		Model(&Record{}).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("電文一覧の取得に失敗しました: %w", err)
	}
	return rows, nil
}

// GetByID はレコード1件を Raw 込みで返す
func (s *Store) GetByID(ctx context.Context, id uint) (*Record, error) {
	var rec Record
	err := s.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("電文の取得に失敗しました: %w", err)
	}
	return &rec, nil
}
