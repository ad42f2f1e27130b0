package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"ordergw/internal/telegram"
)

// Record は受理済み電文1件の保存形。
// 検索に使う項目だけを列として持ち、正規スキーマ全体は Raw に JSON で保持する。
type Record struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	DocID       string         `gorm:"size:30;uniqueIndex:idx_doc_version" json:"doc_id"`
	DocVersion  int            `gorm:"uniqueIndex:idx_doc_version" json:"doc_version"`
	PatientID   string         `gorm:"size:10;index" json:"patient_id"`
	PatientName string         `gorm:"size:60" json:"patient_name"`
	OrderNo     string         `gorm:"size:30" json:"order_no"`
	OrderDate   string         `gorm:"size:8" json:"order_date"`
	SystemCode  string         `gorm:"size:2" json:"system_code"`
	Raw         datatypes.JSON `json:"raw"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// TableName gorm のテーブル名
func (Record) TableName() string {
	return "telegrams"
}

// NewRecord は正規スキーマから保存形を組み立てる
func NewRecord(t *telegram.Telegram) (*Record, error) {
	raw, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("電文の直列化に失敗しました: %w", err)
	}
	return &Record{
		DocID:       deref(t.Content.OrderInfo.DocID),
		DocVersion:  t.Content.OrderInfo.Version,
		PatientID:   deref(t.Content.PatientInfo.ID),
		PatientName: deref(t.Content.PatientInfo.KanjiName),
		OrderNo:     deref(t.Content.OrderInfo.Number),
		OrderDate:   deref(t.Content.OrderInfo.SakuseiDatetime.Date),
		SystemCode:  deref(t.Common.DestinationSystemCode),
		Raw:         raw,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
