package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordergw/internal/telegram"
)

func ptr(s string) *string { return &s }

func TestNewRecord(t *testing.T) {
	tg := &telegram.Telegram{}
	tg.Common.DestinationSystemCode = ptr("HS")
	tg.Content.PatientInfo.ID = ptr("0001234567")
	tg.Content.PatientInfo.KanjiName = ptr("山田　太郎")
	tg.Content.OrderInfo.DocID = ptr("DOC-2025-0001")
	tg.Content.OrderInfo.Version = 2
	tg.Content.OrderInfo.Number = ptr("ORD-0001")
	tg.Content.OrderInfo.SakuseiDatetime.Date = ptr("20250826")

	rec, err := NewRecord(tg)
	require.NoError(t, err)

	assert.Equal(t, "DOC-2025-0001", rec.DocID)
	assert.Equal(t, 2, rec.DocVersion)
	assert.Equal(t, "0001234567", rec.PatientID)
	assert.Equal(t, "山田　太郎", rec.PatientName)
	assert.Equal(t, "ORD-0001", rec.OrderNo)
	assert.Equal(t, "20250826", rec.OrderDate)
	assert.Equal(t, "HS", rec.SystemCode)

	// Raw には正規スキーマ全体が JSON で入る
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Raw, &decoded))
	assert.Contains(t, decoded, "common")
	assert.Contains(t, decoded, "content")
}

func TestNewRecordBlankFields(t *testing.T) {
	// null フィールドは空文字列の列になる
	rec, err := NewRecord(&telegram.Telegram{})
	require.NoError(t, err)
	assert.Equal(t, "", rec.DocID)
	assert.Equal(t, 0, rec.DocVersion)
	assert.Equal(t, "", rec.PatientID)
}

func TestRecordTableName(t *testing.T) {
	assert.Equal(t, "telegrams", Record{}.TableName())
}
