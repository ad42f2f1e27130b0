package telegram

// 共通部の必須識別項目の期待値。
// この4項目が一致しない電文は注射オーダ依頼電文ではないため、
// 内容部の解析に入る前に拒否する。
const (
	wantMessageType        = "II" // 電文種別: 注射オーダ
	wantRecordContinuation = "E"  // レコード継続指示: 終端
	wantDestinationSystem  = "HS" // 送信先システムコード
	wantSourceSystem       = "XX" // 発信元システムコード
)

// readCommonHeader 共通部 (64バイト) を読む
func readCommonHeader(r *fieldReader) CommonHeader {
	return CommonHeader{
		MessageType:           r.text(2),
		RecordContinuation:    r.text(1),
		DestinationSystemCode: r.text(2),
		SourceSystemCode:      r.text(2),
		ProcessingInfo: ProcessingInfo{
			Date: r.text(8),
			Time: r.text(6),
		},
		ClientName:      r.text(8),
		UserID:          r.text(8),
		ProcessingClass: r.text(2),
		ResponseType:    r.text(2),
		MessageLength:   r.text(6),
		ErrorCode:       r.text(5),
		Reserve:         r.text(12),
	}
}

// validateHeader は共通部の4つの識別項目を検証し、不一致をすべて集めて返す
func validateHeader(h CommonHeader) error {
	checks := []struct {
		field string
		want  string
		got   *string
	}{
		{"message_type", wantMessageType, h.MessageType},
		{"record_continuation", wantRecordContinuation, h.RecordContinuation},
		{"destination_system_code", wantDestinationSystem, h.DestinationSystemCode},
		{"source_system_code", wantSourceSystem, h.SourceSystemCode},
	}

	var mismatches []FieldMismatch
	for _, c := range checks {
		if c.got == nil || *c.got != c.want {
			mismatches = append(mismatches, FieldMismatch{Field: c.field, Want: c.want, Got: c.got})
		}
	}
	if len(mismatches) > 0 {
		return &HeaderValidationError{Mismatches: mismatches}
	}
	return nil
}
