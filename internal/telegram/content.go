package telegram

import "fmt"

// 内容部の各セクションビルダー。
// 各セクションはレコード定義書の項目順そのままの固定長フィールド読み取りの列で、
// 省略可能・条件付きの項目は存在しない。セクション順も固定:
// 患者情報 → 入院情報 → オーダ情報 → 患者プロファイル情報 → レジメン情報 → 項目情報群

func readPatientInfo(r *fieldReader) PatientInfo {
	return PatientInfo{
		ID:          r.text(10),
		KanjiName:   r.text(30),
		KanaName:    r.text(60),
		Sex:         r.text(1),
		Birthdate:   r.text(8),
		PostalCode1: r.text(3),
		PostalCode2: r.text(4),
		Address:     r.text(100),
		PhoneNumber: r.text(15),
	}
}

func readInpatientInfo(r *fieldReader) InpatientInfo {
	return InpatientInfo{
		Status:   r.text(1),
		DeptCode: r.text(3),
		WardCode: r.text(3),
		RoomCode: r.text(5),
		BedCode:  r.text(2),
	}
}

func readNarcoticUser(r *fieldReader) NarcoticUser {
	return NarcoticUser{
		ID:        r.text(10),
		StartDate: r.text(8),
		EndDate:   r.text(8),
	}
}

func readOrderInfo(r *fieldReader) OrderInfo {
	return OrderInfo{
		DocType:     r.text(1),
		DocID:       r.text(30),
		Version:     r.count(2),
		ParentDocID: r.text(30),
		Number:      r.text(8),
		RelatedOrderInfo: RelatedOrderInfo{
			Date:   r.text(8),
			Number: r.text(8),
		},
		JisshiDatetime: DateTimePair{
			Date: r.text(8),
			Time: r.text(6),
		},
		SakuseiDatetime: DateTimePair{
			Date: r.text(8),
			Time: r.text(6),
		},
		HikikaekenNo:    r.text(8),
		InpatientStatus: r.text(1),
		HakkouDeptCode:  r.text(3),
		HakkouWardCode:  r.text(3),
		DenpyoCode:      r.text(4),
		DenpyoName:      r.text(50),
		DoctorInfo: DoctorInfo{
			UserID:    r.text(8),
			KanjiName: r.text(20),
			KanaName:  r.text(40),
		},
		DaikohInfo: DaikohInfo{
			UserID:    r.text(8),
			KanjiName: r.text(20),
		},
		MayakuShiyosha1: readNarcoticUser(r),
		MayakuShiyosha2: readNarcoticUser(r),
	}
}

func readPatientProfile(r *fieldReader) PatientProfile {
	p := PatientProfile{
		Height: Measurement{
			Value: r.float(11),
			Date:  r.text(8),
		},
		Weight: Measurement{
			Value: r.float(11),
			Date:  r.text(8),
		},
		BSA: BSA{
			Value: r.float(11),
		},
	}
	p.ProfileGroup, p.ProfileCount = readRepeating(r, 3, "プロファイル情報群", func(r *fieldReader) ProfileEntry {
		return ProfileEntry{
			Code: r.text(10),
			Name: r.text(50),
			Data: r.text(500),
		}
	})
	return p
}

func readRegimenInfo(r *fieldReader) RegimenInfo {
	return RegimenInfo{
		Code:        r.text(8),
		Name:        r.text(50),
		CourseCount: r.text(3),
		DripOrder:   r.text(4),
		StartDate:   r.text(14),
		BodyInfo: BodyInfo{
			Height: r.float(11),
			Weight: r.float(11),
			BSA:    r.float(11),
		},
	}
}

func readItem(r *fieldReader) Item {
	return Item{
		Attribute:      r.text(3),
		Code:           r.text(8),
		LinkedItemCode: r.text(8),
		Name:           r.text(50),
		Quantity:       r.float(11),
		UnitFlag:       r.text(1),
		UnitCode:       r.text(3),
		UnitName:       r.text(4),
		MaxDoseFlag:    r.text(1),
		ItemRowDate:    r.text(8),
		ItemRowTime:    r.text(6),
		CodeGroup: CodeGroup{
			BuppinCode:   r.text(9),
			JanCode:      r.text(13),
			IyakuhinCode: r.text(12),
			HotCode:      r.text(13),
			RecedenCode:  r.text(12),
			Jlac10Code:   r.text(17),
			YjCode:       r.text(20),
			LogiCode:     r.text(20),
			OrderKanriNo: r.text(14),
			IjiKanriNo:   r.text(10),
		},
	}
}

// readContent 内容部 (可変長) を読む
func readContent(r *fieldReader) (ContentBody, error) {
	var c ContentBody

	sections := []struct {
		name string
		read func()
	}{
		{"患者情報", func() { c.PatientInfo = readPatientInfo(r) }},
		{"入院情報", func() { c.InpatientInfo = readInpatientInfo(r) }},
		{"オーダ情報", func() { c.OrderInfo = readOrderInfo(r) }},
		{"患者プロファイル情報", func() { c.PatientProfile = readPatientProfile(r) }},
		{"レジメン情報", func() { c.RegimenInfo = readRegimenInfo(r) }},
		{"項目情報群", func() {
			c.ItemGroup, c.ItemCount = readRepeating(r, 4, "項目情報群", readItem)
		}},
	}
	for _, s := range sections {
		s.read()
		if r.err != nil {
			return ContentBody{}, fmt.Errorf("%s の解析に失敗しました: %w", s.name, r.err)
		}
	}
	return c, nil
}
