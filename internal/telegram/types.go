package telegram

// 注射オーダ依頼電文の正規スキーマ。
// 空白埋めフィールドは nil (JSONでは null)、計測値・件数は空白を 0 に読み替える。
// キー名は相手システムのレコード定義書の項目名に合わせてある。

// Telegram は解析済みの電文全体
type Telegram struct {
	Common  CommonHeader `json:"common"`
	Content ContentBody  `json:"content"`

	// TrailingBytes は構造解析完了後にバッファ末尾に残っていたバイト数。
	// 電文仕様上は許容されるため警告扱いであり、JSONには含めない。
	TrailingBytes int `json:"-"`
}

// ProcessingInfo 処理情報
type ProcessingInfo struct {
	Date *string `json:"date"` // 処理年月日
	Time *string `json:"time"` // 処理時刻
}

// CommonHeader 共通部 (固定64バイト)
type CommonHeader struct {
	MessageType           *string        `json:"message_type"`            // 電文種別
	RecordContinuation    *string        `json:"record_continuation"`     // レコード継続指示
	DestinationSystemCode *string        `json:"destination_system_code"` // 送信先システムコード
	SourceSystemCode      *string        `json:"source_system_code"`      // 発信元システムコード
	ProcessingInfo        ProcessingInfo `json:"processing_info"`
	ClientName            *string        `json:"client_name"`      // 端末名
	UserID                *string        `json:"d_id"`             // 利用者番号
	ProcessingClass       *string        `json:"processing_class"` // 処理区分
	ResponseType          *string        `json:"response_type"`    // 応答種別
	MessageLength         *string        `json:"message_length"`   // 電文長
	ErrorCode             *string        `json:"error_code"`       // エラーコード
	Reserve               *string        `json:"reserve"`          // 予備
}

// PatientInfo 患者情報
type PatientInfo struct {
	ID          *string `json:"id"`            // 患者番号
	KanjiName   *string `json:"kanji_name"`    // 患者漢字氏名
	KanaName    *string `json:"kana_name"`     // 患者カナ氏名
	Sex         *string `json:"sex"`           // 患者性別
	Birthdate   *string `json:"birthdate"`     // 患者生年月日
	PostalCode1 *string `json:"postal_code_1"` // 郵便番号1
	PostalCode2 *string `json:"postal_code_2"` // 郵便番号2
	Address     *string `json:"address"`       // 患者住所
	PhoneNumber *string `json:"phone_number"`  // 電話番号
}

// InpatientInfo 入院情報
type InpatientInfo struct {
	Status   *string `json:"status"`    // 入外状態
	DeptCode *string `json:"dept_code"` // 入院診療科コード
	WardCode *string `json:"ward_code"` // 入院中病棟コード
	RoomCode *string `json:"room_code"` // 入院中部屋コード
	BedCode  *string `json:"bed_code"`  // 入院中ベッドコード
}

// RelatedOrderInfo 関連オーダ番号情報
type RelatedOrderInfo struct {
	Date   *string `json:"date"`   // 関連オーダ作成日
	Number *string `json:"number"` // 関連オーダ番号
}

// DateTimePair 日付・時刻の組 (実施日時/オーダ作成日)
type DateTimePair struct {
	Date *string `json:"date"`
	Time *string `json:"time"`
}

// DoctorInfo 依頼医情報
type DoctorInfo struct {
	UserID    *string `json:"d_id"`       // 依頼医番号
	KanjiName *string `json:"kanji_name"` // 依頼医名
	KanaName  *string `json:"kana_name"`  // 依頼医カナ名
}

// DaikohInfo 代行利用者情報
type DaikohInfo struct {
	UserID    *string `json:"d_id"`       // 代行利用者番号
	KanjiName *string `json:"kanji_name"` // 代行利用者名
}

// NarcoticUser 麻薬施用者情報
type NarcoticUser struct {
	ID        *string `json:"id"`         // 麻薬施用者番号
	StartDate *string `json:"start_date"` // 開始日
	EndDate   *string `json:"end_date"`   // 終了日
}

// OrderInfo オーダ情報
type OrderInfo struct {
	DocType          *string          `json:"doc_type"`           // 文書種別
	DocID            *string          `json:"doc_id"`             // 文書番号
	Version          int              `json:"version"`            // 版数
	ParentDocID      *string          `json:"parent_doc_id"`      // 親文書番号
	Number           *string          `json:"number"`             // オーダ番号
	RelatedOrderInfo RelatedOrderInfo `json:"related_order_info"` // 関連オーダ番号情報
	JisshiDatetime   DateTimePair     `json:"jisshi_datetime"`    // 実施日時
	SakuseiDatetime  DateTimePair     `json:"sakusei_datetime"`   // オーダ作成日
	HikikaekenNo     *string          `json:"hikikaeken_no"`      // 薬引換券番号
	InpatientStatus  *string          `json:"inpatient_status"`   // 入外区分
	HakkouDeptCode   *string          `json:"hakkou_dept_code"`   // オーダ発行診療科コード
	HakkouWardCode   *string          `json:"hakkou_ward_code"`   // オーダ発行病棟コード
	DenpyoCode       *string          `json:"denpyo_code"`        // 伝票コード
	DenpyoName       *string          `json:"denpyo_name"`        // 伝票名称
	DoctorInfo       DoctorInfo       `json:"doctor_info"`
	DaikohInfo       DaikohInfo       `json:"daikoh_info"`
	MayakuShiyosha1  NarcoticUser     `json:"mayaku_shiyosha_1"` // 麻薬施用者情報1
	MayakuShiyosha2  NarcoticUser     `json:"mayaku_shiyosha_2"` // 麻薬施用者情報2
}

// Measurement 計測値と計測日。値は空白埋めのとき 0 になる。
type Measurement struct {
	Value float64 `json:"value"`
	Date  *string `json:"date"`
}

// BSA 体表面積 (計測日なし)
type BSA struct {
	Value float64 `json:"value"`
}

// ProfileEntry プロファイル情報群の1要素
type ProfileEntry struct {
	Code *string `json:"code"` // プロファイルコード
	Name *string `json:"name"` // プロファイル名称
	Data *string `json:"data"` // プロファイルデータ
}

// PatientProfile 患者プロファイル情報
type PatientProfile struct {
	Height       Measurement    `json:"height"`
	Weight       Measurement    `json:"weight"`
	BSA          BSA            `json:"bsa"`
	ProfileCount int            `json:"profile_count"` // プロファイル数
	ProfileGroup []ProfileEntry `json:"profile_group"` // 件数前置の可変長グループ
}

// BodyInfo レジメン適用時の身体情報
type BodyInfo struct {
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
	BSA    float64 `json:"bsa"`
}

// RegimenInfo レジメン情報
type RegimenInfo struct {
	Code        *string  `json:"code"`         // レジメンコード
	Name        *string  `json:"name"`         // レジメン名
	CourseCount *string  `json:"course_count"` // コース数
	DripOrder   *string  `json:"drip_order"`   // 滴下順
	StartDate   *string  `json:"start_date"`   // レジメン適用開始日
	BodyInfo    BodyInfo `json:"body_info"`
}

// CodeGroup 項目の各種識別コード群
type CodeGroup struct {
	BuppinCode   *string `json:"buppin_code"`    // 物品コード
	JanCode      *string `json:"jan_code"`       // 物品JANコード
	IyakuhinCode *string `json:"iyakuhin_code"`  // 薬価基準収載医薬品コード
	HotCode      *string `json:"hot_code"`       // HOTコード
	RecedenCode  *string `json:"receden_code"`   // レセプト電算コード
	Jlac10Code   *string `json:"jlac10_code"`    // JLAC10コード
	YjCode       *string `json:"yj_code"`        // 標準コード(YJコード)
	LogiCode     *string `json:"logi_code"`      // 物流コード
	OrderKanriNo *string `json:"order_kanri_no"` // オーダ管理番号
	IjiKanriNo   *string `json:"iji_kanri_no"`   // 医事管理番号
}

// Item 項目情報の1要素
type Item struct {
	Attribute      *string   `json:"attribute"`        // 項目属性
	Code           *string   `json:"code"`             // 項目コード
	LinkedItemCode *string   `json:"linked_item_code"` // 連結項目コード
	Name           *string   `json:"name"`             // 項目名称
	Quantity       float64   `json:"quantity"`         // 数量
	UnitFlag       *string   `json:"unit_flag"`        // 選択単位フラグ
	UnitCode       *string   `json:"unit_code"`        // 選択単位コード
	UnitName       *string   `json:"unit_name"`        // 選択単位名称
	MaxDoseFlag    *string   `json:"max_dose_flag"`    // 極量フラグ
	ItemRowDate    *string   `json:"item_row_date"`    // 項目行日付
	ItemRowTime    *string   `json:"item_row_time"`    // 項目行時間
	CodeGroup      CodeGroup `json:"code_group"`
}

// ContentBody 内容部 (可変長)
type ContentBody struct {
	PatientInfo    PatientInfo    `json:"patient_info"`
	InpatientInfo  InpatientInfo  `json:"inpatient_info"`
	OrderInfo      OrderInfo      `json:"order_info"`
	PatientProfile PatientProfile `json:"patient_profile"`
	RegimenInfo    RegimenInfo    `json:"regimen_info"`
	ItemCount      int            `json:"item_count"` // 項目数
	ItemGroup      []Item         `json:"item_group"` // 件数前置の可変長グループ
}
