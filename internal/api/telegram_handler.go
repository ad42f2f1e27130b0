package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ordergw/internal/pkg"
	"ordergw/internal/sink"
	"ordergw/internal/store"
	"ordergw/internal/telegram"
)

// TelegramStore は handler が必要とする永続化層の操作
type TelegramStore interface {
	Save(ctx context.Context, t *telegram.Telegram) (*store.Record, error)
	List(ctx context.Context, limit, offset int) ([]store.ListRow, error)
	GetByID(ctx context.Context, id uint) (*store.Record, error)
}

// Publisher は受理済み電文の下流転送
type Publisher interface {
	Publish(env *sink.Envelope)
}

// TelegramHandler 電文の受信・照会エンドポイント群
type TelegramHandler struct {
	parser    *telegram.Parser
	store     TelegramStore
	publisher Publisher
	logger    *zap.Logger
	version   string
}

// NewTelegramHandler は handler を組み立てる。publisher は nil でもよい (転送なし)
func NewTelegramHandler(parser *telegram.Parser, st TelegramStore, publisher Publisher, logger *zap.Logger, version string) *TelegramHandler {
	return &TelegramHandler{
		parser:    parser,
		store:     st,
		publisher: publisher,
		logger:    logger,
		version:   version,
	}
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// Health 稼働確認
func (h *TelegramHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version})
}

// Upload は multipart のファイルとして電文を受け取る。
// 一時ファイル名には uuid を使い、同時アップロードでも衝突しない
func (h *TelegramHandler) Upload(c *gin.Context) {
	pkg.TelegramsReceived.WithLabelValues("upload").Inc()

	file, err := c.FormFile("file")
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "ファイルが指定されていません: "+err.Error())
		return
	}

	tmpPath := filepath.Join(os.TempDir(), uuid.NewString()+".dat")
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		errorResponse(c, http.StatusInternalServerError, "アップロードファイルの保存に失敗しました: "+err.Error())
		return
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			h.logger.Warn("一時ファイルの削除に失敗しました", zap.String("path", tmpPath), zap.Error(err))
		}
	}()

	t, err := h.parser.ParseFile(tmpPath)
	if err != nil {
		h.rejectParseError(c, err)
		return
	}
	h.accept(c, t)
}

// IngestRaw はリクエストボディの生バイナリとして電文を受け取る
func (h *TelegramHandler) IngestRaw(c *gin.Context) {
	pkg.TelegramsReceived.WithLabelValues("raw").Inc()

	data, err := c.GetRawData()
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "リクエストボディの読み取りに失敗しました: "+err.Error())
		return
	}

	t, err := h.parser.Parse(data)
	if err != nil {
		h.rejectParseError(c, err)
		return
	}
	h.accept(c, t)
}

// rejectParseError は解析エラーを HTTP ステータスに対応づける
func (h *TelegramHandler) rejectParseError(c *gin.Context, err error) {
	var hve *telegram.HeaderValidationError
	switch {
	case errors.Is(err, telegram.ErrEmptyInput):
		pkg.TelegramsRejected.WithLabelValues("empty").Inc()
		errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &hve):
		pkg.TelegramsRejected.WithLabelValues("header").Inc()
		mismatches := make([]gin.H, 0, len(hve.Mismatches))
		for _, m := range hve.Mismatches {
			mismatches = append(mismatches, gin.H{"field": m.Field, "want": m.Want, "got": m.Got})
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "電文形式が一致しません", "mismatches": mismatches})
	case telegram.IsTruncated(err):
		pkg.TelegramsRejected.WithLabelValues("truncated").Inc()
		errorResponse(c, http.StatusUnprocessableEntity, err.Error())
	default:
		pkg.TelegramsRejected.WithLabelValues("malformed").Inc()
		errorResponse(c, http.StatusUnprocessableEntity, err.Error())
	}
	h.logger.Warn("電文を拒否しました", zap.Error(err))
}

// accept は解析済み電文の保存と下流転送を行い、応答を返す
func (h *TelegramHandler) accept(c *gin.Context, t *telegram.Telegram) {
	if t.TrailingBytes > 0 {
		h.logger.Warn("電文末尾に未解析のバイトが残っています",
			zap.Int("trailing_bytes", t.TrailingBytes))
	}

	rec, err := h.store.Save(c.Request.Context(), t)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			pkg.TelegramsRejected.WithLabelValues("duplicate").Inc()
			errorResponse(c, http.StatusConflict, err.Error())
			return
		}
		errorResponse(c, http.StatusInternalServerError, "電文の保存に失敗しました: "+err.Error())
		return
	}

	if h.publisher != nil {
		h.publisher.Publish(&sink.Envelope{
			DocID:      rec.DocID,
			DocVersion: rec.DocVersion,
			Payload:    rec.Raw,
		})
	}

	pkg.TelegramsAccepted.Inc()
	h.logger.Info("電文を受理しました",
		zap.Uint("id", rec.ID),
		zap.String("doc_id", rec.DocID),
		zap.Int("doc_version", rec.DocVersion))

	c.JSON(http.StatusCreated, gin.H{
		"id":             rec.ID,
		"doc_id":         rec.DocID,
		"doc_version":    rec.DocVersion,
		"item_count":     t.Content.ItemCount,
		"trailing_bytes": t.TrailingBytes,
	})
}

// List 保存済み電文の一覧 (新しい順)
func (h *TelegramHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	rows, err := h.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "電文一覧の取得に失敗しました: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"telegrams": rows, "count": len(rows)})
}

// GetByID 保存済み電文1件の詳細 (正規スキーマ JSON を含む)
func (h *TelegramHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "IDの形式が不正です: "+c.Param("id"))
		return
	}

	rec, err := h.store.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			errorResponse(c, http.StatusNotFound, err.Error())
			return
		}
		errorResponse(c, http.StatusInternalServerError, "電文の取得に失敗しました: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, rec)
}
