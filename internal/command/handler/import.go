package command

import (
	"context"
	"fmt"
	"time"

	"orgchart/internal/dto"
	"orgchart/utils/validate"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ProfileWriter 寫入原始 profile（MongoDB）
type ProfileWriter interface {
	UpsertMany(ctx context.Context, profiles []map[string]any) (*mongo.BulkWriteResult, error)
	DeleteByUserID(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type ImportHandler struct {
	logger   *zap.Logger
	profiles ProfileWriter
}

func NewImportHandler(logger *zap.Logger, profiles ProfileWriter) *ImportHandler {
	return &ImportHandler{
		logger:   logger,
		profiles: profiles,
	}
}

// Import 將名冊檔案 upsert 進 profiles collection
func (handler *ImportHandler) Import(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	if err := validate.Struct(&dto.ImportFileDto{Path: file}); err != nil {
		return err
	}
	profiles, err := readRosterFile(file)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	result, err := handler.profiles.UpsertMany(ctx, profiles)
	if err != nil {
		return err
	}

	total, err := handler.profiles.Count(ctx)
	if err != nil {
		return err
	}

	handler.logger.Info("roster imported",
		zap.String("file", file),
		zap.Int("profiles", len(profiles)),
		zap.Int64("matched", result.MatchedCount),
		zap.Int64("modified", result.ModifiedCount),
		zap.Int64("upserted", result.UpsertedCount),
		zap.Int64("total", total),
	)
	cmd.Printf("imported %d profiles (matched %d, upserted %d), %d in collection\n", len(profiles), result.MatchedCount, result.UpsertedCount, total)
	return nil
}

// Remove 依 user id 刪除 profile；找不到時回傳錯誤
func (handler *ImportHandler) Remove(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	if err := validate.Struct(&dto.RemoveProfileDto{UserID: userID}); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	deleted, err := handler.profiles.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("unknown userid: %s", userID)
	}

	handler.logger.Info("profile removed", zap.String("userId", userID))
	cmd.Printf("removed %s\n", userID)
	return nil
}
