package command

import (
	"encoding/json"

	"orgchart/internal/dto"
	"orgchart/internal/orgchart"
	"orgchart/utils/validate"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ChartHandler 離線建樹並查詢，不需要資料庫
type ChartHandler struct {
	logger *zap.Logger
}

func NewChartHandler(logger *zap.Logger) *ChartHandler {
	return &ChartHandler{logger: logger}
}

func (handler *ChartHandler) Chart(cmd *cobra.Command, args []string) error {
	query := dto.ChartQueryDto{}
	query.Path, _ = cmd.Flags().GetString("file")
	query.View, _ = cmd.Flags().GetString("view")
	query.UserID, _ = cmd.Flags().GetString("user")
	if err := validate.Struct(&query); err != nil {
		return err
	}

	profiles, err := readRosterFile(query.Path)
	if err != nil {
		return err
	}
	dinos := orgchart.NewNormalizer(handler.logger.Named("normalizer")).NormalizeAll(profiles)
	tree := orgchart.NewTree(handler.logger.Named("builder"), dinos)
	stats := tree.Stats()
	handler.logger.Debug("orgchart built from file",
		zap.String("file", query.Path),
		zap.Int("nodes", stats.Nodes),
		zap.Int("roots", stats.Roots),
		zap.Int("excluded", stats.Excluded),
	)

	result, err := runView(tree, query.View, query.UserID)
	if err != nil {
		// 查無 userId 時輸出 {"error": "..."}
		result = orgchart.NewErrorResult(err)
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if encodeErr := encoder.Encode(result); encodeErr != nil {
		return encodeErr
	}
	return err
}

func runView(tree *orgchart.Tree, view, userID string) (any, error) {
	switch view {
	case "related":
		return tree.Related(userID)
	case "directs":
		return tree.Directs(userID)
	case "expanded":
		return tree.Expanded(userID)
	case "trace":
		return tree.Trace(userID)
	default:
		return tree.FullOrgchart()
	}
}
