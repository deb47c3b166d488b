package handler

import (
	"orgchart/internal/dto"
	"orgchart/internal/pkg/response"
	"orgchart/internal/service"
	"orgchart/internal/telemetry"
	"orgchart/utils/validate"

	"github.com/gin-gonic/gin"
)

type OrgchartHandler struct {
	trace           *telemetry.Trace
	orgchartService *service.OrgchartService
}

func NewOrgchartHandler(trace *telemetry.Trace, orgchartService *service.OrgchartService) *OrgchartHandler {
	return &OrgchartHandler{trace: trace, orgchartService: orgchartService}
}

// FullOrgchart 取得完整組織圖
// @Summary 完整組織圖
// @Tags Orgchart
// @Produce json
// @Success 200 {object} response.Response{data=[]orgchart.Herd}
// @Failure 500 {object} response.Response
// @Router /orgchart [get]
func (h *OrgchartHandler) FullOrgchart(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	chart, err := h.orgchartService.FullOrgchart(ctx)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, chart)
}

// Related 取得主管與直屬部屬
// @Summary 主管與直屬部屬
// @Tags Orgchart
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Response{data=orgchart.Related}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orgchart/related/{userId} [get]
func (h *OrgchartHandler) Related(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var uri dto.UserIDUri
	if cause, respErr := validate.BindUri(c, &uri); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	related, err := h.orgchartService.Related(ctx, uri.UserID)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, related)
}

// Directs 取得直屬部屬
// @Summary 直屬部屬
// @Tags Orgchart
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Response{data=[]orgchart.Data}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orgchart/directs/{userId} [get]
func (h *OrgchartHandler) Directs(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var uri dto.UserIDUri
	if cause, respErr := validate.BindUri(c, &uri); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	directs, err := h.orgchartService.Directs(ctx, uri.UserID)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, directs)
}

// Expanded 以麵包屑方式展開到指定員工
// @Summary 展開到指定員工的組織圖
// @Tags Orgchart
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Response{data=[]orgchart.Herd}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orgchart/expanded/{userId} [get]
func (h *OrgchartHandler) Expanded(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var uri dto.UserIDUri
	if cause, respErr := validate.BindUri(c, &uri); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	expanded, err := h.orgchartService.Expanded(ctx, uri.UserID)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, expanded)
}

// Trace 取得員工在樹中的位置路徑
// @Summary 位置路徑
// @Tags Orgchart
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Response{data=orgchart.TraceResult}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /orgchart/trace/{userId} [get]
func (h *OrgchartHandler) Trace(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var uri dto.UserIDUri
	if cause, respErr := validate.BindUri(c, &uri); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}
	trace, err := h.orgchartService.Trace(ctx, uri.UserID)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, trace)
}

// Stats 目前組織圖的建樹摘要
// @Summary 建樹摘要
// @Tags Orgchart
// @Produce json
// @Success 200 {object} response.Response{data=dto.OrgchartStatsDto}
// @Router /orgchart/stats [get]
func (h *OrgchartHandler) Stats(c *gin.Context) {
	response.Success(c, h.orgchartService.Stats())
}

// Rebuild 立即重新載入名冊並建樹
// @Summary 重新建樹
// @Tags Orgchart
// @Produce json
// @Success 200 {object} response.Response{data=dto.OrgchartStatsDto}
// @Failure 503 {object} response.Response
// @Router /orgchart/rebuild [post]
func (h *OrgchartHandler) Rebuild(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	stats, err := h.orgchartService.Rebuild(ctx, service.TriggerAPI)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.SuccessWithMessage(c, stats, "Orgchart Rebuilt")
}
