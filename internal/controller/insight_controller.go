package controller

import (
	"strconv"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/service"
	"talent_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type InsightController struct {
	InsightService *service.InsightService
	ExportService  *service.ReportExportService
}

func NewInsightController(insightService *service.InsightService, exportService *service.ReportExportService) *InsightController {
	return &InsightController{
		InsightService: insightService,
		ExportService:  exportService,
	}
}

// studentIDForInsight 学生查自己，家长/教师通过 studentId 参数查学生
func studentIDForInsight(ctx *gin.Context) (uint, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return 0, false
	}
	if user.Role == model.Student {
		return user.UserID, true
	}
	raw := ctx.Param("studentId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return 0, false
	}
	return uint(id), true
}

// @Summary 天赋信号
// @Description 获取门控后的天赋信号视图
// @Tags 洞察
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/insights/signals [get]
func (c *InsightController) GetTalentSignals(ctx *gin.Context) {
	studentID, ok := studentIDForInsight(ctx)
	if !ok {
		return
	}

	view, err := c.InsightService.GetTalentSignals(ctx.Request.Context(), studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 轻量观察
// @Description 获取家长侧的轻量观察列表
// @Tags 洞察
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/insights/observations [get]
func (c *InsightController) GetGentleObservations(ctx *gin.Context) {
	studentID, ok := studentIDForInsight(ctx)
	if !ok {
		return
	}

	view, err := c.InsightService.GetGentleObservations(ctx.Request.Context(), studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 进度叙述
// @Description 获取学习进度的文字叙述
// @Tags 洞察
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/insights/narrative [get]
func (c *InsightController) GetProgressNarrative(ctx *gin.Context) {
	studentID, ok := studentIDForInsight(ctx)
	if !ok {
		return
	}

	view, err := c.InsightService.GetProgressNarrative(ctx.Request.Context(), studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// @Summary 导出进度报告
// @Description 生成报告快照并上传对象存储，返回下载链接
// @Tags 洞察
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/insights/export [post]
func (c *InsightController) ExportProgressReport(ctx *gin.Context) {
	studentID, ok := studentIDForInsight(ctx)
	if !ok {
		return
	}

	result, err := c.ExportService.ExportProgressReport(ctx.Request.Context(), studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
