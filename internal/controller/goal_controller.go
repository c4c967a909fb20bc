package controller

import (
	"talent_insight_backend/internal/repository"
	"talent_insight_backend/internal/service"
	"talent_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	GoalService *service.GoalReadinessService
	ScoreRepo   *repository.SkillScoreRepository
}

func NewGoalController(goalService *service.GoalReadinessService, scoreRepo *repository.SkillScoreRepository) *GoalController {
	return &GoalController{GoalService: goalService, ScoreRepo: scoreRepo}
}

type GoalReadinessRequest struct {
	GoalTitle string `json:"goalTitle" binding:"required"`
}

// @Summary 目标就绪度
// @Description 计算当前技能分相对目标的就绪度
// @Tags 目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param goal body GoalReadinessRequest true "目标标题"
// @Success 200 {object} util.Response
// @Router /api/goals/readiness [post]
func (c *GoalController) GetGoalReadiness(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GoalReadinessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	readiness, err := c.GoalService.CalculateGoalReadinessForStudent(user.UserID, req.GoalTitle)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"goalTitle": req.GoalTitle, "readiness": readiness})
}

// @Summary 技能提升建议
// @Description 按权重与薄弱程度排序的技能建议
// @Tags 目标
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param goal body GoalReadinessRequest true "目标标题"
// @Success 200 {object} util.Response
// @Router /api/goals/suggestions [post]
func (c *GoalController) GetSkillSuggestions(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GoalReadinessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	scores, err := c.ScoreRepo.ScoreMapByStudent(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	suggestions := c.GoalService.GetSkillImprovementSuggestions(req.GoalTitle, scores)
	util.Success(ctx, suggestions)
}
