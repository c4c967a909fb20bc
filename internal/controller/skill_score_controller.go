package controller

import (
	"strconv"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
	"talent_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SkillScoreController struct {
	ScoreRepo *repository.SkillScoreRepository
}

func NewSkillScoreController(scoreRepo *repository.SkillScoreRepository) *SkillScoreController {
	return &SkillScoreController{ScoreRepo: scoreRepo}
}

// @Summary 技能画像
// @Description 获取学生全部技能分与等级
// @Tags 技能
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/skills [get]
func (c *SkillScoreController) GetSkillScores(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID := user.UserID
	if user.Role != model.Student {
		raw := ctx.Param("studentId")
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			util.BadRequest(ctx, "invalid student id")
			return
		}
		studentID = uint(id)
	}

	scores, err := c.ScoreRepo.FindByStudent(studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, scores)
}

// @Summary 技能分类目录
// @Description 列出全部技能分类及其所属分支
// @Tags 技能
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/skills/categories [get]
func (c *SkillScoreController) GetCategories(ctx *gin.Context) {
	categories := model.AllSkillCategories()
	out := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		out = append(out, gin.H{
			"category": category,
			"branch":   category.Branch(),
		})
	}
	util.Success(ctx, out)
}
