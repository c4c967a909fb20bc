package controller

import (
	"errors"
	"strconv"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/service"
	"talent_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassFocusController struct {
	QuestService *service.QuestService
}

func NewClassFocusController(questService *service.QuestService) *ClassFocusController {
	return &ClassFocusController{QuestService: questService}
}

// @Summary 设定班级侧重
// @Description 创建并激活新的班级技能侧重，旧配置自动停用
// @Tags 班级侧重
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param focus body service.SetClassFocusRequest true "侧重配置"
// @Success 201 {object} util.Response
// @Router /api/class-focus [post]
func (c *ClassFocusController) SetClassFocus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SetClassFocusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.QuestService.SetClassFocus(user.UserID, req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCategory) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, profile)
}

// @Summary 当前班级侧重
// @Description 获取教师生效中的班级侧重，没有时返回空
// @Tags 班级侧重
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/class-focus [get]
func (c *ClassFocusController) GetActiveClassFocus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.QuestService.GetActiveClassFocus(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary 清除班级侧重
// @Description 停用教师当前生效的班级侧重
// @Tags 班级侧重
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/class-focus [delete]
func (c *ClassFocusController) ClearClassFocus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuestService.ClearClassFocus(user.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// @Summary 班级侧重历史
// @Description 查看教师最近的班级侧重记录
// @Tags 班级侧重
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "数量上限"
// @Success 200 {object} util.Response
// @Router /api/class-focus/history [get]
func (c *ClassFocusController) GetClassFocusHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	history, err := c.QuestService.FocusRepo.History(user.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, history)
}
