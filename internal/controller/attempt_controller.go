package controller

import (
	"errors"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/service"
	"talent_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

// @Summary 提交练习
// @Description 提交一次已完成的练习并更新技能分
// @Tags 练习
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attempt body service.SubmitAttemptRequest true "练习结果"
// @Success 201 {object} util.Response
// @Router /api/attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.AttemptService.SubmitAttempt(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCategory) || errors.Is(err, model.ErrInvalidActivity) {
			util.BadRequest(ctx, err.Error())
			return
		}
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// @Summary 练习历史
// @Description 获取当前学生的全部练习记录
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *AttemptController) GetAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.AttemptService.GetStudentAttempts(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempts)
}

// @Summary 练习详情
// @Description 按提交凭据查看单条练习记录
// @Tags 练习
// @Produce json
// @Security ApiKeyAuth
// @Param receiptId path string true "提交凭据"
// @Success 200 {object} util.Response
// @Router /api/attempts/{receiptId} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.AttemptService.GetAttemptByReceipt(user.UserID, ctx.Param("receiptId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}
