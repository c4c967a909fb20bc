package controller

import (
	"errors"
	"strconv"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
	"talent_insight_backend/internal/service"
	"talent_insight_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestController struct {
	QuestService *service.QuestService
	UserRepo     *repository.UserRepository
}

func NewQuestController(questService *service.QuestService, userRepo *repository.UserRepository) *QuestController {
	return &QuestController{QuestService: questService, UserRepo: userRepo}
}

type RecommendRequest struct {
	StudentID  uint     `json:"studentId"`
	QuestCount int      `json:"questCount" binding:"required,min=1"`
	Types      []string `json:"types"`
	Intent     string   `json:"intent"`
}

// @Summary 任务推荐
// @Description 按技能画像与班级侧重为学生排序候选任务
// @Tags 任务
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body RecommendRequest true "推荐参数"
// @Success 200 {object} util.Response
// @Router /api/quests/recommend [post]
func (c *QuestController) RecommendQuests(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req RecommendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	studentID := user.UserID
	var teacherID uint
	if user.Role == model.Teacher {
		if req.StudentID == 0 {
			util.BadRequest(ctx, "studentId is required")
			return
		}
		studentID = req.StudentID
		teacherID = user.UserID
	}

	student, err := c.UserRepo.FindByID(studentID)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	types := make([]model.ActivityType, 0, len(req.Types))
	for _, raw := range req.Types {
		t, err := model.ParseActivityType(raw)
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		types = append(types, t)
	}

	ranked, err := c.QuestService.SelectQuestsForAssignment(service.AssignmentParams{
		StudentID:  studentID,
		Grade:      student.Grade,
		QuestCount: req.QuestCount,
		Types:      types,
		Intent:     model.PedagogicalIntent(req.Intent),
		TeacherID:  teacherID,
	})
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// 空列表表示无可推荐，保持 200
	util.Success(ctx, ranked)
}

// @Summary 任务列表
// @Description 分页查看任务池
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码"
// @Param size query int false "每页数量"
// @Success 200 {object} util.PageResponse
// @Router /api/quests [get]
func (c *QuestController) ListQuests(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "20"))

	quests, total, err := c.QuestService.QuestRepo.List(page, size)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{List: quests, Total: total, Page: page, Limit: size})
}

// @Summary 任务详情
// @Tags 任务
// @Produce json
// @Security ApiKeyAuth
// @Param code path string true "任务编码"
// @Success 200 {object} util.Response
// @Router /api/quests/{code} [get]
func (c *QuestController) GetQuest(ctx *gin.Context) {
	quest, err := c.QuestService.QuestRepo.FindByCode(ctx.Param("code"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, quest)
}
