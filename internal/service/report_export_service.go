package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"
	"talent_insight_backend/internal/repository"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ReportExportService 将家长报告快照导出到对象存储，供下载链接使用
type ReportExportService struct {
	Insight   *InsightService
	ScoreRepo *repository.SkillScoreRepository
	Client    *minio.Client
	Cfg       *config.Config
}

func NewReportExportService(insight *InsightService, scoreRepo *repository.SkillScoreRepository, cfg *config.Config) (*ReportExportService, error) {
	s := &ReportExportService{
		Insight:   insight,
		ScoreRepo: scoreRepo,
		Cfg:       cfg,
	}

	if cfg.Storage.Type == "minio" {
		client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
			Secure: false,
		})
		if err != nil {
			return nil, err
		}
		s.Client = client
	}

	return s, nil
}

// ProgressReport 导出的报告快照
type ProgressReport struct {
	StudentID   uint                   `json:"studentId"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Signals     *TalentSignalView      `json:"signals"`
	Narrative   *ProgressNarrativeView `json:"narrative"`
	SkillScores []model.SkillScore     `json:"skillScores"`
}

// ExportResult 对象名与限时下载链接
type ExportResult struct {
	ObjectName  string `json:"objectName"`
	DownloadURL string `json:"downloadUrl"`
}

// ExportProgressReport 生成快照并上传。
// 导出同样受门控约束：叙述未解锁时照常导出，状态字段会如实标记。
func (s *ReportExportService) ExportProgressReport(ctx context.Context, studentID uint) (*ExportResult, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("report export requires minio storage, configured type is %q", s.Cfg.Storage.Type)
	}

	signals, err := s.Insight.GetTalentSignals(ctx, studentID)
	if err != nil {
		return nil, err
	}
	narrative, err := s.Insight.GetProgressNarrative(ctx, studentID)
	if err != nil {
		return nil, err
	}
	scores, err := s.ScoreRepo.FindByStudent(studentID)
	if err != nil {
		return nil, err
	}

	report := ProgressReport{
		StudentID:   studentID,
		GeneratedAt: time.Now(),
		Signals:     signals,
		Narrative:   narrative,
		SkillScores: scores,
	}

	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("reports/student-%d/%s.json", studentID, report.GeneratedAt.Format("20060102T150405"))
	_, err = s.Client.PutObject(ctx, s.Cfg.Storage.MinioBucket, objectName,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return nil, err
	}

	url, err := s.Client.PresignedGetObject(ctx, s.Cfg.Storage.MinioBucket, objectName, 24*time.Hour, nil)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		ObjectName:  objectName,
		DownloadURL: url.String(),
	}, nil
}
