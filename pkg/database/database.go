package database

import (
	"fmt"
	"log"
	"talent_insight_backend/internal/config"
	"talent_insight_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过迁移，--migrate/--migrate-only 强制执行
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.Attempt{},
			&model.SkillScore{},
			&model.Quest{},
			&model.ClassFocusProfile{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	// 默认题库：首次启动时写入一批基础任务，方便联调
	var questCount int64
	db.Model(&model.Quest{}).Count(&questCount)
	if questCount == 0 {
		for _, q := range model.DefaultQuestPool() {
			quest := q
			db.Create(&quest)
		}
	}

	return db, nil
}
