package client

import (
	"time"
	"wardenbot/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type MysqlClient struct {
	*gorm.DB
}

func newMysqlClient(url string) (AuditClient, error) {
	db, err := gorm.Open(mysql.Open(url), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Second * 600)
	return &MysqlClient{DB: db}, err
}

func (m *MysqlClient) addRecord(record *model.AuditRecord) error {
	_record := &model.MysqlAuditRecord{
		ChatID:     record.ChatID,
		Action:     record.Action,
		Actor:      record.Actor,
		Target:     record.Target,
		Reason:     record.Reason,
		CreateTime: record.CreateTime.Format("2006-01-02 15:04:05"),
	}
	if err := m.Create(_record).Error; err != nil {
		return err
	}
	return nil
}

func (m *MysqlClient) searchRecords(chatID int64, action string) ([]*model.AuditRecord, error) {
	var _records []model.MysqlAuditRecord
	err := m.Where("chat_id = ? AND action = ?", chatID, action).Find(&_records).Error
	if err != nil {
		return nil, err
	}
	var records []*model.AuditRecord
	for _, item := range _records {
		t, _ := time.Parse("2006-01-02 15:04:05", item.CreateTime)
		records = append(records, &model.AuditRecord{
			ChatID:     item.ChatID,
			Action:     item.Action,
			Actor:      item.Actor,
			Target:     item.Target,
			Reason:     item.Reason,
			CreateTime: t,
		})
	}
	return records, nil
}
