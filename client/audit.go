package client

import (
	"sync"
	"wardenbot/model"

	"github.com/sirupsen/logrus"
)

// AuditClient ships moderation actions to an external sink. All calls
// are best-effort: the engine never depends on the audit trail.
type AuditClient interface {
	addRecord(*model.AuditRecord) error
	searchRecords(chatID int64, action string) ([]*model.AuditRecord, error)
}

func AddRecord(client AuditClient, record *model.AuditRecord) error {
	if err := client.addRecord(record); err != nil {
		return err
	}
	return nil
}

func SearchRecords(client AuditClient, chatID int64, action string) ([]*model.AuditRecord, error) {
	records, err := client.searchRecords(chatID, action)
	if err != nil {
		return records, err
	}
	return records, nil
}

var AuditProvider = make(map[string]func(string) AuditClient)

var auditClient AuditClient
var auditClientOnce sync.Once

func init() {
	defer func() {
		for i := range AuditProvider {
			logrus.Infof("registr_audit_provider:%v", i)
		}
	}()
	AuditProvider["mongo"] = func(url string) AuditClient {
		auditClientOnce.Do(func() {
			c, err := newMongodbClient(url)
			if err != nil {
				logrus.Panic(err)
			}
			auditClient = c
			logrus.Infof("new mongo_client:%+v", c)
		})
		return auditClient
	}
	AuditProvider["mysql"] = func(url string) AuditClient {
		auditClientOnce.Do(func() {
			c, err := newMysqlClient(url)
			if err != nil {
				logrus.Panic(err)
			}
			auditClient = c
			logrus.Infof("new mysql_client:%+v", c)
		})
		return auditClient
	}
	AuditProvider["es"] = func(url string) AuditClient {
		auditClientOnce.Do(func() {
			es, err := newEsClient(url)
			if err != nil {
				logrus.Panic(err)
			}
			auditClient = es
			logrus.Infof("new es_client:%+v", es)
		})
		return auditClient
	}
}
