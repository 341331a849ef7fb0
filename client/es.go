package client

import (
	"context"
	"encoding/json"
	"wardenbot/model"

	"github.com/olivere/elastic/v7"
)

const searchLimit = 100

type EsClient struct {
	*elastic.Client
	name string
}

func newEsClient(url string) (AuditClient, error) {
	es, err := elastic.NewClient(elastic.SetURL(url), elastic.SetSniff(false))
	if err != nil {
		return nil, err
	}
	return &EsClient{Client: es}, nil
}

func (e *EsClient) set() {
	e.name = model.AuditIndexName
}

func (e *EsClient) addRecord(record *model.AuditRecord) error {
	e.set()
	_, err := e.Index().Index(e.name).BodyJson(record).Do(context.Background())
	if err != nil {
		return err
	}
	return nil
}

func (e *EsClient) searchRecords(chatID int64, action string) ([]*model.AuditRecord, error) {
	e.set()
	var records []*model.AuditRecord
	boolQuery := elastic.NewBoolQuery().Must(
		elastic.NewTermQuery("chat_id", chatID),
		elastic.NewTermQuery("action", action))
	res, err := e.Search(e.name).Query(boolQuery).Size(searchLimit).Do(context.Background())
	if err != nil {
		return records, err
	}
	for _, item := range res.Hits.Hits {
		record := new(model.AuditRecord)
		_ = json.Unmarshal(item.Source, record)
		records = append(records, record)
	}
	return records, nil
}
