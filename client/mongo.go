package client

import (
	"context"
	"wardenbot/model"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoClient struct {
	*mongo.Client
	name string
}

func newMongodbClient(url string) (AuditClient, error) {
	opt := options.Client().ApplyURI(url).
		SetMinPoolSize(5).SetMaxPoolSize(100)
	db, err := mongo.Connect(context.Background(), opt)
	if err != nil {
		return nil, err
	}
	return &MongoClient{Client: db}, nil
}

func (m *MongoClient) set() {
	m.name = model.AuditIndexName
}

func (m *MongoClient) addRecord(record *model.AuditRecord) error {
	m.set()
	coll := m.Client.Database(m.name).Collection(m.name)
	_, err := coll.InsertOne(context.Background(), record)
	if err != nil {
		return err
	}
	return nil
}

func (m *MongoClient) searchRecords(chatID int64, action string) ([]*model.AuditRecord, error) {
	m.set()
	coll := m.Client.Database(m.name).Collection(m.name)
	var records []*model.AuditRecord
	filter := bson.D{{Key: "chat_id", Value: chatID}, {Key: "action", Value: action}}
	cursor, err := coll.Find(context.Background(), filter)
	if err != nil {
		return records, err
	}
	for cursor.Next(context.Background()) {
		record := new(model.AuditRecord)
		if err := cursor.Decode(record); err != nil {
			logrus.Error(err)
			continue
		}
		records = append(records, record)
	}
	return records, err
}
