package audit

import (
	"context"

	"jadwalin-service/internal/app/contracts"
	"jadwalin-service/internal/app/models"
	"jadwalin-service/internal/pkg/constvars"
	"jadwalin-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type auditMongoRepository struct {
	Collection *mongo.Collection
}

func NewAuditMongoRepository(db *mongo.Client, dbName string) contracts.AuditRepository {
	return &auditMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionScheduleAuditLogs),
	}
}

func (repo *auditMongoRepository) Insert(ctx context.Context, log *models.ScheduleAuditLog) error {
	_, err := repo.Collection.InsertOne(ctx, log)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *auditMongoRepository) FindByScheduleID(ctx context.Context, scheduleID string) ([]models.ScheduleAuditLog, error) {
	var logs []models.ScheduleAuditLog
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"scheduleId": scheduleID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &logs)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return logs, nil
}
