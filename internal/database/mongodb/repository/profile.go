package repository

import (
	"context"
	"errors"
	"time"

	"orgchart/internal/core"
	client "orgchart/internal/database/client"
	"orgchart/internal/database/mongodb/model"
	"orgchart/internal/orgchart"
	"orgchart/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ProfileRepository struct {
	logger     *zap.Logger
	trace      *telemetry.Trace
	collection *mongo.Collection
}

func NewProfileRepository(logger *zap.Logger, trace *telemetry.Trace, mongoClient *client.MongoClient) *ProfileRepository {
	repository := &ProfileRepository{
		logger:     logger,
		trace:      trace,
		collection: mongoClient.Database().Collection(string(core.MongoCollectionProfiles)),
	}
	if err := repository.ensureIndexes(context.Background()); err != nil {
		// 連線尚未就緒時僅記錄，之後的重建仍可改用快照
		logger.Warn("ensure profile indexes failed", zap.Error(err))
	}
	return repository
}

func (repository *ProfileRepository) ensureIndexes(contextValue context.Context) error {
	ctx, cancel := context.WithTimeout(contextValue, 10*time.Second)
	defer cancel()
	_, err := repository.collection.Indexes().CreateMany(ctx, model.ProfileIndexes)
	return err
}

// ListAll 取出整份名冊
func (repository *ProfileRepository) ListAll(contextValue context.Context) (_ []*model.Profile, returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	cursor, findError := repository.collection.Find(contextValue, bson.M{})
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.Profile
	for cursor.Next(contextValue) {
		var profile model.Profile
		if decodeError := cursor.Decode(&profile); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &profile)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	repository.trace.ApplyTraceAttributes(span, core.TraceProfileRepoMeta{Op: "list", Count: len(results)})
	return results, nil
}

// UpsertMany 以 user_id.value 為鍵整筆取代；沒有 user_id 的 profile 會被略過
func (repository *ProfileRepository) UpsertMany(contextValue context.Context, profiles []map[string]any) (_ *mongo.BulkWriteResult, returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	nowUTC := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(profiles))
	for i, profile := range profiles {
		userID, ok := orgchart.ProfileUserID(profile)
		if !ok {
			repository.logger.Warn("skip profile without user_id", zap.Int("position", i))
			continue
		}
		document := make(bson.M, len(profile)+1)
		for k, v := range profile {
			if k == "_id" {
				continue
			}
			document[k] = v
		}
		document["updatedAt"] = nowUTC
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{model.ProfileFieldUserID: userID}).
			SetReplacement(document).
			SetUpsert(true))
	}
	if len(writes) == 0 {
		return nil, errors.New("no profile with user_id to upsert")
	}

	result, bulkError := repository.collection.BulkWrite(contextValue, writes, options.BulkWrite().SetOrdered(false))
	if bulkError != nil {
		return nil, bulkError
	}
	repository.trace.ApplyTraceAttributes(span, core.TraceProfileRepoMeta{
		Op:            "upsert",
		Count:         len(writes),
		MatchedCount:  result.MatchedCount,
		UpsertedCount: result.UpsertedCount,
	})
	return result, nil
}

func (repository *ProfileRepository) DeleteByUserID(contextValue context.Context, userID string) (_ int64, returnedError error) {
	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	result, deleteError := repository.collection.DeleteOne(contextValue, bson.M{model.ProfileFieldUserID: userID})
	if deleteError != nil {
		return 0, deleteError
	}
	repository.trace.ApplyTraceAttributes(span, core.TraceProfileRepoMeta{Op: "delete", UserID: userID, DeletedCount: result.DeletedCount})
	return result.DeletedCount, nil
}

func (repository *ProfileRepository) Count(contextValue context.Context) (int64, error) {
	return repository.collection.CountDocuments(contextValue, bson.M{})
}
