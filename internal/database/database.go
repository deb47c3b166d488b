package database

import (
	client "orgchart/internal/database/client"
	fluentdRepo "orgchart/internal/database/fluentd/repository"
	mongoRepo "orgchart/internal/database/mongodb/repository"
	redisRepo "orgchart/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
