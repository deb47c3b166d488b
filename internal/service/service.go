package service

import (
	fluentdRepo "orgchart/internal/database/fluentd/repository"
	mongoRepo "orgchart/internal/database/mongodb/repository"
	redisRepo "orgchart/internal/database/redis/repository"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewHealthService,
	NewOrgchartService,
	wire.Bind(new(ProfileSource), new(*mongoRepo.ProfileRepository)),
	wire.Bind(new(RosterCache), new(*redisRepo.RosterCacheRepository)),
	wire.Bind(new(BuildLogger), new(*fluentdRepo.LogRepository)),
)
