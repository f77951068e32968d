package lookups

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/responses"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Districts and upazilas never change at runtime, so both lists are served
// from Redis and only read from MongoDB when the cached copy is gone.
type lookupUsecase struct {
	LookupRepository contracts.LookupRepository
	RedisRepository  contracts.RedisRepository
	CacheTTL         time.Duration
	Log              *zap.Logger
}

func NewLookupUsecase(
	lookupRepository contracts.LookupRepository,
	redisRepository contracts.RedisRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) contracts.LookupUsecase {
	return &lookupUsecase{
		LookupRepository: lookupRepository,
		RedisRepository:  redisRepository,
		CacheTTL:         cacheTTL,
		Log:              logger,
	}
}

func (uc *lookupUsecase) FindAllDistricts(ctx context.Context) ([]responses.District, error) {
	var districts []models.District
	err := uc.cached(ctx, constvars.RedisKeyDistrictList, &districts, func() (interface{}, error) {
		found, err := uc.LookupRepository.FindAllDistricts(ctx)
		districts = found
		return found, err
	})
	if err != nil {
		return nil, err
	}

	response := make([]responses.District, len(districts))
	for i, eachDistrict := range districts {
		response[i] = eachDistrict.ConvertIntoResponse()
	}
	return response, nil
}

// FindUpazilas lists every upazila, or only those of districtID when given.
func (uc *lookupUsecase) FindUpazilas(ctx context.Context, districtID string) ([]responses.Upazila, error) {
	var upazilas []models.Upazila
	err := uc.cached(ctx, constvars.RedisKeyUpazilaList, &upazilas, func() (interface{}, error) {
		found, err := uc.LookupRepository.FindAllUpazilas(ctx)
		upazilas = found
		return found, err
	})
	if err != nil {
		return nil, err
	}

	response := make([]responses.Upazila, 0, len(upazilas))
	for _, eachUpazila := range upazilas {
		if districtID != "" && eachUpazila.DistrictID != districtID {
			continue
		}
		response = append(response, eachUpazila.ConvertIntoResponse())
	}
	return response, nil
}

// cached decodes key into out. On a miss, or when Redis is unavailable, load
// fills out from the store and the result is written back best effort.
func (uc *lookupUsecase) cached(ctx context.Context, key string, out interface{}, load func() (interface{}, error)) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	data, err := uc.RedisRepository.Get(ctx, key)
	if err != nil {
		uc.Log.Warn("lookupUsecase.cached redis read failed, falling back to store",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
	if data != "" {
		if err := json.Unmarshal([]byte(data), out); err == nil {
			return nil
		}
		uc.Log.Warn("lookupUsecase.cached discarding unreadable cache entry",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
		)
	}

	value, err := load()
	if err != nil {
		return err
	}

	if err := uc.RedisRepository.Set(ctx, key, value, uc.CacheTTL); err != nil {
		uc.Log.Warn("lookupUsecase.cached redis write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
	return nil
}
