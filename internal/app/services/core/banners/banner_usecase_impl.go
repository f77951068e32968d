package banners

import (
	"context"
	"fmt"
	"mediscan-service/internal/app/config"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/app/models"
	"mediscan-service/internal/pkg/constvars"
	"mediscan-service/internal/pkg/dto/requests"
	"mediscan-service/internal/pkg/dto/responses"
	"mediscan-service/internal/pkg/exceptions"
	"mediscan-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type bannerUsecase struct {
	BannerRepository contracts.BannerRepository
	AuthUsecase      contracts.AuthUsecase
	InternalConfig   *config.InternalConfig
	Log              *zap.Logger
}

func NewBannerUsecase(
	bannerRepository contracts.BannerRepository,
	authUsecase contracts.AuthUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BannerUsecase {
	return &bannerUsecase{
		BannerRepository: bannerRepository,
		AuthUsecase:      authUsecase,
		InternalConfig:   internalConfig,
		Log:              logger,
	}
}

// Create always stores the banner inactive.
func (uc *bannerUsecase) Create(ctx context.Context, request *requests.CreateBanner) (*responses.Banner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bannerUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	banner := &models.Banner{
		Name:        request.Name,
		Image:       request.Image,
		Title:       request.Title,
		Description: request.Description,
		CouponCode:  request.CouponCode,
		CouponRate:  request.CouponRate,
		IsActive:    false,
	}
	banner.SetCreatedAtUpdatedAt()

	bannerID, err := uc.BannerRepository.Create(ctx, banner)
	if err != nil {
		return nil, err
	}
	banner.ID = bannerID

	response := banner.ConvertIntoResponse()
	return &response, nil
}

func (uc *bannerUsecase) FindAll(ctx context.Context) ([]responses.Banner, error) {
	banners, err := uc.BannerRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	response := make([]responses.Banner, len(banners))
	for i, eachBanner := range banners {
		response[i] = eachBanner.ConvertIntoResponse()
	}
	return response, nil
}

func (uc *bannerUsecase) DeleteByID(ctx context.Context, identity *models.Identity, bannerID string) error {
	if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
		return err
	}

	deleted, err := uc.BannerRepository.DeleteByID(ctx, bannerID)
	if err != nil {
		return err
	}
	if !deleted {
		return exceptions.ErrBannerNotFound(nil, bannerID)
	}
	return nil
}

// Activate makes bannerID the active banner.
//
// Every activation draws a strictly increasing sequence. The target is
// stamped active first, then every active banner with a lower sequence is
// switched off. Readers always pick the active banner with the highest
// sequence, so the short window where two banners are flagged active is not
// observable. If a newer activation finished while this one was running, the
// target steps down so the newest one wins.
func (uc *bannerUsecase) Activate(ctx context.Context, identity *models.Identity, bannerID string) (*responses.Banner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bannerUsecase.Activate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBannerIDKey, bannerID),
	)

	if uc.InternalConfig.Banner.ActivationRequiresAdmin {
		if err := uc.AuthUsecase.AuthorizeAdmin(ctx, identity); err != nil {
			return nil, err
		}
	}

	seq, err := uc.BannerRepository.NextActivationSeq(ctx)
	if err != nil {
		return nil, err
	}

	matched, err := uc.BannerRepository.MarkActive(ctx, bannerID, seq, time.Now())
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, exceptions.ErrBannerNotFound(nil, bannerID)
	}

	if err := uc.deactivateOlder(ctx, bannerID, seq); err != nil {
		return nil, err
	}

	newer, err := uc.BannerRepository.FindActiveNewerThan(ctx, seq)
	if err != nil {
		uc.Log.Warn("bannerUsecase.Activate supersede check failed, repair will settle it",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBannerIDKey, bannerID),
			zap.Error(err),
		)
	} else if newer != nil {
		if _, err := uc.BannerRepository.DeactivateIfSeq(ctx, bannerID, seq); err != nil {
			uc.Log.Warn("bannerUsecase.Activate step down failed, repair will settle it",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBannerIDKey, bannerID),
				zap.Error(err),
			)
		}
		uc.Log.Info("bannerUsecase.Activate superseded by a newer activation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBannerIDKey, bannerID),
			zap.String("superseded_by", newer.ID),
		)
	}

	banner, err := uc.BannerRepository.FindByID(ctx, bannerID)
	if err != nil {
		return nil, err
	}
	if banner == nil {
		return nil, exceptions.ErrBannerNotFound(nil, bannerID)
	}

	utils.LogBusinessEvent(uc.Log, "banner_activated", requestID,
		zap.String(constvars.LoggingBannerIDKey, bannerID),
		zap.Int64(constvars.LoggingActivationSeqKey, seq),
	)
	response := banner.ConvertIntoResponse()
	return &response, nil
}

// GetActive returns the most recently activated active banner. Older ones
// still flagged active are stale and get cleaned up by Repair.
func (uc *bannerUsecase) GetActive(ctx context.Context) (*responses.Banner, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	active, err := uc.BannerRepository.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, exceptions.ErrNoActiveBanner(nil)
	}
	if len(active) > 1 {
		uc.Log.Warn("bannerUsecase.GetActive more than one banner flagged active",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingCountKey, len(active)),
			zap.String(constvars.LoggingBannerIDKey, active[0].ID),
		)
	}

	response := active[0].ConvertIntoResponse()
	return &response, nil
}

// Repair keeps the banner readers already see and deactivates the rest.
func (uc *bannerUsecase) Repair(ctx context.Context) (*responses.BannerRepair, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	active, err := uc.BannerRepository.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &responses.BannerRepair{}
	if len(active) == 0 {
		return result, nil
	}
	result.ActiveBannerID = active[0].ID
	if len(active) == 1 {
		return result, nil
	}

	deactivated, err := uc.BannerRepository.DeactivateAllExcept(ctx, active[0].ID)
	if err != nil {
		return nil, err
	}
	result.Deactivated = deactivated

	uc.Log.Warn("bannerUsecase.Repair deactivated stale banners",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBannerIDKey, active[0].ID),
		zap.Int64(constvars.LoggingCountKey, deactivated),
	)
	return result, nil
}

func (uc *bannerUsecase) deactivateOlder(ctx context.Context, bannerID string, seq int64) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	attempts := uc.InternalConfig.Banner.DeactivateMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		_, lastErr = uc.BannerRepository.DeactivateOlderThan(ctx, bannerID, seq)
		if lastErr == nil {
			return nil
		}

		uc.Log.Warn("bannerUsecase.deactivateOlder attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBannerIDKey, bannerID),
			zap.Int(constvars.LoggingAttemptKey, attempt),
			zap.Error(lastErr),
		)
		if attempt == attempts {
			break
		}
		select {
		case <-time.After(uc.InternalConfig.Banner.DeactivateBackoff):
		case <-ctx.Done():
			return exceptions.ErrPartialActivation(fmt.Errorf("deactivating older banners interrupted: %v", ctx.Err()), bannerID)
		}
	}

	return exceptions.ErrPartialActivation(fmt.Errorf("deactivating older banners failed after %d attempts: %v", attempts, lastErr), bannerID)
}
