package banners

import (
	"context"
	"mediscan-service/internal/app/contracts"
	"mediscan-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// RepairWorker collapses banners left active by a partial activation.
type RepairWorker struct {
	log           *zap.Logger
	bannerUsecase contracts.BannerUsecase
}

func NewRepairWorker(log *zap.Logger, bannerUsecase contracts.BannerUsecase) *RepairWorker {
	return &RepairWorker{log: log, bannerUsecase: bannerUsecase}
}

func (w *RepairWorker) Run(ctx context.Context) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	result, err := w.bannerUsecase.Repair(ctx)
	if err != nil {
		w.log.Warn("banners.RepairWorker.Run repair failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if result.Deactivated > 0 {
		w.log.Info("banners.RepairWorker.Run collapsed duplicate active banners",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBannerIDKey, result.ActiveBannerID),
			zap.Int64(constvars.LoggingCountKey, result.Deactivated),
		)
	}
}
