package contracts

import (
	"context"
	"smartrx-service/internal/app/models"
)

type LaunchUsecase interface {
	ClassifyLaunch(ctx context.Context, request *models.LaunchRequest) (*models.LaunchResult, error)
	CompleteAuthorization(ctx context.Context, callbackURL string) error
}
