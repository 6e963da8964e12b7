package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pageza/fuelplate/backend/internal/engine"
	"github.com/pageza/fuelplate/backend/internal/monitoring"
	"go.uber.org/zap"
)

// ErrEmptyMeal is returned when an accepted meal has no ingredients.
var ErrEmptyMeal = errors.New("meal has no ingredients")

// ObjectPutter is the part of the S3 client the archive writes with.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// URLPresigner issues time-limited download links. *config.S3Config
// satisfies it.
type URLPresigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// ArchivedMeal is where an accepted meal was written.
type ArchivedMeal struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type archivedMealRecord struct {
	UserID     uuid.UUID            `json:"user_id"`
	AcceptedAt time.Time            `json:"accepted_at"`
	Meal       *engine.ComposedMeal `json:"meal"`
}

// MealArchive hands accepted meals to the meal log by writing them to S3.
type MealArchive struct {
	putter    ObjectPutter
	presigner URLPresigner
	bucket    string
	expiry    time.Duration
	now       func() time.Time
	logger    *zap.Logger
	metrics   *monitoring.MetricsCollector
}

// Ensure MealArchive implements IMealArchive
var _ IMealArchive = (*MealArchive)(nil)

// NewMealArchive creates a new MealArchive instance
func NewMealArchive(putter ObjectPutter, presigner URLPresigner, bucket string, expiry time.Duration, logger *zap.Logger, metrics *monitoring.MetricsCollector) *MealArchive {
	return &MealArchive{
		putter:    putter,
		presigner: presigner,
		bucket:    bucket,
		expiry:    expiry,
		now:       time.Now,
		logger:    logger.Named("meal_archive"),
		metrics:   metrics,
	}
}

// Archive stores the meal as JSON under meals/<user>/<date>/<id>.json and
// returns a presigned link to it.
func (a *MealArchive) Archive(ctx context.Context, userID uuid.UUID, meal *engine.ComposedMeal) (*ArchivedMeal, error) {
	if meal == nil || len(meal.Ingredients) == 0 {
		return nil, ErrEmptyMeal
	}

	now := a.now().UTC()
	body, err := json.Marshal(archivedMealRecord{UserID: userID, AcceptedAt: now, Meal: meal})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal meal: %w", err)
	}

	key := fmt.Sprintf("meals/%s/%s/%s.json", userID, now.Format("2006-01-02"), uuid.NewString())
	_, err = a.putter.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		a.metrics.MealArchived("error")
		return nil, fmt.Errorf("failed to upload meal: %w", err)
	}
	a.metrics.MealArchived("ok")

	url, err := a.presigner.GeneratePresignedURL(ctx, key, a.expiry)
	if err != nil {
		a.logger.Warn("Failed to presign archived meal", zap.String("key", key), zap.Error(err))
		return &ArchivedMeal{Key: key}, nil
	}

	return &ArchivedMeal{Key: key, URL: url, ExpiresAt: now.Add(a.expiry)}, nil
}
