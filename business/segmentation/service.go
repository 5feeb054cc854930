package segmentation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"smartCanteen/domain"
	"smartCanteen/pkg/logger"

	"github.com/google/uuid"
)

// maxTiers is the fixed size of the ordinal output scale.
const maxTiers = 5

// ---- Repository interfaces ----

type MerchantRepository interface {
	FindAll(ctx context.Context) ([]domain.Merchant, error)
}

type BehaviorRepository interface {
	CountActionsByMerchant(ctx context.Context, merchantID uint) ([]domain.ActionCount, error)
}

type PriceTierRepository interface {
	// ReplaceAll swaps the whole price_tiers table for the given rows in one
	// transaction.
	ReplaceAll(ctx context.Context, tiers []domain.PriceTier) error
}

// ---- Usecase / Service ----

// PipelineService recomputes every (user, merchant) price tier from raw
// behavior events. Merchants are isolation boundaries: features, scaling and
// clustering never mix data across merchants. Concurrent runs are not safe;
// the caller must serialize them.
type PipelineService struct {
	merchantRepo MerchantRepository
	behaviorRepo BehaviorRepository
	tierRepo     PriceTierRepository
}

func NewPipelineService(
	merchantRepo MerchantRepository,
	behaviorRepo BehaviorRepository,
	tierRepo PriceTierRepository,
) *PipelineService {
	return &PipelineService{
		merchantRepo: merchantRepo,
		behaviorRepo: behaviorRepo,
		tierRepo:     tierRepo,
	}
}

// Run executes the full recompute and returns a result object for the
// triggering caller. New tiers for all merchants are staged in memory and
// committed with a single transactional table swap, so a pricing lookup
// never observes a cleared-but-unrepopulated table.
func (s *PipelineService) Run(ctx context.Context) (domain.PipelineResult, error) {
	start := time.Now()
	runID := uuid.NewString()

	logger.Info("pipeline_start", "run_id", runID)

	merchants, err := s.merchantRepo.FindAll(ctx)
	if err != nil {
		return s.fail(runID, fmt.Errorf("load merchants: %w", err))
	}

	var staged []domain.PriceTier
	processed := 0
	skipped := 0

	for _, merchant := range merchants {
		// cancellation point between merchants: already-scored merchants are
		// dropped with the run since nothing is committed yet
		if err := ctx.Err(); err != nil {
			return s.fail(runID, fmt.Errorf("pipeline cancelled: %w", err))
		}

		tiers, err := s.scoreMerchant(ctx, merchant.ID)
		if err != nil {
			return s.fail(runID, fmt.Errorf("score merchant %d: %w", merchant.ID, err))
		}
		if tiers == nil {
			skipped++
			PipelineMerchantsSkipped.Inc()
			continue
		}

		processed++
		staged = append(staged, tiers...)

		logger.Debug("pipeline_merchant_scored",
			"run_id", runID,
			"merchant_id", merchant.ID,
			"users", len(tiers),
		)
	}

	if err := s.tierRepo.ReplaceAll(ctx, staged); err != nil {
		return s.fail(runID, fmt.Errorf("replace price tiers: %w", err))
	}

	elapsed := time.Since(start)
	PipelineRunsTotal.WithLabelValues("success").Inc()
	PipelineTiersWritten.Add(float64(len(staged)))
	PipelineDuration.Observe(elapsed.Seconds())

	result := domain.PipelineResult{
		Success:            true,
		RunID:              runID,
		TiersWritten:       len(staged),
		MerchantsProcessed: processed,
		MerchantsSkipped:   skipped,
		Message: fmt.Sprintf(
			"pipeline complete: %d tiers written for %d merchants (%d skipped)",
			len(staged), processed, skipped,
		),
	}

	logger.Info("pipeline_complete",
		"run_id", runID,
		"tiers_written", result.TiersWritten,
		"merchants_processed", processed,
		"merchants_skipped", skipped,
		"elapsed", elapsed.String(),
	)

	return result, nil
}

// scoreMerchant aggregates one merchant's behavior events into feature
// vectors, clusters them and maps clusters onto the 1-5 tier scale. A nil
// result with nil error means the merchant was skipped for insufficient
// data, which is not an error.
func (s *PipelineService) scoreMerchant(ctx context.Context, merchantID uint) ([]domain.PriceTier, error) {
	counts, err := s.behaviorRepo.CountActionsByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("load behavior counts: %w", err)
	}

	matrix := buildFeatureMatrix(counts)

	n := len(matrix.userIDs)
	k := n
	if k > maxTiers {
		k = maxTiers
	}
	if k <= 1 {
		// 0 or 1 distinct users: clustering is not meaningful, no tiers are
		// written for this merchant this run
		logger.Debug("pipeline_skip_merchant", "merchant_id", merchantID, "users", n)
		return nil, nil
	}

	standardize(matrix.rows)

	rng := rand.New(rand.NewSource(clusterSeed))
	assign, centroids := kMeans(matrix.rows, k, rng)
	levelByCluster := mapClusterLevels(clusterValues(centroids))

	tiers := make([]domain.PriceTier, 0, n)
	for i, userID := range matrix.userIDs {
		tiers = append(tiers, domain.PriceTier{
			UserID:     userID,
			MerchantID: merchantID,
			Tier:       levelByCluster[assign[i]],
		})
	}

	return tiers, nil
}

func (s *PipelineService) fail(runID string, err error) (domain.PipelineResult, error) {
	PipelineRunsTotal.WithLabelValues("error").Inc()
	logger.Error("pipeline_failed", "run_id", runID, "error", err)

	return domain.PipelineResult{
		Success: false,
		RunID:   runID,
		Error:   err.Error(),
	}, err
}
