package services

import (
	"slices"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/regula-backend/internal/data/repos"
	"github.com/yungbote/regula-backend/internal/modules/regula/strategy"
	"github.com/yungbote/regula-backend/internal/pkg/dbctx"
	"github.com/yungbote/regula-backend/internal/pkg/logger"
)

const defaultRepairBatch = 200

type StrategyRepairResult struct {
	Scanned int         `json:"scanned"`
	Changed []uuid.UUID `json:"changed"`
	DryRun  bool        `json:"dry_run"`
}

// StrategyRepair rewrites stored legacy strategy ids to their canonical form.
type StrategyRepair struct {
	log       *logger.Logger
	subPlans  repos.SubPlanRepo
	batchSize int
}

func NewStrategyRepair(baseLog *logger.Logger, subPlans repos.SubPlanRepo) *StrategyRepair {
	return &StrategyRepair{
		log:       baseLog.With("service", "StrategyRepair"),
		subPlans:  subPlans,
		batchSize: defaultRepairBatch,
	}
}

// Run pages through every sub-plan, or only userID's when it is set, and
// normalizes selected strategy ids. With dryRun nothing is written.
func (s *StrategyRepair) Run(dbc dbctx.Context, userID uuid.UUID, dryRun bool) (StrategyRepairResult, error) {
	res := StrategyRepairResult{Changed: []uuid.UUID{}, DryRun: dryRun}
	after := uuid.Nil
	for {
		batch, err := s.subPlans.ListBatch(dbc, after, s.batchSize)
		if err != nil {
			return res, err
		}
		if len(batch) == 0 {
			return res, nil
		}
		after = batch[len(batch)-1].ID

		for _, sp := range batch {
			if userID != uuid.Nil && sp.UserID != userID {
				continue
			}
			res.Scanned++
			current := []string(sp.SelectedStrategies)
			normalized := strategy.NormalizeIDs(current)
			if slices.Equal(current, normalized) {
				continue
			}
			res.Changed = append(res.Changed, sp.ID)
			if dryRun {
				continue
			}
			if err := s.subPlans.UpdateFields(dbc, sp.ID, map[string]any{
				"selected_strategies": datatypes.JSONSlice[string](normalized),
			}); err != nil {
				s.log.Warn("strategy repair failed", "sub_plan_id", sp.ID, "error", err)
				return res, err
			}
		}
		if len(batch) < s.batchSize {
			return res, nil
		}
	}
}
