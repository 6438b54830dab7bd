package analysis

import (
	"context"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"

	"github.com/johnquangdev/comment-analytics/internal/domain/entities"
	"github.com/johnquangdev/comment-analytics/internal/domain/repositories"
)

// ReconcileOutcome describes the write issued for a fresh result
type ReconcileOutcome struct {
	RecordID      string
	Created       bool
	ChangedFields []entities.AnalysisField
}

// Written reports whether the store was touched
func (o *ReconcileOutcome) Written() bool {
	return o.Created || len(o.ChangedFields) > 0
}

// ChangedFieldNames returns the changed fields as strings
func (o *ReconcileOutcome) ChangedFieldNames() []string {
	return entities.AnalysisPatch{Fields: o.ChangedFields}.FieldNames()
}

// ChangedFields lists the top-level fields whose values differ by deep equality.
// Nil and empty collections compare equal.
func ChangedFields(stored, fresh entities.AnalysisResult) []entities.AnalysisField {
	stored = stored.Normalize()
	fresh = fresh.Normalize()

	changed := make([]entities.AnalysisField, 0, len(entities.AnalysisFields))
	for _, field := range entities.AnalysisFields {
		if !cmp.Equal(field.Value(stored), field.Value(fresh), cmpopts.EquateEmpty()) {
			changed = append(changed, field)
		}
	}
	return changed
}

// Reconciler writes a fresh result with the fewest possible changes
type Reconciler struct {
	analyses repositories.AnalysisRepository
	logger   *zap.Logger
}

// NewReconciler creates a reconciler over the analysis store
func NewReconciler(analyses repositories.AnalysisRepository, logger *zap.Logger) *Reconciler {
	return &Reconciler{analyses: analyses, logger: logger}
}

// Reconcile creates the record when none exists, patches only the changed
// top-level fields otherwise, and writes nothing when the result is unchanged.
func (r *Reconciler) Reconcile(ctx context.Context, videoID string, result entities.AnalysisResult) (*ReconcileOutcome, error) {
	stored, err := r.analyses.GetAnalysis(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored analysis: %w", err)
	}

	if stored == nil {
		id, err := r.analyses.CreateAnalysis(ctx, videoID, result)
		if err != nil {
			return nil, fmt.Errorf("failed to create analysis: %w", err)
		}
		if r.logger != nil {
			r.logger.Info("💾 Analysis created",
				zap.String("video_id", videoID),
				zap.String("analysis_id", id),
			)
		}
		all := append([]entities.AnalysisField(nil), entities.AnalysisFields...)
		return &ReconcileOutcome{RecordID: id, Created: true, ChangedFields: all}, nil
	}

	changed := ChangedFields(stored.Result(), result)
	outcome := &ReconcileOutcome{RecordID: stored.ID, ChangedFields: changed}
	if len(changed) == 0 {
		if r.logger != nil {
			r.logger.Info("⏭️ Analysis unchanged, skipping write",
				zap.String("video_id", videoID),
				zap.String("analysis_id", stored.ID),
			)
		}
		return outcome, nil
	}

	patch := entities.AnalysisPatch{Fields: changed, Result: result}
	modified, err := r.analyses.PatchAnalysis(ctx, videoID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to patch analysis: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("📝 Analysis patched",
			zap.String("video_id", videoID),
			zap.String("analysis_id", stored.ID),
			zap.Strings("fields", patch.FieldNames()),
			zap.Int64("modified", modified),
		)
	}
	return outcome, nil
}
