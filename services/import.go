package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scitedotai/scite-vivo-integration/config"
	"github.com/scitedotai/scite-vivo-integration/models"
	"github.com/scitedotai/scite-vivo-integration/providers/scite"
	"github.com/scitedotai/scite-vivo-integration/vivo"
)

// ImportService führt Importläufe aus und protokolliert sie in der
// Datenbank. Ein Lauf ist die ganze Pipeline: Records holen, Graph bauen,
// Graph in VIVO laden.
type ImportService struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *zap.Logger
	Scite  *scite.Client
}

// NewImportService creates a new import service.
func NewImportService(cfg *config.Config, db *gorm.DB, logger *zap.Logger, client *scite.Client) *ImportService {
	return &ImportService{
		Config: cfg,
		DB:     db,
		Logger: logger,
		Scite:  client,
	}
}

// StartImport bereinigt die DOI-Liste und legt den Laufdatensatz an, bevor
// irgendein Pipelineschritt läuft. Aufrufer bekommen so die Lauf-ID sofort
// und können Execute danach asynchron ausführen. Zurück kommt neben dem
// Lauf die tatsächlich übernommene DOI-Liste.
func (s *ImportService) StartImport(ctx context.Context, dois []string, source string) (*models.ImportRun, []string, error) {
	dois = dedupeDOIs(dois)
	if limit := s.Config.ImportBatchLimit; limit > 0 && len(dois) > limit {
		s.Logger.Warn("Batch truncated to configured limit",
			zap.Int("limit", limit), zap.Int("requested", len(dois)))
		dois = dois[:limit]
	}

	run := &models.ImportRun{
		Source:    source,
		Status:    models.RunStatusRunning,
		Requested: len(dois),
	}
	if err := s.DB.WithContext(ctx).Create(run).Error; err != nil {
		return nil, nil, fmt.Errorf("create import run: %w", err)
	}
	return run, dois, nil
}

// Execute drives the pipeline for a run StartImport already recorded and
// writes the terminal state. The error is non-nil only for run-level
// outcomes (source fetch failed, nothing retrieved, commit rejected);
// per-paper problems land in the run's skip records instead of aborting
// the batch.
func (s *ImportService) Execute(ctx context.Context, run *models.ImportRun, dois []string) (*models.ImportRun, error) {
	log := s.Logger.With(zap.Uint("run_id", run.ID), zap.String("source", run.Source))
	log.Info("Import run started", zap.Int("dois", len(dois)))

	papers, err := s.Scite.FetchPapers(ctx, dois)
	if err != nil {
		return s.finish(run, models.RunStatusFailed, fmt.Errorf("fetch papers: %w", err))
	}
	run.Retrieved = len(papers)
	if len(papers) == 0 {
		return s.finish(run, models.RunStatusEmpty, errors.New("no papers retrieved"))
	}

	assembler := vivo.NewAssembler(s.Config, s.Scite, log)
	graph, report := assembler.Assemble(ctx, papers)
	run.Processed = report.Processed
	run.Skipped = len(report.Skipped)
	run.TripleCount = report.Triples
	s.saveSkips(run.ID, report.Skipped, log)

	importer := vivo.NewImporter(s.Config, log)
	if err := importer.Commit(ctx, graph); err != nil {
		if errors.Is(err, vivo.ErrEmptyGraph) {
			return s.finish(run, models.RunStatusEmpty, err)
		}
		var rejected *vivo.RejectedError
		if errors.As(err, &rejected) {
			run.FallbackFile = rejected.FallbackFile
		}
		return s.finish(run, models.RunStatusFailed, err)
	}

	run.Status = models.RunStatusSucceeded
	if err := s.DB.Save(run).Error; err != nil {
		log.Error("Failed to persist run result", zap.Error(err))
	}
	log.Info("Import run committed",
		zap.Int("processed", run.Processed),
		zap.Int("skipped", run.Skipped),
		zap.Int("triples", run.TripleCount))
	return run, nil
}

// RunImport executes the whole pipeline for a batch of DOIs in one call
// and returns the finished run row.
func (s *ImportService) RunImport(ctx context.Context, dois []string, source string) (*models.ImportRun, error) {
	run, dois, err := s.StartImport(ctx, dois, source)
	if err != nil {
		return nil, err
	}
	return s.Execute(ctx, run, dois)
}

// finish writes the terminal state and hands the causing error back to the
// caller in one step.
func (s *ImportService) finish(run *models.ImportRun, status string, cause error) (*models.ImportRun, error) {
	run.Status = status
	run.Error = cause.Error()
	if err := s.DB.Save(run).Error; err != nil {
		s.Logger.Error("Failed to persist run result",
			zap.Uint("run_id", run.ID), zap.Error(err))
	}
	return run, cause
}

func (s *ImportService) saveSkips(runID uint, skips []vivo.Skip, log *zap.Logger) {
	for _, sk := range skips {
		row := models.SkippedPaper{RunID: runID, DOI: sk.DOI, Reason: sk.Reason}
		if err := s.DB.Create(&row).Error; err != nil {
			log.Warn("Failed to persist skip record",
				zap.String("reason", sk.Reason), zap.Error(err))
		}
	}
}

// Enqueue merkt DOIs für den nächsten geplanten Lauf vor. Bereits
// vorgemerkte Identifier werden still übersprungen.
func (s *ImportService) Enqueue(ctx context.Context, dois []string) (int, error) {
	queued := 0
	for _, doi := range dedupeDOIs(dois) {
		entry := models.QueuedDOI{DOI: doi}
		res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doi"}},
			DoNothing: true,
		}).Create(&entry)
		if res.Error != nil {
			return queued, fmt.Errorf("enqueue %s: %w", doi, res.Error)
		}
		queued += int(res.RowsAffected)
	}
	return queued, nil
}

// RunQueued drains the next backlog batch through RunImport. An empty
// backlog is a quiet no-op, not an error. Entries are marked imported only
// after the run committed.
func (s *ImportService) RunQueued(ctx context.Context) (*models.ImportRun, error) {
	var pending []models.QueuedDOI
	err := s.DB.WithContext(ctx).
		Where("imported = ?", false).
		Order("created_at asc").
		Limit(s.Config.ImportBatchLimit).
		Find(&pending).Error
	if err != nil {
		return nil, fmt.Errorf("load queue: %w", err)
	}
	if len(pending) == 0 {
		s.Logger.Info("Import queue empty, nothing to do")
		return nil, nil
	}

	dois := make([]string, 0, len(pending))
	for _, entry := range pending {
		dois = append(dois, entry.DOI)
	}

	run, err := s.RunImport(ctx, dois, models.RunSourceCron)
	if err != nil {
		return run, err
	}

	now := time.Now()
	err = s.DB.Model(&models.QueuedDOI{}).
		Where("doi IN ?", dois).
		Updates(map[string]any{"imported": true, "imported_at": &now}).Error
	if err != nil {
		s.Logger.Error("Failed to mark queue entries as imported", zap.Error(err))
	}
	return run, nil
}

// dedupeDOIs trims whitespace and drops empties and repeats while keeping
// the original order.
func dedupeDOIs(dois []string) []string {
	seen := make(map[string]bool, len(dois))
	out := make([]string, 0, len(dois))
	for _, doi := range dois {
		doi = strings.TrimSpace(doi)
		if doi == "" || seen[doi] {
			continue
		}
		seen[doi] = true
		out = append(out, doi)
	}
	return out
}
