package optimizer

import (
	"crypto/sha256"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/sharpline/internal/backtest"
	"github.com/yourusername/sharpline/internal/metrics"
	"github.com/yourusername/sharpline/internal/models"
	"github.com/yourusername/sharpline/internal/predictor"
)

// BreakevenWinPct is the win percentage needed to profit at fixed -110
// odds: 110/210.
const BreakevenWinPct = 110.0 / 210.0 * 100

var (
	winPayout  = decimal.NewFromInt(100)
	lossAmount = decimal.NewFromInt(110)
)

// Config controls one grid search.
type Config struct {
	// MinSampleSize filters out configurations graded on too few games to
	// trust.
	MinSampleSize int
	// Workers bounds trial parallelism. Trials share no rating state, so
	// any bound is safe.
	Workers int
	// TopN caps the ranked output after dedup.
	TopN int
	// GradeMode selects which spread line source counts toward the
	// simulated record: market-graded and self-graded results are never
	// mixed in one search.
	GradeMode models.LineSource

	Tolerances Tolerances
}

// Report is the operator-facing output of one search.
type Report struct {
	Ranked        []models.SimulationResult
	BestByWinPct  *models.SimulationResult
	BestByVolume  *models.SimulationResult
	Trials        int
	CacheHits     int
	BelowMinCount int
}

// Optimizer runs many independent backtest trials over a parameter grid.
type Optimizer struct {
	sport  predictor.SportParams
	cfg    Config
	logger *logrus.Logger
	memo   *gocache.Cache
}

// New creates an optimizer. The memo cache lets refinement searches over
// the same input skip replays for candidates a prior search already tried.
func New(sport predictor.SportParams, cfg Config, logger *logrus.Logger) *Optimizer {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.MinSampleSize <= 0 {
		cfg.MinSampleSize = 50
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 20
	}
	if cfg.GradeMode == models.LineSourceBaseline || cfg.GradeMode == "" {
		cfg.GradeMode = models.LineSourceMarket
	}
	if cfg.Tolerances == (Tolerances{}) {
		cfg.Tolerances = DefaultTolerances()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Optimizer{
		sport:  sport,
		cfg:    cfg,
		logger: logger,
		memo:   gocache.New(gocache.NoExpiration, 0),
	}
}

// Search runs one full backtest per candidate and ranks the outcomes by
// simulated profit. Results below the minimum sample size are excluded
// from the ranking; the ranked list is then near-duplicate filtered.
func (o *Optimizer) Search(in backtest.Input, grid Grid) (*Report, error) {
	candidates := grid.Candidates()
	o.logger.WithFields(logrus.Fields{
		"sport":      o.sport.Code,
		"candidates": len(candidates),
		"workers":    o.cfg.Workers,
	}).Info("Starting parameter search")

	results := make([]models.SimulationResult, len(candidates))
	cacheHits := 0
	inputKey := fingerprintInput(in)

	var mu sync.Mutex
	var wg sync.WaitGroup
	jobs := make(chan int)

	for w := 0; w < o.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res, hit := o.trial(in, inputKey, candidates[idx])
				mu.Lock()
				results[idx] = res
				if hit {
					cacheHits++
				}
				mu.Unlock()
			}
		}()
	}
	for idx := range candidates {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	report := o.rank(results)
	report.Trials = len(candidates)
	report.CacheHits = cacheHits
	metrics.RecordSearch(o.sport.Code, len(candidates))
	if len(report.Ranked) > 0 {
		metrics.SetBestProfit(o.sport.Code, report.Ranked[0].Profit)
	}
	return report, nil
}

// trial runs one candidate from scratch: fresh ratings, full replay. Memo
// keys combine the input fingerprint with the parameter hash so a cached
// result is only reused for the same slate of games.
func (o *Optimizer) trial(in backtest.Input, inputKey string, params models.SimulationParams) (models.SimulationResult, bool) {
	key := inputKey + ":" + HashParams(params)
	if cached, ok := o.memo.Get(key); ok {
		return cached.(models.SimulationResult), true
	}

	runner := backtest.NewRunner(o.sport, params, o.logger)
	run, err := runner.Run(in)
	if err != nil {
		o.logger.WithError(err).Warn("Trial failed")
		return models.SimulationResult{Params: params}, false
	}

	res := o.score(run, params)
	o.memo.Set(key, res, gocache.NoExpiration)
	return res, false
}

// score tallies spread outcomes inside the bettable window and converts
// them to a fixed -110 profit.
func (o *Optimizer) score(run *backtest.Run, params models.SimulationParams) models.SimulationResult {
	res := models.SimulationResult{
		ID:         uuid.New(),
		Params:     params,
		TotalGames: run.Summary.ReplayedGames,
		CreatedAt:  time.Now().UTC(),
	}

	for _, r := range run.Results {
		if r.SpreadSource != o.cfg.GradeMode {
			continue
		}
		absSpread := math.Abs(r.Prediction.Spread)
		if absSpread < params.MinSpread || (params.MaxSpread > 0 && absSpread > params.MaxSpread) {
			continue
		}
		switch r.SpreadOutcome {
		case models.OutcomeWin:
			res.Wins++
		case models.OutcomeLoss:
			res.Losses++
		case models.OutcomePush:
			res.Pushes++
		}
	}

	res.TotalGraded = res.Wins + res.Losses + res.Pushes
	res.WinPct = models.WinPercentage(res.Wins, res.Losses)

	profit := winPayout.Mul(decimal.NewFromInt(int64(res.Wins))).
		Sub(lossAmount.Mul(decimal.NewFromInt(int64(res.Losses))))
	res.Profit, _ = profit.Float64()
	return res
}

// fingerprintInput identifies one replay input: the game slate plus any
// seeded ratings. Order independent, matching the runner's own sort.
func fingerprintInput(in backtest.Input) string {
	ids := make([]string, 0, len(in.Games))
	for _, g := range in.Games {
		ids = append(ids, g.ID.String())
	}
	sort.Strings(ids)

	seeds := make([]string, 0, len(in.InitialRatings))
	for id, r := range in.InitialRatings {
		seeds = append(seeds, fmt.Sprintf("%s=%g", id, r))
	}
	sort.Strings(seeds)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
	}
	for _, s := range seeds {
		h.Write([]byte(s))
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (o *Optimizer) rank(results []models.SimulationResult) *Report {
	report := &Report{}

	eligible := make([]models.SimulationResult, 0, len(results))
	for _, r := range results {
		if r.TotalGraded < o.cfg.MinSampleSize {
			report.BelowMinCount++
			continue
		}
		eligible = append(eligible, r)
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].Profit != eligible[j].Profit {
			return eligible[i].Profit > eligible[j].Profit
		}
		return HashParams(eligible[i].Params) < HashParams(eligible[j].Params)
	})

	ranked := FilterNearDuplicates(eligible, o.cfg.Tolerances)
	if len(ranked) > o.cfg.TopN {
		ranked = ranked[:o.cfg.TopN]
	}
	report.Ranked = ranked

	for i := range eligible {
		r := &eligible[i]
		if report.BestByWinPct == nil || r.WinPct > report.BestByWinPct.WinPct {
			report.BestByWinPct = r
		}
		if r.WinPct >= BreakevenWinPct {
			if report.BestByVolume == nil || r.TotalGraded > report.BestByVolume.TotalGraded {
				report.BestByVolume = r
			}
		}
	}
	return report
}
