package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/prepmatch/backend/pkg/apperr"
	"github.com/prepmatch/backend/pkg/application"
	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/jobposting"
	"github.com/prepmatch/backend/pkg/llm"
)

// reasonScoreFloor: rows below this score get the deterministic reason only,
// so a run does not spend model calls on poor fits.
const reasonScoreFloor = 50

// RunReport summarizes one writer run.
type RunReport struct {
	Postings   int
	Failed     int
	Rows       int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Writer is the matching cache writer: it scores every candidate in the pool
// against each active posting and replaces the posting's cached rows.
type Writer struct {
	postings     jobposting.Repository
	users        auth.UserRepository
	applications application.Repository
	matches      Repository
	scorer       Scorer
	chat         llm.ChatModel
	log          *zap.Logger
}

func NewWriter(
	postings jobposting.Repository,
	users auth.UserRepository,
	applications application.Repository,
	matches Repository,
	scorer Scorer,
	chat llm.ChatModel,
	log *zap.Logger,
) *Writer {
	if scorer == nil {
		scorer = NewHeuristicScorer()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{
		postings:     postings,
		users:        users,
		applications: applications,
		matches:      matches,
		scorer:       scorer,
		chat:         chat,
		log:          log,
	}
}

// GenerateAll refreshes the cache for every active posting. A failure on one
// posting is logged and counted but does not stop the run; the aggregate error
// marks the whole run failed so the scheduler's retry policy applies.
func (w *Writer) GenerateAll(ctx context.Context) (RunReport, error) {
	report := RunReport{StartedAt: time.Now().UTC()}

	postings, err := w.postings.ListActive(ctx)
	if err != nil {
		return report, fmt.Errorf("list active postings: %w", err)
	}
	candidates, err := w.users.ListCandidates(ctx)
	if err != nil {
		return report, fmt.Errorf("list candidates: %w", err)
	}

	report.Postings = len(postings)
	for _, p := range postings {
		n, err := w.generate(ctx, p, candidates)
		if err != nil {
			report.Failed++
			w.log.Error("matching generation failed for posting",
				zap.String("job_posting_id", p.ID.String()),
				zap.Error(err))
			continue
		}
		report.Rows += n
	}
	report.FinishedAt = time.Now().UTC()

	w.log.Info("matching run finished",
		zap.Int("postings", report.Postings),
		zap.Int("failed", report.Failed),
		zap.Int("rows", report.Rows),
		zap.Duration("took", report.FinishedAt.Sub(report.StartedAt)))

	if report.Failed > 0 {
		return report, fmt.Errorf("matching run: %d of %d postings failed", report.Failed, report.Postings)
	}
	return report, nil
}

// GenerateForPosting refreshes the cache for a single posting. Used by the
// regenerate endpoint; overlapping calls are last-writer-wins.
func (w *Writer) GenerateForPosting(ctx context.Context, jobPostingID uuid.UUID) (int, error) {
	p, err := w.postings.GetByID(ctx, jobPostingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.New(apperr.NotFound, "job posting not found")
		}
		return 0, err
	}
	candidates, err := w.users.ListCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list candidates: %w", err)
	}
	return w.generate(ctx, p, candidates)
}

func (w *Writer) generate(ctx context.Context, p jobposting.JobPosting, candidates []auth.User) (int, error) {
	pool, err := w.candidatePool(ctx, p, candidates)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	rows := make([]CandidateMatching, 0, len(pool))
	for _, c := range pool {
		b := w.scorer.Score(p, c)
		rows = append(rows, CandidateMatching{
			ID:              uuid.New(),
			JobPostingID:    p.ID,
			CandidateID:     c.ID,
			MatchScore:      b.Score,
			SkillsMatch:     b.Skills,
			DomainMatch:     b.Domain,
			ExperienceMatch: b.Experience,
			AIReason:        w.reason(ctx, p, c, b),
			GeneratedAt:     now,
		})
	}

	if err := w.matches.ReplaceForPosting(ctx, p.ID, rows); err != nil {
		return 0, fmt.Errorf("replace cached matches: %w", err)
	}
	return len(rows), nil
}

// candidatePool prefers the posting's applicants; a posting without
// applications is matched against the whole candidate pool.
func (w *Writer) candidatePool(ctx context.Context, p jobposting.JobPosting, all []auth.User) ([]auth.User, error) {
	if w.applications == nil {
		return all, nil
	}
	ids, err := w.applications.CandidateIDsByPosting(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	if len(ids) == 0 {
		return all, nil
	}
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var pool []auth.User
	for _, c := range all {
		if _, ok := wanted[c.ID]; ok {
			pool = append(pool, c)
		}
	}
	return pool, nil
}

// reason asks the chat model for a one-sentence justification, degrading to a
// deterministic sentence when the model is absent, the fit is poor or the call
// fails.
func (w *Writer) reason(ctx context.Context, p jobposting.JobPosting, c auth.User, b Breakdown) string {
	fallback := fmt.Sprintf(
		"Couvre %.0f%% des compétences requises, %.0f%% des domaines, adéquation d'expérience %.0f%%.",
		b.Skills, b.Domain, b.Experience,
	)
	if w.chat == nil || b.Score < reasonScoreFloor {
		return fallback
	}

	system := "Tu es un analyste RH. Réponds en une seule phrase, sans préambule."
	user := fmt.Sprintf(
		"Poste : %s\nCompétences requises : %s\nCompétences du candidat : %s\nScores — compétences %.0f%%, domaine %.0f%%, expérience %.0f%%.\nExplique en une phrase pourquoi ce candidat correspond (ou non) au poste.",
		p.Title,
		strings.Join(p.Skills, ", "),
		strings.Join(c.Skills, ", "),
		b.Skills, b.Domain, b.Experience,
	)
	answer, err := w.chat.Ask(ctx, system, user)
	if err != nil {
		w.log.Warn("ai reason unavailable, using fallback",
			zap.String("candidate_id", c.ID.String()),
			zap.Error(err))
		return fallback
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fallback
	}
	return answer
}
