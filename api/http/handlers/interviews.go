package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/prepmatch/backend/api/http/presenter"
	"github.com/prepmatch/backend/pkg/auth"
	"github.com/prepmatch/backend/pkg/interview"
	"github.com/prepmatch/backend/pkg/quiz"
)

// InterviewHandler serves the technical-test catalogue, result submission and
// meeting scheduling.
type InterviewHandler struct {
	quizzes  quiz.UseCase
	meetings interview.UseCase
}

func NewInterviewHandler(quizzes quiz.UseCase, meetings interview.UseCase) *InterviewHandler {
	return &InterviewHandler{quizzes: quizzes, meetings: meetings}
}

// ListQuizzes returns the technical-test catalogue.
// @Summary List technical tests
// @Tags    interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} quiz.JobQuiz
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /interviews [get]
func (h *InterviewHandler) ListQuizzes(c *fiber.Ctx) error {
	if _, _, err := currentUser(c); err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	limit, offset := parseLimitOffset(c, 50)
	quizzes, err := h.quizzes.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "impossible de charger les tests techniques")
	}
	if quizzes == nil {
		quizzes = []quiz.JobQuiz{}
	}
	return presenter.JSON(c, http.StatusOK, quizzes)
}

type submitResultRequest struct {
	Score    int `json:"score"`
	MaxScore int `json:"maxScore"`
}

// SubmitResult records a candidate's score on one test.
// @Summary Submit quiz result
// @Tags    interviews
// @Accept  json
// @Produce json
// @Param   id path string true "Quiz ID (UUID)"
// @Param   input body submitResultRequest true "result payload"
// @Security BearerAuth
// @Success 201 {object} quiz.QuizResult
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /quizzes/{id}/results [post]
func (h *InterviewHandler) SubmitResult(c *fiber.Ctx) error {
	actorID, role, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	if role != auth.RoleCandidate {
		return presenter.Error(c, http.StatusForbidden, "réservé aux comptes candidat")
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "quizId invalide")
	}
	var req submitResultRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	r, err := h.quizzes.SubmitResult(c.Context(), actorID, quizID, req.Score, req.MaxScore)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, r)
}

// Completion reports a candidate's quiz completion for one posting.
// @Summary Quiz completion for a posting
// @Tags    interviews
// @Produce json
// @Param   jobPostingId query string true "Posting ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} quiz.Completion
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /interviews/completion [get]
func (h *InterviewHandler) Completion(c *fiber.Ctx) error {
	actorID, _, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	jobPostingID, err := uuid.Parse(c.Query("jobPostingId"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "jobPostingId invalide")
	}
	completion, err := h.quizzes.CompletionForPosting(c.Context(), actorID, jobPostingID)
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusOK, completion)
}

type scheduleMeetingRequest struct {
	JobPostingID string `json:"jobPostingId"`
	CandidateID  string `json:"candidateId"`
	ScheduledAt  string `json:"scheduledAt"`
	MeetingURL   string `json:"meetingUrl"`
}

// ScheduleMeeting books an interview once the candidate has finished the
// posting's technical tests.
// @Summary Schedule interview meeting
// @Tags    interviews
// @Accept  json
// @Produce json
// @Param   input body scheduleMeetingRequest true "meeting payload"
// @Security BearerAuth
// @Success 201 {object} interview.Meeting
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /interviews/meetings [post]
func (h *InterviewHandler) ScheduleMeeting(c *fiber.Ctx) error {
	actorID, role, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	if role != auth.RoleEnterprise {
		return presenter.Error(c, http.StatusForbidden, "réservé aux comptes entreprise")
	}
	var req scheduleMeetingRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "JSON invalide")
	}
	m, err := h.meetings.Schedule(c.Context(), actorID, interview.ScheduleRequest{
		JobPostingID: req.JobPostingID,
		CandidateID:  req.CandidateID,
		ScheduledAt:  req.ScheduledAt,
		MeetingURL:   req.MeetingURL,
	})
	if err != nil {
		return presenter.FromError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, m)
}

// ListMeetings returns the caller's meetings, enterprise or candidate side.
// @Summary List interview meetings
// @Tags    interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {array} interview.Meeting
// @Router  /interviews/meetings [get]
func (h *InterviewHandler) ListMeetings(c *fiber.Ctx) error {
	actorID, role, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "utilisateur non authentifié")
	}
	limit, offset := parseLimitOffset(c, 50)
	var (
		ms   []interview.Meeting
		lerr error
	)
	if role == auth.RoleEnterprise {
		ms, lerr = h.meetings.ListForEnterprise(c.Context(), actorID, limit, offset)
	} else {
		ms, lerr = h.meetings.ListForCandidate(c.Context(), actorID, limit, offset)
	}
	if lerr != nil {
		return presenter.FromError(c, lerr)
	}
	if ms == nil {
		ms = []interview.Meeting{}
	}
	return presenter.JSON(c, http.StatusOK, ms)
}
