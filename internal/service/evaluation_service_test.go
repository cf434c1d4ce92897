package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
)

type evaluationFixture struct {
	service     EvaluationService
	teams       *memoryTeamRepo
	evaluators  *memoryEvaluatorRepo
	assignments *memoryAssignmentRepo
	evaluations *memoryEvaluationRepo
	evaluator   models.Evaluator
	team        models.Team
}

func newEvaluationFixture(t *testing.T) *evaluationFixture {
	t.Helper()

	teams := newMemoryTeamRepo()
	evaluators := newMemoryEvaluatorRepo()
	assignments := newMemoryAssignmentRepo(teams, evaluators)
	evaluations := newMemoryEvaluationRepo()

	team := models.Team{Name: "Team Aurora", Category: "software", LeaderName: "Dina", LeaderEmail: "dina@example.edu"}
	require.NoError(t, teams.Create(context.Background(), &team))

	evaluator := models.Evaluator{Name: "Prof. Ardi", Email: "ardi@example.edu"}
	require.NoError(t, evaluators.Create(context.Background(), &evaluator))

	require.NoError(t, assignments.Assign(context.Background(), evaluator.ID, []uint{team.ID}))

	svc := NewEvaluationService(evaluations, assignments, evaluators, teams, testCriteria(), validator.New(), testLogger())

	return &evaluationFixture{
		service:     svc,
		teams:       teams,
		evaluators:  evaluators,
		assignments: assignments,
		evaluations: evaluations,
		evaluator:   evaluator,
		team:        team,
	}
}

func fullScores() map[string]float64 {
	return map[string]float64{"fairness": 8, "innovation": 7, "presentation": 9}
}

func TestSubmitCreatesEvaluation(t *testing.T) {
	fx := newEvaluationFixture(t)

	response, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID:   fx.team.ID,
		Scores:   fullScores(),
		Comments: "solid work",
	})
	require.NoError(t, err)

	require.Equal(t, fx.team.ID, response.TeamID)
	require.Equal(t, fx.evaluator.ID, response.EvaluatorID)
	require.Equal(t, models.EvaluationStatusSubmitted, response.Status)
	require.Equal(t, "solid work", response.Comments)
	require.InDelta(t, 8, response.Scores["fairness"], 0.001)
}

func TestSubmitRequiresAssignment(t *testing.T) {
	fx := newEvaluationFixture(t)

	other := models.Team{Name: "Team Borealis", Category: "hardware", LeaderName: "Eko", LeaderEmail: "eko@example.edu"}
	require.NoError(t, fx.teams.Create(context.Background(), &other))

	_, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID: other.ID,
		Scores: fullScores(),
	})
	require.ErrorIs(t, err, ErrNotAssigned)
}

func TestSubmitRejectsUnknownCriterion(t *testing.T) {
	fx := newEvaluationFixture(t)

	scores := fullScores()
	scores["style"] = 5

	_, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID: fx.team.ID,
		Scores: scores,
	})
	require.ErrorIs(t, err, ErrUnknownCriterion)
}

func TestSubmitRejectsMissingCriterion(t *testing.T) {
	fx := newEvaluationFixture(t)

	scores := fullScores()
	delete(scores, "presentation")

	_, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID: fx.team.ID,
		Scores: scores,
	})
	require.ErrorIs(t, err, ErrMissingCriterion)
}

func TestSubmitRejectsScoreOutOfRange(t *testing.T) {
	fx := newEvaluationFixture(t)

	for _, bad := range []float64{-1, 10.5} {
		scores := fullScores()
		scores["fairness"] = bad

		_, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
			TeamID: fx.team.ID,
			Scores: scores,
		})
		require.ErrorIs(t, err, ErrScoreOutOfRange, "score %v should be rejected", bad)
	}
}

func TestResubmitOverwritesInPlace(t *testing.T) {
	fx := newEvaluationFixture(t)

	first, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID:   fx.team.ID,
		Scores:   fullScores(),
		Comments: "first pass",
	})
	require.NoError(t, err)

	updated := map[string]float64{"fairness": 6, "innovation": 6, "presentation": 6}
	second, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID:   fx.team.ID,
		Scores:   updated,
		Comments: "second pass",
	})
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Len(t, fx.evaluations.evaluations, 1)
	require.InDelta(t, 6, second.Scores["fairness"], 0.001)
	require.Equal(t, "second pass", second.Comments)
}

func TestSubmitSanitizesComments(t *testing.T) {
	fx := newEvaluationFixture(t)

	response, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID:   fx.team.ID,
		Scores:   fullScores(),
		Comments: "  great demo <script>alert(1)</script>  ",
	})
	require.NoError(t, err)
	require.Equal(t, "great demo", response.Comments)
}

func TestUpdateRejectsForeignEvaluation(t *testing.T) {
	fx := newEvaluationFixture(t)

	submitted, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID: fx.team.ID,
		Scores: fullScores(),
	})
	require.NoError(t, err)

	intruder := models.Evaluator{Name: "Prof. Lestari", Email: "lestari@example.edu"}
	require.NoError(t, fx.evaluators.Create(context.Background(), &intruder))

	_, err = fx.service.Update(context.Background(), submitted.ID, intruder.ID, dto.EvaluationUpdateRequest{
		Scores: fullScores(),
	})
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateMissingEvaluation(t *testing.T) {
	fx := newEvaluationFixture(t)

	_, err := fx.service.Update(context.Background(), 9999, fx.evaluator.ID, dto.EvaluationUpdateRequest{
		Scores: fullScores(),
	})
	require.ErrorIs(t, err, ErrEvaluationNotFound)
}

func TestEvaluatorForUserWithoutProfile(t *testing.T) {
	fx := newEvaluationFixture(t)

	_, err := fx.service.EvaluatorForUser(context.Background(), 42)
	require.ErrorIs(t, err, ErrEvaluatorNotFound)
}

func TestAssignedTeamsTracksEvaluatedFlag(t *testing.T) {
	fx := newEvaluationFixture(t)

	second := models.Team{Name: "Team Cumulus", Category: "software", LeaderName: "Fajar", LeaderEmail: "fajar@example.edu"}
	require.NoError(t, fx.teams.Create(context.Background(), &second))
	require.NoError(t, fx.assignments.Assign(context.Background(), fx.evaluator.ID, []uint{second.ID}))

	_, err := fx.service.Submit(context.Background(), fx.evaluator.ID, dto.EvaluationSubmitRequest{
		TeamID: fx.team.ID,
		Scores: fullScores(),
	})
	require.NoError(t, err)

	assigned, err := fx.service.AssignedTeams(context.Background(), fx.evaluator.ID)
	require.NoError(t, err)
	require.Len(t, assigned, 2)
	require.True(t, assigned[0].Evaluated)
	require.False(t, assigned[1].Evaluated)
}
