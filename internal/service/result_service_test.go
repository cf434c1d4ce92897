package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/models"
)

type resultFixture struct {
	results     ResultService
	releases    ReleaseService
	teams       *memoryTeamRepo
	evaluators  *memoryEvaluatorRepo
	assignments *memoryAssignmentRepo
	evaluations *memoryEvaluationRepo
	users       *memoryUserRepo
	faculty     *memoryFacultyRepo
	team        models.Team
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()

	teams := newMemoryTeamRepo()
	evaluators := newMemoryEvaluatorRepo()
	assignments := newMemoryAssignmentRepo(teams, evaluators)
	evaluations := newMemoryEvaluationRepo()
	users := newMemoryUserRepo()
	faculty := newMemoryFacultyRepo(teams)
	releaseStates := newMemoryReleaseRepo()

	team := models.Team{Name: "Team Aurora", Category: "software", LeaderName: "Dina", LeaderEmail: "dina@example.edu"}
	require.NoError(t, teams.Create(context.Background(), &team))

	releases := NewReleaseService(releaseStates, teams, nil, nil, "", testLogger())
	results := NewResultService(evaluations, assignments, teams, users, faculty, releases, testCriteria(), nil, 0, testLogger())

	return &resultFixture{
		results:     results,
		releases:    releases,
		teams:       teams,
		evaluators:  evaluators,
		assignments: assignments,
		evaluations: evaluations,
		users:       users,
		faculty:     faculty,
		team:        team,
	}
}

func (fx *resultFixture) submit(t *testing.T, teamID uint, scores map[string]float64) {
	t.Helper()

	evaluator := models.Evaluator{Name: "Evaluator", Email: fmt.Sprintf("evaluator%d@example.edu", len(fx.evaluators.evaluators)+1)}
	require.NoError(t, fx.evaluators.Create(context.Background(), &evaluator))
	require.NoError(t, fx.assignments.Assign(context.Background(), evaluator.ID, []uint{teamID}))

	evaluation := models.Evaluation{
		TeamID:      teamID,
		EvaluatorID: evaluator.ID,
		Status:      models.EvaluationStatusSubmitted,
	}
	require.NoError(t, evaluation.SetScores(scores))
	require.NoError(t, fx.evaluations.Upsert(context.Background(), &evaluation))
}

func TestResultsPendingWhileGateClosed(t *testing.T) {
	fx := newResultFixture(t)
	fx.submit(t, fx.team.ID, map[string]float64{"fairness": 8, "innovation": 7, "presentation": 9})

	result, err := fx.results.ResultsForTeam(context.Background(), fx.team.ID)
	require.NoError(t, err)

	require.Equal(t, dto.ResultStatusPending, result.Status)
	require.Empty(t, result.CriterionAverages)
	require.Nil(t, result.OverallTotal)
	require.Zero(t, result.EvaluationCount)
	require.Nil(t, result.ReleasedAt)
}

func TestResultsNoEvaluationsAfterRelease(t *testing.T) {
	fx := newResultFixture(t)

	_, err := fx.releases.Release(context.Background(), dto.ReleaseRequest{Category: "software"}, 1)
	require.NoError(t, err)

	result, err := fx.results.ResultsForTeam(context.Background(), fx.team.ID)
	require.NoError(t, err)

	require.Equal(t, dto.ResultStatusNoEvaluations, result.Status)
	require.Nil(t, result.OverallTotal)
	require.NotNil(t, result.ReleasedAt)
}

func TestResultsAggregateReleasedScores(t *testing.T) {
	fx := newResultFixture(t)
	fx.submit(t, fx.team.ID, map[string]float64{"fairness": 8, "innovation": 9, "presentation": 5})
	fx.submit(t, fx.team.ID, map[string]float64{"fairness": 6, "innovation": 7, "presentation": 5})

	_, err := fx.releases.Release(context.Background(), dto.ReleaseRequest{Category: "software"}, 1)
	require.NoError(t, err)

	result, err := fx.results.ResultsForTeam(context.Background(), fx.team.ID)
	require.NoError(t, err)

	require.Equal(t, dto.ResultStatusReleased, result.Status)
	require.Equal(t, 2, result.EvaluationCount)
	require.InDelta(t, 7, result.CriterionAverages["fairness"], 0.001)
	require.InDelta(t, 8, result.CriterionAverages["innovation"], 0.001)
	require.InDelta(t, 5, result.CriterionAverages["presentation"], 0.001)
	require.NotNil(t, result.OverallTotal)
	require.InDelta(t, 20, *result.OverallTotal, 0.001)
}

func TestAggregateSkipsAbsentCriterion(t *testing.T) {
	fx := newResultFixture(t)
	fx.submit(t, fx.team.ID, map[string]float64{"fairness": 8, "innovation": 9, "presentation": 4})
	// older record stored before the criteria document gained "presentation"
	fx.submit(t, fx.team.ID, map[string]float64{"fairness": 6, "innovation": 7})

	_, err := fx.releases.Release(context.Background(), dto.ReleaseRequest{Category: "software"}, 1)
	require.NoError(t, err)

	result, err := fx.results.ResultsForTeam(context.Background(), fx.team.ID)
	require.NoError(t, err)

	require.InDelta(t, 7, result.CriterionAverages["fairness"], 0.001)
	require.InDelta(t, 4, result.CriterionAverages["presentation"], 0.001)
}

func TestResetHidesResultsButKeepsRecords(t *testing.T) {
	fx := newResultFixture(t)
	fx.submit(t, fx.team.ID, map[string]float64{"fairness": 8, "innovation": 7, "presentation": 9})

	_, err := fx.releases.Release(context.Background(), dto.ReleaseRequest{Category: "software"}, 1)
	require.NoError(t, err)

	released, err := fx.results.ResultsForTeam(context.Background(), fx.team.ID)
	require.NoError(t, err)
	require.Equal(t, dto.ResultStatusReleased, released.Status)

	require.NoError(t, fx.releases.ResetAll(context.Background(), 1))

	hidden, err := fx.results.ResultsForTeam(context.Background(), fx.team.ID)
	require.NoError(t, err)
	require.Equal(t, dto.ResultStatusPending, hidden.Status)
	require.Nil(t, hidden.OverallTotal)

	records, err := fx.results.TeamDetail(context.Background(), fx.team.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestResultsForUnknownTeam(t *testing.T) {
	fx := newResultFixture(t)

	_, err := fx.results.ResultsForTeam(context.Background(), 404)
	require.ErrorIs(t, err, ErrTeamNotFound)
}

func TestResultsForTeamUserResolvesByLeaderEmail(t *testing.T) {
	fx := newResultFixture(t)

	user := models.User{Name: "Dina", Email: "dina@example.edu", Role: models.RoleTeam, PasswordHash: "x"}
	require.NoError(t, fx.users.Create(context.Background(), &user))

	result, err := fx.results.ResultsForTeamUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, fx.team.ID, result.TeamID)
	require.Equal(t, dto.ResultStatusPending, result.Status)
}

func TestResultsForFacultyUserWithoutProfile(t *testing.T) {
	fx := newResultFixture(t)

	user := models.User{Name: "Prof", Email: "prof@example.edu", Role: models.RoleFaculty, PasswordHash: "x"}
	require.NoError(t, fx.users.Create(context.Background(), &user))

	_, err := fx.results.ResultsForFacultyUser(context.Background(), user.ID)
	require.ErrorIs(t, err, ErrFacultyNotFound)
}

func TestResultsForFacultyUserGroupsTeams(t *testing.T) {
	fx := newResultFixture(t)

	member := models.Faculty{Name: "Informatics", Email: "informatics@example.edu"}
	require.NoError(t, fx.faculty.Create(context.Background(), &member))

	fx.team.FacultyID = &member.ID
	require.NoError(t, fx.teams.Update(context.Background(), &fx.team))

	user := models.User{Name: "Prof", Email: "informatics@example.edu", Role: models.RoleFaculty, PasswordHash: "x", FacultyProfileID: &member.ID}
	require.NoError(t, fx.users.Create(context.Background(), &user))

	response, err := fx.results.ResultsForFacultyUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, member.ID, response.FacultyID)
	require.Len(t, response.Teams, 1)
	require.Equal(t, fx.team.ID, response.Teams[0].TeamID)
}

func TestOverviewCountsAssignmentsAndSubmissions(t *testing.T) {
	fx := newResultFixture(t)
	fx.submit(t, fx.team.ID, map[string]float64{"fairness": 8, "innovation": 7, "presentation": 9})

	idle := models.Evaluator{Name: "Idle", Email: "idle@example.edu"}
	require.NoError(t, fx.evaluators.Create(context.Background(), &idle))
	require.NoError(t, fx.assignments.Assign(context.Background(), idle.ID, []uint{fx.team.ID}))

	overview, err := fx.results.Overview(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(1), overview.TotalEvaluations)
	require.Len(t, overview.Teams, 1)
	require.Equal(t, int64(2), overview.Teams[0].AssignedEvaluators)
	require.Equal(t, int64(1), overview.Teams[0].SubmittedCount)
	require.NotNil(t, overview.Teams[0].AverageTotal)
	require.InDelta(t, 24, *overview.Teams[0].AverageTotal, 0.001)
}

func TestTeamDetailUnknownTeam(t *testing.T) {
	fx := newResultFixture(t)

	_, err := fx.results.TeamDetail(context.Background(), 404)
	require.ErrorIs(t, err, ErrTeamNotFound)
}
