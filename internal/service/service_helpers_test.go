package service

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/criteria"
	"github.com/symposiumhq/symposium-api/internal/models"
	"github.com/symposiumhq/symposium-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testCriteria() criteria.Set {
	return criteria.Set{
		Criteria: []criteria.Criterion{
			{Key: "fairness", Label: "Fairness", Weight: 1},
			{Key: "innovation", Label: "Innovation", Weight: 1},
			{Key: "presentation", Label: "Presentation", Weight: 1},
		},
		MinScore: 0,
		MaxScore: 10,
	}
}

type memoryTeamRepo struct {
	teams  map[uint]models.Team
	nextID uint
}

func newMemoryTeamRepo() *memoryTeamRepo {
	return &memoryTeamRepo{teams: make(map[uint]models.Team), nextID: 1}
}

func (m *memoryTeamRepo) List(_ context.Context, filter repository.TeamFilter) ([]models.Team, error) {
	results := make([]models.Team, 0, len(m.teams))
	for _, team := range m.teams {
		if filter.Category != "" && team.ResultCategory() != filter.Category {
			continue
		}
		results = append(results, team)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryTeamRepo) GetByID(_ context.Context, id uint) (models.Team, error) {
	team, ok := m.teams[id]
	if !ok {
		return models.Team{}, gorm.ErrRecordNotFound
	}
	return team, nil
}

func (m *memoryTeamRepo) GetByLeaderEmail(_ context.Context, email string) (models.Team, error) {
	for _, team := range m.teams {
		if team.LeaderEmail == email {
			return team, nil
		}
	}
	return models.Team{}, gorm.ErrRecordNotFound
}

func (m *memoryTeamRepo) Create(_ context.Context, team *models.Team) error {
	team.ID = m.nextID
	m.nextID++
	m.teams[team.ID] = *team
	return nil
}

func (m *memoryTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := m.teams[team.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.teams[team.ID] = *team
	return nil
}

func (m *memoryTeamRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.teams[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.teams, id)
	return nil
}

func (m *memoryTeamRepo) Categories(_ context.Context) ([]string, error) {
	seen := map[string]struct{}{}
	var categories []string
	for _, team := range m.teams {
		category := team.ResultCategory()
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

type memoryEvaluatorRepo struct {
	evaluators map[uint]models.Evaluator
	nextID     uint
}

func newMemoryEvaluatorRepo() *memoryEvaluatorRepo {
	return &memoryEvaluatorRepo{evaluators: make(map[uint]models.Evaluator), nextID: 1}
}

func (m *memoryEvaluatorRepo) List(_ context.Context) ([]models.Evaluator, error) {
	results := make([]models.Evaluator, 0, len(m.evaluators))
	for _, evaluator := range m.evaluators {
		results = append(results, evaluator)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryEvaluatorRepo) GetByID(_ context.Context, id uint) (models.Evaluator, error) {
	evaluator, ok := m.evaluators[id]
	if !ok {
		return models.Evaluator{}, gorm.ErrRecordNotFound
	}
	return evaluator, nil
}

func (m *memoryEvaluatorRepo) GetByEmail(_ context.Context, email string) (models.Evaluator, error) {
	for _, evaluator := range m.evaluators {
		if evaluator.Email == email {
			return evaluator, nil
		}
	}
	return models.Evaluator{}, gorm.ErrRecordNotFound
}

func (m *memoryEvaluatorRepo) GetByUserID(_ context.Context, userID uint) (models.Evaluator, error) {
	for _, evaluator := range m.evaluators {
		if evaluator.UserID != nil && *evaluator.UserID == userID {
			return evaluator, nil
		}
	}
	return models.Evaluator{}, gorm.ErrRecordNotFound
}

func (m *memoryEvaluatorRepo) Create(_ context.Context, evaluator *models.Evaluator) error {
	evaluator.ID = m.nextID
	m.nextID++
	m.evaluators[evaluator.ID] = *evaluator
	return nil
}

func (m *memoryEvaluatorRepo) Update(_ context.Context, evaluator *models.Evaluator) error {
	if _, ok := m.evaluators[evaluator.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.evaluators[evaluator.ID] = *evaluator
	return nil
}

type assignmentPair struct {
	evaluatorID uint
	teamID      uint
}

type memoryAssignmentRepo struct {
	pairs      map[assignmentPair]struct{}
	teams      *memoryTeamRepo
	evaluators *memoryEvaluatorRepo
}

func newMemoryAssignmentRepo(teams *memoryTeamRepo, evaluators *memoryEvaluatorRepo) *memoryAssignmentRepo {
	return &memoryAssignmentRepo{
		pairs:      make(map[assignmentPair]struct{}),
		teams:      teams,
		evaluators: evaluators,
	}
}

func (m *memoryAssignmentRepo) Assign(_ context.Context, evaluatorID uint, teamIDs []uint) error {
	for _, teamID := range teamIDs {
		m.pairs[assignmentPair{evaluatorID, teamID}] = struct{}{}
	}
	return nil
}

func (m *memoryAssignmentRepo) Remove(_ context.Context, evaluatorID, teamID uint) error {
	pair := assignmentPair{evaluatorID, teamID}
	if _, ok := m.pairs[pair]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.pairs, pair)
	return nil
}

func (m *memoryAssignmentRepo) TeamsFor(_ context.Context, evaluatorID uint) ([]models.Team, error) {
	var teams []models.Team
	for pair := range m.pairs {
		if pair.evaluatorID == evaluatorID {
			if team, ok := m.teams.teams[pair.teamID]; ok {
				teams = append(teams, team)
			}
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}

func (m *memoryAssignmentRepo) EvaluatorsFor(_ context.Context, teamID uint) ([]models.Evaluator, error) {
	var evaluators []models.Evaluator
	for pair := range m.pairs {
		if pair.teamID == teamID {
			if evaluator, ok := m.evaluators.evaluators[pair.evaluatorID]; ok {
				evaluators = append(evaluators, evaluator)
			}
		}
	}
	sort.Slice(evaluators, func(i, j int) bool { return evaluators[i].ID < evaluators[j].ID })
	return evaluators, nil
}

func (m *memoryAssignmentRepo) Exists(_ context.Context, evaluatorID, teamID uint) (bool, error) {
	_, ok := m.pairs[assignmentPair{evaluatorID, teamID}]
	return ok, nil
}

func (m *memoryAssignmentRepo) CountForTeam(_ context.Context, teamID uint) (int64, error) {
	var count int64
	for pair := range m.pairs {
		if pair.teamID == teamID {
			count++
		}
	}
	return count, nil
}

type memoryEvaluationRepo struct {
	evaluations map[uint]models.Evaluation
	nextID      uint
}

func newMemoryEvaluationRepo() *memoryEvaluationRepo {
	return &memoryEvaluationRepo{evaluations: make(map[uint]models.Evaluation), nextID: 1}
}

func (m *memoryEvaluationRepo) List(_ context.Context, filter repository.EvaluationFilter) ([]models.Evaluation, error) {
	var results []models.Evaluation
	for _, evaluation := range m.evaluations {
		if filter.TeamID != nil && evaluation.TeamID != *filter.TeamID {
			continue
		}
		if filter.EvaluatorID != nil && evaluation.EvaluatorID != *filter.EvaluatorID {
			continue
		}
		if filter.Status != nil && evaluation.Status != *filter.Status {
			continue
		}
		results = append(results, evaluation)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryEvaluationRepo) GetByID(_ context.Context, id uint) (models.Evaluation, error) {
	evaluation, ok := m.evaluations[id]
	if !ok {
		return models.Evaluation{}, gorm.ErrRecordNotFound
	}
	return evaluation, nil
}

func (m *memoryEvaluationRepo) GetByPair(_ context.Context, teamID, evaluatorID uint) (models.Evaluation, error) {
	for _, evaluation := range m.evaluations {
		if evaluation.TeamID == teamID && evaluation.EvaluatorID == evaluatorID {
			return evaluation, nil
		}
	}
	return models.Evaluation{}, gorm.ErrRecordNotFound
}

// Upsert mirrors the ON CONFLICT semantics of the real store: one row per
// (team, evaluator) pair, last writer wins.
func (m *memoryEvaluationRepo) Upsert(_ context.Context, evaluation *models.Evaluation) error {
	for id, existing := range m.evaluations {
		if existing.TeamID == evaluation.TeamID && existing.EvaluatorID == evaluation.EvaluatorID {
			evaluation.ID = id
			evaluation.CreatedAt = existing.CreatedAt
			evaluation.UpdatedAt = time.Now()
			m.evaluations[id] = *evaluation
			return nil
		}
	}

	evaluation.ID = m.nextID
	m.nextID++
	evaluation.CreatedAt = time.Now()
	evaluation.UpdatedAt = evaluation.CreatedAt
	m.evaluations[evaluation.ID] = *evaluation
	return nil
}

func (m *memoryEvaluationRepo) Update(_ context.Context, evaluation *models.Evaluation) error {
	if _, ok := m.evaluations[evaluation.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	evaluation.UpdatedAt = time.Now()
	m.evaluations[evaluation.ID] = *evaluation
	return nil
}

func (m *memoryEvaluationRepo) CountByTeam(_ context.Context, teamID uint) (int64, error) {
	var count int64
	for _, evaluation := range m.evaluations {
		if evaluation.TeamID == teamID {
			count++
		}
	}
	return count, nil
}

type memoryReleaseRepo struct {
	states map[string]models.ReleaseState
}

func newMemoryReleaseRepo() *memoryReleaseRepo {
	return &memoryReleaseRepo{states: make(map[string]models.ReleaseState)}
}

func (m *memoryReleaseRepo) Open(_ context.Context, category string, releasedBy uint, at time.Time) error {
	released := at
	m.states[category] = models.ReleaseState{
		Category:   category,
		Open:       true,
		ReleasedAt: &released,
		ReleasedBy: &releasedBy,
	}
	return nil
}

func (m *memoryReleaseRepo) Get(_ context.Context, category string) (models.ReleaseState, error) {
	state, ok := m.states[category]
	if !ok {
		return models.ReleaseState{}, gorm.ErrRecordNotFound
	}
	return state, nil
}

func (m *memoryReleaseRepo) List(_ context.Context) ([]models.ReleaseState, error) {
	results := make([]models.ReleaseState, 0, len(m.states))
	for _, state := range m.states {
		results = append(results, state)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Category < results[j].Category })
	return results, nil
}

func (m *memoryReleaseRepo) CloseAll(_ context.Context) error {
	for category, state := range m.states {
		state.Open = false
		m.states[category] = state
	}
	return nil
}

type memoryUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (m *memoryUserRepo) List(_ context.Context) ([]models.User, error) {
	results := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		results = append(results, user)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id uint) (models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) GetByEmailAndRole(_ context.Context, email, role string) (models.User, error) {
	for _, user := range m.users {
		if user.Email == email && user.Role == role {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (m *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email && existing.Role == user.Role {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = *user
	return nil
}

func (m *memoryUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memoryUserRepo) LinkFacultyProfile(_ context.Context, userID, facultyID uint) (bool, error) {
	user, ok := m.users[userID]
	if !ok || user.FacultyProfileID != nil {
		return false, nil
	}
	user.FacultyProfileID = &facultyID
	m.users[userID] = user
	return true, nil
}

type memoryFacultyRepo struct {
	faculty map[uint]models.Faculty
	teams   *memoryTeamRepo
	nextID  uint
}

func newMemoryFacultyRepo(teams *memoryTeamRepo) *memoryFacultyRepo {
	return &memoryFacultyRepo{faculty: make(map[uint]models.Faculty), teams: teams, nextID: 1}
}

func (m *memoryFacultyRepo) List(_ context.Context) ([]models.Faculty, error) {
	results := make([]models.Faculty, 0, len(m.faculty))
	for _, member := range m.faculty {
		results = append(results, member)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (m *memoryFacultyRepo) GetByID(_ context.Context, id uint) (models.Faculty, error) {
	member, ok := m.faculty[id]
	if !ok {
		return models.Faculty{}, gorm.ErrRecordNotFound
	}
	return member, nil
}

func (m *memoryFacultyRepo) GetByEmail(_ context.Context, email string) (models.Faculty, error) {
	for _, member := range m.faculty {
		if member.Email == email {
			return member, nil
		}
	}
	return models.Faculty{}, gorm.ErrRecordNotFound
}

func (m *memoryFacultyRepo) Create(_ context.Context, faculty *models.Faculty) error {
	faculty.ID = m.nextID
	m.nextID++
	m.faculty[faculty.ID] = *faculty
	return nil
}

func (m *memoryFacultyRepo) Update(_ context.Context, faculty *models.Faculty) error {
	if _, ok := m.faculty[faculty.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.faculty[faculty.ID] = *faculty
	return nil
}

func (m *memoryFacultyRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.faculty[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.faculty, id)
	return nil
}

func (m *memoryFacultyRepo) TeamsFor(_ context.Context, facultyID uint) ([]models.Team, error) {
	var teams []models.Team
	for _, team := range m.teams.teams {
		if team.FacultyID != nil && *team.FacultyID == facultyID {
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return teams, nil
}
