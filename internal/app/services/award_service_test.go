package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
)

// fakeAwardStore is an in-memory AwardStore
type fakeAwardStore struct {
	awards  map[int64]*models.Award
	types   map[int64]*models.AwardType
	degrees map[int64]*models.AwardDegree
	nextID  int64
}

func newFakeAwardStore() *fakeAwardStore {
	return &fakeAwardStore{
		awards:  map[int64]*models.Award{},
		types:   map[int64]*models.AwardType{},
		degrees: map[int64]*models.AwardDegree{},
		nextID:  1,
	}
}

func (r *fakeAwardStore) Create(_ context.Context, award *models.Award) error {
	award.ID = r.nextID
	r.nextID++
	r.awards[award.ID] = award
	return nil
}

func (r *fakeAwardStore) GetByID(_ context.Context, id int64) (*models.Award, error) {
	award, ok := r.awards[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return award, nil
}

func (r *fakeAwardStore) GetByStudentID(_ context.Context, studentID int64) ([]*models.Award, error) {
	var out []*models.Award
	for _, award := range r.awards {
		if award.StudentID == studentID {
			out = append(out, award)
		}
	}
	return out, nil
}

func (r *fakeAwardStore) GetAllTypes(_ context.Context) ([]*models.AwardType, error) {
	var out []*models.AwardType
	for _, t := range r.types {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeAwardStore) TypeExists(_ context.Context, id int64) (bool, error) {
	_, ok := r.types[id]
	return ok, nil
}

func (r *fakeAwardStore) GetDegreeByID(_ context.Context, id int64) (*models.AwardDegree, error) {
	degree, ok := r.degrees[id]
	if !ok {
		return nil, apperrors.ErrAwardDegreeNotFound
	}
	return degree, nil
}

func (r *fakeAwardStore) GetDegreesWithValidType(_ context.Context) ([]*models.AwardDegree, error) {
	var out []*models.AwardDegree
	for _, degree := range r.degrees {
		if _, ok := r.types[degree.AwardTypeID]; ok {
			out = append(out, degree)
		}
	}
	return out, nil
}

// fakeStudentRepo is an in-memory AwardStudentRepository
type fakeStudentRepo struct {
	students map[int64]*models.Student
}

func (r *fakeStudentRepo) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := r.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (r *fakeStudentRepo) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, student := range r.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *fakeStudentRepo) ListNames(_ context.Context) ([]*models.Student, error) {
	var out []*models.Student
	for _, student := range r.students {
		out = append(out, student)
	}
	return out, nil
}

func (r *fakeStudentRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.students[id]
	return ok, nil
}

// fakeReferenceRepo is an in-memory AwardReferenceRepository
type fakeReferenceRepo struct {
	departments map[int64]*models.Department
	groups      map[int64]*models.Group
}

func (r *fakeReferenceRepo) GetAll(_ context.Context) ([]*models.Department, error) {
	var out []*models.Department
	for _, d := range r.departments {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeReferenceRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.departments[id]
	return ok, nil
}

func (r *fakeReferenceRepo) GetGroupsByDepartmentID(_ context.Context, departmentID int64) ([]*models.Group, error) {
	var out []*models.Group
	for _, g := range r.groups {
		if g.DepartmentID == departmentID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeReferenceRepo) GroupBelongsToDepartment(_ context.Context, groupID, departmentID int64) (bool, error) {
	group, ok := r.groups[groupID]
	return ok && group.DepartmentID == departmentID, nil
}

// fakeLevelRepo is an in-memory AwardLevelRepository
type fakeLevelRepo struct {
	levels map[int64]*models.Level
}

func (r *fakeLevelRepo) GetAll(_ context.Context) ([]*models.Level, error) {
	var out []*models.Level
	for _, l := range r.levels {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLevelRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.levels[id]
	return ok, nil
}

func newAwardFixture(strict bool) (*AwardService, *fakeAwardStore) {
	store := newFakeAwardStore()
	store.types[1] = &models.AwardType{ID: 1, Name: "Olympiad"}
	store.types[2] = &models.AwardType{ID: 2, Name: "Competition"}
	store.degrees[1] = &models.AwardDegree{ID: 1, Name: "1st place", AwardTypeID: 1}
	store.degrees[2] = &models.AwardDegree{ID: 2, Name: "Winner", AwardTypeID: 2}

	students := &fakeStudentRepo{students: map[int64]*models.Student{
		1: {ID: 1, UserID: 10, FirstName: "Anna", LastName: "Ivanova"},
	}}
	refs := &fakeReferenceRepo{
		departments: map[int64]*models.Department{1: {ID: 1, Name: "Computer Science"}},
		groups:      map[int64]*models.Group{1: {ID: 1, Name: "CS-101", DepartmentID: 1}},
	}
	levels := &fakeLevelRepo{levels: map[int64]*models.Level{1: {ID: 1, LevelName: "City"}}}

	svc := NewAwardService(store, students, refs, levels, strict, zerolog.Nop())
	return svc, store
}

func validAwardInput() *CreateAwardInput {
	return &CreateAwardInput{
		StudentID:    1,
		DepartmentID: 1,
		GroupID:      1,
		EventName:    "Regional olympiad",
		AwardTypeID:  1,
		LevelID:      1,
	}
}

func TestCreateAward(t *testing.T) {
	svc, store := newAwardFixture(true)

	resp, err := svc.CreateAward(context.Background(), validAwardInput())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Award)
	assert.Equal(t, "Regional olympiad", resp.Award.EventName)
	assert.Len(t, resp.Awards, 1)
	assert.Len(t, store.awards, 1)
}

func TestCreateAwardValidatesIdentifiers(t *testing.T) {
	svc, _ := newAwardFixture(true)

	input := validAwardInput()
	input.StudentID = 0
	_, err := svc.CreateAward(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	input = validAwardInput()
	input.EventName = ""
	_, err = svc.CreateAward(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateAwardChecksReferences(t *testing.T) {
	svc, _ := newAwardFixture(true)
	ctx := context.Background()

	cases := []struct {
		mutate func(*CreateAwardInput)
		want   error
	}{
		{func(in *CreateAwardInput) { in.StudentID = 99 }, apperrors.ErrStudentNotFound},
		{func(in *CreateAwardInput) { in.DepartmentID = 99 }, apperrors.ErrDepartmentNotFound},
		{func(in *CreateAwardInput) { in.GroupID = 99 }, apperrors.ErrGroupNotFound},
		{func(in *CreateAwardInput) { in.AwardTypeID = 99 }, apperrors.ErrAwardTypeNotFound},
		{func(in *CreateAwardInput) { in.LevelID = 99 }, apperrors.ErrLevelNotFound},
	}
	for _, tc := range cases {
		input := validAwardInput()
		tc.mutate(input)
		_, err := svc.CreateAward(ctx, input)
		assert.ErrorIs(t, err, tc.want)
	}
}

func TestCreateAwardDegreeTypeMismatch(t *testing.T) {
	mismatched := validAwardInput()
	degreeID := int64(2) // belongs to type 2, submitted type is 1
	mismatched.AwardDegreeID = &degreeID

	strictSvc, _ := newAwardFixture(true)
	_, err := strictSvc.CreateAward(context.Background(), mismatched)
	assert.ErrorIs(t, err, apperrors.ErrDegreeTypeMismatch)

	lenientSvc, store := newAwardFixture(false)
	resp, err := lenientSvc.CreateAward(context.Background(), mismatched)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, store.awards, 1)
}

func TestCreateAwardWithMatchingDegree(t *testing.T) {
	svc, _ := newAwardFixture(true)

	input := validAwardInput()
	degreeID := int64(1)
	input.AwardDegreeID = &degreeID

	resp, err := svc.CreateAward(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestGetStudentAwards(t *testing.T) {
	svc, _ := newAwardFixture(true)
	ctx := context.Background()

	_, err := svc.CreateAward(ctx, validAwardInput())
	require.NoError(t, err)

	views, err := svc.GetStudentAwards(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, views, 1)

	_, err = svc.GetStudentAwards(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.GetStudentAwards(ctx, -1)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestLookupStudentByUserID(t *testing.T) {
	svc, _ := newAwardFixture(true)

	resp, err := svc.LookupStudentByUserID(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.StudentID)
	assert.Contains(t, resp.StudentName, "Ivanova")

	_, err = svc.LookupStudentByUserID(context.Background(), 77)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestGetMyAwards(t *testing.T) {
	svc, _ := newAwardFixture(true)
	ctx := context.Background()

	_, err := svc.CreateAward(ctx, validAwardInput())
	require.NoError(t, err)

	resp, err := svc.GetMyAwards(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Student.ID)
	assert.Len(t, resp.Awards, 1)
}

func TestListDegreesSkipsOrphans(t *testing.T) {
	svc, store := newAwardFixture(true)
	// Degree pointing at a type that no longer exists
	store.degrees[3] = &models.AwardDegree{ID: 3, Name: "Orphan", AwardTypeID: 99}

	degrees, err := svc.ListDegrees(context.Background())
	require.NoError(t, err)
	for _, degree := range degrees {
		assert.NotEqual(t, int64(3), degree.ID)
	}
	assert.Len(t, degrees, 2)
}
