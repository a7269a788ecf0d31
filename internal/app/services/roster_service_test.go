package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/pkg/apperrors"
)

// fakeTeacherStore is an in-memory teacher store
type fakeTeacherStore struct {
	teachers   map[int64]*models.Teacher
	nextID     int64
	failCreate bool
}

func newFakeTeacherStore() *fakeTeacherStore {
	return &fakeTeacherStore{teachers: map[int64]*models.Teacher{}, nextID: 1}
}

func (r *fakeTeacherStore) Create(_ context.Context, teacher *models.Teacher) error {
	if r.failCreate {
		return errors.New("teacher insert failed")
	}
	teacher.ID = r.nextID
	r.nextID++
	r.teachers[teacher.ID] = teacher
	return nil
}

func (r *fakeTeacherStore) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	teacher, ok := r.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return teacher, nil
}

func (r *fakeTeacherStore) GetAll(_ context.Context) ([]*models.Teacher, error) {
	var out []*models.Teacher
	for _, teacher := range r.teachers {
		out = append(out, teacher)
	}
	return out, nil
}

func (r *fakeTeacherStore) Update(_ context.Context, teacher *models.Teacher) error {
	if _, ok := r.teachers[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	r.teachers[teacher.ID] = teacher
	return nil
}

func (r *fakeTeacherStore) Delete(_ context.Context, id int64) error {
	if _, ok := r.teachers[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	delete(r.teachers, id)
	return nil
}

func (r *fakeTeacherStore) ListNames(_ context.Context) ([]*models.Teacher, error) {
	return r.GetAll(context.Background())
}

func (r *fakeTeacherStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.teachers[id]
	return ok, nil
}

// fakeMailer records sent mail on buffered channels so tests can wait for
// the fire-and-forget goroutine
type fakeMailer struct {
	creds   chan string
	notices chan string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{creds: make(chan string, 4), notices: make(chan string, 4)}
}

func (m *fakeMailer) SendCredentials(toEmail, login, password string) error {
	m.creds <- toEmail + " " + login + " " + password
	return nil
}

func (m *fakeMailer) SendStudentAddedNotification(fullName, departmentName, groupName, email string) error {
	m.notices <- fullName + " " + departmentName + " " + groupName
	return nil
}

func (m *fakeMailer) SendTeacherAddedNotification(fullName, position, email string) error {
	m.notices <- fullName + " " + position
	return nil
}

func waitMail(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("expected a mail to be sent")
		return ""
	}
}

func newRosterFixture() (*RosterService, *fakeAccountRepo, *fakeStudentStore, *fakeTeacherStore, *fakeMailer) {
	users := newFakeAccountRepo()
	students := newFakeStudentStore()
	teachers := newFakeTeacherStore()
	mailer := newFakeMailer()
	svc := NewRosterService(users, students, teachers, newFakeDeptRepo(), mailer, zerolog.Nop())
	return svc, users, students, teachers, mailer
}

func validStudentRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		LastName:     "Ivanova",
		FirstName:    "Anna",
		DepartmentID: 1,
		GroupID:      1,
		Email:        "anna@example.com",
	}
}

func validTeacherRequest() *dto.CreateTeacherRequest {
	return &dto.CreateTeacherRequest{
		LastName:  "Petrov",
		FirstName: "Igor",
		Position:  "Lecturer",
		Email:     "petrov@example.com",
		IsTeacher: true,
	}
}

func TestCreateStudentProvisionsAccount(t *testing.T) {
	svc, users, students, _, mailer := newRosterFixture()

	entry, err := svc.CreateStudent(context.Background(), validStudentRequest())
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", entry.DepartmentName)
	assert.Equal(t, "CS-101", entry.GroupName)
	assert.True(t, entry.IsStudent)

	require.Len(t, users.users, 1)
	var account *models.User
	for _, u := range users.users {
		account = u
	}
	assert.True(t, strings.HasPrefix(account.Login, "student_"))
	assert.Equal(t, models.RoleUser, account.Role)
	assert.True(t, strings.HasPrefix(account.Password, "$2a$"))
	require.NotNil(t, account.StudentID)
	assert.Equal(t, entry.ID, *account.StudentID)

	student, err := students.GetByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Login, student.Login)

	assert.Contains(t, waitMail(t, mailer.creds), "anna@example.com")
	assert.Contains(t, waitMail(t, mailer.notices), "Ivanova Anna")
}

func TestCreateStudentRejectsMismatchedGroup(t *testing.T) {
	svc, users, _, _, _ := newRosterFixture()

	// Group 2 exists but belongs to another department
	req := validStudentRequest()
	req.GroupID = 2
	_, err := svc.CreateStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrGroupNotInDepartment)
	assert.Empty(t, users.users)
}

func TestCreateStudentRejectsTakenEmail(t *testing.T) {
	svc, users, _, _, _ := newRosterFixture()
	users.users[5] = &models.User{ID: 5, Login: "existing", Email: "anna@example.com"}

	_, err := svc.CreateStudent(context.Background(), validStudentRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestCreateStudentRollsBackAccount(t *testing.T) {
	svc, users, students, _, _ := newRosterFixture()
	students.failCreate = true

	_, err := svc.CreateStudent(context.Background(), validStudentRequest())
	require.Error(t, err)
	assert.Empty(t, users.users)
	assert.Empty(t, students.students)
}

func TestCreateTeacherRoleSelection(t *testing.T) {
	svc, users, _, teachers, mailer := newRosterFixture()
	ctx := context.Background()

	entry, err := svc.CreateTeacher(ctx, validTeacherRequest())
	require.NoError(t, err)
	assert.True(t, entry.IsTeacher)

	teacher, err := teachers.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	account := users.users[teacher.UserID]
	require.NotNil(t, account)
	assert.Equal(t, models.RoleTeacher, account.Role)
	assert.True(t, strings.HasPrefix(account.Login, "teacher_"))
	assert.Contains(t, waitMail(t, mailer.creds), "petrov@example.com")

	// Without the flag the account gets the default role
	req := validTeacherRequest()
	req.Email = "sidorov@example.com"
	req.LastName = "Sidorov"
	req.IsTeacher = false
	entry, err = svc.CreateTeacher(ctx, req)
	require.NoError(t, err)
	assert.False(t, entry.IsTeacher)

	teacher, err = teachers.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, users.users[teacher.UserID].Role)
}

func TestUpdateStudentSyncsAccountEmail(t *testing.T) {
	svc, users, students, _, _ := newRosterFixture()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, validStudentRequest())
	require.NoError(t, err)

	req := validStudentRequest()
	req.Email = "renamed@example.com"
	entry, err := svc.UpdateStudent(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", entry.Email)

	student, err := students.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", student.Email)
	assert.Equal(t, "renamed@example.com", users.users[student.UserID].Email)
}

func TestDeleteStudentRemovesAccount(t *testing.T) {
	svc, users, students, _, _ := newRosterFixture()
	ctx := context.Background()

	created, err := svc.CreateStudent(ctx, validStudentRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteStudent(ctx, created.ID))
	assert.Empty(t, students.students)
	assert.Empty(t, users.users)

	assert.ErrorIs(t, svc.DeleteStudent(ctx, created.ID), apperrors.ErrStudentNotFound)
}

func TestDeleteTeacherRemovesAccount(t *testing.T) {
	svc, users, _, teachers, _ := newRosterFixture()
	ctx := context.Background()

	created, err := svc.CreateTeacher(ctx, validTeacherRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTeacher(ctx, created.ID))
	assert.Empty(t, teachers.teachers)
	assert.Empty(t, users.users)
}
