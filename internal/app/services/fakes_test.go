package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"
	"time"

	"github.com/estatecore/backend/internal/app/models"
	"github.com/estatecore/backend/internal/pkg/apperrors"
	"github.com/estatecore/backend/internal/pkg/email"
)

// fakeUserRepo is an in-memory IUserRepository
type fakeUserRepo struct {
	users      map[int64]*models.User
	nextID     int64
	failCreate bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	if exists, _ := f.EmailExists(context.Background(), user.Email); exists {
		return apperrors.ErrEmailAlreadyExists
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, emailAddr string) (*models.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, emailAddr) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserRepo) EmailExists(_ context.Context, emailAddr string) (bool, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, emailAddr) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Activate(_ context.Context, id int64) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Status = models.StatusActive
	user.VerificationToken = nil
	return nil
}

func (f *fakeUserRepo) SetResetToken(_ context.Context, id int64, token string, expires time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	user, ok := f.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	return nil
}

func (f *fakeUserRepo) PurgeExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	var purged int64
	for _, user := range f.users {
		if user.ResetPasswordExpires != nil && user.ResetPasswordExpires.Before(now) {
			user.ResetPasswordToken = nil
			user.ResetPasswordExpires = nil
			purged++
		}
	}
	return purged, nil
}

// fakeAgentRepo is an in-memory IAgentRepository
type fakeAgentRepo struct {
	agents     map[int64]*models.Agent
	nextID     int64
	failCreate bool
	failUpdate bool
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{agents: make(map[int64]*models.Agent), nextID: 1}
}

func (f *fakeAgentRepo) Create(_ context.Context, agent *models.Agent) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	for _, existing := range f.agents {
		if strings.EqualFold(existing.Email, agent.Email) {
			return apperrors.NewCustomError(apperrors.ErrEmailAlreadyExists, "An agent with this email already exists")
		}
	}
	agent.ID = f.nextID
	f.nextID++
	copied := *agent
	f.agents[agent.ID] = &copied
	return nil
}

func (f *fakeAgentRepo) FindByID(_ context.Context, id int64) (*models.Agent, error) {
	agent, ok := f.agents[id]
	if !ok {
		return nil, apperrors.ErrAgentNotFound
	}
	copied := *agent
	return &copied, nil
}

func (f *fakeAgentRepo) FindAll(_ context.Context) ([]*models.Agent, error) {
	agents := make([]*models.Agent, 0, len(f.agents))
	for _, agent := range f.agents {
		copied := *agent
		agents = append(agents, &copied)
	}
	return agents, nil
}

func (f *fakeAgentRepo) Update(_ context.Context, agent *models.Agent) error {
	if f.failUpdate {
		return errors.New("update failed")
	}
	if _, ok := f.agents[agent.ID]; !ok {
		return apperrors.ErrAgentNotFound
	}
	copied := *agent
	f.agents[agent.ID] = &copied
	return nil
}

func (f *fakeAgentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.agents[id]; !ok {
		return apperrors.ErrAgentNotFound
	}
	delete(f.agents, id)
	return nil
}

// fakePropertyRepo is an in-memory IPropertyRepository
type fakePropertyRepo struct {
	properties map[int64]*models.Property
	nextID     int64
	failCreate bool
	failUpdate bool
	lastFilter models.PropertyFilter
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[int64]*models.Property), nextID: 1}
}

func (f *fakePropertyRepo) Create(_ context.Context, property *models.Property) error {
	if f.failCreate {
		return errors.New("insert failed")
	}
	property.ID = f.nextID
	f.nextID++
	copied := *property
	f.properties[property.ID] = &copied
	return nil
}

func (f *fakePropertyRepo) FindByID(_ context.Context, id int64) (*models.Property, error) {
	property, ok := f.properties[id]
	if !ok {
		return nil, apperrors.ErrPropertyNotFound
	}
	copied := *property
	return &copied, nil
}

func (f *fakePropertyRepo) FindAll(_ context.Context) ([]*models.Property, error) {
	properties := make([]*models.Property, 0, len(f.properties))
	for _, property := range f.properties {
		copied := *property
		properties = append(properties, &copied)
	}
	return properties, nil
}

func (f *fakePropertyRepo) Search(_ context.Context, filter models.PropertyFilter) ([]*models.Property, error) {
	f.lastFilter = filter
	return f.FindAll(context.Background())
}

func (f *fakePropertyRepo) Update(_ context.Context, property *models.Property) error {
	if f.failUpdate {
		return errors.New("update failed")
	}
	if _, ok := f.properties[property.ID]; !ok {
		return apperrors.ErrPropertyNotFound
	}
	copied := *property
	f.properties[property.ID] = &copied
	return nil
}

func (f *fakePropertyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.properties[id]; !ok {
		return apperrors.ErrPropertyNotFound
	}
	delete(f.properties, id)
	return nil
}

// fakeAppointmentRepo is an in-memory IAppointmentRepository
type fakeAppointmentRepo struct {
	appointments map[int64]*models.Appointment
	nextID       int64
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[int64]*models.Appointment), nextID: 1}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *models.Appointment) error {
	appointment.ID = f.nextID
	f.nextID++
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id int64) (*models.Appointment, error) {
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, apperrors.ErrAppointmentNotFound
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) FindAllDetails(_ context.Context) ([]*models.AppointmentDetails, error) {
	details := make([]*models.AppointmentDetails, 0, len(f.appointments))
	for _, appointment := range f.appointments {
		details = append(details, &models.AppointmentDetails{Appointment: *appointment})
	}
	return details, nil
}

func (f *fakeAppointmentRepo) FindForUser(_ context.Context, userID int64, emailAddr string) ([]*models.AppointmentDetails, error) {
	details := make([]*models.AppointmentDetails, 0)
	for _, appointment := range f.appointments {
		linked := appointment.UserID != nil && *appointment.UserID == userID
		if linked || strings.EqualFold(appointment.Email, emailAddr) {
			details = append(details, &models.AppointmentDetails{Appointment: *appointment})
		}
	}
	return details, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status models.AppointmentStatus) error {
	appointment, ok := f.appointments[id]
	if !ok {
		return apperrors.ErrAppointmentNotFound
	}
	appointment.Status = status
	return nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.appointments[id]; !ok {
		return apperrors.ErrAppointmentNotFound
	}
	delete(f.appointments, id)
	return nil
}

// fakeStorage records saves and deletes without touching the filesystem
type fakeStorage struct {
	saved    []string
	deleted  []string
	counter  int
	failSave bool
}

func (f *fakeStorage) SaveFile(fileHeader *multipart.FileHeader, subPath, prefix string) (string, error) {
	if f.failSave {
		return "", errors.New("disk full")
	}
	f.counter++
	path := fmt.Sprintf("%s/%s-%d.jpg", subPath, prefix, f.counter)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStorage) DeleteFile(relPath string) error {
	f.deleted = append(f.deleted, relPath)
	return nil
}

func (f *fakeStorage) Exists(relPath string) bool {
	for _, saved := range f.saved {
		if saved == relPath {
			return true
		}
	}
	return false
}

// fakeNotifier records enqueued messages
type fakeNotifier struct {
	mu       sync.Mutex
	messages []email.Message
}

func (f *fakeNotifier) Enqueue(msg email.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeNotifier) last() email.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.messages[len(f.messages)-1]
}
