package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Container bundles all repositories behind their interfaces
type Container struct {
	Users        IUserRepository
	Agents       IAgentRepository
	Properties   IPropertyRepository
	Appointments IAppointmentRepository
}

// NewContainer creates every repository against the shared pool
func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		Users:        NewUserRepository(db),
		Agents:       NewAgentRepository(db),
		Properties:   NewPropertyRepository(db),
		Appointments: NewAppointmentRepository(db),
	}
}
