package mappers

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between ticket domain entities
// and persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)
	HistoryToModel(entry *ticket.HistoryEntry) (*models.TicketHistoryModel, error)
	HistoryToDomain(model *models.TicketHistoryModel) (*ticket.HistoryEntry, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	model := &models.TicketModel{
		ID:          t.ID(),
		Key:         t.Key(),
		Title:       t.Title(),
		Description: t.Description(),
		Status:      t.Status().String(),
		Priority:    t.Priority().String(),
		Type:        t.Type().String(),
		ReporterID:  t.ReporterID(),
		AssigneeID:  t.AssigneeID(),
		DueAt:       t.DueAt(),
		ResolvedAt:  t.ResolvedAt(),
		ClosedAt:    t.ClosedAt(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}

	if t.DeletedAt() != nil {
		model.DeletedAt = gorm.DeletedAt{Time: *t.DeletedAt(), Valid: true}
	}

	return model
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	status, err := vo.NewStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}
	ticketType, err := vo.NewType(model.Type)
	if err != nil {
		return nil, fmt.Errorf("ticket %d: %w", model.ID, err)
	}

	var deletedAt *time.Time
	if model.DeletedAt.Valid {
		deletedAt = &model.DeletedAt.Time
	}

	return ticket.ReconstructTicket(
		model.ID,
		model.Key,
		model.Title,
		model.Description,
		status,
		priority,
		ticketType,
		model.ReporterID,
		model.AssigneeID,
		model.DueAt,
		model.ResolvedAt,
		model.ClosedAt,
		model.CreatedAt,
		model.UpdatedAt,
		deletedAt,
	)
}

func (m *TicketMapperImpl) HistoryToModel(entry *ticket.HistoryEntry) (*models.TicketHistoryModel, error) {
	model := &models.TicketHistoryModel{
		ID:        entry.ID(),
		TicketID:  entry.TicketID(),
		ActorID:   entry.ActorID(),
		Summary:   entry.Summary(),
		CreatedAt: entry.CreatedAt(),
	}

	if entry.Changes() != nil {
		changesJSON, err := json.Marshal(entry.Changes())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history changes: %w", err)
		}
		model.Changes = changesJSON
	}

	return model, nil
}

func (m *TicketMapperImpl) HistoryToDomain(model *models.TicketHistoryModel) (*ticket.HistoryEntry, error) {
	var changes ticket.ChangeSet
	if len(model.Changes) > 0 {
		if err := json.Unmarshal(model.Changes, &changes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history changes (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructHistoryEntry(
		model.ID,
		model.TicketID,
		model.ActorID,
		model.Summary,
		changes,
		model.CreatedAt,
	), nil
}
