package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"helpdesk/internal/domain/ticket"
	vo "helpdesk/internal/domain/ticket/valueobjects"
	"helpdesk/internal/infrastructure/persistence/mappers"
	"helpdesk/internal/infrastructure/persistence/models"
	db "helpdesk/internal/shared/db"
	apperrors "helpdesk/internal/shared/errors"
)

// allowedGroupColumns whitelists GROUP BY columns for report queries
// to prevent SQL injection.
var allowedGroupColumns = map[string]bool{
	"status":   true,
	"priority": true,
	"type":     true,
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	// Explicit column selection so cleared nullable fields (assignee,
	// due date) are written back as NULL instead of skipped as zero values.
	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("title", "description", "status", "priority", "type",
			"assignee_id", "due_at", "resolved_at", "closed_at", "updated_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	return nil
}

func (r *TicketRepository) SoftDelete(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.TicketModel{}, ticketID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("Ticket")
	}

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, ticketID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Ticket")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) GetByKey(ctx context.Context, key string) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("`key` = ?", key).First(&model).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("Ticket")
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	query = applyScope(query, filter)

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.Type != nil {
		query = query.Where("type = ?", filter.Type.String())
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ReporterID != nil {
		query = query.Where("reporter_id = ?", *filter.ReporterID)
	}
	if filter.WatcherID != nil {
		query = query.Where("id IN (?)",
			tx.Model(&models.WatcherModel{}).Select("ticket_id").Where("user_id = ?", *filter.WatcherID))
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("(title LIKE ? OR description LIKE ? OR `key` LIKE ?)", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	query = query.Order("updated_at DESC, created_at DESC")

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, 0, err
		}
		tickets[i] = t
	}

	return tickets, total, nil
}

func (r *TicketRepository) CountAll(ctx context.Context) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.TicketModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	return count, nil
}

func (r *TicketRepository) CountInRange(ctx context.Context, from, to *time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := applyDateRange(tx.Model(&models.TicketModel{}), from, to)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets in range: %w", err)
	}

	return count, nil
}

func (r *TicketRepository) Recent(ctx context.Context, from, to *time.Time, limit int) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := applyDateRange(tx.Model(&models.TicketModel{}), from, to).
		Order("created_at DESC").
		Limit(limit)

	var ticketModels []models.TicketModel
	if err := query.Find(&ticketModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, len(ticketModels))
	for i, model := range ticketModels {
		t, err := r.mapper.ToDomain(&model)
		if err != nil {
			return nil, err
		}
		tickets[i] = t
	}

	return tickets, nil
}

func (r *TicketRepository) ActiveLoads(ctx context.Context) ([]ticket.AssigneeLoad, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		AssigneeID uint
		Priority   string
	}

	if err := tx.Model(&models.TicketModel{}).
		Select("assignee_id", "priority").
		Where("assignee_id IS NOT NULL").
		Where("status IN ?", activeStatusStrings()).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load assignee workloads: %w", err)
	}

	loads := make([]ticket.AssigneeLoad, len(rows))
	for i, row := range rows {
		loads[i] = ticket.AssigneeLoad{
			AssigneeID: row.AssigneeID,
			Priority:   vo.Priority(row.Priority),
		}
	}

	return loads, nil
}

func (r *TicketRepository) CountsByColumn(ctx context.Context, column string, from, to *time.Time) (map[string]int64, error) {
	if !allowedGroupColumns[column] {
		return nil, fmt.Errorf("unsupported report column: %s", column)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{}).
		Select(column + " AS group_key, COUNT(*) AS count").
		Group(column)
	query = applyDateRange(query, from, to)

	var rows []struct {
		GroupKey string
		Count    int64
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Count
	}

	return counts, nil
}

func (r *TicketRepository) CountsByAssignee(ctx context.Context, from, to *time.Time) (map[uint]int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{}).
		Select("assignee_id AS group_key, COUNT(*) AS count").
		Where("assignee_id IS NOT NULL").
		Group("assignee_id")
	query = applyDateRange(query, from, to)

	var rows []struct {
		GroupKey uint
		Count    int64
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by assignee: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.GroupKey] = row.Count
	}

	return counts, nil
}

// applyScope narrows the query to what the caller may see. Users with
// a restricted scope see tickets they reported or are assigned to.
func applyScope(query *gorm.DB, filter ticket.TicketFilter) *gorm.DB {
	if ownerID, restricted := filter.Scope.OwnerID(); restricted {
		return query.Where("(reporter_id = ? OR assignee_id = ?)", ownerID, ownerID)
	}
	return query
}

func applyDateRange(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	return query
}

func activeStatusStrings() []string {
	active := vo.ActiveStatuses()
	out := make([]string, len(active))
	for i, s := range active {
		out[i] = s.String()
	}
	return out
}
