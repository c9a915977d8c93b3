package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/ecoreports/internal/model"
)

const reportColumns = `
	id, user_id, latitude, longitude, image, description,
	severity, is_recurring, status, created_at, updated_at
`

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) CreateReport(ctx context.Context, report *model.TrashReport) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO trash_reports (
			id, user_id, latitude, longitude, image, description,
			severity, is_recurring, status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		report.ID,
		report.UserID,
		report.Latitude,
		report.Longitude,
		report.Image,
		report.Description,
		int(report.Severity),
		report.IsRecurring,
		string(report.Status),
		report.CreatedAt,
		report.UpdatedAt,
	).Error
}

func (r *ReportRepository) GetReport(ctx context.Context, id uuid.UUID) (*model.TrashReport, error) {
	var report model.TrashReport
	if err := r.db.WithContext(ctx).Raw(`
		SELECT `+reportColumns+`
		FROM trash_reports
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&report).Error; err != nil {
		return nil, err
	}
	if report.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &report, nil
}

func (r *ReportRepository) ListReports(
	ctx context.Context,
	filter model.ReportFilter,
	order model.ReportOrder,
	limit, offset int,
) ([]model.TrashReport, error) {
	where, args := buildReportFilter(filter)
	query := `SELECT ` + reportColumns + ` FROM trash_reports` + where +
		` ORDER BY ` + orderClause(order) + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var rows []model.TrashReport
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) CountReports(ctx context.Context, filter model.ReportFilter) (int64, error) {
	where, args := buildReportFilter(filter)

	var count int64
	if err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM trash_reports`+where, args...).Scan(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListAllReports feeds the proximity scan.
func (r *ReportRepository) ListAllReports(ctx context.Context) ([]model.TrashReport, error) {
	var rows []model.TrashReport
	if err := r.db.WithContext(ctx).Raw(`
		SELECT ` + reportColumns + `
		FROM trash_reports
		ORDER BY created_at DESC, id DESC
	`).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus writes the new status, the updated_at timestamp and the audit
// row in one transaction. The audit row's old_status is the value locked
// inside the transaction, not the one the caller read earlier.
func (r *ReportRepository) UpdateStatus(ctx context.Context, change model.ReportStatusChange, updatedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current struct {
			Status string
		}
		result := tx.Raw(`
			SELECT status
			FROM trash_reports
			WHERE id = ?
			FOR UPDATE
		`, change.ReportID).Scan(&current)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		change.OldStatus = model.ReportStatus(current.Status)

		if err := tx.Exec(`
			UPDATE trash_reports
			SET status = ?, updated_at = ?
			WHERE id = ?
		`, string(change.NewStatus), updatedAt, change.ReportID).Error; err != nil {
			return err
		}

		return tx.Exec(`
			INSERT INTO report_status_changes (id, report_id, old_status, new_status, changed_by, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`,
			change.ID,
			change.ReportID,
			string(change.OldStatus),
			string(change.NewStatus),
			change.ChangedBy,
			change.CreatedAt,
		).Error
	})
}

func (r *ReportRepository) ListStatusChanges(ctx context.Context, reportID uuid.UUID) ([]model.ReportStatusChange, error) {
	var rows []model.ReportStatusChange
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, report_id, old_status, new_status, changed_by, created_at
		FROM report_status_changes
		WHERE report_id = ?
		ORDER BY created_at ASC
	`, reportID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ReportRepository) CreateComment(ctx context.Context, comment *model.ReportComment) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO report_comments (id, report_id, user_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, comment.ID, comment.ReportID, comment.UserID, comment.Content, comment.CreatedAt).Error
}

func (r *ReportRepository) ListComments(ctx context.Context, reportID uuid.UUID) ([]model.ReportComment, error) {
	var rows []model.ReportComment
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, report_id, user_id, content, created_at
		FROM report_comments
		WHERE report_id = ?
		ORDER BY created_at DESC, id DESC
	`, reportID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
