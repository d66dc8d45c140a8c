package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obratech/contracts-service/internal/model"
)

type ProposalRepository struct {
	db *gorm.DB
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) List(ctx context.Context, status *model.ProposalStatus) ([]model.Proposal, error) {
	query := `
		SELECT id, number, client_name, project_name, status, total_value, created_at
		FROM proposals
	`
	var args []interface{}
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, *status)
	}
	query += ` ORDER BY created_at DESC`

	var proposals []model.Proposal
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&proposals).Error; err != nil {
		return nil, err
	}
	return proposals, nil
}

func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Proposal, error) {
	var proposal model.Proposal
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, number, client_name, project_name, status, total_value, created_at
		FROM proposals
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&proposal).Error
	if err != nil {
		return nil, err
	}
	if proposal.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &proposal, nil
}

// ConvertToContract creates the contract and marks the proposal as contracted
// in one transaction, so a failed insert never strands the proposal status.
func (r *ProposalRepository) ConvertToContract(ctx context.Context, proposalID uuid.UUID, contract model.Contract) (*model.Contract, error) {
	var saved model.Contract
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Raw(`
			INSERT INTO contracts (
				number,
				client_name,
				project_name,
				base_value,
				start_date,
				end_date,
				status,
				type,
				notes
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING `+contractColumns,
			contract.Number,
			contract.ClientName,
			contract.ProjectName,
			contract.BaseValue,
			contract.StartDate,
			contract.EndDate,
			contract.Status,
			contract.Type,
			contract.Notes,
		).Scan(&saved).Error
		if err != nil {
			return err
		}

		result := tx.Exec(`
			UPDATE proposals SET status = ? WHERE id = ?
		`, model.ProposalStatusContracted, proposalID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	saved.Amendments = []model.Amendment{}
	return &saved, nil
}
