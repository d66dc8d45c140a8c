package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obratech/contracts-service/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

const contractColumns = `
	id,
	number,
	client_name,
	project_name,
	base_value,
	start_date,
	end_date,
	status,
	type,
	notes,
	created_at
`

func (r *ContractRepository) List(ctx context.Context, status *model.ContractStatus, contractType string) ([]model.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts`
	var filters []string
	var args []interface{}

	if status != nil {
		filters = append(filters, "status = ?")
		args = append(args, *status)
	}
	if strings.TrimSpace(contractType) != "" {
		filters = append(filters, "type = ?")
		args = append(args, strings.TrimSpace(contractType))
	}
	if len(filters) > 0 {
		query += " WHERE " + strings.Join(filters, " AND ")
	}
	query += " ORDER BY created_at DESC"

	var contracts []model.Contract
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	err := r.db.WithContext(ctx).Raw(
		`SELECT `+contractColumns+` FROM contracts WHERE id = ? LIMIT 1`, id,
	).Scan(&contract).Error
	if err != nil {
		return nil, err
	}
	if contract.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	amendments, err := r.ListAmendments(ctx, id)
	if err != nil {
		return nil, err
	}
	contract.Amendments = amendments
	return &contract, nil
}

func (r *ContractRepository) Create(ctx context.Context, contract model.Contract) (*model.Contract, error) {
	var saved model.Contract
	err := r.db.WithContext(ctx).Raw(`
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
		return nil, err
	}
	saved.Amendments = []model.Amendment{}
	return &saved, nil
}

// Update rewrites the contract's base fields. Amendments are never touched
// here; they only grow through AppendAmendment.
func (r *ContractRepository) Update(ctx context.Context, contract model.Contract) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE contracts
		SET
			number = ?,
			client_name = ?,
			project_name = ?,
			base_value = ?,
			start_date = ?,
			end_date = ?,
			status = ?,
			type = ?,
			notes = ?
		WHERE id = ?
	`,
		contract.Number,
		contract.ClientName,
		contract.ProjectName,
		contract.BaseValue,
		contract.StartDate,
		contract.EndDate,
		contract.Status,
		contract.Type,
		contract.Notes,
		contract.ID,
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM contracts WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContractRepository) ListAmendments(ctx context.Context, contractID uuid.UUID) ([]model.Amendment, error) {
	var amendments []model.Amendment
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			contract_id,
			number,
			kind,
			description,
			additional_value,
			new_end_date,
			date,
			justification
		FROM amendments
		WHERE contract_id = ?
		ORDER BY number ASC
	`, contractID).Scan(&amendments).Error
	if err != nil {
		return nil, err
	}
	if amendments == nil {
		amendments = []model.Amendment{}
	}
	return amendments, nil
}

// AppendAmendment inserts the amendment with the next per-contract number,
// locking the contract row so concurrent appends cannot collide on numbering.
func (r *ContractRepository) AppendAmendment(ctx context.Context, amendment model.Amendment) (*model.Amendment, error) {
	var saved model.Amendment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var contractID uuid.UUID
		if err := tx.Raw(
			`SELECT id FROM contracts WHERE id = ? FOR UPDATE`, amendment.ContractID,
		).Scan(&contractID).Error; err != nil {
			return err
		}
		if contractID == uuid.Nil {
			return gorm.ErrRecordNotFound
		}

		var next int
		if err := tx.Raw(
			`SELECT COALESCE(MAX(number), 0) + 1 FROM amendments WHERE contract_id = ?`, amendment.ContractID,
		).Scan(&next).Error; err != nil {
			return err
		}

		return tx.Raw(`
			INSERT INTO amendments (
				contract_id,
				number,
				kind,
				description,
				additional_value,
				new_end_date,
				date,
				justification
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING
				id,
				contract_id,
				number,
				kind,
				description,
				additional_value,
				new_end_date,
				date,
				justification
		`,
			amendment.ContractID,
			next,
			amendment.Kind,
			amendment.Description,
			amendment.AdditionalValue,
			amendment.NewEndDate,
			amendment.Date,
			amendment.Justification,
		).Scan(&saved).Error
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *ContractRepository) NumberExists(ctx context.Context, number string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(*) FROM contracts WHERE number = ? AND id <> ?`, number, exclude,
	).Scan(&count).Error
	if err != nil {
		return false, fmt.Errorf("check contract number: %w", err)
	}
	return count > 0, nil
}
