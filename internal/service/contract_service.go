package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/obratech/contracts-service/internal/config"
	"github.com/obratech/contracts-service/internal/document"
	"github.com/obratech/contracts-service/internal/model"
)

type PDFGenerator interface {
	Generate(doc model.ContractDocument) ([]byte, error)
}

type WorkbookGenerator interface {
	Generate(contracts []model.Contract, generatedAt time.Time) ([]byte, error)
}

type ContractStore interface {
	List(ctx context.Context, status *model.ContractStatus, contractType string) ([]model.Contract, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	Create(ctx context.Context, contract model.Contract) (*model.Contract, error)
	Update(ctx context.Context, contract model.Contract) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAmendments(ctx context.Context, contractID uuid.UUID) ([]model.Amendment, error)
	AppendAmendment(ctx context.Context, amendment model.Amendment) (*model.Amendment, error)
	NumberExists(ctx context.Context, number string, exclude uuid.UUID) (bool, error)
}

type ProposalStore interface {
	List(ctx context.Context, status *model.ProposalStatus) ([]model.Proposal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Proposal, error)
	ConvertToContract(ctx context.Context, proposalID uuid.UUID, contract model.Contract) (*model.Contract, error)
}

type ContractService struct {
	contracts ContractStore
	proposals ProposalStore
	pdf       PDFGenerator
	workbook  WorkbookGenerator
	allowed   map[string]struct{}
}

func NewContractService(
	contracts ContractStore,
	proposals ProposalStore,
	pdf PDFGenerator,
	workbook WorkbookGenerator,
	cfg *config.Config,
) *ContractService {
	var allowed map[string]struct{}
	if len(cfg.Contracts.AllowedTypes) > 0 {
		allowed = make(map[string]struct{}, len(cfg.Contracts.AllowedTypes))
		for _, t := range cfg.Contracts.AllowedTypes {
			allowed[t] = struct{}{}
		}
	}
	return &ContractService{
		contracts: contracts,
		proposals: proposals,
		pdf:       pdf,
		workbook:  workbook,
		allowed:   allowed,
	}
}

type ContractInput struct {
	Number      string
	ClientName  string
	ProjectName string
	BaseValue   float64
	StartDate   time.Time
	EndDate     time.Time
	Status      model.ContractStatus
	Type        string
	Notes       string
	Principal   model.Principal
}

type AmendmentInput struct {
	ContractID      uuid.UUID
	Kind            model.AmendmentKind
	Description     string
	AdditionalValue *float64
	NewEndDate      *time.Time
	Justification   string
	Principal       model.Principal
}

type DocumentResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

func (s *ContractService) List(ctx context.Context, status *model.ContractStatus, contractType string) ([]model.Contract, error) {
	contracts, err := s.contracts.List(ctx, status, contractType)
	if err != nil {
		return nil, err
	}
	for i := range contracts {
		amendments, err := s.contracts.ListAmendments(ctx, contracts[i].ID)
		if err != nil {
			return nil, err
		}
		contracts[i].Amendments = amendments
	}
	return contracts, nil
}

func (s *ContractService) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	contract, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) Create(ctx context.Context, input ContractInput) (*model.Contract, error) {
	if !input.Principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if err := s.validateContractInput(input); err != nil {
		return nil, err
	}

	taken, err := s.contracts.NumberExists(ctx, input.Number, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrNumberTaken, input.Number)
	}

	return s.contracts.Create(ctx, model.Contract{
		Number:      strings.TrimSpace(input.Number),
		ClientName:  strings.TrimSpace(input.ClientName),
		ProjectName: strings.TrimSpace(input.ProjectName),
		BaseValue:   input.BaseValue,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      input.Status,
		Type:        strings.TrimSpace(input.Type),
		Notes:       input.Notes,
	})
}

func (s *ContractService) Update(ctx context.Context, id uuid.UUID, input ContractInput) (*model.Contract, error) {
	if !input.Principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if err := s.validateContractInput(input); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.contracts.NumberExists(ctx, input.Number, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrNumberTaken, input.Number)
	}

	existing.Number = strings.TrimSpace(input.Number)
	existing.ClientName = strings.TrimSpace(input.ClientName)
	existing.ProjectName = strings.TrimSpace(input.ProjectName)
	existing.BaseValue = input.BaseValue
	existing.StartDate = input.StartDate
	existing.EndDate = input.EndDate
	existing.Status = input.Status
	existing.Type = strings.TrimSpace(input.Type)
	existing.Notes = input.Notes

	if err := s.contracts.Update(ctx, *existing); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ContractService) Delete(ctx context.Context, id uuid.UUID, principal model.Principal) error {
	if !principal.CanWrite() {
		return ErrPermissionDenied
	}
	if err := s.contracts.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// AddAmendment appends an immutable amendment record. The contract's stored
// base value and end date are left untouched: effective figures are always
// derived at read time, never written back.
func (s *ContractService) AddAmendment(ctx context.Context, input AmendmentInput) (*model.Contract, error) {
	if !input.Principal.CanWrite() {
		return nil, ErrPermissionDenied
	}
	if err := validateAmendmentInput(input); err != nil {
		return nil, err
	}

	_, err := s.contracts.AppendAmendment(ctx, model.Amendment{
		ContractID:      input.ContractID,
		Kind:            input.Kind,
		Description:     strings.TrimSpace(input.Description),
		AdditionalValue: input.AdditionalValue,
		NewEndDate:      input.NewEndDate,
		Date:            time.Now().UTC(),
		Justification:   strings.TrimSpace(input.Justification),
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, input.ContractID)
}

// CreateFromProposal seeds a contract from an accepted proposal and marks the
// proposal as contracted in the same transaction.
func (s *ContractService) CreateFromProposal(ctx context.Context, proposalID uuid.UUID, principal model.Principal) (*model.Contract, error) {
	if !principal.CanWrite() {
		return nil, ErrPermissionDenied
	}

	proposal, err := s.proposals.GetByID(ctx, proposalID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if proposal.Status == model.ProposalStatusContracted {
		return nil, fmt.Errorf("%w: proposal already contracted", ErrInvalidInput)
	}
	if proposal.Status != model.ProposalStatusAccepted {
		return nil, fmt.Errorf("%w: proposal must be accepted before contracting", ErrInvalidInput)
	}

	number := "CT-" + strings.TrimSpace(proposal.Number)
	taken, err := s.contracts.NumberExists(ctx, number, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", ErrNumberTaken, number)
	}

	start := time.Now().UTC()
	contract, err := s.proposals.ConvertToContract(ctx, proposalID, model.Contract{
		Number:      number,
		ClientName:  proposal.ClientName,
		ProjectName: proposal.ProjectName,
		BaseValue:   proposal.TotalValue,
		StartDate:   start,
		EndDate:     start.AddDate(1, 0, 0),
		Status:      model.ContractStatusActive,
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return contract, nil
}

func (s *ContractService) ListProposals(ctx context.Context, status *model.ProposalStatus) ([]model.Proposal, error) {
	return s.proposals.List(ctx, status)
}

// HTMLDocument assembles the printable contract document.
func (s *ContractService) HTMLDocument(ctx context.Context, id uuid.UUID) (*DocumentResult, error) {
	contract, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	markup := document.Assemble(model.ContractDocument{
		Contract:    *contract,
		GeneratedAt: time.Now(),
	})
	return &DocumentResult{
		FileName:    document.FileName(contract.Number, contract.ClientName, "html"),
		ContentType: "text/html; charset=utf-8",
		Content:     []byte(markup),
	}, nil
}

func (s *ContractService) PDFDocument(ctx context.Context, id uuid.UUID) (*DocumentResult, error) {
	contract, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(model.ContractDocument{
		Contract:    *contract,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	return &DocumentResult{
		FileName:    document.FileName(contract.Number, contract.ClientName, "pdf"),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// ExportWorkbook builds the contract-portfolio spreadsheet.
func (s *ContractService) ExportWorkbook(ctx context.Context) (*DocumentResult, error) {
	contracts, err := s.List(ctx, nil, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	content, err := s.workbook.Generate(contracts, now)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{
		FileName:    fmt.Sprintf("contratos-%s.xlsx", now.Format("20060102")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

func (s *ContractService) validateContractInput(input ContractInput) error {
	if strings.TrimSpace(input.Number) == "" {
		return fmt.Errorf("%w: number is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.ProjectName) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalidInput)
	}
	if input.BaseValue < 0 {
		return fmt.Errorf("%w: base value must not be negative", ErrInvalidInput)
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if input.EndDate.Before(input.StartDate) {
		return fmt.Errorf("%w: end date must not precede start date", ErrInvalidInput)
	}
	if !input.Status.Valid() {
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if s.allowed != nil && strings.TrimSpace(input.Type) != "" {
		if _, ok := s.allowed[strings.TrimSpace(input.Type)]; !ok {
			return fmt.Errorf("%w: contract type not allowed", ErrInvalidInput)
		}
	}
	return nil
}

func validateAmendmentInput(input AmendmentInput) error {
	if input.ContractID == uuid.Nil {
		return fmt.Errorf("%w: contract id is required", ErrInvalidInput)
	}
	if !input.Kind.Valid() {
		return fmt.Errorf("%w: invalid amendment kind", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	switch input.Kind {
	case model.AmendmentKindValue:
		if input.AdditionalValue == nil {
			return fmt.Errorf("%w: additional value is required for value amendments", ErrInvalidInput)
		}
		if input.NewEndDate != nil {
			return fmt.Errorf("%w: new end date is only valid for deadline amendments", ErrInvalidInput)
		}
	case model.AmendmentKindDeadline:
		if input.NewEndDate == nil {
			return fmt.Errorf("%w: new end date is required for deadline amendments", ErrInvalidInput)
		}
		if input.AdditionalValue != nil {
			return fmt.Errorf("%w: additional value is only valid for value amendments", ErrInvalidInput)
		}
	case model.AmendmentKindScope:
		if input.AdditionalValue != nil || input.NewEndDate != nil {
			return fmt.Errorf("%w: scope amendments carry no value or date change", ErrInvalidInput)
		}
	}
	return nil
}
